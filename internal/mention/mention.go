package mention

import (
	"context"
	"iter"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

// tokenPattern matches @user and @user@host references. The leading \B keeps
// mail addresses (user@host) from being picked up as mentions, and the
// trailing \b drops punctuation that directly follows a handle.
var tokenPattern = regexp.MustCompile(`\B@[a-zA-Z0-9_\-.]+(?:@[a-zA-Z0-9\-.]+\.[a-zA-Z]{2,})?\b`)

// Token is a single mention occurrence: the literal text as it appears in the
// source and the fully qualified handle it names.
type Token struct {
	Literal string
	Handle  string
}

// Resolver turns a user@host handle into a known user. A false return means
// the handle names nobody we can find, which is not an error.
type Resolver interface {
	Resolve(ctx context.Context, handle string) (domain.UserFed, bool)
}

type Extractor struct {
	resolver Resolver
	domain   string
	workers  int
}

func New(resolver Resolver, domain string, workers int) *Extractor {
	if workers < 1 {
		workers = 1
	}
	return &Extractor{
		resolver: resolver,
		domain:   domain,
		workers:  workers,
	}
}

// Tokens yields every mention token in content in order of appearance. Bare
// handles are qualified with the instance domain, so @ada on this instance
// and @ada@<domain> produce the same Handle.
func (e *Extractor) Tokens(content string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, literal := range tokenPattern.FindAllString(content, -1) {
			handle := strings.TrimPrefix(literal, "@")
			if !strings.Contains(handle, "@") {
				handle = handle + "@" + e.domain
			}
			if !yield(Token{Literal: literal, Handle: handle}) {
				return
			}
		}
	}
}

// Mentions resolves tokens one at a time, yielding each distinct literal
// together with the user it names. Handles that resolve to nobody are
// silently skipped.
func (e *Extractor) Mentions(ctx context.Context, content string) iter.Seq2[string, domain.UserFed] {
	return func(yield func(string, domain.UserFed) bool) {
		seen := make(map[string]bool)
		for tok := range e.Tokens(content) {
			if seen[tok.Literal] {
				continue
			}
			seen[tok.Literal] = true
			user, ok := e.resolver.Resolve(ctx, tok.Handle)
			if !ok {
				continue
			}
			if !yield(tok.Literal, user) {
				return
			}
		}
	}
}

// ResolveAll resolves every distinct token in content, fanning the lookups
// out over at most workers goroutines. The result maps each resolvable
// literal to its user; unknown handles are simply absent.
func (e *Extractor) ResolveAll(ctx context.Context, content string) (map[string]domain.UserFed, error) {
	tokens := make(map[string]Token)
	for tok := range e.Tokens(content) {
		tokens[tok.Literal] = tok
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var mu sync.Mutex
	found := make(map[string]domain.UserFed, len(tokens))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, tok := range tokens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			user, ok := e.resolver.Resolve(ctx, tok.Handle)
			if !ok {
				return nil
			}
			mu.Lock()
			found[tok.Literal] = user
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

// Rewrite links every occurrence of literal to the user's actor id. The
// character after the handle is kept in place, so @user is left alone where
// the text actually reads @user@host.
func Rewrite(content, literal string, user domain.UserFed) string {
	pattern := regexp.MustCompile(regexp.QuoteMeta(literal) + `([^@]|$)`)
	link := `<a href="` + user.ApId.String() + `">` + literal + `</a>`
	return pattern.ReplaceAllString(content, link+"${1}")
}
