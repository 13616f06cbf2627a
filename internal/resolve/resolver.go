package resolve

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"code.superseriousbusiness.org/activity/streams/vocab"
	"codeberg.org/gruf/go-mutexes"
	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/conversions"
	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/domain"
)

// Client is the slice of the federation client the resolver needs: webfinger
// discovery and signed actor fetches.
type Client interface {
	Finger(ctx context.Context, username, host string) (*url.URL, error)
	Get(ctx context.Context, iri *url.URL) (vocab.Type, error)
}

// Directory is the slice of the database the resolver reads and writes.
type Directory interface {
	GetUserByHandle(ctx context.Context, username, host string) (domain.UserFed, error)
	UpsertRemoteUser(ctx context.Context, user domain.UserFed, fetched time.Time) (domain.UserFed, error)
}

// Refresher re-fetches an actor document in the background. May be nil, in
// which case stale remote records are served as they are.
type Refresher interface {
	Fetch(iri *url.URL) error
}

// refreshAfter is the age past which a cached remote actor gets a background
// re-fetch. The stale record is still served immediately.
const refreshAfter = 24 * time.Hour

// Resolver turns user@host handles into users, looking locally first and
// falling back to webfinger plus an actor fetch for handles we have never
// seen. Concurrent lookups of the same handle are serialized per handle so a
// remote user is fetched at most once.
type Resolver struct {
	directory Directory
	client    Client
	refresher Refresher
	domain    string
	locks     *mutexes.MutexMap
	now       func() time.Time
}

func New(directory Directory, client Client, domain string, refresher Refresher) *Resolver {
	locks := mutexes.MutexMap{}
	return &Resolver{
		directory: directory,
		client:    client,
		refresher: refresher,
		domain:    strings.ToLower(domain),
		locks:     &locks,
		now:       time.Now,
	}
}

// Resolve returns the user a handle names. A false return means the handle is
// malformed, unknown, or the remote instance could not tell us about it; none
// of those stop the caller, so no error is returned.
func (r *Resolver) Resolve(ctx context.Context, handle string) (domain.UserFed, bool) {
	username, host, ok := splitHandle(handle)
	if !ok {
		return domain.UserFed{}, false
	}
	if host == "" {
		host = r.domain
	}

	unlock := r.locks.Lock(username + "@" + host)
	defer unlock()

	user, err := r.directory.GetUserByHandle(ctx, username, host)
	if err == nil {
		r.maybeRefresh(user)
		return user, true
	}
	if !errors.Is(err, db.ErrNotFound) {
		log.Error().Err(err).Str("handle", handle).Msg("handle lookup failed")
		return domain.UserFed{}, false
	}
	if host == r.domain {
		// Unknown local name, nothing to discover remotely.
		return domain.UserFed{}, false
	}

	user, err = r.discover(ctx, username, host)
	if err != nil {
		log.Warn().Err(err).Str("handle", handle).Msg("could not discover remote user")
		return domain.UserFed{}, false
	}
	return user, true
}

// maybeRefresh enqueues a background re-fetch for a remote record we have not
// seen an actor document for in a while. Best effort; the caller already has
// a usable user.
func (r *Resolver) maybeRefresh(user domain.UserFed) {
	if r.refresher == nil || user.Local || user.ApId == nil {
		return
	}
	if r.now().Sub(user.LastUpdated) < refreshAfter {
		return
	}
	if err := r.refresher.Fetch(user.ApId); err != nil {
		log.Warn().Err(err).Str("actor", user.ApId.String()).Msg("could not enqueue actor refresh")
	}
}

// discover runs webfinger, fetches the actor document and stores the result.
func (r *Resolver) discover(ctx context.Context, username, host string) (domain.UserFed, error) {
	iri, err := r.client.Finger(ctx, username, host)
	if err != nil {
		return domain.UserFed{}, err
	}

	obj, err := r.client.Get(ctx, iri)
	if err != nil {
		return domain.UserFed{}, err
	}
	person, ok := obj.(vocab.ActivityStreamsPerson)
	if !ok {
		return domain.UserFed{}, errors.New("actor document is not a Person")
	}

	user, err := conversions.ActorToUser(person)
	if err != nil {
		return domain.UserFed{}, err
	}
	if !strings.EqualFold(user.Username, username) {
		// The canonical name on the actor wins over how the author typed it.
		log.Debug().Str("typed", username).Str("canonical", user.Username).Msg("handle spelling differs from actor")
	}

	return r.directory.UpsertRemoteUser(ctx, user, r.now())
}

// splitHandle breaks user@host (with or without a leading @) apart. The host
// part is empty for bare local names.
func splitHandle(handle string) (username, host string, ok bool) {
	handle = strings.TrimPrefix(handle, "@")
	username, host, found := strings.Cut(handle, "@")
	if username == "" {
		return "", "", false
	}
	if found && host == "" {
		return "", "", false
	}
	return username, strings.ToLower(host), true
}

// Session memoizes resolutions for the span of one request, so a handle
// mentioned several times costs one lookup. It is safe for concurrent use;
// two simultaneous lookups of the same fresh handle are serialized by the
// resolver's per-handle lock rather than here.
type Session struct {
	resolver *Resolver
	mu       sync.Mutex
	cache    map[string]cached
}

type cached struct {
	user domain.UserFed
	ok   bool
}

func (r *Resolver) NewSession() *Session {
	return &Session{
		resolver: r,
		cache:    make(map[string]cached),
	}
}

func (s *Session) Resolve(ctx context.Context, handle string) (domain.UserFed, bool) {
	key := strings.ToLower(strings.TrimPrefix(handle, "@"))

	s.mu.Lock()
	hit, found := s.cache[key]
	s.mu.Unlock()
	if found {
		return hit.user, hit.ok
	}

	user, ok := s.resolver.Resolve(ctx, handle)

	s.mu.Lock()
	s.cache[key] = cached{user: user, ok: ok}
	s.mu.Unlock()
	return user, ok
}
