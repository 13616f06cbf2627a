package domain

import (
	"iter"
	"net/url"
	"time"
)

// Variant describes one of the supported status kinds. The registry below is
// the closed set of tags the create endpoint accepts; an unknown tag is
// rejected before any other work happens.
type Variant struct {
	Tag string
	// ApType is the ActivityStreams type the full-fidelity serialization uses.
	ApType string
	// SkipRender keeps the primary content verbatim instead of passing it
	// through the renderer. Set for machine generated notes, whose content
	// the server itself produced.
	SkipRender bool
	// HasQuote marks variants carrying a quoted excerpt, which is rendered
	// independently of the primary content.
	HasQuote bool
}

const (
	TagNote      = "note"
	TagReply     = "reply"
	TagReview    = "review"
	TagQuotation = "quotation"
	TagGenerated = "generated"
)

var Variants = map[string]Variant{
	TagNote:      {Tag: TagNote, ApType: "Note"},
	TagReply:     {Tag: TagReply, ApType: "Note"},
	TagReview:    {Tag: TagReview, ApType: "Article"},
	TagQuotation: {Tag: TagQuotation, ApType: "Note", HasQuote: true},
	TagGenerated: {Tag: TagGenerated, ApType: "Note", SkipRender: true},
}

func VariantByTag(tag string) (Variant, bool) {
	v, ok := Variants[tag]
	return v, ok
}

type Status struct {
	ID     int64
	ApId   *url.URL
	Author UserFed
	// Source is the text as the author typed it; Content is the sanitized
	// markup derived from it exactly once, when the status is created.
	Source  string
	Content string
	// ContentWarning must be empty whenever Sensitive is false.
	ContentWarning string
	Sensitive      bool
	Variant        Variant
	ReplyParent    *Status
	// Book, Rating and Quote are only meaningful for the reading variants.
	Book       *url.URL
	Rating     int
	Quote      string
	Mentions   MentionSet
	Published  time.Time
	Updated    time.Time
	Tombstoned bool
}

// MentionSet is the set of users a status mentions. Membership is keyed by the
// user's federation IRI, so adding the same user twice, or a user who is also
// the reply parent's author, is a no-op.
type MentionSet struct {
	users map[string]UserFed
}

// Add puts u in the set and reports whether it was newly added.
func (s *MentionSet) Add(u UserFed) bool {
	if u.ApId == nil {
		return false
	}
	key := u.ApId.String()
	if _, ok := s.users[key]; ok {
		return false
	}
	if s.users == nil {
		s.users = make(map[string]UserFed)
	}
	s.users[key] = u
	return true
}

func (s MentionSet) Contains(u UserFed) bool {
	if u.ApId == nil {
		return false
	}
	_, ok := s.users[u.ApId.String()]
	return ok
}

func (s MentionSet) Len() int {
	return len(s.users)
}

func (s MentionSet) All() iter.Seq[UserFed] {
	return func(yield func(UserFed) bool) {
		for _, u := range s.users {
			if !yield(u) {
				return
			}
		}
	}
}

// Users returns the members as a slice, in no particular order.
func (s MentionSet) Users() []UserFed {
	out := make([]UserFed, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}
