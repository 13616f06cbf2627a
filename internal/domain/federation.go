package domain

import "net/url"

// Public is the special ActivityStreams collection addressing every actor.
var Public, _ = url.Parse("https://www.w3.org/ns/activitystreams#Public")

// FollowerInbox pairs a follower's inbox with the software its instance
// reports, so deliveries can be keyed by peer capability.
type FollowerInbox struct {
	Inbox    *url.URL
	Software string
}
