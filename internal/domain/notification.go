package domain

import "time"

// Notification kinds. The column is a plain string so new kinds can be added
// without a migration.
const (
	NotifyReply   = "REPLY"
	NotifyMention = "MENTION"
)

// Notification tells a local user that something happened to them. Remote
// users never get one; they learn about events over federation.
type Notification struct {
	ID          int64
	RecipientID int64
	Kind        string
	ActorID     int64
	StatusID    int64
	Read        bool
	Created     time.Time
}
