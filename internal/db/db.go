package db

import "errors"

var ErrNotFound = errors.New("not found")

// DB is the persistence contract the rest of the application consumes. The
// core treats a successful return as durable.
type DB interface {
	Users
	Accounts
	Statuses
	Notifications
	Fed
}
