package db

import (
	"context"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

type Statuses interface {
	// CreateStatus persists the status and its mention set in one
	// transaction, filling in the generated id.
	CreateStatus(ctx context.Context, status *domain.Status) error
	GetStatus(ctx context.Context, id int64) (domain.Status, error)
	// TombstoneStatus clears the status' content while retaining its
	// identifier and authorship.
	TombstoneStatus(ctx context.Context, id int64) error
}

type Notifications interface {
	// CreateNotification inserts the notification. Inserting a duplicate of
	// an existing (recipient, status, kind) row is a successful no-op, which
	// makes dispatch idempotent under retry.
	CreateNotification(ctx context.Context, n domain.Notification) error
}
