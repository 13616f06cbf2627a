package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

// Store is the slice of the database the dispatcher writes to.
type Store interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
}

// Dispatcher records in-app notifications for local users. Remote users get
// theirs from their own instance once the activity arrives, so dispatching to
// them is a no-op.
type Dispatcher struct {
	store Store
}

func New(store Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Dispatch notifies recipient that actor did something involving status.
// Self-notifications and notifications to remote users are dropped. Sending
// the same notification twice leaves a single row behind.
func (d *Dispatcher) Dispatch(ctx context.Context, recipient domain.UserFed, kind string, status *domain.Status) error {
	if !recipient.Local {
		return nil
	}
	if recipient.ID == status.Author.ID {
		return nil
	}

	err := d.store.CreateNotification(ctx, domain.Notification{
		RecipientID: recipient.ID,
		Kind:        kind,
		ActorID:     status.Author.ID,
		StatusID:    status.ID,
	})
	if err != nil {
		return err
	}
	log.Debug().
		Int64("recipient", recipient.ID).
		Str("kind", kind).
		Int64("status", status.ID).
		Msg("notification dispatched")
	return nil
}
