package service

import (
	"context"
	"errors"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

var (
	ErrInvalidInput = errors.New("invalid")
	// ErrUnauthorized is returned when someone tries to act on a status they
	// do not own.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnknownVariant rejects a create request whose status kind is not in
	// the registry. Nothing is persisted or broadcast.
	ErrUnknownVariant = errors.New("unknown status type")
)

// StatusForm carries the author's input for a new status. Which fields are
// meaningful depends on the variant being created.
type StatusForm struct {
	Content        string
	ContentWarning string
	Sensitive      bool
	ReplyParentID  int64
	Book           string
	Rating         int
	Quote          string
}

type Service interface {
	// AuthenticateUser takes the user's identifier, which may be their username or email address, and password
	// and verifies if these credentials are correct. If authentication fails, authenticated is false and
	// err is nil; a non nil error indicates that an internal, unexpected error has occured.
	AuthenticateUser(ctx context.Context, user, password string) (u domain.Account, authenticated bool, err error)
	// CreateUser inserts a new, local user, also creating their corresponding account, for which the email and password
	// are needed.
	CreateUser(ctx context.Context, username, password, email string) error

	// CreateStatus runs the full authoring pipeline for the given variant
	// tag: validation, mention resolution, rendering, persistence,
	// notifications and federation fan-out.
	CreateStatus(ctx context.Context, authorId int64, variantTag string, form StatusForm) (domain.Status, error)
	// DeleteStatus tombstones a status. Only its author may do so.
	DeleteStatus(ctx context.Context, requesterId, statusId int64) error
	GetStatus(ctx context.Context, id int64) (domain.Status, error)

	GetLocalUser(ctx context.Context, username string) (domain.UserFed, error)
	GetUserProfile(ctx context.Context, username, host string) (domain.Profile, error)
}
