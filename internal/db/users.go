package db

import (
	"context"
	"crypto"
	"net/url"
	"time"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.UserFed, error)
	// GetUserByHandle looks a user up by username and host, case insensitively.
	GetUserByHandle(ctx context.Context, username, host string) (domain.UserFed, error)
	GetUserApId(ctx context.Context, username string) (*url.URL, error)
	GetUserPrivateKeyByURI(ctx context.Context, iri *url.URL) (crypto.PrivateKey, error)
	// UpsertRemoteUser inserts a newly discovered remote user or refreshes an
	// already known one, and returns the stored row.
	UpsertRemoteUser(ctx context.Context, user domain.UserFed, fetched time.Time) (domain.UserFed, error)
	// InsertLocalUser persists the user together with their login account.
	InsertLocalUser(ctx context.Context, user domain.UserFedInternal, account domain.Account) error
}
