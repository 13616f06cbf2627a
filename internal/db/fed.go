package db

import (
	"context"
	"net/url"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

type Fed interface {
	// GetFollowerInboxes lists the inboxes following the given actor,
	// together with the software their instances report.
	GetFollowerInboxes(ctx context.Context, actor *url.URL) ([]domain.FollowerInbox, error)
	GetActorInbox(ctx context.Context, actor *url.URL) (*url.URL, error)
	GetInstanceIdOrCreate(ctx context.Context, hostname string) (int64, error)
}
