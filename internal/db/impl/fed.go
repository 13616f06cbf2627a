package impl

import (
	"context"
	"net/url"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

func (d *dbImpl) GetFollowerInboxes(ctx context.Context, actor *url.URL) ([]domain.FollowerInbox, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT f.follower_inbox, COALESCE(i.software, '')
		FROM follows f LEFT JOIN instances i ON i.hostname = f.follower_host
		WHERE f.followee_ap_id = ? AND f.accepted`,
		actor.String(),
	)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	var inboxes []domain.FollowerInbox
	for rows.Next() {
		var inbox, software string
		if err = rows.Scan(&inbox, &software); err != nil {
			return nil, d.HandleError(err)
		}

		iri, err := url.Parse(inbox)
		if err != nil {
			continue
		}
		inboxes = append(inboxes, domain.FollowerInbox{Inbox: iri, Software: software})
	}

	return inboxes, d.HandleError(rows.Err())
}

func (d *dbImpl) GetActorInbox(ctx context.Context, actor *url.URL) (*url.URL, error) {
	row := d.db.QueryRowContext(ctx, `SELECT inbox FROM users WHERE ap_id = ?`, actor.String())
	var inbox string
	if err := row.Scan(&inbox); err != nil {
		return nil, d.HandleError(err)
	}
	return url.Parse(inbox)
}

func (d *dbImpl) GetInstanceIdOrCreate(ctx context.Context, hostname string) (int64, error) {
	row := d.db.QueryRowContext(ctx, `SELECT id FROM instances WHERE hostname = ?`, hostname)
	var id int64
	err := row.Scan(&id)
	if err == nil {
		return id, nil
	}

	res, err := d.db.ExecContext(ctx, `INSERT OR IGNORE INTO instances (hostname) VALUES (?)`, hostname)
	if err != nil {
		return 0, d.HandleError(err)
	}
	return res.LastInsertId()
}
