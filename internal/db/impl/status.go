package impl

import (
	"context"
	"database/sql"
	"net/url"
	"strconv"
	"time"

	"github.com/sidereusnuntius/goreads/internal/domain"
)

func (d *dbImpl) CreateStatus(ctx context.Context, status *domain.Status) error {
	now := time.Now()
	return d.WithTx(func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO statuses (ap_id, user_id, variant, source, content, content_warning, sensitive, reply_parent_id, book, rating, quote, published, updated)
			VALUES ('', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			status.Author.ID, status.Variant.Tag, status.Source, status.Content,
			status.ContentWarning, status.Sensitive, replyParentId(status),
			nullURL(status.Book), status.Rating, status.Quote, now.Unix(), now.Unix(),
		)
		if err != nil {
			return err
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		apId := d.Config.Url.JoinPath("s", strconv.FormatInt(id, 10))
		if _, err = tx.ExecContext(ctx, `UPDATE statuses SET ap_id = ? WHERE id = ?`, apId.String(), id); err != nil {
			return err
		}

		for user := range status.Mentions.All() {
			_, err = tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO status_mentions (status_id, user_id) VALUES (?, ?)`,
				id, user.ID,
			)
			if err != nil {
				return err
			}
		}

		status.ID = id
		status.ApId = apId
		status.Published = now.UTC()
		status.Updated = now.UTC()
		return nil
	})
}

func replyParentId(status *domain.Status) sql.NullInt64 {
	if status.ReplyParent == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Valid: true, Int64: status.ReplyParent.ID}
}

func (d *dbImpl) GetStatus(ctx context.Context, id int64) (domain.Status, error) {
	status, err := d.getStatusRow(ctx, id)
	if err != nil {
		return domain.Status{}, err
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT `+prefixedUserColumns("u")+`
		FROM status_mentions m JOIN users u ON u.id = m.user_id
		WHERE m.status_id = ?`, id)
	if err != nil {
		return domain.Status{}, d.HandleError(err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return domain.Status{}, d.HandleError(err)
		}
		status.Mentions.Add(u)
	}

	return status, d.HandleError(rows.Err())
}

func (d *dbImpl) getStatusRow(ctx context.Context, id int64) (domain.Status, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, ap_id, user_id, variant, source, content, content_warning, sensitive, reply_parent_id, book, rating, quote, tombstoned, published, updated
		FROM statuses WHERE id = ?`, id)

	var s domain.Status
	var apId string
	var variant string
	var authorId int64
	var replyParent sql.NullInt64
	var book sql.NullString
	var published, updated int64

	err := row.Scan(
		&s.ID, &apId, &authorId, &variant, &s.Source, &s.Content, &s.ContentWarning,
		&s.Sensitive, &replyParent, &book, &s.Rating, &s.Quote, &s.Tombstoned,
		&published, &updated,
	)
	if err != nil {
		return domain.Status{}, d.HandleError(err)
	}

	s.ApId, _ = url.Parse(apId)
	s.Variant, _ = domain.VariantByTag(variant)
	s.Book = parseNullURL(book)
	s.Published = time.Unix(published, 0).UTC()
	s.Updated = time.Unix(updated, 0).UTC()

	if s.Author, err = d.GetUserByID(ctx, authorId); err != nil {
		return domain.Status{}, err
	}

	if replyParent.Valid {
		parent, err := d.getStatusRow(ctx, replyParent.Int64)
		if err != nil {
			return domain.Status{}, err
		}
		s.ReplyParent = &parent
	}

	return s, nil
}

func (d *dbImpl) TombstoneStatus(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE statuses SET source = '', content = '', quote = '', tombstoned = TRUE, updated = ?
		WHERE id = ?`,
		time.Now().Unix(), id,
	)
	if err != nil {
		return d.HandleError(err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return d.HandleError(sql.ErrNoRows)
	}
	return nil
}

func (d *dbImpl) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO notifications (recipient_id, kind, actor_id, status_id, read, created)
		VALUES (?, ?, ?, ?, FALSE, ?)`,
		n.RecipientID, n.Kind, n.ActorID, n.StatusID, time.Now().Unix(),
	)
	return d.HandleError(err)
}
