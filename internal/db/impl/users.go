package impl

import (
	"context"
	"crypto"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/domain"
	"github.com/sidereusnuntius/goreads/internal/utils"
)

const userColumns = `id, username, name, host, summary, local, url, ap_id, inbox, outbox, followers, public_key, created, last_updated`

func prefixedUserColumns(alias string) string {
	cols := strings.Split(userColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.UserFed, error) {
	var u domain.UserFed
	var rawURL, apId, inbox, outbox, followers sql.NullString
	var created, updated int64

	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.Host, &u.Summary, &u.Local,
		&rawURL, &apId, &inbox, &outbox, &followers, &u.PublicKey,
		&created, &updated,
	)
	if err != nil {
		return domain.UserFed{}, err
	}

	u.URL = parseNullURL(rawURL)
	u.ApId = parseNullURL(apId)
	u.Inbox = parseNullURL(inbox)
	u.Outbox = parseNullURL(outbox)
	u.Followers = parseNullURL(followers)
	u.Created = time.Unix(created, 0).UTC()
	u.LastUpdated = time.Unix(updated, 0).UTC()
	return u, nil
}

func parseNullURL(s sql.NullString) *url.URL {
	if !s.Valid || s.String == "" {
		return nil
	}
	u, err := url.Parse(s.String)
	if err != nil {
		return nil
	}
	return u
}

func nullURL(u *url.URL) sql.NullString {
	if u == nil {
		return sql.NullString{}
	}
	return sql.NullString{Valid: true, String: u.String()}
}

func (d *dbImpl) GetUserByID(ctx context.Context, id int64) (domain.UserFed, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	return u, d.HandleError(err)
}

func (d *dbImpl) GetUserByHandle(ctx context.Context, username, host string) (domain.UserFed, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER(?) AND LOWER(host) = LOWER(?)`,
		username, host,
	)
	u, err := scanUser(row)
	return u, d.HandleError(err)
}

func (d *dbImpl) GetUserApId(ctx context.Context, username string) (*url.URL, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT ap_id FROM users WHERE LOWER(username) = LOWER(?) AND local`, username)
	var apId string
	if err := row.Scan(&apId); err != nil {
		return nil, d.HandleError(err)
	}
	return url.Parse(apId)
}

func (d *dbImpl) GetUserPrivateKeyByURI(ctx context.Context, iri *url.URL) (crypto.PrivateKey, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT private_key FROM users WHERE ap_id = ?
		UNION ALL
		SELECT private_key FROM instances WHERE url = ?
		LIMIT 1`,
		iri.String(), iri.String(),
	)

	var keyPem sql.NullString
	if err := row.Scan(&keyPem); err != nil {
		return nil, d.HandleError(err)
	}
	if !keyPem.Valid || keyPem.String == "" {
		return nil, db.ErrNotFound
	}

	key, err := utils.ParsePrivateKeyPem(keyPem.String)
	if err != nil {
		return nil, fmt.Errorf("stored key for %s: %w", iri, err)
	}
	return key, nil
}

func (d *dbImpl) UpsertRemoteUser(ctx context.Context, user domain.UserFed, fetched time.Time) (domain.UserFed, error) {
	if user.ApId == nil {
		return domain.UserFed{}, fmt.Errorf("remote user %s has no IRI", user.Username)
	}

	if _, err := d.GetInstanceIdOrCreate(ctx, user.Host); err != nil {
		return domain.UserFed{}, err
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO users (username, name, host, summary, local, url, ap_id, inbox, outbox, followers, public_key, created, last_updated)
		VALUES (?, ?, ?, ?, FALSE, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (ap_id) DO UPDATE SET
			name = excluded.name,
			summary = excluded.summary,
			url = excluded.url,
			inbox = excluded.inbox,
			outbox = excluded.outbox,
			followers = excluded.followers,
			public_key = excluded.public_key,
			last_updated = excluded.last_updated`,
		strings.ToLower(user.Username), user.Name, strings.ToLower(user.Host), user.Summary,
		nullURL(user.URL), user.ApId.String(), nullURL(user.Inbox), nullURL(user.Outbox),
		nullURL(user.Followers), user.PublicKey, fetched.Unix(), fetched.Unix(),
	)
	if err != nil {
		return domain.UserFed{}, d.HandleError(err)
	}

	return d.GetUserByHandle(ctx, user.Username, user.Host)
}

func (d *dbImpl) InsertLocalUser(ctx context.Context, user domain.UserFedInternal, account domain.Account) error {
	return d.WithTx(func(tx *sql.Tx) error {
		now := time.Now().Unix()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, name, host, summary, local, url, ap_id, inbox, outbox, followers, public_key, private_key, created, last_updated)
			VALUES (?, ?, ?, ?, TRUE, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			strings.ToLower(user.Username), user.Name, user.Host, user.Summary,
			nullURL(user.URL), user.ApId.String(), nullURL(user.Inbox), nullURL(user.Outbox),
			nullURL(user.Followers), user.PublicKey, user.PrivateKey, now, now,
		)
		if err != nil {
			return err
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (user_id, email, password, admin) VALUES (?, ?, ?, ?)`,
			id, account.Email, account.Password, account.Admin,
		)
		return err
	})
}
