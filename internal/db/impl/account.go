package impl

import (
	"context"

	"github.com/sidereusnuntius/goreads/internal/db"
)

const authQuery = `
	SELECT u.id, a.id, u.username, a.password, a.admin
	FROM accounts a JOIN users u ON u.id = a.user_id`

func (d *dbImpl) GetAuthDataByUsername(ctx context.Context, username string) (db.UserData, error) {
	row := d.db.QueryRowContext(ctx, authQuery+` WHERE LOWER(u.username) = LOWER(?) AND u.local`, username)

	var u db.UserData
	err := row.Scan(&u.UserID, &u.AccountID, &u.Username, &u.Password, &u.Admin)
	return u, d.HandleError(err)
}

func (d *dbImpl) GetAuthDataByEmail(ctx context.Context, email string) (db.UserData, error) {
	row := d.db.QueryRowContext(ctx, authQuery+` WHERE LOWER(a.email) = LOWER(?)`, email)

	var u db.UserData
	err := row.Scan(&u.UserID, &u.AccountID, &u.Username, &u.Password, &u.Admin)
	return u, d.HandleError(err)
}
