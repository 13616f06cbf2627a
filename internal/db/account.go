package db

import "context"

type Accounts interface {
	GetAuthDataByUsername(ctx context.Context, username string) (UserData, error)
	GetAuthDataByEmail(ctx context.Context, email string) (UserData, error)
}

type UserData struct {
	UserID    int64
	AccountID int64
	Username  string
	Password  string
	Admin     bool
}
