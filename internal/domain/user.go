package domain

import (
	"net/url"
	"time"
)

type Account struct {
	UserID    int64
	AccountID int64
	Username  string
	Email     string
	Password  string
	Admin     bool
}

type UserCore struct {
	ID       int64
	Username string
	Name     string
	Host     string
	Summary  string
	// Local is true for users whose account lives on this instance.
	Local bool
	URL   *url.URL
}

// Handle returns the user's reference in @user@host form.
func (u UserCore) Handle() string {
	return "@" + u.Username + "@" + u.Host
}

type UserFed struct {
	UserCore
	ApId        *url.URL
	Inbox       *url.URL
	Outbox      *url.URL
	Followers   *url.URL
	PublicKey   string
	Created     time.Time
	LastUpdated time.Time
}

type UserFedInternal struct {
	UserFed
	PrivateKey string
}

type Profile struct {
	UserCore
	Statuses []Status
}
