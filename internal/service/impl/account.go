package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/domain"
	"github.com/sidereusnuntius/goreads/internal/service"
	"github.com/sidereusnuntius/goreads/internal/utils"
	"github.com/sidereusnuntius/goreads/internal/validate"
)

// AuthenticateUser confirms the user's identity and, if their credentials are correct, returns data to be put
// in the login session, such as the user's name and id. user is either the user's name or their email address.
func (s *AppService) AuthenticateUser(ctx context.Context, user, password string) (u domain.Account, authenticated bool, err error) {
	user = strings.ToLower(strings.TrimSpace(user))

	var data db.UserData
	err = validate.Email(user)
	if err == nil {
		data, err = s.DB.GetAuthDataByEmail(ctx, user)
	} else if err = validate.Username(user); err == nil {
		data, err = s.DB.GetAuthDataByUsername(ctx, user)
	} else {
		err = errors.New("invalid username or email")
	}
	if errors.Is(err, db.ErrNotFound) {
		// Run the comparison anyway so a miss costs the same as a bad password.
		err = nil
	}

	err = errors.Join(err, validate.Password(password))
	if err != nil {
		err = fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(data.Password), []byte(password))
	authenticated = err == nil
	err = nil
	u = domain.Account{
		UserID:    data.UserID,
		AccountID: data.AccountID,
		Username:  data.Username,
		Admin:     data.Admin,
	}
	return
}

func (s *AppService) CreateUser(ctx context.Context, username, password, email string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	password = strings.TrimSpace(password)
	email = strings.ToLower(strings.TrimSpace(email))

	err := validate.SignUpForm(username, password, email)
	if err != nil {
		return fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}

	u, err := s.populateUser(username, "", "")
	if err != nil {
		return err
	}

	a, err := populateAccount(email, password, false)
	if err != nil {
		return err
	}

	return s.DB.InsertLocalUser(ctx, u, a)
}

func populateAccount(email, password string, admin bool) (account domain.Account, err error) {
	p, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	account = domain.Account{
		Admin:    admin,
		Password: string(p),
		Email:    email,
	}
	return
}

func (s *AppService) populateUser(username, name, summary string) (user domain.UserFedInternal, err error) {
	apId := s.Config.Url.JoinPath("/u/" + username)

	pub, priv, err := utils.GenerateKeysPem(s.Config.RsaKeySize)
	if err != nil {
		return
	}

	user = domain.UserFedInternal{
		UserFed: domain.UserFed{
			UserCore: domain.UserCore{
				Username: username,
				Name:     name,
				Summary:  summary,
				Host:     s.Config.Domain,
				Local:    true,
			},
			ApId:      apId,
			Inbox:     apId.JoinPath("/inbox"),
			Outbox:    apId.JoinPath("/outbox"),
			Followers: apId.JoinPath("/followers"),
			PublicKey: pub,
		},
		PrivateKey: priv,
	}

	return
}
