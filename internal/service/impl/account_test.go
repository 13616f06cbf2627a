package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/domain"
	"github.com/sidereusnuntius/goreads/internal/service"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestAuthenticateUser(t *testing.T) {
	svc, mockDB, _ := newService(t)
	password := "correct horse battery"
	data := db.UserData{
		UserID:    1,
		AccountID: 2,
		Username:  "ada",
		Password:  hash(t, password),
	}

	mockDB.EXPECT().GetAuthDataByUsername(gomock.Any(), "ada").Return(data, nil).Times(2)

	account, ok, err := svc.AuthenticateUser(context.Background(), "Ada ", password)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected the right password to authenticate")
	}
	if account.UserID != 1 || account.AccountID != 2 || account.Username != "ada" {
		t.Errorf("unexpected account data: %+v", account)
	}

	_, ok, err = svc.AuthenticateUser(context.Background(), "ada", "wrong password")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("a wrong password must not authenticate")
	}
}

func TestAuthenticateUserByEmail(t *testing.T) {
	svc, mockDB, _ := newService(t)
	password := "correct horse battery"
	data := db.UserData{UserID: 1, Username: "ada", Password: hash(t, password)}

	mockDB.EXPECT().GetAuthDataByEmail(gomock.Any(), "ada@example.com").Return(data, nil)

	_, ok, err := svc.AuthenticateUser(context.Background(), "ada@example.com", password)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected authentication by email to work")
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, mockDB, _ := newService(t)
	mockDB.EXPECT().GetAuthDataByUsername(gomock.Any(), "ghost").Return(db.UserData{}, db.ErrNotFound)

	// An unknown user looks exactly like a bad password.
	_, ok, err := svc.AuthenticateUser(context.Background(), "ghost", "some password")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("an unknown user must not authenticate")
	}
}

func TestAuthenticateShortPassword(t *testing.T) {
	svc, mockDB, _ := newService(t)
	mockDB.EXPECT().GetAuthDataByUsername(gomock.Any(), "ada").Return(db.UserData{}, db.ErrNotFound)

	_, _, err := svc.AuthenticateUser(context.Background(), "ada", "pw")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	svc, mockDB, _ := newService(t)

	mockDB.EXPECT().InsertLocalUser(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u domain.UserFedInternal, a domain.Account) error {
			if u.Username != "ada" || !u.Local || u.Host != "books.example" {
				t.Errorf("unexpected user: %+v", u.UserCore)
			}
			if u.ApId.String() != "https://books.example/u/ada" {
				t.Errorf("unexpected ap_id %s", u.ApId)
			}
			if u.PublicKey == "" || u.PrivateKey == "" {
				t.Error("expected a generated key pair")
			}
			if a.Email != "ada@example.com" {
				t.Errorf("unexpected email %q", a.Email)
			}
			if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("long enough pw")); err != nil {
				t.Error("stored password does not match:", err)
			}
			return nil
		})

	if err := svc.CreateUser(context.Background(), " Ada ", "long enough pw", "Ada@Example.com"); err != nil {
		t.Fatal(err)
	}
}

func TestCreateUserInvalid(t *testing.T) {
	svc, _, _ := newService(t)

	tests := []struct {
		name     string
		username string
		password string
		email    string
	}{
		{"short password", "ada", "short", "ada@example.com"},
		{"bad email", "ada", "long enough pw", "not-an-email"},
		{"empty username", "", "long enough pw", "ada@example.com"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := svc.CreateUser(context.Background(), test.username, test.password, test.email)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
