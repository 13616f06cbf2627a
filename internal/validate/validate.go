package validate

import (
	"errors"
	"fmt"
	"net/mail"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
	MaxUsernameLen = 64
	MaxRating      = 5
)

func SignUpForm(name, password, email string) error {
	return errors.Join(
		Username(name),
		Email(email),
		Password(password),
	)
}

// StatusForm checks the parts of a status submission that are wrong on their
// face. Anything needing a lookup belongs to the pipeline, not here.
func StatusForm(content string, rating int) error {
	var errs []error
	if len(content) == 0 {
		errs = append(errs, errors.New("empty content"))
	}
	if rating < 0 || rating > MaxRating {
		errs = append(errs, fmt.Errorf("rating out of range; 0 to %d", MaxRating))
	}
	return errors.Join(errs...)
}

func Password(password string) error {
	l := len(password)
	switch {
	case l == 0:
		return errors.New("empty password")
	case l < MinPasswordLen:
		return fmt.Errorf("password too short; min %d characters", MinPasswordLen)
	case l > MaxPasswordLen:
		return fmt.Errorf("password too long; max %d characters", MaxPasswordLen)
	}
	return nil
}

func Email(email string) error {
	if len(email) == 0 {
		return errors.New("empty email")
	}
	_, err := mail.ParseAddress(email)

	return err
}

func Username(username string) error {
	if l := len(username); l == 0 {
		return errors.New("empty username")
	} else if l > MaxUsernameLen {
		return fmt.Errorf("username too long; max %d characters", MaxUsernameLen)
	}
	return nil
}
