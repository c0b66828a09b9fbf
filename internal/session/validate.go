package session

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/five82/folio/internal/placeholder"
)

const (
	minNameLen     = 2
	minUsernameLen = 3
	minPasswordLen = 6
)

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ValidateSignup checks the signup form before it reaches Signup.
func ValidateSignup(user placeholder.User, confirmPassword string) error {
	var errs []error
	errs = append(errs,
		minLength("First name", user.FirstName, minNameLen),
		minLength("Last name", user.LastName, minNameLen),
		minLength("Username", user.Username, minUsernameLen),
		minLength("Password", user.Password, minPasswordLen),
	)
	switch {
	case confirmPassword == "":
		errs = append(errs, errors.New("Confirm password is required"))
	case confirmPassword != user.Password:
		errs = append(errs, ErrPasswordMismatch)
	}
	return errors.Join(errs...)
}

// ValidateCredentials checks the login form before it reaches Login.
func ValidateCredentials(creds placeholder.Credentials) error {
	return errors.Join(
		minLength("Username", creds.Username, minUsernameLen),
		minLength("Password", creds.Password, minPasswordLen),
	)
}

func minLength(label, value string, n int) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s is required", label)
	}
	if utf8.RuneCountInString(value) < n {
		return fmt.Errorf("%s must be at least %d characters", label, n)
	}
	return nil
}
