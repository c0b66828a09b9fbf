package state

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const minCommentBodyLen = 10

// ErrInvalidEmail is returned for an email that does not parse as an address.
var ErrInvalidEmail = errors.New("Email must be a valid email address")

// ValidateComment checks the add-comment form before AddUserComment.
func ValidateComment(name, email, body string) error {
	var errs []error
	if strings.TrimSpace(name) == "" {
		errs = append(errs, errors.New("Name is required"))
	}
	switch {
	case strings.TrimSpace(email) == "":
		errs = append(errs, errors.New("Email is required"))
	case !validEmail(email):
		errs = append(errs, ErrInvalidEmail)
	}
	switch {
	case strings.TrimSpace(body) == "":
		errs = append(errs, errors.New("Comment is required"))
	case utf8.RuneCountInString(body) < minCommentBodyLen:
		errs = append(errs, errors.New("Comment must be at least 10 characters"))
	}
	return errors.Join(errs...)
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
