package service

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateUser means the email is already registered.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized means the token is missing, malformed or expired.
	ErrUnauthorized = errors.New("token is not valid")
	// ErrNotFound means the requested user or profile does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoGithubProfile means the upstream GitHub lookup failed.
	ErrNoGithubProfile = errors.New("no github profile found")
)

type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Param+": "+fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

func newValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
