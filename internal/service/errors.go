package service

import (
	"errors"
	"fmt"

	"github.com/corpsite/corpsite/internal/store"
)

var (
	// ErrInvalidCredentials is returned for any failed login, whether the
	// account is missing or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for any bearer token that fails
	// verification. The underlying cause is wrapped alongside it.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports input that was rejected before reaching the store.
// Its message is safe to return to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the entity that was not found. It unwraps to
// store.ErrNotFound.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Unwrap() error { return store.ErrNotFound }

// notFound replaces store.ErrNotFound with a NotFoundError carrying msg.
// Other errors are returned unchanged.
func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Message: msg}
	}
	return err
}
