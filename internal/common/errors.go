// Package common defines shared constants and sentinel errors used across
// the server and client layers of adminpanel. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Request-level errors.
	ErrorValidation       = errors.New("validation error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorMethodNotAllowed = errors.New("method not allowed")
	ErrorInternal         = errors.New("internal error")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Error pairs a sentinel kind with a message meant for API clients.
// errors.Is(err, kind) holds for the returned value.
type Error struct {
	Kind    error
	Message string
}

// NewError returns an error of the given kind carrying a client-facing message.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// MessageOf returns the client-facing message of err, or fallback when err
// does not carry one.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
