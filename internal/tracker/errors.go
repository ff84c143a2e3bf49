package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested issue or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the token was rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is any other non-2xx response. Text is the server's message.
type APIError struct {
	Status int
	Text   string
}

func (e *APIError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Text)
}
