package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized maps a 401 response. Reads of the cart treat it as
	// "no entity for this anonymous session", not as a failure.
	ErrUnauthorized = errors.New("api: unauthorized")

	ErrNotFound = errors.New("api: not found")
)

// StatusError carries a non-2xx backend response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned status %d", e.Code)
	}
	return fmt.Sprintf("api: backend returned status %d: %s", e.Code, e.Message)
}
