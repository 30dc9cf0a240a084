package store

import "errors"

var (
	// ErrUpdateInFlight means a mutation for the same entity id has not
	// settled yet. Double-submits fail fast instead of queueing.
	ErrUpdateInFlight = errors.New("store: update already in flight for this item")

	ErrNotInitialized  = errors.New("store: not initialized")
	ErrInvalidQuantity = errors.New("store: invalid quantity")
	ErrInvalidInput    = errors.New("store: invalid input")
	ErrNoCheckout      = errors.New("store: no active checkout")
	ErrNotFound        = errors.New("store: not found")
)
