// Package storage is the browser local/session storage analog: a small
// key-value surface the stores persist their blobs to. Writes are
// best-effort from the stores' point of view; a failed write is logged and
// never fails the mutation that triggered it.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Well-known keys, kept byte-compatible with the persisted web client state.
const (
	KeyCartSelection = "cart-storage"
	KeyCheckoutData  = "checkoutData"
)

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
