// Package session maps opaque admin bearer tokens to admin ids.
package session

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("session registry closed")

type Registry interface {
	// Create issues a fresh token bound to adminID.
	Create(ctx context.Context, adminID uint) (string, error)
	// Resolve reports the admin id bound to token. ok is false for unknown
	// tokens; err is reserved for backend failures.
	Resolve(ctx context.Context, token string) (adminID uint, ok bool, err error)
	Close(ctx context.Context) error
}
