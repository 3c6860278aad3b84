// Package session stores the CLI's login session (token and identity) as
// key/value pairs in the local SQLite database.
package session

import (
	"context"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all pairs in one transaction.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
