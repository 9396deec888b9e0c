// Package metadata stores small client-side values (the local key salt and
// its verifier) in the local SQLite database.
package metadata

import (
	"context"
)

const (
	KeySalt     = "local_salt"
	KeyVerifier = "local_key_verifier"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// GetOrCreate returns the stored value, storing gen() first when the key
	// is absent.
	GetOrCreate(ctx context.Context, key string, gen func() []byte) ([]byte, error)
}
