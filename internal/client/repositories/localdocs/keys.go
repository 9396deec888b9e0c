package localdocs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sehatbeat/internal/cryptox"
)

// Unlock derives the record key from secret and the salt kept in meta. The
// first call creates the salt and a verifier; later calls with another
// secret fail with cryptox.ErrWrongKey.
func Unlock(ctx context.Context, meta metadata.Repository, secret string) ([]byte, error) {
	salt, err := meta.GetOrCreate(ctx, metadata.KeySalt, cryptox.NewSalt)
	if err != nil {
		return nil, err
	}

	key := cryptox.DeriveKey([]byte(secret), salt)

	verifier, err := meta.GetOrCreate(ctx, metadata.KeyVerifier, func() []byte { return cryptox.MakeVerifier(key) })
	if err != nil {
		return nil, err
	}
	if err := cryptox.CheckVerifier(key, verifier); err != nil {
		return nil, fmt.Errorf("unlock local documents: %w", err)
	}
	return key, nil
}
