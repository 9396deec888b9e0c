package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	// argon2id, 1 pass, 64 MiB, 4 lanes
	assert.Equal(t, argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize), key1)
	assert.Equal(t, "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3", hex.EncodeToString(key1))
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestNewSalt(t *testing.T) {
	s1, s2 := NewSalt(), NewSalt()
	assert.Len(t, s1, SaltSize)
	assert.NotEqual(t, s1, s2)
}

type note struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())
	in := note{Title: "X-ray", Tags: []string{"ortho"}}

	ct, nonce, err := Seal(in, key)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "X-ray")

	var out note
	require.NoError(t, Open(ct, nonce, key, &out))
	assert.Equal(t, in, out)
}

func TestOpen_WrongKey(t *testing.T) {
	ct, nonce, err := Seal(note{Title: "a"}, DeriveKey([]byte("right"), []byte("salt")))
	require.NoError(t, err)

	var out note
	require.ErrorIs(t, Open(ct, nonce, DeriveKey([]byte("wrong"), []byte("salt")), &out), ErrWrongKey)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, _, err := Seal(note{}, []byte("short"))
	require.Error(t, err)
}

func TestVerifier(t *testing.T) {
	key := DeriveKey([]byte("pw"), []byte("salt"))
	v := MakeVerifier(key)

	require.NoError(t, CheckVerifier(key, v))
	require.ErrorIs(t, CheckVerifier(DeriveKey([]byte("other"), []byte("salt")), v), ErrWrongKey)
}
