package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrNoSubject    = errors.New("identity token has no subject")
)

// Provider verifies an identity token and returns the external subject id.
type Provider interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTProvider verifies HS256 tokens signed with the identity key.
type JWTProvider struct {
	key []byte
}

func NewJWTProvider(key string) *JWTProvider {
	return &JWTProvider{key: []byte(key)}
}

func (p *JWTProvider) Verify(_ context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return p.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrNoSubject
	}
	return claims.Subject, nil
}
