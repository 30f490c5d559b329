package sessions

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "todos"

// MinSecretLength is the shortest signing secret accepted, in bytes.
const MinSecretLength = 32

// ErrInvalidToken indicates a session cookie that fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// Signer issues and verifies HS256 session tokens carrying a session id.
type Signer struct {
	key []byte
	now func() time.Time
}

// NewSigner builds a signer from a shared secret.
func NewSigner(secret string, now func() time.Time) (*Signer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	if now == nil {
		now = time.Now
	}
	return &Signer{key: []byte(secret), now: now}, nil
}

// Sign returns a token naming sessionID that expires at expiresAt.
func (s *Signer) Sign(sessionID string, expiresAt time.Time) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", errors.New("session id is required")
	}
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify checks a token and returns the session id it names.
func (s *Signer) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !ValidID(claims.ID) {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidToken)
	}
	return claims.ID, nil
}

// GenerateSecret reads n random bytes from r and returns them base64url
// encoded. r defaults to crypto/rand.
func GenerateSecret(r io.Reader, n int) (string, error) {
	if n < MinSecretLength {
		return "", fmt.Errorf("secret must be at least %d bytes, got %d", MinSecretLength, n)
	}
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
