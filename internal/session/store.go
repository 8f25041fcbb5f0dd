// Package session holds logged-in identities behind an injectable Store
// so handlers never touch a process-wide map directly.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/sahan-deakin/something-awesome/internal/domain"
)

// Store maps opaque tokens to sessions.
type Store interface {
	// Create stores s under a freshly generated token and returns the token.
	Create(ctx context.Context, s domain.Session) (string, error)
	// Get returns the session for token. ok is false when the token is
	// unknown, expired, or already deleted.
	Get(ctx context.Context, token string) (domain.Session, bool, error)
	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

// newToken returns 128 bits from crypto/rand, hex-encoded.
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
