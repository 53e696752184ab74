package session

import (
	"context"
	"fmt"
	"strings"

	redisclient "github.com/angelmondragon/storefront-backend/pkg/redis"
)

type revocationStore interface {
	IsSessionRevoked(ctx context.Context, jti string) (bool, error)
}

// RevocationChecker is the read-only surface needed by the auth middleware.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Revocations looks up access token ids revoked by the identity service.
type Revocations struct {
	store revocationStore
}

// NewRevocations constructs a checker backed by Redis.
func NewRevocations(client *redisclient.Client) (*Revocations, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Revocations{store: client}, nil
}

// IsRevoked reports whether the token id was revoked. Tokens without a jti
// cannot be revoked.
func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	return r.store.IsSessionRevoked(ctx, jti)
}
