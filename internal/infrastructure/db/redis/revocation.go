package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vendops/inventory-admin/internal/core/ports"
)

// Revoker records logged-out session tokens until they would have expired.
// Key format: session:revoked:<token_id>
type Revoker struct {
	client *redis.Client
}

// NewRevoker creates a Revoker wrapping the given Redis client.
func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client}
}

var _ ports.SessionRevoker = (*Revoker)(nil)

// Revoke marks tokenID as logged out. A non-positive ttl means the token has
// already expired and nothing is stored.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func key(tokenID string) string {
	return "session:revoked:" + tokenID
}
