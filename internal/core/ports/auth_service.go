package ports

import (
	"context"
	"time"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// LoginResult carries the signed session token and its decoded claims.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

type AuthService interface {
	EnsureAdmin(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
	SessionTTL() time.Duration
}

// SessionRevoker keeps the list of logged-out session token IDs.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
