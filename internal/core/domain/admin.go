package domain

import (
	"errors"
	"time"
)

// RoleAdmin is the only role the system knows about.
const RoleAdmin = "admin"

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// Admin models the operator account allowed into the tool.
type Admin struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Session is the authenticated context attached to every admin request.
type Session struct {
	TokenID   string
	AdminID   string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Remaining returns how long the session stays valid from now.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
