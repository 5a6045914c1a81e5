package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

// AuthService implements admin seeding, login and session checks.
type AuthService struct {
	repo       ports.AdminRepository
	revoker    ports.SessionRevoker
	jwtSecret  string
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

func NewAuthService(repo ports.AdminRepository, revoker ports.SessionRevoker, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		now:        time.Now,
		log:        log,
	}
}

// SessionTTL is how long a freshly issued session stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// EnsureAdmin creates the admin account unless one with that username exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	_, err = s.repo.Create(ctx, &domain.Admin{
		Username:       username,
		PasswordDigest: string(digest),
		CreatedAt:      s.now().UTC(),
	})
	if errors.Is(err, domain.ErrAdminExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.log.Info().Str("username", username).Msg("admin account seeded")
	return nil
}

// Login checks the credentials and issues a session token. Unknown users and
// wrong passwords are reported the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordDigest), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		TokenID:   uuid.NewString(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		Role:      domain.RoleAdmin,
		ExpiresAt: s.now().Add(s.sessionTTL).UTC(),
	}

	token, err := s.generateToken(session)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	return &ports.LoginResult{Token: token, Session: session}, nil
}

// Authenticate verifies the token signature, expiry and revocation status.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	session := sessionFromClaims(claims)
	if session.TokenID == "" || session.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthenticated
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
		if revoked {
			return nil, domain.ErrUnauthenticated
		}
	}

	return session, nil
}

// Logout revokes the session for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil || s.revoker == nil {
		return nil
	}
	ttl := session.Remaining(s.now())
	if ttl == 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("username", session.Username).Msg("session revoked")
	return nil
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":      session.AdminID,
		"username": session.Username,
		"role":     session.Role,
		"jti":      session.TokenID,
		"exp":      session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func sessionFromClaims(claims jwt.MapClaims) *domain.Session {
	session := &domain.Session{}
	session.AdminID, _ = claims["sub"].(string)
	session.Username, _ = claims["username"].(string)
	session.Role, _ = claims["role"].(string)
	session.TokenID, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time.UTC()
	}
	return session
}
