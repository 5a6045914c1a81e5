package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/api/middleware"
	"github.com/vendops/inventory-admin/internal/core/domain"
)

// CurrentAdmin returns the session the Auth middleware attached to the
// request. Handlers behind Auth can rely on it; elsewhere it reports
// ErrUnauthenticated.
func CurrentAdmin(c echo.Context) (*domain.Session, error) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

func adminName(c echo.Context) string {
	if session, err := CurrentAdmin(c); err == nil {
		return session.Username
	}
	return ""
}
