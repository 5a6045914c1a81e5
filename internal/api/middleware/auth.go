package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "inventory_session"
	// LoginPath is where unauthenticated page requests are sent.
	LoginPath = "/login"

	sessionKey = "session"
	jsonKey    = "json_route"
)

// Auth resolves the session cookie into a *domain.Session stored on the
// context. Unauthenticated page requests are redirected to the login page;
// JSON requests get 401 {"success":false}.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return deny(c)
			}

			session, err := auth.Authenticate(c.Request().Context(), cookie.Value)
			if errors.Is(err, domain.ErrUnauthenticated) {
				return deny(c)
			}
			if err != nil {
				return err
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

func deny(c echo.Context) error {
	if WantsJSON(c) {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "authentication required",
		})
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// SessionFrom returns the session stored by Auth, if any.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	s, ok := c.Get(sessionKey).(*domain.Session)
	return s, ok && s != nil
}

// JSON marks the route as answering in JSON, so auth failures and errors are
// rendered as JSON even when the client sent no Accept header.
func JSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(jsonKey, true)
			return next(c)
		}
	}
}

// WantsJSON reports whether the response should be JSON rather than a page.
func WantsJSON(c echo.Context) bool {
	if marked, _ := c.Get(jsonKey).(bool); marked {
		return true
	}
	req := c.Request()
	if strings.EqualFold(req.Header.Get(echo.HeaderXRequestedWith), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
