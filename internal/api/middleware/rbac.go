package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC lets through sessions whose role is in allowedRoles. It must run after
// Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFrom(c)
			if !ok {
				return deny(c)
			}
			if _, ok := allowed[session.Role]; !ok {
				if WantsJSON(c) {
					return c.JSON(http.StatusForbidden, map[string]any{"success": false, "error": "forbidden"})
				}
				return c.String(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
