package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/api/metrics"
	"github.com/vendops/inventory-admin/internal/api/middleware"
	"github.com/vendops/inventory-admin/internal/api/view"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

const loginFailedMessage = "Invalid username or password"

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// LoginPage renders the login form, or skips it when the session is still valid.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if _, err := h.authService.Authenticate(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
	}
	return c.Render(http.StatusOK, view.PageLogin, view.LoginPage{})
}

// Login checks the credentials and sets the session cookie. Failures render
// the form again with one generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, view.PageLogin, view.LoginPage{Error: loginFailedMessage})
	}
	form.Username = strings.TrimSpace(form.Username)

	res, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return c.Render(http.StatusUnauthorized, view.PageLogin, view.LoginPage{
			Username: form.Username,
			Error:    loginFailedMessage,
		})
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := CurrentAdmin(c)
	if err == nil {
		if err := h.authService.Logout(c.Request().Context(), session); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
