package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/api/middleware"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

// recordingRenderer writes the page name and keeps the data for assertions.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := fmt.Fprint(w, name)
	return err
}

func newEcho() (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	r := &recordingRenderer{}
	e.Renderer = r
	e.Validator = NewValidator()
	return e, r
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// withSession runs the Auth middleware so c carries an admin session.
func withSession(t *testing.T, c echo.Context) {
	t.Helper()
	auth := &stubAuthService{authenticateFn: func(context.Context, string) (*domain.Session, error) {
		return &domain.Session{TokenID: "t1", Username: "admin", Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}}
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "token"})
	if err := middleware.Auth(auth)(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("auth middleware: %v", err)
	}
	if _, err := CurrentAdmin(c); err != nil {
		t.Fatalf("session not attached: %v", err)
	}
}

type stubAuthService struct {
	loginFn        func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	authenticateFn func(ctx context.Context, token string) (*domain.Session, error)
	logoutFn       func(ctx context.Context, session *domain.Session) error
}

func (s *stubAuthService) EnsureAdmin(context.Context, string, string) error { return nil }

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if s.authenticateFn == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, session *domain.Session) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, session)
}

func (s *stubAuthService) SessionTTL() time.Duration { return time.Hour }

type stubInventoryService struct {
	ports.InventoryService
	getFn    func(ctx context.Context, id string) (*domain.Machine, error)
	createFn func(ctx context.Context, in ports.CreateMachineInput) (*domain.Machine, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateMachineInput) error
	saveFn   func(ctx context.Context, id string, ings []domain.Ingredient) error
	deleteFn func(ctx context.Context, id string) error
	toggleFn func(ctx context.Context, id string) (bool, error)
	totalsFn func(ctx context.Context) (domain.Totals, error)
	dashFn   func(ctx context.Context) (*ports.DashboardView, error)
}

func (s *stubInventoryService) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	return s.getFn(ctx, id)
}

func (s *stubInventoryService) CreateMachine(ctx context.Context, in ports.CreateMachineInput) (*domain.Machine, error) {
	return s.createFn(ctx, in)
}

func (s *stubInventoryService) UpdateMachine(ctx context.Context, id string, in ports.UpdateMachineInput) error {
	return s.updateFn(ctx, id, in)
}

func (s *stubInventoryService) SaveQuantities(ctx context.Context, id string, ings []domain.Ingredient) error {
	return s.saveFn(ctx, id, ings)
}

func (s *stubInventoryService) DeleteMachine(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubInventoryService) ToggleSelection(ctx context.Context, id string) (bool, error) {
	return s.toggleFn(ctx, id)
}

func (s *stubInventoryService) CurrentTotals(ctx context.Context) (domain.Totals, error) {
	return s.totalsFn(ctx)
}

func (s *stubInventoryService) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	return s.dashFn(ctx)
}

type stubReportService struct {
	ports.ReportService
	saveFn   func(ctx context.Context) (*domain.Record, error)
	listFn   func(ctx context.Context) ([]domain.Record, error)
	getFn    func(ctx context.Context, id string) (*domain.Record, error)
	deleteFn func(ctx context.Context, id string) error
	exportFn func(ctx context.Context, in ports.ExportInput) (*ports.ExportResult, error)
}

func (s *stubReportService) SaveReport(ctx context.Context) (*domain.Record, error) {
	return s.saveFn(ctx)
}

func (s *stubReportService) ListRecords(ctx context.Context) ([]domain.Record, error) {
	return s.listFn(ctx)
}

func (s *stubReportService) GetRecord(ctx context.Context, id string) (*domain.Record, error) {
	return s.getFn(ctx, id)
}

func (s *stubReportService) DeleteRecord(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubReportService) Export(ctx context.Context, in ports.ExportInput) (*ports.ExportResult, error) {
	return s.exportFn(ctx, in)
}

func today() string { return "2024-01-05" }
