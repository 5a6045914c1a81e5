package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vendops/inventory-admin/docs"
	"github.com/vendops/inventory-admin/internal/api/handler"
	"github.com/vendops/inventory-admin/internal/api/middleware"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
	"github.com/vendops/inventory-admin/internal/infrastructure/http/handlers"
	"github.com/vendops/inventory-admin/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Inventory ports.InventoryService
	Reports   ports.ReportService
	// Readiness lists the dependencies pinged by /health/ready.
	Readiness map[string]handlers.Pinger
	Renderer  echo.Renderer
	// Today returns the current calendar date for form defaults.
	Today        func() string
	SecureCookie bool
	Logger       zerolog.Logger
	// Registry defaults to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(logger.EchoMiddleware(d.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	promCfg := echoprometheus.MiddlewareConfig{
		Subsystem: "inventory_admin",
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health")
		},
	}
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Public routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.SecureCookie)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)

	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- Admin routes ---
	page := []echo.MiddlewareFunc{middleware.Auth(d.Auth), middleware.RBAC(domain.RoleAdmin)}
	jsonRoute := append([]echo.MiddlewareFunc{middleware.JSON()}, page...)

	machines := handler.NewMachineHandler(d.Inventory, d.Today)
	reports := handler.NewReportHandler(d.Reports, d.Today)

	e.GET("/logout", authHandler.Logout, page...)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}, page...)
	e.GET("/dashboard", machines.Dashboard, page...)

	e.GET("/machine/new", machines.NewMachinePage, page...)
	e.POST("/machine/new", machines.CreateMachine, page...)
	e.GET("/machine/:id", machines.ShowMachine, page...)
	e.POST("/machine/:id/edit", machines.UpdateMachine, page...)
	e.POST("/machine/:id/save", machines.SaveQuantities, page...)
	e.POST("/machine/:id/delete", machines.DeleteMachine, page...)
	e.POST("/machine/:id/toggle", machines.ToggleSelection, jsonRoute...)
	e.GET("/totals", machines.Totals, jsonRoute...)

	e.POST("/save-report", reports.SaveReport, jsonRoute...)
	e.GET("/records", reports.ListRecords, page...)
	e.GET("/record/:id", reports.ShowRecord, page...)
	e.DELETE("/record/:id", reports.DeleteRecord, jsonRoute...)
	e.POST("/generate-report", reports.GenerateReport, page...)

	e.GET("/swagger/*", echoSwagger.WrapHandler, page...)

	return e
}
