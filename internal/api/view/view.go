// Package view renders the admin pages from embedded html/template files.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageLogin      = "login"
	PageDashboard  = "dashboard"
	PageMachineNew = "machine_new"
	PageMachine    = "machine"
	PageRecords    = "records"
	PageRecord     = "record"
)

// Renderer implements echo.Renderer.
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

var funcs = template.FuncMap{
	"qty": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

// LoginPage is the data of PageLogin.
type LoginPage struct {
	Username string
	Error    string
}

// DashboardPage is the data of PageDashboard.
type DashboardPage struct {
	Admin    string
	Machines []domain.Machine
	Totals   domain.Totals
	Names    []string
	Today    string
}

// MachineNewPage is the data of PageMachineNew.
type MachineNewPage struct {
	Admin       string
	Ingredients []string
	Code        string
	Model       string
	Location    string
	Error       string
}

// MachinePage is the data of PageMachine.
type MachinePage struct {
	Admin   string
	Machine domain.Machine
	Error   string
}

// RecordsPage is the data of PageRecords.
type RecordsPage struct {
	Admin   string
	Records []domain.Record
	Today   string
}

// RecordPage is the data of PageRecord.
type RecordPage struct {
	Admin  string
	Record domain.Record
	Names  []string
}
