package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/api/view"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

func TestMachineHandler_ToggleSelection(t *testing.T) {
	e, _ := newEcho()
	stub := &stubInventoryService{
		toggleFn: func(_ context.Context, id string) (bool, error) {
			if id != "m1" {
				return false, domain.ErrMachineNotFound
			}
			return true, nil
		},
	}
	h := NewMachineHandler(stub, today)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/machine/m1/toggle", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	if err := h.ToggleSelection(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp toggleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusOK || !resp.Success || !resp.IsSelected {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/machine/zz/toggle", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("zz")
	if err := h.ToggleSelection(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMachineHandler_Totals(t *testing.T) {
	e, _ := newEcho()
	stub := &stubInventoryService{
		totalsFn: func(context.Context) (domain.Totals, error) {
			return domain.Totals{"Milk": 5.5, "Sugar": 1}, nil
		},
	}

	rec := httptest.NewRecorder()
	if err := NewMachineHandler(stub, today).Totals(e.NewContext(httptest.NewRequest(http.MethodGet, "/totals", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if diff := cmp.Diff(map[string]float64{"Milk": 5.5, "Sugar": 1}, got); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestMachineHandler_ShowMachine_NotFoundRedirects(t *testing.T) {
	e, _ := newEcho()
	stub := &stubInventoryService{
		getFn: func(context.Context, string) (*domain.Machine, error) {
			return nil, domain.ErrMachineNotFound
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/machine/missing", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := NewMachineHandler(stub, today).ShowMachine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestMachineHandler_CreateMachine(t *testing.T) {
	e, _ := newEcho()
	var got ports.CreateMachineInput
	stub := &stubInventoryService{
		createFn: func(_ context.Context, in ports.CreateMachineInput) (*domain.Machine, error) {
			got = in
			return &domain.Machine{ID: "m9"}, nil
		},
	}

	form := url.Values{
		"code":                {"VM-009"},
		"model":               {"Necta Krea"},
		"location":            {"Lobby"},
		"ingredient_name":     {"Milk", "Sugar", "Tea"},
		"ingredient_quantity": {"4.5", "lots", ""},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/machine/new", form), rec)
	withSession(t, c)

	if err := NewMachineHandler(stub, today).CreateMachine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/machine/m9" {
		t.Fatalf("expected redirect to the new machine, got %q", rec.Header().Get(echo.HeaderLocation))
	}

	want := map[string]float64{"Milk": 4.5, "Sugar": 0, "Tea": 0}
	if diff := cmp.Diff(want, got.Quantities); diff != "" {
		t.Fatalf("quantities mismatch (-want +got):\n%s", diff)
	}
	if got.Code != "VM-009" || got.Location != "Lobby" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestMachineHandler_CreateMachine_ValidationFailure(t *testing.T) {
	e, r := newEcho()
	stub := &stubInventoryService{
		createFn: func(context.Context, ports.CreateMachineInput) (*domain.Machine, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/machine/new", url.Values{"model": {"X"}}), rec)
	if err := NewMachineHandler(stub, today).CreateMachine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || r.name != view.PageMachineNew {
		t.Fatalf("expected 400 with the form, got %d %q", rec.Code, r.name)
	}
	page := r.data.(view.MachineNewPage)
	if page.Error == "" || page.Model != "X" {
		t.Fatalf("expected error and kept input, got %+v", page)
	}
}

func TestMachineHandler_SaveQuantities(t *testing.T) {
	e, _ := newEcho()
	var saved []domain.Ingredient
	stub := &stubInventoryService{
		saveFn: func(_ context.Context, id string, ings []domain.Ingredient) error {
			if id != "m1" {
				return domain.ErrMachineNotFound
			}
			saved = ings
			return nil
		},
	}

	form := url.Values{"ingredient_name": {"Milk", "Cups"}, "ingredient_quantity": {"2", "-"}}
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/machine/m1/save", form), rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")

	if err := NewMachineHandler(stub, today).SaveQuantities(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := []domain.Ingredient{{Name: "Milk", Quantity: 2}, {Name: "Cups", Quantity: 0}}
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Fatalf("ingredients mismatch (-want +got):\n%s", diff)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/machine/m1" {
		t.Fatalf("expected redirect back to the machine")
	}
}

func TestMachineHandler_Dashboard(t *testing.T) {
	e, r := newEcho()
	stub := &stubInventoryService{
		dashFn: func(context.Context) (*ports.DashboardView, error) {
			return &ports.DashboardView{
				Machines: []domain.Machine{{ID: "m1", Code: "VM-001"}},
				Totals:   domain.Totals{"Sugar": 1, "Milk": 2, "Honey": 3, "White Coffee": 4},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
	withSession(t, c)
	if err := NewMachineHandler(stub, today).Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	page := r.data.(view.DashboardPage)
	if page.Admin != "admin" || page.Today != "2024-01-05" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if diff := cmp.Diff([]string{"White Coffee", "Milk", "Sugar", "Honey"}, page.Names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
