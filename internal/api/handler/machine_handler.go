package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vendops/inventory-admin/internal/api/metrics"
	"github.com/vendops/inventory-admin/internal/api/view"
	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

// MachineHandler serves the dashboard and the machine pages.
type MachineHandler struct {
	inventory ports.InventoryService
	today     func() string
}

func NewMachineHandler(inventory ports.InventoryService, today func() string) *MachineHandler {
	return &MachineHandler{inventory: inventory, today: today}
}

func (h *MachineHandler) Dashboard(c echo.Context) error {
	dash, err := h.inventory.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageDashboard, view.DashboardPage{
		Admin:    adminName(c),
		Machines: dash.Machines,
		Totals:   dash.Totals,
		Names:    dash.Totals.Names(),
		Today:    h.today(),
	})
}

func (h *MachineHandler) NewMachinePage(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageMachineNew, view.MachineNewPage{
		Admin:       adminName(c),
		Ingredients: domain.CanonicalIngredients,
	})
}

// CreateMachine handles the new-machine form. Quantities that do not parse
// are stored as 0.
func (h *MachineHandler) CreateMachine(c echo.Context) error {
	var form machineForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, view.PageMachineNew, view.MachineNewPage{
			Admin:       adminName(c),
			Ingredients: domain.CanonicalIngredients,
			Code:        form.Code,
			Model:       form.Model,
			Location:    form.Location,
			Error:       err.Error(),
		})
	}

	quantities := make(map[string]float64)
	for _, ing := range ingredientsFromForm(c) {
		if _, seen := quantities[ing.Name]; !seen {
			quantities[ing.Name] = ing.Quantity
		}
	}

	m, err := h.inventory.CreateMachine(c.Request().Context(), ports.CreateMachineInput{
		Code:       form.Code,
		Model:      form.Model,
		Location:   form.Location,
		Quantities: quantities,
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/machine/"+m.ID)
}

func (h *MachineHandler) ShowMachine(c echo.Context) error {
	m, err := h.inventory.GetMachine(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrMachineNotFound) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageMachine, view.MachinePage{Admin: adminName(c), Machine: *m})
}

// UpdateMachine handles the edit form for code, model and location.
func (h *MachineHandler) UpdateMachine(c echo.Context) error {
	id := c.Param("id")

	var form machineForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		m, getErr := h.inventory.GetMachine(c.Request().Context(), id)
		if errors.Is(getErr, domain.ErrMachineNotFound) {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
		if getErr != nil {
			return getErr
		}
		return c.Render(http.StatusBadRequest, view.PageMachine, view.MachinePage{
			Admin:   adminName(c),
			Machine: *m,
			Error:   err.Error(),
		})
	}

	err := h.inventory.UpdateMachine(c.Request().Context(), id, ports.UpdateMachineInput{
		Code:     form.Code,
		Model:    form.Model,
		Location: form.Location,
	})
	if errors.Is(err, domain.ErrMachineNotFound) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/machine/"+id)
}

// SaveQuantities stores the posted ingredient list of a machine.
func (h *MachineHandler) SaveQuantities(c echo.Context) error {
	id := c.Param("id")
	err := h.inventory.SaveQuantities(c.Request().Context(), id, ingredientsFromForm(c))
	if errors.Is(err, domain.ErrMachineNotFound) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/machine/"+id)
}

func (h *MachineHandler) DeleteMachine(c echo.Context) error {
	err := h.inventory.DeleteMachine(c.Request().Context(), c.Param("id"))
	if err != nil && !errors.Is(err, domain.ErrMachineNotFound) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ToggleSelection flips whether the machine counts towards the totals.
//
// @Summary      Toggle machine selection
// @Tags         machines
// @Produce      json
// @Param        id   path      string  true  "Machine ID"
// @Success      200  {object}  toggleResponse
// @Failure      401  {object}  successResponse
// @Failure      404  {object}  successResponse
// @Failure      500  {object}  successResponse
// @Router       /machine/{id}/toggle [post]
func (h *MachineHandler) ToggleSelection(c echo.Context) error {
	selected, err := h.inventory.ToggleSelection(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrMachineNotFound) {
		return c.JSON(http.StatusNotFound, successResponse{Error: "machine not found"})
	}
	if err != nil {
		return err
	}

	metrics.MachineTogglesTotal.WithLabelValues(strconv.FormatBool(selected)).Inc()
	return c.JSON(http.StatusOK, toggleResponse{Success: true, IsSelected: selected})
}

// Totals returns the current ingredient totals over the selected machines.
//
// @Summary      Current totals
// @Tags         machines
// @Produce      json
// @Success      200  {object}  map[string]number
// @Failure      401  {object}  successResponse
// @Failure      500  {object}  successResponse
// @Router       /totals [get]
func (h *MachineHandler) Totals(c echo.Context) error {
	totals, err := h.inventory.CurrentTotals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totals)
}

// ingredientsFromForm pairs the repeated ingredient_name and
// ingredient_quantity fields by position.
func ingredientsFromForm(c echo.Context) []domain.Ingredient {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	names := params["ingredient_name"]
	quantities := params["ingredient_quantity"]

	out := make([]domain.Ingredient, 0, len(names))
	for i, name := range names {
		var raw string
		if i < len(quantities) {
			raw = quantities[i]
		}
		out = append(out, domain.Ingredient{Name: name, Quantity: domain.ParseQuantity(raw)})
	}
	return out
}
