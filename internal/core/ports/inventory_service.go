package ports

import (
	"context"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// CreateMachineInput carries the new-machine form. Quantities holds the
// predefined amount per canonical ingredient name.
type CreateMachineInput struct {
	Code       string
	Model      string
	Location   string
	Quantities map[string]float64
}

// UpdateMachineInput carries the edit form.
type UpdateMachineInput struct {
	Code     string
	Model    string
	Location string
}

// DashboardView is what the landing page shows.
type DashboardView struct {
	Machines []domain.Machine
	Totals   domain.Totals
}

// InventoryService defines use-case operations for machines.
type InventoryService interface {
	ListMachines(ctx context.Context) ([]domain.Machine, error)
	GetMachine(ctx context.Context, id string) (*domain.Machine, error)
	CreateMachine(ctx context.Context, input CreateMachineInput) (*domain.Machine, error)
	UpdateMachine(ctx context.Context, id string, input UpdateMachineInput) error
	SaveQuantities(ctx context.Context, id string, ingredients []domain.Ingredient) error
	DeleteMachine(ctx context.Context, id string) error
	ToggleSelection(ctx context.Context, id string) (bool, error)
	CurrentTotals(ctx context.Context) (domain.Totals, error)
	Dashboard(ctx context.Context) (*DashboardView, error)
	SeedMachines(ctx context.Context, machines []domain.Machine) (int, error)
}
