package ports

import (
	"context"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// MachineFilter narrows a machine listing.
type MachineFilter struct {
	SelectedOnly bool
}

// MachineDetails are the descriptive fields editable on a machine.
type MachineDetails struct {
	Code     string
	Model    string
	Location string
}

// MachineRepository defines persistence operations for machines. Writes are
// last-write-wins at the document level.
type MachineRepository interface {
	// List returns machines matching filter, sorted by code.
	List(ctx context.Context, filter MachineFilter) ([]domain.Machine, error)
	FindByID(ctx context.Context, id string) (*domain.Machine, error)
	Create(ctx context.Context, m *domain.Machine) (*domain.Machine, error)
	InsertMany(ctx context.Context, machines []domain.Machine) (int, error)
	UpdateDetails(ctx context.Context, id string, details MachineDetails) error
	UpdateIngredients(ctx context.Context, id string, ingredients []domain.Ingredient) error
	// ToggleSelected flips IsSelected server-side and returns the new value.
	ToggleSelected(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	// UnselectAll clears IsSelected on every machine.
	UnselectAll(ctx context.Context) (int64, error)
	// ZeroQuantities sets every ingredient quantity of every machine to 0.
	ZeroQuantities(ctx context.Context) (int64, error)
}
