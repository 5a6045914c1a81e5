package ports

import (
	"context"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// AdminRepository defines persistence for admin accounts.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
