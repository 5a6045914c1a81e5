package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

type InventoryService struct {
	repo   ports.MachineRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewInventoryService(repo ports.MachineRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, now: time.Now, logger: logger}
}

func (s *InventoryService) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	machines, err := s.repo.List(ctx, ports.MachineFilter{})
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	return machines, nil
}

func (s *InventoryService) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return m, nil
}

// CreateMachine stocks a new machine with the canonical ingredient list,
// using the predefined quantities from the form.
func (s *InventoryService) CreateMachine(ctx context.Context, input ports.CreateMachineInput) (*domain.Machine, error) {
	now := s.now().UTC()
	machine := &domain.Machine{
		Code:        strings.TrimSpace(input.Code),
		Model:       strings.TrimSpace(input.Model),
		Location:    strings.TrimSpace(input.Location),
		Ingredients: domain.DefaultIngredients(input.Quantities),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, machine)
	if err != nil {
		s.logger.Error().Err(err).Str("code", machine.Code).Msg("failed to create machine")
		return nil, fmt.Errorf("create machine: %w", err)
	}

	s.logger.Info().Str("machine_id", created.ID).Str("code", created.Code).Msg("machine created")
	return created, nil
}

func (s *InventoryService) UpdateMachine(ctx context.Context, id string, input ports.UpdateMachineInput) error {
	err := s.repo.UpdateDetails(ctx, id, ports.MachineDetails{
		Code:     strings.TrimSpace(input.Code),
		Model:    strings.TrimSpace(input.Model),
		Location: strings.TrimSpace(input.Location),
	})
	if err != nil {
		return fmt.Errorf("update machine: %w", err)
	}
	return nil
}

// SaveQuantities replaces the machine's ingredient list. Repeated names keep
// their first quantity.
func (s *InventoryService) SaveQuantities(ctx context.Context, id string, ingredients []domain.Ingredient) error {
	if err := s.repo.UpdateIngredients(ctx, id, domain.NormalizeIngredients(ingredients)); err != nil {
		return fmt.Errorf("save quantities: %w", err)
	}
	s.logger.Debug().Str("machine_id", id).Int("ingredients", len(ingredients)).Msg("quantities saved")
	return nil
}

func (s *InventoryService) DeleteMachine(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete machine: %w", err)
	}
	s.logger.Info().Str("machine_id", id).Msg("machine deleted")
	return nil
}

func (s *InventoryService) ToggleSelection(ctx context.Context, id string) (bool, error) {
	selected, err := s.repo.ToggleSelected(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggle selection: %w", err)
	}
	return selected, nil
}

// CurrentTotals sums the ingredients of the selected machines.
func (s *InventoryService) CurrentTotals(ctx context.Context) (domain.Totals, error) {
	machines, err := s.repo.List(ctx, ports.MachineFilter{SelectedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("current totals: %w", err)
	}
	return domain.Aggregate(machines, domain.Selected), nil
}

func (s *InventoryService) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	machines, err := s.repo.List(ctx, ports.MachineFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &ports.DashboardView{
		Machines: machines,
		Totals:   domain.Aggregate(machines, domain.Selected),
	}, nil
}

// SeedMachines bulk-inserts machines loaded from a seed file.
func (s *InventoryService) SeedMachines(ctx context.Context, machines []domain.Machine) (int, error) {
	if len(machines) == 0 {
		return 0, nil
	}
	now := s.now().UTC()
	docs := make([]domain.Machine, len(machines))
	for i, m := range machines {
		m.Ingredients = domain.NormalizeIngredients(m.Ingredients)
		if len(m.Ingredients) == 0 {
			m.Ingredients = domain.DefaultIngredients(nil)
		}
		m.CreatedAt, m.UpdatedAt = now, now
		docs[i] = m
	}

	n, err := s.repo.InsertMany(ctx, docs)
	if err != nil {
		return n, fmt.Errorf("seed machines: %w", err)
	}
	s.logger.Info().Int("count", n).Msg("machines seeded")
	return n, nil
}
