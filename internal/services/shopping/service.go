package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/repository"
)

// ErrItemNotFound is returned when a checklist operation names an item
// that is not on the plan's list.
var ErrItemNotFound = errors.New("item not on shopping list")

// PlanSource resolves plans and the recipes they reference.
type PlanSource interface {
	Plan(ctx context.Context, id string) (*models.WeeklyPlan, error)
	Catalog(ctx context.Context, plan *models.WeeklyPlan) (models.Catalog, error)
}

// Service derives shopping lists for stored plans and tracks which items
// have been bought.
type Service struct {
	plans   PlanSource
	builder *Builder
	checks  *repository.ChecklistRepository
}

// NewService creates a shopping service.
func NewService(db *sql.DB, plans PlanSource, builder *Builder) *Service {
	return &Service{
		plans:   plans,
		builder: builder,
		checks:  repository.NewChecklistRepository(db),
	}
}

// Builder returns the builder lists are derived with.
func (s *Service) Builder() *Builder {
	return s.builder
}

// List derives the shopping list of a plan. An empty id resolves like
// PlanSource.Plan does.
func (s *Service) List(ctx context.Context, planID string) (*models.WeeklyPlan, *models.ShoppingList, error) {
	plan, err := s.plans.Plan(ctx, planID)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := s.plans.Catalog(ctx, plan)
	if err != nil {
		return nil, nil, err
	}

	list := s.builder.Build(plan.Days, catalog)
	slog.Debug("built shopping list",
		"plan_id", plan.ID,
		"items", list.TotalItems,
		"recipes", list.TotalRecipes,
	)
	return plan, list, nil
}

// Checked returns the checked item ids of a plan.
func (s *Service) Checked(ctx context.Context, planID string) (map[string]bool, error) {
	return s.checks.Checked(ctx, planID)
}

// Toggle flips the checked state of one item and returns the new state.
func (s *Service) Toggle(ctx context.Context, planID, itemID string) (bool, error) {
	plan, list, err := s.List(ctx, planID)
	if err != nil {
		return false, err
	}
	if list.Find(itemID) == nil {
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	checked, err := s.checks.Checked(ctx, plan.ID)
	if err != nil {
		return false, err
	}

	next := !checked[itemID]
	if err := s.checks.SetChecked(ctx, nil, plan.ID, itemID, next); err != nil {
		return false, err
	}
	return next, nil
}

// Clear unchecks every item of a plan.
func (s *Service) Clear(ctx context.Context, planID string) (int, error) {
	plan, err := s.plans.Plan(ctx, planID)
	if err != nil {
		return 0, err
	}
	return s.checks.Clear(ctx, nil, plan.ID)
}
