// Package planning provides read access to stored weekly plans and the
// recipes they reference.
package planning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/repository"
)

var (
	// ErrPlanNotFound is returned when no plan matches the request.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrRecipeNotFound is returned when a recipe id is unknown.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// Service provides plan and recipe lookups.
type Service struct {
	plans         *repository.PlanRepository
	recipes       *repository.RecipeRepository
	defaultPlanID string
}

// NewService creates a planning service. defaultPlanID, when set, is the
// plan served for an empty id instead of the latest one.
func NewService(db *sql.DB, defaultPlanID string) *Service {
	return &Service{
		plans:         repository.NewPlanRepository(db),
		recipes:       repository.NewRecipeRepository(db),
		defaultPlanID: defaultPlanID,
	}
}

// LatestPlan returns the plan with the most recent week start.
func (s *Service) LatestPlan(ctx context.Context) (*models.WeeklyPlan, error) {
	plan, err := s.plans.Latest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest plan: %w", err)
	}
	return plan, nil
}

// Plan returns the plan with the given id. An empty id selects the
// configured default plan, or the latest plan when none is configured.
func (s *Service) Plan(ctx context.Context, id string) (*models.WeeklyPlan, error) {
	if id == "" {
		id = s.defaultPlanID
	}
	if id == "" {
		return s.LatestPlan(ctx)
	}

	plan, err := s.plans.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", id, err)
	}
	return plan, nil
}

// Plans lists stored plans, newest first.
func (s *Service) Plans(ctx context.Context, page models.Pagination) ([]repository.PlanSummary, int, error) {
	return s.plans.List(ctx, page)
}

// Recipe returns one recipe.
func (s *Service) Recipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe %s: %w", id, err)
	}
	return recipe, nil
}

// Catalog loads every recipe the plan references, alternatives included.
// References to unknown recipes are left out.
func (s *Service) Catalog(ctx context.Context, plan *models.WeeklyPlan) (models.Catalog, error) {
	catalog, err := s.recipes.Catalog(ctx, plan.RecipeIDs())
	if err != nil {
		return nil, fmt.Errorf("loading recipes of plan %s: %w", plan.ID, err)
	}
	return catalog, nil
}
