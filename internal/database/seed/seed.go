// Package seed loads the built-in weekly plan and its recipes into an
// empty database.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/repository"
	"github.com/plansemanal/plansemanal/internal/util"
)

//go:embed data/semana.toml
var semanaTOML []byte

type seedFile struct {
	Title     string       `toml:"title"`
	WeekStart string       `toml:"week_start"`
	Days      []seedDay    `toml:"days"`
	Recipes   []seedRecipe `toml:"recipes"`
}

type seedDay struct {
	Day            string                     `toml:"day"`
	Focus          string                     `toml:"focus"`
	TargetCalories int                        `toml:"target_calories"`
	Macros         models.Macros              `toml:"macros"`
	Meals          map[string]models.MealSlot `toml:"meals"`
}

type seedRecipe struct {
	ID              string                    `toml:"id"`
	Name            string                    `toml:"name"`
	Servings        int                       `toml:"servings"`
	CookTimeMinutes int                       `toml:"cook_time_minutes"`
	Difficulty      string                    `toml:"difficulty"`
	Source          string                    `toml:"source"`
	SourceURL       string                    `toml:"source_url"`
	Ingredients     []models.RecipeIngredient `toml:"ingredients"`
	Instructions    []string                  `toml:"instructions"`
	Notes           []string                  `toml:"notes"`
}

// Data is a decoded seed file.
type Data struct {
	Plan    *models.WeeklyPlan
	Recipes []*models.Recipe
}

// Load decodes the built-in plan. The plan gets a fresh id and, unless the
// file pins one, the Monday of the current week as its start.
func Load() (*Data, error) {
	return parse(semanaTOML, time.Now())
}

func parse(raw []byte, now time.Time) (*Data, error) {
	var f seedFile
	if _, err := toml.Decode(string(raw), &f); err != nil {
		return nil, fmt.Errorf("decoding seed plan: %w", err)
	}

	weekStart := util.WeekStart(now)
	if f.WeekStart != "" {
		t, err := time.Parse(util.DateFormat, f.WeekStart)
		if err != nil {
			return nil, fmt.Errorf("week_start: %w", err)
		}
		weekStart = t
	}

	plan := &models.WeeklyPlan{
		ID:        util.NewID(),
		Title:     f.Title,
		WeekStart: weekStart,
	}
	for i, d := range f.Days {
		day := models.DayPlan{
			Index:          i,
			Day:            d.Day,
			Focus:          d.Focus,
			TargetCalories: d.TargetCalories,
			Macros:         d.Macros,
			Meals:          make(map[models.MealType]models.MealSlot, len(d.Meals)),
		}
		for name, slot := range d.Meals {
			meal, err := models.ParseMealType(name)
			if err != nil {
				return nil, fmt.Errorf("day %s: %w", d.Day, err)
			}
			day.Meals[meal] = slot
		}
		plan.Days = append(plan.Days, day)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("seed plan: %w", err)
	}

	recipes := make([]*models.Recipe, 0, len(f.Recipes))
	for _, r := range f.Recipes {
		recipe := &models.Recipe{
			ID:              r.ID,
			Name:            r.Name,
			Servings:        r.Servings,
			CookTimeMinutes: r.CookTimeMinutes,
			Difficulty:      models.Difficulty(r.Difficulty),
			Source:          r.Source,
			SourceURL:       r.SourceURL,
			Ingredients:     r.Ingredients,
			Instructions:    r.Instructions,
			Notes:           r.Notes,
		}
		if recipe.ID == "" {
			recipe.ID = util.Slug(recipe.Name)
		}
		if err := recipe.Validate(); err != nil {
			return nil, fmt.Errorf("seed recipe %q: %w", r.Name, err)
		}
		recipes = append(recipes, recipe)
	}

	return &Data{Plan: plan, Recipes: recipes}, nil
}

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Seeder writes seed data through the repositories.
type Seeder struct {
	db      Transactor
	plans   *repository.PlanRepository
	recipes *repository.RecipeRepository
}

// NewSeeder creates a seeder.
func NewSeeder(db Transactor, plans *repository.PlanRepository, recipes *repository.RecipeRepository) *Seeder {
	return &Seeder{db: db, plans: plans, recipes: recipes}
}

// Seed stores data in one transaction. It does nothing and returns false
// when a plan is already stored.
func (s *Seeder) Seed(ctx context.Context, data *Data) (bool, error) {
	seeded := false

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		n, err := s.plans.Count(ctx, tx)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Debug("plans already present, skipping seed", "plans", n)
			return nil
		}

		for _, r := range data.Recipes {
			if err := s.recipes.Create(ctx, tx, r); err != nil {
				return fmt.Errorf("seeding recipe %s: %w", r.ID, err)
			}
		}
		if err := s.plans.Create(ctx, tx, data.Plan); err != nil {
			return fmt.Errorf("seeding plan: %w", err)
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		slog.Info("seeded weekly plan",
			"plan_id", data.Plan.ID,
			"days", len(data.Plan.Days),
			"recipes", len(data.Recipes),
		)
	}
	return seeded, nil
}
