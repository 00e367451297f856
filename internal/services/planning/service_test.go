package planning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plansemanal/plansemanal/internal/database"
	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/repository"
	"github.com/plansemanal/plansemanal/internal/testutil"
)

func setupService(t *testing.T, defaultPlanID string) (*Service, *database.DB, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewMigratedInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(db.DB, defaultPlanID), db, ctx
}

func TestService_EmptyDatabase(t *testing.T) {
	svc, _, ctx := setupService(t, "")

	_, err := svc.LatestPlan(ctx)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.Plan(ctx, "")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.Plan(ctx, "no-existe")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.Recipe(ctx, "no-existe")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.False(t, errors.Is(err, ErrPlanNotFound))
}

func TestService_PlanResolution(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewMigratedInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	plans := repository.NewPlanRepository(db.DB)
	first := testutil.FixturePlan("a", "b")
	second := testutil.FixturePlan("a", "b", func(p *models.WeeklyPlan) {
		p.WeekStart = first.WeekStart.AddDate(0, 0, 7)
	})
	require.NoError(t, plans.Create(ctx, nil, first))
	require.NoError(t, plans.Create(ctx, nil, second))

	latest := NewService(db.DB, "")
	got, err := latest.Plan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	pinned := NewService(db.DB, first.ID)
	got, err = pinned.Plan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = pinned.Plan(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID, "an explicit id wins over the default")

	summaries, total, err := latest.Plans(ctx, models.DefaultPagination())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, second.ID, summaries[0].ID)
}

func TestService_Catalog(t *testing.T) {
	svc, db, ctx := setupService(t, "")

	recipes := repository.NewRecipeRepository(db.DB)
	lunch := testutil.FixtureRecipe()
	alt := testutil.FixtureRecipe()
	require.NoError(t, recipes.Create(ctx, nil, lunch))
	require.NoError(t, recipes.Create(ctx, nil, alt))

	plan := testutil.FixturePlan(lunch.ID, "cena-fantasma", func(p *models.WeeklyPlan) {
		slot := p.Days[1].Meals[models.MealLunch]
		slot.AltRecipeID = alt.ID
		p.Days[1].Meals[models.MealLunch] = slot
	})

	catalog, err := svc.Catalog(ctx, plan)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
	_, ok := catalog.Lookup("cena-fantasma")
	assert.False(t, ok)

	got, err := svc.Recipe(ctx, lunch.ID)
	require.NoError(t, err)
	assert.Equal(t, lunch.Name, got.Name)
	assert.Len(t, got.Ingredients, 3)
}
