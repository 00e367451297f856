package shopping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plansemanal/plansemanal/internal/database"
	"github.com/plansemanal/plansemanal/internal/database/seed"
	"github.com/plansemanal/plansemanal/internal/repository"
	"github.com/plansemanal/plansemanal/internal/services/planning"
)

func setupShoppingService(t *testing.T) (*Service, string, context.Context) {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewMigratedInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	data, err := seed.Load()
	require.NoError(t, err)
	seeder := seed.NewSeeder(db, repository.NewPlanRepository(db.DB), repository.NewRecipeRepository(db.DB))
	_, err = seeder.Seed(ctx, data)
	require.NoError(t, err)

	svc := NewService(db.DB, planning.NewService(db.DB, ""), newTestBuilder(t))
	return svc, data.Plan.ID, ctx
}

func TestService_List(t *testing.T) {
	svc, planID, ctx := setupShoppingService(t)

	plan, list, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, planID, plan.ID)
	assert.NotZero(t, list.TotalItems)

	_, byID, err := svc.List(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, list.TotalItems, byID.TotalItems)

	_, _, err = svc.List(ctx, "no-existe")
	assert.ErrorIs(t, err, planning.ErrPlanNotFound)
}

func TestService_ToggleAndClear(t *testing.T) {
	svc, planID, ctx := setupShoppingService(t)

	checked, err := svc.Toggle(ctx, planID, "Huevos")
	require.NoError(t, err)
	assert.True(t, checked)

	_, err = svc.Toggle(ctx, planID, "Palta")
	require.NoError(t, err)

	state, err := svc.Checked(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Huevos": true, "Palta": true}, state)

	checked, err = svc.Toggle(ctx, planID, "Huevos")
	require.NoError(t, err)
	assert.False(t, checked)

	_, err = svc.Toggle(ctx, planID, "Sal")
	assert.ErrorIs(t, err, ErrItemNotFound, "removed items cannot be checked")

	n, err := svc.Clear(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	state, err = svc.Checked(ctx, planID)
	require.NoError(t, err)
	assert.Empty(t, state)

	_, err = svc.Clear(ctx, "no-existe")
	assert.ErrorIs(t, err, planning.ErrPlanNotFound)
}
