package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/plansemanal/plansemanal/internal/models"
)

// FixtureRecipe creates a test recipe with three ingredient lines.
func FixtureRecipe(overrides ...func(*models.Recipe)) *models.Recipe {
	id := "receta-" + uuid.NewString()[:8]

	recipe := &models.Recipe{
		ID:              id,
		Name:            "Lentejas guisadas " + id[len(id)-4:],
		Servings:        4,
		CookTimeMinutes: 45,
		Difficulty:      models.DifficultyEasy,
		Source:          "Cuaderno",
		Ingredients: []models.RecipeIngredient{
			{Name: "Lentejas", Quantity: "250g"},
			{Name: "Cebolla", Quantity: "1 unidad"},
			{Name: "Sal", Quantity: "a gusto"},
		},
		Instructions: []string{"Remojar las lentejas.", "Cocinar 40 minutos."},
	}

	for _, override := range overrides {
		override(recipe)
	}

	return recipe
}

// FixtureDay creates a day with a lunch and a dinner slot.
func FixtureDay(index int, name, lunchID, dinnerID string) models.DayPlan {
	return models.DayPlan{
		Index:          index,
		Day:            name,
		Focus:          "Equilibrio",
		TargetCalories: 1400,
		Macros:         models.Macros{Protein: 100, Carbs: 120, Fat: 55},
		Meals: map[models.MealType]models.MealSlot{
			models.MealBreakfast: {Description: "Cafe con leche", Kcal: 120},
			models.MealLunch:     {Description: "Almuerzo", Kcal: 550, RecipeID: lunchID},
			models.MealDinner:    {Description: "Cena", Kcal: 450, RecipeID: dinnerID},
		},
	}
}

// FixturePlan creates a two-day plan that references the given recipes.
// The first recipe is cooked on Lunes for two days.
func FixturePlan(lunchID, dinnerID string, overrides ...func(*models.WeeklyPlan)) *models.WeeklyPlan {
	lunes := FixtureDay(0, "Lunes", lunchID, dinnerID)
	slot := lunes.Meals[models.MealLunch]
	slot.CookForDays = 2
	lunes.Meals[models.MealLunch] = slot

	plan := &models.WeeklyPlan{
		ID:        uuid.NewString(),
		Title:     "Semana de prueba",
		WeekStart: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		Days: []models.DayPlan{
			lunes,
			FixtureDay(1, "Martes", lunchID, dinnerID),
		},
	}

	for _, override := range overrides {
		override(plan)
	}

	return plan
}
