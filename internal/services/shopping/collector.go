package shopping

import "github.com/plansemanal/plansemanal/internal/models"

// Collector walks a weekly plan and works out how many portions of each
// recipe have to be cooked.
type Collector struct{}

// coverKey identifies a recipe on a given day index.
type coverKey struct {
	recipeID string
	day      int
}

// needSet accumulates needs for a single Collect call.
type needSet struct {
	order   []*models.RecipeNeed
	byID    map[string]*models.RecipeNeed
	covered map[coverKey]bool
}

func newNeedSet() *needSet {
	return &needSet{
		byID:    make(map[string]*models.RecipeNeed),
		covered: make(map[coverKey]bool),
	}
}

func (s *needSet) add(id string, recipe *models.Recipe, day string) *models.RecipeNeed {
	if need, ok := s.byID[id]; ok {
		need.PortionsNeeded++
		need.AddDay(day)
		return need
	}
	need := &models.RecipeNeed{
		RecipeID:       id,
		Recipe:         recipe,
		PortionsNeeded: 1,
		AppearsOnDays:  []string{day},
	}
	s.byID[id] = need
	s.order = append(s.order, need)
	return need
}

func (s *needSet) cover(id string, day int) {
	s.covered[coverKey{recipeID: id, day: day}] = true
}

func (s *needSet) isCovered(id string, day int) bool {
	return s.covered[coverKey{recipeID: id, day: day}]
}

// Collect returns one need per recipe, in order of first encounter.
//
// Days are visited in plan order and slots in models.MealOrder. A slot's
// main and side recipes are counted independently. A recipe already
// covered on a day by an earlier batch cook is skipped, as is any recipe
// missing from recipes. When the main recipe of a slot has CookForDays > 1
// the following days are marked covered for it and for the slot's side
// recipe; the side need only gets those day names if it already exists.
func (Collector) Collect(days []models.DayPlan, recipes models.RecipeLookup) []*models.RecipeNeed {
	s := newNeedSet()

	for dayIndex := range days {
		day := &days[dayIndex]

		for _, mealType := range models.MealOrder {
			meal, ok := day.Meals[mealType]
			if !ok || meal.RecipeID == "" {
				continue
			}

			ids := []string{meal.RecipeID}
			if meal.SideRecipeID != "" {
				ids = append(ids, meal.SideRecipeID)
			}

			for _, id := range ids {
				if s.isCovered(id, dayIndex) {
					continue
				}

				recipe, ok := recipes.Lookup(id)
				if !ok {
					continue
				}

				need := s.add(id, recipe, day.Day)

				if id != meal.RecipeID || !meal.IsBatchCook() {
					continue
				}

				need.IsBatchCook = true
				for d := 1; d < meal.CookForDays; d++ {
					future := dayIndex + d
					if future >= len(days) {
						break
					}
					futureDay := days[future].Day

					s.cover(id, future)
					need.AddDay(futureDay)

					if meal.SideRecipeID != "" {
						s.cover(meal.SideRecipeID, future)
						if side, ok := s.byID[meal.SideRecipeID]; ok {
							side.AddDay(futureDay)
						}
					}
				}
			}
		}
	}

	return s.order
}
