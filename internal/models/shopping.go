package models

import "github.com/plansemanal/plansemanal/internal/quantity"

// Category groups shopping list items by aisle.
type Category string

const (
	CategoryProteinas   Category = "proteinas"
	CategoryVerduras    Category = "verduras"
	CategoryFrutas      Category = "frutas"
	CategoryLacteos     Category = "lacteos"
	CategoryGranos      Category = "granos"
	CategoryCondimentos Category = "condimentos"
	CategoryAceites     Category = "aceites"
	CategoryEndulzantes Category = "endulzantes"
	CategoryOtros       Category = "otros"
)

// DefaultCategory is assigned to ingredients with no known category.
const DefaultCategory = CategoryOtros

func (c Category) String() string {
	return string(c)
}

// RecipeNeed is the requirement for one recipe across a weekly plan.
type RecipeNeed struct {
	RecipeID       string   `json:"recipe_id" yaml:"recipe_id"`
	Recipe         *Recipe  `json:"-" yaml:"-"`
	PortionsNeeded int      `json:"portions_needed" yaml:"portions_needed"`
	AppearsOnDays  []string `json:"appears_on_days" yaml:"appears_on_days"`
	IsBatchCook    bool     `json:"is_batch_cook" yaml:"is_batch_cook"`
}

// AppearsOn reports whether day is already registered.
func (n *RecipeNeed) AppearsOn(day string) bool {
	for _, d := range n.AppearsOnDays {
		if d == day {
			return true
		}
	}
	return false
}

// AddDay registers day if it is not already present.
func (n *RecipeNeed) AddDay(day string) {
	if !n.AppearsOn(day) {
		n.AppearsOnDays = append(n.AppearsOnDays, day)
	}
}

// AggregatedIngredient is one line of the shopping list. ID and Name are the
// normalized ingredient name.
type AggregatedIngredient struct {
	ID            string              `json:"id" yaml:"id"`
	Name          string              `json:"name" yaml:"name"`
	Category      Category            `json:"category" yaml:"category"`
	Quantities    []quantity.Quantity `json:"quantities" yaml:"quantities"`
	SourceRecipes []string            `json:"source_recipes" yaml:"source_recipes"`
	IsAGusto      bool                `json:"is_a_gusto" yaml:"is_a_gusto"`
}

// ComputeIsAGusto reports whether none of qs carries a usable amount.
func ComputeIsAGusto(qs []quantity.Quantity) bool {
	for _, q := range qs {
		if q.Parseable {
			return false
		}
	}
	return true
}

// CategoryGroup is the shopping list items of one category, in list order.
type CategoryGroup struct {
	Category Category                `json:"category" yaml:"category"`
	Label    string                  `json:"label" yaml:"label"`
	Items    []*AggregatedIngredient `json:"items" yaml:"items"`
}

// ShoppingList is the result of one shopping list computation.
type ShoppingList struct {
	Ingredients     []*AggregatedIngredient `json:"ingredients" yaml:"ingredients"`
	ByCategory      []CategoryGroup         `json:"by_category" yaml:"by_category"`
	TotalItems      int                     `json:"total_items" yaml:"total_items"`
	TotalRecipes    int                     `json:"total_recipes" yaml:"total_recipes"`
	TotalCategories int                     `json:"total_categories" yaml:"total_categories"`
}

// Group returns the group for c, or nil.
func (l *ShoppingList) Group(c Category) *CategoryGroup {
	for i := range l.ByCategory {
		if l.ByCategory[i].Category == c {
			return &l.ByCategory[i]
		}
	}
	return nil
}

// Find returns the ingredient with the given id, or nil.
func (l *ShoppingList) Find(id string) *AggregatedIngredient {
	for _, item := range l.Ingredients {
		if item.ID == id {
			return item
		}
	}
	return nil
}
