package shopping

import (
	"fmt"

	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/quantity"
)

// Builder derives a shopping list from a weekly plan. It holds only
// read-only tables and is safe for concurrent use.
type Builder struct {
	collector  Collector
	aggregator *Aggregator
	overrides  *Overrides
	categories *Categorizer
	display    *Display
}

// NewBuilder wires the derivation stages from a lexicon.
func NewBuilder(lex *config.Lexicon) *Builder {
	parser := quantity.NewParser(quantity.NewUnitNormalizer(lex.Units), lex.NonQuantifiable)
	names := NewNameNormalizer(lex.Names)
	categories := NewCategorizer(names, lex.CategoryMap(), lex.CategoryOrder(), lex.CategoryLabels())

	return &Builder{
		aggregator: NewAggregator(parser, names, categories),
		overrides:  NewOverrides(parser, lex.Overrides),
		categories: categories,
		display:    NewDisplay(lex.ShoppingUnits),
	}
}

// DefaultBuilder wires a builder over the built-in lexicon.
func DefaultBuilder() (*Builder, error) {
	lex, err := config.DefaultLexicon()
	if err != nil {
		return nil, fmt.Errorf("loading default lexicon: %w", err)
	}
	return NewBuilder(lex), nil
}

// Categories returns the categorizer the builder sorts with.
func (b *Builder) Categories() *Categorizer {
	return b.categories
}

// Display returns the display helper matching the builder's lexicon.
func (b *Builder) Display() *Display {
	return b.display
}

// Needs runs only the collection stage.
func (b *Builder) Needs(days []models.DayPlan, recipes models.RecipeLookup) []*models.RecipeNeed {
	return b.collector.Collect(days, recipes)
}

// Build collects needs, aggregates and corrects ingredients, then groups
// the result by category.
func (b *Builder) Build(days []models.DayPlan, recipes models.RecipeLookup) *models.ShoppingList {
	needs := b.collector.Collect(days, recipes)
	ingredients := b.overrides.Apply(b.aggregator.Aggregate(needs))

	var groups []models.CategoryGroup
	index := make(map[models.Category]int)
	for _, item := range ingredients {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, models.CategoryGroup{
				Category: item.Category,
				Label:    b.categories.Label(item.Category),
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	recipeIDs := make(map[string]bool, len(needs))
	for _, n := range needs {
		recipeIDs[n.RecipeID] = true
	}

	return &models.ShoppingList{
		Ingredients:     ingredients,
		ByCategory:      groups,
		TotalItems:      len(ingredients),
		TotalRecipes:    len(recipeIDs),
		TotalCategories: len(groups),
	}
}
