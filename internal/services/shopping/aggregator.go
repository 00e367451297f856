package shopping

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/quantity"
)

// Aggregator merges the ingredient lines of a set of recipe needs into
// shopping list items.
type Aggregator struct {
	parser     *quantity.Parser
	names      *NameNormalizer
	categories *Categorizer
}

// NewAggregator creates an aggregator.
func NewAggregator(parser *quantity.Parser, names *NameNormalizer, categories *Categorizer) *Aggregator {
	return &Aggregator{parser: parser, names: names, categories: categories}
}

// ingredientGroup collects the raw entries for one normalized name.
type ingredientGroup struct {
	name       string
	quantities []quantity.Quantity
	sources    []string
	seen       map[string]bool
}

func (g *ingredientGroup) addSource(recipe string) {
	if !g.seen[recipe] {
		g.seen[recipe] = true
		g.sources = append(g.sources, recipe)
	}
}

// Aggregate returns one item per normalized ingredient name, sorted by
// category rank and then by name under Spanish collation.
//
// Each need contributes its recipe's full ingredient list once, whatever
// its PortionsNeeded.
func (a *Aggregator) Aggregate(needs []*models.RecipeNeed) []*models.AggregatedIngredient {
	var order []*ingredientGroup
	groups := make(map[string]*ingredientGroup)

	for _, need := range needs {
		if need.Recipe == nil {
			continue
		}
		recipe := need.Recipe
		for _, ing := range recipe.Ingredients {
			name := a.names.Normalize(ing.Name)
			parsed := a.parser.Parse(ing.Quantity)

			g, ok := groups[name]
			if !ok {
				g = &ingredientGroup{name: name, seen: make(map[string]bool)}
				groups[name] = g
				order = append(order, g)
			}
			g.quantities = append(g.quantities, parsed)
			g.addSource(recipe.Name)
		}
	}

	result := make([]*models.AggregatedIngredient, 0, len(order))
	for _, g := range order {
		summed := quantity.Sum(g.quantities)
		result = append(result, &models.AggregatedIngredient{
			ID:            g.name,
			Name:          g.name,
			Category:      a.categories.Categorize(g.name),
			Quantities:    summed,
			SourceRecipes: g.sources,
			IsAGusto:      models.ComputeIsAGusto(summed),
		})
	}

	a.sort(result)
	return result
}

func (a *Aggregator) sort(items []*models.AggregatedIngredient) {
	// collate.Collator is not safe for concurrent use.
	collator := collate.New(language.Spanish)

	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := a.categories.Rank(items[i].Category), a.categories.Rank(items[j].Category)
		if ri != rj {
			return ri < rj
		}
		return collator.CompareString(items[i].Name, items[j].Name) < 0
	})
}
