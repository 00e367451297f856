package models

import (
	"testing"

	"github.com/plansemanal/plansemanal/internal/quantity"
)

func TestRecipe_CookTimeLabel(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{"Unknown", 0, "-"},
		{"Minutes only", 45, "45 min"},
		{"Whole hours", 120, "2 h"},
		{"Hours and minutes", 75, "1 h 15 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{CookTimeMinutes: tt.minutes}
			if got := r.CookTimeLabel(); got != tt.want {
				t.Errorf("Recipe.CookTimeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDifficulty_IsValid(t *testing.T) {
	tests := []struct {
		name string
		d    Difficulty
		want bool
	}{
		{"Empty", "", true},
		{"Easy", DifficultyEasy, true},
		{"Hard", DifficultyHard, true},
		{"Unknown", Difficulty("extrema"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.IsValid(); got != tt.want {
				t.Errorf("Difficulty.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := NewCatalog([]*Recipe{
		{ID: "wok-multicolor", Name: "Wok Multicolor"},
		{ID: "crumble-manzanas", Name: "Crumble de Manzanas"},
	})

	r, ok := c.Lookup("wok-multicolor")
	if !ok || r.Name != "Wok Multicolor" {
		t.Errorf("Catalog.Lookup(wok-multicolor) = %v, %v", r, ok)
	}

	if _, ok := c.Lookup("inexistente"); ok {
		t.Error("Catalog.Lookup(inexistente) should miss")
	}

	c["vacia"] = nil
	if _, ok := c.Lookup("vacia"); ok {
		t.Error("Catalog.Lookup() should miss nil entries")
	}
}

func TestRecipeNeed_AddDay(t *testing.T) {
	n := &RecipeNeed{AppearsOnDays: []string{"Lunes"}}
	n.AddDay("Martes")
	n.AddDay("Lunes")
	n.AddDay("Martes")

	if len(n.AppearsOnDays) != 2 || n.AppearsOnDays[0] != "Lunes" || n.AppearsOnDays[1] != "Martes" {
		t.Errorf("RecipeNeed.AppearsOnDays = %v, want [Lunes Martes]", n.AppearsOnDays)
	}
}

func TestComputeIsAGusto(t *testing.T) {
	p := quantity.DefaultParser()

	tests := []struct {
		name string
		qs   []quantity.Quantity
		want bool
	}{
		{"Empty", nil, true},
		{"All unparseable", []quantity.Quantity{p.Parse("a gusto"), p.Parse("pizca")}, true},
		{"One parseable", []quantity.Quantity{p.Parse("a gusto"), p.Parse("2 cdas")}, false},
		{"Bare count", []quantity.Quantity{p.Parse("2")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeIsAGusto(tt.qs); got != tt.want {
				t.Errorf("ComputeIsAGusto() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShoppingList_GroupAndFind(t *testing.T) {
	ajo := &AggregatedIngredient{ID: "Ajo", Name: "Ajo", Category: CategoryCondimentos}
	list := &ShoppingList{
		Ingredients: []*AggregatedIngredient{ajo},
		ByCategory:  []CategoryGroup{{Category: CategoryCondimentos, Items: []*AggregatedIngredient{ajo}}},
	}

	if g := list.Group(CategoryCondimentos); g == nil || len(g.Items) != 1 {
		t.Errorf("ShoppingList.Group(condimentos) = %v", g)
	}
	if g := list.Group(CategoryFrutas); g != nil {
		t.Errorf("ShoppingList.Group(frutas) = %v, want nil", g)
	}
	if item := list.Find("Ajo"); item != ajo {
		t.Errorf("ShoppingList.Find(Ajo) = %v", item)
	}
}

func TestRecipe_Validate(t *testing.T) {
	valid := func() *Recipe {
		return &Recipe{ID: "r1", Name: "Guiso", Servings: 2, Difficulty: DifficultyEasy,
			Ingredients: []RecipeIngredient{{Name: "Lentejas", Quantity: "200g"}}}
	}

	tests := []struct {
		name    string
		mutate  func(*Recipe)
		wantErr bool
	}{
		{"valid", func(*Recipe) {}, false},
		{"missing id", func(r *Recipe) { r.ID = "" }, true},
		{"missing name", func(r *Recipe) { r.Name = "" }, true},
		{"negative servings", func(r *Recipe) { r.Servings = -1 }, true},
		{"bad difficulty", func(r *Recipe) { r.Difficulty = "extrema" }, true},
		{"unnamed ingredient", func(r *Recipe) { r.Ingredients[0].Name = "" }, true},
		{"empty difficulty", func(r *Recipe) { r.Difficulty = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
