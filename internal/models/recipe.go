package models

import (
	"fmt"
	"strconv"
	"time"
)

// Difficulty is the effort level a recipe card shows.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "facil"
	DifficultyMedium Difficulty = "media"
	DifficultyHard   Difficulty = "dificil"
)

func (d Difficulty) String() string {
	return string(d)
}

// Label returns the Spanish label shown to the user.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Fácil"
	case DifficultyMedium:
		return "Media"
	case DifficultyHard:
		return "Difícil"
	default:
		return "-"
	}
}

// IsValid reports whether d is a known difficulty. The empty value is
// accepted for recipes that do not state one.
func (d Difficulty) IsValid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// RecipeIngredient is one line of a recipe's ingredient list. Quantity is
// the free-form text as written on the card ("1-2 dientes", "a gusto").
type RecipeIngredient struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Quantity string `json:"quantity" yaml:"quantity" toml:"quantity"`
}

// Recipe is read-only reference data owned by the recipe catalog.
type Recipe struct {
	ID              string             `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Servings        int                `json:"servings" yaml:"servings"`
	CookTimeMinutes int                `json:"cook_time_minutes" yaml:"cook_time_minutes"`
	Difficulty      Difficulty         `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Source          string             `json:"source,omitempty" yaml:"source,omitempty"`
	SourceURL       string             `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Ingredients     []RecipeIngredient `json:"ingredients" yaml:"ingredients"`
	Instructions    []string           `json:"instructions" yaml:"instructions"`
	Notes           []string           `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time          `json:"updated_at" yaml:"-"`
}

// CookTimeLabel renders the cook time as "45 min" or "1 h 15 min".
func (r *Recipe) CookTimeLabel() string {
	if r.CookTimeMinutes <= 0 {
		return "-"
	}
	h, m := r.CookTimeMinutes/60, r.CookTimeMinutes%60
	switch {
	case h == 0:
		return strconv.Itoa(m) + " min"
	case m == 0:
		return strconv.Itoa(h) + " h"
	default:
		return strconv.Itoa(h) + " h " + strconv.Itoa(m) + " min"
	}
}

// RecipeLookup resolves recipe ids to recipes.
type RecipeLookup interface {
	Lookup(id string) (*Recipe, bool)
}

// Catalog maps recipe id to recipe.
type Catalog map[string]*Recipe

// Lookup implements RecipeLookup.
func (c Catalog) Lookup(id string) (*Recipe, bool) {
	r, ok := c[id]
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}

// NewCatalog indexes recipes by id. Later duplicates replace earlier ones.
func NewCatalog(recipes []*Recipe) Catalog {
	c := make(Catalog, len(recipes))
	for _, r := range recipes {
		c[r.ID] = r
	}
	return c
}

// Validate checks that the recipe can be stored.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Servings < 0 {
		return fmt.Errorf("servings must be non-negative")
	}
	if r.CookTimeMinutes < 0 {
		return fmt.Errorf("cook_time_minutes must be non-negative")
	}
	if !r.Difficulty.IsValid() {
		return fmt.Errorf("invalid difficulty: %s", r.Difficulty)
	}
	for i, ing := range r.Ingredients {
		if ing.Name == "" {
			return fmt.Errorf("ingredient %d: name is required", i)
		}
	}
	return nil
}
