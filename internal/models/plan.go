package models

import (
	"fmt"
	"math"
	"time"
)

// MealType identifies a meal slot within a day.
type MealType string

const (
	MealBreakfast     MealType = "breakfast"
	MealLunch         MealType = "lunch"
	MealDessertLunch  MealType = "dessertLunch"
	MealDinner        MealType = "dinner"
	MealDessertDinner MealType = "dessertDinner"
	MealSnack         MealType = "snack"
)

// MealOrder is the fixed order slots are visited within a day.
var MealOrder = []MealType{
	MealBreakfast,
	MealLunch,
	MealDessertLunch,
	MealDinner,
	MealDessertDinner,
	MealSnack,
}

func (m MealType) String() string {
	return string(m)
}

// Label returns the Spanish label shown in the meal timeline.
func (m MealType) Label() string {
	switch m {
	case MealBreakfast:
		return "Desayuno"
	case MealLunch:
		return "Almuerzo"
	case MealDessertLunch:
		return "Postre almuerzo"
	case MealDinner:
		return "Cena"
	case MealDessertDinner:
		return "Postre cena"
	case MealSnack:
		return "Colación"
	default:
		return string(m)
	}
}

// Rank returns the position of m in MealOrder, or len(MealOrder) if unknown.
func (m MealType) Rank() int {
	for i, t := range MealOrder {
		if t == m {
			return i
		}
	}
	return len(MealOrder)
}

// ParseMealType converts a stored meal type string.
func ParseMealType(s string) (MealType, error) {
	m := MealType(s)
	if m.Rank() == len(MealOrder) {
		return "", fmt.Errorf("unknown meal type %q", s)
	}
	return m, nil
}

// MealSlot is one planned meal. RecipeID, AltRecipeID and SideRecipeID are
// empty when absent. CookForDays greater than 1 means the dish cooked for
// this slot also covers the following CookForDays-1 days.
type MealSlot struct {
	Description  string `json:"description" yaml:"description" toml:"description"`
	Kcal         int    `json:"kcal" yaml:"kcal" toml:"kcal"`
	RecipeID     string `json:"recipe_id,omitempty" yaml:"recipe_id,omitempty" toml:"recipe_id"`
	AltRecipeID  string `json:"alt_recipe_id,omitempty" yaml:"alt_recipe_id,omitempty" toml:"alt_recipe_id"`
	SideRecipeID string `json:"side_recipe_id,omitempty" yaml:"side_recipe_id,omitempty" toml:"side_recipe_id"`
	CookForDays  int    `json:"cook_for_days,omitempty" yaml:"cook_for_days,omitempty" toml:"cook_for_days"`
}

// IsBatchCook reports whether this slot cooks for later days too.
func (s MealSlot) IsBatchCook() bool {
	return s.CookForDays > 1
}

// BatchLabel returns the badge text for batch-cooked slots, or "".
func (s MealSlot) BatchLabel() string {
	if !s.IsBatchCook() {
		return ""
	}
	return fmt.Sprintf("Rinde %d dias", s.CookForDays)
}

// Macros holds daily macronutrient targets in grams.
type Macros struct {
	Protein int `json:"protein" yaml:"protein" toml:"protein"`
	Carbs   int `json:"carbs" yaml:"carbs" toml:"carbs"`
	Fat     int `json:"fat" yaml:"fat" toml:"fat"`
}

// MacroSplit is the share of energy from each macronutrient, in percent.
type MacroSplit struct {
	Protein int `json:"protein_pct" yaml:"protein_pct"`
	Carbs   int `json:"carbs_pct" yaml:"carbs_pct"`
	Fat     int `json:"fat_pct" yaml:"fat_pct"`
}

// Split computes the energy split against kcal using 4/4/9 kcal per gram.
func (m Macros) Split(kcal int) MacroSplit {
	if kcal <= 0 {
		return MacroSplit{}
	}
	pct := func(grams, kcalPerGram int) int {
		return int(math.Round(float64(grams*kcalPerGram) / float64(kcal) * 100))
	}
	return MacroSplit{
		Protein: pct(m.Protein, 4),
		Carbs:   pct(m.Carbs, 4),
		Fat:     pct(m.Fat, 9),
	}
}

// PlannedMeal pairs a slot with its meal type.
type PlannedMeal struct {
	Type MealType
	Slot MealSlot
}

// DayPlan is one day of the weekly plan.
type DayPlan struct {
	Index          int                   `json:"index" yaml:"index"`
	Day            string                `json:"day" yaml:"day"`
	Focus          string                `json:"focus" yaml:"focus"`
	TargetCalories int                   `json:"target_calories" yaml:"target_calories"`
	Macros         Macros                `json:"macros" yaml:"macros"`
	Meals          map[MealType]MealSlot `json:"meals" yaml:"meals"`
}

// Slot returns the slot for meal type m.
func (d *DayPlan) Slot(m MealType) (MealSlot, bool) {
	s, ok := d.Meals[m]
	return s, ok
}

// Slots returns the day's meals in MealOrder. Missing slots are skipped.
func (d *DayPlan) Slots() []PlannedMeal {
	out := make([]PlannedMeal, 0, len(d.Meals))
	for _, m := range MealOrder {
		if s, ok := d.Meals[m]; ok {
			out = append(out, PlannedMeal{Type: m, Slot: s})
		}
	}
	return out
}

// PlannedCalories sums the kcal of every planned slot.
func (d *DayPlan) PlannedCalories() int {
	total := 0
	for _, s := range d.Meals {
		total += s.Kcal
	}
	return total
}

// MacroSplit returns the macro split against the day's calorie target.
func (d *DayPlan) MacroSplit() MacroSplit {
	return d.Macros.Split(d.TargetCalories)
}

// WeeklyPlan is an ordered sequence of day plans.
type WeeklyPlan struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	WeekStart time.Time `json:"week_start" yaml:"week_start"`
	Days      []DayPlan `json:"days" yaml:"days"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// RecipeIDs returns every recipe id referenced by main or side slots, in
// first-appearance order. Alternative recipes are included last.
func (p *WeeklyPlan) RecipeIDs() []string {
	seen := make(map[string]bool)
	var ids, alts []string
	for i := range p.Days {
		for _, pm := range p.Days[i].Slots() {
			for _, id := range []string{pm.Slot.RecipeID, pm.Slot.SideRecipeID} {
				if id != "" && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			if pm.Slot.AltRecipeID != "" {
				alts = append(alts, pm.Slot.AltRecipeID)
			}
		}
	}
	for _, id := range alts {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Validate checks that the plan can be stored.
func (p *WeeklyPlan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	seen := make(map[int]bool, len(p.Days))
	for i := range p.Days {
		d := &p.Days[i]
		if d.Day == "" {
			return fmt.Errorf("day %d: name is required", d.Index)
		}
		if d.Index < 0 || seen[d.Index] {
			return fmt.Errorf("day %q: invalid or duplicate index %d", d.Day, d.Index)
		}
		seen[d.Index] = true
		for m, s := range d.Meals {
			if _, err := ParseMealType(string(m)); err != nil {
				return fmt.Errorf("day %q: %w", d.Day, err)
			}
			if s.CookForDays < 0 {
				return fmt.Errorf("day %q %s: cook_for_days must be non-negative", d.Day, m)
			}
		}
	}
	return nil
}
