package shopping

import (
	"strings"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/quantity"
)

// SourceSeparator joins source recipe names on a list line.
const SourceSeparator = " · "

// Display decides which quantities are worth showing next to an item.
type Display struct {
	units map[string]bool
}

// NewDisplay creates a display helper that shows quantities in units.
func NewDisplay(units []string) *Display {
	set := make(map[string]bool, len(units))
	for _, u := range units {
		set[u] = true
	}
	return &Display{units: set}
}

// Quantities returns the item's quantities that carry an amount in a
// shopping unit.
func (d *Display) Quantities(item *models.AggregatedIngredient) []quantity.Quantity {
	var out []quantity.Quantity
	for _, q := range item.Quantities {
		if q.Parseable && q.Amount != nil && q.Unit != nil && d.units[*q.Unit] {
			out = append(out, q)
		}
	}
	return out
}

// Summary renders the shown quantities joined by " + ", or "a gusto" for
// to-taste items. It is empty when nothing is worth showing.
func (d *Display) Summary(item *models.AggregatedIngredient) string {
	if item.IsAGusto {
		return "a gusto"
	}
	qs := d.Quantities(item)
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, FormatQuantity(q))
	}
	return strings.Join(parts, " + ")
}

// FormatQuantity renders "amount unit". "unidad" becomes "unidades" above
// one; no other unit is pluralized.
func FormatQuantity(q quantity.Quantity) string {
	if q.Amount == nil || q.Unit == nil || *q.Unit == "" {
		return ""
	}
	unit := *q.Unit
	if *q.Amount > 1 && unit == "unidad" {
		unit = "unidades"
	}
	return quantity.FormatAmount(*q.Amount) + " " + unit
}

// Sources renders the item's source recipes.
func Sources(item *models.AggregatedIngredient) string {
	return strings.Join(item.SourceRecipes, SourceSeparator)
}
