package shopping

import (
	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/quantity"
)

// OverrideAction tells what an override does to an item.
type OverrideAction int

const (
	// OverrideNone leaves the item as aggregated.
	OverrideNone OverrideAction = iota
	// OverrideReplace swaps the item's quantities for a single one.
	OverrideReplace
	// OverrideRemove drops the item from the list.
	OverrideRemove
)

func (a OverrideAction) String() string {
	switch a {
	case OverrideReplace:
		return "replace"
	case OverrideRemove:
		return "remove"
	default:
		return "none"
	}
}

// Override is the resolved correction for one item.
type Override struct {
	Action   OverrideAction
	Quantity string
}

// Overrides applies hand-authored purchase corrections keyed by normalized
// ingredient name.
type Overrides struct {
	parser *quantity.Parser
	table  map[string]string
}

// NewOverrides copies table into a new applier. A value equal to
// config.RemoveOverride removes the item.
func NewOverrides(parser *quantity.Parser, table map[string]string) *Overrides {
	t := make(map[string]string, len(table))
	for name, value := range table {
		t[name] = value
	}
	return &Overrides{parser: parser, table: t}
}

// Lookup resolves the override for name.
func (o *Overrides) Lookup(name string) Override {
	value, ok := o.table[name]
	switch {
	case !ok || value == "":
		return Override{Action: OverrideNone}
	case value == config.RemoveOverride:
		return Override{Action: OverrideRemove}
	default:
		return Override{Action: OverrideReplace, Quantity: value}
	}
}

// Apply filters removed items and replaces overridden quantities in place.
// IsAGusto is recomputed for replaced items.
func (o *Overrides) Apply(items []*models.AggregatedIngredient) []*models.AggregatedIngredient {
	out := make([]*models.AggregatedIngredient, 0, len(items))
	for _, item := range items {
		ov := o.Lookup(item.Name)
		switch ov.Action {
		case OverrideRemove:
			continue
		case OverrideReplace:
			item.Quantities = []quantity.Quantity{o.parser.Parse(ov.Quantity)}
			item.IsAGusto = models.ComputeIsAGusto(item.Quantities)
		}
		out = append(out, item)
	}
	return out
}
