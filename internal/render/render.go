// Package render writes shopping lists as plain text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want text, json or yaml)", s)
	}
}

// Options tune an export.
type Options struct {
	// HideAGusto leaves to-taste items out.
	HideAGusto bool
	// Checked marks items as already bought, keyed by item id.
	Checked map[string]bool
}

// Document is the exported shape of a shopping list.
type Document struct {
	Plan       PlanRef `json:"plan" yaml:"plan"`
	Totals     Totals  `json:"totals" yaml:"totals"`
	Categories []Group `json:"categories" yaml:"categories"`
}

// PlanRef identifies the plan a list was derived from.
type PlanRef struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	WeekStart string `json:"week_start" yaml:"week_start"`
}

// Totals mirrors the list counters.
type Totals struct {
	Items      int `json:"items" yaml:"items"`
	Recipes    int `json:"recipes" yaml:"recipes"`
	Categories int `json:"categories" yaml:"categories"`
	Checked    int `json:"checked" yaml:"checked"`
}

// Group is one category of items.
type Group struct {
	Category string `json:"category" yaml:"category"`
	Label    string `json:"label" yaml:"label"`
	Items    []Item `json:"items" yaml:"items"`
}

// Item is one exported line.
type Item struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Quantities []string `json:"quantities" yaml:"quantities"`
	Sources    []string `json:"sources" yaml:"sources"`
	AGusto     bool     `json:"a_gusto" yaml:"a_gusto"`
	Checked    bool     `json:"checked" yaml:"checked"`
}

// Build converts a list into its exported shape.
func Build(plan *models.WeeklyPlan, list *models.ShoppingList, display *shopping.Display, opts Options) *Document {
	doc := &Document{
		Totals: Totals{
			Recipes: list.TotalRecipes,
		},
		Categories: []Group{},
	}
	if plan != nil {
		doc.Plan = PlanRef{ID: plan.ID, Title: plan.Title, WeekStart: plan.WeekStart.Format(time.DateOnly)}
	}

	for _, g := range list.ByCategory {
		group := Group{Category: g.Category.String(), Label: g.Label}
		for _, item := range g.Items {
			if opts.HideAGusto && item.IsAGusto {
				continue
			}
			raws := make([]string, len(item.Quantities))
			for i, q := range item.Quantities {
				raws[i] = q.Raw
			}
			checked := opts.Checked[item.ID]
			group.Items = append(group.Items, Item{
				ID:         item.ID,
				Name:       item.Name,
				Summary:    display.Summary(item),
				Quantities: raws,
				Sources:    item.SourceRecipes,
				AGusto:     item.IsAGusto,
				Checked:    checked,
			})
			doc.Totals.Items++
			if checked {
				doc.Totals.Checked++
			}
		}
		if len(group.Items) > 0 {
			doc.Categories = append(doc.Categories, group)
		}
	}
	doc.Totals.Categories = len(doc.Categories)

	return doc
}

// Write renders doc to w in the given format.
func Write(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, doc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeText(w io.Writer, doc *Document) error {
	var b strings.Builder

	if doc.Plan.Title != "" {
		fmt.Fprintf(&b, "%s (semana del %s)\n", doc.Plan.Title, doc.Plan.WeekStart)
	}
	fmt.Fprintf(&b, "%d items · %d recetas · %d categorias\n",
		doc.Totals.Items, doc.Totals.Recipes, doc.Totals.Categories)

	for _, g := range doc.Categories {
		fmt.Fprintf(&b, "\n%s\n%s\n", strings.ToUpper(g.Label), strings.Repeat("-", len([]rune(g.Label))))
		for _, item := range g.Items {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Fprintf(&b, "[%s] %s", mark, item.Name)
			if item.Summary != "" {
				fmt.Fprintf(&b, ": %s", item.Summary)
			}
			if len(item.Sources) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(item.Sources, shopping.SourceSeparator))
			}
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
