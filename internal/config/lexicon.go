package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed lexicon.toml
var defaultLexicon string

// RemoveOverride is the override value that drops an item from the list.
const RemoveOverride = "REMOVE"

// Lexicon holds the ingredient lookup tables. It is loaded once at startup
// and treated as read-only afterwards.
type Lexicon struct {
	NonQuantifiable []string          `toml:"non_quantifiable"`
	ShoppingUnits   []string          `toml:"shopping_units"`
	Units           map[string]string `toml:"units"`
	Names           map[string]string `toml:"names"`
	Overrides       map[string]string `toml:"overrides"`
	Categories      []CategoryEntry   `toml:"categories"`
}

// CategoryEntry is one shopping category. The position of the entry in
// Lexicon.Categories is the category's rank.
type CategoryEntry struct {
	ID    string   `toml:"id"`
	Label string   `toml:"label"`
	Items []string `toml:"items"`
}

// DefaultLexicon parses the built-in lexicon.
func DefaultLexicon() (*Lexicon, error) {
	return parseLexicon(defaultLexicon)
}

// LoadLexicon reads the lexicon at path, or the built-in one when path is
// empty.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("reading file: %w", err)}
	}

	lex, err := parseLexicon(string(data))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return lex, nil
}

func parseLexicon(data string) (*Lexicon, error) {
	var lex Lexicon
	if _, err := toml.Decode(data, &lex); err != nil {
		return nil, fmt.Errorf("parsing lexicon TOML: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("validating lexicon: %w", err)
	}
	return &lex, nil
}

// Validate checks the lexicon tables are consistent.
func (l *Lexicon) Validate() error {
	var errs []error

	if len(l.Categories) == 0 {
		errs = append(errs, errors.New("at least one category is required"))
	}

	ids := make(map[string]bool, len(l.Categories))
	owner := make(map[string]string)
	for i, c := range l.Categories {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: id is required", i))
			continue
		}
		if ids[c.ID] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate id %q", i, c.ID))
		}
		ids[c.ID] = true
		for _, item := range c.Items {
			if prev, ok := owner[item]; ok && prev != c.ID {
				errs = append(errs, fmt.Errorf("ingredient %q is in both %q and %q", item, prev, c.ID))
			}
			owner[item] = c.ID
		}
	}

	for name, value := range l.Overrides {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("overrides: %q has an empty value", name))
		}
	}

	for from, to := range l.Names {
		if to == "" {
			errs = append(errs, fmt.Errorf("names: %q maps to an empty name", from))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CategoryMap inverts Categories into ingredient name to category id.
func (l *Lexicon) CategoryMap() map[string]string {
	m := make(map[string]string)
	for _, c := range l.Categories {
		for _, item := range c.Items {
			m[item] = c.ID
		}
	}
	return m
}

// CategoryOrder returns the category ids in rank order.
func (l *Lexicon) CategoryOrder() []string {
	order := make([]string, len(l.Categories))
	for i, c := range l.Categories {
		order[i] = c.ID
	}
	return order
}

// CategoryLabels maps category id to display label.
func (l *Lexicon) CategoryLabels() map[string]string {
	labels := make(map[string]string, len(l.Categories))
	for _, c := range l.Categories {
		labels[c.ID] = c.Label
	}
	return labels
}
