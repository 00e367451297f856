package shopping

import "github.com/plansemanal/plansemanal/internal/models"

// NameNormalizer maps ingredient display names to the canonical name they
// are merged under.
type NameNormalizer struct {
	names map[string]string
}

// NewNameNormalizer copies names into a new normalizer.
func NewNameNormalizer(names map[string]string) *NameNormalizer {
	t := make(map[string]string, len(names))
	for from, to := range names {
		t[from] = to
	}
	return &NameNormalizer{names: t}
}

// Normalize returns the canonical name. Unknown names map to themselves.
func (n *NameNormalizer) Normalize(name string) string {
	if canonical, ok := n.names[name]; ok && canonical != "" {
		return canonical
	}
	return name
}

// Categorizer assigns shopping categories and ranks them.
type Categorizer struct {
	names  *NameNormalizer
	byName map[string]models.Category
	order  []models.Category
	rank   map[models.Category]int
	labels map[models.Category]string
}

// NewCategorizer builds a categorizer. categoryMap maps ingredient name to
// category id, order lists category ids by rank and labels maps ids to
// display labels.
func NewCategorizer(names *NameNormalizer, categoryMap map[string]string, order []string, labels map[string]string) *Categorizer {
	c := &Categorizer{
		names:  names,
		byName: make(map[string]models.Category, len(categoryMap)),
		order:  make([]models.Category, 0, len(order)),
		rank:   make(map[models.Category]int, len(order)),
		labels: make(map[models.Category]string, len(labels)),
	}
	for name, cat := range categoryMap {
		c.byName[name] = models.Category(cat)
	}
	for i, id := range order {
		cat := models.Category(id)
		c.order = append(c.order, cat)
		c.rank[cat] = i
	}
	for id, label := range labels {
		c.labels[models.Category(id)] = label
	}
	return c
}

// Lookup returns the category for name, trying the normalized name first
// and the name as given second. ok is false when neither is known.
func (c *Categorizer) Lookup(name string) (models.Category, bool) {
	if cat, ok := c.byName[c.names.Normalize(name)]; ok {
		return cat, true
	}
	if cat, ok := c.byName[name]; ok {
		return cat, true
	}
	return "", false
}

// Categorize returns the category for name, or models.DefaultCategory.
func (c *Categorizer) Categorize(name string) models.Category {
	if cat, ok := c.Lookup(name); ok {
		return cat
	}
	return models.DefaultCategory
}

// Rank returns the sort position of cat. Unranked categories sort last.
func (c *Categorizer) Rank(cat models.Category) int {
	if r, ok := c.rank[cat]; ok {
		return r
	}
	return len(c.order)
}

// Label returns the display label of cat, or its id.
func (c *Categorizer) Label(cat models.Category) string {
	if l, ok := c.labels[cat]; ok && l != "" {
		return l
	}
	return string(cat)
}

// Order returns the ranked categories.
func (c *Categorizer) Order() []models.Category {
	out := make([]models.Category, len(c.order))
	copy(out, c.order)
	return out
}
