package quantity

// DefaultUnitNormalizations maps plural or variant unit spellings to the
// singular form quantities are merged under.
var DefaultUnitNormalizations = map[string]string{
	"cdas":      "cda",
	"cditas":    "cdita",
	"unidades":  "unidad",
	"dientes":   "diente",
	"pellizcos": "pellizco",
	"ramitas":   "ramita",
	"pizca":     "pizca",
	"grandes":   "grande",
}

// UnitNormalizer canonicalizes unit spellings through an exact lookup.
// It is safe for concurrent use once constructed.
type UnitNormalizer struct {
	table map[string]string
}

// NewUnitNormalizer copies the given table into a new normalizer.
func NewUnitNormalizer(table map[string]string) *UnitNormalizer {
	t := make(map[string]string, len(table))
	for from, to := range table {
		t[from] = to
	}
	return &UnitNormalizer{table: t}
}

// Normalize returns the canonical spelling of unit. Unknown units are
// returned unchanged.
func (n *UnitNormalizer) Normalize(unit string) string {
	if n == nil {
		return unit
	}
	if canonical, ok := n.table[unit]; ok && canonical != "" {
		return canonical
	}
	return unit
}

// Len returns the number of known spellings.
func (n *UnitNormalizer) Len() int {
	if n == nil {
		return 0
	}
	return len(n.table)
}
