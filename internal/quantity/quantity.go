// Package quantity turns human-written ingredient quantities ("400g",
// "1-2 dientes", "1 1/2 cditas") into amount/unit pairs and sums them.
package quantity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultNonQuantifiable lists phrases that never describe a buyable amount.
var DefaultNonQuantifiable = []string{"a gusto", "pizca", "1 pizca"}

// Quantity is one parsed quantity. When Parseable is false both Amount and
// Unit are nil. A Quantity is never modified after it is built.
type Quantity struct {
	Amount    *float64 `json:"amount" yaml:"amount"`
	Unit      *string  `json:"unit" yaml:"unit"`
	Raw       string   `json:"raw" yaml:"raw"`
	Parseable bool     `json:"parseable" yaml:"parseable"`
}

// AmountValue returns the amount, or 0 when there is none.
func (q Quantity) AmountValue() float64 {
	if q.Amount == nil {
		return 0
	}
	return *q.Amount
}

// UnitValue returns the unit, or "" when there is none.
func (q Quantity) UnitValue() string {
	if q.Unit == nil {
		return ""
	}
	return *q.Unit
}

func (q Quantity) String() string {
	return q.Raw
}

// Unparseable builds the quantity for text that carries no usable amount.
func Unparseable(raw string) Quantity {
	return Quantity{Raw: raw}
}

// Measured builds a parseable quantity with a unit.
func Measured(amount float64, unit, raw string) Quantity {
	return Quantity{Amount: &amount, Unit: &unit, Raw: raw, Parseable: true}
}

// Count builds a parseable quantity without a unit.
func Count(amount float64, raw string) Quantity {
	return Quantity{Amount: &amount, Raw: raw, Parseable: true}
}

var (
	parenRe      = regexp.MustCompile(`\s*\([^)]*\)`)
	suffixRe     = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(g|ml|kg|l)$`)
	rangeRe      = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)\s+(.+)$`)
	mixedFracRe  = regexp.MustCompile(`^(\d+)\s+(\d+/\d+)\s+(.+)$`)
	fracUnitRe   = regexp.MustCompile(`^(\d+/\d+)\s+(.+)$`)
	numberUnitRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`)
	bareNumberRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// Parser parses quantity text. It holds only read-only tables and is safe
// for concurrent use.
type Parser struct {
	units           *UnitNormalizer
	nonQuantifiable map[string]struct{}
}

// NewParser creates a parser that normalizes units with units and treats
// every phrase in nonQuantifiable as unparseable.
func NewParser(units *UnitNormalizer, nonQuantifiable []string) *Parser {
	set := make(map[string]struct{}, len(nonQuantifiable))
	for _, p := range nonQuantifiable {
		set[strings.TrimSpace(p)] = struct{}{}
	}
	return &Parser{units: units, nonQuantifiable: set}
}

// DefaultParser creates a parser over the built-in tables.
func DefaultParser() *Parser {
	return NewParser(NewUnitNormalizer(DefaultUnitNormalizations), DefaultNonQuantifiable)
}

// Parse never fails. Text it cannot interpret comes back unparseable with
// Raw set to the trimmed input.
func (p *Parser) Parse(raw string) Quantity {
	trimmed := strings.TrimSpace(raw)

	if _, ok := p.nonQuantifiable[trimmed]; ok {
		return Unparseable(trimmed)
	}

	// Only the first parenthetical is dropped: "240g (1 lata)" -> "240g"
	text := trimmed
	if loc := parenRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + text[loc[1]:]
	}
	text = strings.TrimSpace(text)

	if m := suffixRe.FindStringSubmatch(text); m != nil {
		return Measured(mustFloat(m[1]), strings.ToLower(m[2]), trimmed)
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		return Measured(mustFloat(m[2]), p.units.Normalize(m[3]), trimmed)
	}

	if m := mixedFracRe.FindStringSubmatch(text); m != nil {
		if frac, ok := parseFraction(m[2]); ok {
			return Measured(mustFloat(m[1])+frac, p.units.Normalize(m[3]), trimmed)
		}
	}

	if m := fracUnitRe.FindStringSubmatch(text); m != nil {
		if frac, ok := parseFraction(m[1]); ok {
			return Measured(frac, p.units.Normalize(m[2]), trimmed)
		}
	}

	if m := numberUnitRe.FindStringSubmatch(text); m != nil {
		return Measured(mustFloat(m[1]), p.units.Normalize(m[2]), trimmed)
	}

	if bareNumberRe.MatchString(text) {
		return Count(mustFloat(text), trimmed)
	}

	return Unparseable(trimmed)
}

// parseFraction reads "N/D". A zero denominator is rejected.
func parseFraction(s string) (float64, bool) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// mustFloat parses digits already validated by a regular expression.
func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// CanSum reports whether a and b can be added together.
func CanSum(a, b Quantity) bool {
	if !a.Parseable || !b.Parseable {
		return false
	}
	if a.Unit == nil || b.Unit == nil {
		return false
	}
	return *a.Unit == *b.Unit
}

// Sum adds quantities sharing a unit. Summed entries come first, in order of
// each unit's first appearance, rounded to two decimals. Unparseable and
// unit-less entries follow unchanged in their original order.
func Sum(quantities []Quantity) []Quantity {
	var units []string
	totals := make(map[string]float64)
	var rest []Quantity

	for _, q := range quantities {
		if !q.Parseable || q.Unit == nil || q.Amount == nil {
			rest = append(rest, q)
			continue
		}
		unit := *q.Unit
		if _, seen := totals[unit]; !seen {
			units = append(units, unit)
		}
		totals[unit] += *q.Amount
	}

	out := make([]Quantity, 0, len(units)+len(rest))
	for _, unit := range units {
		rounded := Round2(totals[unit])
		out = append(out, Measured(rounded, unit, FormatAmount(rounded)+" "+unit))
	}
	return append(out, rest...)
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatAmount renders x with the fewest digits that round-trip: 500, 1.5, 0.25.
func FormatAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
