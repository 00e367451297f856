package quantity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := DefaultParser()

	tests := []struct {
		name      string
		raw       string
		amount    float64
		unit      string
		hasUnit   bool
		parseable bool
	}{
		{name: "weight without space", raw: "400g", amount: 400, unit: "g", hasUnit: true, parseable: true},
		{name: "volume with space", raw: "100 ml", amount: 100, unit: "ml", hasUnit: true, parseable: true},
		{name: "uppercase suffix is lowercased", raw: "1.5KG", amount: 1.5, unit: "kg", hasUnit: true, parseable: true},
		{name: "parenthetical note is stripped", raw: "240g (1 lata)", amount: 240, unit: "g", hasUnit: true, parseable: true},
		{name: "range takes the maximum", raw: "1-2 dientes", amount: 2, unit: "diente", hasUnit: true, parseable: true},
		{name: "range with spaces around dash", raw: "2 - 3 cdas", amount: 3, unit: "cda", hasUnit: true, parseable: true},
		{name: "mixed fraction", raw: "1 1/2 cditas", amount: 1.5, unit: "cdita", hasUnit: true, parseable: true},
		{name: "bare fraction with unit", raw: "1/2 unidad", amount: 0.5, unit: "unidad", hasUnit: true, parseable: true},
		{name: "number and plural unit", raw: "2 unidades", amount: 2, unit: "unidad", hasUnit: true, parseable: true},
		{name: "decimal number and unit", raw: "0.5 unidad", amount: 0.5, unit: "unidad", hasUnit: true, parseable: true},
		{name: "unknown unit passes through", raw: "1 frasco chico", amount: 1, unit: "frasco chico", hasUnit: true, parseable: true},
		{name: "bare number", raw: "3", amount: 3, parseable: true},
		{name: "surrounding whitespace", raw: "  200g  ", amount: 200, unit: "g", hasUnit: true, parseable: true},
		{name: "a gusto", raw: "a gusto", parseable: false},
		{name: "pizca", raw: "pizca", parseable: false},
		{name: "one pizca", raw: "1 pizca", parseable: false},
		{name: "free text", raw: "un punado", parseable: false},
		{name: "empty string", raw: "", parseable: false},
		{name: "number glued to unknown unit", raw: "1cm", parseable: false},
		{name: "zero denominator", raw: "1/0 taza", parseable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.raw)

			assert.Equal(t, tt.parseable, got.Parseable)
			if !tt.parseable {
				assert.Nil(t, got.Amount, "unparseable quantity must have no amount")
				assert.Nil(t, got.Unit, "unparseable quantity must have no unit")
				return
			}
			require.NotNil(t, got.Amount)
			assert.InDelta(t, tt.amount, *got.Amount, 1e-9)
			if tt.hasUnit {
				require.NotNil(t, got.Unit)
				assert.Equal(t, tt.unit, *got.Unit)
			} else {
				assert.Nil(t, got.Unit)
			}
		})
	}
}

func TestParser_ParseKeepsTrimmedRaw(t *testing.T) {
	p := DefaultParser()

	got := p.Parse("  240g (1 lata) ")
	assert.Equal(t, "240g (1 lata)", got.Raw)

	got = p.Parse(" a gusto ")
	assert.Equal(t, "a gusto", got.Raw)
	assert.False(t, got.Parseable)
}

func TestParser_WeightVolumeRoundTrip(t *testing.T) {
	p := DefaultParser()

	for _, unit := range []string{"g", "ml", "kg", "l"} {
		for _, n := range []float64{1, 25, 250, 0.5, 1.25} {
			raw := fmt.Sprintf("%s%s", FormatAmount(n), unit)
			t.Run(raw, func(t *testing.T) {
				got := p.Parse(raw)
				require.True(t, got.Parseable)
				assert.Equal(t, n, got.AmountValue())
				assert.Equal(t, unit, got.UnitValue())
			})
		}
	}
}

func TestParser_CustomTables(t *testing.T) {
	p := NewParser(NewUnitNormalizer(map[string]string{"tazas": "taza"}), []string{"c/n"})

	got := p.Parse("2 tazas")
	assert.Equal(t, "taza", got.UnitValue())

	got = p.Parse("c/n")
	assert.False(t, got.Parseable)

	got = p.Parse("a gusto")
	assert.False(t, got.Parseable, "free text still falls through to unparseable")

	got = p.Parse("3 dientes")
	assert.Equal(t, "dientes", got.UnitValue(), "units outside the table pass through")
}

func TestUnitNormalizer_Normalize(t *testing.T) {
	n := NewUnitNormalizer(DefaultUnitNormalizations)

	tests := []struct {
		in   string
		want string
	}{
		{"cdas", "cda"},
		{"cditas", "cdita"},
		{"unidades", "unidad"},
		{"dientes", "diente"},
		{"pellizcos", "pellizco"},
		{"ramitas", "ramita"},
		{"grandes", "grande"},
		{"pizca", "pizca"},
		{"taza", "taza"},
		{"Unidades", "Unidades"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}

	var nilNormalizer *UnitNormalizer
	assert.Equal(t, "cdas", nilNormalizer.Normalize("cdas"))
}

func TestSum(t *testing.T) {
	p := DefaultParser()

	t.Run("same unit is added", func(t *testing.T) {
		got := Sum([]Quantity{p.Parse("200g"), p.Parse("300g")})

		require.Len(t, got, 1)
		assert.Equal(t, 500.0, got[0].AmountValue())
		assert.Equal(t, "g", got[0].UnitValue())
		assert.Equal(t, "500 g", got[0].Raw)
		assert.True(t, got[0].Parseable)
	})

	t.Run("different units stay separate", func(t *testing.T) {
		got := Sum([]Quantity{p.Parse("200g"), p.Parse("1 unidad")})

		require.Len(t, got, 2)
		assert.Equal(t, "g", got[0].UnitValue())
		assert.Equal(t, "unidad", got[1].UnitValue())
	})

	t.Run("units keep first appearance order", func(t *testing.T) {
		got := Sum([]Quantity{p.Parse("1 cda"), p.Parse("100g"), p.Parse("2 cdas")})

		require.Len(t, got, 2)
		assert.Equal(t, "3 cda", got[0].Raw)
		assert.Equal(t, "100 g", got[1].Raw)
	})

	t.Run("unparseable and unit-less entries follow", func(t *testing.T) {
		got := Sum([]Quantity{p.Parse("a gusto"), p.Parse("2"), p.Parse("50g")})

		require.Len(t, got, 3)
		assert.Equal(t, "50 g", got[0].Raw)
		assert.Equal(t, "a gusto", got[1].Raw)
		assert.Equal(t, "2", got[2].Raw)
		assert.Nil(t, got[2].Unit)
	})

	t.Run("floating point noise is rounded", func(t *testing.T) {
		got := Sum([]Quantity{p.Parse("0.1 l"), p.Parse("0.2 l")})

		require.Len(t, got, 1)
		assert.Equal(t, 0.3, got[0].AmountValue())
		assert.Equal(t, "0.3 l", got[0].Raw)
	})

	t.Run("empty input", func(t *testing.T) {
		got := Sum(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		in := []Quantity{p.Parse("200g"), p.Parse("300g")}
		Sum(in)
		assert.Equal(t, 200.0, in[0].AmountValue())
		assert.Equal(t, "200g", in[0].Raw)
	})
}

func TestCanSum(t *testing.T) {
	p := DefaultParser()

	assert.False(t, CanSum(p.Parse("200g"), p.Parse("1 kg")))
	assert.True(t, CanSum(p.Parse("200g"), p.Parse("30 g")))
	assert.False(t, CanSum(p.Parse("2"), p.Parse("3")))
	assert.False(t, CanSum(p.Parse("a gusto"), p.Parse("200g")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500", FormatAmount(500))
	assert.Equal(t, "1.5", FormatAmount(1.5))
	assert.Equal(t, "0.25", FormatAmount(0.25))
}
