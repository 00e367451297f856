package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/quantity"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
)

func sampleList() (*models.WeeklyPlan, *models.ShoppingList, *shopping.Display) {
	p := quantity.DefaultParser()
	huevos := &models.AggregatedIngredient{
		ID: "Huevos", Name: "Huevos", Category: models.CategoryProteinas,
		Quantities:    []quantity.Quantity{p.Parse("6 unidades")},
		SourceRecipes: []string{"Omelette", "Tortilla"},
	}
	pimienta := &models.AggregatedIngredient{
		ID: "Pimienta", Name: "Pimienta", Category: models.CategoryCondimentos,
		Quantities:    []quantity.Quantity{p.Parse("a gusto")},
		SourceRecipes: []string{"Tortilla"},
		IsAGusto:      true,
	}
	list := &models.ShoppingList{
		Ingredients: []*models.AggregatedIngredient{huevos, pimienta},
		ByCategory: []models.CategoryGroup{
			{Category: models.CategoryProteinas, Label: "Proteinas", Items: []*models.AggregatedIngredient{huevos}},
			{Category: models.CategoryCondimentos, Label: "Condimentos y Especias", Items: []*models.AggregatedIngredient{pimienta}},
		},
		TotalItems: 2, TotalRecipes: 2, TotalCategories: 2,
	}
	plan := &models.WeeklyPlan{ID: "p1", Title: "Semana", WeekStart: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}
	return plan, list, shopping.NewDisplay([]string{"g", "unidad"})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	plan, list, display := sampleList()

	doc := Build(plan, list, display, Options{Checked: map[string]bool{"Huevos": true}})

	assert.Equal(t, "2025-03-03", doc.Plan.WeekStart)
	assert.Equal(t, Totals{Items: 2, Recipes: 2, Categories: 2, Checked: 1}, doc.Totals)
	require.Len(t, doc.Categories, 2)
	huevos := doc.Categories[0].Items[0]
	assert.Equal(t, "6 unidades", huevos.Summary)
	assert.Equal(t, []string{"6 unidades"}, huevos.Quantities)
	assert.True(t, huevos.Checked)

	hidden := Build(plan, list, display, Options{HideAGusto: true})
	assert.Equal(t, 1, hidden.Totals.Items)
	assert.Equal(t, 1, hidden.Totals.Categories, "emptied categories are dropped")
}

func TestWrite_Text(t *testing.T) {
	plan, list, display := sampleList()
	doc := Build(plan, list, display, Options{Checked: map[string]bool{"Huevos": true}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, doc))
	out := buf.String()

	assert.Contains(t, out, "Semana (semana del 2025-03-03)")
	assert.Contains(t, out, "2 items · 2 recetas · 2 categorias")
	assert.Contains(t, out, "PROTEINAS\n---------\n")
	assert.Contains(t, out, "[x] Huevos: 6 unidades (Omelette · Tortilla)\n")
	assert.Contains(t, out, "[ ] Pimienta: a gusto (Tortilla)\n")
	assert.Less(t, strings.Index(out, "PROTEINAS"), strings.Index(out, "CONDIMENTOS"))
}

func TestWrite_JSONAndYAML(t *testing.T) {
	plan, list, display := sampleList()
	doc := Build(plan, list, display, Options{})

	var jbuf bytes.Buffer
	require.NoError(t, Write(&jbuf, FormatJSON, doc))
	var fromJSON Document
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, *doc, fromJSON)
	assert.Contains(t, jbuf.String(), "\n  \"plan\": {")

	var ybuf bytes.Buffer
	require.NoError(t, Write(&ybuf, FormatYAML, doc))
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(ybuf.Bytes(), &fromYAML))
	assert.Equal(t, *doc, fromYAML)
	assert.Contains(t, ybuf.String(), "a_gusto: true")

	assert.Error(t, Write(&jbuf, Format("xml"), doc))
}
