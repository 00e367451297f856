package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plansemanal/plansemanal/internal/models"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := DefaultBuilder()
	require.NoError(t, err)
	return b
}

func itemByName(items []*models.AggregatedIngredient, name string) *models.AggregatedIngredient {
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	return nil
}

func TestAggregator_MergesNormalizedNames(t *testing.T) {
	b := newTestBuilder(t)
	needs := []*models.RecipeNeed{
		{RecipeID: "omelette", Recipe: newRecipe("omelette", "Omelette", "Huevo", "2 unidades", "Aceite de oliva virgen extra", "1 cda")},
		{RecipeID: "tortilla", Recipe: newRecipe("tortilla", "Tortilla", "Huevos", "3 unidades", "Aceite de oliva", "2 cdas")},
	}

	items := b.aggregator.Aggregate(needs)

	huevos := itemByName(items, "Huevos")
	require.NotNil(t, huevos)
	assert.Equal(t, "Huevos", huevos.ID)
	assert.Equal(t, models.CategoryProteinas, huevos.Category)
	require.Len(t, huevos.Quantities, 1)
	assert.Equal(t, 5.0, huevos.Quantities[0].AmountValue())
	assert.Equal(t, "unidad", huevos.Quantities[0].UnitValue())
	assert.Equal(t, []string{"Omelette", "Tortilla"}, huevos.SourceRecipes)
	assert.False(t, huevos.IsAGusto)

	aceite := itemByName(items, "Aceite de oliva")
	require.NotNil(t, aceite)
	assert.Equal(t, models.CategoryAceites, aceite.Category)
	assert.Equal(t, "3 cda", aceite.Quantities[0].Raw)

	assert.Nil(t, itemByName(items, "Huevo"), "raw spelling must not survive as its own item")
}

func TestAggregator_KeepsIncompatibleUnitsApart(t *testing.T) {
	b := newTestBuilder(t)
	needs := []*models.RecipeNeed{
		{RecipeID: "a", Recipe: newRecipe("a", "A", "Zanahoria", "200g")},
		{RecipeID: "b", Recipe: newRecipe("b", "B", "Zanahorias", "1 unidad", "Zanahoria", "300g")},
	}

	items := b.aggregator.Aggregate(needs)

	require.Len(t, items, 1)
	z := items[0]
	require.Len(t, z.Quantities, 2)
	assert.Equal(t, "500 g", z.Quantities[0].Raw)
	assert.Equal(t, "1 unidad", z.Quantities[1].Raw)
}

func TestAggregator_IsAGusto(t *testing.T) {
	b := newTestBuilder(t)
	needs := []*models.RecipeNeed{
		{RecipeID: "a", Recipe: newRecipe("a", "A", "Pimienta", "a gusto", "Comino", "pizca")},
		{RecipeID: "b", Recipe: newRecipe("b", "B", "Comino", "1 cdita")},
	}

	items := b.aggregator.Aggregate(needs)

	pimienta := itemByName(items, "Pimienta")
	require.NotNil(t, pimienta)
	assert.True(t, pimienta.IsAGusto)

	comino := itemByName(items, "Comino")
	require.NotNil(t, comino)
	assert.False(t, comino.IsAGusto)
	require.Len(t, comino.Quantities, 2)
	assert.Equal(t, "1 cdita", comino.Quantities[0].Raw)
	assert.Equal(t, "pizca", comino.Quantities[1].Raw)
}

func TestAggregator_UsesFullRecipeOncePerNeed(t *testing.T) {
	b := newTestBuilder(t)
	needs := []*models.RecipeNeed{
		{RecipeID: "a", PortionsNeeded: 3, Recipe: newRecipe("a", "A", "Quinoa", "150g")},
	}

	items := b.aggregator.Aggregate(needs)

	require.Len(t, items, 1)
	assert.Equal(t, 150.0, items[0].Quantities[0].AmountValue())
}

func TestAggregator_SortsByCategoryThenName(t *testing.T) {
	b := newTestBuilder(t)
	needs := []*models.RecipeNeed{
		{RecipeID: "mix", Recipe: newRecipe("mix", "Mix",
			"Stevia", "1 cdita",
			"Oregano", "1 cdita",
			"Ajo", "1 diente",
			"Palta", "1 unidad",
			"Tomate", "1 unidad",
			"Cuadril", "300g",
			"Atun al natural", "1 lata",
			"Nueces", "30g",
			"Cebolla", "1 unidad",
		)},
	}

	items := b.aggregator.Aggregate(needs)

	var got []string
	for _, it := range items {
		got = append(got, it.Name)
	}
	assert.Equal(t, []string{
		"Atun al natural", "Cuadril",
		"Cebolla", "Tomate",
		"Palta",
		"Ajo", "Oregano",
		"Stevia",
		"Nueces",
	}, got)

	cats := b.Categories()
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, cats.Rank(items[i-1].Category), cats.Rank(items[i].Category))
	}
}

func TestAggregator_SpanishCollation(t *testing.T) {
	b := newTestBuilder(t)
	needs := []*models.RecipeNeed{
		{RecipeID: "v", Recipe: newRecipe("v", "Verduras",
			"Zucchini", "1 unidad",
			"Morrón rojo", "1 unidad",
			"Champiñones", "200g",
			"morron amarillo", "1 unidad",
		)},
	}

	items := b.aggregator.Aggregate(needs)

	var verduras []string
	for _, it := range items {
		if it.Category == models.CategoryVerduras {
			verduras = append(verduras, it.Name)
		}
	}
	assert.Equal(t, []string{"Champiñones", "Morrón rojo", "Zucchini"}, verduras)

	otros := itemByName(items, "morron amarillo")
	require.NotNil(t, otros)
	assert.Equal(t, models.CategoryOtros, otros.Category)
}

func TestAggregator_SkipsNeedsWithoutRecipe(t *testing.T) {
	b := newTestBuilder(t)
	items := b.aggregator.Aggregate([]*models.RecipeNeed{{RecipeID: "x"}})
	assert.Empty(t, items)
}

func TestCategorizer(t *testing.T) {
	b := newTestBuilder(t)
	c := b.Categories()

	tests := []struct {
		name string
		want models.Category
	}{
		{"Huevos", models.CategoryProteinas},
		{"Huevo", models.CategoryProteinas},
		{"Morron rojo", models.CategoryVerduras},
		{"Cacao extra para rebozar", models.CategoryEndulzantes},
		{"Castañas de caju", models.CategoryOtros},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.name))
		})
	}

	_, ok := c.Lookup("Castañas de caju")
	assert.False(t, ok)

	assert.Equal(t, 0, c.Rank(models.CategoryProteinas))
	assert.Equal(t, 8, c.Rank(models.CategoryOtros))
	assert.Equal(t, 9, c.Rank(models.Category("desconocida")))
	assert.Equal(t, "Lacteos y Alternativas", c.Label(models.CategoryLacteos))
	assert.Equal(t, "desconocida", c.Label(models.Category("desconocida")))
}

func TestNameNormalizer(t *testing.T) {
	n := NewNameNormalizer(map[string]string{"Tomates": "Tomate", "Vacio": ""})

	assert.Equal(t, "Tomate", n.Normalize("Tomates"))
	assert.Equal(t, "Tomate", n.Normalize("Tomate"))
	assert.Equal(t, "Vacio", n.Normalize("Vacio"))
}
