// Package week provides the TUI view of the weekly meal plan.
package week

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/tui/components"
	"github.com/plansemanal/plansemanal/internal/util"
)

var columnSpecs = []components.ColumnSpec{
	{Fixed: 14, Priority: 5},
	{Weight: 3, MinWidth: 20, Priority: 4},
	{Fixed: 5, Priority: 3},
	{Weight: 1, MinWidth: 14, Priority: 2},
	{Fixed: 12, Priority: 1},
}

// View shows one day of the plan at a time.
type View struct {
	plan    *models.WeeklyPlan
	catalog models.Catalog
	day     int
	meals   []models.PlannedMeal
	table   *components.Table
	styles  components.Styles
	width   int

	dateFormat string
}

// NewView creates an empty week view. dateFormat is a time layout for the
// day's date; empty means ISO dates.
func NewView(styles components.Styles, dateFormat string) *View {
	table := components.NewTable([]components.Column{
		{Title: "Comida"},
		{Title: "Descripción"},
		{Title: "Kcal", Align: lipgloss.Right},
		{Title: "Receta"},
		{Title: "Lote"},
	})
	table.SetStyles(styles)
	table.SetVisibleRows(8)
	table.Focus(true)

	v := &View{table: table, styles: styles, dateFormat: dateFormat}
	v.SetSize(100, 30)
	return v
}

// SetPlan replaces the plan shown and resets to its first day.
func (v *View) SetPlan(plan *models.WeeklyPlan, catalog models.Catalog) {
	v.plan = plan
	v.catalog = catalog
	v.day = 0
	v.refresh()
}

// SetSize adapts the meals table to the terminal.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.table.SetColumnWidths(components.CalculateColumnWidths(columnSpecs, width, 3))
	v.table.SetVisibleRows(height - 10)
}

// Day returns the index into the plan's days of the day shown.
func (v *View) Day() int {
	return v.day
}

// NextDay moves to the following day, wrapping around the week.
func (v *View) NextDay() {
	if v.plan == nil || len(v.plan.Days) == 0 {
		return
	}
	v.day = (v.day + 1) % len(v.plan.Days)
	v.refresh()
}

// PrevDay moves to the previous day, wrapping around the week.
func (v *View) PrevDay() {
	if v.plan == nil || len(v.plan.Days) == 0 {
		return
	}
	v.day = (v.day - 1 + len(v.plan.Days)) % len(v.plan.Days)
	v.refresh()
}

// MoveUp moves the meal selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the meal selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

// SelectedMeal returns the highlighted meal, if any.
func (v *View) SelectedMeal() (models.PlannedMeal, bool) {
	i := v.table.Selected()
	if i < 0 || i >= len(v.meals) {
		return models.PlannedMeal{}, false
	}
	return v.meals[i], true
}

// SelectedRecipe returns the main recipe of the highlighted meal.
func (v *View) SelectedRecipe() *models.Recipe {
	meal, ok := v.SelectedMeal()
	if !ok || meal.Slot.RecipeID == "" {
		return nil
	}
	r, _ := v.catalog.Lookup(meal.Slot.RecipeID)
	return r
}

func (v *View) current() *models.DayPlan {
	if v.plan == nil || v.day >= len(v.plan.Days) {
		return nil
	}
	return &v.plan.Days[v.day]
}

func (v *View) refresh() {
	day := v.current()
	if day == nil {
		v.meals = nil
		v.table.SetRows(nil)
		return
	}

	v.meals = day.Slots()
	rows := make([][]string, len(v.meals))
	for i, m := range v.meals {
		rows[i] = []string{
			m.Type.Label(),
			m.Slot.Description,
			strconv.Itoa(m.Slot.Kcal),
			v.recipeName(m.Slot.RecipeID),
			m.Slot.BatchLabel(),
		}
	}
	v.table.GoToTop()
	v.table.SetRows(rows)
}

func (v *View) recipeName(id string) string {
	if id == "" {
		return "-"
	}
	if r, ok := v.catalog.Lookup(id); ok {
		return r.Name
	}
	return id
}

// Render renders the day selector, the day summary and the meals table.
func (v *View) Render() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("═══ SEMANA ═══"))
	b.WriteString("\n\n")

	day := v.current()
	if day == nil {
		b.WriteString(s.Label.Render("No hay plan cargado."))
		return b.String()
	}

	b.WriteString(v.renderSelector())
	b.WriteString("\n\n")

	date := util.DayDate(v.plan.WeekStart, day.Index)
	b.WriteString(s.Subtitle.Render(strings.ToUpper(day.Day)))
	b.WriteString(s.Muted.Render("  " + util.FormatDate(date, v.dateFormat)))
	b.WriteString("\n")
	if day.Focus != "" {
		b.WriteString(s.Label.Render("Enfoque: ") + s.Value.Render(day.Focus) + "\n")
	}

	split := day.MacroSplit()
	b.WriteString(s.Label.Render("Objetivo: ") +
		s.Value.Render(fmt.Sprintf("%d kcal", day.TargetCalories)) +
		s.Label.Render("  Planificado: ") +
		s.Value.Render(fmt.Sprintf("%d kcal", day.PlannedCalories())) + "\n")
	b.WriteString(s.Label.Render("Macros: ") + s.Value.Render(fmt.Sprintf(
		"P %dg (%d%%) · C %dg (%d%%) · G %dg (%d%%)",
		day.Macros.Protein, split.Protein,
		day.Macros.Carbs, split.Carbs,
		day.Macros.Fat, split.Fat,
	)))
	b.WriteString("\n\n")

	if v.table.Empty() {
		b.WriteString(s.Label.Render("Sin comidas planificadas."))
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("←/→:Día  ↑/↓:Comida  Enter:Receta"))

	return b.String()
}

func (v *View) renderSelector() string {
	parts := make([]string, len(v.plan.Days))
	for i, d := range v.plan.Days {
		name := d.Day
		if len([]rune(name)) > 3 {
			name = string([]rune(name)[:3])
		}
		if i == v.day {
			parts[i] = v.styles.Selected.Render(" " + name + " ")
		} else {
			parts[i] = v.styles.Label.Render(" " + name + " ")
		}
	}
	return strings.Join(parts, " ")
}

// RenderRecipe renders the detail card for the highlighted meal's recipe.
func (v *View) RenderRecipe() string {
	s := v.styles
	meal, ok := v.SelectedMeal()
	if !ok {
		return s.Label.Render("No hay comida seleccionada")
	}

	var b strings.Builder
	recipe := v.SelectedRecipe()
	if recipe == nil {
		b.WriteString(s.Title.Render("═══ " + strings.ToUpper(meal.Type.Label()) + " ═══"))
		b.WriteString("\n\n")
		b.WriteString(s.Value.Render(meal.Slot.Description))
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render("Esta comida no tiene receta."))
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render("Esc:Volver"))
		return b.String()
	}

	label := s.Label.Width(16)

	b.WriteString(s.Title.Render("═══ " + strings.ToUpper(recipe.Name) + " ═══"))
	b.WriteString("\n\n")
	b.WriteString(label.Render("Porciones:") + " " + s.Value.Render(strconv.Itoa(recipe.Servings)) + "\n")
	b.WriteString(label.Render("Tiempo:") + " " + s.Value.Render(recipe.CookTimeLabel()) + "\n")
	b.WriteString(label.Render("Dificultad:") + " " + s.Value.Render(recipe.Difficulty.Label()) + "\n")
	if badge := meal.Slot.BatchLabel(); badge != "" {
		b.WriteString(label.Render("Lote:") + " " + s.Accent.Render(badge) + "\n")
	}
	if meal.Slot.AltRecipeID != "" {
		b.WriteString(label.Render("Alternativa:") + " " + s.Value.Render(v.recipeName(meal.Slot.AltRecipeID)) + "\n")
	}
	if meal.Slot.SideRecipeID != "" {
		b.WriteString(label.Render("Acompañamiento:") + " " + s.Value.Render(v.recipeName(meal.Slot.SideRecipeID)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.Subtitle.Render("INGREDIENTES"))
	b.WriteString("\n")
	for _, ing := range recipe.Ingredients {
		b.WriteString(s.Value.Render("  • "+ing.Name) + s.Muted.Render("  "+ing.Quantity) + "\n")
	}

	if len(recipe.Instructions) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render("PREPARACIÓN"))
		b.WriteString("\n")
		wrap := lipgloss.NewStyle().Width(max(v.width-8, 20))
		for i, step := range recipe.Instructions {
			b.WriteString(s.Value.Render(wrap.Render(fmt.Sprintf("  %d. %s", i+1, step))) + "\n")
		}
	}

	for _, note := range recipe.Notes {
		b.WriteString("\n" + s.Muted.Render("Nota: "+note))
	}

	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("Esc:Volver"))

	return b.String()
}
