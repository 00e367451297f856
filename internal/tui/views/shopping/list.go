// Package shopping provides the TUI checklist for the weekly shopping list.
package shopping

import (
	"context"
	"fmt"
	"strings"

	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
	"github.com/plansemanal/plansemanal/internal/tui/components"
)

// Source loads a plan's list and persists its checked state.
type Source interface {
	List(ctx context.Context, planID string) (*models.WeeklyPlan, *models.ShoppingList, error)
	Checked(ctx context.Context, planID string) (map[string]bool, error)
	Toggle(ctx context.Context, planID, itemID string) (bool, error)
	Clear(ctx context.Context, planID string) (int, error)
}

type line struct {
	header string
	item   *models.AggregatedIngredient
}

// View is the grouped shopping checklist.
type View struct {
	source  Source
	display *shopping.Display
	styles  components.Styles

	planID  string
	plan    *models.WeeklyPlan
	list    *models.ShoppingList
	checked map[string]bool

	lines  []line
	items  []int // indexes into lines
	cursor int
	offset int
	height int
	err    error
}

// NewView creates a shopping view for planID. An empty planID follows the
// planner default.
func NewView(source Source, display *shopping.Display, styles components.Styles, planID string) *View {
	return &View{
		source:  source,
		display: display,
		styles:  styles,
		planID:  planID,
		checked: map[string]bool{},
		height:  20,
	}
}

// Snapshot is a loaded list with its checked state.
type Snapshot struct {
	Plan    *models.WeeklyPlan
	List    *models.ShoppingList
	Checked map[string]bool
}

// Fetch reads the list and its checked state without touching the view, so
// it can run off the UI goroutine.
func (v *View) Fetch(ctx context.Context) (*Snapshot, error) {
	plan, list, err := v.source.List(ctx, v.planID)
	if err != nil {
		return nil, err
	}
	checked, err := v.source.Checked(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Plan: plan, List: list, Checked: checked}, nil
}

// Apply shows a fetched snapshot, or the error that prevented it.
func (v *View) Apply(snap *Snapshot, err error) {
	v.err = err
	if err != nil {
		return
	}
	v.plan = snap.Plan
	v.list = snap.List
	v.checked = snap.Checked
	if v.checked == nil {
		v.checked = map[string]bool{}
	}
	v.rebuild()
}

// Load fetches and applies the list in one step.
func (v *View) Load(ctx context.Context) error {
	snap, err := v.Fetch(ctx)
	v.Apply(snap, err)
	return err
}

func (v *View) rebuild() {
	v.lines = v.lines[:0]
	v.items = v.items[:0]
	for _, g := range v.list.ByCategory {
		v.lines = append(v.lines, line{header: g.Label})
		for _, item := range g.Items {
			v.items = append(v.items, len(v.lines))
			v.lines = append(v.lines, line{item: item})
		}
	}
	if v.cursor >= len(v.items) {
		v.cursor = max(len(v.items)-1, 0)
	}
}

// SetHeight sets the number of list lines shown.
func (v *View) SetHeight(h int) {
	v.height = max(h, 3)
}

// Plan returns the loaded plan, or nil.
func (v *View) Plan() *models.WeeklyPlan {
	return v.plan
}

// MoveUp moves the cursor to the previous item.
func (v *View) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the cursor to the next item.
func (v *View) MoveDown() {
	if v.cursor < len(v.items)-1 {
		v.cursor++
	}
}

// GoToTop moves the cursor to the first item.
func (v *View) GoToTop() {
	v.cursor = 0
}

// GoToBottom moves the cursor to the last item.
func (v *View) GoToBottom() {
	v.cursor = max(len(v.items)-1, 0)
}

// Selected returns the item under the cursor, or nil.
func (v *View) Selected() *models.AggregatedIngredient {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return nil
	}
	return v.lines[v.items[v.cursor]].item
}

// Toggle flips the checked state of the item under the cursor.
func (v *View) Toggle(ctx context.Context) error {
	item := v.Selected()
	if item == nil || v.plan == nil {
		return nil
	}
	checked, err := v.source.Toggle(ctx, v.plan.ID, item.ID)
	if err != nil {
		v.err = err
		return err
	}
	if checked {
		v.checked[item.ID] = true
	} else {
		delete(v.checked, item.ID)
	}
	return nil
}

// Clear unchecks every item and returns how many were checked.
func (v *View) Clear(ctx context.Context) (int, error) {
	if v.plan == nil {
		return 0, nil
	}
	n, err := v.source.Clear(ctx, v.plan.ID)
	if err != nil {
		v.err = err
		return 0, err
	}
	v.checked = map[string]bool{}
	return n, nil
}

// Progress returns how many listed items are checked out of the total.
func (v *View) Progress() (checked, total int) {
	for _, i := range v.items {
		if v.checked[v.lines[i].item.ID] {
			checked++
		}
	}
	return checked, len(v.items)
}

// Render renders the progress header and the visible part of the list.
func (v *View) Render(width int) string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("═══ COMPRAS ═══"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(s.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.list == nil {
		b.WriteString(s.Label.Render("Cargando..."))
		return b.String()
	}
	if len(v.items) == 0 {
		b.WriteString(s.Label.Render("La lista de compras está vacía."))
		return b.String()
	}

	checked, total := v.Progress()
	b.WriteString(s.Label.Render("Marcados: ") +
		s.Value.Render(fmt.Sprintf("%d/%d ", checked, total)) +
		components.ProgressBar(s, float64(checked), float64(total), min(30, max(width-24, 10))))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d items · %d recetas · %d categorias",
		v.list.TotalItems, v.list.TotalRecipes, v.list.TotalCategories)))
	b.WriteString("\n\n")

	v.scroll()
	end := min(v.offset+v.height, len(v.lines))
	current := -1
	if len(v.items) > 0 {
		current = v.items[v.cursor]
	}

	for i := v.offset; i < end; i++ {
		l := v.lines[i]
		if l.item == nil {
			b.WriteString(s.Subtitle.Render(strings.ToUpper(l.header)))
		} else {
			b.WriteString(v.renderItem(l.item, i == current, width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Muted.Render("↑/↓:Mover  Espacio:Marcar  c:Limpiar"))

	return b.String()
}

// scroll keeps the cursor line and, when possible, its heading in view.
func (v *View) scroll() {
	if len(v.items) == 0 {
		v.offset = 0
		return
	}
	pos := v.items[v.cursor]
	top := pos
	if pos > 0 && v.lines[pos-1].item == nil {
		top = pos - 1
	}
	if top < v.offset {
		v.offset = top
	}
	if pos >= v.offset+v.height {
		v.offset = pos - v.height + 1
	}
}

func (v *View) renderItem(item *models.AggregatedIngredient, selected bool, width int) string {
	s := v.styles

	box := "[ ]"
	style := s.Value
	if v.checked[item.ID] {
		box = "[x]"
		style = s.Muted
	}

	text := box + " " + item.Name
	if summary := v.display.Summary(item); summary != "" {
		text += ": " + summary
	}
	if sources := shopping.Sources(item); sources != "" {
		text += " (" + sources + ")"
	}
	text = components.Truncate(text, max(width-2, 10))

	if selected {
		return s.Selected.Render(text)
	}
	return style.Render(text)
}
