package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/database"
	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/services/planning"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
	shopviews "github.com/plansemanal/plansemanal/internal/tui/views/shopping"
	"github.com/plansemanal/plansemanal/internal/tui/views/week"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Module represents a view module in the application.
type Module string

const (
	ModuleWeek     Module = "semana"
	ModuleShopping Module = "compras"
	ModuleHelp     Module = "ayuda"
)

// App is the main Bubble Tea application model.
type App struct {
	config *config.Config

	planningSvc *planning.Service
	shoppingSvc *shopping.Service

	weekView     *week.View
	shoppingView *shopviews.View

	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	currentModule  Module
	previousModule Module
	showDetail     bool

	alerts []Alert
	plan   *models.WeeklyPlan
}

// Alert is a message shown in the alert bar.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
)

type planLoadedMsg struct {
	plan    *models.WeeklyPlan
	catalog models.Catalog
	err     error
}

type shoppingLoadedMsg struct {
	snapshot *shopviews.Snapshot
	err      error
}

type toggledMsg struct {
	err error
}

type clearedMsg struct {
	n   int
	err error
}

// New creates a new App instance.
func New(db *database.DB, cfg *config.Config, builder *shopping.Builder) *App {
	planSvc := planning.NewService(db.DB, cfg.Planner.PlanID)
	shopSvc := shopping.NewService(db.DB, planSvc, builder)
	theme := NewTheme(cfg.Display.ColorScheme)

	return &App{
		config:        cfg,
		planningSvc:   planSvc,
		shoppingSvc:   shopSvc,
		weekView:      week.NewView(theme.Components(), cfg.Display.DateFormat),
		shoppingView:  shopviews.NewView(shopSvc, builder.Display(), theme.Components(), cfg.Planner.PlanID),
		theme:         theme,
		keys:          DefaultKeyMap(),
		currentModule: ModuleWeek,
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadPlan(), a.loadShopping())
}

func (a *App) loadPlan() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		plan, err := a.planningSvc.Plan(ctx, "")
		if err != nil {
			return planLoadedMsg{err: err}
		}
		catalog, err := a.planningSvc.Catalog(ctx, plan)
		return planLoadedMsg{plan: plan, catalog: catalog, err: err}
	}
}

func (a *App) loadShopping() tea.Cmd {
	return func() tea.Msg {
		snap, err := a.shoppingView.Fetch(context.Background())
		return shoppingLoadedMsg{snapshot: snap, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case planLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "No se pudo cargar el plan: "+msg.err.Error())
			return a, nil
		}
		a.plan = msg.plan
		a.weekView.SetPlan(msg.plan, msg.catalog)
		return a, nil

	case shoppingLoadedMsg:
		a.shoppingView.Apply(msg.snapshot, msg.err)
		if msg.err != nil {
			a.AddAlert(AlertWarning, "No se pudo cargar la lista: "+msg.err.Error())
		}
		return a, nil

	case toggledMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "No se pudo marcar: "+msg.err.Error())
		}
		return a, nil

	case clearedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "No se pudo limpiar la lista: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, fmt.Sprintf("Lista reiniciada (%d desmarcados)", msg.n))
		}
		return a, nil
	}

	return a, nil
}

func (a *App) updateViewDimensions() {
	width := ContentWidth(a.width, 40, MaxContentWidth)
	height := ContentHeight(a.height)
	a.weekView.SetSize(width, height)
	a.shoppingView.SetHeight(height - 6)
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showConfirm {
		switch msg.String() {
		case "s", "S", "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		module := a.keys.FunctionKeyModule(msg)
		if module == ModuleHelp {
			if a.currentModule != ModuleHelp {
				a.previousModule = a.currentModule
			}
		}
		a.currentModule = module
		a.showDetail = false
		if module == ModuleShopping {
			return a, a.loadShopping()
		}
		return a, nil
	}

	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleWeek:
		return a.handleWeekKeys(msg)
	case ModuleShopping:
		return a.handleShoppingKeys(msg)
	}

	return a, nil
}

func (a *App) handleWeekKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		return a, nil
	}

	switch {
	case a.keys.Left.Matches(msg):
		a.weekView.PrevDay()
	case a.keys.Right.Matches(msg):
		a.weekView.NextDay()
	case a.keys.Up.Matches(msg):
		a.weekView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.weekView.MoveDown()
	case a.keys.Select.Matches(msg):
		if _, ok := a.weekView.SelectedMeal(); ok {
			a.showDetail = true
		}
	}
	return a, nil
}

func (a *App) handleShoppingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Up.Matches(msg):
		a.shoppingView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.shoppingView.MoveDown()
	case a.keys.Home.Matches(msg):
		a.shoppingView.GoToTop()
	case a.keys.End.Matches(msg):
		a.shoppingView.GoToBottom()
	case a.keys.Toggle.Matches(msg):
		return a, a.toggleSelected()
	case a.keys.Clear.Matches(msg):
		return a, a.clearChecks()
	}
	return a, nil
}

// toggleSelected runs synchronously so the checkbox flips in the same frame.
func (a *App) toggleSelected() tea.Cmd {
	err := a.shoppingView.Toggle(context.Background())
	return func() tea.Msg { return toggledMsg{err: err} }
}

func (a *App) clearChecks() tea.Cmd {
	n, err := a.shoppingView.Clear(context.Background())
	return func() tea.Msg { return clearedMsg{n: n, err: err} }
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Iniciando..."
	}

	if a.quitting {
		return a.theme.Title.Render("¡Buen provecho! Cerrando plan semanal...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf("PLAN SEMANAL v%s", Version)

	info := "sin plan"
	if a.plan != nil {
		info = fmt.Sprintf("%s | semana del %s", a.plan.Title, a.plan.WeekStart.Format(a.dateFormat()))
	}

	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(info)-4, 1)

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

func (a *App) dateFormat() string {
	if a.config.Display.DateFormat != "" {
		return a.config.Display.DateFormat
	}
	return time.DateOnly
}

func (a *App) renderAlertBar() string {
	today := a.theme.Value.Render(time.Now().Format(a.dateFormat()))

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("AVISO: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render(alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Todo listo")
	}

	return today + a.theme.StatusDivider.Render() + alertText
}

func (a *App) renderContent(height int) string {
	content := a.moduleContent()

	contentWidth := min(a.width, MaxContentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(contentWidth).Render(content))
}

func (a *App) moduleContent() string {
	switch a.currentModule {
	case ModuleWeek:
		if a.showDetail {
			return a.weekView.RenderRecipe()
		}
		return a.weekView.Render()
	case ModuleShopping:
		return a.shoppingView.Render(min(a.width, MaxContentWidth))
	case ModuleHelp:
		return a.renderHelp()
	default:
		return ""
	}
}

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ AYUDA ═══"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		items [][2]string
	}{
		{"NAVEGACIÓN", [][2]string{
			{"F1", "Ayuda"},
			{"F2", "Semana"},
			{"F3", "Compras"},
			{"F10 / q", "Salir"},
		}},
		{"SEMANA", [][2]string{
			{"←/→", "Día anterior / siguiente"},
			{"↑/↓", "Elegir comida"},
			{"Enter", "Ver receta"},
			{"Esc", "Volver"},
		}},
		{"COMPRAS", [][2]string{
			{"↑/↓", "Mover"},
			{"Espacio", "Marcar / desmarcar"},
			{"c", "Desmarcar todo"},
		}},
	}

	for _, sec := range sections {
		b.WriteString(a.theme.Subtitle.Render(sec.title))
		b.WriteString("\n")
		for _, item := range sec.items {
			b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-8s  %s", item[0], item[1])))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(a.theme.Muted.Render("Esc para volver"))

	return b.String()
}

func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("SALIR?") + " " + a.theme.Label.Render("[S]i [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, db *database.DB, cfg *config.Config, builder *shopping.Builder) error {
	p := tea.NewProgram(New(db, cfg, builder), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
