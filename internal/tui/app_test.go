package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plansemanal/plansemanal/internal/config"
)

func TestApp_InitialState(t *testing.T) {
	app := newTestApp(t)

	if app.currentModule != ModuleWeek {
		t.Errorf("expected initial module Semana, got %s", app.currentModule)
	}
	if !app.ready {
		t.Error("expected app to be ready")
	}
	if app.quitting || app.showDetail || app.showConfirm {
		t.Error("expected no modal state initially")
	}
	if app.plan == nil {
		t.Fatal("expected plan to be loaded")
	}
	if len(app.alerts) != 0 {
		t.Errorf("expected no alerts, got %v", app.alerts)
	}
}

func TestApp_View_NotReady(t *testing.T) {
	app := newTestApp(t)
	app.ready = false

	if !strings.Contains(app.View(), "Iniciando") {
		t.Error("expected initialization message when not ready")
	}
}

func TestApp_View_Quitting(t *testing.T) {
	app := newTestApp(t)
	app.quitting = true

	if !strings.Contains(app.View(), "Cerrando") {
		t.Error("expected shutdown message when quitting")
	}
}

func TestApp_View_Week(t *testing.T) {
	app := newTestApp(t)
	output := app.View()

	for _, want := range []string{"PLAN SEMANAL", "Semana 1200 kcal", "SEMANA", "LUNES", "Desayuno", "[F3]Compras"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in view output", want)
		}
	}
}

func TestApp_ModuleNavigation_FKeys(t *testing.T) {
	tests := []struct {
		key      tea.KeyType
		expected Module
	}{
		{tea.KeyF1, ModuleHelp},
		{tea.KeyF3, ModuleShopping},
		{tea.KeyF2, ModuleWeek},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			app := newTestApp(t)
			app.Update(specialKeyMsg(tt.key))

			if app.currentModule != tt.expected {
				t.Errorf("expected module %s, got %s", tt.expected, app.currentModule)
			}
		})
	}
}

func TestApp_HelpReturnsToPreviousModule(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(specialKeyMsg(tea.KeyF1))

	if !strings.Contains(app.View(), "AYUDA") {
		t.Error("expected help screen")
	}

	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.currentModule != ModuleShopping {
		t.Errorf("expected return to Compras, got %s", app.currentModule)
	}
}

func TestApp_WeekDayNavigation(t *testing.T) {
	app := newTestApp(t)

	app.Update(specialKeyMsg(tea.KeyRight))
	if !strings.Contains(app.View(), "MARTES") {
		t.Error("expected Martes after right arrow")
	}

	app.Update(specialKeyMsg(tea.KeyLeft))
	app.Update(specialKeyMsg(tea.KeyLeft))
	if !strings.Contains(app.View(), "DOMINGO") {
		t.Error("expected wrap to Domingo")
	}
}

func TestApp_RecipeDetail(t *testing.T) {
	app := newTestApp(t)

	app.Update(specialKeyMsg(tea.KeyDown))
	app.Update(specialKeyMsg(tea.KeyEnter))

	if !app.showDetail {
		t.Fatal("expected recipe detail")
	}
	output := app.View()
	if !strings.Contains(output, "COMPLETISIMA ENSALADA DE ATUN") {
		t.Error("expected lunch recipe title")
	}
	if !strings.Contains(output, "INGREDIENTES") {
		t.Error("expected ingredients section")
	}

	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.showDetail {
		t.Error("expected Esc to close detail")
	}
}

func TestApp_ModuleSwitchClearsDetail(t *testing.T) {
	app := newTestApp(t)
	app.showDetail = true

	app.Update(specialKeyMsg(tea.KeyF3))

	if app.showDetail {
		t.Error("expected detail to be cleared on module switch")
	}
}

func TestApp_ShoppingToggleAndClear(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))

	if !strings.Contains(app.View(), "Marcados: 0/") {
		t.Fatal("expected empty progress")
	}

	_, cmd := app.Update(specialKeyMsg(tea.KeySpace))
	if cmd != nil {
		app.Update(cmd())
	}
	if checked, _ := app.shoppingView.Progress(); checked != 1 {
		t.Errorf("expected 1 checked item, got %d", checked)
	}
	if !strings.Contains(app.View(), "[x]") {
		t.Error("expected a checked box")
	}

	app.Update(specialKeyMsg(tea.KeyDown))
	_, cmd = app.Update(keyMsg(" "))
	if cmd != nil {
		app.Update(cmd())
	}
	if checked, _ := app.shoppingView.Progress(); checked != 2 {
		t.Errorf("expected 2 checked items, got %d", checked)
	}

	_, cmd = app.Update(keyMsg("c"))
	if cmd == nil {
		t.Fatal("expected clear command")
	}
	app.Update(cmd())
	if checked, _ := app.shoppingView.Progress(); checked != 0 {
		t.Errorf("expected 0 checked items after clear, got %d", checked)
	}
	if len(app.alerts) == 0 || !strings.Contains(app.alerts[0].Message, "2 desmarcados") {
		t.Errorf("expected clear alert, got %v", app.alerts)
	}
}

func TestApp_ShoppingChecksPersist(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF3))
	app.Update(specialKeyMsg(tea.KeySpace))

	// Reloading reads the checked state back from the database.
	app.Update(app.loadShopping()())
	if checked, _ := app.shoppingView.Progress(); checked != 1 {
		t.Errorf("expected checked state to survive reload, got %d", checked)
	}
}

func TestApp_QuitConfirmation(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))

	if !app.showConfirm {
		t.Fatal("expected quit confirmation to show")
	}
	if !strings.Contains(app.View(), "SALIR?") {
		t.Error("expected confirm dialog in output")
	}

	app.Update(keyMsg("x"))
	if !app.showConfirm {
		t.Error("expected confirmation to stay open on unrelated key")
	}

	app.Update(keyMsg("n"))
	if app.showConfirm || app.quitting {
		t.Error("expected confirmation dismissed without quitting")
	}
}

func TestApp_QuitConfirmation_Confirm(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF10))
	_, cmd := app.Update(keyMsg("s"))

	if !app.quitting {
		t.Error("expected app to be quitting after confirm")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestApp_QuitConfirmation_EscCancels(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	app.Update(specialKeyMsg(tea.KeyEscape))

	if app.showConfirm {
		t.Error("expected Esc to dismiss confirmation")
	}
}

func TestApp_WindowResize(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if app.width != 80 || app.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", app.width, app.height)
	}
	if !strings.Contains(app.View(), "SEMANA") {
		t.Error("expected week view at narrow width")
	}
}

func TestApp_Alerts(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 12; i++ {
		app.AddAlert(AlertInfo, "aviso")
	}
	if len(app.alerts) != 10 {
		t.Errorf("expected alerts capped at 10, got %d", len(app.alerts))
	}

	app.AddAlert(AlertWarning, "falta receta")
	if !strings.Contains(app.View(), "AVISO: falta receta") {
		t.Error("expected latest warning in alert bar")
	}

	app.ClearAlerts()
	if !strings.Contains(app.View(), "Todo listo") {
		t.Error("expected idle alert bar")
	}
}

func TestNewTheme_Schemes(t *testing.T) {
	for _, scheme := range []string{"huerta", "tomate", "mono", "desconocido"} {
		theme := NewTheme(config.ColorScheme(scheme))
		if theme == nil || theme.PrimaryColor == "" {
			t.Errorf("expected theme for %s", scheme)
		}
	}
	if NewTheme("tomate").PrimaryColor == NewTheme("huerta").PrimaryColor {
		t.Error("expected distinct palettes")
	}
}
