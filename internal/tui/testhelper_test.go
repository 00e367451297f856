package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/database"
	"github.com/plansemanal/plansemanal/internal/database/seed"
	"github.com/plansemanal/plansemanal/internal/repository"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
)

// newSeededApp creates an App over a migrated in-memory database holding
// the bundled weekly plan.
func newSeededApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewMigratedInMemory(ctx)
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	data, err := seed.Load()
	if err != nil {
		t.Fatalf("loading seed data: %v", err)
	}
	seeder := seed.NewSeeder(db, repository.NewPlanRepository(db.DB), repository.NewRecipeRepository(db.DB))
	if _, err := seeder.Seed(ctx, data); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	builder, err := shopping.DefaultBuilder()
	if err != nil {
		t.Fatalf("building lexicon: %v", err)
	}

	return New(db, config.Default(), builder)
}

// newTestApp returns a seeded App with its data loaded, sized to 120x40
// and marked ready.
func newTestApp(t *testing.T) *App {
	t.Helper()

	app := newSeededApp(t)
	app.Update(app.loadPlan()())
	app.Update(app.loadShopping()())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return app
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
