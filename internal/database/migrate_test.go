package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plansemanal/plansemanal/internal/config"
)

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUp   string
		wantDown string
	}{
		{"no markers", "CREATE TABLE a (id TEXT);", "CREATE TABLE a (id TEXT);", ""},
		{"up only", "-- +migrate Up\nCREATE TABLE a (id TEXT);", "CREATE TABLE a (id TEXT);", ""},
		{"up and down", "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;", "CREATE TABLE a (id TEXT);", "DROP TABLE a;"},
		{"down first", "-- +migrate Down\nDROP TABLE a;\n-- +migrate Up\nCREATE TABLE a (id TEXT);", "CREATE TABLE a (id TEXT);", "DROP TABLE a;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := parseMigration(tt.content)
			assert.Equal(t, tt.wantUp, up)
			assert.Equal(t, tt.wantDown, down)
		})
	}
}

func TestSplitStatements(t *testing.T) {
	script := `
-- leading comment
CREATE TABLE a (v TEXT DEFAULT 'x;y');
INSERT INTO a (v) VALUES ("semi;colon");
SELECT 1`

	got := splitStatements(script)

	require.Len(t, got, 3)
	assert.Equal(t, "CREATE TABLE a (v TEXT DEFAULT 'x;y')", got[0])
	assert.Equal(t, `INSERT INTO a (v) VALUES ("semi;colon")`, got[1])
	assert.Equal(t, "SELECT 1", got[2])
}

func TestMigrator_UpAndDown(t *testing.T) {
	ctx := context.Background()
	db, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := NewMigrator(db)
	require.NoError(t, err)

	known := m.Migrations()
	require.GreaterOrEqual(t, len(known), 2)
	latest := known[len(known)-1].Version

	result, err := m.MigrateUp(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CurrentVersion)
	assert.Equal(t, latest, result.TargetVersion)
	assert.Len(t, result.Applied, len(known))

	for _, table := range []string{"recipes", "recipe_ingredients", "weekly_plans", "day_plans", "meal_slots", "shopping_checks"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	again, err := m.MigrateUp(ctx)
	require.NoError(t, err)
	assert.Empty(t, again.Applied)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	for _, mig := range status {
		assert.True(t, mig.Applied, "migration %d", mig.Version)
	}

	down, err := m.MigrateDown(ctx)
	require.NoError(t, err)
	assert.Equal(t, known[len(known)-2].Version, down.TargetVersion)

	version, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, known[len(known)-2].Version, version)

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'shopping_checks'",
	).Scan(&count))
	assert.Zero(t, count)
}

func TestOpen_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "plan.db")

	db, err := Open(path, &config.DatabaseConfig{Path: path, BusyTimeoutMS: 1000})
	require.NoError(t, err)

	assert.Equal(t, path, db.Path())
	assert.NoError(t, db.HealthCheck(ctx))
	assert.NoError(t, db.CheckIntegrity(ctx))

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	require.NoError(t, db.Close())
	assert.True(t, db.IsClosed())
	assert.NoError(t, db.Close())

	_, err = db.BeginTx(ctx, nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, db.HealthCheck(ctx), ErrClosed)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := NewMigratedInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO weekly_plans (id, title, week_start, created_at) VALUES ('p', 't', '2025-01-06', '2025-01-06T00:00:00Z')",
		); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM weekly_plans").Scan(&count))
	assert.Zero(t, count)
}
