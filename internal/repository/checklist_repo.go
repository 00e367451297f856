package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ChecklistRepository stores which shopping list items have been bought.
// Items are keyed by their aggregated ingredient id.
type ChecklistRepository struct {
	db *sql.DB
}

// NewChecklistRepository creates a new checklist repository.
func NewChecklistRepository(db *sql.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// Checked returns the set of checked ingredient ids for a plan.
func (r *ChecklistRepository) Checked(ctx context.Context, planID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ingredient_id FROM shopping_checks WHERE plan_id = ?`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying checks: %w", err)
	}
	defer rows.Close()

	checked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning check: %w", err)
		}
		checked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checks: %w", err)
	}
	return checked, nil
}

// SetChecked marks or unmarks one item.
func (r *ChecklistRepository) SetChecked(ctx context.Context, tx *sql.Tx, planID, ingredientID string, checked bool) error {
	ex := getExecer(r.db, tx)

	if !checked {
		if _, err := ex.ExecContext(ctx,
			`DELETE FROM shopping_checks WHERE plan_id = ? AND ingredient_id = ?`,
			planID, ingredientID,
		); err != nil {
			return fmt.Errorf("unchecking %s: %w", ingredientID, err)
		}
		return nil
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO shopping_checks (plan_id, ingredient_id, checked_at) VALUES (?, ?, ?)
		ON CONFLICT (plan_id, ingredient_id) DO UPDATE SET checked_at = excluded.checked_at`,
		planID, ingredientID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("checking %s: %w", ingredientID, err)
	}
	return nil
}

// Clear removes every check of a plan and returns how many were removed.
func (r *ChecklistRepository) Clear(ctx context.Context, tx *sql.Tx, planID string) (int, error) {
	result, err := getExecer(r.db, tx).ExecContext(ctx,
		`DELETE FROM shopping_checks WHERE plan_id = ?`, planID)
	if err != nil {
		return 0, fmt.Errorf("clearing checks: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
