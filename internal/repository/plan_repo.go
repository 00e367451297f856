package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/plansemanal/plansemanal/internal/models"
)

// PlanRepository handles weekly plan data access.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// PlanSummary is a weekly plan without its days.
type PlanSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	WeekStart time.Time `json:"week_start"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

// Create inserts a plan with its days and meal slots.
func (r *PlanRepository) Create(ctx context.Context, tx *sql.Tx, plan *models.WeeklyPlan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	ex := getExecer(r.db, tx)
	_, err := ex.ExecContext(ctx,
		`INSERT INTO weekly_plans (id, title, week_start, created_at) VALUES (?, ?, ?, ?)`,
		plan.ID,
		plan.Title,
		plan.WeekStart.Format(time.DateOnly),
		plan.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i := range plan.Days {
		day := &plan.Days[i]
		_, err := ex.ExecContext(ctx, `
			INSERT INTO day_plans (
				plan_id, day_index, day, focus, target_calories, protein, carbs, fat
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			plan.ID,
			day.Index,
			day.Day,
			nullableString(day.Focus),
			day.TargetCalories,
			day.Macros.Protein,
			day.Macros.Carbs,
			day.Macros.Fat,
		)
		if err != nil {
			return fmt.Errorf("inserting day %s: %w", day.Day, err)
		}

		for _, pm := range day.Slots() {
			_, err := ex.ExecContext(ctx, `
				INSERT INTO meal_slots (
					plan_id, day_index, meal_type, description, kcal,
					recipe_id, alt_recipe_id, side_recipe_id, cook_for_days
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				plan.ID,
				day.Index,
				string(pm.Type),
				pm.Slot.Description,
				pm.Slot.Kcal,
				nullableString(pm.Slot.RecipeID),
				nullableString(pm.Slot.AltRecipeID),
				nullableString(pm.Slot.SideRecipeID),
				nullableInt(pm.Slot.CookForDays),
			)
			if err != nil {
				return fmt.Errorf("inserting %s slot of %s: %w", pm.Type, day.Day, err)
			}
		}
	}

	return nil
}

// GetByID retrieves a full plan.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.WeeklyPlan, error) {
	plan, err := r.scanPlan(r.db.QueryRowContext(ctx,
		`SELECT id, title, week_start, created_at FROM weekly_plans WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadDays(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Latest retrieves the plan with the most recent week start.
func (r *PlanRepository) Latest(ctx context.Context) (*models.WeeklyPlan, error) {
	plan, err := r.scanPlan(r.db.QueryRowContext(ctx,
		`SELECT id, title, week_start, created_at FROM weekly_plans
		ORDER BY week_start DESC, created_at DESC, id DESC LIMIT 1`))
	if err != nil {
		return nil, err
	}
	if err := r.loadDays(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns plan summaries, newest week first.
func (r *PlanRepository) List(ctx context.Context, page models.Pagination) ([]PlanSummary, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weekly_plans`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting plans: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.week_start, p.created_at,
			(SELECT COUNT(*) FROM day_plans d WHERE d.plan_id = p.id)
		FROM weekly_plans p
		ORDER BY p.week_start DESC, p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []PlanSummary
	for rows.Next() {
		var s PlanSummary
		var weekStart, createdAt string
		if err := rows.Scan(&s.ID, &s.Title, &weekStart, &createdAt, &s.Days); err != nil {
			return nil, 0, fmt.Errorf("scanning plan: %w", err)
		}
		s.WeekStart, _ = time.Parse(time.DateOnly, weekStart)
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating plans: %w", err)
	}

	return out, total, nil
}

// Count returns the number of stored plans, reading through tx when set.
func (r *PlanRepository) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	if err := getQueryer(r.db, tx).QueryRowContext(ctx, `SELECT COUNT(*) FROM weekly_plans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting plans: %w", err)
	}
	return n, nil
}

// Delete removes a plan. Days, slots and checks cascade.
func (r *PlanRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx, `DELETE FROM weekly_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PlanRepository) scanPlan(row *sql.Row) (*models.WeeklyPlan, error) {
	var p models.WeeklyPlan
	var weekStart, createdAt string

	err := row.Scan(&p.ID, &p.Title, &weekStart, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.WeekStart, _ = time.Parse(time.DateOnly, weekStart)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

func (r *PlanRepository) loadDays(ctx context.Context, plan *models.WeeklyPlan) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day_index, day, focus, target_calories, protein, carbs, fat
		FROM day_plans WHERE plan_id = ? ORDER BY day_index`, plan.ID)
	if err != nil {
		return fmt.Errorf("querying days: %w", err)
	}

	byIndex := make(map[int]int)
	for rows.Next() {
		var d models.DayPlan
		var focus sql.NullString
		if err := rows.Scan(&d.Index, &d.Day, &focus, &d.TargetCalories,
			&d.Macros.Protein, &d.Macros.Carbs, &d.Macros.Fat); err != nil {
			rows.Close()
			return fmt.Errorf("scanning day: %w", err)
		}
		d.Focus = focus.String
		d.Meals = make(map[models.MealType]models.MealSlot)
		byIndex[d.Index] = len(plan.Days)
		plan.Days = append(plan.Days, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating days: %w", err)
	}
	rows.Close()

	slots, err := r.db.QueryContext(ctx, `
		SELECT day_index, meal_type, description, kcal,
			recipe_id, alt_recipe_id, side_recipe_id, cook_for_days
		FROM meal_slots WHERE plan_id = ?`, plan.ID)
	if err != nil {
		return fmt.Errorf("querying meal slots: %w", err)
	}
	defer slots.Close()

	for slots.Next() {
		var idx int
		var mealType string
		var s models.MealSlot
		var recipeID, altID, sideID sql.NullString
		var cookForDays sql.NullInt64
		if err := slots.Scan(&idx, &mealType, &s.Description, &s.Kcal,
			&recipeID, &altID, &sideID, &cookForDays); err != nil {
			return fmt.Errorf("scanning meal slot: %w", err)
		}

		meal, err := models.ParseMealType(mealType)
		if err != nil {
			return fmt.Errorf("plan %s day %d: %w", plan.ID, idx, err)
		}
		s.RecipeID = recipeID.String
		s.AltRecipeID = altID.String
		s.SideRecipeID = sideID.String
		s.CookForDays = int(cookForDays.Int64)

		if i, ok := byIndex[idx]; ok {
			plan.Days[i].Meals[meal] = s
		}
	}
	if err := slots.Err(); err != nil {
		return fmt.Errorf("iterating meal slots: %w", err)
	}

	return nil
}
