package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/plansemanal/plansemanal/internal/models"
)

// RecipeRepository handles recipe data access.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `id, name, servings, cook_time_minutes, difficulty, source, source_url,
	instructions, notes, created_at, updated_at`

// Create inserts a recipe and its ingredient lines in order.
func (r *RecipeRepository) Create(ctx context.Context, tx *sql.Tx, recipe *models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	instructions, err := encodeLines(recipe.Instructions)
	if err != nil {
		return fmt.Errorf("encoding instructions: %w", err)
	}
	notes, err := encodeLines(recipe.Notes)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}

	difficulty := recipe.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyEasy
	}

	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	ex := getExecer(r.db, tx)
	_, err = ex.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.Name,
		recipe.Servings,
		recipe.CookTimeMinutes,
		string(difficulty),
		nullableString(recipe.Source),
		nullableString(recipe.SourceURL),
		instructions,
		notes,
		recipe.CreatedAt.Format(time.RFC3339),
		recipe.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recipe %s: %w", recipe.ID, err)
	}

	for i, ing := range recipe.Ingredients {
		if _, err := ex.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, position, name, quantity_text) VALUES (?, ?, ?, ?)`,
			recipe.ID, i, ing.Name, ing.Quantity,
		); err != nil {
			return fmt.Errorf("inserting ingredient %q of %s: %w", ing.Name, recipe.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a recipe with its ingredients.
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := scanRecipe(r.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	byRecipe, err := r.ingredients(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = byRecipe[id]

	return recipe, nil
}

// List returns recipes ordered by name.
func (r *RecipeRepository) List(ctx context.Context, page models.Pagination) ([]*models.Recipe, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting recipes: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes ORDER BY name, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("listing recipes: %w", err)
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachIngredients(ctx, recipes); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Catalog loads the given recipes into a lookup table. Unknown ids are
// left out so callers can treat them as missing references.
func (r *RecipeRepository) Catalog(ctx context.Context, ids []string) (models.Catalog, error) {
	if len(ids) == 0 {
		return models.Catalog{}, nil
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachIngredients(ctx, recipes); err != nil {
		return nil, err
	}
	return models.NewCatalog(recipes), nil
}

// Delete removes a recipe and, by cascade, its ingredient lines.
func (r *RecipeRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *RecipeRepository) attachIngredients(ctx context.Context, recipes []*models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]string, len(recipes))
	for i, rec := range recipes {
		ids[i] = rec.ID
	}

	byRecipe, err := r.ingredients(ctx, ids)
	if err != nil {
		return err
	}
	for _, rec := range recipes {
		rec.Ingredients = byRecipe[rec.ID]
	}
	return nil
}

func (r *RecipeRepository) ingredients(ctx context.Context, ids []string) (map[string][]models.RecipeIngredient, error) {
	query := `SELECT recipe_id, name, quantity_text FROM recipe_ingredients
		WHERE recipe_id IN (` + placeholders(len(ids)) + `)
		ORDER BY recipe_id, position`

	rows, err := r.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.RecipeIngredient, len(ids))
	for rows.Next() {
		var recipeID string
		var ing models.RecipeIngredient
		if err := rows.Scan(&recipeID, &ing.Name, &ing.Quantity); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		out[recipeID] = append(out[recipeID], ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var rec models.Recipe
	var difficulty string
	var source, sourceURL, instructions, notes sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Servings,
		&rec.CookTimeMinutes,
		&difficulty,
		&source,
		&sourceURL,
		&instructions,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}

	rec.Difficulty = models.Difficulty(difficulty)
	rec.Source = source.String
	rec.SourceURL = sourceURL.String
	if rec.Instructions, err = decodeLines(instructions); err != nil {
		return nil, fmt.Errorf("decoding instructions of %s: %w", rec.ID, err)
	}
	if rec.Notes, err = decodeLines(notes); err != nil {
		return nil, fmt.Errorf("decoding notes of %s: %w", rec.ID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &rec, nil
}

func collectRecipes(rows *sql.Rows) ([]*models.Recipe, error) {
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return recipes, nil
}

// encodeLines stores string lists as JSON arrays.
func encodeLines(lines []string) (sql.NullString, error) {
	if len(lines) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeLines(s sql.NullString) ([]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var lines []string
	if err := json.Unmarshal([]byte(s.String), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '?')
	}
	return string(b)
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
