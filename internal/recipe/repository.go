package recipe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	recipedb "pantry-planner/internal/recipe/db"

	"github.com/google/uuid"

	"pantry-planner/internal/ingredient"
)

// Repository is a database-backed repository for recipes.
type Repository struct {
	queries *recipedb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: recipedb.New(d),
		db:      d,
	}
}

// Save inserts or replaces a recipe together with its ingredient lines in a
// single transaction.
func (r *Repository) Save(ctx context.Context, rec *Recipe) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)

	// Replace any previous version wholesale.
	if err := q.DeleteRecipeIngredients(ctx, rec.ID); err != nil {
		return fmt.Errorf("failed to clear previous ingredient lines: %w", err)
	}
	if err := q.DeleteRecipe(ctx, rec.ID); err != nil {
		return fmt.Errorf("failed to clear previous recipe: %w", err)
	}

	var servings sql.NullFloat64
	if rec.Servings > 0 {
		servings = sql.NullFloat64{Float64: rec.Servings, Valid: true}
	}

	if err := q.InsertRecipe(ctx, recipedb.InsertRecipeParams{
		ID:        rec.ID,
		Name:      rec.Name,
		Servings:  servings,
		SourceUrl: rec.SourceURL,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	for i, line := range rec.Ingredients {
		if err := q.InsertRecipeIngredient(ctx, recipedb.InsertRecipeIngredientParams{
			RecipeID:       rec.ID,
			IngredientID:   line.IngredientID,
			IngredientName: line.Name,
			Category:       string(line.Category),
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			Optional:       line.Optional,
			OrderIndex:     int64(i),
		}); err != nil {
			return fmt.Errorf("failed to insert ingredient line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	return nil
}

// Get retrieves a recipe by its ID, including its ingredient lines.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	dbRecipe, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	rec := fromDBRecipe(dbRecipe)
	if err := r.loadLines(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByIDs retrieves multiple recipes in the order of the given IDs. Unknown
// IDs are skipped silently.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Recipe, error) {
	var recipes []Recipe
	for _, id := range ids {
		rec, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

// List retrieves all recipes with their ingredient lines.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	dbRecipes, err := r.queries.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	var recipes []Recipe
	for _, dbRec := range dbRecipes {
		rec := fromDBRecipe(dbRec)
		if err := r.loadLines(ctx, rec); err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

// Delete removes a recipe and its ingredient lines.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteRecipeIngredients(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ingredient lines: %w", err)
	}
	if err := q.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return tx.Commit()
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}

func (r *Repository) loadLines(ctx context.Context, rec *Recipe) error {
	rows, err := r.queries.ListRecipeIngredients(ctx, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to list ingredient lines for recipe %s: %w", rec.ID, err)
	}
	for _, row := range rows {
		rec.Ingredients = append(rec.Ingredients, IngredientLine{
			IngredientID: row.IngredientID,
			Name:         row.IngredientName,
			Category:     ingredient.Category(row.Category),
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			Optional:     row.Optional,
			OrderIndex:   int(row.OrderIndex),
		})
	}
	return nil
}

func fromDBRecipe(row recipedb.Recipe) *Recipe {
	rec := &Recipe{
		ID:        row.ID,
		Name:      row.Name,
		SourceURL: row.SourceUrl,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Servings.Valid {
		rec.Servings = row.Servings.Float64
	}
	return rec
}
