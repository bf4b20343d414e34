package ingredient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	ingredientdb "pantry-planner/internal/ingredient/db"

	"github.com/google/uuid"
)

// Repository is a database-backed repository for the ingredient catalog.
type Repository struct {
	queries *ingredientdb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: ingredientdb.New(d),
		db:      d,
	}
}

// Save inserts a new ingredient. A missing ID is generated.
func (r *Repository) Save(ctx context.Context, ing *Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if ing.CreatedAt.IsZero() {
		ing.CreatedAt = now
	}
	ing.UpdatedAt = now

	units, season, err := marshalMetadata(ing)
	if err != nil {
		return err
	}

	err = r.queries.InsertIngredient(ctx, ingredientdb.InsertIngredientParams{
		ID:          ing.ID,
		Name:        ing.Name,
		Category:    string(ing.Category),
		Subcategory: ing.Subcategory,
		Units:       units,
		Season:      season,
		UserCreated: ing.UserCreated,
		CreatedAt:   ing.CreatedAt,
		UpdatedAt:   ing.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert ingredient: %w", err)
	}
	return nil
}

// Get retrieves an ingredient by its ID.
func (r *Repository) Get(ctx context.Context, id string) (*Ingredient, error) {
	row, err := r.queries.GetIngredientByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Ingredient not found
		}
		return nil, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}
	return fromRow(row)
}

// GetByName retrieves an ingredient by display name, case-insensitively.
func (r *Repository) GetByName(ctx context.Context, name string) (*Ingredient, error) {
	row, err := r.queries.GetIngredientByName(ctx, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient by name: %w", err)
	}
	return fromRow(row)
}

// List retrieves the whole catalog ordered by category and name.
func (r *Repository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.queries.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return fromRows(rows)
}

// ListByCategory retrieves the catalog entries for one category.
func (r *Repository) ListByCategory(ctx context.Context, c Category) ([]Ingredient, error) {
	rows, err := r.queries.ListIngredientsByCategory(ctx, string(c))
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients by category: %w", err)
	}
	return fromRows(rows)
}

// Update saves editable metadata fields. Shopping list items created before
// the update keep the category they were created with.
func (r *Repository) Update(ctx context.Context, ing *Ingredient) error {
	ing.UpdatedAt = time.Now().UTC()

	units, season, err := marshalMetadata(ing)
	if err != nil {
		return err
	}

	err = r.queries.UpdateIngredient(ctx, ingredientdb.UpdateIngredientParams{
		Name:        ing.Name,
		Category:    string(ing.Category),
		Subcategory: ing.Subcategory,
		Units:       units,
		Season:      season,
		UpdatedAt:   ing.UpdatedAt,
		ID:          ing.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	return nil
}

// Delete removes an ingredient from the catalog.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.queries.DeleteIngredient(ctx, id)
}

// Count returns the number of catalog entries.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountIngredients(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return int(count), nil
}

func marshalMetadata(ing *Ingredient) (units string, season string, err error) {
	u, err := json.Marshal(ing.Units)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal ingredient units: %w", err)
	}
	s, err := json.Marshal(ing.Season)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal ingredient season: %w", err)
	}
	return string(u), string(s), nil
}

func fromRow(row ingredientdb.Ingredient) (*Ingredient, error) {
	ing := &Ingredient{
		ID:          row.ID,
		Name:        row.Name,
		Category:    Category(row.Category),
		Subcategory: row.Subcategory,
		UserCreated: row.UserCreated,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Units), &ing.Units); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredient units: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Season), &ing.Season); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredient season: %w", err)
	}
	return ing, nil
}

func fromRows(rows []ingredientdb.Ingredient) ([]Ingredient, error) {
	var out []Ingredient
	for _, row := range rows {
		ing, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *ing)
	}
	return out, nil
}
