package recipe

import (
	"time"

	"pantry-planner/internal/ingredient"
)

// IngredientLine is one ingredient entry of a recipe. Name and Category are
// denormalized from the catalog at the time the line is created.
type IngredientLine struct {
	IngredientID string              `json:"ingredient_id"`
	Name         string              `json:"name"`
	Category     ingredient.Category `json:"category"`
	Quantity     float64             `json:"quantity"`
	Unit         string              `json:"unit,omitempty"`
	Optional     bool                `json:"optional,omitempty"`
	OrderIndex   int                 `json:"order_index"`
}

// Recipe is a stored recipe with its ordered ingredient lines.
type Recipe struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Servings    float64          `json:"servings,omitempty"` // 0 when unknown
	SourceURL   string           `json:"source_url,omitempty"`
	Ingredients []IngredientLine `json:"ingredients"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// RequiredLines returns the non-optional ingredient lines.
func (r Recipe) RequiredLines() []IngredientLine {
	var out []IngredientLine
	for _, line := range r.Ingredients {
		if !line.Optional {
			out = append(out, line)
		}
	}
	return out
}
