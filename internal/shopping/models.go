package shopping

import "time"

// ShoppingList is a user's shopping list with its ordered items.
type ShoppingList struct {
	ID                   int64              `json:"id"`
	UserID               string             `json:"user_id"`
	Name                 string             `json:"name"`
	Description          string             `json:"description,omitempty"`
	GeneratedFromRecipes bool               `json:"generated_from_recipes"`
	Items                []ShoppingListItem `json:"items"`
	CreatedAt            time.Time          `json:"created_at"`
}

// IsCompleted reports whether every item is checked off. An empty list is
// never completed.
func (l ShoppingList) IsCompleted() bool {
	if len(l.Items) == 0 {
		return false
	}
	for _, item := range l.Items {
		if !item.IsCompleted {
			return false
		}
	}
	return true
}

// ShoppingListItem is a single line of a shopping list. Exactly one of
// IngredientID and CustomName identifies it: items generated from the catalog
// carry the ingredient ID, ad hoc items carry a free-text name.
type ShoppingListItem struct {
	ID             int64   `json:"id"`
	ShoppingListID int64   `json:"shopping_list_id"`
	IngredientID   string  `json:"ingredient_id,omitempty"`
	CustomName     string  `json:"custom_name,omitempty"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity,omitempty"` // 0 when unquantified
	Unit           string  `json:"unit,omitempty"`
	Category       string  `json:"category"`
	IsCompleted    bool    `json:"is_completed"`
	Notes          string  `json:"notes,omitempty"`
	OrderIndex     int     `json:"order_index"`
}

// CreateItemInput describes one item to add to a shopping list. The category
// is denormalized from the ingredient at creation time and never recomputed.
type CreateItemInput struct {
	IngredientID string  `json:"ingredient_id,omitempty"`
	CustomName   string  `json:"custom_name,omitempty"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Category     string  `json:"category"`
	Notes        string  `json:"notes,omitempty"`
	OrderIndex   int     `json:"order_index"`
}

// GenerationOptions controls how recipes are consolidated into a list.
type GenerationOptions struct {
	IncludeOptionalIngredients    bool   `json:"include_optional_ingredients"`
	AggregateIdenticalIngredients bool   `json:"aggregate_identical_ingredients"`
	ListName                      string `json:"list_name,omitempty"`
	ListDescription               string `json:"list_description,omitempty"`
}

// DefaultGenerationOptions returns the defaults: optional lines excluded,
// identical ingredients summed.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{AggregateIdenticalIngredients: true}
}
