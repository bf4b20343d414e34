package ingredient

import "time"

// Category classifies an ingredient into one of the fixed shopping aisles.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryMeat       Category = "meat"
	CategoryFish       Category = "fish"
	CategoryDairy      Category = "dairy"
	CategoryGrocery    Category = "grocery"
	CategoryOther      Category = "other"
)

// categoryOrder is the canonical display order used everywhere a list is
// grouped or exported. Categories not listed here sort after all known ones.
var categoryOrder = []Category{
	CategoryVegetables,
	CategoryFruits,
	CategoryMeat,
	CategoryFish,
	CategoryDairy,
	CategoryGrocery,
	CategoryOther,
}

var categoryNames = map[Category]string{
	CategoryVegetables: "Vegetables",
	CategoryFruits:     "Fruits",
	CategoryMeat:       "Meat",
	CategoryFish:       "Fish",
	CategoryDairy:      "Dairy",
	CategoryGrocery:    "Grocery",
	CategoryOther:      "Other",
}

var categoryIcons = map[Category]string{
	CategoryVegetables: "🥦",
	CategoryFruits:     "🍎",
	CategoryMeat:       "🥩",
	CategoryFish:       "🐟",
	CategoryDairy:      "🧀",
	CategoryGrocery:    "🛒",
	CategoryOther:      "🧺",
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryRank returns the display-order rank for a raw category string.
// Unrecognized categories rank after every known one.
func CategoryRank(raw string) int {
	for i, c := range categoryOrder {
		if string(c) == raw {
			return i
		}
	}
	return len(categoryOrder)
}

// DisplayName returns the human-readable name of the category.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	if c == "" {
		return categoryNames[CategoryOther]
	}
	// Fall back to the raw value with the first letter upper-cased.
	s := string(c)
	return string(s[0]&^0x20) + s[1:]
}

// Icon returns the emoji used for the category in exports and bot messages.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}

// ParseCategory maps a raw string to a known Category, defaulting to "other".
func ParseCategory(raw string) Category {
	c := Category(raw)
	if _, ok := categoryNames[c]; ok {
		return c
	}
	return CategoryOther
}

// Ingredient is a catalog entry. Once referenced by a recipe line, its
// identity is fixed; metadata fields stay editable, but edits are never
// propagated into already-created shopping list items.
type Ingredient struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    Category     `json:"category"`
	Subcategory string       `json:"subcategory,omitempty"`
	Units       []string     `json:"units,omitempty"`
	Season      []time.Month `json:"season,omitempty"`
	UserCreated bool         `json:"user_created"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// InSeason reports whether the ingredient is in season for the given month.
// Ingredients without a seasonal descriptor are always in season.
func (i Ingredient) InSeason(m time.Month) bool {
	if len(i.Season) == 0 {
		return true
	}
	for _, sm := range i.Season {
		if sm == m {
			return true
		}
	}
	return false
}
