package shopping

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/recipe"
)

// mergeKey identifies lines that may be summed together: same catalog
// ingredient AND the exact same unit string. No unit normalization happens
// here; "g" and "kg" stay separate items.
type mergeKey struct {
	ingredientID string
	unit         string
}

// aggregatedItem accumulates quantities and recipe attribution during one
// consolidation pass. It never leaves this package.
type aggregatedItem struct {
	ingredientID string
	name         string
	category     string
	unit         string
	quantity     float64
	recipes      []string // contributing recipe names, duplicates allowed
}

type scaledRecipe struct {
	recipe recipe.Recipe
	factor float64
}

// Consolidate turns recipes into a flat, deduplicated sequence of shopping
// item inputs, ready for persistence. It is a pure function: no storage, no
// side effects. Zero recipes, or recipes whose lines are all optional, yield
// an empty result.
func Consolidate(recipes []recipe.Recipe, opts GenerationOptions) []CreateItemInput {
	scaled := make([]scaledRecipe, 0, len(recipes))
	for _, rec := range recipes {
		scaled = append(scaled, scaledRecipe{recipe: rec, factor: 1})
	}
	return consolidate(scaled, opts)
}

// ConsolidateScaled consolidates a single recipe with every quantity scaled
// to the target serving count. Scaling is applied per line, before merging,
// so scaled totals stay correct. A recipe without a serving count is treated
// as one serving.
func ConsolidateScaled(rec recipe.Recipe, targetServings float64, opts GenerationOptions) []CreateItemInput {
	factor := 1.0
	if targetServings > 0 {
		original := rec.Servings
		if original <= 0 {
			original = 1
		}
		factor = targetServings / original
	}
	return consolidate([]scaledRecipe{{recipe: rec, factor: factor}}, opts)
}

func consolidate(recipes []scaledRecipe, opts GenerationOptions) []CreateItemInput {
	merged := make(map[mergeKey]*aggregatedItem)
	var items []*aggregatedItem

	for _, sr := range recipes {
		for _, line := range linesInStoredOrder(sr.recipe) {
			if line.Optional && !opts.IncludeOptionalIngredients {
				continue
			}

			qty := line.Quantity * sr.factor
			key := mergeKey{ingredientID: line.IngredientID, unit: line.Unit}

			if opts.AggregateIdenticalIngredients {
				if existing, ok := merged[key]; ok {
					existing.quantity += qty
					existing.recipes = append(existing.recipes, sr.recipe.Name)
					continue
				}
			}

			item := &aggregatedItem{
				ingredientID: line.IngredientID,
				name:         line.Name,
				category:     string(line.Category),
				unit:         line.Unit,
				quantity:     qty,
				recipes:      []string{sr.recipe.Name},
			}
			if opts.AggregateIdenticalIngredients {
				merged[key] = item
			}
			items = append(items, item)
		}
	}

	sortForDisplay(items)

	out := make([]CreateItemInput, 0, len(items))
	for i, item := range items {
		out = append(out, CreateItemInput{
			IngredientID: item.ingredientID,
			Name:         item.name,
			Quantity:     item.quantity,
			Unit:         item.unit,
			Category:     item.category,
			Notes:        attributionNote(item.recipes),
			OrderIndex:   i,
		})
	}
	return out
}

// linesInStoredOrder returns the recipe's lines sorted by their order index.
func linesInStoredOrder(rec recipe.Recipe) []recipe.IngredientLine {
	lines := make([]recipe.IngredientLine, len(rec.Ingredients))
	copy(lines, rec.Ingredients)
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].OrderIndex < lines[j].OrderIndex
	})
	return lines
}

// sortForDisplay orders items by the fixed category order, then by name
// using a numeric-aware collation so "2 min rice" sorts before "10 min rice".
func sortForDisplay(items []*aggregatedItem) {
	coll := collate.New(language.English, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := ingredient.CategoryRank(items[i].category), ingredient.CategoryRank(items[j].category)
		if ri != rj {
			return ri < rj
		}
		return coll.CompareString(items[i].name, items[j].name) < 0
	})
}

// attributionNote renders "For: A, B" from the contributing recipe names,
// deduplicated but in first-contribution order.
func attributionNote(names []string) string {
	if len(names) == 0 {
		return ""
	}
	seen := make(map[string]bool, len(names))
	distinct := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		distinct = append(distinct, name)
	}
	return "For: " + strings.Join(distinct, ", ")
}
