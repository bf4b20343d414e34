package shopping

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"pantry-planner/internal/ingredient"
)

// GroupByCategory partitions items into per-category groups. Within a group,
// unchecked items come before checked ones; ties keep order-index order.
// Every input item lands in exactly one group.
func GroupByCategory(items []ShoppingListItem) map[string][]ShoppingListItem {
	groups := make(map[string][]ShoppingListItem)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].IsCompleted != group[j].IsCompleted {
				return !group[i].IsCompleted
			}
			return group[i].OrderIndex < group[j].OrderIndex
		})
	}
	return groups
}

// Stats summarizes the completion state of a list's items.
type Stats struct {
	TotalItems           int  `json:"total_items"`
	CompletedItems       int  `json:"completed_items"`
	CompletionPercentage int  `json:"completion_percentage"`
	HasCompletedItems    bool `json:"has_completed_items"`
	AllItemsCompleted    bool `json:"all_items_completed"`
}

// CompletionStats computes item counts and a rounded completion percentage.
// An empty list reports 0% and is never "all completed".
func CompletionStats(items []ShoppingListItem) Stats {
	stats := Stats{TotalItems: len(items)}
	for _, item := range items {
		if item.IsCompleted {
			stats.CompletedItems++
		}
	}
	if stats.TotalItems > 0 {
		stats.CompletionPercentage = int(math.Round(float64(stats.CompletedItems) / float64(stats.TotalItems) * 100))
		stats.HasCompletedItems = stats.CompletedItems > 0
		stats.AllItemsCompleted = stats.CompletedItems == stats.TotalItems
	}
	return stats
}

// TimeEstimate is a rough shopping-duration guess shown in the UI.
type TimeEstimate struct {
	Minutes int    `json:"minutes"`
	Display string `json:"display"`
}

// EstimateShoppingTime guesses how long the trip takes: 5 minutes base, one
// minute per three items, and 2 minutes for every aisle beyond the second.
func EstimateShoppingTime(items []ShoppingListItem) TimeEstimate {
	categories := make(map[string]bool)
	for _, item := range items {
		categories[item.Category] = true
	}

	minutes := 5 + (len(items)+2)/3
	if extra := len(categories) - 2; extra > 0 {
		minutes += 2 * extra
	}

	return TimeEstimate{Minutes: minutes, Display: formatMinutes(minutes)}
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dmin", h, m)
}

const (
	checkedGlyph   = "✅"
	uncheckedGlyph = "⬜"
)

// ExportText renders the list as shareable plain text: title, optional
// description, creation date, one section per category in the fixed display
// order, and a trailing completion summary.
func ExportText(list ShoppingList) string {
	var sb strings.Builder

	sb.WriteString("🛒 " + list.Name + "\n")
	if list.Description != "" {
		sb.WriteString(list.Description + "\n")
	}
	sb.WriteString("Created: " + list.CreatedAt.Format("2 Jan 2006") + "\n")

	groups := GroupByCategory(list.Items)
	for _, category := range sortedCategoryKeys(groups) {
		c := ingredient.Category(category)
		sb.WriteString("\n" + c.Icon() + " " + c.DisplayName() + "\n")
		for _, item := range groups[category] {
			sb.WriteString(renderItem(item) + "\n")
		}
	}

	stats := CompletionStats(list.Items)
	sb.WriteString(fmt.Sprintf("\n%d/%d items checked (%d%%)\n",
		stats.CompletedItems, stats.TotalItems, stats.CompletionPercentage))

	return sb.String()
}

func renderItem(item ShoppingListItem) string {
	glyph := uncheckedGlyph
	if item.IsCompleted {
		glyph = checkedGlyph
	}

	line := glyph + " " + item.Name
	if item.Quantity > 0 {
		if item.Unit != "" {
			line += fmt.Sprintf(" (%s %s)", formatQuantity(item.Quantity), item.Unit)
		} else {
			line += fmt.Sprintf(" (%s)", formatQuantity(item.Quantity))
		}
	}
	if item.Notes != "" {
		line += " - " + item.Notes
	}
	return line
}

// formatQuantity drops trailing zeros so 2.0 renders as "2" and 1.5 as "1.5".
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// SortedCategories returns the group keys of GroupByCategory in display
// order, for callers that render sections themselves.
func SortedCategories(groups map[string][]ShoppingListItem) []string {
	return sortedCategoryKeys(groups)
}

// sortedCategoryKeys orders group keys by the fixed category display order;
// unknown categories come last, alphabetically among themselves.
func sortedCategoryKeys(groups map[string][]ShoppingListItem) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := ingredient.CategoryRank(keys[i]), ingredient.CategoryRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
