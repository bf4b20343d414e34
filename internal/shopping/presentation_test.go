package shopping

import (
	"strings"
	"testing"
	"time"
)

func item(id int64, name, category string, qty float64, unit string, completed bool, idx int) ShoppingListItem {
	return ShoppingListItem{
		ID:          id,
		Name:        name,
		Category:    category,
		Quantity:    qty,
		Unit:        unit,
		IsCompleted: completed,
		OrderIndex:  idx,
	}
}

func TestGroupByCategory(t *testing.T) {
	items := []ShoppingListItem{
		item(1, "Carrot", "vegetables", 3, "piece", true, 0),
		item(2, "Milk", "dairy", 1, "l", false, 1),
		item(3, "Onion", "vegetables", 2, "piece", false, 2),
		item(4, "Butter", "dairy", 250, "g", false, 3),
	}

	groups := GroupByCategory(items)

	total := 0
	for _, group := range groups {
		total += len(group)
	}
	if total != len(items) {
		t.Fatalf("grouping lost or duplicated items: %d in, %d out", len(items), total)
	}

	veg := groups["vegetables"]
	if len(veg) != 2 {
		t.Fatalf("expected 2 vegetables, got %d", len(veg))
	}
	if veg[0].Name != "Onion" || veg[1].Name != "Carrot" {
		t.Errorf("unchecked items should come first: got %s, %s", veg[0].Name, veg[1].Name)
	}

	dairy := groups["dairy"]
	if dairy[0].Name != "Milk" || dairy[1].Name != "Butter" {
		t.Errorf("ties should keep order-index order: got %s, %s", dairy[0].Name, dairy[1].Name)
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	if groups := GroupByCategory(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestCompletionStats(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		stats := CompletionStats(nil)
		if stats.TotalItems != 0 || stats.CompletedItems != 0 || stats.CompletionPercentage != 0 {
			t.Errorf("expected all zeros, got %+v", stats)
		}
		if stats.AllItemsCompleted {
			t.Error("empty list must not count as completed")
		}
	})

	t.Run("rounds percentage", func(t *testing.T) {
		items := []ShoppingListItem{
			item(1, "A", "grocery", 0, "", true, 0),
			item(2, "B", "grocery", 0, "", true, 1),
			item(3, "C", "grocery", 0, "", false, 2),
		}
		stats := CompletionStats(items)
		if stats.CompletionPercentage != 67 {
			t.Errorf("expected 67%%, got %d%%", stats.CompletionPercentage)
		}
		if !stats.HasCompletedItems || stats.AllItemsCompleted {
			t.Errorf("unexpected flags: %+v", stats)
		}
	})

	t.Run("all completed", func(t *testing.T) {
		items := []ShoppingListItem{
			item(1, "A", "grocery", 0, "", true, 0),
		}
		stats := CompletionStats(items)
		if !stats.AllItemsCompleted || stats.CompletionPercentage != 100 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})
}

func TestEstimateShoppingTime(t *testing.T) {
	tests := []struct {
		name    string
		items   []ShoppingListItem
		minutes int
		display string
	}{
		{
			name:    "empty list",
			items:   nil,
			minutes: 5,
			display: "5min",
		},
		{
			name: "three items two categories",
			items: []ShoppingListItem{
				item(1, "A", "vegetables", 0, "", false, 0),
				item(2, "B", "vegetables", 0, "", false, 1),
				item(3, "C", "dairy", 0, "", false, 2),
			},
			minutes: 6,
			display: "6min",
		},
		{
			name: "extra categories add time",
			items: []ShoppingListItem{
				item(1, "A", "vegetables", 0, "", false, 0),
				item(2, "B", "dairy", 0, "", false, 1),
				item(3, "C", "fish", 0, "", false, 2),
				item(4, "D", "grocery", 0, "", false, 3),
			},
			minutes: 11,
			display: "11min",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			est := EstimateShoppingTime(tc.items)
			if est.Minutes != tc.minutes {
				t.Errorf("expected %d minutes, got %d", tc.minutes, est.Minutes)
			}
			if est.Display != tc.display {
				t.Errorf("expected display %q, got %q", tc.display, est.Display)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		5:   "5min",
		59:  "59min",
		60:  "1h",
		75:  "1h15min",
		120: "2h",
	}
	for minutes, want := range cases {
		if got := formatMinutes(minutes); got != want {
			t.Errorf("formatMinutes(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestExportText(t *testing.T) {
	created := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	list := ShoppingList{
		Name:        "Week 12",
		Description: "Dinner for two",
		CreatedAt:   created,
		Items: []ShoppingListItem{
			{Name: "Salmon", Category: "fish", Quantity: 400, Unit: "g", Notes: "For: Dinner", OrderIndex: 0},
			{Name: "Carrot", Category: "vegetables", Quantity: 3, Unit: "piece", IsCompleted: true, OrderIndex: 1},
			{Name: "Birthday candles", Category: "party", OrderIndex: 2},
		},
	}

	text := ExportText(list)

	for _, want := range []string{
		"🛒 Week 12",
		"Dinner for two",
		"Created: 14 Mar 2026",
		"✅ Carrot (3 piece)",
		"⬜ Salmon (400 g) - For: Dinner",
		"⬜ Birthday candles",
		"1/3 items checked (33%)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("export missing %q:\n%s", want, text)
		}
	}

	// Known categories come before unknown ones.
	if strings.Index(text, "Fish") > strings.Index(text, "Party") {
		t.Errorf("unknown category should come last:\n%s", text)
	}
	if strings.Index(text, "Vegetables") > strings.Index(text, "Fish") {
		t.Errorf("vegetables should come before fish:\n%s", text)
	}
}

func TestExportTextIsIdempotent(t *testing.T) {
	list := ShoppingList{
		Name:      "Stable",
		CreatedAt: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		Items: []ShoppingListItem{
			{Name: "Milk", Category: "dairy", Quantity: 1, Unit: "l", OrderIndex: 0},
			{Name: "Bread", Category: "grocery", OrderIndex: 1},
		},
	}
	if first, second := ExportText(list), ExportText(list); first != second {
		t.Error("rendering the same list twice produced different text")
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := map[float64]string{
		2:    "2",
		1.5:  "1.5",
		0.25: "0.25",
		300:  "300",
	}
	for q, want := range cases {
		if got := formatQuantity(q); got != want {
			t.Errorf("formatQuantity(%v) = %q, want %q", q, got, want)
		}
	}
}

func TestListIsCompleted(t *testing.T) {
	empty := ShoppingList{}
	if empty.IsCompleted() {
		t.Error("empty list must not be completed")
	}

	done := ShoppingList{Items: []ShoppingListItem{
		{Name: "A", IsCompleted: true},
		{Name: "B", IsCompleted: true},
	}}
	if !done.IsCompleted() {
		t.Error("fully checked list should be completed")
	}

	partial := ShoppingList{Items: []ShoppingListItem{
		{Name: "A", IsCompleted: true},
		{Name: "B"},
	}}
	if partial.IsCompleted() {
		t.Error("partially checked list must not be completed")
	}
}
