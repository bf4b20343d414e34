package shopping

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/recipe"
)

type mockListStore struct {
	lists  map[int64]*ShoppingList
	nextID int64
	itemID int64
}

func newMockListStore() *mockListStore {
	return &mockListStore{lists: make(map[int64]*ShoppingList)}
}

func (m *mockListStore) CreateWithItems(ctx context.Context, list ShoppingList, items []CreateItemInput) (int64, error) {
	m.nextID++
	list.ID = m.nextID
	for _, input := range items {
		m.itemID++
		list.Items = append(list.Items, ShoppingListItem{
			ID:             m.itemID,
			ShoppingListID: list.ID,
			IngredientID:   input.IngredientID,
			CustomName:     input.CustomName,
			Name:           input.Name,
			Quantity:       input.Quantity,
			Unit:           input.Unit,
			Category:       input.Category,
			Notes:          input.Notes,
			OrderIndex:     input.OrderIndex,
		})
	}
	m.lists[list.ID] = &list
	return list.ID, nil
}

func (m *mockListStore) Get(ctx context.Context, id int64) (*ShoppingList, error) {
	list, ok := m.lists[id]
	if !ok {
		return nil, nil
	}
	copied := *list
	return &copied, nil
}

func (m *mockListStore) ListByUser(ctx context.Context, userID string) ([]ShoppingList, error) {
	var out []ShoppingList
	for _, list := range m.lists {
		if list.UserID == userID {
			out = append(out, *list)
		}
	}
	return out, nil
}

func (m *mockListStore) Delete(ctx context.Context, id int64) error {
	delete(m.lists, id)
	return nil
}

func (m *mockListStore) AddItem(ctx context.Context, listID int64, input CreateItemInput) (int64, error) {
	list, ok := m.lists[listID]
	if !ok {
		return 0, errors.New("no such list")
	}
	m.itemID++
	name := input.Name
	if name == "" {
		name = input.CustomName
	}
	list.Items = append(list.Items, ShoppingListItem{
		ID:             m.itemID,
		ShoppingListID: listID,
		IngredientID:   input.IngredientID,
		CustomName:     input.CustomName,
		Name:           name,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		Category:       input.Category,
		Notes:          input.Notes,
		OrderIndex:     len(list.Items),
	})
	return m.itemID, nil
}

func (m *mockListStore) GetItem(ctx context.Context, itemID int64) (*ShoppingListItem, error) {
	for _, list := range m.lists {
		for _, item := range list.Items {
			if item.ID == itemID {
				copied := item
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (m *mockListStore) UpdateItem(ctx context.Context, item ShoppingListItem) error {
	for _, list := range m.lists {
		for i := range list.Items {
			if list.Items[i].ID == item.ID {
				list.Items[i].Name = item.Name
				list.Items[i].Quantity = item.Quantity
				list.Items[i].Unit = item.Unit
				list.Items[i].Notes = item.Notes
				return nil
			}
		}
	}
	return errors.New("no such item")
}

func (m *mockListStore) SetItemCompleted(ctx context.Context, itemID int64, completed bool) error {
	for _, list := range m.lists {
		for i := range list.Items {
			if list.Items[i].ID == itemID {
				list.Items[i].IsCompleted = completed
				return nil
			}
		}
	}
	return errors.New("no such item")
}

func (m *mockListStore) DeleteItem(ctx context.Context, itemID int64) error {
	for _, list := range m.lists {
		for i := range list.Items {
			if list.Items[i].ID == itemID {
				list.Items = append(list.Items[:i], list.Items[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("no such item")
}

type mockRecipeSource struct {
	recipes map[string]recipe.Recipe
}

func (m *mockRecipeSource) GetByIDs(ctx context.Context, ids []string) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	for _, id := range ids {
		if rec, ok := m.recipes[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func testService() (*Service, *mockListStore) {
	store := newMockListStore()
	recipes := &mockRecipeSource{recipes: map[string]recipe.Recipe{
		"r1": {
			ID:   "r1",
			Name: "Pancakes",
			Ingredients: []recipe.IngredientLine{
				line("flour", "Flour", ingredient.CategoryGrocery, 200, "g", false, 0),
				line("milk", "Milk", ingredient.CategoryDairy, 300, "ml", false, 1),
			},
		},
		"r2": {
			ID:   "r2",
			Name: "Bread",
			Ingredients: []recipe.IngredientLine{
				line("flour", "Flour", ingredient.CategoryGrocery, 500, "g", false, 0),
			},
		},
		"all-optional": {
			ID:   "all-optional",
			Name: "Garnish",
			Ingredients: []recipe.IngredientLine{
				line("parsley", "Parsley", ingredient.CategoryVegetables, 1, "bunch", true, 0),
			},
		},
	}}
	return NewService(store, recipes, "Shopping List"), store
}

func TestServiceGenerateFromRecipes(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	list, err := svc.GenerateFromRecipes(ctx, "user-1", []string{"r1", "r2"}, DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("GenerateFromRecipes failed: %v", err)
	}
	if list.Name != "Shopping List" {
		t.Errorf("expected default name, got %q", list.Name)
	}
	if !list.GeneratedFromRecipes {
		t.Error("expected generated_from_recipes to be set")
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 consolidated items, got %d", len(list.Items))
	}
	for _, item := range list.Items {
		if item.IngredientID == "flour" && item.Quantity != 700 {
			t.Errorf("expected 700 g flour, got %v", item.Quantity)
		}
	}
}

func TestServiceGenerateRefusesEmptyResult(t *testing.T) {
	svc, store := testService()
	ctx := context.Background()

	_, err := svc.GenerateFromRecipes(ctx, "user-1", []string{"all-optional"}, DefaultGenerationOptions())
	if !errors.Is(err, ErrNothingToBuy) {
		t.Fatalf("expected ErrNothingToBuy, got %v", err)
	}
	if len(store.lists) != 0 {
		t.Error("no list should be persisted when there is nothing to buy")
	}
}

func TestServiceGenerateUsesRequestedName(t *testing.T) {
	svc, _ := testService()
	opts := DefaultGenerationOptions()
	opts.ListName = "Week 12"
	opts.ListDescription = "Dinner plans"

	list, err := svc.GenerateFromRecipes(context.Background(), "user-1", []string{"r1"}, opts)
	if err != nil {
		t.Fatalf("GenerateFromRecipes failed: %v", err)
	}
	if list.Name != "Week 12" || list.Description != "Dinner plans" {
		t.Errorf("unexpected list metadata: %q / %q", list.Name, list.Description)
	}
}

func TestServiceAddItemValidation(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	list, err := svc.CreateList(ctx, "user-1", "Manual", "")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	tests := []struct {
		name  string
		input CreateItemInput
	}{
		{"empty name", CreateItemInput{CustomName: "   "}},
		{"name too long", CreateItemInput{CustomName: strings.Repeat("x", maxItemNameLength+1)}},
		{"both identities", CreateItemInput{IngredientID: "flour", CustomName: "Flour", Name: "Flour"}},
		{"no identity", CreateItemInput{Name: "Flour"}},
		{"negative quantity", CreateItemInput{CustomName: "Flour", Quantity: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddItem(ctx, list.ID, tc.input); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	added, err := svc.AddItem(ctx, list.ID, CreateItemInput{CustomName: "Birthday candles", Category: "party"})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if added.Name != "Birthday candles" {
		t.Errorf("expected display name from custom name, got %q", added.Name)
	}
}

func TestServiceToggleItem(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	list, err := svc.GenerateFromRecipes(ctx, "user-1", []string{"r1"}, DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("GenerateFromRecipes failed: %v", err)
	}
	itemID := list.Items[0].ID

	completed, err := svc.ToggleItem(ctx, itemID)
	if err != nil || !completed {
		t.Fatalf("expected toggle to check the item, got %v, %v", completed, err)
	}
	completed, err = svc.ToggleItem(ctx, itemID)
	if err != nil || completed {
		t.Fatalf("expected toggle to uncheck the item, got %v, %v", completed, err)
	}

	if _, err := svc.ToggleItem(ctx, 9999); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	list, err := svc.GenerateFromRecipes(ctx, "user-1", []string{"r1"}, DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("GenerateFromRecipes failed: %v", err)
	}

	if err := svc.Delete(ctx, list.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, list.ID); !errors.Is(err, ErrListNotFound) {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, list.ID); !errors.Is(err, ErrListNotFound) {
		t.Errorf("expected ErrListNotFound on second delete, got %v", err)
	}
}
