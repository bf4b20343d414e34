package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"pantry-planner/internal/recipe"
)

const maxItemNameLength = 120

var (
	// ErrNothingToBuy is returned when consolidation produces no items, for
	// example when every line of the selected recipes is optional.
	ErrNothingToBuy = errors.New("no items to put on the list")

	// ErrListNotFound is returned when a list ID does not exist.
	ErrListNotFound = errors.New("shopping list not found")

	// ErrItemNotFound is returned when an item ID does not exist.
	ErrItemNotFound = errors.New("shopping list item not found")
)

// ListStore is the persistence surface the service needs for lists.
type ListStore interface {
	CreateWithItems(ctx context.Context, list ShoppingList, items []CreateItemInput) (int64, error)
	Get(ctx context.Context, id int64) (*ShoppingList, error)
	ListByUser(ctx context.Context, userID string) ([]ShoppingList, error)
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, listID int64, input CreateItemInput) (int64, error)
	GetItem(ctx context.Context, itemID int64) (*ShoppingListItem, error)
	UpdateItem(ctx context.Context, item ShoppingListItem) error
	SetItemCompleted(ctx context.Context, itemID int64, completed bool) error
	DeleteItem(ctx context.Context, itemID int64) error
}

// RecipeSource resolves recipe IDs to full recipes, in the given order.
type RecipeSource interface {
	GetByIDs(ctx context.Context, ids []string) ([]recipe.Recipe, error)
}

// Service implements shopping list use cases on top of the consolidator and
// a list store.
type Service struct {
	store           ListStore
	recipes         RecipeSource
	defaultListName string
}

// NewService creates a shopping list service. defaultListName is used when a
// generation request does not name the list.
func NewService(store ListStore, recipes RecipeSource, defaultListName string) *Service {
	if defaultListName == "" {
		defaultListName = "Shopping List"
	}
	return &Service{
		store:           store,
		recipes:         recipes,
		defaultListName: defaultListName,
	}
}

// GenerateFromRecipes consolidates the given recipes into a new persisted
// shopping list and returns it. Unknown recipe IDs are skipped; if nothing
// remains to buy the list is not created and ErrNothingToBuy is returned.
func (s *Service) GenerateFromRecipes(ctx context.Context, userID string, recipeIDs []string, opts GenerationOptions) (*ShoppingList, error) {
	recs, err := s.recipes.GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	items := Consolidate(recs, opts)
	return s.createGenerated(ctx, userID, items, opts)
}

// GenerateScaled consolidates one recipe scaled to a target serving count
// into a new persisted shopping list.
func (s *Service) GenerateScaled(ctx context.Context, userID, recipeID string, targetServings float64, opts GenerationOptions) (*ShoppingList, error) {
	recs, err := s.recipes.GetByIDs(ctx, []string{recipeID})
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("recipe %s not found", recipeID)
	}

	items := ConsolidateScaled(recs[0], targetServings, opts)
	return s.createGenerated(ctx, userID, items, opts)
}

func (s *Service) createGenerated(ctx context.Context, userID string, items []CreateItemInput, opts GenerationOptions) (*ShoppingList, error) {
	if len(items) == 0 {
		return nil, ErrNothingToBuy
	}

	name := strings.TrimSpace(opts.ListName)
	if name == "" {
		name = s.defaultListName
	}

	list := ShoppingList{
		UserID:               userID,
		Name:                 name,
		Description:          opts.ListDescription,
		GeneratedFromRecipes: true,
	}

	id, err := s.store.CreateWithItems(ctx, list, items)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return s.Get(ctx, id)
}

// CreateList creates an empty, manually managed list.
func (s *Service) CreateList(ctx context.Context, userID, name, description string) (*ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultListName
	}
	id, err := s.store.CreateWithItems(ctx, ShoppingList{
		UserID:      userID,
		Name:        name,
		Description: description,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return s.Get(ctx, id)
}

// Get returns a list with its items, or ErrListNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*ShoppingList, error) {
	list, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}
	return list, nil
}

// ListForUser returns all of a user's lists, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]ShoppingList, error) {
	return s.store.ListByUser(ctx, userID)
}

// Delete removes a list and all of its items.
func (s *Service) Delete(ctx context.Context, id int64) error {
	list, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrListNotFound
	}
	return s.store.Delete(ctx, id)
}

// AddItem validates and appends one item to a list.
func (s *Service) AddItem(ctx context.Context, listID int64, input CreateItemInput) (*ShoppingListItem, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}
	list, err := s.store.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}

	id, err := s.store.AddItem(ctx, listID, input)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// ToggleItem flips one item's checked state and returns the new state.
func (s *Service) ToggleItem(ctx context.Context, itemID int64) (bool, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, ErrItemNotFound
	}
	completed := !item.IsCompleted
	if err := s.store.SetItemCompleted(ctx, itemID, completed); err != nil {
		return false, err
	}
	return completed, nil
}

// SetItemCompleted checks or unchecks one item.
func (s *Service) SetItemCompleted(ctx context.Context, itemID int64, completed bool) error {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.store.SetItemCompleted(ctx, itemID, completed)
}

// UpdateItem saves edits to an item's name, quantity, unit and notes.
func (s *Service) UpdateItem(ctx context.Context, item ShoppingListItem) error {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return errors.New("item name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxItemNameLength {
		return fmt.Errorf("item name must be at most %d characters", maxItemNameLength)
	}
	if item.Quantity < 0 {
		return errors.New("item quantity must not be negative")
	}
	existing, err := s.store.GetItem(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrItemNotFound
	}
	item.Name = name
	return s.store.UpdateItem(ctx, item)
}

// RemoveItem deletes one item from its list.
func (s *Service) RemoveItem(ctx context.Context, itemID int64) error {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.store.DeleteItem(ctx, itemID)
}

func validateItemInput(input CreateItemInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.TrimSpace(input.CustomName)
	}
	if name == "" {
		return errors.New("item name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxItemNameLength {
		return fmt.Errorf("item name must be at most %d characters", maxItemNameLength)
	}
	if input.IngredientID != "" && input.CustomName != "" {
		return errors.New("item must reference either a catalog ingredient or a custom name, not both")
	}
	if input.IngredientID == "" && input.CustomName == "" {
		return errors.New("item must reference a catalog ingredient or carry a custom name")
	}
	if input.Quantity < 0 {
		return errors.New("item quantity must not be negative")
	}
	return nil
}
