package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	shoppingdb "pantry-planner/internal/shopping/db"
)

// Repository handles persistence of shopping lists and their items.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// CreateWithItems creates a list and all of its items in one transaction, so
// a generated list is never half-persisted.
func (r *Repository) CreateWithItems(ctx context.Context, list ShoppingList, items []CreateItemInput) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)

	createdAt := list.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	listID, err := q.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
		UserID:               list.UserID,
		Name:                 list.Name,
		Description:          list.Description,
		GeneratedFromRecipes: list.GeneratedFromRecipes,
		CreatedAt:            createdAt,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	for _, input := range items {
		if _, err := q.InsertShoppingListItem(ctx, insertParams(listID, input)); err != nil {
			return 0, fmt.Errorf("failed to insert shopping list item %q: %w", input.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit shopping list: %w", err)
	}
	return listID, nil
}

// Get retrieves a shopping list with its items.
func (r *Repository) Get(ctx context.Context, id int64) (*ShoppingList, error) {
	row, err := r.queries.GetShoppingList(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No shopping list found
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	list := fromDBList(row)
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return list, nil
}

// ListByUser retrieves a user's shopping lists, newest first, with items.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]ShoppingList, error) {
	rows, err := r.queries.ListShoppingListsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists for user %s: %w", userID, err)
	}

	var lists []ShoppingList
	for _, row := range rows {
		list := fromDBList(row)
		items, err := r.loadItems(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		list.Items = items
		lists = append(lists, *list)
	}
	return lists, nil
}

// Delete removes a list and its items.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteShoppingListItems(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shopping list items: %w", err)
	}
	if err := q.DeleteShoppingList(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return tx.Commit()
}

// AddItem appends one item to an existing list and returns its ID. The order
// index is assigned after the current last item.
func (r *Repository) AddItem(ctx context.Context, listID int64, input CreateItemInput) (int64, error) {
	next, err := r.queries.NextItemOrderIndex(ctx, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next order index: %w", err)
	}
	input.OrderIndex = int(next)

	id, err := r.queries.InsertShoppingListItem(ctx, insertParams(listID, input))
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list item: %w", err)
	}
	return id, nil
}

// GetItem retrieves a single item.
func (r *Repository) GetItem(ctx context.Context, itemID int64) (*ShoppingListItem, error) {
	row, err := r.queries.GetShoppingListItem(ctx, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list item: %w", err)
	}
	item := fromDBItem(row)
	return &item, nil
}

// UpdateItem saves editable item fields. Identity mode and category are fixed
// at creation and cannot be changed here.
func (r *Repository) UpdateItem(ctx context.Context, item ShoppingListItem) error {
	err := r.queries.UpdateShoppingListItem(ctx, shoppingdb.UpdateShoppingListItemParams{
		IngredientName: item.Name,
		Quantity:       nullFloat(item.Quantity),
		Unit:           nullString(item.Unit),
		Notes:          item.Notes,
		OrderIndex:     int64(item.OrderIndex),
		ID:             item.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update shopping list item: %w", err)
	}
	return nil
}

// SetItemCompleted checks or unchecks one item.
func (r *Repository) SetItemCompleted(ctx context.Context, itemID int64, completed bool) error {
	err := r.queries.SetShoppingListItemCompleted(ctx, shoppingdb.SetShoppingListItemCompletedParams{
		IsCompleted: completed,
		ID:          itemID,
	})
	if err != nil {
		return fmt.Errorf("failed to set item completion: %w", err)
	}
	return nil
}

// DeleteItem removes one item from its list.
func (r *Repository) DeleteItem(ctx context.Context, itemID int64) error {
	return r.queries.DeleteShoppingListItem(ctx, itemID)
}

func (r *Repository) loadItems(ctx context.Context, listID int64) ([]ShoppingListItem, error) {
	rows, err := r.queries.ListShoppingListItems(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for shopping list %d: %w", listID, err)
	}
	var items []ShoppingListItem
	for _, row := range rows {
		items = append(items, fromDBItem(row))
	}
	return items, nil
}

func insertParams(listID int64, input CreateItemInput) shoppingdb.InsertShoppingListItemParams {
	name := input.Name
	if name == "" {
		name = input.CustomName
	}
	return shoppingdb.InsertShoppingListItemParams{
		ShoppingListID: listID,
		IngredientID:   nullString(input.IngredientID),
		CustomName:     nullString(input.CustomName),
		IngredientName: name,
		Quantity:       nullFloat(input.Quantity),
		Unit:           nullString(input.Unit),
		Category:       input.Category,
		Notes:          input.Notes,
		OrderIndex:     int64(input.OrderIndex),
	}
}

func fromDBList(row shoppingdb.ShoppingList) *ShoppingList {
	return &ShoppingList{
		ID:                   row.ID,
		UserID:               row.UserID,
		Name:                 row.Name,
		Description:          row.Description,
		GeneratedFromRecipes: row.GeneratedFromRecipes,
		CreatedAt:            row.CreatedAt,
	}
}

func fromDBItem(row shoppingdb.ShoppingListItem) ShoppingListItem {
	return ShoppingListItem{
		ID:             row.ID,
		ShoppingListID: row.ShoppingListID,
		IngredientID:   row.IngredientID.String,
		CustomName:     row.CustomName.String,
		Name:           row.IngredientName,
		Quantity:       row.Quantity.Float64,
		Unit:           row.Unit.String,
		Category:       row.Category,
		IsCompleted:    row.IsCompleted,
		Notes:          row.Notes,
		OrderIndex:     int(row.OrderIndex),
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
