package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"pantry-planner/internal/archive"
	"pantry-planner/internal/config"
	"pantry-planner/internal/database"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	db           *database.DB
	ingredients  *ingredient.Repository
	recipes      *recipe.Repository
	importer     *recipe.Importer
	shopping     *shopping.Service
	metricsStore *metrics.Store
	exports      *archive.ExportArchive
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	db *database.DB,
	ingredients *ingredient.Repository,
	recipes *recipe.Repository,
	importer *recipe.Importer,
	shoppingService *shopping.Service,
	metricsStore *metrics.Store,
	exports *archive.ExportArchive,
) *App {
	return &App{
		cfg:          cfg,
		db:           db,
		ingredients:  ingredients,
		recipes:      recipes,
		importer:     importer,
		shopping:     shoppingService,
		metricsStore: metricsStore,
		exports:      exports,
	}
}

// SeedCatalog loads the built-in ingredient catalog into the database.
func (a *App) SeedCatalog(ctx context.Context) error {
	fmt.Println("Seeding ingredient catalog...")
	added, err := ingredient.SeedCatalog(ctx, a.ingredients)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	fmt.Printf("Catalog ready, %d new ingredients added.\n", added)
	return nil
}

// ImportRecipe fetches a recipe page, extracts its data and saves it.
func (a *App) ImportRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	fmt.Printf("Importing recipe from %s...\n", url)

	started := time.Now()
	rec, err := a.importer.ImportURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to import recipe: %w", err)
	}

	if err := a.metricsStore.RecordTimed(metrics.EventRecipeImport, rec.ID, len(rec.Ingredients), started); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}

	fmt.Printf("Imported '%s' with %d ingredients.\n", rec.Name, len(rec.Ingredients))
	return rec, nil
}

// GenerateShoppingList consolidates the given recipes into a new list and
// prints it.
func (a *App) GenerateShoppingList(ctx context.Context, userID string, recipeIDs []string, opts shopping.GenerationOptions) (*shopping.ShoppingList, error) {
	fmt.Printf("Generating shopping list from %d recipes...\n", len(recipeIDs))

	started := time.Now()
	list, err := a.shopping.GenerateFromRecipes(ctx, userID, recipeIDs, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate shopping list: %w", err)
	}

	if err := a.metricsStore.RecordTimed(metrics.EventListGenerated, strconv.FormatInt(list.ID, 10), len(list.Items), started); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}

	fmt.Println()
	fmt.Print(shopping.ExportText(*list))
	return list, nil
}

// ExportList renders a list as shareable text, archives a copy on disk and
// returns the text.
func (a *App) ExportList(ctx context.Context, listID int64) (string, error) {
	list, err := a.shopping.Get(ctx, listID)
	if err != nil {
		return "", fmt.Errorf("failed to load list: %w", err)
	}

	text := shopping.ExportText(*list)

	if err := a.exports.RemoveStaleVersions(listID); err != nil {
		log.Printf("Warning: failed to clean up stale exports for list %d: %v", listID, err)
	}
	path, err := a.exports.Save(listID, time.Now(), text)
	if err != nil {
		log.Printf("Warning: failed to archive export for list %d: %v", listID, err)
	} else {
		log.Printf("Export archived at %s", path)
	}

	if err := a.metricsStore.Record(metrics.Event{
		Name:      metrics.EventListExported,
		Subject:   strconv.FormatInt(listID, 10),
		ItemCount: len(list.Items),
	}); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}

	return text, nil
}

// ListShoppingLists prints a user's lists with their completion state.
func (a *App) ListShoppingLists(ctx context.Context, userID string) error {
	lists, err := a.shopping.ListForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list shopping lists: %w", err)
	}

	if len(lists) == 0 {
		fmt.Println("No shopping lists yet.")
		return nil
	}

	for _, list := range lists {
		stats := shopping.CompletionStats(list.Items)
		fmt.Printf("#%d %s (%d/%d done, created %s)\n",
			list.ID, list.Name, stats.CompletedItems, stats.TotalItems,
			list.CreatedAt.Format("2 Jan 2006"))
	}
	return nil
}
