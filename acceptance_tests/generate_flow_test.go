package acceptance_tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pantry-planner/internal/archive"
	"pantry-planner/internal/database"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
)

const recipePage = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Weeknight Pasta",
  "recipeYield": "2",
  "recipeIngredient": [
    "200 g pasta",
    "100 ml cream",
    "1 onion"
  ]
}
</script>
</head>
<body><h1>Weeknight Pasta</h1></body>
</html>`

// TestFullWorkflow walks the main path: seed the catalog, import a recipe
// from a web page, generate a shopping list, check items off and export it.
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()

	db, err := database.NewDB(filepath.Join(tempDir, "acceptance.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ingredientRepo := ingredient.NewRepository(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL)
	importer := recipe.NewImporter(ingredientRepo, recipeRepo)
	shoppingService := shopping.NewService(shopping.NewRepository(db.SQL), recipeRepo, "Shopping List")

	// --- Step 1: Seed the catalog ---
	t.Log("--- Step 1: Seeding Catalog ---")
	added, err := ingredient.SeedCatalog(ctx, ingredientRepo)
	if err != nil {
		t.Fatalf("Seeding failed: %v", err)
	}
	if added == 0 {
		t.Fatal("Expected the seed catalog to add ingredients")
	}

	// --- Step 2: Import a recipe from a served page ---
	t.Log("--- Step 2: Importing Recipe ---")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(recipePage))
	}))
	defer server.Close()

	rec, err := importer.ImportURL(ctx, server.URL)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if rec.Name != "Weeknight Pasta" {
		t.Errorf("Expected recipe name 'Weeknight Pasta', got %q", rec.Name)
	}
	if rec.Servings != 2 {
		t.Errorf("Expected 2 servings, got %v", rec.Servings)
	}
	if len(rec.Ingredients) != 3 {
		t.Fatalf("Expected 3 ingredient lines, got %d", len(rec.Ingredients))
	}

	// --- Step 3: Generate a shopping list ---
	t.Log("--- Step 3: Generating Shopping List ---")
	list, err := shoppingService.GenerateFromRecipes(ctx, "test-user", []string{rec.ID}, shopping.DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("Generation failed: %v", err)
	}
	if len(list.Items) != 3 {
		t.Fatalf("Expected 3 list items, got %d", len(list.Items))
	}
	for _, item := range list.Items {
		if item.Notes != "For: Weeknight Pasta" {
			t.Errorf("Expected attribution note, got %q", item.Notes)
		}
	}

	// --- Step 4: Check off an item ---
	t.Log("--- Step 4: Checking Off Items ---")
	completed, err := shoppingService.ToggleItem(ctx, list.Items[0].ID)
	if err != nil || !completed {
		t.Fatalf("Toggle failed: %v (completed=%v)", err, completed)
	}

	// --- Step 5: Export and archive ---
	t.Log("--- Step 5: Exporting ---")
	list, err = shoppingService.Get(ctx, list.ID)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	text := shopping.ExportText(*list)
	if !strings.Contains(text, "🛒 Shopping List") {
		t.Errorf("Export missing title:\n%s", text)
	}
	if !strings.Contains(text, "1/3 items checked (33%)") {
		t.Errorf("Export missing summary:\n%s", text)
	}

	exports, err := archive.NewExportArchive(filepath.Join(tempDir, "exports"))
	if err != nil {
		t.Fatalf("Failed to create export archive: %v", err)
	}
	exportedAt := time.Now()
	if _, err := exports.Save(list.ID, exportedAt, text); err != nil {
		t.Fatalf("Archiving failed: %v", err)
	}
	loaded, err := exports.Load(list.ID, exportedAt)
	if err != nil {
		t.Fatalf("Loading archived export failed: %v", err)
	}
	if loaded != text {
		t.Error("Archived export does not match the rendered text")
	}
}
