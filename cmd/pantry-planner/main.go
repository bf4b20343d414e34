package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"pantry-planner/internal/app"
	"pantry-planner/internal/archive"
	"pantry-planner/internal/config"
	"pantry-planner/internal/database"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
)

// cliUserID is used by the single-user CLI; the HTTP API and the bot carry
// real user identities instead.
const cliUserID = "cli"

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ingredientRepo := ingredient.NewRepository(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL)
	importer := recipe.NewImporter(ingredientRepo, recipeRepo)
	shoppingService := shopping.NewService(shopping.NewRepository(db.SQL), recipeRepo, cfg.DefaultListName)
	metricsStore := metrics.NewStore(db.SQL)

	exports, err := archive.NewExportArchive(cfg.ArchiveDir)
	if err != nil {
		log.Fatalf("Failed to initialize export archive: %v", err)
	}

	application := app.NewApp(cfg, db, ingredientRepo, recipeRepo, importer, shoppingService, metricsStore, exports)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		if err := application.SeedCatalog(ctx); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}

	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		url := importCmd.String("url", "", "URL of the recipe page to import")
		importCmd.Parse(os.Args[2:])
		if *url == "" {
			log.Fatal("import requires -url")
		}
		if _, err := application.ImportRecipe(ctx, *url); err != nil {
			log.Fatalf("Import failed: %v", err)
		}

	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		name := genCmd.String("name", "", "Name for the generated list")
		includeOptional := genCmd.Bool("include-optional", false, "Include optional ingredient lines")
		noAggregate := genCmd.Bool("no-aggregate", false, "Keep one line per recipe ingredient instead of summing")
		genCmd.Parse(os.Args[2:])

		recipeIDs := genCmd.Args()
		if len(recipeIDs) == 0 {
			log.Fatal("generate requires at least one recipe ID")
		}

		opts := shopping.DefaultGenerationOptions()
		opts.IncludeOptionalIngredients = *includeOptional
		opts.AggregateIdenticalIngredients = !*noAggregate
		opts.ListName = *name

		if _, err := application.GenerateShoppingList(ctx, cliUserID, recipeIDs, opts); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}

	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		listID := exportCmd.Int64("list", 0, "ID of the list to export")
		exportCmd.Parse(os.Args[2:])
		if *listID == 0 {
			log.Fatal("export requires -list")
		}
		text, err := application.ExportList(ctx, *listID)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Print(text)

	case "lists":
		if err := application.ListShoppingLists(ctx, cliUserID); err != nil {
			log.Fatalf("Listing failed: %v", err)
		}

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := metricsStore.Cleanup(*days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Old metric records removed.")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: pantry-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed               Load the built-in ingredient catalog into the database")
	fmt.Println("  import             Import a recipe from a URL (-url)")
	fmt.Println("  generate           Generate a shopping list from recipe IDs")
	fmt.Println("  export             Print and archive a list's shareable text (-list)")
	fmt.Println("  lists              Show your shopping lists")
	fmt.Println("  metrics-cleanup    Remove old event records")
}
