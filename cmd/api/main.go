package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-planner/internal/api"
	"pantry-planner/internal/auth"
	"pantry-planner/internal/config"
	"pantry-planner/internal/database"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	ingredientRepo := ingredient.NewRepository(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL)
	importer := recipe.NewImporter(ingredientRepo, recipeRepo)
	shoppingService := shopping.NewService(shopping.NewRepository(db.SQL), recipeRepo, cfg.DefaultListName)
	authService := auth.NewService(auth.NewSQLUserRepository(db.SQL), tokens)
	metricsStore := metrics.NewStore(db.SQL)

	// Make sure the catalog is available before serving requests
	if added, err := ingredient.SeedCatalog(context.Background(), ingredientRepo); err != nil {
		log.Fatalf("Failed to seed ingredient catalog: %v", err)
	} else if added > 0 {
		log.Printf("Seeded %d catalog ingredients", added)
	}

	server := api.NewServer(authService, shoppingService, recipeRepo, importer, ingredientRepo, metricsStore)

	srv := &http.Server{
		Addr:    cfg.APIAddr,
		Handler: server.NewRouter(),
	}

	go func() {
		log.Printf("API server listening on %s", cfg.APIAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
