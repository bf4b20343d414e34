package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pantry-planner/internal/auth"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
)

// Server wires the HTTP API to the application services.
type Server struct {
	auth        *auth.Service
	shopping    *shopping.Service
	recipes     *recipe.Repository
	importer    *recipe.Importer
	ingredients *ingredient.Repository
	events      *metrics.Store
}

func NewServer(
	authService *auth.Service,
	shoppingService *shopping.Service,
	recipes *recipe.Repository,
	importer *recipe.Importer,
	ingredients *ingredient.Repository,
	events *metrics.Store,
) *Server {
	return &Server{
		auth:        authService,
		shopping:    shoppingService,
		recipes:     recipes,
		importer:    importer,
		ingredients: ingredients,
		events:      events,
	}
}

// NewRouter builds the gin engine with all routes registered.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.Default()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", s.handleRegister)
	r.POST("/auth/login", s.handleLogin)

	authed := r.Group("/", s.authMiddleware())
	{
		authed.GET("/ingredients", s.handleListIngredients)
		authed.POST("/ingredients", s.handleCreateIngredient)

		authed.GET("/recipes", s.handleListRecipes)
		authed.GET("/recipes/:id", s.handleGetRecipe)
		authed.DELETE("/recipes/:id", s.handleDeleteRecipe)
		authed.POST("/recipes/import", s.handleImportRecipe)

		authed.GET("/lists", s.handleListLists)
		authed.POST("/lists", s.handleCreateList)
		authed.POST("/lists/generate", s.handleGenerateList)
		authed.GET("/lists/:id", s.handleGetList)
		authed.DELETE("/lists/:id", s.handleDeleteList)
		authed.GET("/lists/:id/export", s.handleExportList)
		authed.GET("/lists/:id/stats", s.handleListStats)
		authed.POST("/lists/:id/items", s.handleAddItem)
		authed.PATCH("/lists/:id/items/:itemID", s.handleUpdateItem)
		authed.DELETE("/lists/:id/items/:itemID", s.handleDeleteItem)
	}

	return r
}

// authMiddleware validates the bearer token and stores the user identity on
// the request context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		userID, email, err := s.auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userEmail", email)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}
