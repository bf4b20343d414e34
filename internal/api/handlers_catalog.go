package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
)

func (s *Server) handleListIngredients(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("category"); raw != "" {
		items, err := s.ingredients.ListByCategory(ctx, ingredient.ParseCategory(raw))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ingredients": items})
		return
	}

	items, err := s.ingredients.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}

func (s *Server) handleCreateIngredient(c *gin.Context) {
	var req struct {
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Units    []string `json:"units"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	existing, err := s.ingredients.GetByName(ctx, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check ingredient"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "ingredient already exists"})
		return
	}

	ing := &ingredient.Ingredient{
		Name:        req.Name,
		Category:    ingredient.ParseCategory(req.Category),
		Units:       req.Units,
		UserCreated: true,
	}
	if err := s.ingredients.Save(ctx, ing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (s *Server) handleListRecipes(c *gin.Context) {
	recipes, err := s.recipes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (s *Server) handleGetRecipe(c *gin.Context) {
	rec, err := s.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recipe"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleDeleteRecipe(c *gin.Context) {
	if err := s.recipes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleImportRecipe(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	started := time.Now()
	rec, err := s.importer.ImportURL(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if s.events != nil {
		_ = s.events.RecordTimed(metrics.EventRecipeImport, rec.ID, len(rec.Ingredients), started)
	}
	c.JSON(http.StatusCreated, rec)
}
