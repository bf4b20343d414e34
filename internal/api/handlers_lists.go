package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pantry-planner/internal/metrics"
	"pantry-planner/internal/shopping"
)

// ownedList loads a list and enforces that it belongs to the caller. Lists of
// other users are reported as not found.
func (s *Server) ownedList(c *gin.Context) (*shopping.ShoppingList, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
		return nil, false
	}

	list, err := s.shopping.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shopping.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load list"})
		return nil, false
	}
	if list.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return nil, false
	}
	return list, true
}

func (s *Server) handleListLists(c *gin.Context) {
	lists, err := s.shopping.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shopping lists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

func (s *Server) handleCreateList(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	list, err := s.shopping.CreateList(c.Request.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create list"})
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (s *Server) handleGenerateList(c *gin.Context) {
	var req struct {
		RecipeIDs      []string `json:"recipe_ids"`
		TargetServings float64  `json:"target_servings"`

		IncludeOptional *bool  `json:"include_optional"`
		Aggregate       *bool  `json:"aggregate"`
		Name            string `json:"name"`
		Description     string `json:"description"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.RecipeIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_ids is required"})
		return
	}
	if req.TargetServings > 0 && len(req.RecipeIDs) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_servings applies to a single recipe"})
		return
	}

	opts := shopping.DefaultGenerationOptions()
	if req.IncludeOptional != nil {
		opts.IncludeOptionalIngredients = *req.IncludeOptional
	}
	if req.Aggregate != nil {
		opts.AggregateIdenticalIngredients = *req.Aggregate
	}
	opts.ListName = req.Name
	opts.ListDescription = req.Description

	started := time.Now()
	userID := currentUserID(c)

	var (
		list *shopping.ShoppingList
		err  error
	)
	if req.TargetServings > 0 {
		list, err = s.shopping.GenerateScaled(c.Request.Context(), userID, req.RecipeIDs[0], req.TargetServings, opts)
	} else {
		list, err = s.shopping.GenerateFromRecipes(c.Request.Context(), userID, req.RecipeIDs, opts)
	}
	if err != nil {
		if errors.Is(err, shopping.ErrNothingToBuy) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate list"})
		return
	}

	if s.events != nil {
		_ = s.events.RecordTimed(metrics.EventListGenerated, strconv.FormatInt(list.ID, 10), len(list.Items), started)
	}
	c.JSON(http.StatusCreated, list)
}

func (s *Server) handleGetList(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"list":   list,
		"groups": shopping.GroupByCategory(list.Items),
	})
}

func (s *Server) handleDeleteList(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}
	if err := s.shopping.Delete(c.Request.Context(), list.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete list"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleExportList(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}

	text := shopping.ExportText(*list)
	if s.events != nil {
		_ = s.events.Record(metrics.Event{
			Name:      metrics.EventListExported,
			Subject:   strconv.FormatInt(list.ID, 10),
			ItemCount: len(list.Items),
		})
	}
	c.String(http.StatusOK, text)
}

func (s *Server) handleListStats(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":         shopping.CompletionStats(list.Items),
		"time_estimate": shopping.EstimateShoppingTime(list.Items),
	})
}

func (s *Server) handleAddItem(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}

	var input shopping.CreateItemInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := s.shopping.AddItem(c.Request.Context(), list.ID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	existing := findItem(list, itemID)
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	var req struct {
		Name      *string  `json:"name"`
		Quantity  *float64 `json:"quantity"`
		Unit      *string  `json:"unit"`
		Notes     *string  `json:"notes"`
		Completed *bool    `json:"completed"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	if req.Completed != nil {
		if err := s.shopping.SetItemCompleted(ctx, itemID, *req.Completed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
			return
		}
		existing.IsCompleted = *req.Completed
		if s.events != nil {
			_ = s.events.Record(metrics.Event{
				Name:    metrics.EventItemToggled,
				Subject: strconv.FormatInt(itemID, 10),
			})
		}
	}

	if req.Name != nil || req.Quantity != nil || req.Unit != nil || req.Notes != nil {
		updated := *existing
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.Quantity != nil {
			updated.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			updated.Unit = *req.Unit
		}
		if req.Notes != nil {
			updated.Notes = *req.Notes
		}
		if err := s.shopping.UpdateItem(ctx, updated); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		existing = &updated
	}

	c.JSON(http.StatusOK, existing)
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	list, ok := s.ownedList(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if findItem(list, itemID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := s.shopping.RemoveItem(c.Request.Context(), itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	c.Status(http.StatusNoContent)
}

func findItem(list *shopping.ShoppingList, itemID int64) *shopping.ShoppingListItem {
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			return &list.Items[i]
		}
	}
	return nil
}
