package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pantry-planner/internal/auth"
	"pantry-planner/internal/database"
	"pantry-planner/internal/ingredient"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
)

type testEnv struct {
	router      *gin.Engine
	ingredients *ingredient.Repository
	recipes     *recipe.Repository
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}

	ingredients := ingredient.NewRepository(db.SQL)
	recipes := recipe.NewRepository(db.SQL)
	authService := auth.NewService(auth.NewSQLUserRepository(db.SQL), tokens)
	shoppingService := shopping.NewService(shopping.NewRepository(db.SQL), recipes, "Shopping List")
	events := metrics.NewStore(db.SQL)

	server := NewServer(authService, shoppingService, recipes, recipe.NewImporter(ingredients, recipes), ingredients, events)
	return &testEnv{
		router:      server.NewRouter(),
		ingredients: ingredients,
		recipes:     recipes,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "Password@123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "Password@123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse login response: %v", err)
	}
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/lists", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/lists", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for a bad token, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestServer(t)

	body := map[string]string{"email": "dup@example.com", "password": "pw"}
	if w := env.do(t, http.MethodPost, "/auth/register", "", body); w.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/auth/register", "", body); w.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate email, got %d", w.Code)
	}
}

func seedRecipe(t *testing.T, env *testEnv, name string, lines []recipe.IngredientLine) string {
	t.Helper()
	rec := &recipe.Recipe{Name: name, Ingredients: lines}
	if err := env.recipes.Save(context.Background(), rec); err != nil {
		t.Fatalf("Failed to seed recipe: %v", err)
	}
	return rec.ID
}

func catalogLine(t *testing.T, env *testEnv, name string, cat ingredient.Category, qty float64, unit string) recipe.IngredientLine {
	t.Helper()
	ing, err := env.ingredients.GetByName(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to look up ingredient: %v", err)
	}
	if ing == nil {
		ing = &ingredient.Ingredient{Name: name, Category: cat}
		if err := env.ingredients.Save(context.Background(), ing); err != nil {
			t.Fatalf("Failed to seed ingredient: %v", err)
		}
	}
	return recipe.IngredientLine{
		IngredientID: ing.ID,
		Name:         name,
		Category:     cat,
		Quantity:     qty,
		Unit:         unit,
	}
}

func TestGenerateListFlow(t *testing.T) {
	env := setupTestServer(t)
	token := env.registerAndLogin(t, "cook@example.com")

	flour := catalogLine(t, env, "Flour", ingredient.CategoryGrocery, 200, "g")
	milk := catalogLine(t, env, "Milk", ingredient.CategoryDairy, 300, "ml")
	pancakes := seedRecipe(t, env, "Pancakes", []recipe.IngredientLine{flour, milk})

	flour2 := flour
	flour2.Quantity = 500
	bread := seedRecipe(t, env, "Bread", []recipe.IngredientLine{flour2})

	w := env.do(t, http.MethodPost, "/lists/generate", token, map[string]interface{}{
		"recipe_ids": []string{pancakes, bread},
		"name":       "Week 12",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("generate failed with status %d: %s", w.Code, w.Body.String())
	}

	var list shopping.ShoppingList
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to parse list: %v", err)
	}
	if list.Name != "Week 12" {
		t.Errorf("expected list name 'Week 12', got %q", list.Name)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 consolidated items, got %d", len(list.Items))
	}
	for _, item := range list.Items {
		if item.Name == "Flour" {
			if item.Quantity != 700 {
				t.Errorf("expected 700 g flour, got %v", item.Quantity)
			}
			if item.Notes != "For: Pancakes, Bread" {
				t.Errorf("unexpected notes: %q", item.Notes)
			}
		}
	}

	t.Run("export", func(t *testing.T) {
		w := env.do(t, http.MethodGet, listPath(list.ID)+"/export", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("export failed with status %d", w.Code)
		}
		text := w.Body.String()
		for _, want := range []string{"🛒 Week 12", "Flour (700 g)", "0/2 items checked (0%)"} {
			if !strings.Contains(text, want) {
				t.Errorf("export missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("stats", func(t *testing.T) {
		w := env.do(t, http.MethodGet, listPath(list.ID)+"/stats", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("stats failed with status %d", w.Code)
		}
		var resp struct {
			Stats shopping.Stats `json:"stats"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse stats: %v", err)
		}
		if resp.Stats.TotalItems != 2 || resp.Stats.CompletedItems != 0 {
			t.Errorf("unexpected stats: %+v", resp.Stats)
		}
	})

	t.Run("toggle item", func(t *testing.T) {
		itemID := list.Items[0].ID
		w := env.do(t, http.MethodPatch, itemPath(list.ID, itemID), token, map[string]bool{"completed": true})
		if w.Code != http.StatusOK {
			t.Fatalf("patch failed with status %d: %s", w.Code, w.Body.String())
		}

		w = env.do(t, http.MethodGet, listPath(list.ID)+"/stats", token, nil)
		var resp struct {
			Stats shopping.Stats `json:"stats"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse stats: %v", err)
		}
		if resp.Stats.CompletedItems != 1 {
			t.Errorf("expected 1 completed item, got %d", resp.Stats.CompletedItems)
		}
	})

	t.Run("other users cannot see the list", func(t *testing.T) {
		otherToken := env.registerAndLogin(t, "other@example.com")
		w := env.do(t, http.MethodGet, listPath(list.ID), otherToken, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404 for another user's list, got %d", w.Code)
		}
	})
}

func TestGenerateRejectsAllOptionalRecipes(t *testing.T) {
	env := setupTestServer(t)
	token := env.registerAndLogin(t, "cook@example.com")

	parsley := catalogLine(t, env, "Parsley", ingredient.CategoryVegetables, 1, "bunch")
	parsley.Optional = true
	garnish := seedRecipe(t, env, "Garnish", []recipe.IngredientLine{parsley})

	w := env.do(t, http.MethodPost, "/lists/generate", token, map[string]interface{}{
		"recipe_ids": []string{garnish},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}
}

func listPath(id int64) string {
	return "/lists/" + strconv.FormatInt(id, 10)
}

func itemPath(listID, itemID int64) string {
	return listPath(listID) + "/items/" + strconv.FormatInt(itemID, 10)
}
