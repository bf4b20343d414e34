package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pantry-planner/internal/ingredient"
)

// Importer fetches recipe pages and turns them into catalog-linked recipes.
// Most recipe sites embed schema.org/Recipe data as JSON-LD; pages without it
// fall back to microdata attributes.
type Importer struct {
	catalog    *ingredient.Repository
	recipes    *Repository
	httpClient *http.Client
}

// NewImporter creates a new Importer.
func NewImporter(catalog *ingredient.Repository, recipes *Repository) *Importer {
	return &Importer{
		catalog:    catalog,
		recipes:    recipes,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExtractedRecipe is the raw result of scraping a page, before ingredient
// lines are matched against the catalog.
type ExtractedRecipe struct {
	Title       string
	Servings    float64
	Ingredients []string
}

// ImportURL fetches the URL, extracts the recipe, links its ingredient lines
// to the catalog (creating user ingredients for unknown names) and saves it.
func (im *Importer) ImportURL(ctx context.Context, url string) (*Recipe, error) {
	extracted, err := im.fetchAndExtract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to extract recipe: %w", err)
	}
	if extracted.Title == "" {
		return nil, fmt.Errorf("no recipe found at %s", url)
	}

	rec := &Recipe{
		Name:      extracted.Title,
		Servings:  extracted.Servings,
		SourceURL: url,
	}

	for i, raw := range extracted.Ingredients {
		parsed := ParseLine(raw)
		if parsed.Name == "" {
			continue
		}

		ing, err := im.resolveIngredient(ctx, parsed.Name)
		if err != nil {
			return nil, err
		}

		rec.Ingredients = append(rec.Ingredients, IngredientLine{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Category:     ing.Category,
			Quantity:     parsed.Quantity,
			Unit:         parsed.Unit,
			OrderIndex:   i,
		})
	}

	if len(rec.Ingredients) == 0 {
		return nil, fmt.Errorf("recipe %q has no parseable ingredients", extracted.Title)
	}

	if err := im.recipes.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}
	return rec, nil
}

// resolveIngredient finds a catalog entry by name or creates a user one.
func (im *Importer) resolveIngredient(ctx context.Context, name string) (*ingredient.Ingredient, error) {
	ing, err := im.catalog.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
	}
	if ing != nil {
		return ing, nil
	}

	ing = &ingredient.Ingredient{
		Name:        name,
		Category:    ingredient.CategoryOther,
		UserCreated: true,
	}
	if err := im.catalog.Save(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to create user ingredient %q: %w", name, err)
	}
	return ing, nil
}

func (im *Importer) fetchAndExtract(ctx context.Context, url string) (*ExtractedRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	if extracted := extractJSONLD(doc); extracted != nil {
		return extracted, nil
	}
	return extractMicrodata(doc), nil
}

// extractJSONLD scans the page's ld+json blocks for a schema.org Recipe.
func extractJSONLD(doc *goquery.Document) *ExtractedRecipe {
	var found *ExtractedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw interface{}
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true // malformed block, keep looking
		}
		if node := findRecipeNode(raw); node != nil {
			found = recipeFromNode(node)
			return false
		}
		return true
	})
	return found
}

// findRecipeNode walks a decoded ld+json value looking for @type Recipe,
// including @graph containers and top-level arrays.
func findRecipeNode(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		if hasType(v, "Recipe") {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []interface{}:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	}
	return nil
}

func hasType(node map[string]interface{}, want string) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == want
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func recipeFromNode(node map[string]interface{}) *ExtractedRecipe {
	out := &ExtractedRecipe{}

	if name, ok := node["name"].(string); ok {
		out.Title = strings.TrimSpace(name)
	}
	out.Servings = parseYield(node["recipeYield"])

	switch ings := node["recipeIngredient"].(type) {
	case []interface{}:
		for _, item := range ings {
			if s, ok := item.(string); ok {
				out.Ingredients = append(out.Ingredients, strings.TrimSpace(s))
			}
		}
	case string:
		out.Ingredients = append(out.Ingredients, strings.TrimSpace(ings))
	}

	return out
}

// parseYield extracts a serving count from schema.org recipeYield, which may
// be a number, a string like "4 servings", or an array of either.
func parseYield(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case string:
		if m := firstNumber.FindString(v); m != "" {
			n, _ := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
			return n
		}
	case []interface{}:
		for _, item := range v {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

// extractMicrodata is the fallback for pages using itemprop attributes.
func extractMicrodata(doc *goquery.Document) *ExtractedRecipe {
	out := &ExtractedRecipe{}

	scope := doc.Find(`[itemtype$="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return out
	}

	out.Title = strings.TrimSpace(scope.Find(`[itemprop="name"]`).First().Text())
	out.Servings = parseYield(strings.TrimSpace(scope.Find(`[itemprop="recipeYield"]`).First().Text()))

	scope.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			out.Ingredients = append(out.Ingredients, text)
		}
	})

	return out
}

// ParsedLine is a raw ingredient string split into its parts.
type ParsedLine struct {
	Quantity float64 // 0 when the line is unquantified
	Unit     string
	Name     string
}

var (
	firstNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	// quantity, optional unit, then the ingredient name
	linePattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?(?:\s*/\s*\d+)?)\s*([^\s\d]*)\s+(.+)$`)
)

// knownUnits are the unit tokens recognized when splitting "200 g flour"
// style lines. Anything else after the quantity is treated as the name.
var knownUnits = map[string]bool{
	"g": true, "kg": true, "mg": true,
	"ml": true, "cl": true, "dl": true, "l": true,
	"tsp": true, "tbsp": true, "cup": true, "cups": true,
	"pcs": true, "pc": true, "pinch": true, "cloves": true, "clove": true,
	"cans": true, "can": true, "slices": true, "slice": true,
	"bunch": true, "head": true, "punnet": true, "rolls": true,
}

// ParseLine splits a free-text ingredient line like "200 g flour" or
// "1/2 lemon" into quantity, unit, and name. Lines without a leading number
// come back unquantified.
func ParseLine(raw string) ParsedLine {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ParsedLine{}
	}

	m := linePattern.FindStringSubmatch(text)
	if m == nil {
		return ParsedLine{Name: text}
	}

	qty := parseQuantity(m[1])
	unit := strings.ToLower(m[2])
	name := strings.TrimSpace(m[3])

	if !knownUnits[unit] {
		// Not a unit token; glue it back onto the name.
		name = strings.TrimSpace(m[2] + " " + name)
		unit = ""
	}

	if name == "" {
		return ParsedLine{Name: text}
	}
	return ParsedLine{Quantity: qty, Unit: unit, Name: name}
}

// parseQuantity handles plain numbers, decimal commas, and fractions.
func parseQuantity(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return n / d
		}
		return 0
	}
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return n
}
