package ingredient

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

//go:embed seed_catalog.json
var seedCatalog []byte

type seedEntry struct {
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory"`
	Units       []string     `json:"units"`
	Season      []time.Month `json:"season"`
}

// SeedCatalog loads the built-in catalog into the repository. Entries whose
// name already exists are skipped, so seeding is safe to re-run.
func SeedCatalog(ctx context.Context, repo *Repository) (int, error) {
	var entries []seedEntry
	if err := json.Unmarshal(seedCatalog, &entries); err != nil {
		return 0, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	seeded := 0
	for _, e := range entries {
		existing, err := repo.GetByName(ctx, e.Name)
		if err != nil {
			return seeded, fmt.Errorf("failed to check existing ingredient %q: %w", e.Name, err)
		}
		if existing != nil {
			continue
		}

		ing := &Ingredient{
			Name:        e.Name,
			Category:    ParseCategory(e.Category),
			Subcategory: e.Subcategory,
			Units:       e.Units,
			Season:      e.Season,
		}
		if err := repo.Save(ctx, ing); err != nil {
			return seeded, fmt.Errorf("failed to seed ingredient %q: %w", e.Name, err)
		}
		seeded++
	}

	log.Printf("Seeded %d catalog ingredients (%d already present).", seeded, len(entries)-seeded)
	return seeded, nil
}
