package metrics

import (
	"context"
	"database/sql"
	"time"

	metricsdb "pantry-planner/internal/metrics/metrics_db"
)

// Event names recorded by the application.
const (
	EventListGenerated = "list_generated"
	EventListExported  = "list_exported"
	EventRecipeImport  = "recipe_imported"
	EventItemToggled   = "item_toggled"
)

// Event records metadata for a single application action.
type Event struct {
	Name      string
	Subject   string
	ItemCount int
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of usage events to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves an event to the database.
func (s *Store) Record(e Event) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return s.queries.InsertEvent(context.Background(), metricsdb.InsertEventParams{
		EventName: e.Name,
		Subject:   e.Subject,
		ItemCount: int64(e.ItemCount),
		LatencyMs: e.LatencyMS,
		Timestamp: ts,
	})
}

// RecordTimed saves an event measuring latency from the given start time.
func (s *Store) RecordTimed(name, subject string, itemCount int, started time.Time) error {
	return s.Record(Event{
		Name:      name,
		Subject:   subject,
		ItemCount: itemCount,
		LatencyMS: time.Since(started).Milliseconds(),
	})
}

// DailyUsage represents event totals for a single day.
type DailyUsage struct {
	Date       string
	Events     int
	TotalItems int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")
	rows, err := s.queries.GetDailyUsage(context.Background(), since)
	if err != nil {
		return nil, err
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			Events: int(r.Count),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.Sum.Valid {
			u.TotalItems = int(r.Sum.Float64)
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) error {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	return s.queries.CleanupEvents(context.Background(), threshold)
}
