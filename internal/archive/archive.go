package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportArchive provides file-based storage for shared text exports of
// shopping lists, versioned by export time.
type ExportArchive struct {
	basePath string
}

// NewExportArchive creates a new ExportArchive and ensures the base directory exists.
func NewExportArchive(basePath string) (*ExportArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &ExportArchive{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

// versionedPath returns the full path for a given list ID and export time.
func (a *ExportArchive) versionedPath(listID int64, exportedAt time.Time) string {
	filename := fmt.Sprintf("list-%d_%s.txt", listID, sanitizeTimestamp(exportedAt.UTC().Format(time.RFC3339)))
	return filepath.Join(a.basePath, filename)
}

// Save stores one rendered export with versioning and returns its path.
func (a *ExportArchive) Save(listID int64, exportedAt time.Time, text string) (string, error) {
	filePath := a.versionedPath(listID, exportedAt)
	if err := os.WriteFile(filePath, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return filePath, nil
}

// Load retrieves one archived export.
func (a *ExportArchive) Load(listID int64, exportedAt time.Time) (string, error) {
	data, err := os.ReadFile(a.versionedPath(listID, exportedAt))
	if err != nil {
		return "", fmt.Errorf("failed to read export file: %w", err)
	}
	return string(data), nil
}

// Exists checks if a specific export version exists.
func (a *ExportArchive) Exists(listID int64, exportedAt time.Time) bool {
	_, err := os.Stat(a.versionedPath(listID, exportedAt))
	return !os.IsNotExist(err)
}

// RemoveStaleVersions removes all archived exports of a list.
// Called before saving a new version to keep only the latest on disk.
func (a *ExportArchive) RemoveStaleVersions(listID int64) error {
	pattern := filepath.Join(a.basePath, fmt.Sprintf("list-%d_*.txt", listID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob stale files: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}
