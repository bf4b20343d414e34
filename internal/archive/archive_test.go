package archive

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestExportArchive(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "archive_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	arch, err := NewExportArchive(tempDir)
	if err != nil {
		t.Fatalf("Failed to create ExportArchive: %v", err)
	}

	listID := int64(42)
	exportedAt := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	text := "🛒 Week 12\nCreated: 14 Mar 2026\n"

	t.Run("CheckExists-False", func(t *testing.T) {
		if arch.Exists(listID, exportedAt) {
			t.Error("Expected export to not exist yet, but it does")
		}
	})

	t.Run("Save", func(t *testing.T) {
		path, err := arch.Save(listID, exportedAt, text)
		if err != nil {
			t.Fatalf("Failed to save export: %v", err)
		}
		if strings.Contains(path, ":") {
			t.Errorf("Export filename should not contain colons: %s", path)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", path)
		}
	})

	t.Run("CheckExists-True", func(t *testing.T) {
		if !arch.Exists(listID, exportedAt) {
			t.Error("Expected export to exist, but it doesn't")
		}
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := arch.Load(listID, exportedAt)
		if err != nil {
			t.Fatalf("Failed to load export: %v", err)
		}
		if loaded != text {
			t.Errorf("Expected %q, got %q", text, loaded)
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		if _, err := arch.Load(999, exportedAt); err == nil {
			t.Fatal("Expected an error for a missing export, got nil")
		}
	})

	t.Run("RemoveStaleVersions", func(t *testing.T) {
		later := exportedAt.Add(time.Hour)
		if _, err := arch.Save(listID, later, text); err != nil {
			t.Fatalf("Failed to save second version: %v", err)
		}

		if err := arch.RemoveStaleVersions(listID); err != nil {
			t.Fatalf("Failed to remove stale versions: %v", err)
		}
		if arch.Exists(listID, exportedAt) || arch.Exists(listID, later) {
			t.Error("Expected all versions to be removed")
		}
	})
}
