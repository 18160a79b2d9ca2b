package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDuckDB(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	defer db.Close()

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables
		WHERE table_name IN ('mangas', 'categories', 'mangas_categories', 'download_stat', 'preferences')`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	if tableCount != 5 {
		t.Errorf("Expected 5 tables, got %d", tableCount)
	}
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	// Use nested directory that doesn't exist
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("DB file was not created")
	}
}

func TestInitDuckDBIsReentrant(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	db.Close()

	db, err = InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Second initialization failed: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories WHERE id = 0`).Scan(&count); err != nil {
		t.Fatalf("Failed to count default category: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one default category, got %d", count)
	}
}
