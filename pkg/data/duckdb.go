package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

var schema = []string{
	`CREATE SEQUENCE IF NOT EXISTS download_stat_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS mangas (
		id BIGINT PRIMARY KEY,
		title VARCHAR NOT NULL,
		source BIGINT NOT NULL DEFAULT 0,
		favorite BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		sort INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS mangas_categories (
		manga_id BIGINT NOT NULL,
		category_id BIGINT NOT NULL,
		PRIMARY KEY (manga_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS download_stat (
		id BIGINT PRIMARY KEY DEFAULT nextval('download_stat_id_seq'),
		manga_id BIGINT,
		date BIGINT NOT NULL,
		size BIGINT NOT NULL,
		units BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS preferences (
		key VARCHAR PRIMARY KEY,
		value VARCHAR NOT NULL
	)`,
	`INSERT INTO categories (id, name, sort) VALUES (0, 'Default', 0) ON CONFLICT DO NOTHING`,
}

// InitDuckDB opens (creating if needed) the database at path and applies the schema.
// An empty path or ":memory:" opens an in-memory database.
func InitDuckDB(path string) (*sql.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = ""
	}
	if dsn != "" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return db, nil
}

// Repository is the DuckDB-backed store for the library, the download ledger
// and user preferences.
type Repository struct {
	db     *sql.DB
	ledger *ledgerHub
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, ledger: newLedgerHub()}
}

// Open initializes the database at path and wraps it in a Repository.
func Open(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return NewRepository(db), nil
}

func (r *Repository) Close() error {
	r.ledger.closeAll()
	return r.db.Close()
}
