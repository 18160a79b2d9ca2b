package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveManga inserts or updates a manga.
func (r *Repository) SaveManga(ctx context.Context, manga *Manga) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mangas (id, title, source, favorite) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET title = excluded.title, source = excluded.source, favorite = excluded.favorite
	`, manga.ID, manga.Title, manga.SourceID, manga.Favorite)
	if err != nil {
		return fmt.Errorf("failed to save manga %d: %w", manga.ID, err)
	}
	return nil
}

// GetManga returns nil without error when the manga does not exist.
func (r *Repository) GetManga(ctx context.Context, id int64) (*Manga, error) {
	m := &Manga{}
	err := r.db.QueryRowContext(ctx, `SELECT id, title, source, favorite FROM mangas WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.SourceID, &m.Favorite)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manga %d: %w", id, err)
	}
	return m, nil
}

func (r *Repository) ListMangas(ctx context.Context) ([]*Manga, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, source, favorite FROM mangas ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mangas: %w", err)
	}
	defer rows.Close()

	var mangas []*Manga
	for rows.Next() {
		m := &Manga{}
		if err := rows.Scan(&m.ID, &m.Title, &m.SourceID, &m.Favorite); err != nil {
			return nil, err
		}
		mangas = append(mangas, m)
	}
	return mangas, rows.Err()
}

// DeleteManga removes a manga and its category links. Ledger records that
// referenced it are kept with a NULL manga id.
func (r *Repository) DeleteManga(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`UPDATE download_stat SET manga_id = NULL WHERE manga_id = ?`,
		`DELETE FROM mangas_categories WHERE manga_id = ?`,
		`DELETE FROM mangas WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete manga %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	r.publishLedger(ctx)
	return nil
}

func (r *Repository) SaveCategory(ctx context.Context, category *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, sort) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, sort = excluded.sort
	`, category.ID, category.Name, category.Order)
	if err != nil {
		return fmt.Errorf("failed to save category %q: %w", category.Name, err)
	}
	return nil
}

// GetCategories returns every category including the system default, in display order.
func (r *Repository) GetCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, sort FROM categories ORDER BY sort, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Order); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SetMangaCategories replaces the categories a manga is filed under. An empty
// list leaves it in the default category.
func (r *Repository) SetMangaCategories(ctx context.Context, mangaID int64, categoryIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mangas_categories WHERE manga_id = ?`, mangaID); err != nil {
		return fmt.Errorf("failed to clear categories of manga %d: %w", mangaID, err)
	}
	for _, id := range categoryIDs {
		if id == DefaultCategoryID {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mangas_categories (manga_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			mangaID, id); err != nil {
			return fmt.Errorf("failed to file manga %d under category %d: %w", mangaID, id, err)
		}
	}
	return tx.Commit()
}

// GetLibraryManga lists favorite manga, one row per category they are filed under.
func (r *Repository) GetLibraryManga(ctx context.Context) ([]LibraryManga, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.title, m.source, m.favorite, COALESCE(mc.category_id, 0) AS category
		FROM mangas m
		LEFT JOIN mangas_categories mc ON mc.manga_id = m.id
		WHERE m.favorite
		ORDER BY m.title, m.id, category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	defer rows.Close()

	var library []LibraryManga
	for rows.Next() {
		var lm LibraryManga
		if err := rows.Scan(&lm.Manga.ID, &lm.Manga.Title, &lm.Manga.SourceID, &lm.Manga.Favorite, &lm.Category); err != nil {
			return nil, err
		}
		library = append(library, lm)
	}
	return library, rows.Err()
}
