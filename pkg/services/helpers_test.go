package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/mangastats/pkg/config"
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
	"github.com/kerbaras/mangastats/pkg/storage"
)

func setupController(t *testing.T) (*Controller, func()) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		DownloadDir:     filepath.Join(dir, "downloads"),
		Database:        filepath.Join(dir, "test.db"),
		ScanConcurrency: 2,
		LogFile:         filepath.Join(dir, "test.log"),
	}
	c, err := NewController(cfg)
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}

	cleanup := func() {
		c.Close()
	}
	return c, cleanup
}

// writeChapter creates a chapter folder holding one page of size bytes.
func writeChapter(t *testing.T, p *storage.Provider, manga data.Manga, chapter string, size int) string {
	t.Helper()

	dir := filepath.Join(p.MangaDir(manga.Title, sources.MangaDex), chapter)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create chapter dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "001.jpg"), make([]byte, size), 0o644); err != nil {
		t.Fatalf("Failed to write page: %v", err)
	}
	return dir
}

func addManga(t *testing.T, c *Controller, id int64, title string, categories ...int64) data.Manga {
	t.Helper()

	manga := data.Manga{ID: id, Title: title, SourceID: sources.MangaDexSourceID, Favorite: true}
	if err := c.AddToLibrary(context.Background(), manga, categories); err != nil {
		t.Fatalf("Failed to add manga: %v", err)
	}
	return manga
}

type mockLedger struct {
	insertFunc func(ctx context.Context, op data.DownloadStatOperation) (int64, error)
	inserted   []data.DownloadStatOperation
}

func (m *mockLedger) InsertStatOperation(ctx context.Context, op data.DownloadStatOperation) (int64, error) {
	m.inserted = append(m.inserted, op)
	if m.insertFunc != nil {
		return m.insertFunc(ctx, op)
	}
	return int64(len(m.inserted)), nil
}

type mockDownloads struct {
	findMangaDirFunc  func(manga data.Manga, source sources.Source) (string, bool)
	downloadCountFunc func(manga data.Manga, source sources.Source) int
	deleteMangaFunc   func(ctx context.Context, manga data.Manga, source sources.Source) (bool, error)
}

func (m *mockDownloads) FindMangaDir(manga data.Manga, source sources.Source) (string, bool) {
	if m.findMangaDirFunc != nil {
		return m.findMangaDirFunc(manga, source)
	}
	return "", false
}

func (m *mockDownloads) DownloadCount(manga data.Manga, source sources.Source) int {
	if m.downloadCountFunc != nil {
		return m.downloadCountFunc(manga, source)
	}
	return 0
}

func (m *mockDownloads) DeleteManga(ctx context.Context, manga data.Manga, source sources.Source) (bool, error) {
	if m.deleteMangaFunc != nil {
		return m.deleteMangaFunc(ctx, manga, source)
	}
	return false, nil
}
