package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
	"github.com/kerbaras/mangastats/pkg/storage"
)

// Ledger is the append side of the download statistics store
type Ledger interface {
	InsertStatOperation(ctx context.Context, op data.DownloadStatOperation) (int64, error)
}

// DownloadManager inspects and removes downloaded chapters on disk and keeps
// the operation ledger in step with every change it makes
type DownloadManager struct {
	provider *storage.Provider
	ledger   Ledger
	now      func() time.Time
}

func NewDownloadManager(provider *storage.Provider, ledger Ledger) *DownloadManager {
	return &DownloadManager{
		provider: provider,
		ledger:   ledger,
		now:      time.Now,
	}
}

func (d *DownloadManager) Provider() *storage.Provider {
	return d.provider
}

// FindMangaDir locates the download folder of a manga, if it exists
func (d *DownloadManager) FindMangaDir(manga data.Manga, source sources.Source) (string, bool) {
	return d.provider.FindMangaDir(manga.Title, source)
}

// DownloadCount returns the number of downloaded chapters of a manga
func (d *DownloadManager) DownloadCount(manga data.Manga, source sources.Source) int {
	dir, ok := d.FindMangaDir(manga, source)
	if !ok {
		return 0
	}
	return d.provider.ChapterCount(dir)
}

// DeleteManga removes every downloaded chapter of a manga and appends the
// matching negative operation. It reports whether an operation was recorded;
// a manga with nothing on disk records nothing.
func (d *DownloadManager) DeleteManga(ctx context.Context, manga data.Manga, source sources.Source) (bool, error) {
	dir, ok := d.FindMangaDir(manga, source)
	if !ok {
		slog.Debug("nothing to delete", "manga", manga.Title, "source", source.Name())
		return false, nil
	}

	size := storage.FolderSize(ctx, dir)
	units := d.provider.ChapterCount(dir)

	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("failed to delete downloads of %q: %w", manga.Title, err)
	}
	slog.Info("deleted downloads", "manga", manga.Title, "source", source.Name(), "bytes", size, "chapters", units)

	if size == 0 && units == 0 {
		return false, nil
	}

	op := data.NewDownloadStatOperation(manga.ID, d.now(), -size, -int64(units))
	if _, err := d.ledger.InsertStatOperation(ctx, op); err != nil {
		return false, fmt.Errorf("failed to record deletion of %q: %w", manga.Title, err)
	}
	return true, nil
}

// RecordDownload appends a positive operation for one freshly downloaded
// chapter, measured from chapterPath (a directory or an archive)
func (d *DownloadManager) RecordDownload(ctx context.Context, mangaID int64, chapterPath string) (data.DownloadStatOperation, error) {
	if _, err := os.Stat(chapterPath); err != nil {
		return data.DownloadStatOperation{}, fmt.Errorf("failed to read chapter: %w", err)
	}

	op := data.NewDownloadStatOperation(mangaID, d.now(), storage.FolderSize(ctx, chapterPath), 1)
	id, err := d.ledger.InsertStatOperation(ctx, op)
	if err != nil {
		return data.DownloadStatOperation{}, fmt.Errorf("failed to record download: %w", err)
	}
	op.ID = id
	return op, nil
}
