package services

import (
	"context"
	"fmt"
	"os"

	"github.com/kerbaras/mangastats/pkg/config"
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
	"github.com/kerbaras/mangastats/pkg/storage"
)

// Controller wires the repository, the download folders and the statistics
// model from one configuration
type Controller struct {
	repo      *data.Repository
	sources   *sources.Manager
	downloads *DownloadManager
	stats     *StatsModel
	cfg       *config.Config
}

func NewController(cfg *config.Config) (*Controller, error) {
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}
	repo, err := data.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	srcs := sources.NewManager()
	downloads := NewDownloadManager(storage.NewProvider(cfg.DownloadDir), repo)
	model := NewStatsModel(repo, downloads, srcs, storage.NewScanner(cfg.ScanConcurrency), repo.Preferences())

	return &Controller{
		repo:      repo,
		sources:   srcs,
		downloads: downloads,
		stats:     model,
		cfg:       cfg,
	}, nil
}

func (c *Controller) Stats() *StatsModel {
	return c.stats
}

func (c *Controller) Downloads() *DownloadManager {
	return c.downloads
}

func (c *Controller) Repository() *data.Repository {
	return c.repo
}

func (c *Controller) Sources() *sources.Manager {
	return c.sources
}

func (c *Controller) DownloadDir() string {
	return c.cfg.DownloadDir
}

// AddToLibrary saves manga as a favorite filed under categoryIDs
func (c *Controller) AddToLibrary(ctx context.Context, manga data.Manga, categoryIDs []int64) error {
	manga.Favorite = true
	if err := c.repo.SaveManga(ctx, &manga); err != nil {
		return err
	}
	return c.repo.SetMangaCategories(ctx, manga.ID, categoryIDs)
}

// DeleteManga removes the downloads of one library manga and waits for it
func (c *Controller) DeleteManga(ctx context.Context, mangaID int64) (bool, error) {
	manga, err := c.repo.GetManga(ctx, mangaID)
	if err != nil {
		return false, err
	}
	if manga == nil {
		return false, fmt.Errorf("manga %d not found", mangaID)
	}
	return c.downloads.DeleteManga(ctx, *manga, c.sources.GetOrStub(manga.SourceID))
}

// RecordDownload appends a download operation for a chapter of a known manga
func (c *Controller) RecordDownload(ctx context.Context, mangaID int64, chapterPath string) (data.DownloadStatOperation, error) {
	manga, err := c.repo.GetManga(ctx, mangaID)
	if err != nil {
		return data.DownloadStatOperation{}, err
	}
	if manga == nil {
		return data.DownloadStatOperation{}, fmt.Errorf("manga %d not found", mangaID)
	}
	return c.downloads.RecordDownload(ctx, mangaID, chapterPath)
}

func (c *Controller) Close() error {
	c.stats.Wait()
	return c.repo.Close()
}
