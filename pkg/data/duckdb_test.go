package data

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}

	cleanup := func() {
		repo.Close()
	}

	return repo, cleanup
}

func TestSaveAndGetManga(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	manga := &Manga{ID: 1, Title: "Test Manga", SourceID: 2499283573021220255, Favorite: true}
	if err := repo.SaveManga(ctx, manga); err != nil {
		t.Fatalf("Failed to save manga: %v", err)
	}

	retrieved, err := repo.GetManga(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get manga: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Expected manga to be found")
	}
	if *retrieved != *manga {
		t.Errorf("Expected %+v, got %+v", *manga, *retrieved)
	}
}

func TestGetNonExistentManga(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	manga, err := repo.GetManga(context.Background(), 404)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if manga != nil {
		t.Error("Expected manga to be nil for non-existent ID")
	}
}

func TestSaveMangaUpsert(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	manga := &Manga{ID: 1, Title: "Original Title", Favorite: true}
	require.NoError(t, repo.SaveManga(ctx, manga))

	manga.Title = "Updated Title"
	manga.Favorite = false
	require.NoError(t, repo.SaveManga(ctx, manga))

	retrieved, err := repo.GetManga(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", retrieved.Title)
	assert.False(t, retrieved.Favorite)

	all, err := repo.ListMangas(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLibraryMangaPerCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SaveCategory(ctx, &Category{ID: 1, Name: "Reading", Order: 1}))
	require.NoError(t, repo.SaveCategory(ctx, &Category{ID: 2, Name: "Done", Order: 2}))

	require.NoError(t, repo.SaveManga(ctx, &Manga{ID: 10, Title: "Berserk", Favorite: true}))
	require.NoError(t, repo.SaveManga(ctx, &Manga{ID: 11, Title: "Akira", Favorite: true}))
	require.NoError(t, repo.SaveManga(ctx, &Manga{ID: 12, Title: "Not in library", Favorite: false}))
	require.NoError(t, repo.SetMangaCategories(ctx, 10, []int64{1, 2}))

	library, err := repo.GetLibraryManga(ctx)
	require.NoError(t, err)
	require.Len(t, library, 3)

	assert.Equal(t, int64(11), library[0].ID())
	assert.Equal(t, DefaultCategoryID, library[0].Category)
	assert.Equal(t, int64(10), library[1].ID())
	assert.Equal(t, int64(1), library[1].Category)
	assert.Equal(t, int64(10), library[2].ID())
	assert.Equal(t, int64(2), library[2].Category)

	categories, err := repo.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.True(t, categories[0].IsSystem())
	assert.Equal(t, "Reading", categories[1].Name)
}

func TestInsertAndGetStatOperations(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	first, err := repo.InsertStatOperation(ctx, NewDownloadStatOperation(1, base.Add(time.Hour), 100, 5))
	require.NoError(t, err)
	second, err := repo.InsertStatOperation(ctx, NewDownloadStatOperation(1, base, -20, -1))
	require.NoError(t, err)
	assert.Greater(t, second, first, "ids must be monotonic")

	ops, err := repo.GetStatOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	// chronological, not insertion, order
	assert.Equal(t, second, ops[0].ID)
	assert.Equal(t, int64(-20), ops[0].Size)
	assert.Equal(t, first, ops[1].ID)
	assert.Equal(t, base.Add(time.Hour).UnixMilli(), ops[1].Date)
	require.NotNil(t, ops[1].MangaID)
	assert.Equal(t, int64(1), *ops[1].MangaID)
}

func TestDeleteMangaOrphansLedger(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SaveManga(ctx, &Manga{ID: 7, Title: "Gone", Favorite: true}))
	require.NoError(t, repo.SetMangaCategories(ctx, 7, []int64{}))
	_, err := repo.InsertStatOperation(ctx, NewDownloadStatOperation(7, time.Now(), 500, 2))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteManga(ctx, 7))

	manga, err := repo.GetManga(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, manga)

	ops, err := repo.GetStatOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Nil(t, ops[0].MangaID, "ledger record should survive with a null manga id")
	assert.Equal(t, int64(500), ops[0].Size)
}

func TestSubscribeStatOperations(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := repo.InsertStatOperation(ctx, NewDownloadStatOperation(1, time.Now(), 10, 1))
	require.NoError(t, err)

	updates, err := repo.SubscribeStatOperations(ctx)
	require.NoError(t, err)

	select {
	case snapshot := <-updates:
		assert.Len(t, snapshot, 1)
	case <-time.After(time.Second):
		t.Fatal("Expected initial snapshot")
	}

	_, err = repo.InsertStatOperation(ctx, NewDownloadStatOperation(1, time.Now(), 20, 1))
	require.NoError(t, err)

	select {
	case snapshot := <-updates:
		assert.Len(t, snapshot, 2)
	case <-time.After(time.Second):
		t.Fatal("Expected snapshot after insert")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-updates
		return !ok
	}, time.Second, 10*time.Millisecond, "channel should close after cancel")
}

func TestSubscriberOnlySeesLatestSnapshot(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := repo.SubscribeStatOperations(ctx)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := repo.InsertStatOperation(ctx, NewDownloadStatOperation(1, time.Now(), 10, 1))
		require.NoError(t, err)
	}

	snapshot := <-updates
	assert.Len(t, snapshot, 3)
}

func TestSubscriberSnapshotsNeverGoBack(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := repo.SubscribeStatOperations(ctx)
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.InsertStatOperation(context.Background(), NewDownloadStatOperation(1, time.Now(), 10, 1))
			assert.NoError(t, err)
		}()
	}

	last := 0
	timeout := time.After(5 * time.Second)
	for last < writers {
		select {
		case snapshot := <-updates:
			assert.GreaterOrEqual(t, len(snapshot), last, "snapshot went back")
			last = len(snapshot)
		case <-timeout:
			t.Fatalf("Expected a snapshot with %d records, last had %d", writers, last)
		}
	}
	wg.Wait()
}
