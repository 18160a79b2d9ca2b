// Package stats derives the download statistics views: sorted, grouped and
// searchable per-manga entries, selection state and ledger time series.
package stats

import (
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
)

// EntryKey identifies one row: a manga seen through one category.
type EntryKey struct {
	MangaID    int64
	CategoryID int64
}

// Entry is the in-memory projection of one library manga's downloads.
type Entry struct {
	Library      data.LibraryManga
	Source       sources.Source
	Category     data.Category
	FolderSize   int64
	ChapterCount int
	Selected     bool
	Expanded     bool
}

func (e Entry) Key() EntryKey {
	return EntryKey{MangaID: e.Library.Manga.ID, CategoryID: e.Library.Category}
}

func (e Entry) MangaID() int64 {
	return e.Library.Manga.ID
}

func (e Entry) Title() string {
	return e.Library.Manga.Title
}

func (e Entry) SourceName() string {
	if e.Source == nil {
		return ""
	}
	return e.Source.Name()
}

func (e Entry) HasDownloads() bool {
	return e.ChapterCount > 0 || e.FolderSize > 0
}

// Unique keeps the first entry of every manga, dropping the copies a manga
// gets for each additional category.
func Unique(entries []Entry) []Entry {
	seen := make(map[int64]struct{}, len(entries))
	unique := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.MangaID()]; ok {
			continue
		}
		seen[e.MangaID()] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}

func TotalSize(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.FolderSize
	}
	return total
}

func TotalChapters(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.ChapterCount
	}
	return total
}

func ids(entries []Entry) map[int64]struct{} {
	set := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		set[e.MangaID()] = struct{}{}
	}
	return set
}
