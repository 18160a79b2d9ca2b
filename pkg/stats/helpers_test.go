package stats

import (
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
)

var (
	testSourceA = sources.New(1, "Alpha Scans")
	testSourceB = sources.New(2, "Beta Comics")
	testCatRead = data.Category{ID: 1, Name: "Reading", Order: 1}
	testCatDone = data.Category{ID: 2, Name: "Done", Order: 2}
)

func entry(id int64, title string, size int64, chapters int) Entry {
	return Entry{
		Library:      data.LibraryManga{Manga: data.Manga{ID: id, Title: title, SourceID: 1, Favorite: true}},
		Source:       testSourceA,
		Category:     data.Category{ID: data.DefaultCategoryID},
		FolderSize:   size,
		ChapterCount: chapters,
	}
}

func inCategory(e Entry, c data.Category) Entry {
	e.Category = c
	e.Library.Category = c.ID
	return e
}

func withSource(e Entry, s sources.Source) Entry {
	e.Source = s
	e.Library.Manga.SourceID = s.ID()
	return e
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title()
	}
	return out
}

func op(id, mangaID, date, size, units int64) data.DownloadStatOperation {
	m := mangaID
	return data.DownloadStatOperation{ID: id, MangaID: &m, Date: date, Size: size, Units: units}
}
