package data

import "time"

// DefaultCategoryID is the system category every uncategorized library manga belongs to.
const DefaultCategoryID int64 = 0

type Manga struct {
	ID       int64
	Title    string
	SourceID int64
	Favorite bool
}

type Category struct {
	ID    int64
	Name  string
	Order int
}

// IsSystem reports whether the category is the built-in default one.
func (c Category) IsSystem() bool {
	return c.ID == DefaultCategoryID
}

// LibraryManga is a favorite manga as seen through one of its categories.
// A manga filed under two categories yields two LibraryManga values.
type LibraryManga struct {
	Manga    Manga
	Category int64
}

func (l LibraryManga) ID() int64 {
	return l.Manga.ID
}

// DownloadStatOperation is one append-only ledger record. Size and Units are
// positive for downloads and negative for deletions. MangaID is nil once the
// manga has been removed from the database.
type DownloadStatOperation struct {
	ID      int64
	MangaID *int64
	Date    int64 // unix milliseconds
	Size    int64
	Units   int64
}

func (o DownloadStatOperation) Time() time.Time {
	return time.UnixMilli(o.Date)
}

// NewDownloadStatOperation builds a record ready for insertion; the id is
// assigned by storage.
func NewDownloadStatOperation(mangaID int64, at time.Time, size, units int64) DownloadStatOperation {
	id := mangaID
	return DownloadStatOperation{
		ID:      -1,
		MangaID: &id,
		Date:    at.UnixMilli(),
		Size:    size,
		Units:   units,
	}
}
