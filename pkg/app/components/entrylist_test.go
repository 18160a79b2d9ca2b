package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
	"github.com/kerbaras/mangastats/pkg/stats"
)

func testEntry(id int64, title string, size int64) stats.Entry {
	return stats.Entry{
		Library:      data.LibraryManga{Manga: data.Manga{ID: id, Title: title}},
		Source:       sources.MangaDex,
		FolderSize:   size,
		ChapterCount: 1,
	}
}

func testState() stats.State {
	s := stats.NewState()
	s.Items = []stats.Entry{testEntry(1, "Monster", 300), testEntry(2, "Pluto", 100), testEntry(3, "Blame!", 200)}
	return s
}

func TestNewEntryList(t *testing.T) {
	list := NewEntryList()

	if list == nil {
		t.Fatal("Expected entry list to be created")
	}
	if list.Cursor != 0 {
		t.Errorf("Expected Cursor 0, got %d", list.Cursor)
	}
	if len(list.Rows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(list.Rows))
	}
}

func TestBuildRowsUngrouped(t *testing.T) {
	rows := BuildRows(testState())

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].IsGroup() || rows[0].Entry.Title() != "Blame!" {
		t.Errorf("Expected first row 'Blame!', got %+v", rows[0])
	}
}

func TestBuildRowsGrouped(t *testing.T) {
	s := testState()
	s.GroupMode = stats.GroupBySource

	rows := BuildRows(s)
	if len(rows) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(rows))
	}
	if !rows[0].IsGroup() || rows[0].Group.Label != "MangaDex" {
		t.Errorf("Expected MangaDex header, got %+v", rows[0])
	}
	if rows[0].Group.Size != 600 {
		t.Errorf("Expected group size 600, got %d", rows[0].Group.Size)
	}
}

func TestSetRowsKeepsCursorOnEntry(t *testing.T) {
	list := NewEntryList()
	s := testState()
	list.SetRows(BuildRows(s))
	list.Cursor = 2 // Pluto

	s = s.WithSort(stats.SortBySize)
	list.SetRows(BuildRows(s))

	cur := list.Current()
	if cur == nil || cur.Entry.Title() != "Pluto" {
		t.Fatalf("Expected cursor to follow Pluto, got %+v", cur)
	}
	if list.Cursor != 0 {
		t.Errorf("Expected Cursor 0 after sorting by size, got %d", list.Cursor)
	}
}

func TestSetRowsClampsCursor(t *testing.T) {
	list := NewEntryList()
	list.SetRows(BuildRows(testState()))
	list.Cursor = 2

	list.SetRows([]Row{{Entry: testEntry(5, "Only", 1)}})
	if list.Cursor != 0 {
		t.Errorf("Expected Cursor 0, got %d", list.Cursor)
	}

	list.SetRows(nil)
	if list.Current() != nil {
		t.Error("Expected no current row for an empty list")
	}
}

func TestNextPrevWrap(t *testing.T) {
	list := NewEntryList()
	list.SetRows(BuildRows(testState()))

	list.Prev()
	if list.Cursor != 2 {
		t.Errorf("Expected Prev to wrap to 2, got %d", list.Cursor)
	}
	list.Next()
	if list.Cursor != 0 {
		t.Errorf("Expected Next to wrap to 0, got %d", list.Cursor)
	}

	empty := NewEntryList()
	empty.Next()
	empty.Prev()
	if empty.Cursor != 0 {
		t.Errorf("Expected Cursor 0 on empty list, got %d", empty.Cursor)
	}
}

func TestEntryListView(t *testing.T) {
	list := NewEntryList()
	if !strings.Contains(list.View(), "No downloads") {
		t.Error("Expected empty message")
	}

	s := testState().ToggleSelection(stats.EntryKey{MangaID: 1}).ToggleExpanded(stats.EntryKey{MangaID: 2})
	list.Total = s.TotalSize()
	list.SetRows(BuildRows(s))

	view := list.View()
	for _, want := range []string{"Monster", "Pluto", "Blame!", "[x]", "300 B", "source: MangaDex", "16.7%"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestEntryListViewScrolls(t *testing.T) {
	list := NewEntryList()
	list.Height = 2
	list.SetRows(BuildRows(testState()))
	list.Cursor = 2

	view := list.View()
	if strings.Contains(view, "Blame!") {
		t.Error("Expected first row to scroll out of view")
	}
	if !strings.Contains(view, "Pluto") {
		t.Error("Expected cursor row to be visible")
	}
}
