package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixEntries() State {
	s := NewState()
	s.Loading = false
	s.Items = []Entry{
		entry(6, "f", 60, 6),
		entry(1, "a", 10, 1),
		entry(4, "d", 40, 4),
		entry(2, "b", 20, 2),
		entry(5, "e", 50, 5),
		entry(3, "c", 30, 3),
	}
	return s
}

func selectedTitles(s State) []string {
	return titles(Sort(s.Selected(), SortByAlphabet, false))
}

func TestRangeSelectionIsInclusive(t *testing.T) {
	s := sixEntries()
	visible := s.Visible()
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, titles(visible))

	s = s.ToggleSelection(visible[2].Key())
	s = s.RangeSelection(visible[5].Key())
	assert.Equal(t, []string{"c", "d", "e", "f"}, selectedTitles(s))

	s = s.ToggleSelection(visible[5].Key())
	assert.Equal(t, []string{"c", "d", "e"}, selectedTitles(s))
	assert.True(t, s.SelectionMode())
}

func TestRangeSelectionBackwards(t *testing.T) {
	s := sixEntries()
	visible := s.Visible()

	s = s.ToggleSelection(visible[4].Key())
	s = s.RangeSelection(visible[1].Key())
	assert.Equal(t, []string{"b", "c", "d", "e"}, selectedTitles(s))
	require.NotNil(t, s.Anchor)
	assert.Equal(t, visible[1].Key(), *s.Anchor)
}

func TestRangeSelectionWithoutAnchorToggles(t *testing.T) {
	s := sixEntries()
	visible := s.Visible()

	s = s.RangeSelection(visible[3].Key())
	assert.Equal(t, []string{"d"}, selectedTitles(s))
}

func TestRangeSelectionNeverDeselects(t *testing.T) {
	s := sixEntries()
	visible := s.Visible()

	s = s.ToggleSelection(visible[0].Key())
	s = s.ToggleSelection(visible[2].Key())
	s = s.RangeSelection(visible[3].Key())
	assert.Equal(t, []string{"a", "c", "d"}, selectedTitles(s))
}

func TestToggleSelectionCoversEveryCategory(t *testing.T) {
	s := NewState()
	s.Items = []Entry{
		inCategory(entry(1, "a", 10, 1), testCatRead),
		inCategory(entry(1, "a", 10, 1), testCatDone),
		entry(2, "b", 10, 1),
	}

	s = s.ToggleSelection(s.Items[1].Key())
	assert.True(t, s.Items[0].Selected)
	assert.True(t, s.Items[1].Selected)
	assert.Len(t, s.Selected(), 1)
}

func TestSelectAllAndInvertOnlyTouchVisible(t *testing.T) {
	s := sixEntries()
	s.SearchQuery = "a"

	s = s.SetAllSelection(true)
	assert.Equal(t, []string{"a"}, selectedTitles(s))

	s.SearchQuery = ""
	s = s.InvertSelection()
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, selectedTitles(s))

	s = s.SetAllSelection(false)
	assert.False(t, s.SelectionMode())
}

func TestTransitionsDoNotMutatePreviousState(t *testing.T) {
	before := sixEntries()
	after := before.SetAllSelection(true)

	assert.Len(t, after.Selected(), 6)
	assert.Empty(t, before.Selected())
}

func TestMarkDeletedKeepsRowWhenShowingNotDownloaded(t *testing.T) {
	s := sixEntries()
	s.ShowNotDownloaded = true
	target := s.Visible()[3]

	s = s.ToggleSelection(target.Key())
	require.True(t, s.SelectionMode())

	s = s.MarkDeleted(map[int64]struct{}{target.MangaID(): {}})
	assert.False(t, s.SelectionMode())
	assert.Empty(t, s.Selected())

	visible := s.Visible()
	require.Len(t, visible, 6)
	i := indexOf(visible, target.Key())
	require.GreaterOrEqual(t, i, 0)
	assert.Zero(t, visible[i].FolderSize)
	assert.Zero(t, visible[i].ChapterCount)
}

func TestMarkDeletedHidesRowOtherwise(t *testing.T) {
	s := sixEntries()
	target := s.Visible()[3]

	s = s.ToggleSelection(target.Key())
	s = s.MarkDeleted(map[int64]struct{}{target.MangaID(): {}})

	assert.False(t, s.SelectionMode())
	assert.NotContains(t, titles(s.Visible()), target.Title())
	assert.Len(t, s.Visible(), 5)
	assert.Equal(t, int64(210-40), s.TotalSize())
}

func TestOrderedFollowsGroups(t *testing.T) {
	s := NewState()
	s.GroupMode = GroupBySource
	s.Items = []Entry{
		withSource(entry(1, "a", 1, 1), testSourceB),
		withSource(entry(2, "b", 1, 1), testSourceA),
		withSource(entry(3, "c", 1, 1), testSourceB),
	}

	assert.Equal(t, []string{"b", "a", "c"}, titles(s.Ordered()))

	s = s.ToggleSelection(EntryKey{MangaID: 2})
	s = s.RangeSelection(EntryKey{MangaID: 1})
	assert.Equal(t, []string{"a", "b"}, selectedTitles(s))
}

func TestToggleGroupSelection(t *testing.T) {
	s := sixEntries()
	members := s.Visible()[:2]

	s = s.ToggleGroupSelection(members)
	assert.Equal(t, []string{"a", "b"}, selectedTitles(s))
	require.NotNil(t, s.Anchor)
	assert.Equal(t, members[1].Key(), *s.Anchor)

	s = s.ToggleGroupSelection(members)
	assert.Empty(t, s.Selected())
}

func TestVisibleDeduplicatesUnlessGroupingByCategory(t *testing.T) {
	s := NewState()
	s.Items = []Entry{
		inCategory(entry(1, "a", 10, 1), testCatRead),
		inCategory(entry(1, "a", 10, 1), testCatDone),
	}

	assert.Len(t, s.Visible(), 1)
	assert.Equal(t, int64(10), s.TotalSize())

	s.GroupMode = GroupByCategory
	assert.Len(t, s.Visible(), 2)
}
