package stats

import (
	"cmp"
	"slices"
	"strings"
)

// Comparator orders entries by mode; descending reverses it. Used with a
// stable sort, ties keep their input order in both directions.
func Comparator(mode SortMode, descending bool) func(a, b Entry) int {
	var c func(a, b Entry) int
	switch mode {
	case SortBySize:
		c = func(a, b Entry) int { return cmp.Compare(a.FolderSize, b.FolderSize) }
	case SortByChapters:
		c = func(a, b Entry) int { return cmp.Compare(a.ChapterCount, b.ChapterCount) }
	default:
		c = func(a, b Entry) int { return compareTitles(a.Title(), b.Title()) }
	}
	if descending {
		return func(a, b Entry) int { return c(b, a) }
	}
	return c
}

func compareTitles(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Sort returns a stably sorted copy.
func Sort(entries []Entry, mode SortMode, descending bool) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, Comparator(mode, descending))
	return sorted
}
