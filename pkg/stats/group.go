package stats

import (
	"cmp"
	"slices"
)

type Group struct {
	Label    string
	Entries  []Entry
	Size     int64
	Chapters int
}

// GroupLabel is the bucket an entry falls into. The system category is shown
// as defaultName when one is given.
func GroupLabel(e Entry, mode GroupMode, defaultName string) string {
	switch mode {
	case GroupByCategory:
		if e.Category.IsSystem() && defaultName != "" {
			return defaultName
		}
		return e.Category.Name
	case GroupBySource:
		return e.SourceName()
	default:
		return ""
	}
}

// GroupEntries buckets entries by mode, keeping entry order inside each group.
// Groups are ordered by label for alphabetical sorting, otherwise by their
// summed size or chapter count; ties keep first-seen order.
func GroupEntries(entries []Entry, mode GroupMode, sortMode SortMode, descending bool, defaultName string) []Group {
	if mode == GroupNone {
		return nil
	}

	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		label := GroupLabel(e, mode, defaultName)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		g := &groups[i]
		g.Entries = append(g.Entries, e)
		g.Size += e.FolderSize
		g.Chapters += e.ChapterCount
	}

	c := groupComparator(sortMode)
	if descending {
		asc := c
		c = func(a, b Group) int { return asc(b, a) }
	}
	slices.SortStableFunc(groups, c)
	return groups
}

func groupComparator(mode SortMode) func(a, b Group) int {
	switch mode {
	case SortBySize:
		return func(a, b Group) int { return cmp.Compare(a.Size, b.Size) }
	case SortByChapters:
		return func(a, b Group) int { return cmp.Compare(a.Chapters, b.Chapters) }
	default:
		return func(a, b Group) int { return compareTitles(a.Label, b.Label) }
	}
}

// Flatten concatenates group members in group order.
func Flatten(groups []Group) []Entry {
	var flat []Entry
	for _, g := range groups {
		flat = append(flat, g.Entries...)
	}
	return flat
}
