package stats

import "github.com/kerbaras/mangastats/pkg/data"

// DefaultCategoryName labels the system category in grouped views.
const DefaultCategoryName = "Default"

// State is an immutable snapshot of the stats screen. Every transition
// returns a new State; slices are never mutated in place.
type State struct {
	Loading           bool
	Items             []Entry
	GroupMode         GroupMode
	SortMode          SortMode
	Descending        bool
	SearchQuery       string
	ShowNotDownloaded bool
	Operations        []data.DownloadStatOperation
	Dialog            Dialog
	// Anchor is the last individually toggled entry, the start of range selections.
	Anchor *EntryKey
}

func NewState() State {
	return State{Loading: true}
}

// Visible is the filtered, searched and sorted list the user acts on. A manga
// filed under several categories appears once unless grouping by category.
func (s State) Visible() []Entry {
	items := s.Items
	if !s.ShowNotDownloaded {
		var downloaded []Entry
		for _, e := range items {
			if e.HasDownloads() {
				downloaded = append(downloaded, e)
			}
		}
		items = downloaded
	}
	if s.GroupMode != GroupByCategory {
		items = Unique(items)
	}
	items = Search(items, s.SearchQuery, s.GroupMode)
	return Sort(items, s.SortMode, s.Descending)
}

// Groups buckets the visible entries for the active group mode.
func (s State) Groups(defaultName string) []Group {
	return GroupEntries(s.Visible(), s.GroupMode, s.SortMode, s.Descending, defaultName)
}

// Ordered is the visible list in on-screen order, group by group.
func (s State) Ordered() []Entry {
	if s.GroupMode == GroupNone {
		return s.Visible()
	}
	return Flatten(s.Groups(DefaultCategoryName))
}

// Selected lists selected entries, one per manga.
func (s State) Selected() []Entry {
	var selected []Entry
	for _, e := range Unique(s.Items) {
		if e.Selected {
			selected = append(selected, e)
		}
	}
	return selected
}

// SelectionMode is on exactly while something is selected.
func (s State) SelectionMode() bool {
	for _, e := range s.Items {
		if e.Selected {
			return true
		}
	}
	return false
}

// TotalSize is the current on-disk weight of all downloads.
func (s State) TotalSize() int64 {
	return TotalSize(Unique(s.Items))
}

// OperationsFor returns the ledger records of one manga.
func (s State) OperationsFor(mangaID int64) []data.DownloadStatOperation {
	var ops []data.DownloadStatOperation
	for _, op := range s.Operations {
		if op.MangaID != nil && *op.MangaID == mangaID {
			ops = append(ops, op)
		}
	}
	return ops
}

// WithSort applies mode. Picking the active mode again flips the direction,
// picking a new one starts ascending.
func (s State) WithSort(mode SortMode) State {
	if s.SortMode == mode {
		s.Descending = !s.Descending
	} else {
		s.Descending = false
	}
	s.SortMode = mode
	return s
}

func (s State) WithDialog(d Dialog) State {
	s.Dialog = d
	return s
}

// mapItems returns a copy of the state with f applied to every item.
func (s State) mapItems(f func(Entry) Entry) State {
	items := make([]Entry, len(s.Items))
	for i, e := range s.Items {
		items[i] = f(e)
	}
	s.Items = items
	return s
}
