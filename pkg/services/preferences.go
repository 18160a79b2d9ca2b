package services

import (
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/stats"
)

const (
	prefSelectedTab       = "download_stat_selected_tab"
	prefSortMode          = "sort_mode"
	prefGroupMode         = "group_by_mode"
	prefDescending        = "descending_order"
	prefSearchQuery       = "search_query"
	prefShowNotDownloaded = "show_not_downloaded"
)

// Tab is one page of the statistics screen.
type Tab int

const (
	TabOverview Tab = iota
	TabEntries
)

func (t Tab) String() string {
	if t == TabEntries {
		return "Entries"
	}
	return "Overview"
}

type statsPreferences struct {
	tab               data.Preference[int]
	sortMode          data.Preference[stats.SortMode]
	groupMode         data.Preference[stats.GroupMode]
	descending        data.Preference[bool]
	searchQuery       data.Preference[string]
	showNotDownloaded data.Preference[bool]
}

func newStatsPreferences(store *data.PreferenceStore) statsPreferences {
	return statsPreferences{
		tab:               store.Int(prefSelectedTab, int(TabOverview)),
		sortMode:          data.Enum(store, prefSortMode, stats.SortByAlphabet, stats.ParseSortMode),
		groupMode:         data.Enum(store, prefGroupMode, stats.GroupNone, stats.ParseGroupMode),
		descending:        store.Bool(prefDescending, false),
		searchQuery:       store.String(prefSearchQuery, ""),
		showNotDownloaded: store.Bool(prefShowNotDownloaded, false),
	}
}

// apply copies the persisted view settings into s.
func (p statsPreferences) apply(s stats.State) stats.State {
	s.SortMode = p.sortMode.Get()
	s.GroupMode = p.groupMode.Get()
	s.Descending = p.descending.Get()
	s.SearchQuery = p.searchQuery.Get()
	s.ShowNotDownloaded = p.showNotDownloaded.Get()
	return s
}
