package stats

import "strings"

// Search keeps entries whose title contains query, ignoring case. When the
// list is grouped, the group field (source or category name) is matched too.
// An empty query matches everything.
func Search(entries []Entry, query string, group GroupMode) []Entry {
	if query == "" {
		return append([]Entry(nil), entries...)
	}
	q := strings.ToLower(query)

	var found []Entry
	for _, e := range entries {
		if matches(e, q, group) {
			found = append(found, e)
		}
	}
	return found
}

func matches(e Entry, q string, group GroupMode) bool {
	if strings.Contains(strings.ToLower(e.Title()), q) {
		return true
	}
	switch group {
	case GroupBySource:
		return strings.Contains(strings.ToLower(e.SourceName()), q)
	case GroupByCategory:
		return strings.Contains(strings.ToLower(e.Category.Name), q)
	default:
		return false
	}
}
