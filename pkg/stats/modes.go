package stats

import "fmt"

type SortMode int

const (
	SortByAlphabet SortMode = iota
	SortBySize
	SortByChapters
)

func (m SortMode) String() string {
	switch m {
	case SortBySize:
		return "BY_SIZE"
	case SortByChapters:
		return "BY_CHAPTERS"
	default:
		return "BY_ALPHABET"
	}
}

// Label is the short human readable name.
func (m SortMode) Label() string {
	switch m {
	case SortBySize:
		return "size"
	case SortByChapters:
		return "chapters"
	default:
		return "title"
	}
}

// Next cycles title -> size -> chapters -> title.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "BY_ALPHABET", "alphabet", "title", "name":
		return SortByAlphabet, nil
	case "BY_SIZE", "size":
		return SortBySize, nil
	case "BY_CHAPTERS", "chapters", "count":
		return SortByChapters, nil
	}
	return SortByAlphabet, fmt.Errorf("unknown sort mode %q", s)
}

type GroupMode int

const (
	GroupNone GroupMode = iota
	GroupByCategory
	GroupBySource
)

func (m GroupMode) String() string {
	switch m {
	case GroupByCategory:
		return "BY_CATEGORY"
	case GroupBySource:
		return "BY_SOURCE"
	default:
		return "NONE"
	}
}

func (m GroupMode) Label() string {
	switch m {
	case GroupByCategory:
		return "category"
	case GroupBySource:
		return "source"
	default:
		return "none"
	}
}

// Next cycles none -> category -> source -> none.
func (m GroupMode) Next() GroupMode {
	return (m + 1) % 3
}

func ParseGroupMode(s string) (GroupMode, error) {
	switch s {
	case "NONE", "none", "":
		return GroupNone, nil
	case "BY_CATEGORY", "category":
		return GroupByCategory, nil
	case "BY_SOURCE", "source":
		return GroupBySource, nil
	}
	return GroupNone, fmt.Errorf("unknown group mode %q", s)
}

// GraphGroupMode buckets ledger operations for charting.
type GraphGroupMode int

const (
	GraphNone GraphGroupMode = iota
	GraphByDay
	GraphByMonth
)

func (m GraphGroupMode) String() string {
	switch m {
	case GraphByDay:
		return "day"
	case GraphByMonth:
		return "month"
	default:
		return "none"
	}
}

func (m GraphGroupMode) Next() GraphGroupMode {
	return (m + 1) % 3
}

func ParseGraphGroupMode(s string) (GraphGroupMode, error) {
	switch s {
	case "none", "":
		return GraphNone, nil
	case "day":
		return GraphByDay, nil
	case "month":
		return GraphByMonth, nil
	}
	return GraphNone, fmt.Errorf("unknown graph grouping %q", s)
}
