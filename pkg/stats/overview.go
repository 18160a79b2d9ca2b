package stats

import "github.com/kerbaras/mangastats/pkg/data"

type Overview struct {
	TotalSize     int64
	TotalChapters int
	// MangaCount counts manga with at least one downloaded chapter.
	MangaCount int
}

func ComputeOverview(entries []Entry) Overview {
	unique := Unique(entries)
	o := Overview{
		TotalSize:     TotalSize(unique),
		TotalChapters: TotalChapters(unique),
	}
	for _, e := range unique {
		if e.ChapterCount > 0 {
			o.MangaCount++
		}
	}
	return o
}

type LedgerTotals struct {
	DownloadedChapters int64
	DownloadedSize     int64
	DeletedChapters    int64
	DeletedSize        int64
}

// ComputeLedgerTotals sums downloads and deletions separately. Deletion
// figures are reported as positive magnitudes.
func ComputeLedgerTotals(ops []data.DownloadStatOperation) LedgerTotals {
	var t LedgerTotals
	for _, op := range ops {
		switch {
		case op.Size > 0:
			t.DownloadedChapters += op.Units
			t.DownloadedSize += op.Size
		case op.Size < 0:
			t.DeletedChapters -= op.Units
			t.DeletedSize -= op.Size
		}
	}
	return t
}

// ChartGroups feeds the pie chart: by source over unique manga, by category
// over every category row, largest first.
func ChartGroups(items []Entry, mode GroupMode, defaultName string) []Group {
	if mode == GroupBySource {
		items = Unique(items)
	}
	return GroupEntries(items, mode, SortBySize, true, defaultName)
}
