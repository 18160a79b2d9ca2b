package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOverviewCountsEachMangaOnce(t *testing.T) {
	items := []Entry{
		inCategory(entry(1, "a", 100, 4), testCatRead),
		inCategory(entry(1, "a", 100, 4), testCatDone),
		entry(2, "b", 0, 0),
		entry(3, "c", 50, 2),
	}

	o := ComputeOverview(items)
	assert.Equal(t, Overview{TotalSize: 150, TotalChapters: 6, MangaCount: 2}, o)
}

func TestComputeLedgerTotals(t *testing.T) {
	totals := ComputeLedgerTotals(dayOps())

	assert.Equal(t, LedgerTotals{
		DownloadedChapters: 7,
		DownloadedSize:     150,
		DeletedChapters:    1,
		DeletedSize:        20,
	}, totals)
}

func TestChartGroupsLargestFirst(t *testing.T) {
	items := []Entry{
		withSource(entry(1, "a", 10, 1), testSourceA),
		withSource(entry(2, "b", 90, 1), testSourceB),
	}

	groups := ChartGroups(items, GroupBySource, "")
	require.Len(t, groups, 2)
	assert.Equal(t, "Beta Comics", groups[0].Label)
	assert.Equal(t, int64(90), groups[0].Size)
}
