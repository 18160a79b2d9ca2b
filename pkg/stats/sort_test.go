package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByTitleIgnoresCase(t *testing.T) {
	in := []Entry{entry(1, "beta", 0, 0), entry(2, "Alpha", 0, 0), entry(3, "gamma", 0, 0)}

	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, titles(Sort(in, SortByAlphabet, false)))
	assert.Equal(t, []string{"gamma", "beta", "Alpha"}, titles(Sort(in, SortByAlphabet, true)))
	assert.Equal(t, []string{"beta", "Alpha", "gamma"}, titles(in), "input must not be reordered")
}

func TestSortBySizeRoundTrip(t *testing.T) {
	in := []Entry{entry(1, "a", 30, 1), entry(2, "b", 10, 1), entry(3, "c", 20, 1), entry(4, "d", 5, 1)}

	desc := Sort(in, SortBySize, true)
	assert.Equal(t, []string{"a", "c", "b", "d"}, titles(desc))

	asc := Sort(desc, SortBySize, false)
	assert.Equal(t, []string{"d", "b", "c", "a"}, titles(asc))
	assert.Equal(t, titles(desc), titles(Sort(asc, SortBySize, true)))
}

func TestSortTiesKeepInputOrder(t *testing.T) {
	in := []Entry{entry(1, "x", 10, 3), entry(2, "y", 10, 3), entry(3, "z", 10, 3), entry(4, "w", 1, 1)}

	assert.Equal(t, []string{"w", "x", "y", "z"}, titles(Sort(in, SortBySize, false)))
	assert.Equal(t, []string{"x", "y", "z", "w"}, titles(Sort(in, SortBySize, true)))
	assert.Equal(t, []string{"x", "y", "z", "w"}, titles(Sort(in, SortByChapters, true)))
}

func TestWithSortTogglesDirection(t *testing.T) {
	s := NewState()
	assert.Equal(t, SortByAlphabet, s.SortMode)

	s = s.WithSort(SortByAlphabet)
	assert.True(t, s.Descending, "same mode flips direction")

	s = s.WithSort(SortBySize)
	assert.Equal(t, SortBySize, s.SortMode)
	assert.False(t, s.Descending, "new mode starts ascending")

	s = s.WithSort(SortBySize)
	assert.True(t, s.Descending)
}

func TestParseModes(t *testing.T) {
	for _, m := range []SortMode{SortByAlphabet, SortBySize, SortByChapters} {
		parsed, err := ParseSortMode(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	for _, m := range []GroupMode{GroupNone, GroupByCategory, GroupBySource} {
		parsed, err := ParseGroupMode(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	for _, m := range []GraphGroupMode{GraphNone, GraphByDay, GraphByMonth} {
		parsed, err := ParseGraphGroupMode(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseSortMode("BY_COLOR")
	assert.Error(t, err)
}
