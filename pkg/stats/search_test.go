package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchMatchesTitleIgnoringCase(t *testing.T) {
	in := []Entry{entry(1, "One Piece", 1, 1), entry(2, "Berserk", 1, 1), entry(3, "Piece of Cake", 1, 1)}

	assert.Equal(t, []string{"One Piece", "Piece of Cake"}, titles(Search(in, "PIECE", GroupNone)))
	assert.Len(t, Search(in, "", GroupNone), 3)
	assert.Empty(t, Search(in, "naruto", GroupNone))
}

func TestSearchIsIdempotent(t *testing.T) {
	in := []Entry{entry(1, "Monster", 1, 1), entry(2, "Pluto", 1, 1), entry(3, "20th Century Boys", 1, 1)}

	for _, q := range []string{"o", "mon", "", "zzz"} {
		once := Search(in, q, GroupNone)
		assert.Equal(t, once, Search(once, q, GroupNone), "query %q", q)
	}
}

func TestSearchMatchesGroupField(t *testing.T) {
	a := withSource(entry(1, "Monster", 1, 1), testSourceA)
	b := withSource(entry(2, "Pluto", 1, 1), testSourceB)
	in := []Entry{a, b}

	assert.Empty(t, Search(in, "beta", GroupNone))
	assert.Equal(t, []string{"Pluto"}, titles(Search(in, "beta", GroupBySource)))

	c := inCategory(entry(3, "Vagabond", 1, 1), testCatDone)
	assert.Equal(t, []string{"Vagabond"}, titles(Search([]Entry{a, c}, "done", GroupByCategory)))
}
