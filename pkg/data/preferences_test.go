package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

const (
	red color = iota
	blue
)

func (c color) String() string {
	if c == blue {
		return "BLUE"
	}
	return "RED"
}

func parseColor(s string) (color, error) {
	switch s {
	case "RED":
		return red, nil
	case "BLUE":
		return blue, nil
	}
	return red, errors.New("unknown color")
}

func TestPreferenceDefaults(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	prefs := repo.Preferences()

	assert.Equal(t, "", prefs.String("search_query", "").Get())
	assert.Equal(t, 3, prefs.Int("tab", 3).Get())
	assert.True(t, prefs.Bool("flag", true).Get())
	assert.Equal(t, blue, Enum(prefs, "color", blue, parseColor).Get())
	assert.False(t, prefs.Int("tab", 3).IsSet())
}

func TestPreferenceSetGetDelete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	prefs := repo.Preferences()

	query := prefs.String("search_query", "")
	require.NoError(t, query.Set("berserk"))
	assert.Equal(t, "berserk", query.Get())
	assert.True(t, query.IsSet())

	require.NoError(t, query.Set("vagabond"))
	assert.Equal(t, "vagabond", query.Get())

	require.NoError(t, query.Delete())
	assert.Equal(t, "", query.Get())
	assert.False(t, query.IsSet())

	tab := prefs.Int("tab", 0)
	require.NoError(t, tab.Set(1))
	assert.Equal(t, 1, tab.Get())

	c := Enum(prefs, "color", red, parseColor)
	require.NoError(t, c.Set(blue))
	assert.Equal(t, blue, c.Get())
}

func TestPreferenceMalformedFallsBack(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	prefs := repo.Preferences()

	require.NoError(t, prefs.String("tab", "").Set("not-a-number"))
	assert.Equal(t, 5, prefs.Int("tab", 5).Get())

	require.NoError(t, prefs.String("color", "").Set("GREEN"))
	assert.Equal(t, blue, Enum(prefs, "color", blue, parseColor).Get())
}

func TestToggle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	flag := repo.Preferences().Bool("show_not_downloaded", false)

	v, err := Toggle(flag)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Toggle(flag)
	require.NoError(t, err)
	assert.False(t, v)
	assert.False(t, flag.Get())
}
