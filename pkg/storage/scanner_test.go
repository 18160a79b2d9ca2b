package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerSizesKeepInputOrder(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for i, size := range []int{10, 0, 30, 40, 50} {
		dir := filepath.Join(root, string(rune('a'+i)))
		if size > 0 {
			writeFile(t, filepath.Join(dir, "1.jpg"), size)
		}
		paths = append(paths, dir)
	}
	paths = append(paths, "")

	sizes, err := NewScanner(2).Sizes(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 0, 30, 40, 50, 0}, sizes)
}

func TestScannerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(0).Sizes(ctx, []string{t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
