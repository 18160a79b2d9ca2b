package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/stats"
)

// Slice is one share of the storage breakdown.
type Slice struct {
	Label string
	Size  int64
	Share float64
	Color color.RGBA
}

// Slices turns groups into colored shares of their summed size. Empty groups
// are left out.
func Slices(groups []stats.Group) []Slice {
	var total int64
	var kept []stats.Group
	for _, g := range groups {
		if g.Size > 0 {
			kept = append(kept, g)
			total += g.Size
		}
	}

	colors := Palette(len(kept))
	slices := make([]Slice, len(kept))
	for i, g := range kept {
		slices[i] = Slice{
			Label: g.Label,
			Size:  g.Size,
			Share: float64(g.Size) / float64(total),
			Color: colors[i],
		}
	}
	return slices
}

// RenderBreakdown draws the shares as one stacked bar followed by a legend.
func RenderBreakdown(slices []Slice, width int) string {
	if len(slices) == 0 {
		return "nothing downloaded"
	}

	var bar strings.Builder
	used := 0
	for i, s := range slices {
		n := int(s.Share*float64(width) + 0.5)
		if i == len(slices)-1 {
			n = width - used
		}
		n = max(min(n, width-used), 0)
		used += n
		bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(s.Color))).Render(strings.Repeat("█", n)))
	}

	lines := []string{bar.String()}
	for _, s := range slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(s.Color))).Render("■")
		lines = append(lines, fmt.Sprintf("%s %s  %s (%.1f%%)", swatch, s.Label, humanize.Bytes(uint64(s.Size)), s.Share*100))
	}
	return strings.Join(lines, "\n")
}
