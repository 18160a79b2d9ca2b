package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/stats"
)

// Plot is a rasterized line graph: one row index per column, top row 0.
type Plot struct {
	Width, Height int
	Min, Max      int64
	// Rows[i] is the row of column i, or -1 for an empty column.
	Rows []int
	// Points[i] is the index of the point plotted at column i, or -1.
	Points []int
}

// Rasterize fits points into a width x height grid. Columns between two
// points are interpolated linearly.
func Rasterize(points []stats.GraphPoint, width, height int) Plot {
	p := Plot{Width: width, Height: height, Rows: make([]int, width), Points: make([]int, width)}
	for i := range p.Rows {
		p.Rows[i], p.Points[i] = -1, -1
	}
	if len(points) == 0 || width <= 0 || height <= 0 {
		return p
	}

	p.Min, p.Max = points[0].Value, points[0].Value
	for _, pt := range points {
		p.Min = min(p.Min, pt.Value)
		p.Max = max(p.Max, pt.Value)
	}

	row := func(v int64) int {
		if p.Max == p.Min {
			return height - 1
		}
		return int(float64(p.Max-v) / float64(p.Max-p.Min) * float64(height-1))
	}
	column := func(i int) int {
		if len(points) == 1 {
			return 0
		}
		return i * (width - 1) / (len(points) - 1)
	}

	for i := range points {
		x := column(i)
		p.Rows[x], p.Points[x] = row(points[i].Value), i
		if i == 0 {
			continue
		}
		px := column(i - 1)
		for c := px + 1; c < x; c++ {
			t := float64(c-px) / float64(x-px)
			v := float64(points[i-1].Value) + t*float64(points[i].Value-points[i-1].Value)
			p.Rows[c] = row(int64(v))
		}
	}
	return p
}

// RenderLine draws points as a terminal line graph with a byte-sized axis.
// The point at highlight, if any, is drawn in the accent color.
func RenderLine(points []stats.GraphPoint, width, height, highlight int, accent lipgloss.Color) string {
	if len(points) == 0 {
		return "no operations recorded"
	}

	maxLabel := Bytes(maxValue(points))
	minLabel := Bytes(minValue(points))
	axis := max(len(maxLabel), len(minLabel))
	plotWidth := max(width-axis-2, len(points))

	p := Rasterize(points, plotWidth, height)
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	var b strings.Builder
	for r := 0; r < height; r++ {
		label := ""
		switch r {
		case 0:
			label = maxLabel
		case height - 1:
			label = minLabel
		}
		b.WriteString(strings.Repeat(" ", axis-len(label)) + label + " │")
		for c := 0; c < plotWidth; c++ {
			switch {
			case p.Rows[c] != r:
				b.WriteByte(' ')
			case p.Points[c] >= 0 && p.Points[c] == highlight:
				b.WriteString(accentStyle.Render("◆"))
			case p.Points[c] >= 0:
				b.WriteString("●")
			default:
				b.WriteString("·")
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", axis+1) + "└" + strings.Repeat("─", plotWidth) + "\n")

	first, last := points[0].Label, points[len(points)-1].Label
	gap := max(plotWidth-len(first)-len(last), 1)
	b.WriteString(strings.Repeat(" ", axis+2) + first + strings.Repeat(" ", gap) + last)
	return b.String()
}

// Bytes formats a byte count that may be negative, such as a start balance
// below zero when the ledger holds records of manga outside the library.
func Bytes(v int64) string {
	if v < 0 {
		return "-" + humanize.Bytes(uint64(-v))
	}
	return humanize.Bytes(uint64(v))
}

func maxValue(points []stats.GraphPoint) int64 {
	m := points[0].Value
	for _, p := range points {
		m = max(m, p.Value)
	}
	return m
}

func minValue(points []stats.GraphPoint) int64 {
	m := points[0].Value
	for _, p := range points {
		m = min(m, p.Value)
	}
	return m
}
