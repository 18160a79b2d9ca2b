package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/app/styles"
	"github.com/kerbaras/mangastats/pkg/stats"
)

// Row is one line of the entry list: a group header or an entry.
type Row struct {
	Group *stats.Group
	Entry stats.Entry
}

func (r Row) IsGroup() bool {
	return r.Group != nil
}

// BuildRows lays out the visible entries of s, each group headed by its label.
func BuildRows(s stats.State) []Row {
	if s.GroupMode == stats.GroupNone {
		visible := s.Visible()
		rows := make([]Row, len(visible))
		for i, e := range visible {
			rows[i] = Row{Entry: e}
		}
		return rows
	}

	var rows []Row
	for _, g := range s.Groups(stats.DefaultCategoryName) {
		rows = append(rows, Row{Group: &g})
		for _, e := range g.Entries {
			rows = append(rows, Row{Entry: e})
		}
	}
	return rows
}

type EntryList struct {
	Rows   []Row
	Cursor int
	Width  int
	Height int
	// Total is the byte count usage bars are relative to.
	Total int64
	// Extra renders additional lines under an expanded entry.
	Extra func(stats.Entry) string
}

func NewEntryList() *EntryList {
	return &EntryList{
		Rows:   []Row{},
		Cursor: 0,
		Width:  80,
		Height: 20,
	}
}

// SetRows replaces the rows, keeping the cursor on the same entry when it
// is still listed.
func (l *EntryList) SetRows(rows []Row) {
	var key *stats.EntryKey
	var label string
	if cur := l.Current(); cur != nil {
		if cur.IsGroup() {
			label = cur.Group.Label
		} else {
			k := cur.Entry.Key()
			key = &k
		}
	}

	l.Rows = rows
	for i, r := range rows {
		if (key != nil && !r.IsGroup() && r.Entry.Key() == *key) || (label != "" && r.IsGroup() && r.Group.Label == label) {
			l.Cursor = i
			return
		}
	}
	if l.Cursor >= len(rows) && len(rows) > 0 {
		l.Cursor = len(rows) - 1
	}
	if len(rows) == 0 {
		l.Cursor = 0
	}
}

func (l *EntryList) Next() {
	if len(l.Rows) == 0 {
		return
	}
	l.Cursor++
	if l.Cursor >= len(l.Rows) {
		l.Cursor = 0
	}
}

func (l *EntryList) Prev() {
	if len(l.Rows) == 0 {
		return
	}
	l.Cursor--
	if l.Cursor < 0 {
		l.Cursor = len(l.Rows) - 1
	}
}

func (l *EntryList) Current() *Row {
	if len(l.Rows) == 0 || l.Cursor >= len(l.Rows) {
		return nil
	}
	return &l.Rows[l.Cursor]
}

// window returns the slice of rows to draw so that the cursor stays visible.
func (l *EntryList) window() (int, int) {
	height := max(l.Height, 1)
	if len(l.Rows) <= height {
		return 0, len(l.Rows)
	}
	start := min(max(l.Cursor-height/2, 0), len(l.Rows)-height)
	return start, start + height
}

func (l *EntryList) View() string {
	if len(l.Rows) == 0 {
		empty := styles.MutedStyle.Render("No downloads")
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, empty)
	}

	var b strings.Builder
	start, end := l.window()
	for i := start; i < end; i++ {
		line := l.renderRow(l.Rows[i])
		if i == l.Cursor {
			line = styles.CursorStyle.Width(l.Width).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if r := l.Rows[i]; !r.IsGroup() && r.Entry.Expanded {
			b.WriteString(l.renderDetails(r.Entry))
			b.WriteString("\n")
			if l.Extra != nil {
				b.WriteString(l.Extra(r.Entry))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (l *EntryList) renderRow(r Row) string {
	if r.IsGroup() {
		header := fmt.Sprintf("▾ %s · %d manga · %d chapters · %s",
			r.Group.Label, len(stats.Unique(r.Group.Entries)), r.Group.Chapters, humanize.Bytes(uint64(r.Group.Size)))
		return styles.GroupHeaderStyle.Render(header)
	}

	e := r.Entry
	check := "[ ]"
	title := e.Title()
	if e.Selected {
		check = styles.CheckedStyle.Render("[x]")
		title = styles.CheckedStyle.Render(title)
	}

	sizeCol := styles.SizeStyle.Render(fmt.Sprintf("%9s", humanize.Bytes(uint64(e.FolderSize))))
	chapters := styles.MutedStyle.Render(fmt.Sprintf("%4d ch", e.ChapterCount))
	barWidth := max(l.Width/5, 4)
	titleWidth := max(l.Width-barWidth-24, 10)

	return fmt.Sprintf("%s %s %s %s %s", check, padRight(title, titleWidth), chapters, sizeCol, UsageBar(e.FolderSize, l.Total, barWidth))
}

func (l *EntryList) renderDetails(e stats.Entry) string {
	category := e.Category.Name
	if e.Category.IsSystem() {
		category = stats.DefaultCategoryName
	}
	share := 0.0
	if l.Total > 0 {
		share = float64(e.FolderSize) / float64(l.Total) * 100
	}
	return styles.MutedStyle.Render(fmt.Sprintf("      source: %s · category: %s · %.1f%% of downloads",
		e.SourceName(), category, share))
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		runes := []rune(s)
		if width > 1 && len(runes) > width-1 {
			return string(runes[:width-1]) + "…"
		}
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
