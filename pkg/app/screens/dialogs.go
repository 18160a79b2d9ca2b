package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/app/styles"
	"github.com/kerbaras/mangastats/pkg/chart"
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/stats"
)

const deletedEntry = "entry was deleted"

// DialogView renders the overlay dialogs of the statistics screen.
type DialogView struct {
	// titles maps manga ids referenced by the open dialog to their titles;
	// nil while they are being resolved
	titles map[int64]string
	labels stats.Labeler
}

func NewDialogView() *DialogView {
	return &DialogView{}
}

func (v *DialogView) SetTitles(titles map[int64]string) {
	v.titles = titles
}

// dialogOperations lists the ledger records a dialog refers to.
func dialogOperations(d stats.Dialog) []data.DownloadStatOperation {
	switch d := d.(type) {
	case stats.OperationDialog:
		return []data.DownloadStatOperation{d.Op}
	case stats.MultiOperationDialog:
		return d.Ops
	default:
		return nil
	}
}

func (v *DialogView) Render(s stats.State, width int) string {
	boxWidth := min(max(width-10, 30), 70)

	switch d := s.Dialog.(type) {
	case stats.DeleteDialog:
		return styles.DangerDialogStyle.Width(boxWidth).Render(v.renderDelete(d))
	case stats.OperationDialog:
		return styles.DialogStyle.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Operation"),
			v.renderOperation(d.Op),
			"",
			styles.HelpStyle.Render("esc: close"),
		))
	case stats.MultiOperationDialog:
		lines := []string{styles.TitleStyle.Render(fmt.Sprintf("%d operations", len(d.Ops)))}
		var total int64
		for _, op := range d.Ops {
			lines = append(lines, v.renderOperation(op))
			total += op.Size
		}
		lines = append(lines, "", "net: "+renderDelta(total), styles.HelpStyle.Render("esc: close"))
		return styles.DialogStyle.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	case stats.SeriesStartDialog:
		return styles.DialogStyle.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Start"),
			fmt.Sprintf("Downloads weighed %s before the first recorded operation.",
				chart.Bytes(d.Balance)),
			"",
			styles.HelpStyle.Render("esc: close"),
		))
	case stats.SettingsDialog:
		return styles.DialogStyle.Width(boxWidth).Render(renderSettings(s))
	default:
		return ""
	}
}

func (v *DialogView) renderDelete(d stats.DeleteDialog) string {
	var total int64
	var names []string
	for _, e := range stats.Unique(d.Entries) {
		total += e.FolderSize
		names = append(names, "• "+e.Title())
	}
	if len(names) > 8 {
		names = append(names[:8], fmt.Sprintf("  and %d more", len(names)-8))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Foreground(styles.Error).Render("Delete downloads?"),
		strings.Join(names, "\n"),
		"",
		fmt.Sprintf("This frees %s. Chapters stay in the library.", humanize.Bytes(uint64(total))),
		styles.HelpStyle.Render("y: delete • esc: cancel"),
	)
}

func (v *DialogView) renderOperation(op data.DownloadStatOperation) string {
	title := v.title(op.MangaID)
	when := v.labels.Operation(op.Time())
	units := op.Units
	verb := "downloaded"
	if op.Size < 0 {
		verb = "deleted"
		units = -units
	}
	return fmt.Sprintf("%s  %s  %s %d ch  %s",
		styles.MutedStyle.Render(when), title, verb, units, renderDelta(op.Size))
}

func (v *DialogView) title(id *int64) string {
	if id == nil {
		return styles.WarningStyle.Render(deletedEntry)
	}
	if v.titles == nil {
		return styles.MutedStyle.Render("…")
	}
	if t, ok := v.titles[*id]; ok {
		return t
	}
	return styles.WarningStyle.Render(deletedEntry)
}

func renderDelta(size int64) string {
	sign := "+"
	abs := size
	if size < 0 {
		sign = "-"
		abs = -size
	}
	return styles.DeltaStyle(size).Render(sign + humanize.Bytes(uint64(abs)))
}

func renderSettings(s stats.State) string {
	direction := "ascending"
	if s.Descending {
		direction = "descending"
	}
	check := "[ ]"
	if s.ShowNotDownloaded {
		check = "[x]"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Settings"),
		fmt.Sprintf("s  sort by     %s", s.SortMode.Label()),
		fmt.Sprintf("r  direction   %s", direction),
		fmt.Sprintf("g  group by    %s", s.GroupMode.Label()),
		fmt.Sprintf("n  %s show manga without downloads", check),
		"",
		styles.HelpStyle.Render("esc: close"),
	)
}
