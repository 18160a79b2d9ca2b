package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/app/styles"
	"github.com/kerbaras/mangastats/pkg/chart"
	"github.com/kerbaras/mangastats/pkg/services"
	"github.com/kerbaras/mangastats/pkg/stats"
)

type openDialogMsg struct {
	dialog stats.Dialog
}

// OverviewScreen shows library totals, the ledger summary, the storage
// breakdown and the storage graph.
type OverviewScreen struct {
	model *services.StatsModel
	keys  keyMap

	graphMode stats.GraphGroupMode
	pieMode   stats.GroupMode
	// highlight is the index of the selected graph point
	highlight int

	width  int
	height int
}

func NewOverviewScreen(model *services.StatsModel, keys keyMap) *OverviewScreen {
	return &OverviewScreen{
		model:     model,
		keys:      keys,
		graphMode: stats.GraphByDay,
		pieMode:   stats.GroupBySource,
		highlight: -1,
		width:     80,
		height:    24,
	}
}

func (s *OverviewScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *OverviewScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	points := s.model.Series(s.graphMode)
	switch {
	case key.Matches(keyMsg, s.keys.GraphMode):
		s.graphMode = s.graphMode.Next()
		s.highlight = -1
	case key.Matches(keyMsg, s.keys.PieMode):
		if s.pieMode == stats.GroupBySource {
			s.pieMode = stats.GroupByCategory
		} else {
			s.pieMode = stats.GroupBySource
		}
	case key.Matches(keyMsg, s.keys.Left):
		if s.highlight < 0 {
			s.highlight = len(points) - 1
		} else if s.highlight > 0 {
			s.highlight--
		}
	case key.Matches(keyMsg, s.keys.Right):
		if s.highlight < len(points)-1 {
			s.highlight++
		}
	case key.Matches(keyMsg, s.keys.Expand):
		if s.highlight >= 0 && s.highlight < len(points) {
			d := points[s.highlight].Ref
			return func() tea.Msg { return openDialogMsg{dialog: d} }
		}
	}
	return nil
}

func (s *OverviewScreen) View() string {
	state := s.model.State()
	overview := stats.ComputeOverview(state.Items)
	totals := stats.ComputeLedgerTotals(state.Operations)

	summary := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render("Overview"),
		fmt.Sprintf("%s on disk · %d chapters · %d manga",
			styles.SizeStyle.Render(humanize.Bytes(uint64(overview.TotalSize))),
			overview.TotalChapters, overview.MangaCount),
		styles.DownloadedStyle.Render(fmt.Sprintf("↓ downloaded %d chapters · %s",
			totals.DownloadedChapters, humanize.Bytes(uint64(totals.DownloadedSize)))),
		styles.DeletedStyle.Render(fmt.Sprintf("✕ deleted %d chapters · %s",
			totals.DeletedChapters, humanize.Bytes(uint64(totals.DeletedSize)))),
	))

	breakdown := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render("By "+s.pieMode.Label()),
		chart.RenderBreakdown(chart.Slices(stats.ChartGroups(state.Items, s.pieMode, stats.DefaultCategoryName)), max(s.width/2-8, 10)),
	))

	points := s.model.Series(s.graphMode)
	graphHeight := max(s.height-lipgloss.Height(summary)-6, 5)
	var caption strings.Builder
	caption.WriteString("Storage over time · by " + s.graphMode.String())
	if s.highlight >= 0 && s.highlight < len(points) {
		p := points[s.highlight]
		caption.WriteString(fmt.Sprintf(" · %s: %s", p.Label, chart.Bytes(p.Value)))
	}
	graph := lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render(caption.String()),
		chart.RenderLine(points, max(s.width-4, 20), graphHeight, s.highlight, styles.Primary),
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top, summary, " ", breakdown)
	return lipgloss.JoinVertical(lipgloss.Left, top, graph)
}
