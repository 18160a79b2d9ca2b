package screens

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/app/components"
	"github.com/kerbaras/mangastats/pkg/app/styles"
	"github.com/kerbaras/mangastats/pkg/chart"
	"github.com/kerbaras/mangastats/pkg/services"
	"github.com/kerbaras/mangastats/pkg/stats"
)

// EntriesScreen lists the per-manga entries with selection and search.
type EntriesScreen struct {
	model *services.StatsModel
	keys  keyMap
	list  *components.EntryList
	input textinput.Model

	width  int
	height int
}

func NewEntriesScreen(model *services.StatsModel, keys keyMap) *EntriesScreen {
	ti := textinput.New()
	ti.Placeholder = "Search manga..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(model.State().SearchQuery)

	s := &EntriesScreen{
		model: model,
		keys:  keys,
		list:  components.NewEntryList(),
		input: ti,
	}
	s.list.Extra = func(e stats.Entry) string {
		points := model.EntrySeries(e, stats.GraphNone)
		if len(points) < 2 {
			return styles.MutedStyle.Render("      no recorded operations")
		}
		return lipgloss.NewStyle().PaddingLeft(6).Render(
			chart.RenderLine(points, max(s.width-10, 20), 4, -1, styles.Primary))
	}
	return s
}

func (s *EntriesScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.Width = width - 2
	s.list.Height = max(height-5, 3)
}

// Searching reports whether the search field has focus.
func (s *EntriesScreen) Searching() bool {
	return s.input.Focused()
}

// Refresh rebuilds the rows from the current state.
func (s *EntriesScreen) Refresh() {
	state := s.model.State()
	s.list.Total = state.TotalSize()
	s.list.SetRows(components.BuildRows(state))
}

func (s *EntriesScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	defer s.Refresh()

	if s.input.Focused() {
		switch keyMsg.String() {
		case "esc":
			s.input.SetValue("")
			s.input.Blur()
			s.model.Search("")
			return nil
		case "enter":
			s.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.model.Search(s.input.Value())
		return cmd
	}

	cur := s.list.Current()
	switch {
	case key.Matches(keyMsg, s.keys.Up):
		s.list.Prev()
	case key.Matches(keyMsg, s.keys.Down):
		s.list.Next()
	case key.Matches(keyMsg, s.keys.Toggle):
		if cur == nil {
			break
		}
		if cur.IsGroup() {
			s.model.ToggleGroupSelection(cur.Group.Entries)
		} else {
			s.model.ToggleSelection(cur.Entry.Key())
		}
	case key.Matches(keyMsg, s.keys.Range):
		if keyMsg.String() == "shift+down" {
			s.list.Next()
		} else if keyMsg.String() == "shift+up" {
			s.list.Prev()
		}
		if cur := s.list.Current(); cur != nil && !cur.IsGroup() {
			s.model.RangeSelection(cur.Entry.Key())
		}
	case key.Matches(keyMsg, s.keys.SelectAll):
		s.model.SetAllSelection(true)
	case key.Matches(keyMsg, s.keys.SelectNone):
		s.model.SetAllSelection(false)
	case key.Matches(keyMsg, s.keys.Invert):
		s.model.InvertSelection()
	case key.Matches(keyMsg, s.keys.Expand):
		if cur != nil && !cur.IsGroup() {
			s.model.ToggleExpanded(cur.Entry.Key())
		}
	case key.Matches(keyMsg, s.keys.Delete):
		switch {
		case s.model.State().SelectionMode():
			s.model.ShowDeleteDialog()
		case cur != nil && cur.IsGroup():
			s.model.ShowDeleteDialog(cur.Group.Entries...)
		case cur != nil:
			s.model.ShowDeleteDialog(cur.Entry)
		}
	case key.Matches(keyMsg, s.keys.Search):
		s.input.Focus()
		return textinput.Blink
	case key.Matches(keyMsg, s.keys.Sort):
		s.model.Sort(s.model.State().SortMode.Next())
	case key.Matches(keyMsg, s.keys.Reverse):
		s.model.Sort(s.model.State().SortMode)
	case key.Matches(keyMsg, s.keys.Group):
		s.model.GroupBy(s.model.State().GroupMode.Next())
	case key.Matches(keyMsg, s.keys.ShowAll):
		s.model.ToggleShowNotDownloaded()
	case keyMsg.String() == "esc":
		s.model.SetAllSelection(false)
	}
	return nil
}

func (s *EntriesScreen) View() string {
	state := s.model.State()

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	search := inputStyle.Render(s.input.View())

	direction := "↑"
	if state.Descending {
		direction = "↓"
	}
	status := styles.MutedStyle.Render("sort: " + state.SortMode.Label() + " " + direction +
		" · group: " + state.GroupMode.Label())
	if state.ShowNotDownloaded {
		status += styles.MutedStyle.Render(" · showing not downloaded")
	}
	if selected := state.Selected(); len(selected) > 0 {
		status += "  " + styles.CheckedStyle.Render(
			humanize.Comma(int64(len(selected)))+" selected · "+humanize.Bytes(uint64(stats.TotalSize(selected))))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, search, "  ", status),
		s.list.View(),
	)
}
