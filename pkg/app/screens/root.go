package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangastats/pkg/app/components"
	"github.com/kerbaras/mangastats/pkg/app/styles"
	"github.com/kerbaras/mangastats/pkg/services"
	"github.com/kerbaras/mangastats/pkg/stats"
)

// Messages
type loadedMsg struct {
	err error
}

type changedMsg struct{}

type deleteFailedMsg struct {
	err error
}

type watchStoppedMsg struct {
	err error
}

type resolvedMsg struct {
	titles map[int64]string
}

type RootScreen struct {
	ctx   context.Context
	model *services.StatsModel

	overview *OverviewScreen
	entries  *EntriesScreen
	dialogs  *DialogView
	notices  *components.Notices

	keys keyMap
	help help.Model

	loaded bool
	width  int
	height int
}

func NewRootScreen(ctx context.Context, model *services.StatsModel) *RootScreen {
	keys := newKeyMap()
	return &RootScreen{
		ctx:      ctx,
		model:    model,
		overview: NewOverviewScreen(model, keys),
		entries:  NewEntriesScreen(model, keys),
		dialogs:  NewDialogView(),
		notices:  components.NewNotices(3),
		keys:     keys,
		help:     help.New(),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.load, r.waitForChange, r.waitForError)
}

// Commands
func (r *RootScreen) load() tea.Msg {
	return loadedMsg{err: r.model.Load(r.ctx)}
}

func (r *RootScreen) watch() tea.Msg {
	return watchStoppedMsg{err: r.model.Watch(r.ctx)}
}

func (r *RootScreen) waitForChange() tea.Msg {
	select {
	case <-r.model.Changes():
		return changedMsg{}
	case <-r.ctx.Done():
		return nil
	}
}

func (r *RootScreen) waitForError() tea.Msg {
	select {
	case err := <-r.model.Errors():
		return deleteFailedMsg{err: err}
	case <-r.ctx.Done():
		return nil
	}
}

// resolve looks up the titles of the manga referenced by ops.
func (r *RootScreen) resolve(ops []stats.Dialog) tea.Cmd {
	return func() tea.Msg {
		titles := make(map[int64]string)
		for _, d := range ops {
			for _, op := range dialogOperations(d) {
				if op.MangaID == nil {
					continue
				}
				if _, ok := titles[*op.MangaID]; ok {
					continue
				}
				manga, err := r.model.FindManga(r.ctx, op.MangaID)
				if err != nil || manga == nil {
					continue
				}
				titles[*op.MangaID] = manga.Title
			}
		}
		return resolvedMsg{titles: titles}
	}
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.help.Width = msg.Width
		r.overview.SetSize(msg.Width, msg.Height-6)
		r.entries.SetSize(msg.Width, msg.Height-6)
		return r, nil

	case loadedMsg:
		if msg.err != nil {
			r.notices.Errorf("%s", msg.err)
			return r, nil
		}
		r.loaded = true
		r.entries.Refresh()
		return r, r.watch

	case watchStoppedMsg:
		if msg.err != nil {
			r.notices.Errorf("%s", msg.err)
		}
		return r, nil

	case changedMsg:
		r.entries.Refresh()
		return r, r.waitForChange

	case deleteFailedMsg:
		r.notices.Errorf("%s", msg.err)
		return r, r.waitForError

	case resolvedMsg:
		r.dialogs.SetTitles(msg.titles)
		return r, nil

	case openDialogMsg:
		r.model.ShowDialog(msg.dialog)
		r.dialogs.SetTitles(nil)
		return r, r.resolve([]stats.Dialog{msg.dialog})

	case tea.KeyMsg:
		if d := r.model.State().Dialog; d != nil {
			return r, r.updateDialog(d, msg)
		}
		if r.entries.Searching() {
			return r, r.entries.Update(msg)
		}

		switch {
		case key.Matches(msg, r.keys.Quit):
			return r, tea.Quit
		case key.Matches(msg, r.keys.SwitchTab):
			r.model.SetTab((r.model.Tab() + 1) % 2)
			return r, nil
		case key.Matches(msg, r.keys.Help):
			r.help.ShowAll = !r.help.ShowAll
			return r, nil
		case key.Matches(msg, r.keys.Settings):
			r.model.OpenSettings()
			return r, nil
		case key.Matches(msg, r.keys.Reload):
			r.notices.Clear()
			return r, r.load
		}
	}

	if r.model.Tab() == services.TabEntries {
		return r, r.entries.Update(msg)
	}
	return r, r.overview.Update(msg)
}

func (r *RootScreen) updateDialog(d stats.Dialog, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, r.keys.Quit) && msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch d.(type) {
	case stats.DeleteDialog:
		switch {
		case key.Matches(msg, r.keys.Confirm):
			r.model.ConfirmDelete(r.ctx)
		case key.Matches(msg, r.keys.Cancel):
			r.model.DismissDialog()
		}
	case stats.SettingsDialog:
		s := r.model.State()
		switch {
		case key.Matches(msg, r.keys.Sort):
			r.model.Sort(s.SortMode.Next())
		case key.Matches(msg, r.keys.Reverse):
			r.model.Sort(s.SortMode)
		case key.Matches(msg, r.keys.Group):
			r.model.GroupBy(s.GroupMode.Next())
		case msg.String() == "n":
			r.model.ToggleShowNotDownloaded()
		case key.Matches(msg, r.keys.Cancel), key.Matches(msg, r.keys.Settings), key.Matches(msg, r.keys.Expand):
			r.model.DismissDialog()
		}
	default:
		if key.Matches(msg, r.keys.Cancel) || key.Matches(msg, r.keys.Expand) || key.Matches(msg, r.keys.Quit) {
			r.model.DismissDialog()
		}
	}
	return nil
}

func (r *RootScreen) View() string {
	if r.width == 0 {
		return "Loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.MarginBottom(0).Render("📊 Download statistics"), "  ", r.renderTabs())

	var content string
	state := r.model.State()
	switch {
	case !r.loaded && state.Loading:
		content = styles.MutedStyle.Render("Scanning downloads...")
	case state.Dialog != nil:
		content = lipgloss.Place(r.width, max(r.height-6, 1), lipgloss.Center, lipgloss.Center,
			r.dialogs.Render(state, r.width))
	case r.model.Tab() == services.TabEntries:
		content = r.entries.View()
	default:
		content = r.overview.View()
	}

	var helpView string
	if r.model.Tab() == services.TabEntries {
		helpView = r.help.View(entriesKeys{r.keys})
	} else {
		helpView = r.help.View(overviewKeys{r.keys})
	}

	out := fmt.Sprintf("%s\n\n%s", header, content)
	if r.notices.HasActive() {
		out += "\n" + r.notices.View()
	}
	return out + "\n" + styles.HelpStyle.Render(helpView)
}

func (r *RootScreen) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, tab := range []services.Tab{services.TabOverview, services.TabEntries} {
		if tab == r.model.Tab() {
			tabs = append(tabs, styles.ActiveTabStyle.Render(tab.String()))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(tab.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
