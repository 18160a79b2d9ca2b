package screens

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	Range       key.Binding
	SelectAll   key.Binding
	SelectNone  key.Binding
	Invert      key.Binding
	Expand      key.Binding
	Delete      key.Binding
	Search      key.Binding
	Sort        key.Binding
	Reverse     key.Binding
	Group       key.Binding
	ShowAll     key.Binding
	GraphMode   key.Binding
	PieMode     key.Binding
	Settings    key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Reload      key.Binding
	SwitchTab   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous point"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next point"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "select"),
		),
		Range: key.NewBinding(
			key.WithKeys("V", "shift+down", "shift+up"),
			key.WithHelp("V", "select range"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "clear selection"),
		),
		Invert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invert"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "show not downloaded"),
		),
		GraphMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "graph by"),
		),
		PieMode: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "breakdown by"),
		),
		Settings: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "settings"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "close"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R", "ctrl+r"),
			key.WithHelp("R", "rescan"),
		),
		SwitchTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch tab"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// entriesKeys and overviewKeys adapt the help line to the active tab.
type entriesKeys struct{ keyMap }

func (k entriesKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Range, k.Delete, k.Search, k.Sort, k.Group, k.SwitchTab, k.Help, k.Quit}
}

func (k entriesKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Range, k.SelectAll, k.SelectNone, k.Invert},
		{k.Expand, k.Delete, k.Search, k.Sort, k.Reverse, k.Group, k.ShowAll},
		{k.Settings, k.Reload, k.SwitchTab, k.Help, k.Quit},
	}
}

type overviewKeys struct{ keyMap }

func (k overviewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Expand, k.GraphMode, k.PieMode, k.SwitchTab, k.Help, k.Quit}
}

func (k overviewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Expand, k.GraphMode, k.PieMode},
		{k.Settings, k.Reload, k.SwitchTab, k.Help, k.Quit},
	}
}
