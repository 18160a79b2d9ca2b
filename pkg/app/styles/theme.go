package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#FF6B9D")
	Secondary  = lipgloss.Color("#C792EA")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Background = lipgloss.Color("#263238")
	Foreground = lipgloss.Color("#EEFFFF")
	Highlight  = lipgloss.Color("#37474F")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Row under the cursor
	CursorStyle = lipgloss.NewStyle().
			Background(Highlight).
			Foreground(Foreground).
			Bold(true)

	// Row checked for a bulk action
	CheckedStyle = lipgloss.NewStyle().
			Foreground(Primary)

	GroupHeaderStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	SizeStyle = lipgloss.NewStyle().
			Foreground(Info)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(1, 2).
			MarginBottom(1)

	DialogStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(1, 2)

	DangerDialogStyle = DialogStyle.
				BorderForeground(Error)

	DownloadedStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	DeletedStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	UsageBarStyle = lipgloss.NewStyle().
			Foreground(Primary)

	UsageEmptyStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(Highlight).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

// DeltaStyle colors a ledger amount: growth green, deletion red.
func DeltaStyle(size int64) lipgloss.Style {
	switch {
	case size > 0:
		return DownloadedStyle
	case size < 0:
		return DeletedStyle
	default:
		return MutedStyle
	}
}
