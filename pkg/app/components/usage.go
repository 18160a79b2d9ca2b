package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/mangastats/pkg/app/styles"
)

// UsageBar renders part as a fraction of total, width cells wide.
func UsageBar(part, total int64, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := int(float64(max(part, 0)) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	return styles.UsageBarStyle.Render(strings.Repeat("█", filled)) +
		styles.UsageEmptyStyle.Render(strings.Repeat("░", width-filled))
}

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

type Notice struct {
	Kind NoticeKind
	Text string
}

// Notices keeps the latest status messages shown under the screen.
type Notices struct {
	items []Notice
	limit int
}

func NewNotices(limit int) *Notices {
	return &Notices{limit: max(limit, 1)}
}

func (n *Notices) Push(kind NoticeKind, text string) {
	n.items = append(n.items, Notice{Kind: kind, Text: text})
	if len(n.items) > n.limit {
		n.items = n.items[len(n.items)-n.limit:]
	}
}

func (n *Notices) Errorf(format string, args ...any) {
	n.Push(NoticeError, fmt.Sprintf(format, args...))
}

func (n *Notices) Clear() {
	n.items = nil
}

func (n *Notices) HasActive() bool {
	return len(n.items) > 0
}

func (n *Notices) View() string {
	if len(n.items) == 0 {
		return ""
	}

	lines := make([]string, len(n.items))
	for i, item := range n.items {
		if item.Kind == NoticeError {
			lines[i] = styles.DeletedStyle.Render("Error: " + item.Text)
		} else {
			lines[i] = styles.MutedStyle.Render(item.Text)
		}
	}
	return strings.Join(lines, "\n")
}
