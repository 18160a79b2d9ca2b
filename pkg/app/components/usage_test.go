package components

import (
	"strings"
	"testing"
)

func TestUsageBar(t *testing.T) {
	bar := UsageBar(5, 10, 10)

	if strings.Count(bar, "█") != 5 {
		t.Errorf("Expected 5 filled cells, got %d", strings.Count(bar, "█"))
	}
	if strings.Count(bar, "░") != 5 {
		t.Errorf("Expected 5 empty cells, got %d", strings.Count(bar, "░"))
	}
}

func TestUsageBarBounds(t *testing.T) {
	if UsageBar(1, 0, 10) != "" {
		t.Error("Expected empty bar for zero total")
	}
	if strings.Count(UsageBar(50, 10, 10), "█") != 10 {
		t.Error("Expected bar to be capped at width")
	}
	if strings.Count(UsageBar(-5, 10, 10), "█") != 0 {
		t.Error("Expected negative part to render empty")
	}
}

func TestNotices(t *testing.T) {
	n := NewNotices(2)
	if n.HasActive() {
		t.Error("Expected no notices")
	}
	if n.View() != "" {
		t.Error("Expected empty view")
	}

	n.Push(NoticeInfo, "first")
	n.Push(NoticeInfo, "second")
	n.Errorf("delete failed: %s", "boom")

	if len(n.items) != 2 {
		t.Fatalf("Expected 2 notices, got %d", len(n.items))
	}
	view := n.View()
	if strings.Contains(view, "first") {
		t.Error("Expected oldest notice to be dropped")
	}
	if !strings.Contains(view, "Error: delete failed: boom") {
		t.Errorf("Expected error notice, got %q", view)
	}

	n.Clear()
	if n.HasActive() {
		t.Error("Expected notices to be cleared")
	}
}
