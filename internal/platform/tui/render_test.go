package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickwell/internal/core"
)

func TestScreenRendererShape(t *testing.T) {
	s := core.NewScreen(20, 4)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(6, 0, "red", core.ColorRed)
	s.DrawTextColored(0, 2, "cyan", core.ColorCyan)
	s.SetColored(19, 3, '#', core.ColorOrange)

	out := NewScreenRenderer(nil).Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() has %d lines, expected 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d width = %d, expected 20", i, w)
		}
	}
	if !strings.Contains(out, "plain") || !strings.Contains(out, "red") || !strings.Contains(out, "#") {
		t.Errorf("Render() lost text: %q", out)
	}
}

func TestScreenRendererUnknownColor(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.SetColored(0, 0, 'x', core.Color(200))

	out := NewScreenRenderer(nil).Render(s)
	if lipgloss.Width(out) != 3 || !strings.Contains(out, "x") {
		t.Errorf("Render() = %q", out)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"abcdef", 4, "abcdef"},
		{"", 4, "  "},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{12*time.Minute + 500*time.Millisecond, "12:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}
