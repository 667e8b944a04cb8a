package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "…" if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

// shortID returns first n characters of an ID string.
func shortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// onOff renders a boolean flag for the header.
func onOff(v bool) string {
	if v {
		return headerOnStyle.Render("on")
	}
	return headerMetaStyle.Render("off")
}

// ────────────────────────────────────────────────────────────
// Line assembly
// ────────────────────────────────────────────────────────────

// line accumulates styled segments and tracks the visible width, so a
// row can be padded to the viewport without re-measuring ANSI output.
type line struct {
	b     strings.Builder
	width int
	bg    lipgloss.Color
}

func newLine(bg lipgloss.Color) *line {
	return &line{bg: bg}
}

// add appends s rendered with st over the line background.
func (l *line) add(st lipgloss.Style, s string) {
	l.b.WriteString(st.Background(l.bg).Render(s))
	l.width += lipgloss.Width(s)
}

// space appends n blank cells.
func (l *line) space(n int) {
	if n <= 0 {
		return
	}
	l.add(lipgloss.NewStyle(), strings.Repeat(" ", n))
}

// cell appends s centered in a field of width cells.
func (l *line) cell(st lipgloss.Style, s string, width int) {
	s = truncate(s, width)
	left := (width - lipgloss.Width(s)) / 2
	l.space(left)
	l.add(st, s)
	l.space(width - left - lipgloss.Width(s))
}

// finish pads the line to width cells.
func (l *line) finish(width int) string {
	l.space(width - l.width)
	return l.b.String()
}
