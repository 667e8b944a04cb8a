package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/charmbracelet/lipgloss"
)

// renderPanel draws the open subitem panel as a strip of boxes. Boxes
// whose entrance has not started yet are left blank; boxes still
// entering are drawn faint.
func renderPanel(m *Model, g toolbar.Geometry, c toolbarColors, now time.Time) string {
	p := m.tb.Panel()
	if p == nil {
		return ""
	}

	var lines [panelLines]*line
	for k := range lines {
		lines[k] = newLine(c.panelBg)
	}

	x := 0
	for j, slot := range g.SubitemSlots(len(p.Subitems)) {
		if slot.X < 0 || slot.X+slot.Width > m.width {
			continue
		}
		for _, l := range lines {
			l.space(slot.X - x)
		}
		x = slot.X + slot.Width

		progress := 1.0
		if m.appear != nil {
			progress = m.appear.progress(now, j)
		}
		if progress <= 0 {
			for _, l := range lines {
				l.space(slot.Width)
			}
			continue
		}

		sub := p.Subitems[j]
		frame := lipgloss.NewStyle().Foreground(colorTextMuted)
		icon := lipgloss.NewStyle().Foreground(c.tint(sub))
		if progress < 1 {
			frame, icon = frame.Faint(true), icon.Faint(true)
		}

		hotkey := ""
		if n := j - m.panelFirst + 1; n >= 1 && n <= 9 {
			hotkey = strconv.Itoa(n)
		}
		inner := slot.Width - 2
		lines[0].add(frame, "╭"+fill(hotkey, inner, "─", false)+"╮")
		lines[1].add(frame, "│")
		lines[1].add(icon, fill(sub.Icon, inner, " ", true))
		lines[1].add(frame, "│")
		lines[2].add(frame, "╰"+fill(truncate(sub.Label(), inner), inner, "─", true)+"╯")
	}

	out := make([]string, len(lines))
	for k, l := range lines {
		out[k] = l.finish(m.width)
	}
	return strings.Join(out, "\n")
}

// fill pads s with pad to width cells, centered or left-aligned.
func fill(s string, width int, pad string, center bool) string {
	s = truncate(s, width)
	rest := width - lipgloss.Width(s)
	if rest <= 0 {
		return s
	}
	left := 0
	if center {
		left = rest / 2
	}
	return strings.Repeat(pad, left) + s + strings.Repeat(pad, rest-left)
}
