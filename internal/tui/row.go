package tui

import (
	"strings"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/charmbracelet/lipgloss"
)

// renderRow draws the main row: icons, titles and the indicator track.
func renderRow(m *Model, g toolbar.Geometry, c toolbarColors, now time.Time) string {
	items := m.tb.Items()
	selected := m.tb.SelectedItemIndex()
	selecting := m.tb.IsSelectionEnabled()

	open := -1
	if p := m.tb.Panel(); p != nil {
		open = p.ParentIndex
	}

	icons, titles := newLine(c.bg), newLine(c.bg)
	last := min(m.rowFirst+m.visibleItems(), len(items))
	for i := m.rowFirst; i < last; i++ {
		it := items[i]

		st := lipgloss.NewStyle().Foreground(c.unselected)
		if i == selected && selecting {
			st = st.Foreground(c.tint(it)).Bold(true)
		}

		icon := it.Icon
		if it.IsExpandable() {
			if i == open {
				icon += " ▾"
			} else {
				icon += " ▴"
			}
		}
		icons.cell(st, icon, g.ItemWidth)

		titleStyle := lipgloss.NewStyle().Foreground(colorTextDim)
		if i == selected && selecting {
			titleStyle = titleStyle.Foreground(colorText)
		}
		titles.cell(titleStyle, it.Label(), g.ItemWidth-1)
		titles.space(1)
	}

	return strings.Join([]string{
		icons.finish(m.width),
		titles.finish(m.width),
		renderIndicator(m, g, c, now),
	}, "\n")
}

// renderIndicator draws the selection indicator under the selected
// item. While a selection animation runs, a thinner overlay slides from
// the old slot to the new one in its place.
func renderIndicator(m *Model, g toolbar.Geometry, c toolbarColors, now time.Time) string {
	l := newLine(c.bg)
	if !m.tb.IsSelectionEnabled() && m.selection == nil {
		return l.finish(m.width)
	}

	mark := "━"
	x := g.ItemSlot(m.tb.SelectedItemIndex()).X
	if a := m.selection; a != nil {
		mark = "─"
		x = lerp(g.ItemSlot(a.from).X, g.ItemSlot(a.to).X, a.progress(now))
	}

	start, end := max(x, 0), min(x+g.ItemWidth, m.width)
	if end > start {
		l.space(start)
		l.add(lipgloss.NewStyle().Foreground(c.indicator), strings.Repeat(mark, end-start))
	}
	return l.finish(m.width)
}
