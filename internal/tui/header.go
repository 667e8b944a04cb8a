package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	SCROLLTOOLBAR  |  dark  |  selection on  |  exchange off  |  close off  |  blur on
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("SCROLLTOOLBAR")
	sep := headerSepStyle.Render(" │ ")

	parts := []string{
		brand,
		sep, headerMetaStyle.Render(m.tb.Style().Kind.String()),
		sep, headerMetaStyle.Render("selection ") + onOff(m.tb.IsSelectionEnabled()),
		sep, headerMetaStyle.Render("exchange ") + onOff(m.tb.IsItemExchangeEnabled()),
		sep, headerMetaStyle.Render("close ") + onOff(m.tb.IsDismissedOnSubitemTapped()),
		sep, headerMetaStyle.Render("blur ") + onOff(m.tb.IsBlurEffectEnabled()),
	}
	if m.session != "" {
		parts = append(parts, sep, headerMetaStyle.Render(
			fmt.Sprintf("Session %s", shortID(m.session, 8))))
	}

	content := strings.Join(parts, "")

	return headerBarStyle.Width(m.width).MaxHeight(1).Render(content)
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left string
	if m.statusMsg != "" {
		st := statusStyle
		if m.tb.IsAnimating() {
			st = statusWarnStyle
		}
		left = st.Render(m.statusMsg)
	}

	bindings := m.keys.ShortHelp()
	if m.openSubitems() > 0 {
		bindings = m.keys.PanelHelp()
	}
	right := renderHints(bindings, m.width-lipgloss.Width(left)-1)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		MaxHeight(1).
		Render(bar)
}

// renderHints joins as many hints as fit in budget cells.
func renderHints(bindings []key.Binding, budget int) string {
	var parts []string
	used := 0
	for _, b := range bindings {
		h := b.Help()
		w := lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Desc)
		if len(parts) > 0 {
			w += 2
		}
		if used+w > budget {
			break
		}
		used += w
		parts = append(parts,
			hintKeyStyle.Render(h.Key)+" "+hintDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
