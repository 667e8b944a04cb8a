package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the toolbar host reacts to.
type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Tap       key.Binding
	Subitem   key.Binding
	Dismiss   key.Binding
	Selection key.Binding
	Exchange  key.Binding
	DismissOn key.Binding
	Blur      key.Binding
	Style     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "tap"),
		),
		Subitem: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "subitem"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Selection: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "selection"),
		),
		Exchange: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exchange"),
		),
		DismissOn: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "auto-close"),
		),
		Blur: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blur"),
		),
		Style: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "style"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is what the footer shows.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Tap, k.Subitem, k.Dismiss, k.Selection, k.Exchange, k.DismissOn, k.Style, k.Quit}
}

// PanelHelp replaces ShortHelp while a panel is open.
func (k keyMap) PanelHelp() []key.Binding {
	return []key.Binding{k.Subitem, k.Dismiss, k.Exchange, k.DismissOn, k.Quit}
}
