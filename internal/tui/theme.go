package tui

import (
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// Color palette (GitHub dark)
// ────────────────────────────────────────────────────────────
//
// Chrome colors are defined here. Toolbar colors come from the
// resolved toolbar.Appearance and are composited over the palette
// base, since terminals have no alpha.

var (
	// Base
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorYellow = lipgloss.Color("#d29922")
)

// Backdrops the toolbar is composited over. One per blur effect, plus
// the plain base when blur is off.
var (
	baseBackdrop = toolbar.RGB(0x0d, 0x11, 0x17)

	blurBackdrops = map[toolbar.Blur]toolbar.Color{
		toolbar.BlurLight:      toolbar.RGB(0x1c, 0x21, 0x28),
		toolbar.BlurDark:       toolbar.RGB(0x16, 0x1b, 0x22),
		toolbar.BlurExtraLight: toolbar.RGB(0x30, 0x36, 0x3d),
	}
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerOnStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorBgSurface).
			Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// Small-terminal notice
var emptyStateStyle = lipgloss.NewStyle().
	Foreground(colorTextMuted).
	Padding(1, 2)

// ────────────────────────────────────────────────────────────
// Toolbar colors
// ────────────────────────────────────────────────────────────

// toolbarColors is the appearance of one frame, flattened to opaque
// terminal colors.
type toolbarColors struct {
	bg         lipgloss.Color
	panelBg    lipgloss.Color
	tint       func(item toolbar.ActionItem) lipgloss.Color
	unselected lipgloss.Color
	indicator  lipgloss.Color
}

func resolveColors(tb *toolbar.Toolbar) toolbarColors {
	ap := tb.Appearance()

	backdrop := baseBackdrop
	if tb.IsBlurEffectEnabled() {
		if c, ok := blurBackdrops[ap.BlurEffect]; ok {
			backdrop = c
		}
	}
	bg := ap.BackgroundColor.Over(backdrop)

	// The panel sits on the blur layer alone; with blur off it shares
	// the row background.
	panelBg := bg
	if tb.IsBlurEffectEnabled() {
		panelBg = backdrop
	}

	opaque := func(c toolbar.Color) lipgloss.Color {
		return lipgloss.Color(c.Over(bg).Hex())
	}
	return toolbarColors{
		bg:      lipgloss.Color(bg.Hex()),
		panelBg: lipgloss.Color(panelBg.Hex()),
		tint: func(item toolbar.ActionItem) lipgloss.Color {
			return opaque(tb.SelectedTint(item))
		},
		unselected: opaque(ap.UnselectedTintColor),
		indicator:  opaque(ap.IndicatorColor),
	}
}
