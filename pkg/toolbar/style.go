package toolbar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ────────────────────────────────────────────────────────────
// Colors
// ────────────────────────────────────────────────────────────

// Color is a straight (non-premultiplied) RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Clear is fully transparent.
var Clear = Color{}

// White returns a gray of the given whiteness and alpha, both in [0,1].
func White(white, alpha float64) Color {
	w := unit(white)
	return Color{R: w, G: w, B: w, A: unit(alpha)}
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("parsing color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Over composites c on top of an opaque background.
func (c Color) Over(bg Color) Color {
	a := float64(c.A) / 255
	mix := func(fg, b uint8) uint8 {
		return uint8(math.Round(float64(fg)*a + float64(b)*(1-a)))
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 255}
}

func unit(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Blur names the backdrop effect behind the toolbar.
type Blur int

const (
	BlurLight Blur = iota
	BlurDark
	BlurExtraLight
)

func (b Blur) String() string {
	switch b {
	case BlurLight:
		return "light"
	case BlurDark:
		return "dark"
	case BlurExtraLight:
		return "extra-light"
	default:
		return fmt.Sprintf("blur(%d)", int(b))
	}
}

// ────────────────────────────────────────────────────────────
// Styles
// ────────────────────────────────────────────────────────────

// StyleKind selects one of the built-in styles or a custom one.
type StyleKind int

const (
	StyleLight StyleKind = iota
	StyleDark
	StyleCustom
)

func (k StyleKind) String() string {
	switch k {
	case StyleLight:
		return "light"
	case StyleDark:
		return "dark"
	case StyleCustom:
		return "custom"
	default:
		return fmt.Sprintf("style(%d)", int(k))
	}
}

// CustomStyle carries every value a custom style must provide.
type CustomStyle struct {
	BackgroundColor     Color
	BlurEffect          Blur
	TintColor           Color
	UnselectedTintColor Color
	SelectionIndicator  Color
}

// Style is light, dark, or custom. Custom is read only for StyleCustom.
type Style struct {
	Kind   StyleKind
	Custom CustomStyle
}

var (
	LightStyle = Style{Kind: StyleLight}
	DarkStyle  = Style{Kind: StyleDark}
)

// NewCustomStyle wraps c in a Style.
func NewCustomStyle(c CustomStyle) Style {
	return Style{Kind: StyleCustom, Custom: c}
}

// Appearance is the fully resolved set of values a renderer needs.
type Appearance struct {
	BackgroundColor     Color
	BlurEffect          Blur
	TintColor           Color
	UnselectedTintColor Color
	IndicatorColor      Color
}

// ResolveStyle maps a style to concrete values. It is pure.
func ResolveStyle(s Style) Appearance {
	switch s.Kind {
	case StyleDark:
		return Appearance{
			BackgroundColor:     White(0.2, 0.2),
			BlurEffect:          BlurDark,
			TintColor:           White(1, 1),
			UnselectedTintColor: White(1, 1),
			IndicatorColor:      White(0.6, 0.6),
		}
	case StyleCustom:
		return Appearance{
			BackgroundColor:     s.Custom.BackgroundColor,
			BlurEffect:          s.Custom.BlurEffect,
			TintColor:           s.Custom.TintColor,
			UnselectedTintColor: s.Custom.UnselectedTintColor,
			IndicatorColor:      s.Custom.SelectionIndicator,
		}
	default:
		return Appearance{
			BackgroundColor:     Clear,
			BlurEffect:          BlurLight,
			TintColor:           White(1, 1),
			UnselectedTintColor: White(1, 1),
			IndicatorColor:      White(0.8, 0.3),
		}
	}
}
