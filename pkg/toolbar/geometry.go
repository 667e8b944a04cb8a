package toolbar

import "math"

// Layout constants of the original widget, in points. Terminal hosts
// scale them down to cells.
const (
	MaxVisibleItems = 6
	DefaultHeight   = 44
	SubitemWidth    = 36
	SubitemGap      = 12
	ExpandedHeight  = DefaultHeight + SubitemWidth + 6
)

// Point is a tap location in the host's coordinate space.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle; Width and Height are exclusive.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Geometry describes where the host placed the main row and the
// subitem panel. It carries no state of its own.
type Geometry struct {
	// ViewportWidth is the visible width of both scrollable strips.
	ViewportWidth int
	// ScrollOffset is the main row's horizontal content offset.
	ScrollOffset int
	RowTop       int
	RowHeight    int
	ItemWidth    int

	PanelTop          int
	PanelHeight       int
	PanelScrollOffset int
	SubitemWidth      int
	SubitemGap        int
}

// ItemWidthFor splits the viewport between count items, showing at
// most MaxVisibleItems at once.
func ItemWidthFor(viewportWidth, count int) int {
	if count <= 0 {
		return 0
	}
	if count < MaxVisibleItems {
		return viewportWidth / count
	}
	return viewportWidth / MaxVisibleItems
}

// DefaultGeometry lays out count items in a viewport using the
// original point metrics, with the panel stacked above the row.
func DefaultGeometry(viewportWidth, count int) Geometry {
	return Geometry{
		ViewportWidth: viewportWidth,
		RowTop:        ExpandedHeight - DefaultHeight,
		RowHeight:     DefaultHeight,
		ItemWidth:     ItemWidthFor(viewportWidth, count),
		PanelTop:      0,
		PanelHeight:   SubitemWidth,
		SubitemWidth:  SubitemWidth,
		SubitemGap:    SubitemGap,
	}
}

// ContentWidth is the scrollable width of the main row.
func (g Geometry) ContentWidth(count int) int {
	return g.ItemWidth * count
}

// MaxScrollOffset is the largest useful ScrollOffset for count items.
func (g Geometry) MaxScrollOffset(count int) int {
	if over := g.ContentWidth(count) - g.ViewportWidth; over > 0 {
		return over
	}
	return 0
}

// ItemSlot returns the visible rectangle of main item i.
func (g Geometry) ItemSlot(i int) Rect {
	return Rect{
		X:      i*g.ItemWidth - g.ScrollOffset,
		Y:      g.RowTop,
		Width:  g.ItemWidth,
		Height: g.RowHeight,
	}
}

// PanelMargin is the leading inset of the first subitem slot: centered
// when the subitems fit, a single gap otherwise.
func (g Geometry) PanelMargin(count int) int {
	if count <= 0 {
		return 0
	}
	if count > MaxVisibleItems {
		return g.SubitemGap
	}
	m := (g.ViewportWidth - g.SubitemGap*(count-1) - g.SubitemWidth*count) / 2
	if m < 0 {
		return 0
	}
	return m
}

// SubitemSlots returns the visible rectangles of count subitems.
func (g Geometry) SubitemSlots(count int) []Rect {
	margin := g.PanelMargin(count)
	slots := make([]Rect, count)
	for i := range slots {
		slots[i] = Rect{
			X:      margin + i*(g.SubitemWidth+g.SubitemGap) - g.PanelScrollOffset,
			Y:      g.PanelTop,
			Width:  g.SubitemWidth,
			Height: g.PanelHeight,
		}
	}
	return slots
}

// Resolve maps a tap to an event. itemCount is the number of main items
// and openSubitems the number of subitems in the open panel, zero when
// no panel is shown. Taps outside both strips, past the last item, or
// between subitem slots resolve to EventNone.
func (g Geometry) Resolve(p Point, itemCount, openSubitems int) Event {
	row := Rect{Y: g.RowTop, Width: g.ViewportWidth, Height: g.RowHeight}
	if row.Contains(p) {
		if g.ItemWidth <= 0 {
			return Event{}
		}
		idx := int(math.Floor(float64(p.X+g.ScrollOffset) / float64(g.ItemWidth)))
		if idx < 0 || idx >= itemCount {
			return Event{}
		}
		return Event{Kind: EventTapItem, Index: idx}
	}

	if openSubitems == 0 {
		return Event{}
	}
	panel := Rect{Y: g.PanelTop, Width: g.ViewportWidth, Height: g.PanelHeight}
	if !panel.Contains(p) {
		return Event{}
	}
	for i, slot := range g.SubitemSlots(openSubitems) {
		if slot.Contains(p) {
			return Event{Kind: EventTapSubitem, Index: i}
		}
	}
	return Event{}
}

// ────────────────────────────────────────────────────────────
// Events
// ────────────────────────────────────────────────────────────

// EventKind classifies a resolved tap.
type EventKind int

const (
	EventNone EventKind = iota
	EventTapItem
	EventTapSubitem
)

func (k EventKind) String() string {
	switch k {
	case EventTapItem:
		return "tap-item"
	case EventTapSubitem:
		return "tap-subitem"
	default:
		return "none"
	}
}

// Event is a semantic tap: a main row index or a panel subitem index.
type Event struct {
	Kind  EventKind
	Index int
}

// TapItem is the event for tapping main item i.
func TapItem(i int) Event { return Event{Kind: EventTapItem, Index: i} }

// TapSubitem is the event for tapping subitem j of the open panel.
func TapSubitem(j int) Event { return Event{Kind: EventTapSubitem, Index: j} }
