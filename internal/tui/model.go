package tui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/charmbracelet/bubbles/key"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// Layout
// ────────────────────────────────────────────────────────────

// Cell metrics. The toolbar is anchored to the bottom of the screen,
// directly above the footer, with the panel stacked above the row.
const (
	headerLines   = 1
	footerLines   = 1
	rowLines      = 3
	panelLines    = 3
	panelGapLines = 1

	subitemCells    = 7
	subitemGapCells = 2

	minWidth  = 20
	minHeight = headerLines + footerLines + rowLines + panelGapLines + panelLines
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Options configures a Model.
type Options struct {
	// Styles is the list the style key cycles through. Defaults to
	// light and dark.
	Styles []toolbar.Style
	// Observer receives every non-empty effect transcript after the
	// model has applied it.
	Observer func(*toolbar.Toolbar, []toolbar.Effect)
	// SessionID is shown in the header when set.
	SessionID string
	Logger    *slog.Logger
	// Now is the animation clock. Defaults to time.Now.
	Now func() time.Time
}

// Model is the root BubbleTea model hosting a toolbar. The toolbar
// owns all state transitions; the model only resolves input into
// taps and plays back the effects each transition returns.
type Model struct {
	tb      *toolbar.Toolbar
	keys    keyMap
	styles  []toolbar.Style
	observe func(*toolbar.Toolbar, []toolbar.Effect)
	session string
	logger  *slog.Logger
	now     func() time.Time

	// UI state
	width      int
	height     int
	rowFirst   int // first visible main item
	panelFirst int // first visible subitem

	// Animations
	selection *selectionAnim
	appear    *appearAnim
	ticking   bool

	// Status
	statusMsg string
	quitting  bool
}

// NewModel creates a TUI model for tb.
func NewModel(tb *toolbar.Toolbar, opts Options) Model {
	m := Model{
		tb:        tb,
		keys:      defaultKeyMap(),
		styles:    opts.Styles,
		observe:   opts.Observer,
		session:   opts.SessionID,
		logger:    opts.Logger,
		now:       opts.Now,
		statusMsg: fmt.Sprintf("%d items", tb.Len()),
	}
	if len(m.styles) == 0 {
		m.styles = []toolbar.Style{toolbar.LightStyle, toolbar.DarkStyle}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Toolbar returns the hosted toolbar.
func (m Model) Toolbar() *toolbar.Toolbar { return m.tb }

// geometry describes where View places the row and the panel, in cells.
func (m Model) geometry() toolbar.Geometry {
	g := toolbar.Geometry{
		ViewportWidth: m.width,
		RowHeight:     rowLines,
		ItemWidth:     toolbar.ItemWidthFor(m.width, m.tb.Len()),
		PanelHeight:   panelLines,
		SubitemWidth:  subitemCells,
		SubitemGap:    subitemGapCells,
	}
	g.RowTop = m.height - footerLines - rowLines
	g.PanelTop = g.RowTop - panelGapLines - panelLines
	g.ScrollOffset = m.rowFirst * g.ItemWidth
	g.PanelScrollOffset = m.panelFirst * (subitemCells + subitemGapCells)
	return g
}

func (m Model) visibleItems() int {
	return min(m.tb.Len(), toolbar.MaxVisibleItems)
}

// drawn reports whether the press at p landed on something View drew.
// The row draws whole items only, and the panel skips clipped slots, so
// the geometry alone would also hit blank cells.
func (m Model) drawn(g toolbar.Geometry, p toolbar.Point, ev toolbar.Event) bool {
	switch ev.Kind {
	case toolbar.EventTapItem:
		return p.X < min(m.visibleItems()*g.ItemWidth, m.width)
	case toolbar.EventTapSubitem:
		slot := g.SubitemSlots(m.openSubitems())[ev.Index]
		return slot.X >= 0 && slot.X+slot.Width <= m.width
	default:
		return false
	}
}

func (m Model) visibleSubitems(count int) int {
	fit := (m.width - subitemGapCells) / (subitemCells + subitemGapCells)
	return clamp(fit, 1, max(count, 1))
}

func (m Model) openSubitems() int {
	if p := m.tb.Panel(); p != nil {
		return len(p.Subitems)
	}
	return 0
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollRow(0)
		m.scrollPanel(0)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey maps key bindings onto toolbar events and settings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		if i := m.tb.SelectedItemIndex(); i > 0 {
			cmd := m.apply(m.tb.Handle(toolbar.TapItem(i - 1)))
			return m, cmd
		}

	case key.Matches(msg, m.keys.Next):
		if i := m.tb.SelectedItemIndex(); i < m.tb.Len()-1 {
			cmd := m.apply(m.tb.Handle(toolbar.TapItem(i + 1)))
			return m, cmd
		}

	case key.Matches(msg, m.keys.Tap):
		cmd := m.apply(m.tb.Handle(toolbar.TapItem(m.tb.SelectedItemIndex())))
		return m, cmd

	case key.Matches(msg, m.keys.Subitem):
		j := int(msg.String()[0] - '1')
		cmd := m.apply(m.tb.Handle(toolbar.TapSubitem(m.panelFirst + j)))
		return m, cmd

	case key.Matches(msg, m.keys.Dismiss):
		cmd := m.apply(m.tb.DismissSubitems())
		return m, cmd

	case key.Matches(msg, m.keys.Selection):
		on := !m.tb.IsSelectionEnabled()
		m.statusMsg = "Selection " + flagWord(on)
		cmd := m.apply(m.tb.SetSelectionEnabled(on))
		return m, cmd

	case key.Matches(msg, m.keys.Exchange):
		on := !m.tb.IsItemExchangeEnabled()
		m.statusMsg = "Exchange " + flagWord(on)
		cmd := m.apply(m.tb.SetItemExchangeEnabled(on))
		return m, cmd

	case key.Matches(msg, m.keys.DismissOn):
		on := !m.tb.IsDismissedOnSubitemTapped()
		m.statusMsg = "Close on subitem tap " + flagWord(on)
		cmd := m.apply(m.tb.SetDismissedOnSubitemTapped(on))
		return m, cmd

	case key.Matches(msg, m.keys.Blur):
		on := !m.tb.IsBlurEffectEnabled()
		m.statusMsg = "Blur " + flagWord(on)
		cmd := m.apply(m.tb.SetBlurEffectEnabled(on))
		return m, cmd

	case key.Matches(msg, m.keys.Style):
		next := m.nextStyle()
		m.statusMsg = "Style " + next.Kind.String()
		cmd := m.apply(m.tb.SetStyle(next))
		return m, cmd
	}

	return m, nil
}

func (m Model) nextStyle() toolbar.Style {
	cur := m.tb.Style().Kind
	for i, s := range m.styles {
		if s.Kind == cur {
			return m.styles[(i+1)%len(m.styles)]
		}
	}
	return m.styles[0]
}

func flagWord(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// handleMouse turns left presses into taps and wheel motion into
// scrolling of whichever strip is under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	g := m.geometry()
	inPanel := msg.Y >= g.PanelTop && msg.Y < g.PanelTop+g.PanelHeight && m.openSubitems() > 0

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		if inPanel {
			m.scrollPanel(-1)
		} else {
			m.scrollRow(-1)
		}
		return m, nil

	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		if inPanel {
			m.scrollPanel(1)
		} else {
			m.scrollRow(1)
		}
		return m, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		p := toolbar.Point{X: msg.X, Y: msg.Y}
		ev := g.Resolve(p, m.tb.Len(), m.openSubitems())
		if !m.drawn(g, p, ev) {
			return m, nil
		}
		cmd := m.apply(m.tb.Handle(ev))
		return m, cmd
	}

	return m, nil
}

func (m *Model) scrollRow(delta int) {
	m.rowFirst = clamp(m.rowFirst+delta, 0, m.tb.Len()-m.visibleItems())
}

func (m *Model) scrollPanel(delta int) {
	n := m.openSubitems()
	m.panelFirst = clamp(m.panelFirst+delta, 0, max(n-m.visibleSubitems(n), 0))
}

// revealSelected scrolls the row so the selected item is visible.
func (m *Model) revealSelected() {
	i := m.tb.SelectedItemIndex()
	switch {
	case i < m.rowFirst:
		m.rowFirst = i
	case i >= m.rowFirst+m.visibleItems():
		m.rowFirst = i - m.visibleItems() + 1
	}
}

// handleFrame advances running animations and ends the selection
// animation once it has played out.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	m.ticking = false
	now := m.now()

	var cmds []tea.Cmd
	if m.selection != nil && m.selection.done(now) {
		cmds = append(cmds, m.apply(m.tb.CompleteSelectionAnimation()))
		m.selection = nil
	}
	if m.appear != nil && m.appear.done(now) {
		m.appear = nil
	}
	cmds = append(cmds, m.schedule())
	return m, tea.Batch(cmds...)
}

// ────────────────────────────────────────────────────────────
// Effects
// ────────────────────────────────────────────────────────────

// apply plays back a transition's effects in order and schedules
// animation frames if any were started.
func (m *Model) apply(effects []toolbar.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	now := m.now()

	for _, e := range effects {
		switch e.Kind {
		case toolbar.EffectAnimateSelection:
			m.selection = &selectionAnim{from: e.From, to: e.Index, start: now, duration: e.Duration}

		case toolbar.EffectSettleIndicator:
			m.selection = nil

		case toolbar.EffectShowPanel:
			m.panelFirst = 0

		case toolbar.EffectPlayAppear:
			m.appear = &appearAnim{start: now, delays: e.Delays, duration: e.Duration}

		case toolbar.EffectHidePanel:
			m.appear = nil
			m.panelFirst = 0

		case toolbar.EffectDidSelect:
			m.statusMsg = "Selected " + e.Item.Label()
			m.revealSelected()

		case toolbar.EffectSwapItems:
			m.statusMsg = fmt.Sprintf("%s moved to slot %d", e.Item.Label(), e.Index+1)

		case toolbar.EffectInvokeAction:
			m.logger.Info("action invoked", "item", e.Item.Identifier, "index", e.Index)
		}
	}

	if m.observe != nil {
		m.observe(m.tb, effects)
	}
	return m.schedule()
}

// schedule requests the next frame while an animation is running and
// no frame is already pending.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || (m.selection == nil && m.appear == nil) {
		return nil
	}
	m.ticking = true
	return nextFrame()
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return emptyStateStyle.Render(
			fmt.Sprintf("Terminal too small (need %dx%d)", minWidth, minHeight))
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	g := m.geometry()
	now := m.now()
	colors := resolveColors(m.tb)

	parts := []string{header}
	filler := g.RowTop - headerLines
	if m.openSubitems() > 0 {
		filler = g.PanelTop - headerLines
	}
	if filler > 0 {
		parts = append(parts, lipgloss.NewStyle().Height(filler).Render(""))
	}
	if m.openSubitems() > 0 {
		parts = append(parts, renderPanel(&m, g, colors, now))
		parts = append(parts, newLine(colors.panelBg).finish(m.width))
	}
	parts = append(parts, renderRow(&m, g, colors, now), footer)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
