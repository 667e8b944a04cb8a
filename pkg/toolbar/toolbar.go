package toolbar

import (
	"context"
	"io"
	"log/slog"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/timeutil"
)

// Panel is the open subitem panel.
type Panel struct {
	ParentIndex int
	Subitems    []ActionItem
}

func (p *Panel) clone() *Panel {
	if p == nil {
		return nil
	}
	return &Panel{ParentIndex: p.ParentIndex, Subitems: cloneItems(p.Subitems)}
}

// State is a deep-copied snapshot of a toolbar.
type State struct {
	Items                      []ActionItem
	SelectedIndex              int
	Panel                      *Panel
	IsSelectionEnabled         bool
	IsItemExchangeEnabled      bool
	IsDismissedOnSubitemTapped bool
	IsBlurEffectEnabled        bool
	IsAnimating                bool
	Style                      Style
}

// Option configures a Toolbar built by New.
type Option func(*Toolbar)

// WithDelegate sets the observer notified around every transition.
func WithDelegate(d Delegate) Option {
	return func(t *Toolbar) { t.delegate = d }
}

// WithSelectionEnabled turns the persistent selection highlight on.
func WithSelectionEnabled(on bool) Option {
	return func(t *Toolbar) { t.selectionEnabled = on }
}

// WithItemExchange lets subitem taps swap into the main row.
func WithItemExchange(on bool) Option {
	return func(t *Toolbar) { t.exchangeEnabled = on }
}

// WithDismissOnSubitemTap closes the panel after a subitem tap that did
// not dispatch an action.
func WithDismissOnSubitemTap(on bool) Option {
	return func(t *Toolbar) { t.dismissOnSubitemTap = on }
}

// WithStyle sets the initial style.
func WithStyle(s Style) Option {
	return func(t *Toolbar) { t.style = s }
}

// WithBlurEffect shows or hides the blur backdrop.
func WithBlurEffect(on bool) Option {
	return func(t *Toolbar) { t.blurEnabled = on }
}

// WithLogger sets the logger transitions are traced to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(t *Toolbar) {
		if l != nil {
			t.logger = l
		}
	}
}

// Toolbar owns the toolbar state and is its only mutator. Every
// transition fires delegate hooks synchronously and returns the ordered
// effects the renderer has to play.
type Toolbar struct {
	items    []ActionItem
	selected int
	panel    *Panel

	selectionEnabled    bool
	exchangeEnabled     bool
	dismissOnSubitemTap bool
	blurEnabled         bool
	style               Style
	appearance          Appearance

	// animating is set while a selection animation is in flight.
	animating bool

	delegate Delegate
	logger   *slog.Logger

	// tx collects effects of the transition in progress; nested calls
	// made from delegates or actions append to it.
	tx *[]Effect
}

// New builds a toolbar over items. An empty list is a contract violation.
func New(items []ActionItem, opts ...Option) (*Toolbar, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	t := &Toolbar{
		items:       cloneItems(items),
		blurEnabled: true,
		style:       LightStyle,
		delegate:    NopDelegate{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.delegate == nil {
		t.delegate = NopDelegate{}
	}
	t.appearance = ResolveStyle(t.style)
	return t, nil
}

// ────────────────────────────────────────────────────────────
// Read-only accessors
// ────────────────────────────────────────────────────────────

// SelectedItemIndex is the index of the selected main item.
func (t *Toolbar) SelectedItemIndex() int { return t.selected }

// Len is the number of main items; it never changes.
func (t *Toolbar) Len() int { return len(t.items) }

// Item returns a copy of main item i.
func (t *Toolbar) Item(i int) (ActionItem, bool) {
	if i < 0 || i >= len(t.items) {
		return ActionItem{}, false
	}
	return t.items[i].Clone(), true
}

// Items returns a copy of the main row.
func (t *Toolbar) Items() []ActionItem { return cloneItems(t.items) }

// Panel returns a copy of the open panel, or nil.
func (t *Toolbar) Panel() *Panel { return t.panel.clone() }

// IsAnimating reports whether a selection animation is in flight.
func (t *Toolbar) IsAnimating() bool { return t.animating }

func (t *Toolbar) IsSelectionEnabled() bool         { return t.selectionEnabled }
func (t *Toolbar) IsItemExchangeEnabled() bool      { return t.exchangeEnabled }
func (t *Toolbar) IsDismissedOnSubitemTapped() bool { return t.dismissOnSubitemTap }
func (t *Toolbar) IsBlurEffectEnabled() bool        { return t.blurEnabled }
func (t *Toolbar) Style() Style                     { return t.style }

// Appearance is the resolved current style.
func (t *Toolbar) Appearance() Appearance { return t.appearance }

// BackgroundColor is derived from the style and cannot be set directly.
func (t *Toolbar) BackgroundColor() Color { return t.appearance.BackgroundColor }

// Height is the toolbar height in points for the current panel state.
func (t *Toolbar) Height() int {
	if t.panel != nil {
		return ExpandedHeight
	}
	return DefaultHeight
}

// State returns a snapshot of the toolbar.
func (t *Toolbar) State() State {
	return State{
		Items:                      cloneItems(t.items),
		SelectedIndex:              t.selected,
		Panel:                      t.panel.clone(),
		IsSelectionEnabled:         t.selectionEnabled,
		IsItemExchangeEnabled:      t.exchangeEnabled,
		IsDismissedOnSubitemTapped: t.dismissOnSubitemTap,
		IsBlurEffectEnabled:        t.blurEnabled,
		IsAnimating:                t.animating,
		Style:                      t.style,
	}
}

// SelectedTint is the tint for item when it is the selected one.
func (t *Toolbar) SelectedTint(item ActionItem) Color {
	if item.TintColor != nil {
		return *item.TintColor
	}
	return t.appearance.TintColor
}

// ────────────────────────────────────────────────────────────
// Configuration
// ────────────────────────────────────────────────────────────

// SetSelectionEnabled toggles the persistent selection highlight.
func (t *Toolbar) SetSelectionEnabled(on bool) []Effect {
	return t.run(func() {
		t.selectionEnabled = on
		t.emit(Effect{Kind: EffectRefresh, Index: t.selected})
	})
}

// SetItemExchangeEnabled toggles exchange on subitem taps.
func (t *Toolbar) SetItemExchangeEnabled(on bool) []Effect {
	return t.run(func() {
		t.exchangeEnabled = on
		t.emit(Effect{Kind: EffectRefresh, Index: t.selected})
	})
}

// SetDismissedOnSubitemTapped toggles closing the panel on subitem taps.
func (t *Toolbar) SetDismissedOnSubitemTapped(on bool) []Effect {
	return t.run(func() {
		t.dismissOnSubitemTap = on
		t.emit(Effect{Kind: EffectRefresh, Index: t.selected})
	})
}

// SetBlurEffectEnabled shows or hides the blur backdrop.
func (t *Toolbar) SetBlurEffectEnabled(on bool) []Effect {
	return t.run(func() {
		t.blurEnabled = on
		t.emit(Effect{Kind: EffectRefresh, Index: t.selected})
	})
}

// SetStyle changes the style and resolves it once.
func (t *Toolbar) SetStyle(s Style) []Effect {
	return t.run(func() {
		t.style = s
		t.appearance = ResolveStyle(s)
		t.emit(Effect{Kind: EffectRefresh, Index: t.selected})
	})
}

// ────────────────────────────────────────────────────────────
// Transitions
// ────────────────────────────────────────────────────────────

// Tap resolves p against g and handles the resulting event.
func (t *Toolbar) Tap(g Geometry, p Point) []Effect {
	open := 0
	if t.panel != nil {
		open = len(t.panel.Subitems)
	}
	return t.Handle(g.Resolve(p, len(t.items), open))
}

// Handle applies ev and returns the effects in emission order. Events
// that resolve to nothing return no effects.
func (t *Toolbar) Handle(ev Event) []Effect {
	return t.run(func() {
		switch ev.Kind {
		case EventTapItem:
			t.tapItem(ev.Index)
		case EventTapSubitem:
			t.tapSubitem(ev.Index)
		}
	})
}

// DismissSubitems closes the panel. It does nothing if none is open.
func (t *Toolbar) DismissSubitems() []Effect {
	return t.run(t.hideSubitems)
}

// CompleteSelectionAnimation ends the in-flight selection animation and
// returns the indicator hand-off. It is a no-op when nothing is animating.
func (t *Toolbar) CompleteSelectionAnimation() []Effect {
	return t.run(func() {
		if !t.animating {
			return
		}
		t.animating = false
		t.emit(Effect{Kind: EffectSettleIndicator, Index: t.selected, Tint: t.appearance.IndicatorColor})
	})
}

func (t *Toolbar) tapItem(i int) {
	if i < 0 || i >= len(t.items) {
		return
	}

	if i == t.selected {
		if t.panel == nil && t.items[i].IsExpandable() {
			t.showSubitems(i)
			return
		}
		t.hideSubitems()
		return
	}

	if t.animating {
		t.logger.Debug("tap rejected", "index", i, "err", ErrAnimating)
		return
	}

	item := t.items[i].Clone()
	t.emit(Effect{Kind: EffectWillSelect, Item: item, Index: i})

	t.hideSubitems()

	prev := t.selected
	t.selected = i

	if t.selectionEnabled {
		t.animating = true
		t.emit(Effect{
			Kind:           EffectAnimateSelection,
			Item:           item,
			From:           prev,
			Index:          i,
			Duration:       timeutil.SelectionDuration,
			Tint:           t.SelectedTint(item),
			UnselectedTint: t.appearance.UnselectedTintColor,
		})
	}

	t.invoke(item, i)
	t.emit(Effect{Kind: EffectDidSelect, Item: item, Index: i})
}

func (t *Toolbar) tapSubitem(j int) {
	if t.panel == nil || j < 0 || j >= len(t.panel.Subitems) {
		return
	}
	parent := t.panel.ParentIndex
	sub := t.panel.Subitems[j].Clone()

	t.emit(Effect{Kind: EffectWillSelect, Item: sub, Index: j})

	if t.exchangeEnabled && sub.IsExchangeable {
		t.exchange(parent, j)
	}

	invoked := t.invoke(sub, j)
	t.emit(Effect{Kind: EffectDidSelect, Item: sub, Index: j})

	if !invoked && t.dismissOnSubitemTap {
		t.hideSubitems()
	}
}

func (t *Toolbar) exchange(parent, j int) {
	items, err := Exchange(t.items, parent, j)
	if err != nil {
		t.logger.Error("exchange failed", "parent", parent, "subitem", j, "err", err)
		return
	}
	t.items = items
	if t.panel != nil {
		t.panel.Subitems = cloneItems(items[parent].SubItems)
	}
	t.emit(Effect{
		Kind:     EffectSwapItems,
		Item:     items[parent].Clone(),
		Items:    cloneItems(items[parent].SubItems),
		Index:    parent,
		Subindex: j,
	})
}

func (t *Toolbar) showSubitems(i int) {
	subs := cloneItems(t.items[i].SubItems)
	t.emit(Effect{Kind: EffectWillShowSubitems, Items: subs, Index: i})

	t.panel = &Panel{ParentIndex: i, Subitems: cloneItems(subs)}
	t.emit(Effect{Kind: EffectShowPanel, Items: subs, Index: i, Height: ExpandedHeight})
	t.emit(Effect{
		Kind:     EffectPlayAppear,
		Items:    subs,
		Index:    i,
		Delays:   timeutil.StaggerDelays(len(subs), timeutil.AppearStep),
		Duration: timeutil.AppearDuration,
	})

	t.emit(Effect{Kind: EffectDidShowSubitems, Items: subs, Index: i})
}

func (t *Toolbar) hideSubitems() {
	if t.panel == nil {
		return
	}
	index := t.panel.ParentIndex
	t.emit(Effect{Kind: EffectWillHideSubitems, Index: index})
	t.panel = nil
	t.emit(Effect{Kind: EffectHidePanel, Index: index, Height: DefaultHeight})
	t.emit(Effect{Kind: EffectDidHideSubitems, Index: index})
}

// invoke dispatches item's action and reports whether it ran.
func (t *Toolbar) invoke(item ActionItem, index int) bool {
	if item.Action == nil {
		return false
	}
	if !item.Action.Invoke(t) {
		t.logger.Debug("action target released", "item", item.Identifier)
		return false
	}
	t.emit(Effect{Kind: EffectInvokeAction, Item: item, Index: index})
	return true
}

// run executes fn as one transition. Calls made while another
// transition is in progress join that transition's effects.
func (t *Toolbar) run(fn func()) []Effect {
	if t.tx != nil {
		fn()
		return nil
	}
	var effects []Effect
	t.tx = &effects
	defer func() { t.tx = nil }()
	fn()
	return effects
}

// emit records e and runs the delegate hook it mirrors, if any.
func (t *Toolbar) emit(e Effect) {
	*t.tx = append(*t.tx, e)
	if t.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.logger.Debug("effect", "kind", e.Kind.String(), "index", e.Index, "item", e.Item.Identifier)
	}

	switch e.Kind {
	case EffectWillSelect:
		t.delegate.WillSelect(t, e.Item)
	case EffectDidSelect:
		t.delegate.DidSelect(t, e.Item)
	case EffectWillShowSubitems:
		t.delegate.WillShowSubitems(t, cloneItems(e.Items), e.Index)
	case EffectDidShowSubitems:
		t.delegate.DidShowSubitems(t, cloneItems(e.Items), e.Index)
	case EffectWillHideSubitems:
		t.delegate.WillHideSubitems(t)
	case EffectDidHideSubitems:
		t.delegate.DidHideSubitems(t)
	}
}
