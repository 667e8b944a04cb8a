// Package toolbar implements the state machine behind an animated,
// horizontally scrollable toolbar: a row of tappable items where each
// item may carry a list of subitems shown in a popup panel.
//
// The package owns no rendering. A host (see internal/tui) places the
// item slots, turns input into taps and plays the visual effects that
// every transition returns:
//
//	item.go      ActionItem value type and tree cloning
//	action.go    Action capability, ActionFunc, WeakAction
//	exchange.go  structural item/subitem swap
//	style.go     Style enum and ResolveStyle
//	geometry.go  slot geometry and tap resolution (Gesture Interpreter)
//	effect.go    effect kinds emitted by transitions
//	delegate.go  six-hook observer protocol
//	toolbar.go   Toolbar and its transitions (Transition Executor)
//
// A Toolbar is not safe for concurrent use. All calls are expected to
// come from a single event loop.
package toolbar
