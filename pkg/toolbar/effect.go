package toolbar

import (
	"fmt"
	"time"
)

// EffectKind names one step of a transition. Notification kinds mirror
// the delegate hook that already ran; the rest are work for the renderer.
type EffectKind int

const (
	EffectWillSelect EffectKind = iota
	EffectDidSelect
	EffectWillShowSubitems
	EffectDidShowSubitems
	EffectWillHideSubitems
	EffectDidHideSubitems

	// EffectShowPanel asks the renderer to build the panel for Items
	// under main item Index and grow to Height.
	EffectShowPanel
	// EffectPlayAppear staggers each subitem's scale+fade entrance by
	// the matching entry of Delays.
	EffectPlayAppear
	// EffectHidePanel removes the panel and restores Height.
	EffectHidePanel
	// EffectAnimateSelection moves the indicator overlay from slot From
	// to slot Index over Duration, recoloring the old icon to
	// UnselectedTint and the new one to Tint. The host must call
	// Toolbar.CompleteSelectionAnimation when it finishes.
	EffectAnimateSelection
	// EffectSettleIndicator replaces the overlay with the persistent
	// indicator on slot Index.
	EffectSettleIndicator
	// EffectSwapItems rebinds main slot Index to Item and panel slot
	// Subindex to Items[Subindex] after an exchange.
	EffectSwapItems
	// EffectInvokeAction records that Item's action was dispatched.
	EffectInvokeAction
	// EffectRefresh asks for a full repaint after a configuration change.
	EffectRefresh
)

var effectNames = map[EffectKind]string{
	EffectWillSelect:       "will-select",
	EffectDidSelect:        "did-select",
	EffectWillShowSubitems: "will-show-subitems",
	EffectDidShowSubitems:  "did-show-subitems",
	EffectWillHideSubitems: "will-hide-subitems",
	EffectDidHideSubitems:  "did-hide-subitems",
	EffectShowPanel:        "show-panel",
	EffectPlayAppear:       "play-appear",
	EffectHidePanel:        "hide-panel",
	EffectAnimateSelection: "animate-selection",
	EffectSettleIndicator:  "settle-indicator",
	EffectSwapItems:        "swap-items",
	EffectInvokeAction:     "invoke-action",
	EffectRefresh:          "refresh",
}

func (k EffectKind) String() string {
	if name, ok := effectNames[k]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

// IsNotification reports whether k mirrors a delegate hook.
func (k EffectKind) IsNotification() bool {
	return k <= EffectDidHideSubitems
}

// Effect is one ordered step of a transition. Only the fields relevant
// to Kind are set.
type Effect struct {
	Kind     EffectKind
	Item     ActionItem
	Items    []ActionItem
	Index    int
	From     int
	Subindex int
	Height   int
	Delays   []time.Duration
	Duration time.Duration

	Tint           Color
	UnselectedTint Color
}

// Kinds lists the kinds of effects, in order.
func Kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}
