package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectKindIsNotification(t *testing.T) {
	hooks := []EffectKind{
		EffectWillSelect, EffectDidSelect,
		EffectWillShowSubitems, EffectDidShowSubitems,
		EffectWillHideSubitems, EffectDidHideSubitems,
	}
	for _, k := range hooks {
		assert.True(t, k.IsNotification(), k.String())
	}

	work := []EffectKind{
		EffectShowPanel, EffectPlayAppear, EffectHidePanel, EffectAnimateSelection,
		EffectSettleIndicator, EffectSwapItems, EffectInvokeAction, EffectRefresh,
	}
	for _, k := range work {
		assert.False(t, k.IsNotification(), k.String())
	}
}

func TestEffectKindString(t *testing.T) {
	assert.Equal(t, "swap-items", EffectSwapItems.String())
	assert.Equal(t, "effect(99)", EffectKind(99).String())
}
