package database

import (
	"testing"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/jsonutil"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordedToolbar(t *testing.T, items []toolbar.ActionItem, opts ...toolbar.Option) (*toolbar.Toolbar, *Recorder, *DBService) {
	t.Helper()
	svc, err := NewDBService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	rec, err := NewRecorder(svc, items, toolbar.DarkStyle, nil)
	require.NoError(t, err)

	tb, err := toolbar.New(items, append(opts, toolbar.WithDelegate(rec))...)
	require.NoError(t, err)
	return tb, rec, svc
}

func TestRecorderOpensSession(t *testing.T) {
	items := []toolbar.ActionItem{toolbar.NewItem("a", "*"), toolbar.NewItem("b", "*")}
	_, rec, svc := newRecordedToolbar(t, items)

	sessions, err := svc.QuerySessions(5)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, rec.SessionID(), sessions[0].SessionID)
	assert.Equal(t, 2, sessions[0].ItemCount)
	assert.Equal(t, "dark", sessions[0].Style)
	require.NotNil(t, sessions[0].ItemsJSON)

	back, err := jsonutil.UnmarshalItems(*sessions[0].ItemsJSON)
	require.NoError(t, err)
	assert.Equal(t, items, back)
}

func TestRecorderJournalsTransitions(t *testing.T) {
	items := []toolbar.ActionItem{
		toolbar.NewItem("a", "*"),
		toolbar.NewItem("p", "*", toolbar.WithSubItems(toolbar.NewItem("x", "*"), toolbar.NewItem("y", "*"))),
	}
	tb, rec, svc := newRecordedToolbar(t, items, toolbar.WithItemExchange(true))

	rec.ObserveEffects(tb, tb.Handle(toolbar.TapItem(1)))
	rec.ObserveEffects(tb, tb.Handle(toolbar.TapItem(1)))
	rec.ObserveEffects(tb, tb.Handle(toolbar.TapSubitem(0)))
	rec.ObserveEffects(tb, tb.DismissSubitems())
	require.NoError(t, rec.Err())

	// Hooks are journaled as they fire; effects once the transition returns.

	session := rec.SessionID()
	events, err := svc.QueryEvents(EventFilter{SessionID: &session})
	require.NoError(t, err)

	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []string{
		"will-select", "did-select",
		"will-show-subitems", "did-show-subitems",
		"will-select", "did-select", "swap-items",
		"will-hide-subitems", "did-hide-subitems",
	}, kinds)

	assert.Equal(t, 0, events[0].SelectedIndex, "will hook sees the old selection")
	assert.Equal(t, 1, events[1].SelectedIndex)

	swap := events[6]
	require.NotNil(t, swap.ItemID)
	assert.Equal(t, "x", *swap.ItemID)
	require.NotNil(t, swap.Payload)
	subs, err := jsonutil.UnmarshalItems(*swap.Payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "y"}, toolbar.Identifiers(subs))
}

func TestRecorderObserveSkipsNotifications(t *testing.T) {
	items := []toolbar.ActionItem{
		toolbar.NewItem("a", "*"),
		toolbar.NewItem("b", "*", toolbar.WithAction(toolbar.ActionFunc(func(*toolbar.Toolbar) {}))),
	}
	tb, rec, svc := newRecordedToolbar(t, items, toolbar.WithSelectionEnabled(true))

	effects := tb.Handle(toolbar.TapItem(1))
	require.Equal(t, []toolbar.EffectKind{
		toolbar.EffectWillSelect, toolbar.EffectAnimateSelection,
		toolbar.EffectInvokeAction, toolbar.EffectDidSelect,
	}, toolbar.Kinds(effects))
	rec.ObserveEffects(tb, effects)
	rec.ObserveEffects(tb, tb.CompleteSelectionAnimation())
	require.NoError(t, rec.Err())

	counts, err := svc.CountEvents(rec.SessionID())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"will-select": 1, "did-select": 1, "invoke-action": 1}, counts)
}
