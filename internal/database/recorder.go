package database

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/jsonutil"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/timeutil"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
	"github.com/google/uuid"
)

var _ toolbar.Delegate = (*Recorder)(nil)

// Recorder journals toolbar notifications into a Store. It implements
// toolbar.Delegate for the six hooks and ObserveEffects for exchanges
// and action dispatches, which have no hook of their own.
//
// Write failures never interrupt the toolbar: they are logged and the
// first one is kept for Err.
type Recorder struct {
	store     Store
	sessionID string
	seq       int
	logger    *slog.Logger
	now       func() int64
	err       error
}

// NewRecorder opens a new session for a toolbar built over items.
func NewRecorder(store Store, items []toolbar.ActionItem, style toolbar.Style, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Recorder{
		store:     store,
		sessionID: uuid.NewString(),
		logger:    logger,
		now:       timeutil.NowNano,
	}

	snapshot, err := jsonutil.MarshalItems(items)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		SessionID: r.sessionID,
		StartedAt: r.now(),
		ItemCount: len(items),
		Style:     style.Kind.String(),
		ItemsJSON: &snapshot,
	}
	if err := store.InsertSession(sess); err != nil {
		return nil, fmt.Errorf("starting journal session: %w", err)
	}
	return r, nil
}

// SessionID identifies the session this recorder writes to.
func (r *Recorder) SessionID() string { return r.sessionID }

// Err returns the first write error, if any.
func (r *Recorder) Err() error { return r.err }

func (r *Recorder) WillSelect(t *toolbar.Toolbar, item toolbar.ActionItem) {
	r.record(t, toolbar.EffectWillSelect, &item, nil, nil)
}

func (r *Recorder) DidSelect(t *toolbar.Toolbar, item toolbar.ActionItem) {
	r.record(t, toolbar.EffectDidSelect, &item, nil, nil)
}

func (r *Recorder) WillHideSubitems(t *toolbar.Toolbar) {
	r.record(t, toolbar.EffectWillHideSubitems, nil, nil, nil)
}

func (r *Recorder) DidHideSubitems(t *toolbar.Toolbar) {
	r.record(t, toolbar.EffectDidHideSubitems, nil, nil, nil)
}

func (r *Recorder) WillShowSubitems(t *toolbar.Toolbar, subitems []toolbar.ActionItem, index int) {
	r.record(t, toolbar.EffectWillShowSubitems, nil, &index, subitems)
}

func (r *Recorder) DidShowSubitems(t *toolbar.Toolbar, subitems []toolbar.ActionItem, index int) {
	r.record(t, toolbar.EffectDidShowSubitems, nil, &index, subitems)
}

// ObserveEffects journals the exchange and action effects of a
// transition. Notification effects are skipped; the hooks cover them.
func (r *Recorder) ObserveEffects(t *toolbar.Toolbar, effects []toolbar.Effect) {
	for _, e := range effects {
		if e.Kind.IsNotification() {
			continue
		}
		switch e.Kind {
		case toolbar.EffectSwapItems:
			item, index := e.Item, e.Index
			r.record(t, e.Kind, &item, &index, e.Items)
		case toolbar.EffectInvokeAction:
			item, index := e.Item, e.Index
			r.record(t, e.Kind, &item, &index, nil)
		}
	}
}

func (r *Recorder) record(t *toolbar.Toolbar, kind toolbar.EffectKind, item *toolbar.ActionItem, index *int, payload []toolbar.ActionItem) {
	r.seq++
	ev := &Event{
		EventID:       uuid.NewString(),
		SessionID:     r.sessionID,
		Seq:           r.seq,
		Timestamp:     r.now(),
		Kind:          kind.String(),
		ItemIndex:     index,
		SelectedIndex: t.SelectedItemIndex(),
	}
	if item != nil {
		id := item.Identifier
		ev.ItemID = &id
	}
	if payload != nil {
		s, err := jsonutil.MarshalItems(payload)
		if err != nil {
			r.fail(err)
			return
		}
		ev.Payload = &s
	}
	if err := r.store.InsertEvent(ev); err != nil {
		r.fail(err)
	}
}

func (r *Recorder) fail(err error) {
	r.logger.Error("journal write failed", "session", r.sessionID, "err", err)
	if r.err == nil {
		r.err = err
	}
}
