package database

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestNewDBService verifies that the database initializes correctly
// with the embedded schema using an in-memory SQLite instance.
func TestNewDBService(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	defer svc.Close()
}

func seedSession(t *testing.T, svc *DBService, id string, startedAt int64) {
	t.Helper()
	if err := svc.InsertSession(&Session{
		SessionID: id,
		StartedAt: startedAt,
		ItemCount: 8,
		Style:     "dark",
	}); err != nil {
		t.Fatalf("InsertSession(%s) failed: %v", id, err)
	}
}

// TestInsertAndQuerySessions verifies sessions come back newest first.
func TestInsertAndQuerySessions(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	now := time.Now().UnixNano()
	seedSession(t, svc, "older", now)
	seedSession(t, svc, "newer", now+1000)

	sessions, err := svc.QuerySessions(10)
	if err != nil {
		t.Fatalf("QuerySessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != "newer" {
		t.Errorf("expected newest session first, got %s", sessions[0].SessionID)
	}
	if sessions[1].ItemCount != 8 || sessions[1].Style != "dark" {
		t.Errorf("unexpected session fields: %+v", sessions[1])
	}
}

// TestFindSession verifies lookup by full ID and by prefix, including
// sessions far outside the default listing window.
func TestFindSession(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	seedSession(t, svc, "aaaa-0001", 1)
	for i := 0; i < 30; i++ {
		seedSession(t, svc, fmt.Sprintf("bbbb-%04d", i), int64(100+i))
	}
	seedSession(t, svc, "cc", 200)
	seedSession(t, svc, "cc-longer", 201)

	sess, err := svc.FindSession("aaaa")
	if err != nil {
		t.Fatalf("FindSession(prefix) failed: %v", err)
	}
	if sess.SessionID != "aaaa-0001" || sess.ItemCount != 8 {
		t.Errorf("unexpected session: %+v", sess)
	}

	if sess, err = svc.FindSession("cc"); err != nil || sess.SessionID != "cc" {
		t.Errorf("expected exact match cc, got %+v, %v", sess, err)
	}
	if _, err := svc.FindSession("bbbb"); !errors.Is(err, ErrAmbiguousSession) {
		t.Errorf("expected ErrAmbiguousSession, got %v", err)
	}
	if _, err := svc.FindSession("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.FindSession("AAAA"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("prefix match must be case-sensitive, got %v", err)
	}
}

// TestInsertEventAndQuery verifies event insertion, ordering and filters.
func TestInsertEventAndQuery(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	now := time.Now().UnixNano()
	seedSession(t, svc, "s1", now)

	itemID := "item3"
	index := 3
	events := []*Event{
		{EventID: "e1", SessionID: "s1", Seq: 1, Timestamp: now, Kind: "will-select", ItemID: &itemID},
		{EventID: "e2", SessionID: "s1", Seq: 2, Timestamp: now + 1, Kind: "did-select", ItemID: &itemID, SelectedIndex: 3},
		{EventID: "e3", SessionID: "s1", Seq: 3, Timestamp: now + 2, Kind: "will-show-subitems", ItemIndex: &index, SelectedIndex: 3},
	}
	for _, e := range events {
		if err := svc.InsertEvent(e); err != nil {
			t.Fatalf("InsertEvent(%s) failed: %v", e.EventID, err)
		}
	}

	session := "s1"
	all, err := svc.QueryEvents(EventFilter{SessionID: &session})
	if err != nil {
		t.Fatalf("QueryEvents failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	for i, e := range all {
		if e.Seq != i+1 {
			t.Errorf("event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}
	if all[0].ItemID == nil || *all[0].ItemID != "item3" {
		t.Errorf("expected item_id=item3, got %v", all[0].ItemID)
	}
	if all[0].ItemIndex != nil {
		t.Errorf("expected NULL item_index, got %v", *all[0].ItemIndex)
	}
	if all[2].ItemIndex == nil || *all[2].ItemIndex != 3 {
		t.Errorf("expected item_index=3, got %v", all[2].ItemIndex)
	}

	kind := "did-select"
	selects, err := svc.QueryEvents(EventFilter{Kind: &kind})
	if err != nil {
		t.Fatalf("QueryEvents(kind) failed: %v", err)
	}
	if len(selects) != 1 || selects[0].EventID != "e2" {
		t.Errorf("expected only e2 for kind filter, got %d events", len(selects))
	}

	since := now + 1
	recent, err := svc.QueryEvents(EventFilter{Since: &since, Limit: 1})
	if err != nil {
		t.Fatalf("QueryEvents(since) failed: %v", err)
	}
	if len(recent) != 1 || recent[0].EventID != "e2" {
		t.Errorf("expected e2 as first event since %d, got %v", since, recent)
	}
}

// TestInsertEventRequiresSession verifies the foreign key to sessions.
func TestInsertEventRequiresSession(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	err = svc.InsertEvent(&Event{EventID: "orphan", SessionID: "missing", Seq: 1, Kind: "did-select"})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown session")
	}
}

// TestBatchInsertAndCount verifies batch insertion and per-kind counts.
func TestBatchInsertAndCount(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	now := time.Now().UnixNano()
	seedSession(t, svc, "batch", now)

	var events []*Event
	for i := 0; i < 10; i++ {
		kind := "did-select"
		if i%2 == 1 {
			kind = "will-select"
		}
		if i == 9 {
			kind = "swap-items"
		}
		events = append(events, &Event{
			EventID:   fmt.Sprintf("batch-%d", i),
			SessionID: "batch",
			Seq:       i + 1,
			Timestamp: now + int64(i),
			Kind:      kind,
		})
	}
	if err := svc.BatchInsertEvents(events); err != nil {
		t.Fatalf("BatchInsertEvents failed: %v", err)
	}

	counts, err := svc.CountEvents("batch")
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if counts["did-select"] != 5 || counts["will-select"] != 4 || counts["swap-items"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

// TestBatchInsertRollsBack verifies a failing row leaves nothing behind.
func TestBatchInsertRollsBack(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	seedSession(t, svc, "rb", time.Now().UnixNano())
	events := []*Event{
		{EventID: "dup", SessionID: "rb", Seq: 1, Kind: "did-select"},
		{EventID: "dup", SessionID: "rb", Seq: 2, Kind: "did-select"},
	}
	if err := svc.BatchInsertEvents(events); err == nil {
		t.Fatal("expected duplicate event_id to fail the batch")
	}

	counts, err := svc.CountEvents("rb")
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected rollback to leave no events, got %v", counts)
	}
}
