package analysis

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
)

func strPtr(s string) *string { return &s }

func seed(t *testing.T) *database.DBService {
	t.Helper()
	svc, err := database.NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	if err := svc.InsertSession(&database.Session{SessionID: "sess-1", StartedAt: 1000, ItemCount: 3, Style: "light"}); err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}

	type row struct {
		kind string
		item string
		at   time.Duration
	}
	rows := []row{
		{"did-select", "camera", 0},
		{"did-select", "action", 1 * time.Second},
		{"did-show-subitems", "", 1500 * time.Millisecond},
		{"swap-items", "sub3", 2 * time.Second},
		{"did-select", "sub3", 2 * time.Second},
		{"did-hide-subitems", "", 2 * time.Second},
		{"did-select", "camera", 5 * time.Second},
		{"invoke-action", "camera", 5 * time.Second},
	}
	var events []*database.Event
	for i, r := range rows {
		e := &database.Event{
			EventID:   fmt.Sprintf("e%d", i),
			SessionID: "sess-1",
			Seq:       i + 1,
			Timestamp: 1000 + int64(r.at),
			Kind:      r.kind,
		}
		if r.item != "" {
			e.ItemID = strPtr(r.item)
		}
		events = append(events, e)
	}
	if err := svc.BatchInsertEvents(events); err != nil {
		t.Fatalf("BatchInsertEvents failed: %v", err)
	}
	return svc
}

func TestSummarize(t *testing.T) {
	a := NewAnalyzer(seed(t))

	s, err := a.Summarize("")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.SessionID != "sess-1" {
		t.Errorf("expected latest session sess-1, got %s", s.SessionID)
	}
	if s.Events != 8 {
		t.Errorf("expected 8 events, got %d", s.Events)
	}
	if s.PanelOpens != 1 || s.PanelCloses != 1 || s.Exchanges != 1 || s.Actions != 1 {
		t.Errorf("unexpected activity counts: %+v", s)
	}

	if len(s.Selections) != 3 {
		t.Fatalf("expected 3 ranked items, got %d", len(s.Selections))
	}
	if s.Selections[0].ItemID != "camera" || s.Selections[0].Selections != 2 {
		t.Errorf("expected camera ranked first with 2, got %+v", s.Selections[0])
	}
	if s.Selections[1].ItemID != "action" || s.Selections[2].ItemID != "sub3" {
		t.Errorf("expected ties ordered by id, got %+v", s.Selections[1:])
	}
	if s.Selections[0].Percentage != 50 {
		t.Errorf("expected 50%%, got %.1f", s.Selections[0].Percentage)
	}
	if len(s.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", s.Warnings)
	}
}

func TestDwell(t *testing.T) {
	a := NewAnalyzer(seed(t))
	s, err := a.Summarize("sess")
	if err != nil {
		t.Fatalf("Summarize by prefix failed: %v", err)
	}

	// Gaps between did-select rows: 1s, 1s, 3s.
	d := s.Dwell
	if d.Samples != 3 {
		t.Fatalf("expected 3 samples, got %d", d.Samples)
	}
	if d.Mean != 5*time.Second/3 {
		t.Errorf("expected mean 1.666s, got %s", d.Mean)
	}
	if d.Max != 3*time.Second {
		t.Errorf("expected max 3s, got %s", d.Max)
	}
	if d.StdDev <= 0 || d.StdDev >= d.Max {
		t.Errorf("std dev out of range: %s", d.StdDev)
	}
}

func TestSummarizeEmptyJournal(t *testing.T) {
	svc, err := database.NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	_, err = NewAnalyzer(svc).Summarize("")
	if !errors.Is(err, ErrNoSessions) {
		t.Errorf("expected ErrNoSessions, got %v", err)
	}
}

func TestSummarizeUnknownSession(t *testing.T) {
	if _, err := NewAnalyzer(seed(t)).Summarize("nope"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestSummarizeOldSessionByPrefix(t *testing.T) {
	svc := seed(t)
	for i := 0; i < 25; i++ {
		if err := svc.InsertSession(&database.Session{
			SessionID: fmt.Sprintf("later-%02d", i),
			StartedAt: int64(10000 + i),
			ItemCount: 3,
			Style:     "dark",
		}); err != nil {
			t.Fatalf("InsertSession failed: %v", err)
		}
	}

	s, err := NewAnalyzer(svc).Summarize("sess")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.SessionID != "sess-1" || s.Events != 8 {
		t.Errorf("expected sess-1 with 8 events, got %s with %d", s.SessionID, s.Events)
	}

	if _, err := NewAnalyzer(svc).Summarize("later"); !errors.Is(err, database.ErrAmbiguousSession) {
		t.Errorf("expected ErrAmbiguousSession, got %v", err)
	}
}

func TestFormatReport(t *testing.T) {
	a := NewAnalyzer(seed(t))
	s, err := a.Summarize("")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	out := a.FormatReport(s)
	for _, want := range []string{"# Toolbar Usage Report", "`sess-1`", "| camera | 2 | 50.0% |", "## Dwell Between Selections"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
