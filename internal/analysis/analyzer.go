// Package analysis summarizes toolbar usage from the journal. Everything
// is derived from the recorded notifications: counts, rankings and the
// dwell time between selections.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/timeutil"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"
)

// ErrNoSessions is returned when the journal holds no session to summarize.
var ErrNoSessions = errors.New("no sessions recorded")

// Analyzer computes usage summaries over a journal store.
type Analyzer struct {
	store database.Store
	now   func() time.Time
}

// NewAnalyzer creates a new analysis engine backed by the given store.
func NewAnalyzer(store database.Store) *Analyzer {
	return &Analyzer{store: store, now: time.Now}
}

// ============================================================
// Selection Ranking
// ============================================================

// ItemUsage counts completed selections of one identifier.
type ItemUsage struct {
	ItemID     string  `json:"item_id"`
	Selections int     `json:"selections"`
	Percentage float64 `json:"percentage"`
}

// rankSelections orders identifiers by selection count, most used first.
// Ties are broken by identifier so the output is stable.
func rankSelections(events []*database.Event) []ItemUsage {
	counts := make(map[string]int)
	total := 0
	for _, e := range events {
		if e.Kind != toolbar.EffectDidSelect.String() || e.ItemID == nil {
			continue
		}
		counts[*e.ItemID]++
		total++
	}

	ranked := make([]ItemUsage, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, ItemUsage{
			ItemID:     id,
			Selections: n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Selections != ranked[j].Selections {
			return ranked[i].Selections > ranked[j].Selections
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})
	return ranked
}

// ============================================================
// Dwell Time
// ============================================================

// DwellStats describes the time between consecutive completed selections.
type DwellStats struct {
	Samples int           `json:"samples"`
	Mean    time.Duration `json:"mean"`
	StdDev  time.Duration `json:"std_dev"`
	Max     time.Duration `json:"max"`
}

func dwell(events []*database.Event) DwellStats {
	var gaps []float64
	var last int64
	seen := false
	for _, e := range events {
		if e.Kind != toolbar.EffectDidSelect.String() {
			continue
		}
		if seen {
			gaps = append(gaps, float64(e.Timestamp-last))
		}
		last, seen = e.Timestamp, true
	}
	if len(gaps) == 0 {
		return DwellStats{}
	}

	var sum, max float64
	for _, g := range gaps {
		sum += g
		if g > max {
			max = g
		}
	}
	mean := sum / float64(len(gaps))

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	variance /= float64(len(gaps))

	return DwellStats{
		Samples: len(gaps),
		Mean:    time.Duration(mean),
		StdDev:  time.Duration(math.Sqrt(variance)),
		Max:     time.Duration(max),
	}
}

// ============================================================
// Session Summary
// ============================================================

// Summary is the output of `scrolltoolbar stats`.
type Summary struct {
	SessionID   string         `json:"session_id"`
	StartedAt   int64          `json:"started_at"`
	GeneratedAt string         `json:"generated_at"`
	Events      int            `json:"events"`
	Kinds       map[string]int `json:"kinds"`
	Selections  []ItemUsage    `json:"selections"`
	PanelOpens  int            `json:"panel_opens"`
	PanelCloses int            `json:"panel_closes"`
	Exchanges   int            `json:"exchanges"`
	Actions     int            `json:"actions"`
	Dwell       DwellStats     `json:"dwell"`
	Warnings    []string       `json:"warnings"`
}

// Summarize builds the usage summary of a session. An empty sessionID
// selects the most recent session.
func (a *Analyzer) Summarize(sessionID string) (*Summary, error) {
	sess, err := a.session(sessionID)
	if err != nil {
		return nil, err
	}

	events, err := a.store.QueryEvents(database.EventFilter{SessionID: &sess.SessionID})
	if err != nil {
		return nil, fmt.Errorf("querying events for session %s: %w", sess.SessionID, err)
	}
	kinds, err := a.store.CountEvents(sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("counting events for session %s: %w", sess.SessionID, err)
	}

	s := &Summary{
		SessionID:   sess.SessionID,
		StartedAt:   sess.StartedAt,
		GeneratedAt: a.now().Format(time.RFC3339),
		Events:      len(events),
		Kinds:       kinds,
		Selections:  rankSelections(events),
		PanelOpens:  kinds[toolbar.EffectDidShowSubitems.String()],
		PanelCloses: kinds[toolbar.EffectDidHideSubitems.String()],
		Exchanges:   kinds[toolbar.EffectSwapItems.String()],
		Actions:     kinds[toolbar.EffectInvokeAction.String()],
		Dwell:       dwell(events),
	}

	if len(s.Selections) == 0 {
		s.Warnings = append(s.Warnings, "No selections recorded in this session.")
	}
	if s.PanelOpens > s.PanelCloses+1 {
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("%d panels opened but only %d closed; the journal may be incomplete.",
				s.PanelOpens, s.PanelCloses))
	}
	return s, nil
}

func (a *Analyzer) session(id string) (*database.Session, error) {
	if id != "" {
		sess, err := a.store.FindSession(id)
		if err != nil {
			return nil, fmt.Errorf("looking up session: %w", err)
		}
		return sess, nil
	}
	sessions, err := a.store.QuerySessions(1)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	return sessions[0], nil
}

// FormatReport renders a summary as markdown.
func (a *Analyzer) FormatReport(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Toolbar Usage Report\n\n")
	fmt.Fprintf(&b, "**Session:** `%s`\n", s.SessionID)
	fmt.Fprintf(&b, "**Started:** %s\n", timeutil.FormatTimestampFull(s.StartedAt))
	fmt.Fprintf(&b, "**Generated:** %s\n\n", s.GeneratedAt)

	b.WriteString("## Activity\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Events | %d |\n", s.Events)
	fmt.Fprintf(&b, "| Panels Opened | %d |\n", s.PanelOpens)
	fmt.Fprintf(&b, "| Panels Closed | %d |\n", s.PanelCloses)
	fmt.Fprintf(&b, "| Exchanges | %d |\n", s.Exchanges)
	fmt.Fprintf(&b, "| Actions | %d |\n\n", s.Actions)

	if len(s.Selections) > 0 {
		b.WriteString("## Selections\n\n")
		b.WriteString("| Item | Count | % |\n")
		b.WriteString("|------|-------|---|\n")
		for _, u := range s.Selections {
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", u.ItemID, u.Selections, u.Percentage)
		}
		b.WriteString("\n")
	}

	if s.Dwell.Samples > 0 {
		b.WriteString("## Dwell Between Selections\n\n")
		fmt.Fprintf(&b, "- **Samples:** %d\n", s.Dwell.Samples)
		fmt.Fprintf(&b, "- **Mean:** %s\n", timeutil.FormatDuration(s.Dwell.Mean))
		fmt.Fprintf(&b, "- **Std Dev:** %s\n", timeutil.FormatDuration(s.Dwell.StdDev))
		fmt.Fprintf(&b, "- **Longest:** %s\n\n", timeutil.FormatDuration(s.Dwell.Max))
	}

	if len(s.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
