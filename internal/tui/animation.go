package tui

import (
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/timeutil"
	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces animation redraws, roughly 60 fps.
const frameInterval = 16 * time.Millisecond

// frameMsg drives animations while one is running.
type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// selectionAnim slides the temporary indicator from one item to another.
type selectionAnim struct {
	from, to int
	start    time.Time
	duration time.Duration
}

func (a *selectionAnim) progress(now time.Time) float64 {
	return timeutil.Progress(now.Sub(a.start), 0, a.duration)
}

func (a *selectionAnim) done(now time.Time) bool {
	return a.progress(now) >= 1
}

// appearAnim is the staggered entrance of the panel's subitems.
type appearAnim struct {
	start    time.Time
	delays   []time.Duration
	duration time.Duration
}

// progress of subitem j; subitems past the delay list are shown.
func (a *appearAnim) progress(now time.Time, j int) float64 {
	if j < 0 || j >= len(a.delays) {
		return 1
	}
	return timeutil.Progress(now.Sub(a.start), a.delays[j], a.duration)
}

func (a *appearAnim) done(now time.Time) bool {
	if len(a.delays) == 0 {
		return true
	}
	return a.progress(now, len(a.delays)-1) >= 1
}

// lerp interpolates between two cell positions with an ease-in-out curve.
func lerp(from, to int, p float64) int {
	if p <= 0 {
		return from
	}
	if p >= 1 {
		return to
	}
	eased := p * p * (3 - 2*p)
	return from + int(float64(to-from)*eased)
}
