// Package ingestion moves journal writes off the UI loop.
//
// A Batcher wraps a database.Store. Events handed to InsertEvent are
// queued on a buffered channel and committed by a flush goroutine in
// batches, every FlushInterval or BatchSize events, whichever comes
// first. Everything else passes straight through to the store.
//
// Architecture:
//
//	Recorder → InsertEvent → event channel → flushLoop → BatchInsertEvents
package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
)

// Config holds batching settings.
type Config struct {
	// BatchSize is the maximum number of events to buffer before flushing.
	BatchSize int `json:"batch_size"`

	// FlushInterval is the maximum time between batch flushes.
	FlushInterval time.Duration `json:"flush_interval"`
}

// DefaultConfig returns sensible defaults for an interactive session.
func DefaultConfig() Config {
	return Config{
		BatchSize:     256,
		FlushInterval: 500 * time.Millisecond,
	}
}

// Metrics tracks throughput and error counts.
type Metrics struct {
	EventsQueued     int64 `json:"events_queued"`
	EventsCommitted  int64 `json:"events_committed"`
	DirectWrites     int64 `json:"direct_writes"`
	BatchesCommitted int64 `json:"batches_committed"`
	ErrorCount       int64 `json:"error_count"`
}

// ============================================================
// Batcher
// ============================================================

// Batcher is a database.Store whose InsertEvent is asynchronous. Reads
// only see events that have been flushed.
type Batcher struct {
	database.Store

	config  Config
	logger  *slog.Logger
	metrics Metrics

	events  chan *database.Event
	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewBatcher wraps store. Call Start before use and Stop when done.
func NewBatcher(store database.Store, config Config, logger *slog.Logger) *Batcher {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = DefaultConfig().FlushInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Batcher{
		Store:  store,
		config: config,
		logger: logger,
		events: make(chan *database.Event, config.BatchSize*2),
	}
}

// Start runs the flush goroutine until ctx is cancelled or Stop is called.
func (b *Batcher) Start(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)
	b.wg.Add(1)
	go b.flushLoop(ctx)
}

// InsertEvent queues e for the next batch. When the queue is full, or
// the batcher has been stopped, e is written directly instead so no
// event is dropped.
func (b *Batcher) InsertEvent(e *database.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.stopped {
		select {
		case b.events <- e:
			atomic.AddInt64(&b.metrics.EventsQueued, 1)
			return nil
		default:
		}
	}

	if err := b.Store.InsertEvent(e); err != nil {
		atomic.AddInt64(&b.metrics.ErrorCount, 1)
		return fmt.Errorf("direct event insert: %w", err)
	}
	atomic.AddInt64(&b.metrics.DirectWrites, 1)
	return nil
}

// Stop flushes every queued event and ends the flush goroutine. It is
// safe to call more than once.
func (b *Batcher) Stop() error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	b.stopped = true
	close(b.events)
	b.mu.Unlock()

	b.wg.Wait()
	if b.cancel != nil {
		b.cancel()
	}

	// Events left behind when the loop exited on cancellation.
	var rest []*database.Event
	for e := range b.events {
		rest = append(rest, e)
	}
	if err := b.commit(rest); err != nil {
		return err
	}

	m := b.Metrics()
	b.logger.Info("journal flushed",
		"committed", m.EventsCommitted, "batches", m.BatchesCommitted,
		"direct", m.DirectWrites, "errors", m.ErrorCount)
	return nil
}

// Metrics returns a snapshot of the current counters.
func (b *Batcher) Metrics() Metrics {
	return Metrics{
		EventsQueued:     atomic.LoadInt64(&b.metrics.EventsQueued),
		EventsCommitted:  atomic.LoadInt64(&b.metrics.EventsCommitted),
		DirectWrites:     atomic.LoadInt64(&b.metrics.DirectWrites),
		BatchesCommitted: atomic.LoadInt64(&b.metrics.BatchesCommitted),
		ErrorCount:       atomic.LoadInt64(&b.metrics.ErrorCount),
	}
}

// flushLoop commits when either BatchSize events accumulate or
// FlushInterval elapses.
func (b *Batcher) flushLoop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.config.FlushInterval)
	defer ticker.Stop()

	buf := make([]*database.Event, 0, b.config.BatchSize)
	flush := func() {
		if err := b.commit(buf); err != nil {
			b.logger.Error("flushing event batch", "err", err, "events", len(buf))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case e, ok := <-b.events:
			if !ok {
				flush()
				return
			}
			buf = append(buf, e)
			if len(buf) >= b.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (b *Batcher) commit(events []*database.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := b.Store.BatchInsertEvents(events); err != nil {
		atomic.AddInt64(&b.metrics.ErrorCount, 1)
		return fmt.Errorf("committing %d events: %w", len(events), err)
	}
	atomic.AddInt64(&b.metrics.BatchesCommitted, 1)
	atomic.AddInt64(&b.metrics.EventsCommitted, int64(len(events)))
	return nil
}
