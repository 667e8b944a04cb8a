package ingestion

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *database.DBService {
	t.Helper()
	svc, err := database.NewDBService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	require.NoError(t, svc.InsertSession(&database.Session{SessionID: "s", StartedAt: 1, ItemCount: 1, Style: "light"}))
	return svc
}

func event(i int) *database.Event {
	return &database.Event{
		EventID:   fmt.Sprintf("e%d", i),
		SessionID: "s",
		Seq:       i,
		Timestamp: int64(i),
		Kind:      "did-select",
	}
}

func committed(t *testing.T, store database.Store) int {
	t.Helper()
	counts, err := store.CountEvents("s")
	require.NoError(t, err)
	return counts["did-select"]
}

func TestBatcherFlushesOnSize(t *testing.T) {
	store := newStore(t)
	b := NewBatcher(store, Config{BatchSize: 3, FlushInterval: time.Hour}, nil)
	b.Start(context.Background())

	for i := 1; i <= 3; i++ {
		require.NoError(t, b.InsertEvent(event(i)))
	}

	assert.Eventually(t, func() bool { return committed(t, store) == 3 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, b.Stop())
	assert.Equal(t, int64(1), b.Metrics().BatchesCommitted)
}

func TestBatcherFlushesOnInterval(t *testing.T) {
	store := newStore(t)
	b := NewBatcher(store, Config{BatchSize: 100, FlushInterval: 20 * time.Millisecond}, nil)
	b.Start(context.Background())
	defer b.Stop()

	require.NoError(t, b.InsertEvent(event(1)))

	assert.Eventually(t, func() bool { return committed(t, store) == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestBatcherStopFlushesRemainder(t *testing.T) {
	store := newStore(t)
	b := NewBatcher(store, Config{BatchSize: 100, FlushInterval: time.Hour}, nil)
	b.Start(context.Background())

	for i := 1; i <= 7; i++ {
		require.NoError(t, b.InsertEvent(event(i)))
	}
	require.NoError(t, b.Stop())
	require.NoError(t, b.Stop(), "second stop is a no-op")

	assert.Equal(t, 7, committed(t, store))
	m := b.Metrics()
	assert.Equal(t, int64(7), m.EventsQueued)
	assert.Equal(t, int64(7), m.EventsCommitted)

	session := "s"
	events, err := store.QueryEvents(database.EventFilter{SessionID: &session})
	require.NoError(t, err)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
}

func TestBatcherWritesDirectlyAfterStop(t *testing.T) {
	store := newStore(t)
	b := NewBatcher(store, DefaultConfig(), nil)
	b.Start(context.Background())
	require.NoError(t, b.Stop())

	require.NoError(t, b.InsertEvent(event(1)))
	assert.Equal(t, 1, committed(t, store))
	assert.Equal(t, int64(1), b.Metrics().DirectWrites)
}

func TestBatcherSurvivesCancellation(t *testing.T) {
	store := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBatcher(store, Config{BatchSize: 100, FlushInterval: time.Hour}, nil)
	b.Start(ctx)

	cancel()
	for i := 1; i <= 4; i++ {
		require.NoError(t, b.InsertEvent(event(i)))
	}
	require.NoError(t, b.Stop())

	assert.Equal(t, 4, committed(t, store))
}
