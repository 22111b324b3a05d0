package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Write(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event(nil), s.events...)
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	d := audit.NewDispatcher(10, a, b)

	id := uint(7)
	d.Dispatch(audit.Event{Action: "booking_created", Entity: "booking", EntityID: &id})
	require.NoError(t, d.Close(context.Background()))

	for _, s := range []*recordingSink{a, b} {
		got := s.Events()
		require.Len(t, got, 1)
		assert.Equal(t, "booking_created", got[0].Action)
		assert.NotEmpty(t, got[0].ID)
		assert.False(t, got[0].OccurredAt.IsZero())
	}
}

func TestDispatcher_FailingSinkDoesNotStopOthers(t *testing.T) {
	ok := &recordingSink{}
	failing := audit.SinkFunc(func(context.Context, audit.Event) error {
		return errors.New("broker down")
	})
	d := audit.NewDispatcher(10, failing, ok)

	d.Dispatch(audit.Event{Action: "a"})
	d.Dispatch(audit.Event{Action: "b"})
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, ok.Events(), 2)
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	release := make(chan struct{})
	blocking := audit.SinkFunc(func(context.Context, audit.Event) error {
		<-release
		return nil
	})
	rec := &recordingSink{}
	d := audit.NewDispatcher(1, blocking, rec)

	for i := 0; i < 10; i++ {
		d.Dispatch(audit.Event{Action: "spam"})
	}
	close(release)
	require.NoError(t, d.Close(context.Background()))

	// one event in flight plus one buffered
	assert.LessOrEqual(t, len(rec.Events()), 2)
	assert.GreaterOrEqual(t, len(rec.Events()), 1)
}

func TestDispatcher_CloseHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	d := audit.NewDispatcher(1, audit.SinkFunc(func(context.Context, audit.Event) error {
		<-release
		return nil
	}))
	d.Dispatch(audit.Event{Action: "slow"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *audit.Dispatcher
	d.Dispatch(audit.Event{Action: "x"})
	assert.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := audit.NewDispatcher(4, sink)

	d.Dispatch(audit.Event{Action: "before"})
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Dispatch(audit.Event{Action: "after"})
	})
	require.NoError(t, d.Close(context.Background()))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "before", events[0].Action)
}

func TestDispatcher_ConcurrentDispatchAndClose(t *testing.T) {
	d := audit.NewDispatcher(8, &recordingSink{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(audit.Event{Action: "tick"})
			}
		}()
	}

	require.NoError(t, d.Close(context.Background()))
	wg.Wait()
}
