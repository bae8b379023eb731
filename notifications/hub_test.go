package notifications

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	assert.Zero(t, hub.ClientCount())

	a := hub.Register(nil)
	b := hub.Register(nil)
	assert.Equal(t, 2, hub.ClientCount())
	assert.NotEqual(t, a, b)

	hub.Unregister(a)
	assert.Equal(t, 1, hub.ClientCount())

	// Unregistering twice is harmless.
	hub.Unregister(a)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(b)
	assert.Zero(t, hub.ClientCount())
}

// overlapWriter flags any two WriteJSON calls that run at the same time.
type overlapWriter struct {
	inFlight atomic.Int32
	overlap  atomic.Bool
	writes   atomic.Int32
}

func (w *overlapWriter) WriteJSON(v interface{}) error {
	if w.inFlight.Add(1) > 1 {
		w.overlap.Store(true)
	}
	time.Sleep(time.Millisecond)
	w.inFlight.Add(-1)
	w.writes.Add(1)
	return nil
}

func TestBroadcastSerializesWritesPerConnection(t *testing.T) {
	hub := NewHub()
	w := &overlapWriter{}
	hub.Register(w)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(Event{Type: "team_submitted", PendingTeamID: 1})
		}()
	}
	wg.Wait()

	assert.False(t, w.overlap.Load(), "two writes reached the connection at once")
	assert.Equal(t, int32(n), w.writes.Load())
}

type failingWriter struct{}

func (failingWriter) WriteJSON(v interface{}) error { return errors.New("broken pipe") }

func TestBroadcastKeepsGoingPastWriteErrors(t *testing.T) {
	hub := NewHub()
	hub.Register(failingWriter{})
	ok := &overlapWriter{}
	hub.Register(ok)

	hub.Broadcast(Event{Type: "team_approved", PendingTeamID: 2, Ticker: "svt"})

	assert.Equal(t, int32(1), ok.writes.Load())
	assert.Equal(t, 2, hub.ClientCount())
}
