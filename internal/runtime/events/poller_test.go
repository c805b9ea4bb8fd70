package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/winloop/internal/runtime/errors"
)

// withTimeout fails the test if fn does not return within d.
func withTimeout(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("timed out after %s", d)
	}
}

func TestPollerRunsAndQuits(t *testing.T) {
	poller := NewPoller()
	updates := 0

	withTimeout(t, 100*time.Millisecond, func() {
		for {
			ev, ok := poller.NextEvent()
			if !ok {
				return
			}
			if Is[EventsCleared](ev) {
				if updates == 3 {
					assert.NoError(t, poller.Sender().Send(Quit{}))
				} else {
					updates++
				}
			}
		}
	})

	assert.True(t, poller.Exited())
	assert.Equal(t, 3, updates)
}

func TestPollerEmitsEventsClearedWhenEmpty(t *testing.T) {
	poller := NewPoller()

	ev, ok := poller.NextEvent()
	require.True(t, ok)
	assert.True(t, Is[EventsCleared](ev), "expected EventsCleared, got %s", TypeName(ev))
}

func TestPollerYieldsQueuedEventsBeforeClearing(t *testing.T) {
	poller := NewPoller()
	sender := poller.Sender()
	require.NoError(t, sender.Send("a"))
	require.NoError(t, sender.Send("b"))

	var got []Event
	for i := 0; i < 3; i++ {
		ev, ok := poller.NextEvent()
		require.True(t, ok)
		got = append(got, ev)
	}
	assert.Equal(t, []Event{"a", "b", EventsCleared{}}, got)
}

func TestPollerDoesNotLoopWhenQuitIsSentWhileHandlingQuit(t *testing.T) {
	poller := NewPoller()
	quits := 0

	withTimeout(t, 100*time.Millisecond, func() {
		for {
			ev, ok := poller.NextEvent()
			if !ok {
				return
			}
			if Is[Quit](ev) {
				quits++
			}
			if Is[Quit](ev) || Is[EventsCleared](ev) {
				err := poller.Sender().Send(Quit{})
				if poller.Exited() {
					assert.ErrorIs(t, err, errspkg.ErrReceiverDropped)
				}
			}
		}
	})

	assert.Equal(t, 1, quits, "exactly one Quit is ever observed")
	_, ok := poller.NextEvent()
	assert.False(t, ok)
}

func TestPollerDiscardsEventsQueuedAfterQuit(t *testing.T) {
	poller := NewPoller()
	sender := poller.Sender()
	require.NoError(t, sender.Send(Quit{}))
	require.NoError(t, sender.Send("after"))

	ev, ok := poller.NextEvent()
	require.True(t, ok)
	assert.True(t, Is[Quit](ev))

	_, ok = poller.NextEvent()
	assert.False(t, ok)
}
