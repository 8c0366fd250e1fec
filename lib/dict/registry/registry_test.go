package registry

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/dDict/lib/dict"
	"github.com/stretchr/testify/require"
)

// drain waits until all previously enqueued messages have been processed by
// exploiting mailbox FIFO order: a registration is acknowledged only after
// everything enqueued before it was dispatched.
func drain(t *testing.T, r IRegistry) {
	t.Helper()
	require.NoError(t, r.Subscribe(func() {}))
}

func TestFanOut(t *testing.T) {
	r := New()
	defer r.Close()

	var global, keyed atomic.Int64

	require.NoError(t, r.Subscribe(func() { global.Add(1) }))
	require.NoError(t, r.SubscribeKey("k", func() { keyed.Add(1) }))

	r.NotifyAll()
	r.NotifyKey("k")
	drain(t, r)

	require.EqualValues(t, 1, global.Load())
	require.EqualValues(t, 1, keyed.Load())

	// A different key triggers only the global subscriber
	r.NotifyAll()
	r.NotifyKey("other")
	drain(t, r)

	require.EqualValues(t, 2, global.Load())
	require.EqualValues(t, 1, keyed.Load())
}

func TestNotifyKeyWithoutSubscribersIsNoop(t *testing.T) {
	r := New()
	defer r.Close()

	r.NotifyKey("nobody-listens")
	drain(t, r)
}

// TestDispatchOrder verifies most-recently-subscribed-first dispatch, the
// consequence of prepend-based registration.
func TestDispatchOrder(t *testing.T) {
	r := New()
	defer r.Close()

	order := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		require.NoError(t, r.Subscribe(func() { order <- i }))
	}

	r.NotifyAll()
	drain(t, r)

	require.Len(t, order, 3)
	require.Equal(t, 2, <-order)
	require.Equal(t, 1, <-order)
	require.Equal(t, 0, <-order)
}

// TestPanicIsolation verifies that a panicking subscriber does not prevent
// the remaining subscribers from being notified.
func TestPanicIsolation(t *testing.T) {
	r := New()
	defer r.Close()

	var survived atomic.Int64

	require.NoError(t, r.Subscribe(func() { survived.Add(1) }))
	// Registered last, dispatched first
	require.NoError(t, r.Subscribe(func() { panic("boom") }))

	r.NotifyAll()
	drain(t, r)

	require.EqualValues(t, 1, survived.Load())

	// The registry keeps dispatching after a panic
	r.NotifyAll()
	drain(t, r)
	require.EqualValues(t, 2, survived.Load())
}

// TestNotifyDoesNotBlockOnSlowSubscriber verifies that a stalled subscriber
// delays dispatch but never the notifying caller, and that queued
// notifications are all delivered once the subscriber resumes.
func TestNotifyDoesNotBlockOnSlowSubscriber(t *testing.T) {
	r := New()
	defer r.Close()

	const notifications = 200

	release := make(chan struct{})
	var delivered atomic.Int64
	require.NoError(t, r.Subscribe(func() {
		<-release
		delivered.Add(1)
	}))

	// With the dispatch goroutine parked inside the subscriber, every
	// notify call must still return immediately
	done := make(chan struct{})
	go func() {
		for i := 0; i < notifications; i++ {
			r.NotifyAll()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifying blocked on a slow subscriber")
	}

	// Unblock the subscriber; every queued notification is dispatched
	close(release)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && delivered.Load() < notifications {
		time.Sleep(5 * time.Millisecond)
	}
	require.EqualValues(t, notifications, delivered.Load())
}

func TestClosedRegistry(t *testing.T) {
	r := New()
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	err := r.Subscribe(func() {})
	require.Error(t, err)

	var dictErr *dict.Error
	require.ErrorAs(t, err, &dictErr)
	require.Equal(t, dict.RetCInternalError, dictErr.Code)

	// Notifications after close must not block
	r.NotifyAll()
	r.NotifyKey("k")
}
