package sqlet

import (
	"testing"
	"time"

	"github.com/ValentinKolb/dDict/lib/durable"
	enginetesting "github.com/ValentinKolb/dDict/lib/durable/testing"
	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	enginetesting.RunEngineTests(t, "SQLite", func(t testing.TB) durable.Engine {
		engine, err := New(DefaultOptions(t.TempDir()))
		if err != nil {
			t.Fatalf("Failed to create engine: %v", err)
		}
		return engine
	})

	enginetesting.RunEngineTests(t, "SQLite(memory)", func(t testing.TB) durable.Engine {
		engine, err := New(DefaultOptions(durable.MemoryPath))
		if err != nil {
			t.Fatalf("Failed to create engine: %v", err)
		}
		return engine
	})
}

// TestReopen verifies that a file-backed engine reproduces its records after
// a close and reopen against the same path.
func TestReopen(t *testing.T) {
	dir := t.TempDir()

	engine, err := New(DefaultOptions(dir))
	require.NoError(t, err)

	require.NoError(t, engine.Persist("hello", "world"))
	require.NoError(t, engine.Persist("answer", "42"))
	require.NoError(t, engine.Close())

	reopened, err := New(DefaultOptions(dir))
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Fetch("hello")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "world", value)

	records, err := reopened.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

// TestMemoryEngineIsEphemeral verifies that the memory sentinel creates no
// files and loses its contents on close.
func TestMemoryEngineIsEphemeral(t *testing.T) {
	engine, err := New(DefaultOptions(durable.MemoryPath))
	require.NoError(t, err)

	require.NoError(t, engine.Persist("hello", "world"))
	require.NoError(t, engine.Close())

	reopened, err := New(DefaultOptions(durable.MemoryPath))
	require.NoError(t, err)
	defer reopened.Close()

	_, found, err := reopened.Fetch("hello")
	require.NoError(t, err)
	require.False(t, found)
}

// TestRoundTripTimeout verifies that a round trip against a stalled worker
// fails with durable.ErrTimeout instead of blocking the caller forever. The
// engine is assembled without its worker goroutine, so the mailbox is never
// drained.
func TestRoundTripTimeout(t *testing.T) {
	e := &engineImpl{
		mailbox: make(chan request),
		timeout: 10 * time.Millisecond,
		done:    make(chan struct{}),
	}

	start := time.Now()
	err := e.Persist("k", "v")
	require.ErrorIs(t, err, durable.ErrTimeout)
	require.Less(t, time.Since(start), time.Second)

	// The reply wait times out the same way when the worker accepted the
	// request but never answers
	e.mailbox = make(chan request, 1)
	_, _, err = e.Fetch("k")
	require.ErrorIs(t, err, durable.ErrTimeout)
}

// TestNilOptionsDefaultsToMemory covers the options fallback.
func TestNilOptionsDefaultsToMemory(t *testing.T) {
	engine, err := New(nil)
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, engine.Persist("k", "v"))
}
