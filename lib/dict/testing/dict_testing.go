package testing

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/dDict/lib/dict"
)

// DictFactory is a function that creates a new string-to-string dictionary
// instance for a single test
type DictFactory func(t testing.TB) dict.IDict[string, string]

// RunDictTests runs a conformance test suite for an IDict implementation.
func RunDictTests(t *testing.T, name string, factory DictFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("GetMissing", func(t *testing.T) {
			testGetMissing(t, factory(t))
		})

		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory(t))
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory(t))
		})

		t.Run("ToList", func(t *testing.T) {
			testToList(t, factory(t))
		})

		t.Run("Subscribers", func(t *testing.T) {
			testSubscribers(t, factory(t))
		})

		t.Run("SetAfterClose", func(t *testing.T) {
			testSetAfterClose(t, factory(t))
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// eventually polls cond until it holds or the deadline passes. Used for the
// fire-and-forget subscriber notifications.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("Condition not met in time: %s", msg)
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testGetMissing(t *testing.T, d dict.IDict[string, string]) {
	defer d.Close()

	_, loaded, err := d.Get("hello")
	if err != nil {
		t.Errorf("Expected no error for a missing key, got %v", err)
	}
	if loaded {
		t.Errorf("Expected missing key to return loaded=false")
	}
}

func testSetGet(t *testing.T, d dict.IDict[string, string]) {
	defer d.Close()

	if err := d.Set("hello", "world"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	value, loaded, err := d.Get("hello")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key hello to exist after Set")
	}
	if value != "world" {
		t.Errorf("Expected value world, got %s", value)
	}
}

func testOverwrite(t *testing.T, d dict.IDict[string, string]) {
	defer d.Close()

	if err := d.Set("key", "value1"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := d.Set("key", "value2"); err != nil {
		t.Fatalf("Failed to set again: %v", err)
	}

	value, loaded, err := d.Get("key")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key to exist after overwrite")
	}
	if value != "value2" {
		t.Errorf("Expected overwritten value value2, got %s", value)
	}

	if n := d.Len(); n != 1 {
		t.Errorf("Expected 1 entry after overwrite, got %d", n)
	}
}

func testToList(t *testing.T, d dict.IDict[string, string]) {
	defer d.Close()

	want := map[string]string{}
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key-%d", i)
		value := fmt.Sprintf("value-%d", i)
		want[key] = value
		if err := d.Set(key, value); err != nil {
			t.Fatalf("Failed to set %s: %v", key, err)
		}
	}

	entries, err := d.ToList()
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != len(want) {
		t.Errorf("Expected %d entries, got %d", len(want), len(entries))
	}
	for _, e := range entries {
		if want[e.Key] != e.Value {
			t.Errorf("Expected value %s for key %s, got %s", want[e.Key], e.Key, e.Value)
		}
	}
}

func testSubscribers(t *testing.T, d dict.IDict[string, string]) {
	defer d.Close()

	var global, keyed atomic.Int64

	if err := d.Subscribe(func() { global.Add(1) }); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	if err := d.SubscribeKey("watched", func() { keyed.Add(1) }); err != nil {
		t.Fatalf("Failed to subscribe to key: %v", err)
	}

	if err := d.Set("watched", "value"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	eventually(t, func() bool { return global.Load() == 1 }, "global subscriber notified once")
	eventually(t, func() bool { return keyed.Load() == 1 }, "key subscriber notified once")

	// A write to a different key triggers only the global subscriber
	if err := d.Set("other", "value"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	eventually(t, func() bool { return global.Load() == 2 }, "global subscriber notified again")
	time.Sleep(50 * time.Millisecond)
	if n := keyed.Load(); n != 1 {
		t.Errorf("Expected key subscriber to stay at 1 notification, got %d", n)
	}
}

// testSetAfterClose verifies that a failing write leaves the previously
// readable value untouched.
func testSetAfterClose(t *testing.T, d dict.IDict[string, string]) {
	if err := d.Set("key", "before"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if err := d.Set("key", "after"); err == nil {
		t.Errorf("Expected Set on a closed dictionary to fail")
	}

	value, loaded, err := d.Get("key")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !loaded || value != "before" {
		t.Errorf("Expected failed Set to leave value at %q, got %q (loaded=%v)", "before", value, loaded)
	}
}

func testConcurrentAccess(t *testing.T, d dict.IDict[string, string]) {
	defer d.Close()

	const goroutines = 8
	const perGoroutine = 20

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				key := fmt.Sprintf("key-%d-%d", g, i)
				if err := d.Set(key, "value"); err != nil {
					t.Errorf("Failed to set %s: %v", key, err)
					continue
				}
				// Read-your-write must hold under concurrency
				value, loaded, err := d.Get(key)
				if err != nil {
					t.Errorf("Failed to get %s: %v", key, err)
					continue
				}
				if !loaded || value != "value" {
					t.Errorf("Expected to read back %s right after writing it", key)
				}
			}
		}(g)
	}
	wg.Wait()
}
