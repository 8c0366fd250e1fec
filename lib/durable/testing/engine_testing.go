package testing

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/dDict/lib/durable"
)

// EngineFactory is a function that creates a new instance of an Engine
// implementation for a single test
type EngineFactory func(t testing.TB) durable.Engine

// RunEngineTests runs a conformance test suite for an Engine implementation.
func RunEngineTests(t *testing.T, name string, factory EngineFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Persist&Fetch", func(t *testing.T) {
			testPersistFetch(t, factory(t))
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory(t))
		})

		t.Run("FetchMissing", func(t *testing.T) {
			testFetchMissing(t, factory(t))
		})

		t.Run("LoadAll", func(t *testing.T) {
			testLoadAll(t, factory(t))
		})

		t.Run("ConcurrentPersist", func(t *testing.T) {
			testConcurrentPersist(t, factory(t))
		})

		t.Run("Closed", func(t *testing.T) {
			testClosed(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPersistFetch(t *testing.T, engine durable.Engine) {
	defer engine.Close()

	if err := engine.Persist("test-key", "test-value"); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}

	value, found, err := engine.Fetch("test-key")
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	if !found {
		t.Errorf("Expected key test-key to be found after Persist")
	}
	if value != "test-value" {
		t.Errorf("Expected value test-value, got %s", value)
	}
}

func testOverwrite(t *testing.T, engine durable.Engine) {
	defer engine.Close()

	if err := engine.Persist("test-key", "value1"); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}
	if err := engine.Persist("test-key", "value2"); err != nil {
		t.Fatalf("Failed to persist again: %v", err)
	}

	value, found, err := engine.Fetch("test-key")
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	if !found {
		t.Errorf("Expected key test-key to be found after overwrite")
	}
	if value != "value2" {
		t.Errorf("Expected overwritten value value2, got %s", value)
	}

	// Overwriting must not duplicate the record
	records, err := engine.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load all records: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record after overwrite, got %d", len(records))
	}
}

func testFetchMissing(t *testing.T, engine durable.Engine) {
	defer engine.Close()

	_, found, err := engine.Fetch("nonexistent-key")
	if err != nil {
		t.Errorf("Expected no error for a missing key, got %v", err)
	}
	if found {
		t.Errorf("Expected nonexistent key to return found=false")
	}
}

func testLoadAll(t *testing.T, engine durable.Engine) {
	defer engine.Close()

	records, err := engine.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load from empty engine: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty engine to load 0 records, got %d", len(records))
	}

	want := map[string]string{}
	for i := 0; i < 25; i++ {
		key := fmt.Sprintf("key-%d", i)
		value := fmt.Sprintf("value-%d", i)
		want[key] = value
		if err := engine.Persist(key, value); err != nil {
			t.Fatalf("Failed to persist %s: %v", key, err)
		}
	}

	records, err = engine.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load all records: %v", err)
	}
	if len(records) != len(want) {
		t.Errorf("Expected %d records, got %d", len(want), len(records))
	}
	for _, r := range records {
		if want[r.Key] != r.Value {
			t.Errorf("Expected value %s for key %s, got %s", want[r.Key], r.Key, r.Value)
		}
	}
}

func testConcurrentPersist(t *testing.T, engine durable.Engine) {
	defer engine.Close()

	const goroutines = 8
	const perGoroutine = 20

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				key := fmt.Sprintf("key-%d-%d", g, i)
				if err := engine.Persist(key, "value"); err != nil {
					t.Errorf("Failed to persist %s: %v", key, err)
				}
			}
		}(g)
	}
	wg.Wait()

	records, err := engine.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load all records: %v", err)
	}
	if len(records) != goroutines*perGoroutine {
		t.Errorf("Expected %d records, got %d", goroutines*perGoroutine, len(records))
	}
}

func testClosed(t *testing.T, engine durable.Engine) {
	if err := engine.Persist("test-key", "test-value"); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}

	if err := engine.Close(); err != nil {
		t.Fatalf("Failed to close engine: %v", err)
	}
	// Close must be idempotent
	if err := engine.Close(); err != nil {
		t.Errorf("Expected second Close to succeed, got %v", err)
	}

	// Every request after Close must be rejected; none may slip through to
	// a worker that has not yet observed the shutdown
	for i := 0; i < 50; i++ {
		if err := engine.Persist("other-key", "value"); !errors.Is(err, durable.ErrClosed) {
			t.Errorf("Expected ErrClosed after Close, got %v", err)
		}
	}
	if _, _, err := engine.Fetch("test-key"); !errors.Is(err, durable.ErrClosed) {
		t.Errorf("Expected ErrClosed after Close, got %v", err)
	}
}
