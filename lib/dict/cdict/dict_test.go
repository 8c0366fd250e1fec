package cdict

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/dDict/lib/codec"
	"github.com/ValentinKolb/dDict/lib/dict"
	dicttesting "github.com/ValentinKolb/dDict/lib/dict/testing"
	"github.com/ValentinKolb/dDict/lib/durable"
	"github.com/ValentinKolb/dDict/lib/durable/engines/sqlet"
	"github.com/stretchr/testify/require"
)

func memoryFactory() dict.EngineFactory {
	return func() (durable.Engine, error) {
		return sqlet.New(sqlet.DefaultOptions(durable.MemoryPath))
	}
}

func fileFactory(dir string) dict.EngineFactory {
	return func() (durable.Engine, error) {
		return sqlet.New(sqlet.DefaultOptions(dir))
	}
}

func Test(t *testing.T) {
	dicttesting.RunDictTests(t, "CachedDict", func(t testing.TB) dict.IDict[string, string] {
		d, err := New(memoryFactory(), codec.String(), codec.String(), 1024)
		if err != nil {
			t.Fatalf("Failed to create dictionary: %v", err)
		}
		return d
	})
}

// seed persists n keys via a throwaway dictionary, then returns a fresh
// dictionary with an empty cache over the same path.
func seed(t *testing.T, dir string, n, limit int) dict.IDict[string, string] {
	t.Helper()

	writer, err := New(fileFactory(dir), codec.String(), codec.String(), limit)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, writer.Set(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i)))
	}
	require.NoError(t, writer.Close())

	reader, err := New(fileFactory(dir), codec.String(), codec.String(), limit)
	require.NoError(t, err)
	return reader
}

// TestStartsEmpty verifies that a cache-limited dictionary never preloads the
// persisted dataset.
func TestStartsEmpty(t *testing.T) {
	d := seed(t, t.TempDir(), 5, 1024)
	defer d.Close()

	require.Equal(t, 0, d.Len())

	entries, err := d.ToList()
	require.NoError(t, err)
	require.Empty(t, entries, "ToList must reflect only the cache, which starts empty")
}

// TestFillOnMiss verifies the cache-then-disk read path.
func TestFillOnMiss(t *testing.T) {
	d := seed(t, t.TempDir(), 2, 1024)
	defer d.Close()

	value, loaded, err := d.Get("key-0")
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, "value-0", value)

	// The fetched pair is now cached
	require.Equal(t, 1, d.Len())

	// A hit does not grow the cache
	_, loaded, err = d.Get("key-0")
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, 1, d.Len())
}

// TestMissOnDiskTooMutatesNothing verifies that a key absent from cache and
// disk is reported absent and leaves the cache untouched.
func TestMissOnDiskTooMutatesNothing(t *testing.T) {
	d := seed(t, t.TempDir(), 1, 1024)
	defer d.Close()

	_, loaded, err := d.Get("never-written")
	require.NoError(t, err)
	require.False(t, loaded)
	require.Equal(t, 0, d.Len())
}

// TestBulkEviction verifies that the fill after the limit-th fill clears the
// entire cache and that only the freshly filled entry survives.
func TestBulkEviction(t *testing.T) {
	const limit = 3

	d := seed(t, t.TempDir(), limit+2, limit)
	defer d.Close()

	// Exactly limit fills: no eviction yet
	for i := 0; i < limit; i++ {
		_, loaded, err := d.Get(fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		require.True(t, loaded)
	}
	require.Equal(t, limit, d.Len())

	// The limit+1-th fill triggers the bulk clear; immediately afterwards
	// the cache holds only the newly filled entry
	value, loaded, err := d.Get(fmt.Sprintf("key-%d", limit))
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, fmt.Sprintf("value-%d", limit), value)

	entries, err := d.ToList()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, fmt.Sprintf("key-%d", limit), entries[0].Key)

	// Evicted keys are still on disk and fill the cache again on demand
	value, loaded, err = d.Get("key-0")
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, "value-0", value)
	require.Equal(t, 2, d.Len())
}

// TestWritesAreNotFills verifies that Set refreshes the cache without
// counting against the fill limit.
func TestWritesAreNotFills(t *testing.T) {
	const limit = 3

	d, err := New(func() (durable.Engine, error) {
		return sqlet.New(sqlet.DefaultOptions(durable.MemoryPath))
	}, codec.String(), codec.String(), limit)
	require.NoError(t, err)
	defer d.Close()

	for i := 0; i < limit*2; i++ {
		require.NoError(t, d.Set(fmt.Sprintf("key-%d", i), "value"))
	}

	// All writes are cached; only fill operations trigger the bulk clear
	require.Equal(t, limit*2, d.Len())
}

// TestDefaultLimit covers the limit fallback.
func TestDefaultLimit(t *testing.T) {
	d, err := New(memoryFactory(), codec.String(), codec.String(), 0)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Set("k", "v"))
}
