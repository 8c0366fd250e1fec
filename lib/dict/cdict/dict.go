package cdict

import (
	"fmt"

	"github.com/ValentinKolb/dDict/lib/codec"
	"github.com/ValentinKolb/dDict/lib/dict"
	"github.com/ValentinKolb/dDict/lib/dict/registry"
	"github.com/ValentinKolb/dDict/lib/durable"
	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultCacheLimit is used when New is called with a limit < 1.
const DefaultCacheLimit = 1024

var (
	hitCounter      = metrics.GetOrCreateCounter("ddict_cache_hits_total")
	missCounter     = metrics.GetOrCreateCounter("ddict_cache_misses_total")
	evictionCounter = metrics.GetOrCreateCounter("ddict_cache_evictions_total")
)

type dictImpl[K comparable, V any] struct {
	engine durable.Engine
	keys   codec.Codec[K]
	vals   codec.Codec[V]
	cache  *xsync.MapOf[K, V]
	fills  *xsync.Counter
	limit  int64
	reg    registry.IRegistry
}

// New creates a new cache-limited dictionary instance. The cache starts
// empty (loading everything up front would defeat the point of bounding
// memory) and holds at most limit fill operations worth of entries before
// it is cleared in bulk.
func New[K comparable, V any](
	factory dict.EngineFactory,
	keys codec.Codec[K],
	vals codec.Codec[V],
	limit int,
) (dict.IDict[K, V], error) {
	engine, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	if limit < 1 {
		limit = DefaultCacheLimit
	}

	return &dictImpl[K, V]{
		engine: engine,
		keys:   keys,
		vals:   vals,
		cache:  xsync.NewMapOf[K, V](),
		fills:  xsync.NewCounter(),
		limit:  int64(limit),
		reg:    registry.New(),
	}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see dict/interface.go)
// --------------------------------------------------------------------------

func (d *dictImpl[K, V]) Set(key K, value V) error {
	encodedKey, err := d.keys.Encode(key)
	if err != nil {
		return dict.NewError(dict.RetCEncodingFailed, fmt.Sprintf("failed to encode key: %v", err))
	}
	encodedValue, err := d.vals.Encode(value)
	if err != nil {
		return dict.NewError(dict.RetCEncodingFailed, fmt.Sprintf("failed to encode value: %v", err))
	}

	// Disk before memory: the cache only ever reflects committed writes
	if err := d.engine.Persist(encodedKey, encodedValue); err != nil {
		return dict.NewEngineError(dict.RetCPersistFailed, err)
	}

	// A write refreshes the cached entry but is not a fill operation,
	// so the fill counter stays untouched
	d.cache.Store(key, value)

	d.reg.NotifyAll()
	d.reg.NotifyKey(encodedKey)

	return nil
}

func (d *dictImpl[K, V]) Get(key K) (V, bool, error) {
	var zero V

	if value, loaded := d.cache.Load(key); loaded {
		hitCounter.Inc()
		return value, true, nil
	}
	missCounter.Inc()

	// Cache miss: the engine's table is authoritative
	encodedKey, err := d.keys.Encode(key)
	if err != nil {
		return zero, false, dict.NewError(dict.RetCEncodingFailed, fmt.Sprintf("failed to encode key: %v", err))
	}

	encodedValue, found, err := d.engine.Fetch(encodedKey)
	if err != nil {
		return zero, false, dict.NewEngineError(dict.RetCFetchFailed, err)
	}
	if !found {
		// Absent on disk too: no cache mutation, no counter mutation
		return zero, false, nil
	}

	value, err := d.vals.Decode(encodedValue)
	if err != nil {
		return zero, false, dict.NewError(dict.RetCEncodingFailed, fmt.Sprintf("failed to decode value for key %q: %v", encodedKey, err))
	}

	// Bulk eviction: at the threshold the whole cache goes, then the fresh
	// pair is inserted into the empty cache. The counter tracks fill
	// operations, not distinct keys, so thrashing misses on one key count
	// against the limit too. The check/clear/store sequence is not atomic:
	// concurrent fills at the threshold may each clear, or slip in between
	// Clear and Store, briefly leaving more than one post-eviction entry.
	// Harmless, the table stays authoritative and the cache a subset of it.
	if d.fills.Value() >= d.limit {
		d.cache.Clear()
		d.fills.Reset()
		evictionCounter.Inc()
	}
	d.cache.Store(key, value)
	d.fills.Inc()

	return value, true, nil
}

func (d *dictImpl[K, V]) ToList() ([]dict.Entry[K, V], error) {
	// Cache contents only, never the full dataset
	entries := make([]dict.Entry[K, V], 0, d.cache.Size())
	d.cache.Range(func(key K, value V) bool {
		entries = append(entries, dict.Entry[K, V]{Key: key, Value: value})
		return true
	})
	return entries, nil
}

func (d *dictImpl[K, V]) Len() int {
	return d.cache.Size()
}

func (d *dictImpl[K, V]) Subscribe(fn dict.Subscriber) error {
	return d.reg.Subscribe(fn)
}

func (d *dictImpl[K, V]) SubscribeKey(key K, fn dict.Subscriber) error {
	encodedKey, err := d.keys.Encode(key)
	if err != nil {
		return dict.NewError(dict.RetCEncodingFailed, fmt.Sprintf("failed to encode key: %v", err))
	}
	return d.reg.SubscribeKey(encodedKey, fn)
}

func (d *dictImpl[K, V]) Close() error {
	if err := d.reg.Close(); err != nil {
		return err
	}
	return d.engine.Close()
}
