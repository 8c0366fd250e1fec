package mdict

import (
	"fmt"

	"github.com/ValentinKolb/dDict/lib/codec"
	"github.com/ValentinKolb/dDict/lib/dict"
	"github.com/ValentinKolb/dDict/lib/dict/registry"
	"github.com/ValentinKolb/dDict/lib/durable"
	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

var insertCounter = metrics.GetOrCreateCounter("ddict_mirror_inserts_total")

type dictImpl[K comparable, V any] struct {
	engine durable.Engine
	keys   codec.Codec[K]
	vals   codec.Codec[V]
	mirror *xsync.MapOf[K, V]
	reg    registry.IRegistry
}

// New creates a new mirrored dictionary instance. The codecs translate
// between the domain key/value types and the persisted string encoding.
//
// Build-time failures (engine creation, initial load, a record the codecs
// cannot decode) abort the construction; no partial dictionary is returned.
func New[K comparable, V any](
	factory dict.EngineFactory,
	keys codec.Codec[K],
	vals codec.Codec[V],
) (dict.IDict[K, V], error) {
	engine, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	// Load the full persisted dataset into the mirror
	records, err := engine.LoadAll()
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("failed to load persisted records: %w", err)
	}

	mirror := xsync.NewMapOf[K, V]()
	for _, r := range records {
		k, err := keys.Decode(r.Key)
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("failed to decode persisted key %q: %w", r.Key, err)
		}
		v, err := vals.Decode(r.Value)
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("failed to decode persisted value for key %q: %w", r.Key, err)
		}
		mirror.Store(k, v)
	}

	return &dictImpl[K, V]{
		engine: engine,
		keys:   keys,
		vals:   vals,
		mirror: mirror,
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

	// Disk before memory: the mirror only ever reflects committed writes
	if err := d.engine.Persist(encodedKey, encodedValue); err != nil {
		return dict.NewEngineError(dict.RetCPersistFailed, err)
	}

	d.mirror.Store(key, value)
	insertCounter.Inc()

	// Fire-and-forget; notification latency never blocks the writer
	d.reg.NotifyAll()
	d.reg.NotifyKey(encodedKey)

	return nil
}

func (d *dictImpl[K, V]) Get(key K) (V, bool, error) {
	value, loaded := d.mirror.Load(key)
	return value, loaded, nil
}

func (d *dictImpl[K, V]) ToList() ([]dict.Entry[K, V], error) {
	entries := make([]dict.Entry[K, V], 0, d.mirror.Size())
	d.mirror.Range(func(key K, value V) bool {
		entries = append(entries, dict.Entry[K, V]{Key: key, Value: value})
		return true
	})
	return entries, nil
}

func (d *dictImpl[K, V]) Len() int {
	return d.mirror.Size()
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
