package durable

import "errors"

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// Record is a single persisted key-value pair in its encoded string form.
type Record struct {
	Key   string
	Value string
}

// MemoryPath is the sentinel path for a purely in-memory engine.
// An engine opened with this path creates no directories or files and loses
// its contents when closed.
const MemoryPath = ":memory:"

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrTimeout is returned when a synchronous round trip to the engine
	// exceeds the configured wait. The engine still applies the operation
	// once it reaches the head of the queue; the caller must not assume
	// a rollback happened.
	ErrTimeout = errors.New("durable: request timed out")

	// ErrClosed is returned for requests issued after Close.
	ErrClosed = errors.New("durable: engine is closed")
)

// --------------------------------------------------------------------------
// Engine Interface
// --------------------------------------------------------------------------

// Engine defines the interface for durable storage backends.
// All methods are safe for concurrent use. Implementations serialize every
// mutation through a single writer, so concurrent Persist calls for different
// keys are still applied one at a time, in a total order.
type Engine interface {

	// Persist inserts or updates a record. If the key already exists the old
	// value is overwritten. Persist returns nil only after the write has been
	// committed by the backing storage.
	Persist(key, value string) (err error)

	// Fetch retrieves the value for a key. The boolean return value indicates
	// whether the key was found; an absent key is not an error.
	Fetch(key string) (value string, found bool, err error)

	// LoadAll returns every persisted record. Enumeration order is
	// unspecified. Intended for the initial load of a full in-memory mirror.
	LoadAll() (records []Record, err error)

	// Close shuts down the engine and releases the underlying storage.
	// Pending requests that have not reached the worker are rejected
	// with ErrClosed.
	Close() (err error)
}
