package dict

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/dDict/lib/durable"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// EngineFactory is a function type that creates the durable engine used by a
// dictionary. This is used to abstract the creation of the engine from the
// dictionary implementation.
type EngineFactory func() (durable.Engine, error)

// Subscriber is a zero-argument callback invoked after a successful write.
// Subscribers are a trusted extension point: they must not block for long
// and should not panic (a panicking subscriber is isolated and logged, its
// notification is lost).
type Subscriber func()

// Entry is a single key-value pair as returned by ToList.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// IDict is the generic interface for interacting with a durable dictionary.
// All write operations return only an error (nil on success), while read
// operations return the requested data along with an error (nil on success).
//
// All methods are safe for concurrent use.
type IDict[K comparable, V any] interface {
	// Set inserts or updates a key-value pair. It returns nil only after the
	// pair has been committed to the durable engine; only then is the new
	// value visible to readers and are subscribers notified. On error,
	// neither memory nor subscribers are touched.
	Set(key K, value V) (err error)
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found; an absent key is not an error.
	Get(key K) (value V, loaded bool, err error)
	// ToList enumerates the in-memory key-value pairs. For the mirrored
	// implementation this is the full dataset; for the cached implementation
	// it is only the current cache contents. Enumeration order is unspecified.
	ToList() (entries []Entry[K, V], err error)
	// Len returns the number of in-memory entries (see ToList for what
	// "in-memory" means per implementation).
	Len() (n int)
	// Subscribe registers a callback invoked after every successful Set,
	// regardless of key. It returns once the registration is acknowledged.
	// There is no unsubscribe; the registration lives as long as the dictionary.
	Subscribe(fn Subscriber) (err error)
	// SubscribeKey registers a callback invoked after every successful Set
	// of the given key. It returns once the registration is acknowledged.
	SubscribeKey(key K, fn Subscriber) (err error)
	// Close shuts down the dictionary and its engine. Operations issued
	// after Close fail with an error.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCPersistFailed:
		errorCode = "PersistFailed"
	case RetCFetchFailed:
		errorCode = "FetchFailed"
	case RetCEncodingFailed:
		errorCode = "EncodingFailed"
	case RetCTimeout:
		errorCode = "Timeout"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("DictError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// NewEngineError converts an engine failure into a typed Error. Timeouts map
// to RetCTimeout regardless of the fallback code, so callers can always
// distinguish an unacknowledged operation from a failed one.
func NewEngineError(fallback RetCode, err error) *Error {
	if errors.Is(err, durable.ErrTimeout) {
		return NewError(RetCTimeout, err.Error())
	}
	return NewError(fallback, err.Error())
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess        RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                 // 1: Operation failed due to an internal error.
	RetCPersistFailed                 // 2: The engine failed to commit a write.
	RetCFetchFailed                   // 3: The engine failed a disk read (distinct from a missing key).
	RetCEncodingFailed                // 4: A codec failed to encode or decode a key or value.
	RetCTimeout                       // 5: The engine round trip exceeded the configured wait.
)
