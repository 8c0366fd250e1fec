// Package dict provides a high-level interface for a durable concurrent
// dictionary: a key-value mapping that behaves like an in-process concurrent
// map but mirrors every write to an on-disk table, so the dataset survives
// process restarts. It serves as an abstraction layer over the lower-level
// durable.Engine implementations, adding codecs, in-memory serving of reads,
// change subscriptions and unified error handling.
//
// The package focuses on:
//   - A unified generic interface (IDict) for dictionary operations across
//     different implementations
//   - Pluggable storage backend architecture through the EngineFactory pattern
//   - Durability before visibility: a write is acknowledged and becomes
//     readable only after the backing engine has committed it
//
// Key Components:
//
//   - IDict Interface: The core abstraction defining operations for
//     interacting with a dictionary. All implementations share this common
//     interface, allowing applications to switch between the unbounded and
//     the cache-limited implementation without code changes.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes and descriptive messages. This system allows applications to make
//     informed decisions based on specific error conditions (a timed out
//     write, say, versus a failed one) rather than generic errors.
//
//   - EngineFactory: A function type that abstracts the creation of the
//     underlying durable.Engine instance, providing dependency injection and
//     flexible configuration of storage backends.
//
// Implementations:
//
//	The package includes two implementations of the IDict interface:
//
//	- Mirrored Dictionary (mdict): keeps the entire dataset in a concurrent
//	  in-memory mirror for O(1) reads with no disk fallback. The mirror is
//	  loaded once when the dictionary is built. Suitable for datasets that
//	  fit in memory.
//	  Available in the "github.com/ValentinKolb/dDict/lib/dict/mdict" package.
//
//	- Cached Dictionary (cdict): keeps only a bounded cache of recently read
//	  entries and falls back to the engine on a miss. Suitable for datasets
//	  too large to mirror fully.
//	  Available in the "github.com/ValentinKolb/dDict/lib/dict/cdict" package.
//
// This interface-driven approach allows applications to:
//   - Switch between the mirrored and cached variant depending on dataset size
//   - Handle errors in a consistent and type-safe manner across implementations
//   - Abstract storage implementation details from application logic
package dict
