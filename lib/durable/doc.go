// Package durable defines the interface for the on-disk engines backing a
// dictionary. An engine owns the authoritative copy of the dataset: every
// write a dictionary acknowledges has been committed by its engine first, and
// on a cache miss the engine is the fallback source of truth.
//
// The package focuses on:
//   - A single interface (Engine) for persisting and fetching encoded records
//   - Strict write linearization: implementations serialize all mutations,
//     and a Persist call must not return success before the write is committed
//   - Bounded waiting: synchronous round trips fail with ErrTimeout instead of
//     blocking the caller forever
//
// Engines operate purely on the codec-encoded string representation of keys
// and values. Encoding and decoding happen above this layer, in the
// dictionary implementations, so an engine never sees a domain type.
//
// Implementations:
//
//   - SQLite engine (sqlet): a single worker goroutine owning one database
//     connection, serving requests from a mailbox channel.
//     Available in the "github.com/ValentinKolb/dDict/lib/durable/engines/sqlet" package.
package durable
