// Package registry implements the subscriber registry of a dictionary. It
// decouples write-completion notification from the write path: after a
// successful Set, the dictionary enqueues a notification and returns to the
// caller without waiting for any callback to run.
//
// The package focuses on:
//   - A global subscriber list (notified on every successful write) and
//     per-key subscriber lists (notified only on writes of the matching key)
//   - Registration that blocks only until the registry acknowledges it
//   - Fire-and-forget notification dispatch that never blocks the writer
//
// Key Components:
//
//   - registryImpl: the registry structure. A single goroutine owns both
//     subscriber lists and processes one message at a time from an unbounded
//     mailbox, giving a total order over all registrations and dispatches.
//     Because the mailbox grows instead of filling up, enqueueing a
//     notification never blocks: a slow subscriber delays dispatch, never
//     the writer.
//
//   - Dispatch ordering: subscribers are prepended on registration, so
//     callbacks run most-recently-subscribed first. Callers that need
//     insertion-order delivery must not rely on this registry.
//
//   - Panic isolation: each callback is invoked under a recover. A panicking
//     subscriber loses its own notification and is logged, but can neither
//     kill the dispatch goroutine nor affect other subscribers.
//
// There is no unsubscribe operation; subscriber lists grow monotonically for
// the lifetime of the registry.
package registry
