// Package mdict implements the unbounded, fully mirrored dictionary. The
// entire persisted dataset is decoded into a concurrent in-memory map when
// the dictionary is built, and every acknowledged write updates both the
// engine and the mirror, so reads never touch the disk.
//
// Consistency model:
//
//   - Set persists first, mirrors second, notifies third. A write that the
//     engine rejects leaves the mirror and the subscribers untouched.
//   - Get is a pure concurrent map lookup with no disk fallback. A key
//     absent from the mirror is reported as absent; after every successful
//     Set the mirror and the table agree, so this never loses data.
//   - A reader racing a concurrent Set of the same key observes either the
//     previous or the new value, never a torn one.
//
// The mirror is an xsync.MapOf, so Get never blocks another Get and writes
// to different keys do not contend.
package mdict
