// Package sqlet implements the durable.Engine interface on top of SQLite.
// It provides the single-writer durability core of a dictionary: one
// goroutine owns the only database connection, and every persist and fetch
// request flows through its mailbox, giving a total order over all writes.
//
// The package focuses on:
//   - Strict "reply only after commit" semantics for writes
//   - A single serialized writer, avoiding SQLITE_BUSY contention entirely
//   - Bounded synchronous round trips with a configurable timeout
//   - One fixed table, created on open, holding encoded keys and values
//
// Key Components:
//
//   - engineImpl: the engine structure. It holds the *sql.DB (limited to one
//     connection), the mailbox channel and the shutdown signal. The public
//     methods never touch the database directly; they enqueue a request and
//     wait for the worker's reply.
//
//   - Worker loop: a single goroutine started by New. It drains the mailbox
//     one request at a time, executes the statement, and sends the result
//     back on the request's reply channel. Because the reply channels are
//     buffered, a caller that gave up waiting never blocks the worker.
//
//   - request/response: the mailbox protocol. Three request kinds exist:
//     persist (upsert), fetch (point select) and loadAll (full scan for the
//     initial mirror load).
//
// Timeout semantics: when a round trip exceeds the configured wait the caller
// receives durable.ErrTimeout, but the request stays in the mailbox and the
// worker will still execute it. A timed-out write is therefore not rolled
// back, it is merely unacknowledged.
//
// Storage layout: a single table with schema
// (key TEXT PRIMARY KEY NOT NULL, value TEXT NOT NULL). Upserts use
// ON CONFLICT(key) DO UPDATE. The special path ":memory:" opens an
// in-memory database and skips all directory creation; any other path is
// treated as a directory (created if absent) containing the database file.
//
// A failed statement is wrapped with context and returned to the caller; the
// worker itself keeps serving subsequent requests, a single bad record never
// takes the engine down.
package sqlet
