package sqlet

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ValentinKolb/dDict/lib/durable"
	"github.com/ValentinKolb/dDict/lib/logging"

	_ "github.com/mattn/go-sqlite3"
)

var log = logging.GetLogger("durable/sqlet")

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	dbFileName     = "ddict.db" // Database file name inside the store directory
	defaultTimeout = 10 * time.Second
	defaultMailbox = 64 // Mailbox channel capacity

	sqlSchema = `CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY NOT NULL,
		value TEXT NOT NULL
	)`
	sqlUpsert = `INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	sqlSelect  = `SELECT value FROM records WHERE key = ?`
	sqlScanAll = `SELECT key, value FROM records`
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures the engine behavior during initialization
type Options struct {
	Path    string        // Directory for the database file, or durable.MemoryPath
	Timeout time.Duration // Max wait for a synchronous round trip (0 = use default)
	Mailbox int           // Capacity of the request mailbox (0 = use default)
}

// DefaultOptions returns the default engine options for the given path
func DefaultOptions(path string) *Options {
	return &Options{
		Path:    path,
		Timeout: defaultTimeout,
		Mailbox: defaultMailbox,
	}
}

// --------------------------------------------------------------------------
// Mailbox Protocol
// --------------------------------------------------------------------------

type reqKind int

const (
	reqPersist reqKind = iota
	reqFetch
	reqLoadAll
)

// request is a single message sent to the worker goroutine
type request struct {
	kind  reqKind
	key   string
	value string
	reply chan response // Buffered (1) so the worker never blocks on a gone caller
}

// response is the worker's reply to a request
type response struct {
	value   string
	found   bool
	records []durable.Record
	err     error
}

// --------------------------------------------------------------------------
// Engine Structure
// --------------------------------------------------------------------------

// engineImpl implements durable.Engine backed by a single SQLite connection
type engineImpl struct {
	db      *sql.DB
	mailbox chan request
	timeout time.Duration
	done    chan struct{}
	closing sync.Once
}

// New creates a new SQLite engine with the specified options (optional)
// and starts its worker goroutine. It fails if directory creation, opening
// the database, or creating the schema fails; no partial engine is returned.
//
// Thread-safety: the returned engine is safe for concurrent use. New itself
// should only be called once per path.
func New(opts *Options) (durable.Engine, error) {

	// Generate default options if not provided
	if opts == nil {
		opts = DefaultOptions(durable.MemoryPath)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	mailbox := opts.Mailbox
	if mailbox <= 0 {
		mailbox = defaultMailbox
	}

	// Resolve the data source name, creating the directory for
	// file-backed databases
	dsn := durable.MemoryPath
	if opts.Path != durable.MemoryPath {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", opts.Path, err)
		}
		dsn = filepath.Join(opts.Path, dbFileName)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; all access goes through the
	// worker anyway, so pin the pool to a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, dsn != durable.MemoryPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	e := &engineImpl{
		db:      db,
		mailbox: make(chan request, mailbox),
		timeout: timeout,
		done:    make(chan struct{}),
	}

	go e.serve()

	log.Info("opened sqlite engine", "dsn", dsn)
	return e, nil
}

// applyPragmas sets the SQLite configuration. WAL mode only applies to
// file-backed databases.
func applyPragmas(db *sql.DB, fileBacked bool) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	if fileBacked {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Worker Loop
// --------------------------------------------------------------------------

// serve drains the mailbox one request at a time until the engine is closed.
// It is the only code that touches e.db after New returns.
func (e *engineImpl) serve() {
	for {
		select {
		case <-e.done:
			if err := e.db.Close(); err != nil {
				log.Warn("failed to close database", "err", err)
			}
			return
		case req := <-e.mailbox:
			req.reply <- e.handle(req)
		}
	}
}

// handle executes a single request against the database
func (e *engineImpl) handle(req request) response {
	switch req.kind {
	case reqPersist:
		if _, err := e.db.Exec(sqlUpsert, req.key, req.value); err != nil {
			return response{err: fmt.Errorf("failed to persist key %q: %w", req.key, err)}
		}
		return response{}

	case reqFetch:
		var value string
		err := e.db.QueryRow(sqlSelect, req.key).Scan(&value)
		if err == sql.ErrNoRows {
			return response{found: false}
		}
		if err != nil {
			return response{err: fmt.Errorf("failed to fetch key %q: %w", req.key, err)}
		}
		return response{value: value, found: true}

	case reqLoadAll:
		rows, err := e.db.Query(sqlScanAll)
		if err != nil {
			return response{err: fmt.Errorf("failed to scan records: %w", err)}
		}
		defer rows.Close()

		var records []durable.Record
		for rows.Next() {
			var r durable.Record
			if err := rows.Scan(&r.Key, &r.Value); err != nil {
				return response{err: fmt.Errorf("failed to scan record: %w", err)}
			}
			records = append(records, r)
		}
		if err := rows.Err(); err != nil {
			return response{err: fmt.Errorf("failed to scan records: %w", err)}
		}
		return response{records: records}

	default:
		return response{err: fmt.Errorf("unknown request kind %d", req.kind)}
	}
}

// roundTrip enqueues a request and waits for the worker's reply, bounded by
// the configured timeout. The timeout covers both the enqueue and the wait
// for the reply.
func (e *engineImpl) roundTrip(req request) (response, error) {
	req.reply = make(chan response, 1)

	// Reject closed engines up front: the selects below pick randomly among
	// ready cases, so without this a request issued after Close could still
	// enqueue and be executed by a worker that has not yet observed done
	select {
	case <-e.done:
		return response{}, durable.ErrClosed
	default:
	}

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case e.mailbox <- req:
	case <-e.done:
		return response{}, durable.ErrClosed
	case <-timer.C:
		return response{}, durable.ErrTimeout
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-e.done:
		return response{}, durable.ErrClosed
	case <-timer.C:
		// The worker will still execute the request; only the
		// acknowledgement is lost
		return response{}, durable.ErrTimeout
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see durable.Engine)
// --------------------------------------------------------------------------

func (e *engineImpl) Persist(key, value string) error {
	resp, err := e.roundTrip(request{kind: reqPersist, key: key, value: value})
	if err != nil {
		return err
	}
	return resp.err
}

func (e *engineImpl) Fetch(key string) (string, bool, error) {
	resp, err := e.roundTrip(request{kind: reqFetch, key: key})
	if err != nil {
		return "", false, err
	}
	return resp.value, resp.found, resp.err
}

func (e *engineImpl) LoadAll() ([]durable.Record, error) {
	resp, err := e.roundTrip(request{kind: reqLoadAll})
	if err != nil {
		return nil, err
	}
	return resp.records, resp.err
}

func (e *engineImpl) Close() error {
	e.closing.Do(func() {
		close(e.done)
	})
	return nil
}
