package registry

import (
	"sync"

	"github.com/ValentinKolb/dDict/lib/dict"
	"github.com/ValentinKolb/dDict/lib/logging"
	"github.com/VictoriaMetrics/metrics"
)

var (
	log = logging.GetLogger("dict/registry")

	dispatchCounter = metrics.GetOrCreateCounter("ddict_subscriber_dispatches_total")
	panicCounter    = metrics.GetOrCreateCounter("ddict_subscriber_panics_total")
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IRegistry is the interface for the subscriber registry of a dictionary.
// All methods are safe for concurrent use.
type IRegistry interface {
	// Subscribe registers a callback for every write. It returns once the
	// registration is acknowledged by the registry.
	Subscribe(fn dict.Subscriber) (err error)
	// SubscribeKey registers a callback for writes of the given (encoded)
	// key. It returns once the registration is acknowledged.
	SubscribeKey(key string, fn dict.Subscriber) (err error)
	// NotifyAll asynchronously invokes every global subscriber,
	// most-recently-subscribed first. It never blocks, no matter how slow
	// the subscribers are; the notification is queued and dispatched later.
	NotifyAll()
	// NotifyKey asynchronously invokes every subscriber of the given
	// (encoded) key, most-recently-subscribed first. A key with no
	// subscribers is a no-op. Like NotifyAll it never blocks.
	NotifyKey(key string)
	// Close stops the dispatch goroutine. Notifications enqueued but not yet
	// dispatched are dropped.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Mailbox Protocol
// --------------------------------------------------------------------------

type msgKind int

const (
	msgSubscribe msgKind = iota
	msgSubscribeKey
	msgNotifyAll
	msgNotifyKey
)

// message is a single message sent to the registry goroutine
type message struct {
	kind msgKind
	key  string
	fn   dict.Subscriber
	ack  chan struct{} // Closed by the goroutine once a registration is applied
}

// --------------------------------------------------------------------------
// Registry Implementation
// --------------------------------------------------------------------------

type registryImpl struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []message // Unbounded mailbox, drained by the serve goroutine
	closed bool

	done    chan struct{}
	closing sync.Once
}

// New creates a new subscriber registry and starts its dispatch goroutine.
func New() IRegistry {
	r := &registryImpl{
		done: make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)
	go r.serve()
	return r
}

// enqueue appends a message to the mailbox. The mailbox is a plain slice, so
// the send never blocks regardless of how far behind dispatch is; write
// latency must never depend on subscriber latency.
func (r *registryImpl) enqueue(msg message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.queue = append(r.queue, msg)
	r.cond.Signal()
	return true
}

// serve owns the subscriber lists. It is the only code that reads or writes
// them, so no locking is needed beyond the mailbox handoff. Messages are
// processed strictly in enqueue order.
func (r *registryImpl) serve() {
	var global []dict.Subscriber
	keyed := make(map[string][]dict.Subscriber)

	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.closed {
			r.cond.Wait()
		}
		if r.closed {
			r.mu.Unlock()
			return
		}
		batch := r.queue
		r.queue = nil
		r.mu.Unlock()

		for _, msg := range batch {
			switch msg.kind {
			case msgSubscribe:
				// Prepend: dispatch order is most-recent-first
				global = append([]dict.Subscriber{msg.fn}, global...)
				close(msg.ack)
			case msgSubscribeKey:
				keyed[msg.key] = append([]dict.Subscriber{msg.fn}, keyed[msg.key]...)
				close(msg.ack)
			case msgNotifyAll:
				dispatch(global)
			case msgNotifyKey:
				dispatch(keyed[msg.key])
			}
		}
	}
}

// dispatch invokes the given subscribers in list order, isolating each
// callback so a panic cannot take down the registry goroutine or skip the
// remaining subscribers.
func dispatch(subs []dict.Subscriber) {
	for _, fn := range subs {
		invoke(fn)
	}
}

func invoke(fn dict.Subscriber) {
	defer func() {
		if rec := recover(); rec != nil {
			panicCounter.Inc()
			log.Warn("subscriber panicked", "panic", rec)
		}
	}()
	dispatchCounter.Inc()
	fn()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see registry.IRegistry)
// --------------------------------------------------------------------------

func (r *registryImpl) Subscribe(fn dict.Subscriber) error {
	return r.register(message{kind: msgSubscribe, fn: fn})
}

func (r *registryImpl) SubscribeKey(key string, fn dict.Subscriber) error {
	return r.register(message{kind: msgSubscribeKey, key: key, fn: fn})
}

// register enqueues a registration message and waits for the acknowledgement.
func (r *registryImpl) register(msg message) error {
	msg.ack = make(chan struct{})

	if !r.enqueue(msg) {
		return dict.NewError(dict.RetCInternalError, "subscriber registry is closed")
	}

	select {
	case <-msg.ack:
		return nil
	case <-r.done:
		return dict.NewError(dict.RetCInternalError, "subscriber registry is closed")
	}
}

func (r *registryImpl) NotifyAll() {
	r.enqueue(message{kind: msgNotifyAll})
}

func (r *registryImpl) NotifyKey(key string) {
	r.enqueue(message{kind: msgNotifyKey, key: key})
}

func (r *registryImpl) Close() error {
	r.closing.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		r.cond.Broadcast()
		close(r.done)
	})
	return nil
}
