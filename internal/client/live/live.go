// Package live provides push-updated reads over the backend change feed.
//
// A Query subscribes to the topics behind a read, fetches once, and fetches
// again every time the feed reports a change. Observers receive each new
// value; nobody refetches by hand. Skip and Disabled build inert queries for
// the cases where a read must not reach the backend at all.
package live

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
)

// Subscriber opens a change feed for a set of topics.
type Subscriber interface {
	Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error)
}

type Fetch[T any] func(ctx context.Context) (T, error)

type state int

const (
	stateActive state = iota
	stateSkipped
	stateDisabled
)

type Query[T any] struct {
	state state

	mu       sync.RWMutex
	value    T
	loaded   bool
	err      error
	watchers map[int]chan T
	next     int
	closed   bool
	pending  bool
	started  bool

	sub     api.Subscription
	cancel  context.CancelFunc
	done    chan struct{}
	closing sync.Once
}

// Skip is the suppression sentinel: the query never subscribes and never
// fetches. It is used when an argument the read depends on is unknown.
func Skip[T any]() *Query[T] {
	return &Query[T]{state: stateSkipped}
}

// Disabled is the read used when the backend is switched off: no data, no
// traffic.
func Disabled[T any]() *Query[T] {
	return &Query[T]{state: stateDisabled}
}

// Watch subscribes to topics, performs the first fetch before returning and
// refetches on every change event until ctx ends or Close is called.
// Failures are reported through Err; the last good value is kept.
func Watch[T any](ctx context.Context, sub Subscriber, topics []api.Topic, fetch Fetch[T], log logging.Logger) *Query[T] {
	q := newActive[T]()
	q.Start(ctx, sub, topics, fetch, log)
	return q
}

// Pending is a query whose arguments are not known yet. It reports Skipped
// and touches nothing until Start attaches its source. Observers registered
// meanwhile receive the values that follow.
func Pending[T any]() *Query[T] {
	q := newActive[T]()
	q.pending = true
	return q
}

func newActive[T any]() *Query[T] {
	return &Query[T]{
		state:    stateActive,
		watchers: map[int]chan T{},
		done:     make(chan struct{}),
	}
}

// Start subscribes and fetches like Watch. Only the first call on an open
// query does anything.
func (q *Query[T]) Start(ctx context.Context, sub Subscriber, topics []api.Topic, fetch Fetch[T], log logging.Logger) {
	if q.state != stateActive {
		return
	}
	if log == nil {
		log = logging.Nop{}
	}

	q.mu.Lock()
	if q.closed || q.started {
		q.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	q.started = true
	q.cancel = cancel
	q.mu.Unlock()

	s, err := sub.Subscribe(ctx, topics...)
	if err != nil {
		log.Warn(ctx, "subscribe failed, serving a one-shot read", "topics", topics, "error", err)
		q.setErr(err)
	}
	q.sub = s

	q.refresh(ctx, fetch, log)

	if s == nil {
		close(q.done)
		return
	}

	go q.loop(ctx, s, fetch, log)
}

func (q *Query[T]) loop(ctx context.Context, s api.Subscription, fetch Fetch[T], log logging.Logger) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.Events():
			if !ok {
				log.Debug(ctx, "change feed closed")
				return
			}
			q.refresh(ctx, fetch, log)
		}
	}
}

func (q *Query[T]) refresh(ctx context.Context, fetch Fetch[T], log logging.Logger) {
	v, err := fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn(ctx, "live fetch failed", "error", err)
			q.setErr(err)
		}
		return
	}
	q.publish(v)
}

func (q *Query[T]) setErr(err error) {
	q.mu.Lock()
	q.err = err
	q.mu.Unlock()
}

func (q *Query[T]) publish(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.value = v
	q.loaded = true
	q.err = nil
	for _, ch := range q.watchers {
		offer(ch, v)
	}
}

// offer replaces whatever is pending in ch with v.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

// Get returns the latest value and whether one has been loaded.
func (q *Query[T]) Get() (T, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.value, q.loaded
}

// Err is the last fetch or subscribe failure, cleared by the next good value.
func (q *Query[T]) Err() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.err
}

func (q *Query[T]) Skipped() bool {
	if q.state == stateSkipped {
		return true
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.pending && !q.started
}

func (q *Query[T]) Disabled() bool {
	return q.state == stateDisabled
}

// Observe returns a channel carrying every new value, latest wins. The
// current value, if any, is delivered first. cancel stops delivery.
func (q *Query[T]) Observe() (<-chan T, func()) {
	ch := make(chan T, 1)
	if q.state != stateActive {
		return ch, func() {}
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := q.next
	q.next++
	q.watchers[id] = ch
	if q.loaded {
		ch <- q.value
	}
	q.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			if _, ok := q.watchers[id]; ok {
				delete(q.watchers, id)
				close(ch)
			}
		})
	}
}

// Close stops refetching and releases the backend subscription exactly
// once. Safe to call more than once and on inert queries.
func (q *Query[T]) Close() error {
	if q.state != stateActive {
		return nil
	}
	var err error
	q.closing.Do(func() {
		q.mu.Lock()
		started, cancel := q.started, q.cancel
		q.closed = true
		q.mu.Unlock()

		if started {
			cancel()
			<-q.done
			if q.sub != nil {
				err = q.sub.Close()
			}
		}

		q.mu.Lock()
		for id, ch := range q.watchers {
			delete(q.watchers, id)
			close(ch)
		}
		q.mu.Unlock()
	})
	return err
}
