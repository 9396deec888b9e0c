// Package notify fans backend change events out to subscribers. Hub works
// within one process; RedisBroker relays events between backend instances.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
)

var ErrClosed = errors.New("broker closed")

// subscriptionBuffer bounds pending events per subscriber; extra events are
// dropped since one pending event already triggers a refetch.
const subscriptionBuffer = 16

// Broker publishes change events and hands out subscriptions to them.
type Broker interface {
	Publish(ctx context.Context, topics ...api.Topic) error
	Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error)
	Close() error
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
	closed bool
	now    func() time.Time
}

func NewHub() *Hub {
	return &Hub{subs: map[*subscription]struct{}{}, now: time.Now}
}

// matches reports whether an event on t is of interest to a subscriber of
// want. A topic without user covers the whole collection.
func matches(want, t api.Topic) bool {
	if want.Collection != t.Collection {
		return false
	}
	return want.UserID == "" || want.UserID == t.UserID
}

type subscription struct {
	hub    *Hub
	topics []api.Topic
	ch     chan api.Event
	once   sync.Once
}

func (s *subscription) Events() <-chan api.Event { return s.ch }

func (s *subscription) Close() error {
	s.hub.remove(s)
	return nil
}

func (s *subscription) wants(t api.Topic) bool {
	for _, w := range s.topics {
		if matches(w, t) {
			return true
		}
	}
	return false
}

func (h *Hub) Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	s := &subscription{hub: h, topics: topics, ch: make(chan api.Event, subscriptionBuffer)}
	h.subs[s] = struct{}{}
	return s, nil
}

func (h *Hub) remove(s *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, s)
	s.once.Do(func() { close(s.ch) })
}

func (h *Hub) Publish(ctx context.Context, topics ...api.Topic) error {
	at := h.now().UnixMilli()
	for _, t := range topics {
		h.Deliver(api.Event{Topic: t, At: at})
	}
	return nil
}

// Deliver hands ev to every local subscriber interested in its topic without
// blocking.
func (h *Hub) Deliver(ev api.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		if !s.wants(ev.Topic) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}

// Close ends every subscription; later Subscribe calls fail.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		s.once.Do(func() { close(s.ch) })
	}
	return nil
}
