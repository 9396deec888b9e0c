package identity

import "sync"

// Session is the ambient authentication state shared by every hook. It is
// safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	token    string
	watchers map[int]chan struct{}
	next     int
}

func NewSession() *Session {
	return &Session{watchers: map[int]chan struct{}{}}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the current token and notifies watchers when it changed.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	changed := s.token != token
	s.token = token
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Session) Clear() {
	s.SetToken("")
}

// Changes returns a channel that receives a value after every token change.
// Notifications coalesce: a slow reader sees at most one pending signal.
// cancel stops delivery and closes the channel.
func (s *Session) Changes() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.watchers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Session) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
