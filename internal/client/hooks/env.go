package hooks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/client"
	"github.com/dmitrijs2005/sehatbeat/internal/client/config"
	"github.com/dmitrijs2005/sehatbeat/internal/client/live"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
)

// Identity is the part of identity.Resolver the hooks use.
type Identity interface {
	Resolve(ctx context.Context) (string, bool)
	Changes() (<-chan struct{}, func())
}

// Env is passed to every hook constructor. Backend may be nil when the
// backend is disabled.
type Env struct {
	Settings config.Settings
	Identity Identity
	Backend  client.Backend
	Logger   logging.Logger
}

func (e Env) enabled() bool {
	return e.Settings.BackendEnabled() && e.Backend != nil
}

func (e Env) logger() logging.Logger {
	if e.Logger == nil {
		return logging.Nop{}
	}
	return e.Logger
}

// externalID is the signed-in subject, or the development user when nobody
// is signed in and one is configured.
func (e Env) externalID(ctx context.Context) string {
	if e.Identity != nil {
		if id, ok := e.Identity.Resolve(ctx); ok && id != "" {
			return id
		}
	}
	return e.Settings.DevUserID()
}

// base carries what every user-scoped hook resolves at mount. The profile
// is a live read: if it is not there yet, user reads wait as live.Pending
// and start once it loads.
type base struct {
	env     Env
	log     logging.Logger
	enabled bool
	user    *userState
}

type userState struct {
	mu      sync.Mutex
	profile *live.Query[*models.UserProfile]
	current *models.UserProfile
	waiting []func(userID string)
}

func newBase(ctx context.Context, env Env, hook string) base {
	b := base{env: env, log: env.logger().With("hook", hook), enabled: env.enabled(), user: &userState{}}
	if !b.enabled {
		return b
	}

	st := b.user
	st.profile = UseCurrentUser(ctx, env)
	if p, ok := st.profile.Get(); ok && p != nil {
		st.current = p
		_ = st.profile.Close()
		return b
	}
	if st.profile.Skipped() {
		return b
	}

	if err := st.profile.Err(); err != nil {
		b.log.Warn(ctx, "user profile unavailable, waiting for it", "error", err)
	}
	updates, _ := st.profile.Observe()
	go st.follow(updates)
	return b
}

// follow records the profile as it arrives and starts the reads that were
// waiting for it. It ends when the profile query is closed.
func (st *userState) follow(updates <-chan *models.UserProfile) {
	for p := range updates {
		if p == nil {
			continue
		}
		st.mu.Lock()
		first := st.current == nil
		st.current = p
		waiting := st.waiting
		st.waiting = nil
		st.mu.Unlock()

		if first {
			for _, start := range waiting {
				start(p.ID)
			}
		}
	}
}

func (b *base) profile() *models.UserProfile {
	b.user.mu.Lock()
	defer b.user.mu.Unlock()
	return b.user.current
}

func (b *base) userID() string {
	if p := b.profile(); p != nil {
		return p.ID
	}
	return ""
}

// release closes the profile read if it is still waiting.
func (b *base) release() error {
	if b.user.profile == nil {
		return nil
	}
	return b.user.profile.Close()
}

// gate returns the outcome a user-scoped write must stop with, if any.
func (b *base) gate() (Outcome, bool) {
	if !b.enabled {
		return OutcomeDisabled, false
	}
	if b.userID() == "" {
		return OutcomeNoUser, false
	}
	return OutcomeApplied, true
}

// userRead builds the read for a record set owned by the current user.
func userRead[T any](ctx context.Context, b *base, c api.Collection, fetch func(ctx context.Context, userID string) (T, error)) *live.Query[T] {
	if !b.enabled {
		return live.Disabled[T]()
	}

	topics := func(userID string) []api.Topic { return []api.Topic{api.UserTopic(c, userID)} }
	bound := func(userID string) live.Fetch[T] {
		return func(ctx context.Context) (T, error) { return fetch(ctx, userID) }
	}

	st := b.user
	st.mu.Lock()
	if st.current != nil {
		userID := st.current.ID
		st.mu.Unlock()
		return live.Watch(ctx, b.env.Backend, topics(userID), bound(userID), b.log)
	}
	if st.profile == nil || st.profile.Skipped() {
		st.mu.Unlock()
		return live.Skip[T]()
	}
	q := live.Pending[T]()
	st.waiting = append(st.waiting, func(userID string) {
		q.Start(ctx, b.env.Backend, topics(userID), bound(userID), b.log)
	})
	st.mu.Unlock()
	return q
}

// catalogRead builds a read over a shared catalog; it needs no user.
func catalogRead[T any](ctx context.Context, env Env, c api.Collection, fetch live.Fetch[T]) *live.Query[T] {
	if !env.enabled() {
		return live.Disabled[T]()
	}
	return live.Watch(ctx, env.Backend, []api.Topic{api.CatalogTopic(c)}, fetch, env.logger().With("hook", string(c)))
}

// called reports a forwarded mutation; err is the backend result as is.
func called(err error) (Outcome, error) {
	return OutcomeApplied, err
}

func closeAll(closers ...interface{ Close() error }) error {
	var first error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
