package hooks

import (
	"context"
	"sync"
)

// Closer is any mounted hook.
type Closer interface {
	Close() error
}

// Bound keeps one mounted instance of a hook and rebuilds it whenever the
// ambient identity changes, closing the instance it replaces.
type Bound[H Closer] struct {
	mu      sync.RWMutex
	current H
	updates chan H

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Bind mounts use and keeps it in sync with env.Identity until ctx ends or
// Close is called.
func Bind[H Closer](ctx context.Context, env Env, use func(ctx context.Context, env Env) H) *Bound[H] {
	ctx, cancel := context.WithCancel(ctx)
	b := &Bound[H]{
		current: use(ctx, env),
		updates: make(chan H, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	if env.Identity == nil {
		close(b.done)
		return b
	}

	changes, stop := env.Identity.Changes()
	go func() {
		defer close(b.done)
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				b.swap(use(ctx, env))
			}
		}
	}()
	return b
}

func (b *Bound[H]) swap(next H) {
	b.mu.Lock()
	prev := b.current
	b.current = next
	b.mu.Unlock()

	_ = prev.Close()

	select {
	case <-b.updates:
	default:
	}
	b.updates <- next
}

// Current returns the instance mounted for the present identity.
func (b *Bound[H]) Current() H {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Rebuilt signals each re-derivation with the new instance, latest wins.
func (b *Bound[H]) Rebuilt() <-chan H {
	return b.updates
}

func (b *Bound[H]) Close() error {
	var err error
	b.once.Do(func() {
		b.cancel()
		<-b.done
		err = b.Current().Close()
	})
	return err
}
