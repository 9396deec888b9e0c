package cli

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
)

const renderFailure = "Something went wrong."

// guard runs one command. A panic anywhere below it is logged, the user sees
// a generic message and every mounted hook is closed, so the next prompt
// starts from the root view. Returned errors are only printed.
func (a *App) guard(ctx context.Context, name string, fn func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(ctx, "command panicked", "command", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			a.println(renderFailure)
			a.reset()
		}
	}()

	if err := fn(ctx); err != nil {
		a.log.Debug(ctx, "command failed", "command", name, "error", err)
		a.println("Error:", err)
	}
}

// mount returns the hook mounted under name, mounting it on first use. The
// hook follows identity changes until reset.
func mount[H hooks.Closer](ctx context.Context, a *App, name string, use func(ctx context.Context, env hooks.Env) H) H {
	a.views.Lock()
	defer a.views.Unlock()

	if m, ok := a.mounted[name]; ok {
		if b, ok := m.(*hooks.Bound[H]); ok {
			return b.Current()
		}
	}
	b := hooks.Bind(ctx, a.env, use)
	a.mounted[name] = b
	return b.Current()
}

// reset closes every mounted hook.
func (a *App) reset() {
	a.views.Lock()
	mounted := a.mounted
	a.mounted = map[string]hooks.Closer{}
	a.views.Unlock()

	for name, m := range mounted {
		if err := m.Close(); err != nil {
			a.log.Warn(context.Background(), "closing view failed", "view", name, "error", err)
		}
	}
}

func (a *App) mountedViews() int {
	a.views.Lock()
	defer a.views.Unlock()
	return len(a.mounted)
}
