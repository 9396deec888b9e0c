package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if subject, ok := a.subject(); ok {
		s = subject + " "
	} else if dev := a.settings.DevUserID(); dev != "" {
		s = dev + "* "
	}
	if mode := a.Mode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints the greeting, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to SehatBeat CLI (type 'help' for commands)")
	if !a.backendEnabled() {
		a.println("Backend is disabled, only local documents are available")
	} else {
		a.checkOnline(ctx)
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
