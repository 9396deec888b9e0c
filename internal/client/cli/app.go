package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/client"
	"github.com/dmitrijs2005/sehatbeat/internal/client/config"
	"github.com/dmitrijs2005/sehatbeat/internal/client/hooks"
	"github.com/dmitrijs2005/sehatbeat/internal/client/identity"
	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories"
	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories/localdocs"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	settings config.Settings
	log      logging.Logger
	session  *identity.Session
	resolver *identity.Resolver
	backend  client.Backend
	local    localdocs.Repository
	env      hooks.Env
	reader   *bufio.Reader
	out      io.Writer
	closers  []io.Closer

	// httpClient uploads attachments; nil means http.DefaultClient.
	httpClient *http.Client

	mu   sync.RWMutex
	mode Mode

	views   sync.Mutex
	mounted map[string]hooks.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, "text", c.LogLevel)

	repos, err := repositories.InitDatabase(ctx, c.LocalDBPath, c.LocalSecret)
	if err != nil {
		logger.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	settings := c.Settings()
	session := identity.NewSession()
	resolver := identity.NewResolver(settings, session, identity.NewJWTProvider(c.IdentityKey), logger)

	var backend client.Backend
	if settings.BackendEnabled() {
		gc, err := client.NewGRPCClient(c.ServerEndpointAddr, resolver, logger)
		if err != nil {
			_ = repos.Close()
			return nil, err
		}
		backend = gc
	}

	a := newApp(c, logger, session, resolver, backend, repos.LocalDocs, os.Stdin, os.Stdout)
	a.closers = append(a.closers, repos)
	return a, nil
}

// newApp wires an App from already opened parts. backend is nil when the
// backend is switched off.
func newApp(c *config.Config, log logging.Logger, session *identity.Session, resolver *identity.Resolver,
	backend client.Backend, local localdocs.Repository, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop{}
	}
	settings := c.Settings()

	a := &App{
		config:   c,
		settings: settings,
		log:      log.With("module", "cli"),
		session:  session,
		resolver: resolver,
		backend:  backend,
		local:    local,
		reader:   bufio.NewReader(in),
		out:      out,
		mode:     ModeDisabled,
		mounted:  map[string]hooks.Closer{},
	}
	a.env = hooks.Env{Settings: settings, Identity: resolver, Logger: log}
	if backend != nil {
		a.env.Backend = backend
		a.closers = append(a.closers, backend)
		a.mode = ModeOffline
	}
	return a
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// setMode records the connection mode. Coming back online drops the mounted
// views; ones built while the backend was unreachable remount on next use.
func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	prev := a.mode
	a.mode = mode
	a.mu.Unlock()

	if prev == mode {
		return
	}
	a.log.Info(context.Background(), "switched mode", "mode", mode)
	if prev == ModeOffline && mode == ModeOnline {
		a.reset()
	}
}

func (a *App) backendEnabled() bool {
	return a.backend != nil && a.settings.BackendEnabled()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close unmounts every hook and releases the backend connection and the
// local database.
func (a *App) Close() error {
	a.reset()

	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) subject() (string, bool) {
	return a.resolver.Resolve(context.Background())
}

func (a *App) isLoggedIn() bool {
	_, ok := a.subject()
	return ok
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := a.backend.Ping(ctx, &api.PingRequest{}); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode between online and offline. It returns when ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if !a.backendEnabled() || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
