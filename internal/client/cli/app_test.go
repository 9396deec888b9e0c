package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/client/client"
	"github.com/dmitrijs2005/sehatbeat/internal/client/config"
	"github.com/dmitrijs2005/sehatbeat/internal/client/identity"
	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/server/attachments"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/dmitrijs2005/sehatbeat/internal/server/seed"
	"github.com/dmitrijs2005/sehatbeat/internal/server/services"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func (s *syncBuffer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Len()
}

// localBackend serves the client straight from the backend services, with
// the in-process hub as change feed.
type localBackend struct {
	*services.Service
	hub *notify.Hub
}

func (b localBackend) Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error) {
	return b.hub.Subscribe(ctx, topics...)
}

func (b localBackend) Close() error { return nil }

type testApp struct {
	*App
	out     *syncBuffer
	svc     *services.Service
	session *identity.Session
}

func testConfig(backend bool, devUser string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.BackendEnabled = backend
	c.DevUserID = devUser
	return c
}

func newTestApp(t *testing.T, c *config.Config) *testApp {
	t.Helper()
	return newTestAppWith(t, c, nil)
}

func newTestAppWith(t *testing.T, c *config.Config, presigner attachments.Presigner) *testApp {
	t.Helper()
	ctx := context.Background()

	repos, err := repositories.InitDatabase(ctx, filepath.Join(t.TempDir(), "local.db"), "local secret")
	require.NoError(t, err)

	var backend client.Backend
	var svc *services.Service
	if c.BackendEnabled {
		st := memory.New()
		hub := notify.NewHub()
		require.NoError(t, seed.Catalog(ctx, st, hub, logging.Nop{}))
		svc = services.New(st, hub, presigner, logging.Nop{})
		backend = localBackend{Service: svc, hub: hub}
		t.Cleanup(func() { _ = hub.Close() })
	}

	session := identity.NewSession()
	resolver := identity.NewResolver(c.Settings(), session, identity.NewJWTProvider(c.IdentityKey), logging.Nop{})
	out := &syncBuffer{}

	a := newApp(c, logging.Nop{}, session, resolver, backend, repos.LocalDocs, strings.NewReader(""), out)
	a.closers = append(a.closers, repos)
	t.Cleanup(func() { _ = a.Close() })

	return &testApp{App: a, out: out, svc: svc, session: session}
}

// exec runs one command with input as the answers to its prompts and returns
// what it printed.
func (ta *testApp) exec(t *testing.T, line string, input ...string) string {
	t.Helper()
	out, ok := ta.try(line, input...)
	require.True(t, ok, "unknown command %q", line)
	return out
}

func (ta *testApp) try(line string, input ...string) (string, bool) {
	ta.reader = bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n"))
	start := ta.out.Len()
	parts := strings.Fields(line)
	ok := ta.Exec(context.Background(), parts[0], parts[1:])
	return ta.out.String()[start:], ok
}

// eventually reruns line until its output contains want; live views catch
// up with the change feed asynchronously.
func (ta *testApp) eventually(t *testing.T, line, want string) {
	t.Helper()
	var last string
	ok := assert.Eventually(t, func() bool {
		last, _ = ta.try(line)
		return strings.Contains(last, want)
	}, 2*time.Second, 10*time.Millisecond)
	if !ok {
		t.Fatalf("%q never printed %q, last output:\n%s", line, want, last)
	}
}

func (ta *testApp) userID(t *testing.T, external string) string {
	t.Helper()
	resp, err := ta.svc.GetUserProfile(context.Background(), &api.GetUserProfileRequest{ExternalID: external})
	require.NoError(t, err)
	return resp.Profile.ID
}

func TestNewApp_DisabledBackend(t *testing.T) {
	c := testConfig(false, "")
	c.LocalDBPath = filepath.Join(t.TempDir(), "client.db")
	c.LocalSecret = "pw"

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.backend)
	assert.Nil(t, a.env.Backend)
	assert.Equal(t, ModeDisabled, a.Mode())
	assert.False(t, a.isLoggedIn())
}

func TestNewApp_WrongLocalSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	c := testConfig(false, "")
	c.LocalDBPath = path
	c.LocalSecret = "first"
	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	c.LocalSecret = "second"
	_, err = NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_EnabledBackendStartsOffline(t *testing.T) {
	c := testConfig(true, "")
	c.LocalDBPath = filepath.Join(t.TempDir(), "client.db")

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.env.Backend)
	assert.Equal(t, ModeOffline, a.Mode())
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	var buf syncBuffer
	a := newApp(testConfig(false, ""), logging.New(&buf, "text", "debug"), identity.NewSession(), nil, nil, nil, strings.NewReader(""), &bytes.Buffer{})

	a.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, a.Mode())
	assert.Contains(t, buf.String(), "switched mode")

	before := buf.Len()
	a.setMode(ModeOnline)
	assert.Equal(t, before, buf.Len(), "no log when the mode does not change")

	a.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, a.Mode())
	assert.Greater(t, buf.Len(), before)
}

func TestSetMode_BackOnlineRemountsViews(t *testing.T) {
	ta := newTestApp(t, testConfig(true, "dev-1"))
	require.Equal(t, ModeOffline, ta.Mode())

	ta.exec(t, "cart")
	require.Equal(t, 1, ta.mountedViews())

	ta.setMode(ModeOnline)
	assert.Zero(t, ta.mountedViews())

	assert.Contains(t, ta.exec(t, "cart"), "Cart is empty")
	assert.Equal(t, 1, ta.mountedViews())

	ta.setMode(ModeOnline)
	assert.Equal(t, 1, ta.mountedViews(), "no reset without a transition")
}

func TestGetStatus(t *testing.T) {
	ta := newTestApp(t, testConfig(false, ""))
	assert.Equal(t, "(disabled)", ta.getStatus())

	ta = newTestApp(t, testConfig(false, "dev-1"))
	assert.Equal(t, "(dev-1* disabled)", ta.getStatus())
}

type flakyBackend struct {
	localBackend
	down atomic.Bool
}

func (b *flakyBackend) Ping(ctx context.Context, in *api.PingRequest) (*api.PingResponse, error) {
	if b.down.Load() {
		return nil, client.ErrUnavailable
	}
	return &api.PingResponse{Status: "ok"}, nil
}

func TestStartOnlineStatusWatcher_FollowsPing(t *testing.T) {
	c := testConfig(true, "")
	fb := &flakyBackend{}
	a := newApp(c, logging.Nop{}, identity.NewSession(), nil, fb, nil, strings.NewReader(""), &bytes.Buffer{})
	require.Equal(t, ModeOffline, a.Mode())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return a.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	fb.down.Store(true)
	assert.Eventually(t, func() bool { return a.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestStartOnlineStatusWatcher_DisabledReturnsAtOnce(t *testing.T) {
	a := newApp(testConfig(false, ""), logging.Nop{}, identity.NewSession(), nil, nil, nil, strings.NewReader(""), &bytes.Buffer{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartOnlineStatusWatcher(context.Background(), time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher should not run without a backend")
	}
	assert.Equal(t, ModeDisabled, a.Mode())
}

func TestRoot_RunsScriptUntilExit(t *testing.T) {
	ta := newTestApp(t, testConfig(true, "dev-1"))
	ta.reader = bufio.NewReader(strings.NewReader("help\nmedicines -c allergy\nfrobnicate\nexit\nmedicines\n"))

	ta.Root(context.Background())

	out := ta.out.String()
	assert.Contains(t, out, "Welcome to SehatBeat CLI")
	assert.Contains(t, out, helpLoggedOut)
	assert.Contains(t, out, "Cetirizine 10mg")
	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Contains(t, out, "Bye!")
	assert.Equal(t, 1, strings.Count(out, "Cetirizine"), "nothing runs after exit")
	assert.Equal(t, ModeOnline, ta.Mode())
}
