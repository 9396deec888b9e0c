// Package server wires the backend together: it opens the configured
// document store and change broker, seeds the catalog, and runs the gRPC
// server and HTTP gateway until a signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/server/attachments"
	"github.com/dmitrijs2005/sehatbeat/internal/server/config"
	"github.com/dmitrijs2005/sehatbeat/internal/server/gateway"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/dmitrijs2005/sehatbeat/internal/server/seed"
	"github.com/dmitrijs2005/sehatbeat/internal/server/services"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store/memory"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store/mongodb"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store/postgres"

	gs "github.com/dmitrijs2005/sehatbeat/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   store.Store
	broker  notify.Broker
	service *services.Service
}

// openStore picks the document store named by the config.
func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	switch c.StoreKind {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StorePostgres:
		return postgres.Open(ctx, c.DatabaseDSN)
	case config.StoreMongo:
		return mongodb.Connect(ctx, c.MongoURI, c.MongoDatabase)
	}
	return nil, fmt.Errorf("unknown store kind %q", c.StoreKind)
}

// openBroker uses Redis when configured, the in-process hub otherwise.
func openBroker(ctx context.Context, c *config.Config, l logging.Logger) (notify.Broker, error) {
	if c.RedisURI == "" {
		return notify.NewHub(), nil
	}
	return notify.NewRedisBroker(ctx, c.RedisURI, l)
}

// newPresigner returns nil when no bucket is configured.
func newPresigner(c *config.Config) attachments.Presigner {
	if c.S3Bucket == "" {
		return nil
	}
	return attachments.NewS3Presigner(attachments.Config{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		Expiry:       c.AttachmentURLTTL,
	})
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.New(os.Stdout, "json", c.LogLevel)

	st, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	broker, err := openBroker(ctx, c, logger)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("broker init error: %w", err)
	}

	if c.SeedCatalog {
		if err := seed.Catalog(ctx, st, broker, logger.With("module", "seed")); err != nil {
			_ = broker.Close()
			_ = st.Close()
			return nil, err
		}
	}

	svc := services.New(st, broker, newPresigner(c), logger)

	return &App{config: c, logger: logger, store: st, broker: broker, service: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.service, app.config.SecretKey, app.config.RequireAuth)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGateway(ctx context.Context, cancelFunc context.CancelFunc) {
	g := gateway.NewServer(app.config.EndpointAddrHTTP, app.logger, app.broker, app.service,
		app.config.SecretKey, app.config.RequireAuth, app.config.AllowedOrigins)

	if err := g.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreKind)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGateway(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.broker.Close(); err != nil {
		app.logger.Warn(context.Background(), "broker close failed", "error", err)
	}
	if err := app.store.Close(); err != nil {
		app.logger.Warn(context.Background(), "store close failed", "error", err)
	}
	app.logger.Info(context.Background(), "Stopped")
}
