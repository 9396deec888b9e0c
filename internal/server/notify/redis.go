package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel shared by all backend instances.
const Channel = "sehatbeat:changes"

const maxBackoff = 30 * time.Second

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisBroker publishes events to Redis and delivers whatever arrives on
// Channel, its own events included, to a local Hub.
type RedisBroker struct {
	client    *redis.Client
	publisher publisher
	hub       *Hub
	logger    logging.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRedisBroker connects to uri and starts the relay loop.
func NewRedisBroker(ctx context.Context, uri string, l logging.Logger) (*RedisBroker, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	b := &RedisBroker{
		client:    client,
		publisher: client,
		hub:       NewHub(),
		logger:    l.With("module", "redis_broker"),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	b.cancel = runCancel
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.run(runCtx)
	}()

	return b, nil
}

func (b *RedisBroker) Publish(ctx context.Context, topics ...api.Topic) error {
	at := b.hub.now().UnixMilli()
	for _, t := range topics {
		data, err := json.Marshal(api.Event{Topic: t, At: at})
		if err != nil {
			return err
		}
		if err := b.publisher.Publish(ctx, Channel, data).Err(); err != nil {
			return fmt.Errorf("redis publish: %w", err)
		}
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error) {
	return b.hub.Subscribe(ctx, topics...)
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func (b *RedisBroker) run(ctx context.Context) {
	backoff := time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		pubsub := b.client.Subscribe(ctx, Channel)
		b.logger.Info(ctx, "Redis change relay subscribed", "channel", Channel)

		err := b.pump(ctx, func(ctx context.Context) (string, error) {
			msg, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return "", err
			}
			backoff = time.Second
			return msg.Payload, nil
		})
		_ = pubsub.Close()

		if ctx.Err() != nil {
			return
		}
		b.logger.Error(ctx, "Redis change relay error", "error", err, "retry_in", backoff.String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

// pump delivers payloads from next to the hub until next fails.
func (b *RedisBroker) pump(ctx context.Context, next func(context.Context) (string, error)) error {
	for {
		payload, err := next(ctx)
		if err != nil {
			return err
		}

		var ev api.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			b.logger.Warn(ctx, "dropping malformed change event", "error", err)
			continue
		}
		b.hub.Deliver(ev)
	}
}

func (b *RedisBroker) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	_ = b.hub.Close()
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}
