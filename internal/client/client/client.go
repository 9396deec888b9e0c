package client

import (
	"context"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
)

// Backend is everything the data layer needs from the remote side.
type Backend interface {
	api.Service
	Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error)
	Close() error
}

// TokenSource yields the identity token to attach to outgoing calls.
type TokenSource interface {
	Token() string
}
