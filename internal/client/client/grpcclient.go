package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.BackendClient
	tokens      TokenSource
	log         logging.Logger
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.Token()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.token()), method, req, reply, cc, opts...)
}

func (s *GRPCClient) accessTokenStreamInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(withAccessToken(ctx, s.token()), desc, cc, method, opts...)
}

func NewGRPCClient(endpointURL string, tokens TokenSource, log logging.Logger) (*GRPCClient, error) {
	if log == nil {
		log = logging.Nop{}
	}
	c := &GRPCClient{endpointURL: endpointURL, tokens: tokens, log: log.With("module", "grpcclient")}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithStreamInterceptor(s.accessTokenStreamInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewBackendClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// Subscribe opens the change stream and pumps events into a Subscription
// until the stream ends or the subscription is closed.
func (s *GRPCClient) Subscribe(ctx context.Context, topics ...api.Topic) (api.Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := s.client.Subscribe(ctx, &api.SubscribeRequest{Topics: topics})
	if err != nil {
		cancel()
		return nil, s.mapError(err)
	}

	sub := &streamSubscription{events: make(chan api.Event, 16), cancel: cancel, done: make(chan struct{})}
	go sub.pump(ctx, stream, s.log)
	return sub, nil
}

type streamSubscription struct {
	events chan api.Event
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (s *streamSubscription) Events() <-chan api.Event {
	return s.events
}

func (s *streamSubscription) Close() error {
	s.once.Do(s.cancel)
	<-s.done
	return nil
}

func (s *streamSubscription) pump(ctx context.Context, stream api.SubscribeClient, log logging.Logger) {
	defer close(s.done)
	defer close(s.events)

	for {
		ev, err := stream.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) && status.Code(err) != codes.Canceled {
				log.Warn(ctx, "change stream ended", "error", err)
			}
			return
		}
		select {
		case s.events <- *ev:
		case <-ctx.Done():
			return
		}
	}
}
