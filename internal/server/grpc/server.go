// Package grpc serves the backend surface over gRPC with the JSON codec.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address     string
	backend     api.BackendServer
	logger      logging.Logger
	jwtSecret   []byte
	requireAuth bool
}

// NewGRPCServer builds a server for backend. With an empty secret identity
// tokens are ignored; with requireAuth every call except the public ones
// must carry a valid token.
func NewGRPCServer(a string, l logging.Logger, backend api.BackendServer, secretKey string, requireAuth bool) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		backend:     backend,
		jwtSecret:   []byte(secretKey),
		requireAuth: requireAuth,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.accessTokenStreamInterceptor),
	)
	api.RegisterBackendServer(srv, s.backend)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
