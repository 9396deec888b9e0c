// Package gateway exposes the HTTP side of the backend: a health probe and a
// websocket change feed for browser clients that cannot speak gRPC.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/common"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/dmitrijs2005/sehatbeat/internal/server/attachments"
	"github.com/dmitrijs2005/sehatbeat/internal/server/auth"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 90 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 4 * 1024
)

// Backend is the part of the service the gateway needs: topic authorization
// for the change feed and attachment download URLs.
type Backend interface {
	AuthorizeTopic(ctx context.Context, t api.Topic) error
	AttachmentURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	address     string
	broker      notify.Broker
	backend     Backend
	logger      logging.Logger
	jwtSecret   []byte
	requireAuth bool
	origins     []string
	upgrader    websocket.Upgrader
}

func NewServer(a string, l logging.Logger, b notify.Broker, backend Backend, secretKey string, requireAuth bool, origins []string) *Server {
	return &Server{
		address:     a,
		broker:      b,
		backend:     backend,
		logger:      l.With("module", "gateway"),
		jwtSecret:   []byte(secretKey),
		requireAuth: requireAuth,
		origins:     origins,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origins are enforced by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/v1/changes", s.changes)
	r.Get("/v1/attachments/*", s.attachment)
	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP gateway", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// accessToken reads the token from the Authorization header or, for browser
// websockets that cannot set headers, from the access_token query parameter.
func accessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return r.URL.Query().Get(common.AccessTokenHeaderName)
}

func (s *Server) authenticate(r *http.Request) (context.Context, error) {
	ctx := r.Context()
	token := accessToken(r)
	if token == "" || len(s.jwtSecret) == 0 {
		if s.requireAuth {
			return nil, common.ErrUnauthorized
		}
		return ctx, nil
	}

	subject, err := auth.SubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return auth.WithSubject(ctx, subject), nil
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, api.ErrInvalidTopic), errors.Is(err, common.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, attachments.ErrNotConfigured):
		return http.StatusNotImplemented
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(r.Context(), msg, "path", r.URL.Path, "error", err)
	}
	http.Error(w, http.StatusText(code), code)
}

// attachment redirects to a short-lived download URL for the key.
func (s *Server) attachment(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.authenticate(r)
	if err != nil {
		s.fail(w, r, "attachment rejected", err)
		return
	}

	url, err := s.backend.AttachmentURL(ctx, chi.URLParam(r, "*"))
	if err != nil {
		s.fail(w, r, "attachment failed", err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// changes streams the events of one topic as JSON text frames until either
// side goes away.
func (s *Server) changes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topic := api.Topic{Collection: api.Collection(q.Get("collection")), UserID: q.Get("user")}

	ctx, err := s.authenticate(r)
	if err == nil {
		err = s.backend.AuthorizeTopic(ctx, topic)
	}
	if err != nil {
		s.fail(w, r, "change feed rejected", err)
		return
	}

	sub, err := s.broker.Subscribe(ctx, topic)
	if err != nil {
		s.logger.Error(ctx, "subscribe failed", "topic", topic.String(), "error", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.logger.Debug(ctx, "change feed opened", "topic", topic.String())

	gone := make(chan struct{})
	go s.readPump(conn, gone)
	s.writePump(conn, sub, gone)
}

// readPump discards client frames and signals when the peer disconnects.
func (s *Server) readPump(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, sub api.Subscription, gone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
