// Package server wires the arcade application into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arcadehub/arcade"
	"github.com/arcadehub/arcade/chirouter"
	"github.com/arcadehub/arcade/internal/config"
	"github.com/arcadehub/arcade/internal/games"
	"github.com/arcadehub/arcade/internal/logging"
	"github.com/arcadehub/arcade/internal/stats"
	"github.com/arcadehub/arcade/internal/views"
)

type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	app     *arcade.App
	handler http.Handler
}

// New builds the route table, mounts the application on a chi router and
// returns a server ready to Run. Route table and mount errors are returned
// as is so the caller can report them before exiting.
func New(cfg *config.Config, logger *zap.Logger, counter stats.Counter) (*Server, error) {
	log := logger.With(zap.String("component", "server"))

	table, err := games.Table(counter, log)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	options := []arcade.Option{
		arcade.WithBase(cfg.Router.Base),
		arcade.WithNotFound(views.NotFound()),
		arcade.WithErrorHandler(logging.ErrorHandler(log)),
		arcade.WithMiddlewares(
			stats.Middleware(counter, log),
			logging.Routes(log),
		),
	}
	if cfg.Router.CaseSensitive {
		options = append(options, arcade.WithCaseSensitive())
	}
	if cfg.Router.Strict {
		options = append(options, arcade.WithStrict())
	}
	app, err := arcade.New(views.Layout, table, options...)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests(log))
	r.Use(middleware.Recoverer)

	router := chirouter.NewChiRouter(r)
	router.HandleMethod(http.MethodGet, "/healthz", http.HandlerFunc(healthz))
	if err := app.Mount(router, cfg.Router.Host); err != nil {
		return nil, fmt.Errorf("mount application: %w", err)
	}
	log.Info("application mounted",
		zap.String("base", app.Navigator().Base()),
		zap.String("host", cfg.Router.Host),
		zap.Int("routes", table.Len()),
	)

	return &Server{cfg: cfg, log: log, app: app, handler: router}, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) App() *arcade.App {
	return s.app
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.HTTPAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
