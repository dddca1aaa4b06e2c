// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"login-form-server/internal/api/handler"
	"login-form-server/internal/config"
	"login-form-server/internal/domain/form"
	"login-form-server/internal/domain/session"
	"login-form-server/internal/logging"
	"login-form-server/internal/repository"
	"login-form-server/internal/validation"
)

type Server struct {
	cfg     *config.Config
	router  *chi.Mux
	logger  *zap.Logger
	session *handler.SessionHandler
	form    *handler.FormHandler
	closers []func()
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func initDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(ctx, cfg.Session.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return dbpool, nil
}

// initStore opens the configured session store backend.
func (s *Server) initStore(ctx context.Context) (session.Store, error) {
	switch s.cfg.Session.Backend {
	case config.BackendRedis:
		client, err := initRedis(s.cfg)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		return session.NewRedisStore(client), nil
	case config.BackendPostgres:
		pool, err := initDB(ctx, s.cfg)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		repo := repository.NewStorageRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return session.NewMemoryStore(), nil
	}
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: logger,
	}

	store, err := s.initStore(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s.wire(store), nil
}

// NewWithStore builds a server around an already opened store.
func NewWithStore(cfg *config.Config, store session.Store, logger *zap.Logger, formOpts ...form.Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: logger,
	}
	return s.wire(store, formOpts...)
}

func (s *Server) wire(store session.Store, formOpts ...form.Option) *Server {
	s.router.Use(middleware.RequestID)
	s.router.Use(logging.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(handler.ClientID(s.cfg.Server.SecureCookies))

	validate := validation.New()
	sessionService := session.NewService(store, validate, s.logger)

	opts := append([]form.Option{form.WithQuietPeriod(s.cfg.GetQuietPeriod())}, formOpts...)
	s.session = handler.NewSessionHandler(sessionService, s.logger)
	s.form = handler.NewFormHandler(sessionService, validate, s.logger,
		handler.WithAllowedOrigins(s.cfg.Server.AllowedOrigins),
		handler.WithFormOptions(opts...))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.session.Page)
	s.router.Get("/session", s.session.Current)
	s.router.Post("/login", s.session.Login)
	s.router.Post("/logout", s.session.Logout)
	s.router.Get("/healthz", s.session.Health)
	s.router.Get("/ws", s.form.HandleConnection)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.router,
	}
	// Shutdown does not track hijacked connections; close them here so
	// their forms unmount before the session store is closed.
	srv.RegisterOnShutdown(s.form.CloseConnections)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Server.Addr),
			zap.String("session_backend", s.cfg.Session.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := s.form.Wait(shutdownCtx); err != nil {
		return fmt.Errorf("close websocket connections: %w", err)
	}
	return nil
}

// Close releases the session store connections.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
