package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samvad-hq/hero-data-service/internal/config"
	"github.com/samvad-hq/hero-data-service/internal/logger"
	"github.com/samvad-hq/hero-data-service/internal/mockapi"
	"github.com/samvad-hq/hero-data-service/internal/storage"
	"github.com/samvad-hq/hero-data-service/pkg/seed"
)

const shutdownTimeout = 5 * time.Second

// Server is the mock heroes API runtime: storage, seed data and the HTTP app.
type Server struct {
	cfg   *config.Config
	app   *fiber.App
	store storage.Store
	log   logger.Logger
}

// NewServer opens storage, seeds it when empty and builds the HTTP app.
func NewServer(cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	if err := seedStore(store, cfg.SeedFile, log); err != nil {
		store.Close()
		return nil, err
	}

	app, err := mockapi.New(mockapi.Options{
		Store:   store,
		Log:     log,
		Latency: cfg.MockDelay,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build http app: %w", err)
	}

	return &Server{cfg: cfg, app: app, store: store, log: log}, nil
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		s.closeStore()
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down and closes storage.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s == nil || s.app == nil {
		return fmt.Errorf("server is not initialized")
	}
	defer s.closeStore()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()
	s.log.InfoObj("mock heroes api listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.InfoObj("mock heroes api shutting down", "reason", ctx.Err())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func seedStore(store storage.Store, path string, log logger.Logger) error {
	if path == "" {
		return nil
	}
	list, err := seed.LoadHeroes(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WarnObj("seed file missing; starting empty", "seed_file", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	n, err := store.Seed(list)
	if err != nil {
		return fmt.Errorf("seed storage: %w", err)
	}
	log.InfoObj("storage seeded", "seed_meta", map[string]any{
		"file":    path,
		"written": n,
	})
	return nil
}

// closeStore closes the storage backend, logging any errors encountered.
func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.ErrorObj("storage close failed", "error", err)
	}
}
