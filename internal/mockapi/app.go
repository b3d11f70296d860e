// Package mockapi serves the heroes REST resource the hero data service talks to.
package mockapi

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samvad-hq/hero-data-service/internal/logger"
	"github.com/samvad-hq/hero-data-service/internal/storage"
)

// Options configures the mock API application.
type Options struct {
	Store    storage.Store
	Log      logger.Logger
	Registry *prometheus.Registry
	Latency  time.Duration
}

// New builds the fiber application with middleware, metrics and routes.
func New(opts Options) (*fiber.App, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "heroes-mock",
		ErrorHandler:          ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(RequestID())
	app.Use(RequestLogger(opts.Log))
	app.Use(metrics.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	app.Use("/api", Latency(opts.Latency))

	RegisterRoutes(app, opts.Store)
	return app, nil
}
