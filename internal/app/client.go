package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/hero-data-service/internal/config"
	"github.com/samvad-hq/hero-data-service/internal/heroes"
	"github.com/samvad-hq/hero-data-service/internal/logger"
	"github.com/samvad-hq/hero-data-service/internal/messages"
	"github.com/samvad-hq/hero-data-service/pkg/diagnostics"
	"github.com/samvad-hq/hero-data-service/pkg/httpclient"
)

// Client is one application session: a hero service, the notifier it writes to and the
// diagnostic sinks its failures are reported to.
type Client struct {
	Heroes   *heroes.Service
	Messages *messages.Service

	fanout *diagnostics.Fanout
	log    logger.Logger
}

// NewClient builds a client session from config. Without a sinks file failures are reported to
// the structured logger only.
func NewClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	sinks, err := buildSinks(ctx, cfg.SinksFile, log)
	if err != nil {
		return nil, err
	}
	fanout := diagnostics.NewFanout(sinks)

	summaries := make([]map[string]string, 0, len(sinks))
	for _, s := range sinks {
		summaries = append(summaries, map[string]string{"id": s.ID(), "type": s.Type()})
	}
	log.DebugObj("diagnostic sinks ready", "sinks_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})

	notifier := messages.NewService(log)
	svc := heroes.NewService(
		httpclient.NewRestyClient(cfg.APITimeout),
		notifier,
		heroes.WithBaseURL(cfg.APIBaseURL),
		heroes.WithDiagnostics(diagnostics.NewReporter(cfg.AppName, fanout, log)),
		heroes.WithLogger(log),
	)

	return &Client{
		Heroes:   svc,
		Messages: notifier,
		fanout:   fanout,
		log:      log,
	}, nil
}

// Close releases sink clients.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.fanout.Close()
}

func buildSinks(ctx context.Context, path string, log logger.Logger) ([]diagnostics.Sink, error) {
	if path == "" {
		return []diagnostics.Sink{diagnostics.NewLogSink("", log)}, nil
	}

	reg, err := diagnostics.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}
	enabled := reg.Enabled()
	if len(enabled) == 0 {
		log.WarnObj("all diagnostic sinks disabled", "sinks_file", path)
		return nil, nil
	}

	sinks, err := diagnostics.BuildAll(ctx, diagnostics.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	return sinks, nil
}
