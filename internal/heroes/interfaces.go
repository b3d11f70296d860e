package heroes

import (
	"context"

	"github.com/samvad-hq/hero-data-service/pkg/httpclient"
)

// HTTPTransport issues the hero API requests.
type HTTPTransport = httpclient.Client

// Notifier accumulates human-readable log lines for display.
type Notifier interface {
	Add(message string)
}

// DiagnosticSink receives the raw error of every failed request. Implementations must not block
// the caller for long and must swallow their own delivery failures.
type DiagnosticSink interface {
	Report(ctx context.Context, operation string, err error)
}

type discardSink struct{}

func (discardSink) Report(context.Context, string, error) {}
