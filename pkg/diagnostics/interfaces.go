package diagnostics

import "context"

// Sink delivers diagnostic reports to a downstream channel (log, webhook, queue, topic).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, rep Report) error
}
