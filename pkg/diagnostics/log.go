package diagnostics

import "context"

// logSink writes reports to the structured logger. It is the local stand-in for remote reporting.
type logSink struct {
	id  string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	return NewLogSink(cfg.ID, log), nil
}

// NewLogSink returns a sink that logs every report at error level.
func NewLogSink(id string, log Logger) Sink {
	if id == "" {
		id = TypeLog
	}
	return &logSink{id: id, log: ensureLogger(log)}
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return TypeLog }

func (l *logSink) Send(_ context.Context, rep Report) error {
	l.log.ErrorObj("hero api request failed", "diagnostic_report", rep)
	return nil
}
