package diagnostics

import (
	"context"
	"time"
)

const defaultReportTimeout = 5 * time.Second

// Reporter turns failed operations into Reports and fans them out. Delivery problems are logged
// and never returned, so it can back a caller that must not fail.
type Reporter struct {
	service string
	fanout  *Fanout
	log     Logger
	timeout time.Duration
}

// NewReporter builds a reporter tagging reports with service.
func NewReporter(service string, fanout *Fanout, log Logger) *Reporter {
	return &Reporter{
		service: service,
		fanout:  fanout,
		log:     ensureLogger(log),
		timeout: defaultReportTimeout,
	}
}

// Report sends one report for the failed operation. Cancellation of ctx does not stop delivery;
// it is bounded by the reporter timeout instead.
func (r *Reporter) Report(ctx context.Context, operation string, err error) {
	if r == nil || r.fanout.Size() == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	rep := NewReport(r.service, operation, err)
	delivered, sendErr := r.fanout.Send(ctx, rep)
	if sendErr != nil {
		r.log.WarnObj("diagnostic report delivery failed", "diagnostic_error", map[string]any{
			"report_id": rep.ID,
			"operation": operation,
			"delivered": delivered,
			"sinks":     r.fanout.Size(),
			"error":     sendErr.Error(),
		})
	}
}
