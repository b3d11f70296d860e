package diagnostics

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report is the payload describing one failed hero API request.
type Report struct {
	ID         string    `json:"id"`
	Service    string    `json:"service"`
	Operation  string    `json:"operation"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewReport constructs a Report for the failed operation.
func NewReport(service, operation string, err error) Report {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Report{
		ID:         uuid.NewString(),
		Service:    service,
		Operation:  operation,
		Message:    msg,
		OccurredAt: time.Now().UTC(),
	}
}

// Attributes are the routing fields copied onto message attributes and headers. Empty values are
// left out because SQS and SNS reject empty attribute values.
func (r Report) Attributes() map[string]string {
	out := make(map[string]string, 3)
	for k, v := range map[string]string{
		"report_id": r.ID,
		"service":   r.Service,
		"operation": r.Operation,
	} {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}
