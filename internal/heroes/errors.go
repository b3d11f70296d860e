package heroes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrRequestFailed is the single failure kind of the hero API: transport errors, non-2xx statuses and
// undecodable bodies are not distinguished.
var ErrRequestFailed = errors.New("request failed")

var errEmptyResponse = errors.New("transport returned no response")

// RequestError describes one failed request.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("Http failure response for %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	case e.StatusCode != 0:
		return fmt.Sprintf("Http failure during parsing for %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("Http failure during %s %s: %v", e.Method, e.URL, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// recoverWith returns the failure handler for operation. The handler reports the raw error to the
// diagnostic sink, logs "<operation> failed: <message>" and yields fallback so the caller keeps going.
func recoverWith[T any](ctx context.Context, s *Service, operation string, fallback T) func(error) T {
	return func(err error) T {
		s.sink.Report(ctx, operation, err)
		s.log(fmt.Sprintf("%s failed: %s", operation, errorMessage(err)))
		return fallback
	}
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return strings.TrimSpace(err.Error())
}
