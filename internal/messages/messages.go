// Package messages holds the session-scoped list of human-readable log lines shown to the user.
package messages

import (
	"sync"

	"github.com/samvad-hq/hero-data-service/internal/logger"
)

// Service accumulates messages for later display. The zero value is ready to use.
type Service struct {
	mu       sync.Mutex
	messages []string
	log      logger.Logger
}

// NewService returns a message list that also mirrors each entry to log at debug level.
func NewService(log logger.Logger) *Service {
	return &Service{log: log}
}

// Add appends message.
func (s *Service) Add(message string) {
	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	if s.log != nil {
		s.log.DebugObj("message added", "message", message)
	}
}

// Messages returns a snapshot of the accumulated messages in insertion order.
func (s *Service) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear drops all accumulated messages.
func (s *Service) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}
