package runtime

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Services holds references to the parts of the system that can change
// while serving: the completion client and the reference text snapshot.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Completion client (nil when not configured)
	chat driven.ChatCompleter

	// Reference snapshot, swapped whole on reload
	reference atomic.Pointer[domain.ReferenceSnapshot]
}

// NewServices creates a new Services registry seeded with the built-in
// reference text
func NewServices(config *domain.RuntimeConfig) *Services {
	s := &Services{config: config}
	s.reference.Store(domain.DefaultReferenceSnapshot())
	return s
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// ChatCompleter returns the current completion client (may be nil)
func (s *Services) ChatCompleter() driven.ChatCompleter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chat
}

// SetChatCompleter updates the completion client.
// Closes the old client if present. Updates config flags.
func (s *Services) SetChatCompleter(svc driven.ChatCompleter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat != nil {
		_ = s.chat.Close()
	}

	s.chat = svc
	s.config.SetLLMAvailable(svc != nil)
}

// ValidateAndSetChat checks connectivity before installing a client
func (s *Services) ValidateAndSetChat(ctx context.Context, svc driven.ChatCompleter) error {
	if svc == nil {
		s.SetChatCompleter(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetChatCompleter(svc)
	return nil
}

// Reference returns the current reference snapshot. Never nil.
func (s *Services) Reference() *domain.ReferenceSnapshot {
	return s.reference.Load()
}

// SetReference swaps in a new reference snapshot. Requests already holding
// the old snapshot keep using it. A nil snapshot is ignored.
func (s *Services) SetReference(ref *domain.ReferenceSnapshot) {
	if ref == nil {
		return
	}
	s.reference.Store(ref)
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat != nil {
		_ = s.chat.Close()
		s.chat = nil
	}
	s.config.SetLLMAvailable(false)
	return nil
}
