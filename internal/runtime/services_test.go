package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven/mocks"
)

func TestNewServices(t *testing.T) {
	config := domain.NewRuntimeConfig("postgres")
	services := NewServices(config)

	if services.Config() != config {
		t.Error("expected config to be set")
	}
	if services.ChatCompleter() != nil {
		t.Error("expected no completion client initially")
	}
	ref := services.Reference()
	if ref == nil || ref.Persona != domain.DefaultPersona {
		t.Error("expected built-in reference snapshot")
	}
}

func TestServices_SetChatCompleter(t *testing.T) {
	config := domain.NewRuntimeConfig("postgres")
	services := NewServices(config)

	first := mocks.NewMockChatCompleter("one")
	services.SetChatCompleter(first)
	if services.ChatCompleter() != first {
		t.Error("expected client to be set")
	}
	if !config.LLMAvailable() {
		t.Error("expected LLMAvailable to be true")
	}

	second := mocks.NewMockChatCompleter("two")
	services.SetChatCompleter(second)
	if !first.Closed {
		t.Error("expected replaced client to be closed")
	}

	services.SetChatCompleter(nil)
	if !second.Closed {
		t.Error("expected cleared client to be closed")
	}
	if config.LLMAvailable() {
		t.Error("expected LLMAvailable to be false")
	}
}

func TestServices_ValidateAndSetChat(t *testing.T) {
	ctx := context.Background()
	services := NewServices(domain.NewRuntimeConfig("postgres"))

	failing := mocks.NewMockChatCompleter("x")
	failing.PingFn = func() error { return errors.New("connection refused") }
	if err := services.ValidateAndSetChat(ctx, failing); err == nil {
		t.Fatal("expected ping error")
	}
	if services.ChatCompleter() != nil {
		t.Error("failing client must not be installed")
	}
	if !failing.Closed {
		t.Error("failing client should be closed")
	}

	ok := mocks.NewMockChatCompleter("y")
	if err := services.ValidateAndSetChat(ctx, ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if services.ChatCompleter() != ok {
		t.Error("expected client to be installed")
	}

	if err := services.ValidateAndSetChat(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if services.ChatCompleter() != nil {
		t.Error("expected client to be cleared")
	}
}

func TestServices_SetReference(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("postgres"))
	held := services.Reference()

	next := domain.NewReferenceSnapshot("new persona", "bg", nil, nil)
	services.SetReference(next)
	services.SetReference(nil)

	if services.Reference() != next {
		t.Error("expected new snapshot")
	}
	if held.Persona != domain.DefaultPersona {
		t.Error("a held snapshot must not change")
	}
}

func TestServices_ConcurrentAccess(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("postgres"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			services.SetReference(domain.NewReferenceSnapshot("p", "", nil, nil))
			services.SetChatCompleter(mocks.NewMockChatCompleter("r"))
		}()
		go func() {
			defer wg.Done()
			_ = services.Reference().Persona
			_ = services.ChatCompleter()
		}()
	}
	wg.Wait()
}

func TestServices_Close(t *testing.T) {
	config := domain.NewRuntimeConfig("postgres")
	services := NewServices(config)
	client := mocks.NewMockChatCompleter("r")
	services.SetChatCompleter(client)

	if err := services.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !client.Closed || services.ChatCompleter() != nil || config.LLMAvailable() {
		t.Error("expected client closed and cleared")
	}
}
