package ai

import (
	"errors"
	"testing"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

func TestFactory_CreateChatCompleter_NotConfigured(t *testing.T) {
	factory := NewFactory()

	for name, settings := range map[string]*domain.LLMSettings{
		"nil":            nil,
		"empty provider": {},
		"openai no key":  {Provider: domain.AIProviderOpenAI},
	} {
		t.Run(name, func(t *testing.T) {
			svc, err := factory.CreateChatCompleter(settings, "gpt-4o-mini")
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if svc != nil {
				t.Error("expected nil service")
			}
		})
	}
}

func TestFactory_CreateChatCompleter_OpenAI(t *testing.T) {
	svc, err := NewFactory().CreateChatCompleter(&domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-test",
	}, "gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Model() != "gpt-4o-mini" {
		t.Errorf("unexpected model %s", svc.Model())
	}
	if svc.(*OpenAIChat).baseURL != defaultOpenAIBaseURL {
		t.Errorf("expected default base URL, got %s", svc.(*OpenAIChat).baseURL)
	}
}

func TestFactory_CreateChatCompleter_Ollama(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateChatCompleter(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://localhost:11434/v1/",
	}, "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat := svc.(*OpenAIChat)
	if chat.apiKey != "" || chat.baseURL != "http://localhost:11434/v1" {
		t.Errorf("unexpected client %+v", chat)
	}

	_, err = factory.CreateChatCompleter(&domain.LLMSettings{Provider: domain.AIProviderOllama}, "llama3")
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider without base URL, got %v", err)
	}
}

func TestFactory_CreateChatCompleter_UnknownProvider(t *testing.T) {
	_, err := NewFactory().CreateChatCompleter(&domain.LLMSettings{Provider: "mystery", APIKey: "k"}, "m")
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}
