package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/custodia-labs/dri-core/internal/chatcontext"
	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
	"github.com/custodia-labs/dri-core/internal/runtime"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService assembles context for a turn and forwards it to the
// configured completion client
type chatService struct {
	services  *runtime.Services
	assembler *chatcontext.Assembler
	settings  domain.ChatSettings
	logger    *slog.Logger
}

// NewChatService creates a new ChatService. A nil assembler uses the defaults.
func NewChatService(
	services *runtime.Services,
	assembler *chatcontext.Assembler,
	settings domain.ChatSettings,
	logger *slog.Logger,
) driving.ChatService {
	if assembler == nil {
		assembler = chatcontext.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		services:  services,
		assembler: assembler,
		settings:  settings,
		logger:    logger,
	}
}

// Reply answers one turn. Provider failures degrade to the canned reply.
func (s *chatService) Reply(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	params := s.settings.Clamp(req.MaxTokens, req.Temperature, strings.TrimSpace(req.Model))

	ref := s.services.Reference()
	if override := strings.TrimSpace(req.SystemPrompt); override != "" {
		ref = ref.WithPersona(domain.TruncateRunes(override, domain.MaxSystemPromptLength))
	}

	assembled := s.assembler.Assemble(ref, req.Messages, req.Context)

	resp := &domain.ChatResponse{Reply: domain.FallbackReply}
	if assembled.HasDetected {
		resp.Category = assembled.Detected
	}

	completer := s.services.ChatCompleter()
	if completer == nil {
		return resp, nil
	}

	reply, err := completer.Complete(ctx, domain.CompletionRequest{
		Model:       params.Model,
		Messages:    assembled.Messages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		s.logger.Warn("chat completion failed",
			"error", err,
			"model", params.Model,
			"session_id", req.Context.SessionID,
		)
		return resp, nil
	}

	if reply = strings.TrimSpace(reply); reply != "" {
		resp.Reply = reply
	}

	s.logger.Debug("chat turn",
		"session_id", req.Context.SessionID,
		"messages", len(assembled.Messages),
		"snippets", assembled.Snippets,
		"detected", string(resp.Category),
	)
	return resp, nil
}
