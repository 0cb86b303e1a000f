package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
	"github.com/custodia-labs/dri-core/internal/runtime"
)

// Ensure explainService implements ExplainService
var _ driving.ExplainService = (*explainService)(nil)

const (
	noRationale    = "No rationale found."
	noScoringLogic = "No scoring logic found."
	explainTokens  = 200
)

type explainService struct {
	catalogue *domain.Catalogue
	services  *runtime.Services
	settings  domain.ChatSettings
	logger    *slog.Logger
}

// NewExplainService creates a new ExplainService
func NewExplainService(catalogue *domain.Catalogue, services *runtime.Services, settings domain.ChatSettings, logger *slog.Logger) driving.ExplainService {
	if logger == nil {
		logger = slog.Default()
	}
	return &explainService{
		catalogue: catalogue,
		services:  services,
		settings:  settings,
		logger:    logger,
	}
}

// Explain describes an indicator. Unknown names still get the template
// with placeholder rationale and scale.
func (s *explainService) Explain(ctx context.Context, indicatorName string) (string, error) {
	name := strings.TrimSpace(indicatorName)
	if name == "" {
		return "", domain.ErrInvalidInput
	}

	rationale, scale := noRationale, noScoringLogic
	if ind, ok := s.catalogue.Get(name); ok {
		if r := strings.TrimSpace(ind.Rationale); r != "" {
			rationale = r
		}
		if sc := strings.TrimSpace(ind.Scale); sc != "" {
			scale = sc
		}
	}

	fallback := fmt.Sprintf(
		"%s: This criterion evaluates an organisation's practice in this area. Why it matters: %s How it's scored: %s",
		name, rationale, scale,
	)

	completer := s.services.ChatCompleter()
	if completer == nil {
		return fallback, nil
	}

	prompt := fmt.Sprintf(
		"Explain the following digital responsibility criterion in up to 4 sentences.\nName: %s\nRationale: %s\nScoring Logic: %s\nUse plain, user-friendly language.",
		name, rationale, scale,
	)
	params := s.settings.Clamp(explainTokens, nil, "")

	text, err := completer.Complete(ctx, domain.CompletionRequest{
		Model:       params.Model,
		Messages:    []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: prompt}},
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		s.logger.Warn("explain completion failed", "indicator", name, "error", err)
		return fallback, nil
	}
	if text = strings.TrimSpace(text); text == "" {
		return fallback, nil
	}
	return text, nil
}
