package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
)

// Ensure feedbackService implements FeedbackService
var _ driving.FeedbackService = (*feedbackService)(nil)

type feedbackService struct {
	store  driven.FeedbackStore
	logger *slog.Logger
	now    func() time.Time
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(store driven.FeedbackStore, logger *slog.Logger) driving.FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &feedbackService{store: store, logger: logger, now: time.Now}
}

// Submit validates, caps and stores one entry
func (s *feedbackService) Submit(ctx context.Context, in domain.FeedbackInput) (string, error) {
	fb, err := in.ToFeedback()
	if err != nil {
		return "", err
	}
	fb.ID = uuid.NewString()
	fb.CreatedAt = s.now().UTC()

	if err := s.store.Save(ctx, fb); err != nil {
		s.logger.Error("feedback insert failed", "error", err, "route", fb.Route)
		return "", err
	}

	s.logger.Info("feedback saved", "id", fb.ID, "type", fb.FeedbackType, "route", fb.Route)
	return fb.ID, nil
}

// List returns entries newest first with the limit clamped
func (s *feedbackService) List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error) {
	items, err := s.store.List(ctx, filter.Normalize())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Feedback{}
	}
	return items, nil
}
