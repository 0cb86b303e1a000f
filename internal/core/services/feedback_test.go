package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven/mocks"
)

func TestFeedbackService_Submit(t *testing.T) {
	store := mocks.NewMockFeedbackStore()
	svc := NewFeedbackService(store, nil)

	id, err := svc.Submit(context.Background(), domain.FeedbackInput{
		SessionID: strings.Repeat("s", 200),
		Route:     "/companies/1",
		Message:   "The privacy score looks too low.",
		Consent:   true,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	items, err := svc.List(context.Background(), domain.FeedbackFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Len(t, items[0].SessionID, domain.MaxFeedbackSessionIDLen)
	assert.Equal(t, "general", items[0].FeedbackType)
	assert.False(t, items[0].CreatedAt.IsZero())
	assert.Nil(t, items[0].ViewportWidth)
}

func TestFeedbackService_SubmitRequiresFields(t *testing.T) {
	store := mocks.NewMockFeedbackStore()
	svc := NewFeedbackService(store, nil)

	_, err := svc.Submit(context.Background(), domain.FeedbackInput{SessionID: "s", Route: "/"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, store.Count())
}

func TestFeedbackService_SubmitStoreError(t *testing.T) {
	store := mocks.NewMockFeedbackStore()
	store.SaveFn = func(*domain.Feedback) error { return errors.New("db down") }
	svc := NewFeedbackService(store, nil)

	_, err := svc.Submit(context.Background(), domain.FeedbackInput{SessionID: "s", Route: "/", Message: "m"})
	assert.Error(t, err)
}

func TestFeedbackService_ListClampsAndFilters(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockFeedbackStore()
	svc := NewFeedbackService(store, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, domain.FeedbackInput{SessionID: "s", Route: "/a", Message: "m", IndicatorName: "Staff training"})
		require.NoError(t, err)
	}
	_, err := svc.Submit(ctx, domain.FeedbackInput{SessionID: "s", Route: "/b", Message: "latest"})
	require.NoError(t, err)

	items, err := svc.List(ctx, domain.FeedbackFilter{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxFeedbackLimit, store.LastFilter.Limit)
	assert.Equal(t, "latest", items[0].Message, "newest first")

	items, err = svc.List(ctx, domain.FeedbackFilter{Route: "/a", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.List(ctx, domain.FeedbackFilter{IndicatorName: "Staff training"})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, domain.DefaultFeedbackLimit, store.LastFilter.Limit)

	items, err = svc.List(ctx, domain.FeedbackFilter{Route: "/none"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
