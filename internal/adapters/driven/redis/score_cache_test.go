package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

func TestScoreCache_SetGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewScoreCache(client, time.Minute)
	ctx := context.Background()
	version := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := cache.Get(ctx, 7, version)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	result := domain.EmptyScoreResult()
	result.PerCategory[domain.CategoryPrivacy] = 6.67
	result.Overall = 3.1
	require.NoError(t, cache.Set(ctx, 7, version, result))

	got, err := cache.Get(ctx, 7, version)
	require.NoError(t, err)
	assert.Equal(t, result, *got)

	// a newer version misses
	_, err = cache.Get(ctx, 7, version.Add(time.Second))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestScoreCache_Invalidate(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewScoreCache(client, 0)
	ctx := context.Background()
	v1, v2 := time.Unix(100, 0), time.Unix(200, 0)

	require.NoError(t, cache.Set(ctx, 1, v1, domain.EmptyScoreResult()))
	require.NoError(t, cache.Set(ctx, 1, v2, domain.EmptyScoreResult()))
	require.NoError(t, cache.Set(ctx, 2, v1, domain.EmptyScoreResult()))
	require.NoError(t, cache.Invalidate(ctx, 1))

	for _, v := range []time.Time{v1, v2} {
		_, err := cache.Get(ctx, 1, v)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
	_, err := cache.Get(ctx, 2, v1)
	assert.NoError(t, err)
}

func TestScoreCache_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewScoreCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, time.Unix(1, 0), domain.EmptyScoreResult()))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, 1, time.Unix(1, 0))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestScoreCache_DefaultTTL(t *testing.T) {
	client, _ := setupTestRedis(t)
	assert.Equal(t, DefaultScoreCacheTTL, NewScoreCache(client, 0).ttl)
}
