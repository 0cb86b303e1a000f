package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ScoreCache = (*ScoreCache)(nil)

const (
	scoreCachePrefix = keyPrefix + "score:"

	// DefaultScoreCacheTTL applies when NewScoreCache is given zero
	DefaultScoreCacheTTL = time.Hour
)

// ScoreCache stores aggregate results in one hash per company, one field per
// LastUpdated version, so invalidation is a single DEL.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreCache creates a Redis-backed score cache
func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = DefaultScoreCacheTTL
	}
	return &ScoreCache{client: client, ttl: ttl}
}

func scoreKey(companyID int64) string {
	return scoreCachePrefix + strconv.FormatInt(companyID, 10)
}

func versionField(version time.Time) string {
	return strconv.FormatInt(version.UnixNano(), 10)
}

// Get returns domain.ErrNotFound on a miss
func (c *ScoreCache) Get(ctx context.Context, companyID int64, version time.Time) (*domain.ScoreResult, error) {
	data, err := c.client.HGet(ctx, scoreKey(companyID), versionField(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached score: %w", err)
	}

	var result domain.ScoreResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode cached score: %w", err)
	}
	return &result, nil
}

// Set stores a result and refreshes the hash TTL
func (c *ScoreCache) Set(ctx context.Context, companyID int64, version time.Time, result domain.ScoreResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}

	key := scoreKey(companyID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, versionField(version), data)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache score: %w", err)
	}
	return nil
}

// Invalidate drops every cached version for a company
func (c *ScoreCache) Invalidate(ctx context.Context, companyID int64) error {
	if err := c.client.Del(ctx, scoreKey(companyID)).Err(); err != nil {
		return fmt.Errorf("invalidate score cache: %w", err)
	}
	return nil
}
