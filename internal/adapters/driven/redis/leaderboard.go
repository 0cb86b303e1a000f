package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Leaderboard = (*Leaderboard)(nil)

const (
	leaderboardKey      = keyPrefix + "leaderboard"
	leaderboardNamesKey = keyPrefix + "leaderboard:names"
)

// Leaderboard keeps overall scores in a sorted set keyed by company ID,
// with display names in a companion hash.
type Leaderboard struct {
	client *redis.Client
}

// NewLeaderboard creates a Redis-backed leaderboard index
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

func member(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Upsert sets a company's overall score and name
func (l *Leaderboard) Upsert(ctx context.Context, entry domain.LeaderboardEntry) error {
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: entry.Overall, Member: member(entry.CompanyID)})
		pipe.HSet(ctx, leaderboardNamesKey, member(entry.CompanyID), entry.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert leaderboard entry %d: %w", entry.CompanyID, err)
	}
	return nil
}

// Remove drops a company from the index
func (l *Leaderboard) Remove(ctx context.Context, companyID int64) error {
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, leaderboardKey, member(companyID))
		pipe.HDel(ctx, leaderboardNamesKey, member(companyID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove leaderboard entry %d: %w", companyID, err)
	}
	return nil
}

// Top returns up to limit entries, best first. Equal scores are ordered by
// name, which a sorted set cannot express, so the full set is read and
// sorted here. A limit <= 0 returns everything.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	zs, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(zs) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	names, err := l.client.HGetAll(ctx, leaderboardNamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard names: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		m, _ := z.Member.(string)
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			CompanyID: id,
			Name:      names[m],
			Overall:   z.Score,
		})
	}

	domain.SortLeaderboard(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Replace swaps the whole index for entries in one transaction
func (l *Leaderboard) Replace(ctx context.Context, entries []domain.LeaderboardEntry) error {
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, leaderboardKey, leaderboardNamesKey)
		if len(entries) == 0 {
			return nil
		}

		zs := make([]redis.Z, len(entries))
		names := make(map[string]interface{}, len(entries))
		for i, e := range entries {
			zs[i] = redis.Z{Score: e.Overall, Member: member(e.CompanyID)}
			names[member(e.CompanyID)] = e.Name
		}
		pipe.ZAdd(ctx, leaderboardKey, zs...)
		pipe.HSet(ctx, leaderboardNamesKey, names)
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace leaderboard: %w", err)
	}
	return nil
}
