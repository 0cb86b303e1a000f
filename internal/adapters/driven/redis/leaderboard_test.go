package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

func TestLeaderboard_UpsertAndTop(t *testing.T) {
	client, _ := setupTestRedis(t)
	lb := NewLeaderboard(client)
	ctx := context.Background()

	require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: 1, Name: "Acme", Overall: 6.5}))
	require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: 2, Name: "Bolt", Overall: 8.1}))
	require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: 3, Name: "Core", Overall: 2}))

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, domain.LeaderboardEntry{CompanyID: 2, Name: "Bolt", Overall: 8.1, Rank: 1}, top[0])
	assert.Equal(t, domain.LeaderboardEntry{CompanyID: 1, Name: "Acme", Overall: 6.5, Rank: 2}, top[1])

	// Upsert replaces the previous score
	require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: 3, Name: "Core AG", Overall: 9}))
	top, err = lb.Top(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Core AG", top[0].Name)
}

func TestLeaderboard_TiesOrderedByName(t *testing.T) {
	client, _ := setupTestRedis(t)
	lb := NewLeaderboard(client)
	ctx := context.Background()

	for id, name := range map[int64]string{10: "Zeta", 11: "Alpha", 12: "Mid"} {
		require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: id, Name: name, Overall: 5}))
	}

	top, err := lb.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, []string{top[0].Name, top[1].Name, top[2].Name})
	assert.Equal(t, 3, top[2].Rank)
}

func TestLeaderboard_Remove(t *testing.T) {
	client, mr := setupTestRedis(t)
	lb := NewLeaderboard(client)
	ctx := context.Background()

	require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: 1, Name: "Acme", Overall: 3}))
	require.NoError(t, lb.Remove(ctx, 1))
	require.NoError(t, lb.Remove(ctx, 99))

	top, err := lb.Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.Equal(t, "", mr.HGet(leaderboardNamesKey, "1"))
}

func TestLeaderboard_Replace(t *testing.T) {
	client, _ := setupTestRedis(t)
	lb := NewLeaderboard(client)
	ctx := context.Background()

	require.NoError(t, lb.Upsert(ctx, domain.LeaderboardEntry{CompanyID: 99, Name: "Stale", Overall: 10}))
	require.NoError(t, lb.Replace(ctx, []domain.LeaderboardEntry{
		{CompanyID: 1, Name: "Acme", Overall: 4},
		{CompanyID: 2, Name: "Bolt", Overall: 7},
	}))

	top, err := lb.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].CompanyID)
	assert.Equal(t, int64(1), top[1].CompanyID)

	require.NoError(t, lb.Replace(ctx, nil))
	top, err = lb.Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}
