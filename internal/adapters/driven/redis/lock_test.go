package redis

import (
	"context"
	"testing"
	"time"
)

func TestLock_OwnerIDUnique(t *testing.T) {
	client, _ := setupTestRedis(t)

	if NewLock(client).OwnerID() == NewLock(client).OwnerID() {
		t.Error("expected unique owner IDs")
	}
}

func TestLock_AcquireRelease(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	a, b := NewLock(client), NewLock(client)

	ok, err := a.Acquire(ctx, "leaderboard-rebuild", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, got %v %v", ok, err)
	}
	if got, _ := mr.Get(lockPrefix + "leaderboard-rebuild"); got != a.OwnerID() {
		t.Errorf("expected owner %s stored, got %s", a.OwnerID(), got)
	}

	ok, err = b.Acquire(ctx, "leaderboard-rebuild", time.Minute)
	if err != nil || ok {
		t.Fatalf("expected second owner to be refused, got %v %v", ok, err)
	}

	// b releasing must not free a's lock
	if err := b.Release(ctx, "leaderboard-rebuild"); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if !mr.Exists(lockPrefix + "leaderboard-rebuild") {
		t.Fatal("lock released by non-owner")
	}

	if err := a.Release(ctx, "leaderboard-rebuild"); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	ok, _ = b.Acquire(ctx, "leaderboard-rebuild", time.Minute)
	if !ok {
		t.Error("expected lock to be free after owner release")
	}
}

func TestLock_ReleaseNotHeld(t *testing.T) {
	client, _ := setupTestRedis(t)

	if err := NewLock(client).Release(context.Background(), "nothing"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestLock_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	a, b := NewLock(client), NewLock(client)

	_, _ = a.Acquire(ctx, "job", time.Second)
	mr.FastForward(2 * time.Second)

	if ok, _ := b.Acquire(ctx, "job", time.Second); !ok {
		t.Error("expected expired lock to be acquirable")
	}
}

func TestLock_Extend(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	a, b := NewLock(client), NewLock(client)

	_, _ = a.Acquire(ctx, "job", time.Second)
	if err := a.Extend(ctx, "job", time.Minute); err != nil {
		t.Fatalf("unexpected extend error: %v", err)
	}
	if ttl := mr.TTL(lockPrefix + "job"); ttl < 30*time.Second {
		t.Errorf("expected extended TTL, got %v", ttl)
	}

	if err := b.Extend(ctx, "job", time.Minute); err == nil {
		t.Error("expected extend by non-owner to fail")
	}
	if err := a.Extend(ctx, "other", time.Minute); err == nil {
		t.Error("expected extend of unheld lock to fail")
	}
}

func TestLock_Ping(t *testing.T) {
	client, mr := setupTestRedis(t)
	lock := NewLock(client)

	if err := lock.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
	mr.Close()
	if err := lock.Ping(context.Background()); err == nil {
		t.Error("expected ping error after server shutdown")
	}
}
