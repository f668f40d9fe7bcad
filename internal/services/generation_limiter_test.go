package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryLimiterRejectsConcurrentAcquire(t *testing.T) {
	limiter := NewMemoryGenerationLimiter(0, nil)

	release, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if _, err := limiter.Acquire(context.Background(), 1); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	// A different user is unaffected.
	otherRelease, err := limiter.Acquire(context.Background(), 2)
	if err != nil {
		t.Fatalf("acquire for another user failed: %v", err)
	}
	otherRelease()

	release()
	release2, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	release2()
}

func TestMemoryLimiterEnforcesCooldown(t *testing.T) {
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	limiter := NewMemoryGenerationLimiter(time.Minute, clock)

	release, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	release()

	if _, err := limiter.Acquire(context.Background(), 1); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected cooldown rejection, got %v", err)
	}

	current = current.Add(61 * time.Second)
	release, err = limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire after cooldown failed: %v", err)
	}
	release()
}

func redisLimiterFixture(t *testing.T, cooldown time.Duration) (*RedisGenerationLimiter, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisGenerationLimiter(client, cooldown), server
}

func TestRedisLimiterRejectsConcurrentAcquire(t *testing.T) {
	limiter, _ := redisLimiterFixture(t, 0)

	release, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if _, err := limiter.Acquire(context.Background(), 1); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	release()
	release2, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	release2()
}

func TestRedisLimiterEnforcesCooldown(t *testing.T) {
	limiter, server := redisLimiterFixture(t, time.Minute)

	release, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	release()

	if _, err := limiter.Acquire(context.Background(), 1); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected cooldown rejection, got %v", err)
	}

	server.FastForward(61 * time.Second)
	release, err = limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire after cooldown failed: %v", err)
	}
	release()
}

func TestRedisLimiterLockExpiresAfterCrash(t *testing.T) {
	limiter, server := redisLimiterFixture(t, 0)

	// Acquire and never release, simulating a crashed instance.
	if _, err := limiter.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if _, err := limiter.Acquire(context.Background(), 1); !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("expected held lock, got %v", err)
	}

	server.FastForward(11 * time.Minute)
	release, err := limiter.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatalf("acquire after lock TTL failed: %v", err)
	}
	release()
}
