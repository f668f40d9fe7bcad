package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrGenerationInFlight = errors.New("plan generation already in flight")

// GenerationLimiter admits at most one in-flight plan generation per user and
// enforces a short cooldown after each run, so a double-submitted assessment
// cannot fan out into parallel pipelines. The composition root chooses the
// implementation.
type GenerationLimiter interface {
	Acquire(ctx context.Context, userID uint) (release func(), err error)
}

type MemoryGenerationLimiter struct {
	mu       sync.Mutex
	inFlight map[uint]bool
	lastRun  map[uint]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func NewMemoryGenerationLimiter(cooldown time.Duration, now func() time.Time) *MemoryGenerationLimiter {
	if now == nil {
		now = time.Now
	}
	return &MemoryGenerationLimiter{
		inFlight: make(map[uint]bool),
		lastRun:  make(map[uint]time.Time),
		cooldown: cooldown,
		now:      now,
	}
}

func (limiter *MemoryGenerationLimiter) Acquire(_ context.Context, userID uint) (func(), error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if limiter.inFlight[userID] {
		return nil, ErrGenerationInFlight
	}
	if last, ok := limiter.lastRun[userID]; ok && limiter.now().Sub(last) < limiter.cooldown {
		return nil, ErrGenerationInFlight
	}

	limiter.inFlight[userID] = true
	release := func() {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		delete(limiter.inFlight, userID)
		limiter.lastRun[userID] = limiter.now()
	}
	return release, nil
}

// RedisGenerationLimiter is the multi-instance variant: a SETNX lock for the
// in-flight slot and a cooldown key written on release. The lock carries a
// generous TTL so a crashed instance cannot wedge a user forever.
type RedisGenerationLimiter struct {
	client   *redis.Client
	cooldown time.Duration
	lockTTL  time.Duration
}

func NewRedisGenerationLimiter(client *redis.Client, cooldown time.Duration) *RedisGenerationLimiter {
	return &RedisGenerationLimiter{
		client:   client,
		cooldown: cooldown,
		lockTTL:  10 * time.Minute,
	}
}

func (limiter *RedisGenerationLimiter) Acquire(ctx context.Context, userID uint) (func(), error) {
	lockKey := fmt.Sprintf("praxis:generate:lock:%d", userID)
	cooldownKey := fmt.Sprintf("praxis:generate:cooldown:%d", userID)

	coolingDown, err := limiter.client.Exists(ctx, cooldownKey).Result()
	if err != nil {
		return nil, fmt.Errorf("check generation cooldown: %w", err)
	}
	if coolingDown > 0 {
		return nil, ErrGenerationInFlight
	}

	acquired, err := limiter.client.SetNX(ctx, lockKey, "1", limiter.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire generation lock: %w", err)
	}
	if !acquired {
		return nil, ErrGenerationInFlight
	}

	release := func() {
		// Release must not inherit a canceled request context.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if limiter.cooldown > 0 {
			limiter.client.Set(releaseCtx, cooldownKey, "1", limiter.cooldown)
		}
		limiter.client.Del(releaseCtx, lockKey)
	}
	return release, nil
}
