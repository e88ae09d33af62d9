package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSubmitLimiter tracks ticket submissions per user in redis sorted sets,
// one set per sliding window.
type RedisSubmitLimiter struct {
	client *redis.Client
	config SubmitLimitConfig
}

func NewRedisSubmitLimiter(client *redis.Client, config SubmitLimitConfig) SubmitLimiter {
	return &RedisSubmitLimiter{
		client: client,
		config: config,
	}
}

func (l *RedisSubmitLimiter) AllowSubmission(ctx context.Context, userID uint) (bool, error) {
	now := time.Now()

	for _, window := range l.config.windows() {
		if window.limit <= 0 {
			continue
		}

		allowed, err := l.checkWindow(ctx, userID, window.duration, window.limit, now)
		if err != nil {
			return false, err
		}

		if !allowed {
			return false, nil
		}
	}

	return true, nil
}

func (l *RedisSubmitLimiter) checkWindow(ctx context.Context, userID uint, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := l.key(userID, window)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(limit), nil
}

func (l *RedisSubmitLimiter) RemainingSubmissions(ctx context.Context, userID uint, window time.Duration) (int64, error) {
	redisKey := l.key(userID, window)
	windowStart := time.Now().Add(-window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	return zcard.Val(), nil
}

func (l *RedisSubmitLimiter) ResetUser(ctx context.Context, userID uint) error {
	pattern := fmt.Sprintf("ticket-submit:%d:*", userID)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	return nil
}

func (l *RedisSubmitLimiter) key(userID uint, window time.Duration) string {
	return fmt.Sprintf("ticket-submit:%d:%s", userID, window.String())
}
