package ratelimit

import (
	"context"
	"time"
)

// SubmitLimitConfig caps how many tickets a single user may submit per window.
type SubmitLimitConfig struct {
	PerMinute int
	PerHour   int
	PerDay    int
}

// windows expands the config into the sliding windows to enforce. Zero or
// negative limits disable their window.
func (c SubmitLimitConfig) windows() []limitWindow {
	return []limitWindow{
		{time.Minute, c.PerMinute},
		{time.Hour, c.PerHour},
		{24 * time.Hour, c.PerDay},
	}
}

type limitWindow struct {
	duration time.Duration
	limit    int
}

// SubmitLimiter answers whether a user may submit another ticket right now.
type SubmitLimiter interface {
	AllowSubmission(ctx context.Context, userID uint) (bool, error)
	RemainingSubmissions(ctx context.Context, userID uint, window time.Duration) (int64, error)
	ResetUser(ctx context.Context, userID uint) error
}
