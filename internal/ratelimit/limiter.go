package ratelimit

import (
	"context"
	"fmt"
	"time"
)

type ActionConfig struct {
	Limit  int64
	Window time.Duration
}

const (
	ActionSignin = "signin"
	ActionSignup = "signup"
	ActionLookup = "lookup"
	ActionList   = "list"
)

var DefaultLimits = map[string]ActionConfig{
	ActionSignin: {Limit: 10, Window: time.Minute},
	ActionSignup: {Limit: 5, Window: time.Minute},
	ActionLookup: {Limit: 60, Window: time.Minute},
	ActionList:   {Limit: 120, Window: time.Minute},
}

var fallbackLimit = ActionConfig{Limit: 100, Window: time.Minute}

type Limiter struct {
	storage *RedisStorage
	limits  map[string]ActionConfig
	now     func() time.Time
}

type CheckResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"resetAt"`
	Limit     int64 `json:"limit"`
}

// NewLimiter builds a fixed-window limiter. A nil limits map uses
// DefaultLimits.
func NewLimiter(storage *RedisStorage, limits map[string]ActionConfig) *Limiter {
	if limits == nil {
		limits = DefaultLimits
	}
	return &Limiter{storage: storage, limits: limits, now: time.Now}
}

func (l *Limiter) Check(ctx context.Context, clientID, action string) (*CheckResult, error) {
	config, ok := l.limits[action]
	if !ok {
		config = fallbackLimit
	}

	key := fmt.Sprintf("rate:%s:%s", clientID, action)

	count, ttl, err := l.storage.Incr(ctx, key, config.Window)
	if err != nil {
		return nil, fmt.Errorf("increment %s: %w", key, err)
	}

	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &CheckResult{
		Allowed:   count <= config.Limit,
		Remaining: remaining,
		ResetAt:   l.now().Add(ttl).Unix(),
		Limit:     config.Limit,
	}, nil
}
