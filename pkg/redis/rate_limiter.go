package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript increments the window counter and starts the window on the first hit.
var hitScript = redis.NewScript(`
	local count = redis.call("INCR", KEYS[1])
	if count == 1 then
		redis.call("PEXPIRE", KEYS[1], ARGV[1])
	end
	return {count, redis.call("PTTL", KEYS[1])}
`)

// RateLimiterOptions represents options for fixed-window rate limiting
type RateLimiterOptions struct {
	// MaxRequests is the number of hits allowed per window
	MaxRequests int
	// Window is the length of a counting window
	Window time.Duration
	// Namespace prefixes every counter key
	Namespace string
}

// NewRateLimiterOptions creates a new rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		MaxRequests: 10,
		Window:      time.Minute,
		Namespace:   "rate-limit",
	}
}

// WithMaxRequests sets the number of hits allowed per window
func (rlo *RateLimiterOptions) WithMaxRequests(max int) *RateLimiterOptions {
	rlo.MaxRequests = max
	return rlo
}

// WithWindow sets the window length
func (rlo *RateLimiterOptions) WithWindow(window time.Duration) *RateLimiterOptions {
	rlo.Window = window
	return rlo
}

// WithNamespace sets the key namespace
func (rlo *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	rlo.Namespace = namespace
	return rlo
}

// RateLimitResult describes the outcome of a single hit
type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts hits per key in fixed windows shared by every instance
type RateLimiter struct {
	client *Client
	opts   *RateLimiterOptions
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, opts *RateLimiterOptions) *RateLimiter {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	return &RateLimiter{
		client: client,
		opts:   opts,
	}
}

func (rl *RateLimiter) buildKey(key string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + key
	}
	return key
}

// Allow records a hit for key and reports whether it fits in the current window
func (rl *RateLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	values, err := hitScript.Run(ctx, rl.client.GetClient(), []string{rl.buildKey(key)}, rl.opts.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to record hit for %s: %w", key, err)
	}

	count := int(values[0])
	retryAfter := time.Duration(values[1]) * time.Millisecond
	if retryAfter <= 0 {
		retryAfter = rl.opts.Window
	}

	if count > rl.opts.MaxRequests {
		return &RateLimitResult{Allowed: false, Remaining: 0, RetryAfter: retryAfter}, nil
	}
	return &RateLimitResult{Allowed: true, Remaining: rl.opts.MaxRequests - count}, nil
}

// Reset clears the counter for key
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	return rl.client.GetClient().Del(ctx, rl.buildKey(key)).Err()
}
