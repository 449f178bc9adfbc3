// Package ratelimit implements a fixed-window request limiter whose buckets
// live in the shared cache, so every service instance draws on the same
// budget per client.
//
// A bucket is read, updated and written back without a lock. Two instances
// racing on the same bucket may both admit a request, so the limit is
// approximate near window boundaries.
package ratelimit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/metrics"
	"fooddelivery/internal/pkg/errs"
)

const keyPrefix = "ratelimit:"

// Decision is the outcome of one CheckAndConsume call.
type Decision struct {
	Allowed bool
	// Remaining is the number of tokens left in the window, or -1 when
	// the store failed and the count is unknown.
	Remaining int
	// RetryAfter is set when the request is rejected: the time left until
	// the current window ends.
	RetryAfter time.Duration
}

type bucket struct {
	Tokens      int     `json:"tokens"`
	WindowStart float64 `json:"window_start"`
}

type Limiter struct {
	store  ports.Cache
	limit  int
	window time.Duration
	logger *slog.Logger
}

// New returns a Limiter admitting limit requests per window and client.
func New(store ports.Cache, limit int, window time.Duration, logger *slog.Logger) (*Limiter, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	if window <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("window", window, "1ns", "unbounded")
	}
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger.With("component", "rate_limiter"),
	}, nil
}

// CheckAndConsume takes one token from the client's bucket. If the store
// cannot be read or written the request is allowed.
func (l *Limiter) CheckAndConsume(ctx context.Context, clientID string) (Decision, error) {
	if clientID == "" {
		return Decision{}, errs.NewValueIsRequiredError("clientID")
	}
	key := keyPrefix + clientID
	now := timeNow()

	b, err := l.load(ctx, key)
	if err != nil {
		return l.failOpen(ctx, key, err), nil
	}

	start := fromUnix(b.WindowStart)
	// A missing bucket has a zero start and so always opens a new window.
	if now.Sub(start) >= l.window {
		b = bucket{Tokens: l.limit, WindowStart: toUnix(now)}
		start = now
	}

	if b.Tokens <= 0 {
		metrics.RateLimitDecisionsTotal.WithLabelValues("rejected").Inc()
		return Decision{
			Allowed:    false,
			RetryAfter: l.window - now.Sub(start),
		}, nil
	}

	b.Tokens--
	raw, err := json.Marshal(b)
	if err != nil {
		return l.failOpen(ctx, key, err), nil
	}
	if err = l.store.Set(ctx, key, raw, l.window); err != nil {
		return l.failOpen(ctx, key, err), nil
	}

	metrics.RateLimitDecisionsTotal.WithLabelValues("allowed").Inc()
	return Decision{Allowed: true, Remaining: b.Tokens}, nil
}

// load returns the stored bucket, or a zero bucket if there is none or it
// cannot be decoded.
func (l *Limiter) load(ctx context.Context, key string) (bucket, error) {
	raw, found, err := l.store.Get(ctx, key)
	if err != nil {
		return bucket{}, err
	}
	if !found {
		return bucket{}, nil
	}

	var b bucket
	if err = json.Unmarshal(raw, &b); err != nil {
		l.logger.WarnContext(ctx, "discarding malformed bucket", "key", key, "error", err)
		return bucket{}, nil
	}
	return b, nil
}

func (l *Limiter) failOpen(ctx context.Context, key string, err error) Decision {
	metrics.RateLimitDecisionsTotal.WithLabelValues("fail_open").Inc()
	l.logger.WarnContext(ctx, "rate limit store failed, allowing request", "key", key, "error", err)
	return Decision{Allowed: true, Remaining: -1}
}

func toUnix(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnix(seconds float64) time.Time {
	return time.Unix(0, int64(seconds*float64(time.Second)))
}

var timeNow = time.Now
