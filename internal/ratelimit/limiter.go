// Package ratelimit implements the gateway's admission control: a rolling
// window of admitted-call timestamps reserved before every upstream request.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/openlegis/legis-gateway/internal/domain"
)

// Config holds the admission budget.
type Config struct {
	// MaxRequests is the number of calls admitted inside one window.
	MaxRequests int

	// Window is the rolling window length.
	Window time.Duration
}

// Store tracks admitted-call stamps inside a rolling window. Entries older
// than the window are pruned on every reservation, so the store never holds
// a stamp older than now minus the window.
type Store interface {
	// Reserve prunes expired stamps, checks the budget, and records a new
	// stamp in one atomic step. When the call is admitted it returns the
	// stamp's token and ok=true; when the window is full it returns
	// ok=false. Atomicity is what keeps concurrent callers from pushing the
	// window past the budget.
	Reserve(ctx context.Context, now time.Time, window time.Duration, max int) (token string, ok bool, err error)

	// Release removes a reserved stamp so a failed call does not consume
	// budget. Releasing a stamp the window has already pruned is a no-op.
	Release(ctx context.Context, token string) error
}

// Option configures the limiter.
type Option func(*Limiter)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// Limiter enforces the admission budget. Acquire reserves a stamp before the
// outbound request; the caller releases it if the call fails, so failed
// calls never consume budget.
type Limiter struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// New creates a limiter over the given store.
func New(store Store, cfg Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.MaxRequests <= 0 || cfg.Window <= 0 {
		return nil, fmt.Errorf("admission budget must have positive values")
	}
	l := &Limiter{store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Acquire reserves one admitted call. It returns a release func that refunds
// the reservation when the call fails, or a rate-limit error when the window
// is full.
func (l *Limiter) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token, ok, err := l.store.Reserve(ctx, l.now(), l.cfg.Window, l.cfg.MaxRequests)
	if err != nil {
		return nil, domain.ErrInternal(fmt.Sprintf("admission check failed: %v", err))
	}
	if !ok {
		return nil, domain.ErrRateLimitExceeded(fmt.Sprintf(
			"local admission budget of %d requests per %s exhausted", l.cfg.MaxRequests, l.cfg.Window))
	}

	release := func(ctx context.Context) error {
		if err := l.store.Release(ctx, token); err != nil {
			return domain.ErrInternal(fmt.Sprintf("releasing admission stamp failed: %v", err))
		}
		return nil
	}
	return release, nil
}
