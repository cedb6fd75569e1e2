// Package runner drives the periodic background passes.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pass is one unit of periodic background work.
type Pass interface {
	RunDuePass(ctx context.Context, now time.Time) error
}

// Runner ticks at a fixed interval and runs the registered passes in
// order on every tick. Passes report their own failures; the runner
// only guards against panics so one bad pass cannot take the loop down.
type Runner struct {
	passes   []Pass
	interval time.Duration
	logger   zerolog.Logger
}

// New returns a runner ticking at the given interval over the passes.
func New(logger zerolog.Logger, interval time.Duration, passes ...Pass) *Runner {
	return &Runner{
		passes:   passes,
		interval: interval,
		logger:   logger,
	}
}

// Start runs one tick immediately, then one per interval, until ctx is
// cancelled. It blocks; an in-flight tick finishes before Start returns.
func (r *Runner) Start(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("runner stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	now := time.Now().UTC()

	l := r.logger.With().Str("tick_id", uuid.NewString()).Logger()
	ctx = l.WithContext(ctx)

	for _, pass := range r.passes {
		r.runPass(ctx, pass, now)
	}
}

func (r *Runner) runPass(ctx context.Context, pass Pass, now time.Time) {
	l := zerolog.Ctx(ctx)

	defer func() {
		if p := recover(); p != nil {
			l.Error().Interface("panic", p).Msg("pass panicked")
		}
	}()

	if err := pass.RunDuePass(ctx, now); err != nil {
		l.Error().Err(err).Send()
	}
}
