// Package schedule runs recurring callbacks against an injectable clock.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Interval implements domain.Scheduler with clockwork tickers. Each callback
// runs on its own goroutine, one invocation at a time, until ctx is done.
type Interval struct {
	ctx    context.Context
	clock  clockwork.Clock
	logger *slog.Logger
}

// New creates an Interval scheduler bound to ctx. A nil clock uses the real clock.
func New(ctx context.Context, clock clockwork.Clock, logger *slog.Logger) *Interval {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Interval{ctx: ctx, clock: clock, logger: logger}
}

// Every calls fn once per interval. Ticks that fire while fn is still running
// are dropped rather than queued.
func (s *Interval) Every(interval time.Duration, fn func()) {
	ticker := s.clock.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				s.logger.Debug("interval stopped", "interval", interval, "reason", s.ctx.Err())
				return
			case <-ticker.Chan():
				fn()
			}
		}
	}()
}
