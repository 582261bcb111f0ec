// Package scheduler drives the periodic data refresh behind the watch
// command.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TickFunc is invoked on every interval with the tick's nominal time.
type TickFunc func(ctx context.Context, tick time.Time) error

// Options tune scheduler behaviour. AlignToStart snaps ticks to interval
// boundaries (e.g. the top of the hour) instead of counting from startup.
type Options struct {
	Interval     time.Duration
	AlignToStart bool
	StartupDelay time.Duration
}

// Scheduler runs a refresh job at a fixed cadence.
type Scheduler struct {
	opts   Options
	logger zerolog.Logger
}

// New constructs a Scheduler instance.
func New(opts Options, logger zerolog.Logger) *Scheduler {
	if opts.Interval <= 0 {
		panic("scheduler interval must be positive")
	}
	return &Scheduler{opts: opts, logger: logger.With().Str("component", "scheduler").Logger()}
}

// Run blocks, invoking the tick function on each interval until ctx is
// cancelled. A failing tick is logged and the loop keeps going; transient
// download errors must not kill the watch.
func (s *Scheduler) Run(ctx context.Context, tick TickFunc) error {
	if s.opts.StartupDelay > 0 {
		timer := time.NewTimer(s.opts.StartupDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	next := s.nextTick(time.Now())
	for {
		delay := time.Until(next)
		if delay < 0 {
			next = s.nextTick(time.Now())
			delay = time.Until(next)
		}

		timer := time.NewTimer(delay)
		s.logger.Debug().Time("next_tick", next).Msg("等待下一輪檢查")

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			timer.Stop()
		}

		s.logger.Info().Time("tick", next).Msg("開始定時檢查")

		if err := tick(ctx, next); err != nil {
			s.logger.Error().Err(err).Time("tick", next).Msg("定時檢查失敗")
		}

		next = next.Add(s.opts.Interval)
	}
}

func (s *Scheduler) nextTick(now time.Time) time.Time {
	if !s.opts.AlignToStart {
		return now.Add(s.opts.Interval)
	}
	aligned := now.Truncate(s.opts.Interval)
	if !aligned.After(now) {
		aligned = aligned.Add(s.opts.Interval)
	}
	return aligned
}
