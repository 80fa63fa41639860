package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quantgrid/nse-chain-data/internal/clock"
	"github.com/quantgrid/nse-chain-data/internal/model"
)

// Fetcher produces capture batches for one underlying.
type Fetcher interface {
	Fetch(ctx context.Context, u model.Underlying) []model.CaptureBatch
}

// Writer persists one capture batch.
type Writer interface {
	Write(ctx context.Context, batch model.CaptureBatch) (int, error)
}

// Config holds cycle driver settings.
type Config struct {
	ErrorBackoff time.Duration  // sleep after an unhandled cycle failure
	TickOffset   time.Duration  // offset past the minute boundary for the next cycle
	Location     *time.Location // exchange wall-clock timezone
}

// Driver runs the collection loop.
type Driver struct {
	cfg     Config
	fetcher Fetcher
	writer  Writer
	logger  *slog.Logger

	// Injected for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a new Driver.
func New(cfg Config, f Fetcher, w Writer, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Driver{
		cfg:     cfg,
		fetcher: f,
		writer:  w,
		logger:  logger,
		now:     func() time.Time { return time.Now().In(loc) },
		sleep:   sleepCtx,
	}
}

// Run executes the collection loop until ctx is cancelled. The returned
// error is ctx's error; the loop itself never terminates on data failures.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("cycle driver started",
		"tick_offset", d.cfg.TickOffset,
		"error_backoff", d.cfg.ErrorBackoff,
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := d.now()
		sess := clock.Evaluate(now)
		if sess.Status != clock.Open {
			d.logger.Info("market closed, sleeping until next check",
				"status", sess.Status.String(),
				"next_check", sess.NextCheck,
			)
			if err := d.sleep(ctx, sess.NextCheck.Sub(now)); err != nil {
				return err
			}
			continue
		}

		d.logger.Info("starting collection cycle", "at", now)
		if err := d.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Error("cycle failed, backing off",
				"err", err,
				"backoff", d.cfg.ErrorBackoff,
			)
			if serr := d.sleep(ctx, d.cfg.ErrorBackoff); serr != nil {
				return serr
			}
			continue
		}

		end := d.now()
		next := nextTick(end, d.cfg.TickOffset)
		d.logger.Info("cycle complete",
			"duration", end.Sub(now),
			"next_cycle", next,
		)
		if err := d.sleep(ctx, next.Sub(end)); err != nil {
			return err
		}
	}
}

// runCycle processes every underlying in fixed priority order. One
// underlying's fetch or write failure never aborts the other; the returned
// error covers only failures escaping the phase itself.
func (d *Driver) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()

	for _, u := range model.All() {
		batches := d.fetcher.Fetch(ctx, u)
		if len(batches) == 0 {
			d.logger.Warn("no batches captured this cycle", "underlying", u)
			continue
		}
		for _, batch := range batches {
			if _, werr := d.writer.Write(ctx, batch); werr != nil {
				d.logger.Error("batch write failed",
					"underlying", u,
					"slot", batch.Slot,
					"expiry", batch.ExpiryDate,
					"err", werr,
				)
			}
		}
	}
	return nil
}

// nextTick returns the next whole-minute boundary after t, plus offset.
func nextTick(t time.Time, offset time.Duration) time.Time {
	return t.Truncate(time.Minute).Add(time.Minute + offset)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
