package driver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quantgrid/nse-chain-data/internal/model"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type fakeFetcher struct {
	calls []model.Underlying
	fn    func(u model.Underlying) []model.CaptureBatch
}

func (f *fakeFetcher) Fetch(_ context.Context, u model.Underlying) []model.CaptureBatch {
	f.calls = append(f.calls, u)
	if f.fn != nil {
		return f.fn(u)
	}
	return nil
}

type fakeWriter struct {
	writes []model.CaptureBatch
	fn     func(b model.CaptureBatch) (int, error)
}

func (w *fakeWriter) Write(_ context.Context, b model.CaptureBatch) (int, error) {
	w.writes = append(w.writes, b)
	if w.fn != nil {
		return w.fn(b)
	}
	return len(b.Rows), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDriver wires a driver whose sleep records durations and cancels the
// run after maxSleeps sleeps, so Run terminates deterministically.
func newTestDriver(t *testing.T, f Fetcher, w Writer, now func() time.Time, maxSleeps int) (*Driver, context.Context, *[]time.Duration) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	d := New(Config{
		ErrorBackoff: 60 * time.Second,
		TickOffset:   2 * time.Second,
		Location:     ist,
	}, f, w, quietLogger())
	d.now = now

	slept := &[]time.Duration{}
	d.sleep = func(ctx context.Context, dur time.Duration) error {
		*slept = append(*slept, dur)
		if len(*slept) >= maxSleeps {
			cancel()
			return ctx.Err()
		}
		return ctx.Err()
	}
	return d, ctx, slept
}

func TestRunSleepsUntilNextCheckWhenClosed(t *testing.T) {
	// Saturday morning.
	now := time.Date(2025, time.August, 30, 10, 0, 0, 0, ist)
	fetcher := &fakeFetcher{}
	writer := &fakeWriter{}

	d, ctx, slept := newTestDriver(t, fetcher, writer, func() time.Time { return now }, 1)

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("fetched %d times while market closed, want 0", len(fetcher.calls))
	}
	if len(*slept) != 1 {
		t.Fatalf("slept %d times, want 1", len(*slept))
	}

	// Next calendar day's open threshold; the loop re-evaluates there and
	// sleeps again through Sunday.
	wantWake := time.Date(2025, time.August, 31, 9, 15, 2, 0, ist)
	if got := now.Add((*slept)[0]); !got.Equal(wantWake) {
		t.Errorf("woke at %v, want %v", got, wantWake)
	}
}

func TestRunCycleOrderAndAlignment(t *testing.T) {
	// Wednesday mid-session; fetch appears to take 41.5s.
	start := time.Date(2025, time.August, 27, 10, 3, 0, 0, ist)
	end := start.Add(41500 * time.Millisecond)
	times := []time.Time{start, end}
	now := func() time.Time {
		t := times[0]
		if len(times) > 1 {
			times = times[1:]
		}
		return t
	}

	fetcher := &fakeFetcher{fn: func(u model.Underlying) []model.CaptureBatch {
		return []model.CaptureBatch{{Underlying: u, Rows: make([]model.ChainRow, 3)}}
	}}
	writer := &fakeWriter{}

	d, ctx, slept := newTestDriver(t, fetcher, writer, now, 1)

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}

	wantOrder := []model.Underlying{model.Nifty, model.BankNifty}
	if len(fetcher.calls) != len(wantOrder) {
		t.Fatalf("fetched %d underlyings, want %d", len(fetcher.calls), len(wantOrder))
	}
	for i, u := range wantOrder {
		if fetcher.calls[i] != u {
			t.Errorf("fetch[%d] = %s, want %s", i, fetcher.calls[i], u)
		}
	}
	if len(writer.writes) != 2 {
		t.Errorf("wrote %d batches, want 2", len(writer.writes))
	}

	// 10:03:41.5 aligns to 10:04:02.
	wantWake := time.Date(2025, time.August, 27, 10, 4, 2, 0, ist)
	if got := end.Add((*slept)[0]); !got.Equal(wantWake) {
		t.Errorf("next cycle at %v, want %v", got, wantWake)
	}
}

func TestRunWriteFailureDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2025, time.August, 27, 11, 0, 0, 0, ist)
	fetcher := &fakeFetcher{fn: func(u model.Underlying) []model.CaptureBatch {
		return []model.CaptureBatch{{Underlying: u, Rows: make([]model.ChainRow, 1)}}
	}}
	writer := &fakeWriter{fn: func(b model.CaptureBatch) (int, error) {
		if b.Underlying == model.Nifty {
			return 0, errors.New("connection reset")
		}
		return len(b.Rows), nil
	}}

	d, ctx, slept := newTestDriver(t, fetcher, writer, func() time.Time { return now }, 1)

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}

	if len(writer.writes) != 2 {
		t.Fatalf("wrote %d batches, want both despite NIFTY failure", len(writer.writes))
	}
	if writer.writes[1].Underlying != model.BankNifty {
		t.Errorf("second write = %s, want BANKNIFTY", writer.writes[1].Underlying)
	}

	// A write failure is not a cycle failure: the driver aligns to the next
	// minute instead of backing off.
	if (*slept)[0] >= 60*time.Second {
		t.Errorf("slept %v after write failure, want sub-minute tick alignment", (*slept)[0])
	}
}

func TestRunFetchFailureIsolated(t *testing.T) {
	now := time.Date(2025, time.August, 27, 11, 0, 0, 0, ist)
	fetcher := &fakeFetcher{fn: func(u model.Underlying) []model.CaptureBatch {
		if u == model.Nifty {
			return nil
		}
		return []model.CaptureBatch{{Underlying: u, Rows: make([]model.ChainRow, 1)}}
	}}
	writer := &fakeWriter{}

	d, ctx, _ := newTestDriver(t, fetcher, writer, func() time.Time { return now }, 1)

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if len(fetcher.calls) != 2 {
		t.Fatalf("fetched %d underlyings, want 2", len(fetcher.calls))
	}
	if len(writer.writes) != 1 || writer.writes[0].Underlying != model.BankNifty {
		t.Errorf("writes = %v, want exactly one BANKNIFTY batch", writer.writes)
	}
}

func TestRunBacksOffOnCyclePanic(t *testing.T) {
	now := time.Date(2025, time.August, 27, 11, 0, 0, 0, ist)
	fetcher := &fakeFetcher{fn: func(model.Underlying) []model.CaptureBatch {
		panic("nil dereference in decode")
	}}
	writer := &fakeWriter{}

	d, ctx, slept := newTestDriver(t, fetcher, writer, func() time.Time { return now }, 1)

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if len(*slept) != 1 || (*slept)[0] != 60*time.Second {
		t.Errorf("slept %v, want one 60s backoff", *slept)
	}
}

func TestNextTick(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "mid-minute",
			at:   time.Date(2025, time.August, 27, 10, 3, 41, 500e6, ist),
			want: time.Date(2025, time.August, 27, 10, 4, 2, 0, ist),
		},
		{
			name: "exact boundary",
			at:   time.Date(2025, time.August, 27, 10, 3, 0, 0, ist),
			want: time.Date(2025, time.August, 27, 10, 4, 2, 0, ist),
		},
		{
			name: "just before boundary",
			at:   time.Date(2025, time.August, 27, 10, 3, 59, 999e6, ist),
			want: time.Date(2025, time.August, 27, 10, 4, 2, 0, ist),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextTick(tt.at, 2*time.Second); !got.Equal(tt.want) {
				t.Errorf("nextTick(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}
