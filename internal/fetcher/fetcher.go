package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantgrid/nse-chain-data/internal/dhan"
	"github.com/quantgrid/nse-chain-data/internal/model"
)

// MarketData is the market-data collaborator consumed by the fetcher.
// *dhan.Client satisfies it.
type MarketData interface {
	SpotPrice(ctx context.Context, u model.Underlying) (decimal.Decimal, error)
	SelectATM(ctx context.Context, u model.Underlying, slot int) (dhan.ATMSelection, error)
	OptionChain(ctx context.Context, u model.Underlying, slot, numStrikes int) (dhan.ChainMeta, []model.ChainRow, error)
}

// Config holds fetcher settings.
type Config struct {
	StrikeWindow int           // strikes requested per chain (default: 50)
	PacingDelay  time.Duration // courtesy delay before each chain request
}

// Fetcher captures option-chain snapshots for one underlying at a time.
type Fetcher struct {
	cfg    Config
	md     MarketData
	logger *slog.Logger

	// Injected for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a new Fetcher.
func New(cfg Config, md MarketData, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		cfg:    cfg,
		md:     md,
		logger: logger,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Fetch captures one batch per expiry slot of u. A missing spot price aborts
// the whole underlying (empty result); a failed slot is skipped. Fetch never
// fails the caller's cycle.
func (f *Fetcher) Fetch(ctx context.Context, u model.Underlying) []model.CaptureBatch {
	spot, err := f.md.SpotPrice(ctx, u)
	if err != nil {
		f.logger.Warn("could not fetch spot price, skipping underlying",
			"underlying", u,
			"err", err,
		)
		return nil
	}

	policy := u.Policy()
	start := f.now()
	stamp := model.FloorToMinute(start)

	f.logger.Info("fetching option chains",
		"underlying", u,
		"spot", spot,
		"expiries", policy.ExpiryCount,
	)

	var batches []model.CaptureBatch
	for slot := 0; slot < policy.ExpiryCount; slot++ {
		if ctx.Err() != nil {
			break
		}
		batch, ok := f.fetchSlot(ctx, u, slot, spot, stamp)
		if ok {
			batches = append(batches, batch)
		}
	}
	return batches
}

// fetchSlot captures a single expiry slot. The bool result is false when the
// slot failed and must be absent from the cycle's output.
func (f *Fetcher) fetchSlot(ctx context.Context, u model.Underlying, slot int, spot decimal.Decimal, stamp time.Time) (model.CaptureBatch, bool) {
	policy := u.Policy()

	atmStrike := decimal.Zero
	atmProv := model.ProvenanceAPI
	labelProv := model.ProvenanceAPI
	var callLabel string

	sel, err := f.md.SelectATM(ctx, u, slot)
	if err != nil {
		atmStrike = fallbackATM(spot, policy.StrikeStep)
		atmProv = model.ProvenanceFallback
		labelProv = model.ProvenanceFallback
		callLabel = fmt.Sprintf("%s %d %s CALL", u, slot, atmStrike)
		f.logger.Warn("atm selection failed, using rounded spot",
			"underlying", u,
			"slot", slot,
			"atm_strike", atmStrike,
			"err", err,
		)
	} else {
		atmStrike = sel.Strike
		callLabel = sel.CallLabel
	}

	expiryDate, ok := parseExpiryLabel(callLabel)
	if !ok {
		expiryDate = fmt.Sprintf("Expiry_%d", slot)
		labelProv = model.ProvenanceFallback
		f.logger.Warn("could not parse expiry date from label",
			"underlying", u,
			"slot", slot,
			"label", callLabel,
		)
	}

	// Rate-limit courtesy before the chain request.
	if err := f.sleep(ctx, f.cfg.PacingDelay); err != nil {
		return model.CaptureBatch{}, false
	}

	_, rows, err := f.md.OptionChain(ctx, u, slot, f.cfg.StrikeWindow)
	if err != nil || len(rows) == 0 {
		f.logger.Warn("option chain fetch failed, skipping slot",
			"underlying", u,
			"slot", slot,
			"expiry", expiryDate,
			"err", err,
		)
		return model.CaptureBatch{}, false
	}

	batch := model.CaptureBatch{
		ID:              uuid.New(),
		Underlying:      u,
		Slot:            slot,
		ExpiryDate:      expiryDate,
		SpotPrice:       spot,
		ATMStrike:       atmStrike,
		ATMProvenance:   atmProv,
		LabelProvenance: labelProv,
		FetchTime:       f.now(),
		Timestamp:       stamp,
		Rows:            rows,
	}

	f.logger.Info("captured option chain",
		"batch_id", batch.ID,
		"underlying", u,
		"slot", slot,
		"expiry", expiryDate,
		"atm_strike", atmStrike,
		"atm_provenance", atmProv,
		"strikes", len(rows),
	)
	return batch, true
}

// fallbackATM rounds spot to the nearest multiple of step.
func fallbackATM(spot decimal.Decimal, step int64) decimal.Decimal {
	s := decimal.NewFromInt(step)
	return spot.Div(s).Round(0).Mul(s)
}

// parseExpiryLabel extracts the calendar date from a contract display label,
// e.g. "NIFTY 28 Aug 24700 CALL" -> "28 Aug".
func parseExpiryLabel(label string) (string, bool) {
	parts := strings.Fields(label)
	if len(parts) < 4 {
		return "", false
	}
	return strings.Join(parts[1:3], " "), true
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
