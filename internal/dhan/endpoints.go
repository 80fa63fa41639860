package dhan

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantgrid/nse-chain-data/internal/model"
)

// SpotPrice fetches the current index spot price for u.
func (c *Client) SpotPrice(ctx context.Context, u model.Underlying) (decimal.Decimal, error) {
	p := u.Policy()

	var data ltpData
	req := ltpRequest{p.Segment: {p.ScripID}}
	if err := c.post(ctx, "/marketfeed/ltp", req, &data); err != nil {
		return decimal.Zero, fmt.Errorf("get ltp %s: %w", u, err)
	}

	quote, ok := data[p.Segment][strconv.Itoa(p.ScripID)]
	if !ok || quote.LastPrice == 0 {
		return decimal.Zero, fmt.Errorf("no spot price for %s", u)
	}

	return decimal.NewFromFloat(quote.LastPrice), nil
}

// ExpiryList fetches the ordered (nearest-first) expiry dates for u.
func (c *Client) ExpiryList(ctx context.Context, u model.Underlying) ([]string, error) {
	p := u.Policy()

	var dates []string
	req := chainRequest{UnderlyingScrip: p.ScripID, UnderlyingSeg: p.Segment}
	if err := c.post(ctx, "/optionchain/expirylist", req, &dates); err != nil {
		return nil, fmt.Errorf("get expiry list %s: %w", u, err)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("empty expiry list for %s", u)
	}

	return dates, nil
}

// OptionChain fetches the strike table for the given expiry slot, windowed to
// numStrikes strikes centered on the strike nearest spot.
func (c *Client) OptionChain(ctx context.Context, u model.Underlying, slot, numStrikes int) (ChainMeta, []model.ChainRow, error) {
	expiry, err := c.resolveExpiry(ctx, u, slot)
	if err != nil {
		return ChainMeta{}, nil, err
	}

	data, err := c.fetchChain(ctx, u, expiry)
	if err != nil {
		return ChainMeta{}, nil, err
	}
	if len(data.OC) == 0 {
		return ChainMeta{}, nil, fmt.Errorf("empty option chain for %s expiry %s", u, expiry)
	}

	strikes := sortedStrikes(data.OC)
	if len(strikes) == 0 {
		return ChainMeta{}, nil, fmt.Errorf("malformed option chain for %s expiry %s: no parseable strikes", u, expiry)
	}
	spot := decimal.NewFromFloat(data.LastPrice)
	strikes = window(strikes, nearestIndex(strikes, spot), numStrikes)

	rows := make([]model.ChainRow, 0, len(strikes))
	for _, s := range strikes {
		entry := data.OC[s.key]
		rows = append(rows, model.ChainRow{
			Strike: s.value,
			CE:     entry.CE.toSide(),
			PE:     entry.PE.toSide(),
		})
	}

	meta := ChainMeta{
		Underlying:  u,
		ExpiryDate:  expiry,
		SpotPrice:   spot,
		StrikeCount: len(rows),
	}
	return meta, rows, nil
}

// SelectATM resolves the at-the-money strike for the given expiry slot and
// formats display labels for both sides, e.g. "NIFTY 28 Aug 24700 CALL".
func (c *Client) SelectATM(ctx context.Context, u model.Underlying, slot int) (ATMSelection, error) {
	expiry, err := c.resolveExpiry(ctx, u, slot)
	if err != nil {
		return ATMSelection{}, err
	}

	data, err := c.fetchChain(ctx, u, expiry)
	if err != nil {
		return ATMSelection{}, err
	}
	if len(data.OC) == 0 {
		return ATMSelection{}, fmt.Errorf("empty option chain for %s expiry %s", u, expiry)
	}

	strikes := sortedStrikes(data.OC)
	if len(strikes) == 0 {
		return ATMSelection{}, fmt.Errorf("malformed option chain for %s expiry %s: no parseable strikes", u, expiry)
	}
	spot := decimal.NewFromFloat(data.LastPrice)
	atm := strikes[nearestIndex(strikes, spot)].value

	day := displayDate(expiry)
	return ATMSelection{
		CallLabel:  fmt.Sprintf("%s %s %s CALL", u, day, atm),
		PutLabel:   fmt.Sprintf("%s %s %s PUT", u, day, atm),
		Strike:     atm,
		ExpiryDate: expiry,
	}, nil
}

// resolveExpiry maps an expiry slot index to its calendar date.
func (c *Client) resolveExpiry(ctx context.Context, u model.Underlying, slot int) (string, error) {
	dates, err := c.ExpiryList(ctx, u)
	if err != nil {
		return "", err
	}
	if slot < 0 || slot >= len(dates) {
		return "", fmt.Errorf("expiry slot %d out of range for %s (%d expiries)", slot, u, len(dates))
	}
	return dates[slot], nil
}

func (c *Client) fetchChain(ctx context.Context, u model.Underlying, expiry string) (chainData, error) {
	p := u.Policy()

	var data chainData
	req := chainRequest{UnderlyingScrip: p.ScripID, UnderlyingSeg: p.Segment, Expiry: expiry}
	if err := c.post(ctx, "/optionchain", req, &data); err != nil {
		return chainData{}, fmt.Errorf("get option chain %s %s: %w", u, expiry, err)
	}
	return data, nil
}

// strike pairs a parsed strike with its original map key.
type strike struct {
	key   string
	value decimal.Decimal
}

func sortedStrikes(oc map[string]strikeEntry) []strike {
	strikes := make([]strike, 0, len(oc))
	for k := range oc {
		v, err := decimal.NewFromString(k)
		if err != nil {
			continue // malformed strike key
		}
		strikes = append(strikes, strike{key: k, value: v})
	}
	sort.Slice(strikes, func(i, j int) bool {
		return strikes[i].value.LessThan(strikes[j].value)
	})
	return strikes
}

// nearestIndex returns the index of the strike closest to spot.
func nearestIndex(strikes []strike, spot decimal.Decimal) int {
	best := 0
	bestDist := strikes[0].value.Sub(spot).Abs()
	for i := 1; i < len(strikes); i++ {
		d := strikes[i].value.Sub(spot).Abs()
		if d.LessThan(bestDist) {
			best, bestDist = i, d
		}
	}
	return best
}

// window trims strikes to at most n entries centered on index center.
func window(strikes []strike, center, n int) []strike {
	if n <= 0 || len(strikes) <= n {
		return strikes
	}
	lo := center - n/2
	if lo < 0 {
		lo = 0
	}
	hi := lo + n
	if hi > len(strikes) {
		hi = len(strikes)
		lo = hi - n
	}
	return strikes[lo:hi]
}

// displayDate converts an API date (2006-01-02) to the label form "28 Aug".
func displayDate(expiry string) string {
	t, err := time.Parse("2006-01-02", expiry)
	if err != nil {
		return expiry
	}
	return t.Format("02 Jan")
}
