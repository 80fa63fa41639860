package writer

import (
	"fmt"
	"strings"

	"github.com/quantgrid/nse-chain-data/internal/model"
)

// columnMapping binds one display-named column of the captured table to its
// storage column and the value it takes for a given batch row.
type columnMapping struct {
	display string
	column  string
	value   func(b *model.CaptureBatch, r *model.ChainRow) any
}

// chainColumns is the full, ordered display-to-storage mapping. Order here
// is the column order of every INSERT.
var chainColumns = []columnMapping{
	{"Symbol", "symbol", func(b *model.CaptureBatch, _ *model.ChainRow) any { return string(b.Underlying) }},
	{"Expiry Date", "expiry_date", func(b *model.CaptureBatch, _ *model.ChainRow) any { return b.ExpiryDate }},
	{"Fetch Time", "fetch_time", func(b *model.CaptureBatch, _ *model.ChainRow) any { return b.FetchTime }},
	{"Spot Price", "spot_price", func(b *model.CaptureBatch, _ *model.ChainRow) any { return b.SpotPrice }},
	{"ATM Strike", "atm_strike", func(b *model.CaptureBatch, _ *model.ChainRow) any { return b.ATMStrike }},
	{"Strike Price", "strike_price", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.Strike }},

	{"CE OI", "ce_oi", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.OI }},
	{"CE Chg in OI", "ce_chg_in_oi", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.ChgInOI }},
	{"CE Volume", "ce_volume", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Volume }},
	{"CE IV", "ce_iv", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.IV }},
	{"CE LTP", "ce_ltp", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.LTP }},
	{"CE Bid Qty", "ce_bid_qty", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.BidQty }},
	{"CE Bid", "ce_bid", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Bid }},
	{"CE Ask", "ce_ask", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Ask }},
	{"CE Ask Qty", "ce_ask_qty", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.AskQty }},
	{"CE Delta", "ce_delta", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Delta }},
	{"CE Theta", "ce_theta", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Theta }},
	{"CE Gamma", "ce_gamma", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Gamma }},
	{"CE Vega", "ce_vega", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.CE.Vega }},

	{"PE Bid Qty", "pe_bid_qty", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.BidQty }},
	{"PE Bid", "pe_bid", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Bid }},
	{"PE Ask", "pe_ask", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Ask }},
	{"PE Ask Qty", "pe_ask_qty", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.AskQty }},
	{"PE LTP", "pe_ltp", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.LTP }},
	{"PE IV", "pe_iv", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.IV }},
	{"PE Volume", "pe_volume", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Volume }},
	{"PE Chg in OI", "pe_chg_in_oi", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.ChgInOI }},
	{"PE OI", "pe_oi", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.OI }},
	{"PE Delta", "pe_delta", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Delta }},
	{"PE Theta", "pe_theta", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Theta }},
	{"PE Gamma", "pe_gamma", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Gamma }},
	{"PE Vega", "pe_vega", func(_ *model.CaptureBatch, r *model.ChainRow) any { return r.PE.Vega }},

	{"Timestamp", "timestamp", func(b *model.CaptureBatch, _ *model.ChainRow) any { return b.Timestamp.Format("15:04:05") }},
}

// columnNames returns the storage column names in insert order.
func columnNames() []string {
	names := make([]string, len(chainColumns))
	for i, m := range chainColumns {
		names[i] = m.column
	}
	return names
}

// rowValues returns one row's insert arguments in column order.
func rowValues(b *model.CaptureBatch, r *model.ChainRow) []any {
	values := make([]any, len(chainColumns))
	for i, m := range chainColumns {
		values[i] = m.value(b, r)
	}
	return values
}

// insertSQL builds the INSERT statement for the given destination table.
func insertSQL(table string) string {
	placeholders := make([]string, len(chainColumns))
	for i := range chainColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columnNames(), ", "),
		strings.Join(placeholders, ", "),
	)
}
