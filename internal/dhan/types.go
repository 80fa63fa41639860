package dhan

import (
	"github.com/shopspring/decimal"

	"github.com/quantgrid/nse-chain-data/internal/model"
)

// ltpRequest body for POST /marketfeed/ltp: segment -> security IDs.
type ltpRequest map[string][]int

// ltpData from POST /marketfeed/ltp: segment -> security ID -> quote.
type ltpData map[string]map[string]struct {
	LastPrice float64 `json:"last_price"`
}

// chainRequest body for POST /optionchain and /optionchain/expirylist.
type chainRequest struct {
	UnderlyingScrip int    `json:"UnderlyingScrip"`
	UnderlyingSeg   string `json:"UnderlyingSeg"`
	Expiry          string `json:"Expiry,omitempty"`
}

// chainData from POST /optionchain.
type chainData struct {
	LastPrice float64                `json:"last_price"`
	OC        map[string]strikeEntry `json:"oc"`
}

// strikeEntry holds both sides of one strike; either side may be absent.
type strikeEntry struct {
	CE *optionQuote `json:"ce"`
	PE *optionQuote `json:"pe"`
}

// optionQuote is one side's market data as returned by the API.
type optionQuote struct {
	Greeks            greeks  `json:"greeks"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	LastPrice         float64 `json:"last_price"`
	OI                int64   `json:"oi"`
	PreviousOI        int64   `json:"previous_oi"`
	TopAskPrice       float64 `json:"top_ask_price"`
	TopAskQuantity    int64   `json:"top_ask_quantity"`
	TopBidPrice       float64 `json:"top_bid_price"`
	TopBidQuantity    int64   `json:"top_bid_quantity"`
	Volume            int64   `json:"volume"`
}

type greeks struct {
	Delta float64 `json:"delta"`
	Theta float64 `json:"theta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
}

// toSide converts an API quote to the model representation.
// A nil quote (side absent at this strike) yields a zero side.
func (q *optionQuote) toSide() model.OptionSide {
	if q == nil {
		return model.OptionSide{}
	}
	return model.OptionSide{
		OI:      q.OI,
		ChgInOI: q.OI - q.PreviousOI,
		Volume:  q.Volume,
		IV:      decimal.NewFromFloat(q.ImpliedVolatility),
		LTP:     decimal.NewFromFloat(q.LastPrice),
		BidQty:  q.TopBidQuantity,
		Bid:     decimal.NewFromFloat(q.TopBidPrice),
		Ask:     decimal.NewFromFloat(q.TopAskPrice),
		AskQty:  q.TopAskQuantity,
		Delta:   decimal.NewFromFloat(q.Greeks.Delta),
		Theta:   decimal.NewFromFloat(q.Greeks.Theta),
		Gamma:   decimal.NewFromFloat(q.Greeks.Gamma),
		Vega:    decimal.NewFromFloat(q.Greeks.Vega),
	}
}

// ChainMeta describes one fetched option chain.
type ChainMeta struct {
	Underlying  model.Underlying
	ExpiryDate  string // API calendar date (2006-01-02)
	SpotPrice   decimal.Decimal
	StrikeCount int
}

// ATMSelection is the result of resolving the at-the-money strike for one
// expiry slot: the strike nearest spot plus display labels for both sides.
type ATMSelection struct {
	CallLabel  string
	PutLabel   string
	Strike     decimal.Decimal
	ExpiryDate string // API calendar date (2006-01-02)
}
