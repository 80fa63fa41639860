package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Underlying identifies one of the collected index underlyings.
type Underlying string

const (
	Nifty     Underlying = "NIFTY"
	BankNifty Underlying = "BANKNIFTY"
)

// All returns the underlyings in fixed processing priority order.
// NIFTY always completes before BANKNIFTY begins; this is not configurable.
func All() []Underlying {
	return []Underlying{Nifty, BankNifty}
}

// Policy holds the static per-underlying collection parameters.
type Policy struct {
	ExpiryCount int    // number of expiry slots captured per cycle, nearest-first
	StrikeStep  int64  // rounding step for the ATM fallback (nearest 100 / 1000)
	Table       string // schema-qualified destination table
	Segment     string // exchange segment on the market-data API
	ScripID     int    // security ID of the index on the market-data API
}

var policies = map[Underlying]Policy{
	Nifty: {
		ExpiryCount: 6,
		StrikeStep:  100,
		Table:       "option_chain.nifty_option_chain",
		Segment:     "IDX_I",
		ScripID:     13,
	},
	BankNifty: {
		ExpiryCount: 3,
		StrikeStep:  1000,
		Table:       "option_chain.banknifty_option_chain",
		Segment:     "IDX_I",
		ScripID:     25,
	},
}

// Policy returns the collection parameters for u.
func (u Underlying) Policy() Policy {
	return policies[u]
}

// Valid reports whether u is one of the known underlyings.
func (u Underlying) Valid() bool {
	_, ok := policies[u]
	return ok
}

// Provenance tags a derived value as genuine API data or a local fallback,
// so downstream consumers can distinguish real quotes from synthesized ones.
type Provenance string

const (
	ProvenanceAPI      Provenance = "api"
	ProvenanceFallback Provenance = "fallback"
)

// OptionSide holds the quote, open interest and Greeks for one side
// (call or put) of a single strike.
type OptionSide struct {
	OI      int64
	ChgInOI int64
	Volume  int64
	IV      decimal.Decimal
	LTP     decimal.Decimal
	BidQty  int64
	Bid     decimal.Decimal
	Ask     decimal.Decimal
	AskQty  int64
	Delta   decimal.Decimal
	Theta   decimal.Decimal
	Gamma   decimal.Decimal
	Vega    decimal.Decimal
}

// ChainRow is one strike's worth of call/put market data.
type ChainRow struct {
	Strike decimal.Decimal
	CE     OptionSide
	PE     OptionSide
}

// CaptureBatch is the row-set produced by one fetch for one
// underlying+expiry, written atomically or not at all.
type CaptureBatch struct {
	ID         uuid.UUID // log correlation only, never persisted
	Underlying Underlying
	Slot       int    // expiry slot index, 0 = nearest
	ExpiryDate string // calendar label, or Expiry_<slot> when parsing failed

	SpotPrice decimal.Decimal
	ATMStrike decimal.Decimal

	// Provenance of the ATM strike and expiry label (API vs local fallback).
	ATMProvenance   Provenance
	LabelProvenance Provenance

	FetchTime time.Time
	Timestamp time.Time // FetchTime floored to the start of its minute

	Rows []ChainRow
}

// FloorToMinute truncates t to the start of its minute.
func FloorToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
