package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset identifies a tradable asset. The fields besides ID are a
// denormalized display snapshot taken at the time the asset was first
// seen; they are never refreshed by the ledger.
type Asset struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
}

// Quote is an externally supplied market price plus metadata for one
// asset. Quotes are read-only inputs to execution and valuation; the
// ledger never mutates them.
type Quote struct {
	Asset

	PriceUSD decimal.Decimal `json:"priceUsd"`

	PriceChange24h float64 `json:"priceChange24h,omitempty"`
	Volume24h      float64 `json:"volume24h,omitempty"`
	Liquidity      float64 `json:"liquidity,omitempty"`
	MarketCap      float64 `json:"marketCap,omitempty"`

	Time time.Time `json:"time,omitempty"`
}
