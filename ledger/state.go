package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/figuregpt/paperhand/market"
)

// DefaultInitialBalance is the seed cash balance for a fresh ledger.
// All-time return (PnLPercent) is anchored to this value for the life
// of the ledger, not to a rolling baseline.
const DefaultInitialBalance = 10000

// HistoryLimit bounds the portfolio-history series. Appending beyond
// the limit evicts the oldest sample.
const HistoryLimit = 200

// Kind distinguishes the two transaction directions.
type Kind string

const (
	Buy  Kind = "BUY"
	Sell Kind = "SELL"
)

// Position is an open holding of one asset: quantity plus
// weighted-average entry price. Amount is always positive; a sell that
// empties a position removes it from the ledger entirely.
type Position struct {
	market.Asset

	Amount      decimal.Decimal `json:"amount"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
}

// CostBasis returns Amount * AvgBuyPrice.
func (p Position) CostBasis() decimal.Decimal {
	return p.Amount.Mul(p.AvgBuyPrice)
}

// Transaction is one executed order. Records are immutable once
// created; ids are ULIDs, unique and strictly increasing by creation
// time.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	AssetID     string          `json:"assetId"`
	Symbol      string          `json:"symbol"`
	Amount      decimal.Decimal `json:"amount"`
	Price       decimal.Decimal `json:"price"` // effective, slippage applied
	Total       decimal.Decimal `json:"total"`
	Time        time.Time       `json:"time"`
	SlippagePct decimal.Decimal `json:"slippagePct"`

	// RealizedPnL is set on SELL only: (effective price - avg buy
	// price) * amount, locked in against cost basis at sell time.
	RealizedPnL *decimal.Decimal `json:"realizedPnL,omitempty"`
}

// TradeSummary is the slice of a transaction attached to a history
// sample for chart annotations.
type TradeSummary struct {
	Kind   Kind            `json:"kind"`
	Symbol string          `json:"symbol"`
	Total  decimal.Decimal `json:"total"`
}

// HistorySample is one point on the portfolio-value time series.
type HistorySample struct {
	Time       time.Time       `json:"time"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Trade      *TradeSummary   `json:"trade,omitempty"`
}

// State is the full persistable ledger: everything here survives a
// process restart, and nothing else does. Transactions are ordered
// newest first; history is chronological and capped at HistoryLimit.
type State struct {
	Cash         decimal.Decimal     `json:"cash"`
	Positions    map[string]Position `json:"positions"`
	Transactions []Transaction       `json:"transactions"`
	History      []HistorySample     `json:"history"`
	Favorites    []market.Asset      `json:"favorites"`
}

// NewState returns a fresh ledger seeded with the given cash balance
// and a single history sample at the current time.
func NewState(initial decimal.Decimal) State {
	return State{
		Cash:      initial,
		Positions: make(map[string]Position),
		History: []HistorySample{{
			Time:       time.Now(),
			TotalValue: initial,
		}},
	}
}

// Clone returns a deep copy of the state; mutating the copy never
// affects the original.
func (s State) Clone() State {
	out := s

	out.Positions = make(map[string]Position, len(s.Positions))
	for k, v := range s.Positions {
		out.Positions[k] = v
	}

	out.Transactions = make([]Transaction, len(s.Transactions))
	for i, t := range s.Transactions {
		if t.RealizedPnL != nil {
			pnl := *t.RealizedPnL
			t.RealizedPnL = &pnl
		}
		out.Transactions[i] = t
	}

	out.History = make([]HistorySample, len(s.History))
	for i, h := range s.History {
		if h.Trade != nil {
			tr := *h.Trade
			h.Trade = &tr
		}
		out.History[i] = h
	}

	out.Favorites = append([]market.Asset(nil), s.Favorites...)
	return out
}
