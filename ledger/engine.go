// Package ledger implements the paper-trading ledger: cash, open
// positions, the transaction log, the portfolio-value history and
// favorites, together with the buy/sell execution and valuation rules
// that mutate and read them.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/figuregpt/paperhand/internal/id"
	"github.com/figuregpt/paperhand/market"
)

var oneHundred = decimal.NewFromInt(100)

// Engine owns a ledger State and serializes every read and mutation
// behind one mutex. Buy, Sell and Reset are atomic: they either apply
// fully (position, cash, transaction, history sample) or leave the
// state untouched.
type Engine struct {
	mu      sync.Mutex
	state   State
	initial decimal.Decimal
	quotes  *market.QuoteStore
}

// NewEngine creates an engine over a fresh ledger seeded with the
// given starting balance. The quote store supplies latest-known prices
// for valuation and history sampling; a nil store means every position
// is marked at cost basis.
func NewEngine(initial decimal.Decimal, quotes *market.QuoteStore) *Engine {
	if quotes == nil {
		quotes = market.NewQuoteStore()
	}
	return &Engine{
		state:   NewState(initial),
		initial: initial,
		quotes:  quotes,
	}
}

// Restore replaces the engine's state with a previously persisted one.
func (e *Engine) Restore(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s.Positions == nil {
		s.Positions = make(map[string]Position)
	}
	e.state = s.Clone()
}

// Snapshot returns a deep copy of the current state for persistence.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Quotes exposes the engine's price source so callers can push fresh
// quotes in.
func (e *Engine) Quotes() *market.QuoteStore { return e.quotes }

// Buy executes a simulated purchase of amount units at the quoted
// price with adverse slippage applied: the effective price is
// quoted * (1 + slippagePct/100). It fails with ErrInsufficientFunds
// when the cost exceeds available cash.
func (e *Engine) Buy(asset market.Asset, amount, quotedPrice, slippagePct decimal.Decimal) (Transaction, error) {
	if err := validateOrder(asset, amount, quotedPrice, slippagePct); err != nil {
		return Transaction{}, err
	}

	effective := quotedPrice.Mul(decimal.NewFromInt(1).Add(slippagePct.Div(oneHundred)))
	cost := amount.Mul(effective)

	e.mu.Lock()
	defer e.mu.Unlock()

	if cost.GreaterThan(e.state.Cash) {
		return Transaction{}, fmt.Errorf("buy %s: cost %s exceeds cash %s: %w",
			asset.Symbol, cost, e.state.Cash, ErrInsufficientFunds)
	}

	if pos, ok := e.state.Positions[asset.ID]; ok {
		newAmount := pos.Amount.Add(amount)
		newAvg := pos.CostBasis().Add(cost).Div(newAmount)
		pos.Amount = newAmount
		pos.AvgBuyPrice = newAvg
		e.state.Positions[asset.ID] = pos
	} else {
		e.state.Positions[asset.ID] = Position{
			Asset:       asset,
			Amount:      amount,
			AvgBuyPrice: effective,
		}
	}

	e.state.Cash = e.state.Cash.Sub(cost)

	txn := Transaction{
		ID:          id.New(),
		Kind:        Buy,
		AssetID:     asset.ID,
		Symbol:      asset.Symbol,
		Amount:      amount,
		Price:       effective,
		Total:       cost,
		Time:        time.Now(),
		SlippagePct: slippagePct,
	}
	e.appendTransactionLocked(txn)
	e.sampleLocked(&txn)

	return txn, nil
}

// Sell executes a simulated sale of amount units at the quoted price
// with adverse slippage applied: the effective price is
// quoted * (1 - slippagePct/100). Selling the full held amount removes
// the position; a partial sell leaves the average buy price unchanged.
func (e *Engine) Sell(asset market.Asset, amount, quotedPrice, slippagePct decimal.Decimal) (Transaction, error) {
	if err := validateOrder(asset, amount, quotedPrice, slippagePct); err != nil {
		return Transaction{}, err
	}

	effective := quotedPrice.Mul(decimal.NewFromInt(1).Sub(slippagePct.Div(oneHundred)))
	proceeds := amount.Mul(effective)

	e.mu.Lock()
	defer e.mu.Unlock()

	pos, ok := e.state.Positions[asset.ID]
	if !ok {
		return Transaction{}, fmt.Errorf("sell %s: %w", asset.Symbol, ErrNoPosition)
	}
	if amount.GreaterThan(pos.Amount) {
		return Transaction{}, fmt.Errorf("sell %s: amount %s exceeds held %s: %w",
			asset.Symbol, amount, pos.Amount, ErrInsufficientQuantity)
	}

	realized := effective.Sub(pos.AvgBuyPrice).Mul(amount)

	if amount.Equal(pos.Amount) {
		delete(e.state.Positions, asset.ID)
	} else {
		pos.Amount = pos.Amount.Sub(amount)
		e.state.Positions[asset.ID] = pos
	}

	e.state.Cash = e.state.Cash.Add(proceeds)

	txn := Transaction{
		ID:          id.New(),
		Kind:        Sell,
		AssetID:     asset.ID,
		Symbol:      asset.Symbol,
		Amount:      amount,
		Price:       effective,
		Total:       proceeds,
		Time:        time.Now(),
		SlippagePct: slippagePct,
		RealizedPnL: &realized,
	}
	e.appendTransactionLocked(txn)
	e.sampleLocked(&txn)

	return txn, nil
}

// Reset returns the ledger to its creation-time condition: cash back
// to the starting balance, positions and transactions cleared, history
// reseeded with a single sample at the current time. Favorites are
// intentionally kept: bookmarks are user preference, not portfolio
// state, and must survive a portfolio wipe.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	favorites := e.state.Favorites
	e.state = NewState(e.initial)
	e.state.Favorites = favorites
}

// ToggleFavorite adds the asset to favorites, or removes it when
// already present. Membership is keyed by asset id; the stored entry
// is a display snapshot that is never refreshed.
func (e *Engine) ToggleFavorite(asset market.Asset) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, f := range e.state.Favorites {
		if f.ID == asset.ID {
			e.state.Favorites = append(e.state.Favorites[:i], e.state.Favorites[i+1:]...)
			return
		}
	}
	e.state.Favorites = append(e.state.Favorites, asset)
}

// IsFavorite reports whether the asset is bookmarked.
func (e *Engine) IsFavorite(assetID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, f := range e.state.Favorites {
		if f.ID == assetID {
			return true
		}
	}
	return false
}

// Cash returns the current cash balance.
func (e *Engine) Cash() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Cash
}

// Position returns the open position for an asset, if any.
func (e *Engine) Position(assetID string) (Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pos, ok := e.state.Positions[assetID]
	return pos, ok
}

// Positions returns a copy of all open positions.
func (e *Engine) Positions() map[string]Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]Position, len(e.state.Positions))
	for k, v := range e.state.Positions {
		out[k] = v
	}
	return out
}

// Transactions returns a copy of the transaction log, newest first.
func (e *Engine) Transactions() []Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Transaction(nil), e.state.Transactions...)
}

// History returns a copy of the portfolio-value samples in
// chronological order.
func (e *Engine) History() []HistorySample {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]HistorySample(nil), e.state.History...)
}

// Favorites returns a copy of the bookmarked assets in insertion order.
func (e *Engine) Favorites() []market.Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]market.Asset(nil), e.state.Favorites...)
}

// appendTransactionLocked prepends: the log is ordered newest first.
func (e *Engine) appendTransactionLocked(txn Transaction) {
	e.state.Transactions = append([]Transaction{txn}, e.state.Transactions...)
}

func validateOrder(asset market.Asset, amount, quotedPrice, slippagePct decimal.Decimal) error {
	if asset.ID == "" {
		return fmt.Errorf("missing asset id: %w", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount %s must be positive: %w", amount, ErrInvalidInput)
	}
	if !quotedPrice.IsPositive() {
		return fmt.Errorf("price %s must be positive: %w", quotedPrice, ErrInvalidInput)
	}
	if slippagePct.IsNegative() || slippagePct.GreaterThanOrEqual(oneHundred) {
		// Slippage of 100% or more would drive a sell's effective
		// price to zero or below.
		return fmt.Errorf("slippage %s%% outside [0, 100): %w", slippagePct, ErrInvalidInput)
	}
	return nil
}
