package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/figuregpt/paperhand/market"
)

// Valuation marks every position at its latest known quote. When no
// quote is cached for an asset the position is marked at its own cost
// basis, so the reported value is stale-optimistic for untracked
// assets, not a live mark. That fallback is deliberate: missing market
// data degrades precision, it is never an error.

// TotalValue returns cash plus the marked value of all open positions.
func (e *Engine) TotalValue() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalValueLocked(e.quotes.Lookup())
}

// TotalPnL returns the aggregate unrealized profit-and-loss across
// open positions. Cash is excluded, and so is P&L already realized on
// closed positions; that lives only in the transaction log.
func (e *Engine) TotalPnL() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	lookup := e.quotes.Lookup()
	pnl := decimal.Zero
	for _, pos := range e.state.Positions {
		mark := e.markPrice(lookup, pos)
		pnl = pnl.Add(mark.Sub(pos.AvgBuyPrice).Mul(pos.Amount))
	}
	return pnl
}

// PnLPercent returns the all-time return as a percentage, anchored to
// the original starting balance rather than a rolling baseline.
func (e *Engine) PnLPercent() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := e.totalValueLocked(e.quotes.Lookup())
	return total.Sub(e.initial).Div(e.initial).Mul(oneHundred)
}

func (e *Engine) totalValueLocked(lookup market.PriceLookup) decimal.Decimal {
	total := e.state.Cash
	for _, pos := range e.state.Positions {
		total = total.Add(pos.Amount.Mul(e.markPrice(lookup, pos)))
	}
	return total
}

func (e *Engine) markPrice(lookup market.PriceLookup, pos Position) decimal.Decimal {
	if lookup != nil {
		if price, ok := lookup(pos.ID); ok {
			return price
		}
	}
	return pos.AvgBuyPrice
}
