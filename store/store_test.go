package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figuregpt/paperhand/ledger"
	"github.com/figuregpt/paperhand/market"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fixtureState exercises every persisted field: positions, a
// newest-first transaction log with and without realized P&L, history
// samples with and without trade annotations, and favorites.
func fixtureState() ledger.State {
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	return ledger.State{
		Cash: dec("9998"),
		Positions: map[string]ledger.Position{
			"asset-a": {
				Asset:       market.Asset{ID: "asset-a", Symbol: "AAA", Name: "Asset A", Image: "https://img/a.png"},
				Amount:      dec("50"),
				AvgBuyPrice: dec("1.01"),
			},
			"asset-b": {
				Asset:       market.Asset{ID: "asset-b", Symbol: "BBB", Name: "Asset B"},
				Amount:      dec("0.000123"),
				AvgBuyPrice: dec("123456.789"),
			},
		},
		Transactions: []ledger.Transaction{
			{
				ID: "01T2", Kind: ledger.Sell, AssetID: "asset-a", Symbol: "AAA",
				Amount: dec("50"), Price: dec("1.98"), Total: dec("99"),
				Time: t0.Add(time.Minute), SlippagePct: dec("1"),
				RealizedPnL: decPtr("48.5"),
			},
			{
				ID: "01T1", Kind: ledger.Buy, AssetID: "asset-a", Symbol: "AAA",
				Amount: dec("100"), Price: dec("1.01"), Total: dec("101"),
				Time: t0, SlippagePct: dec("1"),
			},
		},
		History: []ledger.HistorySample{
			{Time: t0.Add(-time.Hour), TotalValue: dec("10000")},
			{
				Time: t0, TotalValue: dec("10000"),
				Trade: &ledger.TradeSummary{Kind: ledger.Buy, Symbol: "AAA", Total: dec("101")},
			},
			{
				Time: t0.Add(time.Minute), TotalValue: dec("10046.5"),
				Trade: &ledger.TradeSummary{Kind: ledger.Sell, Symbol: "AAA", Total: dec("99")},
			},
		},
		Favorites: []market.Asset{
			{ID: "asset-b", Symbol: "BBB", Name: "Asset B"},
			{ID: "asset-a", Symbol: "AAA", Name: "Asset A", Image: "https://img/a.png"},
		},
	}
}

// assertStateEqual compares states field for field. Decimals are
// compared by value and times by instant, since both can change
// internal representation across a persistence round trip.
func assertStateEqual(t *testing.T, want, got ledger.State) {
	t.Helper()

	assert.True(t, want.Cash.Equal(got.Cash), "cash: want %s got %s", want.Cash, got.Cash)

	require.Len(t, got.Positions, len(want.Positions))
	for id, w := range want.Positions {
		g, ok := got.Positions[id]
		require.True(t, ok, "missing position %s", id)
		assert.Equal(t, w.Asset, g.Asset)
		assert.True(t, w.Amount.Equal(g.Amount))
		assert.True(t, w.AvgBuyPrice.Equal(g.AvgBuyPrice))
	}

	require.Len(t, got.Transactions, len(want.Transactions))
	for i, w := range want.Transactions {
		g := got.Transactions[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Kind, g.Kind)
		assert.Equal(t, w.AssetID, g.AssetID)
		assert.Equal(t, w.Symbol, g.Symbol)
		assert.True(t, w.Amount.Equal(g.Amount))
		assert.True(t, w.Price.Equal(g.Price))
		assert.True(t, w.Total.Equal(g.Total))
		assert.True(t, w.Time.Equal(g.Time))
		assert.True(t, w.SlippagePct.Equal(g.SlippagePct))
		if w.RealizedPnL == nil {
			assert.Nil(t, g.RealizedPnL)
		} else {
			require.NotNil(t, g.RealizedPnL)
			assert.True(t, w.RealizedPnL.Equal(*g.RealizedPnL))
		}
	}

	require.Len(t, got.History, len(want.History))
	for i, w := range want.History {
		g := got.History[i]
		assert.True(t, w.Time.Equal(g.Time))
		assert.True(t, w.TotalValue.Equal(g.TotalValue))
		if w.Trade == nil {
			assert.Nil(t, g.Trade)
		} else {
			require.NotNil(t, g.Trade)
			assert.Equal(t, w.Trade.Kind, g.Trade.Kind)
			assert.Equal(t, w.Trade.Symbol, g.Trade.Symbol)
			assert.True(t, w.Trade.Total.Equal(g.Trade.Total))
		}
	}

	assert.Equal(t, want.Favorites, got.Favorites)
}
