package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figuregpt/paperhand/market"
)

var (
	assetA = market.Asset{ID: "asset-a", Symbol: "AAA", Name: "Asset A"}
	assetB = market.Asset{ID: "asset-b", Symbol: "BBB", Name: "Asset B"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(decimal.NewFromInt(DefaultInitialBalance), nil)
}

func mustBuy(t *testing.T, e *Engine, asset market.Asset, amount, price, slippage string) Transaction {
	t.Helper()
	txn, err := e.Buy(asset, dec(amount), dec(price), dec(slippage))
	require.NoError(t, err)
	return txn
}

func mustSell(t *testing.T, e *Engine, asset market.Asset, amount, price, slippage string) Transaction {
	t.Helper()
	txn, err := e.Sell(asset, dec(amount), dec(price), dec(slippage))
	require.NoError(t, err)
	return txn
}

func TestBuySellScenario(t *testing.T) {
	e := newTestEngine(t)

	// Buy 100 at quoted 1.00 with 1% slippage: effective 1.01, cost 101.
	buy := mustBuy(t, e, assetA, "100", "1.00", "1")
	assert.Equal(t, "1.01", buy.Price.String())
	assert.Equal(t, "101", buy.Total.String())
	assert.Equal(t, "9899", e.Cash().String())
	assert.Nil(t, buy.RealizedPnL)

	pos, ok := e.Position(assetA.ID)
	require.True(t, ok)
	assert.Equal(t, "100", pos.Amount.String())
	assert.Equal(t, "1.01", pos.AvgBuyPrice.String())

	// Sell 50 at quoted 2.00 with 1% slippage: effective 1.98,
	// proceeds 99, realized (1.98-1.01)*50 = 48.5.
	sell := mustSell(t, e, assetA, "50", "2.00", "1")
	assert.Equal(t, "1.98", sell.Price.String())
	assert.Equal(t, "99", sell.Total.String())
	require.NotNil(t, sell.RealizedPnL)
	assert.Equal(t, "48.5", sell.RealizedPnL.String())
	assert.Equal(t, "9998", e.Cash().String())

	// Partial sell leaves the cost basis of remaining units unmoved.
	pos, ok = e.Position(assetA.ID)
	require.True(t, ok)
	assert.Equal(t, "50", pos.Amount.String())
	assert.Equal(t, "1.01", pos.AvgBuyPrice.String())
}

func TestAverageCostBasis(t *testing.T) {
	e := newTestEngine(t)

	mustBuy(t, e, assetA, "10", "2", "0")
	mustBuy(t, e, assetA, "10", "4", "0")

	pos, ok := e.Position(assetA.ID)
	require.True(t, ok)
	assert.Equal(t, "20", pos.Amount.String())
	assert.Equal(t, "3", pos.AvgBuyPrice.String())
}

func TestSlippageAlwaysAdverse(t *testing.T) {
	e := newTestEngine(t)

	buy := mustBuy(t, e, assetA, "1", "1.00", "5")
	assert.Equal(t, "1.05", buy.Price.String())

	sell := mustSell(t, e, assetA, "1", "1.00", "5")
	assert.Equal(t, "0.95", sell.Price.String())
}

func TestBuyInsufficientFunds(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Buy(assetA, dec("101"), dec("100"), dec("0"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Ledger untouched on failure.
	assert.Equal(t, "10000", e.Cash().String())
	assert.Empty(t, e.Positions())
	assert.Empty(t, e.Transactions())
	assert.Len(t, e.History(), 1)
}

func TestSellNoPosition(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Sell(assetA, dec("1"), dec("1"), dec("0"))
	require.ErrorIs(t, err, ErrNoPosition)
	assert.Equal(t, "10000", e.Cash().String())
}

func TestSellInsufficientQuantity(t *testing.T) {
	e := newTestEngine(t)
	mustBuy(t, e, assetA, "10", "1", "0")

	cash := e.Cash()
	_, err := e.Sell(assetA, dec("10.5"), dec("1"), dec("0"))
	require.ErrorIs(t, err, ErrInsufficientQuantity)

	// Ledger untouched on failure.
	assert.True(t, e.Cash().Equal(cash))
	pos, ok := e.Position(assetA.ID)
	require.True(t, ok)
	assert.Equal(t, "10", pos.Amount.String())
}

func TestInvalidInput(t *testing.T) {
	e := newTestEngine(t)
	mustBuy(t, e, assetA, "1", "1", "0")

	cases := []struct {
		name                    string
		amount, price, slippage string
	}{
		{"zero amount", "0", "1", "0"},
		{"negative amount", "-1", "1", "0"},
		{"zero price", "1", "0", "0"},
		{"negative price", "1", "-1", "0"},
		{"negative slippage", "1", "1", "-0.5"},
		{"slippage at 100", "1", "1", "100"},
		{"slippage above 100", "1", "1", "150"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Buy(assetA, dec(tc.amount), dec(tc.price), dec(tc.slippage))
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = e.Sell(assetA, dec(tc.amount), dec(tc.price), dec(tc.slippage))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExactCloseRemovesPosition(t *testing.T) {
	e := newTestEngine(t)

	mustBuy(t, e, assetA, "10", "1", "0")
	mustSell(t, e, assetA, "10", "1", "0")

	_, ok := e.Position(assetA.ID)
	assert.False(t, ok, "a fully sold position must be removed, not kept at zero")
	assert.Equal(t, "10000", e.Cash().String())
}

func TestTransactionIDsDistinctAndIncreasing(t *testing.T) {
	e := newTestEngine(t)

	// Back-to-back within the same millisecond must still produce
	// distinct, ordered ids.
	first := mustBuy(t, e, assetA, "1", "1", "0")
	second := mustBuy(t, e, assetA, "1", "1", "0")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Less(t, first.ID, second.ID)
}

func TestTransactionsNewestFirst(t *testing.T) {
	e := newTestEngine(t)

	mustBuy(t, e, assetA, "1", "1", "0")
	mustBuy(t, e, assetB, "2", "1", "0")

	txns := e.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, assetB.ID, txns[0].AssetID)
	assert.Equal(t, assetA.ID, txns[1].AssetID)
}

func TestHistoryBounded(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 250; i++ {
		mustBuy(t, e, assetA, "1", "1", "0")
	}

	history := e.History()
	require.Len(t, history, HistoryLimit)

	// The seed sample was evicted; every retained sample carries a
	// trade annotation and the series stays chronological.
	assert.NotNil(t, history[0].Trade)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Time.Before(history[i-1].Time))
	}
}

func TestHistoryAnnotatesTrades(t *testing.T) {
	e := newTestEngine(t)

	mustBuy(t, e, assetA, "100", "1.00", "1")

	history := e.History()
	require.Len(t, history, 2)
	assert.Nil(t, history[0].Trade) // seed

	trade := history[1].Trade
	require.NotNil(t, trade)
	assert.Equal(t, Buy, trade.Kind)
	assert.Equal(t, assetA.Symbol, trade.Symbol)
	assert.Equal(t, "101", trade.Total.String())
}

func TestResetRestoresStartingState(t *testing.T) {
	e := newTestEngine(t)

	mustBuy(t, e, assetA, "10", "1", "0")
	e.ToggleFavorite(assetB)

	e.Reset()

	assert.Equal(t, "10000", e.Cash().String())
	assert.Empty(t, e.Positions())
	assert.Empty(t, e.Transactions())

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, "10000", history[0].TotalValue.String())
	assert.Nil(t, history[0].Trade)

	// Favorites deliberately survive a reset: they are bookmarks, not
	// portfolio state.
	assert.True(t, e.IsFavorite(assetB.ID))
}

func TestResetIdempotent(t *testing.T) {
	e := newTestEngine(t)
	mustBuy(t, e, assetA, "10", "1", "0")

	e.Reset()
	once := e.Snapshot()
	e.Reset()
	twice := e.Snapshot()

	assert.True(t, once.Cash.Equal(twice.Cash))
	assert.Equal(t, len(once.Positions), len(twice.Positions))
	assert.Equal(t, len(once.Transactions), len(twice.Transactions))
	assert.Equal(t, len(once.History), len(twice.History))
	assert.Equal(t, once.Favorites, twice.Favorites)
}

func TestToggleFavoriteIdempotentPairs(t *testing.T) {
	e := newTestEngine(t)

	e.ToggleFavorite(assetA)
	assert.True(t, e.IsFavorite(assetA.ID))

	e.ToggleFavorite(assetB)
	favorites := e.Favorites()
	require.Len(t, favorites, 2)
	assert.Equal(t, assetA.ID, favorites[0].ID) // insertion order kept

	e.ToggleFavorite(assetA)
	assert.False(t, e.IsFavorite(assetA.ID))
	assert.True(t, e.IsFavorite(assetB.ID))
}

func TestCashReplayConservation(t *testing.T) {
	e := newTestEngine(t)

	mustBuy(t, e, assetA, "100", "1.00", "1")
	mustBuy(t, e, assetB, "5", "20", "0.5")
	mustSell(t, e, assetA, "30", "1.50", "1")
	mustBuy(t, e, assetA, "10", "1.20", "0")
	mustSell(t, e, assetB, "5", "25", "0.5")

	// Replaying the transaction log oldest-first must reproduce the
	// final cash balance exactly.
	txns := e.Transactions()
	cash := decimal.NewFromInt(DefaultInitialBalance)
	for i := len(txns) - 1; i >= 0; i-- {
		switch txns[i].Kind {
		case Buy:
			cash = cash.Sub(txns[i].Total)
		case Sell:
			cash = cash.Add(txns[i].Total)
		}
	}
	assert.True(t, cash.Equal(e.Cash()), "replayed %s, ledger %s", cash, e.Cash())

	// Every transaction's total is amount * effective price.
	for _, txn := range txns {
		assert.True(t, txn.Total.Equal(txn.Amount.Mul(txn.Price)))
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := newTestEngine(t)
	mustBuy(t, e, assetA, "10", "1", "0")

	snap := e.Snapshot()
	snap.Positions[assetA.ID] = Position{Asset: assetA, Amount: dec("999"), AvgBuyPrice: dec("1")}
	snap.Transactions[0].Symbol = "mutated"

	pos, ok := e.Position(assetA.ID)
	require.True(t, ok)
	assert.Equal(t, "10", pos.Amount.String())
	assert.Equal(t, assetA.Symbol, e.Transactions()[0].Symbol)
}

func TestRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	mustBuy(t, e, assetA, "100", "1.00", "1")
	mustSell(t, e, assetA, "50", "2.00", "1")
	e.ToggleFavorite(assetB)

	snap := e.Snapshot()

	restored := NewEngine(decimal.NewFromInt(DefaultInitialBalance), nil)
	restored.Restore(snap)

	assert.True(t, restored.Cash().Equal(e.Cash()))
	assert.Equal(t, e.Positions(), restored.Positions())
	assert.Equal(t, e.Transactions(), restored.Transactions())
	assert.Equal(t, e.History(), restored.History())
	assert.Equal(t, e.Favorites(), restored.Favorites())
}
