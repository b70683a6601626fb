package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/figuregpt/paperhand/ledger"
	"github.com/figuregpt/paperhand/market"
)

// SQLite persists the ledger snapshot in a SQLite database. Save is
// snapshot-replace inside a single transaction, so a crash mid-save
// never leaves a torn state on disk.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(state ledger.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"ledger", "positions", "transactions", "history", "favorites"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`INSERT INTO ledger (id, cash) VALUES (1, ?)`, state.Cash.String()); err != nil {
		return err
	}

	for _, pos := range state.Positions {
		_, err := tx.Exec(`
			INSERT INTO positions (asset_id, symbol, name, image, amount, avg_buy_price)
			VALUES (?, ?, ?, ?, ?, ?)`,
			pos.ID, pos.Symbol, pos.Name, pos.Image,
			pos.Amount.String(), pos.AvgBuyPrice.String(),
		)
		if err != nil {
			return err
		}
	}

	// seq preserves the newest-first log order.
	for i, t := range state.Transactions {
		var pnl any
		if t.RealizedPnL != nil {
			pnl = t.RealizedPnL.String()
		}
		_, err := tx.Exec(`
			INSERT INTO transactions
			(seq, txn_id, kind, asset_id, symbol, amount, price, total, time, slippage_pct, realized_pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, t.ID, string(t.Kind), t.AssetID, t.Symbol,
			t.Amount.String(), t.Price.String(), t.Total.String(),
			t.Time, t.SlippagePct.String(), pnl,
		)
		if err != nil {
			return err
		}
	}

	for i, h := range state.History {
		var kind, symbol, total any
		if h.Trade != nil {
			kind = string(h.Trade.Kind)
			symbol = h.Trade.Symbol
			total = h.Trade.Total.String()
		}
		_, err := tx.Exec(`
			INSERT INTO history (seq, time, total_value, trade_kind, trade_symbol, trade_total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, h.Time, h.TotalValue.String(), kind, symbol, total,
		)
		if err != nil {
			return err
		}
	}

	for i, f := range state.Favorites {
		_, err := tx.Exec(`
			INSERT INTO favorites (seq, asset_id, symbol, name, image)
			VALUES (?, ?, ?, ?, ?)`,
			i, f.ID, f.Symbol, f.Name, f.Image,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLite) Load() (ledger.State, bool, error) {
	var state ledger.State

	var cash string
	err := s.db.QueryRow(`SELECT cash FROM ledger WHERE id = 1`).Scan(&cash)
	if err == sql.ErrNoRows {
		return ledger.State{}, false, nil
	}
	if err != nil {
		return ledger.State{}, false, err
	}
	if state.Cash, err = parseDecimal(cash, "cash"); err != nil {
		return ledger.State{}, false, err
	}

	if state.Positions, err = s.loadPositions(); err != nil {
		return ledger.State{}, false, err
	}
	if state.Transactions, err = s.loadTransactions(); err != nil {
		return ledger.State{}, false, err
	}
	if state.History, err = s.loadHistory(); err != nil {
		return ledger.State{}, false, err
	}
	if state.Favorites, err = s.loadFavorites(); err != nil {
		return ledger.State{}, false, err
	}

	return state, true, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) loadPositions() (map[string]ledger.Position, error) {
	rows, err := s.db.Query(`
		SELECT asset_id, symbol, name, image, amount, avg_buy_price
		FROM positions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]ledger.Position)
	for rows.Next() {
		var pos ledger.Position
		var amount, avg string
		if err := rows.Scan(&pos.ID, &pos.Symbol, &pos.Name, &pos.Image, &amount, &avg); err != nil {
			return nil, err
		}
		if pos.Amount, err = parseDecimal(amount, "position amount"); err != nil {
			return nil, err
		}
		if pos.AvgBuyPrice, err = parseDecimal(avg, "position avg_buy_price"); err != nil {
			return nil, err
		}
		out[pos.ID] = pos
	}
	return out, rows.Err()
}

func (s *SQLite) loadTransactions() ([]ledger.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT txn_id, kind, asset_id, symbol, amount, price, total, time, slippage_pct, realized_pnl
		FROM transactions
		ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) loadHistory() ([]ledger.HistorySample, error) {
	rows, err := s.db.Query(`
		SELECT time, total_value, trade_kind, trade_symbol, trade_total
		FROM history
		ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.HistorySample
	for rows.Next() {
		var h ledger.HistorySample
		var total string
		var kind, symbol, tradeTotal sql.NullString
		if err := rows.Scan(&h.Time, &total, &kind, &symbol, &tradeTotal); err != nil {
			return nil, err
		}
		if h.TotalValue, err = parseDecimal(total, "history total_value"); err != nil {
			return nil, err
		}
		if kind.Valid {
			tt, err := parseDecimal(tradeTotal.String, "history trade_total")
			if err != nil {
				return nil, err
			}
			h.Trade = &ledger.TradeSummary{
				Kind:   ledger.Kind(kind.String),
				Symbol: symbol.String,
				Total:  tt,
			}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *SQLite) loadFavorites() ([]market.Asset, error) {
	rows, err := s.db.Query(`
		SELECT asset_id, symbol, name, image
		FROM favorites
		ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Asset
	for rows.Next() {
		var a market.Asset
		if err := rows.Scan(&a.ID, &a.Symbol, &a.Name, &a.Image); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return d, nil
}
