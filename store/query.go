package store

import (
	"database/sql"
	"time"

	"github.com/figuregpt/paperhand/ledger"
)

// ListTransactionsBetween returns the persisted transactions executed
// within [start, end), newest first.
func (s *SQLite) ListTransactionsBetween(start, end time.Time) ([]ledger.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT txn_id, kind, asset_id, symbol, amount, price, total, time, slippage_pct, realized_pnl
		FROM transactions
		WHERE time >= ? AND time < ?
		ORDER BY seq ASC`, start, end)
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

func scanTransaction(rows *sql.Rows) (ledger.Transaction, error) {
	var t ledger.Transaction
	var kind, amount, price, total, slippage string
	var pnl sql.NullString

	err := rows.Scan(
		&t.ID, &kind, &t.AssetID, &t.Symbol,
		&amount, &price, &total, &t.Time, &slippage, &pnl,
	)
	if err != nil {
		return ledger.Transaction{}, err
	}

	t.Kind = ledger.Kind(kind)
	if t.Amount, err = parseDecimal(amount, "transaction amount"); err != nil {
		return ledger.Transaction{}, err
	}
	if t.Price, err = parseDecimal(price, "transaction price"); err != nil {
		return ledger.Transaction{}, err
	}
	if t.Total, err = parseDecimal(total, "transaction total"); err != nil {
		return ledger.Transaction{}, err
	}
	if t.SlippagePct, err = parseDecimal(slippage, "transaction slippage_pct"); err != nil {
		return ledger.Transaction{}, err
	}
	if pnl.Valid {
		d, err := parseDecimal(pnl.String, "transaction realized_pnl")
		if err != nil {
			return ledger.Transaction{}, err
		}
		t.RealizedPnL = &d
	}
	return t, nil
}
