package store

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/figuregpt/paperhand/ledger"
)

// WriteTransactionsCSV writes the transaction log in CSV form, one row
// per transaction in the given order. The realized_pnl column is empty
// for buys.
func WriteTransactionsCSV(w io.Writer, txns []ledger.Transaction) error {
	cw := csv.NewWriter(w)

	header := []string{
		"id", "kind", "asset_id", "symbol",
		"amount", "price", "total", "time", "slippage_pct", "realized_pnl",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, t := range txns {
		pnl := ""
		if t.RealizedPnL != nil {
			pnl = t.RealizedPnL.String()
		}
		row := []string{
			t.ID,
			string(t.Kind),
			t.AssetID,
			t.Symbol,
			t.Amount.String(),
			t.Price.String(),
			t.Total.String(),
			t.Time.Format(time.RFC3339),
			t.SlippagePct.String(),
			pnl,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
