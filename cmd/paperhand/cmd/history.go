package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/market"
	"github.com/figuregpt/paperhand/store"
)

var (
	historyCSV   string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show portfolio history and the transaction log",
	Long: `Display the portfolio-value samples recorded after each trade and the
most recent transactions. With --csv, export the full transaction log
instead.

Examples:
  paperhand history
  paperhand history --limit 5
  paperhand history --csv transactions.csv`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyCSV, "csv", "", "export transactions to a CSV file")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	eng, st, _, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	txns := eng.Transactions()

	if historyCSV != "" {
		f, err := os.Create(historyCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()

		if err := store.WriteTransactionsCSV(f, txns); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("Wrote %d transactions to %s\n", len(txns), historyCSV)
		return nil
	}

	samples := eng.History()
	fmt.Printf("Portfolio history (%d samples):\n", len(samples))
	start := 0
	if len(samples) > historyLimit {
		start = len(samples) - historyLimit
	}
	for _, s := range samples[start:] {
		note := ""
		if s.Trade != nil {
			note = fmt.Sprintf("  %s %s %s", s.Trade.Kind, s.Trade.Symbol, market.FormatUSD(s.Trade.Total))
		}
		fmt.Printf("  %s  %s%s\n",
			s.Time.Format(time.RFC3339), market.FormatUSD(s.TotalValue), note)
	}

	fmt.Printf("\nTransactions (%d total, newest first):\n", len(txns))
	shown := txns
	if len(shown) > historyLimit {
		shown = shown[:historyLimit]
	}
	for _, t := range shown {
		pnl := ""
		if t.RealizedPnL != nil {
			pnl = fmt.Sprintf("  pnl %s", market.FormatUSD(*t.RealizedPnL))
		}
		fmt.Printf("  %s  %-4s %s %s at %s = %s%s\n",
			t.Time.Format(time.RFC3339), t.Kind, t.Amount, t.Symbol,
			market.FormatPrice(t.Price), market.FormatUSD(t.Total), pnl)
	}
	return nil
}
