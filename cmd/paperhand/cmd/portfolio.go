package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/market"
)

var portfolioCmd = &cobra.Command{
	Use:     "portfolio",
	Aliases: []string{"pf"},
	Short:   "Show cash, open positions and P&L",
	Long: `Display the current portfolio: cash balance, every open position with
its cost basis and mark, total portfolio value, unrealized P&L and
all-time return.

Positions without a cached live quote are marked at their own cost
basis, so their value is last-known, not live.`,
	Args: cobra.NoArgs,
	RunE: runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	eng, st, _, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	positions := eng.Positions()
	lookup := eng.Quotes().Lookup()

	fmt.Printf("Cash: %s\n\n", market.FormatUSD(eng.Cash()))

	if len(positions) == 0 {
		fmt.Println("No open positions.")
	} else {
		ids := make([]string, 0, len(positions))
		for id := range positions {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tAMOUNT\tAVG PRICE\tMARK\tVALUE\tPNL")
		for _, id := range ids {
			pos := positions[id]
			mark := pos.AvgBuyPrice
			if price, ok := lookup(pos.ID); ok {
				mark = price
			}
			value := pos.Amount.Mul(mark)
			pnl := value.Sub(pos.CostBasis())
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				pos.Symbol, pos.Amount,
				market.FormatPrice(pos.AvgBuyPrice),
				market.FormatPrice(mark),
				market.FormatUSD(value),
				market.FormatUSD(pnl),
			)
		}
		w.Flush()
	}

	fmt.Printf("\nTotal value:    %s\n", market.FormatUSD(eng.TotalValue()))
	fmt.Printf("Unrealized P&L: %s\n", market.FormatUSD(eng.TotalPnL()))
	fmt.Printf("All-time:       %s%%\n", eng.PnLPercent().StringFixed(2))
	return nil
}
