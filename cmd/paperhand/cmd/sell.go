package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/ledger"
	"github.com/figuregpt/paperhand/market"
)

var (
	sellPrice    string
	sellSlippage string
	sellAll      bool
)

var sellCmd = &cobra.Command{
	Use:   "sell <symbol> [amount]",
	Short: "Sell from an open position at a quoted price",
	Long: `Execute a simulated sell against an open position. Slippage is applied
against you: you receive less than the quoted price. Selling the full
held amount closes the position.

Examples:
  paperhand sell WIF 50 --price 2.00
  paperhand sell WIF --all --price 2.00`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSell,
}

func init() {
	rootCmd.AddCommand(sellCmd)

	sellCmd.Flags().StringVar(&sellPrice, "price", "", "quoted price per unit (required)")
	sellCmd.Flags().StringVar(&sellSlippage, "slippage", "", "slippage percent (default from config)")
	sellCmd.Flags().BoolVar(&sellAll, "all", false, "sell the entire position")
	sellCmd.MarkFlagRequired("price")
}

func runSell(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	price, err := decimal.NewFromString(sellPrice)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}

	eng, st, cfg, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	pos, ok := findPosition(eng, symbol)
	if !ok {
		return fmt.Errorf("sell %s: %w", symbol, ledger.ErrNoPosition)
	}

	var amount decimal.Decimal
	switch {
	case sellAll:
		amount = pos.Amount
	case len(args) == 2:
		if amount, err = decimal.NewFromString(args[1]); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
	default:
		return fmt.Errorf("amount or --all required")
	}

	slippage := decimal.NewFromFloat(cfg.Trading.DefaultSlippagePct)
	if sellSlippage != "" {
		if slippage, err = decimal.NewFromString(sellSlippage); err != nil {
			return fmt.Errorf("slippage: %w", err)
		}
	}

	txn, err := eng.Sell(pos.Asset, amount, price, slippage)
	if err != nil {
		return err
	}

	if err := saveLedger(eng, st); err != nil {
		return err
	}

	log.Info().
		Str("txn", txn.ID).
		Str("symbol", txn.Symbol).
		Str("amount", txn.Amount.String()).
		Str("pnl", txn.RealizedPnL.String()).
		Msg("sell executed")

	fmt.Printf("Sold %s %s at %s (slippage %s%%), proceeds %s\n",
		txn.Amount, txn.Symbol, market.FormatPrice(txn.Price),
		txn.SlippagePct, market.FormatUSD(txn.Total))
	fmt.Printf("Realized P&L: %s\n", market.FormatUSD(*txn.RealizedPnL))
	fmt.Printf("Cash: %s\n", market.FormatUSD(eng.Cash()))
	return nil
}

// findPosition resolves a symbol or asset id to an open position.
func findPosition(eng *ledger.Engine, key string) (ledger.Position, bool) {
	if pos, ok := eng.Position(key); ok {
		return pos, true
	}
	for _, pos := range eng.Positions() {
		if pos.Symbol == key {
			return pos, true
		}
	}
	return ledger.Position{}, false
}
