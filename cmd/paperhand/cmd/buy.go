package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/market"
)

var (
	buyPrice    string
	buySlippage string
	buyAssetID  string
	buyName     string
	buyImage    string
)

var buyCmd = &cobra.Command{
	Use:   "buy <symbol> <amount>",
	Short: "Buy an asset at a quoted price",
	Long: `Execute a simulated buy. The quoted price comes from whatever price
source you use (a DEX screener, an exchange page); slippage is applied
against you on top of it.

Examples:
  paperhand buy WIF 100 --price 1.00
  paperhand buy BONK 50000 --price 0.000024 --slippage 1 --id Dez...B263`,
	Args: cobra.ExactArgs(2),
	RunE: runBuy,
}

func init() {
	rootCmd.AddCommand(buyCmd)

	buyCmd.Flags().StringVar(&buyPrice, "price", "", "quoted price per unit (required)")
	buyCmd.Flags().StringVar(&buySlippage, "slippage", "", "slippage percent (default from config)")
	buyCmd.Flags().StringVar(&buyAssetID, "id", "", "asset id (defaults to symbol)")
	buyCmd.Flags().StringVar(&buyName, "name", "", "asset display name")
	buyCmd.Flags().StringVar(&buyImage, "image", "", "asset image URL")
	buyCmd.MarkFlagRequired("price")
}

func runBuy(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	price, err := decimal.NewFromString(buyPrice)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}

	eng, st, cfg, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	slippage := decimal.NewFromFloat(cfg.Trading.DefaultSlippagePct)
	if buySlippage != "" {
		if slippage, err = decimal.NewFromString(buySlippage); err != nil {
			return fmt.Errorf("slippage: %w", err)
		}
	}

	asset := market.Asset{
		ID:     buyAssetID,
		Symbol: symbol,
		Name:   buyName,
		Image:  buyImage,
	}
	if asset.ID == "" {
		asset.ID = symbol
	}
	if asset.Name == "" {
		asset.Name = symbol
	}

	txn, err := eng.Buy(asset, amount, price, slippage)
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
		Str("price", txn.Price.String()).
		Msg("buy executed")

	fmt.Printf("Bought %s %s at %s (slippage %s%%), total %s\n",
		txn.Amount, txn.Symbol, market.FormatPrice(txn.Price),
		txn.SlippagePct, market.FormatUSD(txn.Total))
	fmt.Printf("Cash: %s\n", market.FormatUSD(eng.Cash()))
	return nil
}
