package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/market"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the ledger to its starting balance",
	Long: `Wipe the portfolio back to its starting condition: cash restored to the
configured initial balance, positions and transactions cleared, history
reseeded. Favorites are kept; they are bookmarks, not portfolio state.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return fmt.Errorf("reset wipes all positions and history; re-run with --yes to confirm")
	}

	eng, st, _, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	eng.Reset()

	if err := saveLedger(eng, st); err != nil {
		return err
	}

	log.Info().Msg("ledger reset")
	fmt.Printf("Ledger reset. Cash: %s\n", market.FormatUSD(eng.Cash()))
	return nil
}
