package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/config"
	"github.com/figuregpt/paperhand/ledger"
	"github.com/figuregpt/paperhand/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "paperhand",
	Short: "A paper-trading ledger for priced assets",
	Long: `Paperhand is a simulated trading ledger. You start with a virtual
cash balance, buy and sell assets at externally supplied prices with
adverse slippage, and the ledger tracks cost basis, realized and
unrealized P&L, and a portfolio-value history for charting.

No real orders are placed anywhere.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig returns the configured settings, falling back to defaults
// when no config file is given.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// openLedger wires config, store and engine together: it opens the
// configured store, restores the persisted ledger when one exists, and
// otherwise starts fresh from the configured balance.
func openLedger() (*ledger.Engine, store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	var st store.Store
	switch cfg.Store.Type {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.Path)
	default:
		st, err = store.NewJSON(cfg.Store.Path)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	eng := ledger.NewEngine(decimal.NewFromFloat(cfg.Account.InitialBalance), nil)

	state, found, err := st.Load()
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("load ledger: %w", err)
	}
	if found {
		eng.Restore(state)
		log.Debug().Int("transactions", len(state.Transactions)).Msg("ledger restored")
	} else {
		log.Debug().Msg("starting fresh ledger")
	}

	return eng, st, cfg, nil
}

// saveLedger persists the engine's current state.
func saveLedger(eng *ledger.Engine, st store.Store) error {
	if err := st.Save(eng.Snapshot()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
