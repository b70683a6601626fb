package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figuregpt/paperhand/market"
)

var (
	favAssetID string
	favName    string
	favImage   string
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Manage bookmarked assets",
	Long: `Bookmark assets for quick access. Favorites are stored as display
snapshots and survive a ledger reset.

Subcommands:
  toggle  - add or remove a favorite
  list    - show all favorites

Examples:
  paperhand favorite toggle WIF --id EKpQ...W2hr --name dogwifhat
  paperhand favorite list`,
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle <symbol>",
	Short: "Add or remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteToggle,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all favorites",
	Args:  cobra.NoArgs,
	RunE:  runFavoriteList,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteToggleCmd)
	favoriteCmd.AddCommand(favoriteListCmd)

	favoriteToggleCmd.Flags().StringVar(&favAssetID, "id", "", "asset id (defaults to symbol)")
	favoriteToggleCmd.Flags().StringVar(&favName, "name", "", "asset display name")
	favoriteToggleCmd.Flags().StringVar(&favImage, "image", "", "asset image URL")
}

func runFavoriteToggle(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	eng, st, _, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	asset := market.Asset{
		ID:     favAssetID,
		Symbol: symbol,
		Name:   favName,
		Image:  favImage,
	}
	if asset.ID == "" {
		asset.ID = symbol
	}
	if asset.Name == "" {
		asset.Name = symbol
	}

	eng.ToggleFavorite(asset)

	if err := saveLedger(eng, st); err != nil {
		return err
	}

	if eng.IsFavorite(asset.ID) {
		fmt.Printf("Added %s to favorites\n", symbol)
	} else {
		fmt.Printf("Removed %s from favorites\n", symbol)
	}
	return nil
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	eng, st, _, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	favorites := eng.Favorites()
	if len(favorites) == 0 {
		fmt.Println("No favorites.")
		return nil
	}

	for _, f := range favorites {
		fmt.Printf("  %-8s %s\n", f.Symbol, f.Name)
	}
	return nil
}
