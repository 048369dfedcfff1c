package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyep/internal/auth"
	"github.com/vovakirdan/flappyep/internal/storage"
)

var flagBestPlayer string

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show a player's best score",
	Long: `Show the persisted best score of a player. The --store flag picks
which store is read.

Examples:
  flappyep best --player me@example.com
  flappyep best --player guest --store gdata
  flappyep best reset --player me@example.com`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

var bestResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a player's best score",
	Args:  cobra.NoArgs,
	Run:   runBestReset,
}

func init() {
	bestCmd.PersistentFlags().StringVar(&flagBestPlayer, "player", guestPlayer, "Player email")
	bestCmd.AddCommand(bestResetCmd)
}

func runBest(_ *cobra.Command, _ []string) {
	player := auth.NormalizeEmail(flagBestPlayer)

	var store *storage.Store
	if flagStore == storeSQLite {
		store = mustOpenStore()
		defer store.Close()
	}

	best := bestStore(store, player, newLogger(os.Stderr))
	if best == nil {
		fmt.Fprintln(os.Stderr, "Error: no best score store available")
		os.Exit(1)
	}
	score, err := best.BestScore(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading best score: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Best (%s, %s): %d\n", player, flagStore, score)
}

func runBestReset(_ *cobra.Command, _ []string) {
	player := auth.NormalizeEmail(flagBestPlayer)
	logger := newLogger(os.Stderr)

	var err error
	switch flagStore {
	case storeGData:
		var g *storage.GDataBest
		g, err = storage.OpenGData(appName, player)
		if err == nil {
			err = g.Reset()
		}
	default:
		store := mustOpenStore()
		defer store.Close()
		err = store.ResetBest(context.Background(), player)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting best score: %v\n", err)
		os.Exit(1)
	}
	logger.Info("best score reset", "player", player, "store", flagStore)
}
