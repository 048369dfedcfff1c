package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyep/internal/auth"
	"github.com/vovakirdan/flappyep/internal/games/flappy"
	"github.com/vovakirdan/flappyep/internal/platform/tui"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run leaderboard",
	Long: `Display the top runs across all players, or for one player.

Examples:
  flappyep scores
  flappyep scores --player me@example.com
  flappyep scores --tui
  flappyep scores --player me@example.com --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show this player's runs")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (of --player, or everyone)")
}

func runScores(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	player := auth.NormalizeEmail(flagScoresPlayer)
	ctx := context.Background()

	if flagScoresClear {
		if err := store.ClearRuns(ctx, player); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagScoresTUI {
		w, h := terminalSize()
		if err := tui.RunScoreboard(store, player, w, h); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(ctx, player, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "everyone"
	if player != "" {
		title = player
	}
	fmt.Printf("Top Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappyep play' to set the first score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-28s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Badge", "Date")
	fmt.Printf("  %-4s  %-28s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "----")

	for i, r := range runs {
		badge := flappy.Rank(r.Score)
		if r.Won {
			badge = "WIN"
		}
		fmt.Printf("  %-4d  %-28s  %-6d  %-8s  %s\n", i+1, r.Player, r.Score, badge, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(ctx, player)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Avg: %.1f\n", stats.Runs, stats.Wins, stats.Best, stats.AvgScore)
	}
}
