// flappyep is a Flappy-style reflex game for the terminal, played behind an
// email/password login.
//
// Usage:
//
//	flappyep play                 - Log in and play
//	flappyep play --no-auth       - Play as a guest
//	flappyep scores [--tui]       - Show the run leaderboard
//	flappyep best [reset]         - Show or clear a best score
//	flappyep users add <email>    - Create an account
//	flappyep serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappyep/flappyep.db)
//	--store <kind>      - Best score store: sqlite or gdata
//	--config <path>     - Game config file
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
//	--mute              - Disable sound effects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyep/internal/config"
)

const appName = "flappyep"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "FlappyEP - a one-button reflex game in your terminal",
	Long: `FlappyEP is a Flappy-style reflex game. Log in with your email and
password, flap through the pipes and chase your best score.

Available commands:
  play     - Log in and play
  scores   - View the run leaderboard
  best     - Show or reset a best score
  users    - Manage accounts
  serve    - Start SSH server for remote play

Examples:
  flappyep play --email me@example.com
  flappyep play --no-auth
  flappyep scores --tui
  flappyep users add me@example.com
  flappyep serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		switch flagStore {
		case storeSQLite, storeGData:
			return nil
		default:
			return fmt.Errorf("unknown --store %q (expected %s or %s)", flagStore, storeSQLite, storeGData)
		}
	},
}

func init() {
	defaultDB := config.GetEnv("FLAPPYEP_DB", config.DefaultPath("flappyep.db"))

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use the config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to the accounts and scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storeSQLite, "Best score store: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a game config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.flappyep/flappyep.log for play)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound effects")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(serveCmd)
}
