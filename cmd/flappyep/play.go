package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyep/internal/audio"
	"github.com/vovakirdan/flappyep/internal/auth"
	"github.com/vovakirdan/flappyep/internal/platform/tui"
	"github.com/vovakirdan/flappyep/internal/storage"
)

const guestPlayer = "guest"

var (
	flagEmail  string
	flagNoAuth bool
	flagGod    bool
	flagOpen   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Log in and play",
	Long: `Show the login screen, then start the game for the logged-in player.

Controls:
  SPACE / UP / W / click  - Flap
  S                       - Toggle sound
  type "god"              - Toggle invincibility
  R                       - Retry after a run
  M / ESC                 - Back to the title screen
  TAB                     - Scoreboard (between runs)
  CTRL+S                  - Save a screenshot
  Q                       - Quit

Examples:
  flappyep play
  flappyep play --email me@example.com
  flappyep play --no-auth --mute
  flappyep play --store gdata`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagEmail, "email", "", "Prefill the login email")
	playCmd.Flags().BoolVar(&flagNoAuth, "no-auth", false, "Skip the login and play as a guest")
	playCmd.Flags().BoolVar(&flagGod, "god", false, "Obstacles never hurt (practice mode)")
	playCmd.Flags().BoolVar(&flagOpen, "open-signup", false, "Let unverified accounts log in")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger(flagLogFile)
	defer closeLog()

	cfg := loadConfig()
	if flagGod {
		cfg.Session.Invincible = true
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	synth := audio.NewSynth(flagMute, logger)
	factory := gameFactory(cfg, store, logger, synth)
	cols, rows := terminalSize()

	var model tui.SessionModel
	switch {
	case flagNoAuth:
		player, ignored := unauthenticatedPlayer(flagEmail)
		if ignored {
			fmt.Fprintln(os.Stderr, "Warning: --email is ignored with --no-auth, playing as guest")
		}
		model = tui.NewAuthenticatedSession(player, runSource(store), factory, cols, rows)
	case store == nil:
		fmt.Fprintln(os.Stderr, "Error: accounts need the database; use --no-auth to play as a guest")
		os.Exit(1)
	default:
		model = tui.NewSessionModel(authService(store), flagEmail, store, factory, cols, rows)
	}

	logger.Info("starting", "store", flagStore, "guest", flagNoAuth)
	if err := tui.RunSession(model); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// authService builds the login gate over the account table.
func authService(store *storage.Store) *auth.Service {
	var opts []auth.Option
	if flagOpen {
		opts = append(opts, auth.WithoutVerification())
	}
	return auth.NewService(store, opts...)
}

// unauthenticatedPlayer names the player for a session without a login. An
// email never grants that account's identity; ignored reports one was given.
func unauthenticatedPlayer(email string) (player string, ignored bool) {
	return guestPlayer, strings.TrimSpace(email) != ""
}
