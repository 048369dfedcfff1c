package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flappyep/internal/audio"
	"github.com/vovakirdan/flappyep/internal/config"
	"github.com/vovakirdan/flappyep/internal/core"
	"github.com/vovakirdan/flappyep/internal/games/flappy"
	"github.com/vovakirdan/flappyep/internal/platform/tui"
	"github.com/vovakirdan/flappyep/internal/storage"
)

const (
	storeSQLite = "sqlite"
	storeGData  = "gdata"
)

// openStore opens the database, printing a warning on failure. The game
// still runs without it, only accounts and history are lost.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// loadConfig loads the game config or exits.
func loadConfig() config.GameConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// terminalSize returns the current terminal size, defaulting to 80x24.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// runSource avoids handing the TUI a typed nil store.
func runSource(store *storage.Store) tui.RunSource {
	if store == nil {
		return nil
	}
	return store
}

// bestStore picks the persistence for a player's best score.
func bestStore(store *storage.Store, player string, logger *log.Logger) flappy.BestScoreStore {
	switch flagStore {
	case storeGData:
		g, err := storage.OpenGData(appName, player)
		if err != nil {
			logger.Warn("gdata unavailable, best score will not persist", "err", err)
			return nil
		}
		return g
	default:
		if store == nil {
			return nil
		}
		return store.Best(player)
	}
}

// gameFactory builds one game screen per authenticated player. A nil synth
// plays no sound.
func gameFactory(cfg config.GameConfig, store *storage.Store, logger *log.Logger, synth *audio.Synth) tui.GameFactory {
	return func(player string, cols, rows int) tui.GameModel {
		opts := tui.GameOptions{
			Config: cfg,
			Runtime: core.RuntimeConfig{
				Cols:     cols,
				Rows:     rows,
				TickRate: flagFPS,
				Seed:     flagSeed,
			},
			Player: player,
			Best:   bestStore(store, player, logger),
			Logger: logger,
		}
		if synth != nil {
			opts.Hooks = []flappy.Hooks{synth}
			opts.Muter = synth
		}
		if store != nil {
			opts.Runs = store
		}
		return tui.NewGameModel(opts)
	}
}
