package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyep/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FlappyEP SSH server",
	Long: `Start an SSH server that lets registered players connect and play.

The SSH user name is the account email and the SSH password is the account
password. Each connection gets its own game; runs land in the shared
leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappyep/host_key

Examples:
  flappyep serve                           # Listen on :23234 with auto-generated key
  flappyep serve --ssh :2222               # Listen on port 2222
  flappyep serve --host-key ./my_host_key  # Use specific host key
  flappyep serve --db ./flappyep.db        # Use specific database

Players connect with:
  ssh me@example.com@localhost -p 23234`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", defaults.HostKeyPath, "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagOpen, "open-signup", false, "Let unverified accounts log in")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	if flagLogFile != "" {
		var closeLog func()
		logger, closeLog = fileLogger(flagLogFile)
		defer closeLog()
	}

	cfg := loadConfig()
	store := mustOpenStore()
	defer store.Close()

	factory := gameFactory(cfg, store, logger, nil)

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	server, err := tui.NewSSHServer(serverCfg, authService(store), store, factory, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting FlappyEP SSH server on %s\n", server.Addr())
	if _, p, err := net.SplitHostPort(server.Addr()); err == nil {
		fmt.Printf("Connect with: ssh <email>@localhost -p %s\n", p)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
