package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/flappyep/internal/config"
)

// playerKey stores the authenticated player on the SSH context.
type playerKey struct{}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flappyep/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with defaults, overridable by
// FLAPPYEP_SSH_ADDR and FLAPPYEP_HOST_KEY.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     config.GetEnv("FLAPPYEP_SSH_ADDR", ":23234"),
		HostKeyPath: config.GetEnv("FLAPPYEP_HOST_KEY", ""),
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the game over SSH. The SSH password is checked against
// the account store, so the email is the SSH user name.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	auth    Authenticator
	source  RunSource
	newGame GameFactory
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, a Authenticator, source RunSource, newGame GameFactory, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := &SSHServer{
		config:  cfg,
		auth:    a,
		source:  source,
		newGame: newGame,
		logger:  logger,
	}

	hostKeyPath := config.ExpandPath(cfg.HostKeyPath)
	if hostKeyPath == "" {
		hostKeyPath = config.ExpandPath(config.DefaultPath("host_key"))
	}
	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithPasswordAuth(srv.passwordHandler),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce input latency
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// passwordHandler runs the login gate for an SSH connection.
func (s *SSHServer) passwordHandler(ctx ssh.Context, password string) bool {
	if s.auth == nil {
		return false
	}
	player, err := s.auth.Login(ctx, ctx.User(), password)
	if err != nil {
		s.logger.Info("login rejected", "user", ctx.User(), "remote", ctx.RemoteAddr().String(), "err", err)
		return false
	}
	ctx.SetValue(playerKey{}, player)
	return true
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	player, _ := sess.Context().Value(playerKey{}).(string)
	if player == "" {
		s.logger.Warn("session without an authenticated player", "user", sess.User())
		return nil, nil
	}

	model := NewAuthenticatedSession(player, s.source, s.newGame, pty.Window.Width, pty.Window.Height)

	// A dropped connection ends the program without a quit key.
	go func() {
		<-sess.Context().Done()
		model.Stop()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("tui: serve: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
