package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
	"github.com/vovakirdan/rise/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port to listen on
	HostKeyPath string        // Generated on first start; empty means ~/.rise/host_key
	DBPath      string        // Rounds database shared by all sessions
	IdleTimeout time.Duration // Idle connections are closed after this long

	Game       config.RiseConfig // Simulation config every session plays with
	Difficulty string            // Recorded with each round
	TickRate   int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.rise/rounds.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultRiseConfig(),
		Difficulty:  string(config.DifficultyNormal),
		TickRate:    60,
	}
}

// SSHServer serves rise over SSH. Every connection runs its own hot-seat session
// with both players on the remote keyboard; sessions share nothing but the history.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer validates cfg, opens the rounds database and prepares the server.
// A database that cannot be opened only disables history.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rise-ssh",
		}),
	}

	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("could not open rounds database, history disabled", "error", err)
		srv.store = nil
	}

	// Middlewares run last to first: logging wraps the terminal check, which wraps the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath defaults the key location and makes sure its directory exists.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".rise", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates the session model of one connection, sized to its PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	return NewSessionModel(s.sessionOptions(pty.Window.Width, pty.Window.Height, sess.User())),
		[]tea.ProgramOption{tea.WithAltScreen()}
}

// sessionOptions builds the options of one remote session. Seed is left zero so
// every game picks its own.
func (s *SSHServer) sessionOptions(width, height int, user string) Options {
	return Options{
		Config: s.config.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.config.TickRate,
		},
		Store:      s.store,
		Difficulty: s.config.Difficulty,
		Logger:     s.logger.With("user", user),
	}
}

// loggingMiddleware logs session start and end with the number of live sessions.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote, "active", s.active.Add(1))

		next(sess)

		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", remote,
			"duration", time.Since(started).Round(time.Second),
			"active", s.active.Add(-1),
		)
	}
}

// ActiveSessions returns the number of connected sessions.
func (s *SSHServer) ActiveSessions() int64 {
	return s.active.Load()
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "active", s.active.Load())
	return s.Shutdown()
}

// Shutdown waits up to ten seconds for sessions to end, then stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
