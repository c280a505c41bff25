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
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/handheld-arcade/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the simulator SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // generated under ~/.handheld when empty
	DBPath      string        // calibration database shared by all users
	IdleTimeout time.Duration // idle connections are dropped after this
}

func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.handheld/handheld.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the simulator over SSH. Every connection gets its own
// device and sessions; only the calibration store is shared, keyed by the
// SSH user name.
type SSHServer struct {
	config SSHServerConfig
	sim    Config
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer builds the server. sim is the template for every
// connection; its Store, Profile, Logger and Renderer are replaced per user.
// A database that cannot be opened is logged and sessions fall back to
// calibrating on every start.
func NewSSHServer(cfg SSHServerConfig, sim Config) (*SSHServer, error) {
	logger := sim.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "handheld-ssh",
		})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, sim: sim, logger: logger}
	if store, err := storage.Open(cfg.DBPath); err != nil {
		logger.Warn("calibration database unavailable", "path", cfg.DBPath, "err", err)
	} else {
		srv.store = store
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.trackConnections,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the host key location and makes sure its directory
// exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: home directory: %w", err)
		}
		path = filepath.Join(home, ".handheld", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := s.sim
	if s.store != nil {
		cfg.Store = s.store
	}
	cfg.Profile = sess.User()
	cfg.Logger = s.logger.With("user", sess.User())
	cfg.Renderer = bubbletea.MakeRenderer(sess)

	app := NewAppModel(sess.Context(), cfg, pty.Window.Width, pty.Window.Height)
	return app, []tea.ProgramOption{tea.WithAltScreen()}
}

// trackConnections logs connects and disconnects with the number of
// players online.
func (s *SSHServer) trackConnections(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("player connected", "user", sess.User(), "remote", remote, "online", s.active.Add(1))
		defer func() {
			s.logger.Info("player left",
				"user", sess.User(),
				"remote", remote,
				"played", time.Since(start).Round(time.Second),
				"online", s.active.Add(-1),
			)
		}()
		next(sess)
	}
}

// Online returns the number of open connections.
func (s *SSHServer) Online() int {
	return int(s.active.Load())
}

// Serve accepts connections until ctx is done, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "online", s.Online())
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits briefly for open ones.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	defer s.closeStore()

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close calibration database", "err", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
