// Package ssh serves the history browser over SSH.
package ssh

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/sanixdarker/gqlg/internal/history"
	"github.com/sanixdarker/gqlg/internal/tui"
)

// validateKeyPermissions checks that an existing host key is only readable by its owner.
func validateKeyPermissions(keyPath string) error {
	info, err := os.Stat(keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat key file: %w", err)
	}

	if perms := info.Mode().Perm(); perms != 0600 {
		return fmt.Errorf("SSH key has insecure permissions %o, expected 0600", perms)
	}
	return nil
}

// Config holds server configuration.
type Config struct {
	Port    int
	KeyPath string
	History *history.Service
	Logger  *log.Logger
}

// Server represents the SSH server.
type Server struct {
	history *history.Service
	logger  *log.Logger
	server  *ssh.Server
	port    int
}

// New creates a new SSH server.
func New(cfg Config) (*Server, error) {
	if cfg.Port == 0 {
		cfg.Port = 2222
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	if cfg.KeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home dir: %w", err)
		}
		cfg.KeyPath = filepath.Join(home, ".ssh", "gqlg_ed25519")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.KeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := validateKeyPermissions(cfg.KeyPath); err != nil {
		return nil, err
	}

	s := &Server{
		history: cfg.History,
		logger:  cfg.Logger,
		port:    cfg.Port,
	}

	server, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(cfg.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.server = server
	return s, nil
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	renderer := bubbletea.MakeRenderer(sess)
	lipgloss.SetDefaultRenderer(renderer)

	return tui.NewModel(s.history), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithOutput(sess),
		tea.WithInput(sess),
	}
}

// ListenAndServe starts the SSH server and blocks.
func (s *Server) ListenAndServe() error {
	s.logger.Info("SSH server listening", "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}
