package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/aanchal1810/Oplaite-AI/internal/config"
	"github.com/aanchal1810/Oplaite-AI/internal/core"
	"github.com/aanchal1810/Oplaite-AI/internal/games/runner"
	"github.com/aanchal1810/Oplaite-AI/internal/quiz"
	"github.com/aanchal1810/Oplaite-AI/internal/speech"
	"github.com/aanchal1810/Oplaite-AI/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.recall/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Theme        Theme
	QuizName     string
	Questions    []quiz.Question
	RunnerConfig config.RunnerConfig
	TickRate     int
	// WPM paces the captions; remote sessions have no audio.
	WPM int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23235",
		IdleTimeout:  30 * time.Minute,
		Theme:        DarkTheme(),
		RunnerConfig: config.DefaultRunnerConfig(),
		TickRate:     60,
		WPM:          speech.DefaultWPM,
	}
}

// SSHServer wraps a Wish SSH server that serves one quiz run per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  storage.ResultStore
	logger *log.Logger

	mu    sync.Mutex
	games map[string]*runner.Game
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// results are not saved.
func NewSSHServer(cfg SSHServerConfig, store storage.ResultStore, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "recall-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		games:  make(map[string]*runner.Game),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir := config.UserDir()
		if dir == "" {
			return nil, errors.New("cannot get home directory for host key")
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a runner and its Bubble Tea model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	game := s.newGame(sshSession.User())
	s.track(sshSession.Context().SessionID(), game)

	opts := DefaultOptions()
	opts.Theme = s.config.Theme
	opts.SwipeDeadZone = s.config.RunnerConfig.Input.SwipeDeadZone
	game.Reset(cfg)

	return NewModel(game, cfg, opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// newGame builds a runner whose results are saved under user.
func (s *SSHServer) newGame(user string) *runner.Game {
	return runner.New(s.config.Questions,
		runner.WithConfig(s.config.RunnerConfig),
		runner.WithSynthesizer(speech.NewPaced(s.config.WPM)),
		runner.WithLogger(s.logger.With("user", user)),
		runner.WithOnComplete(func(r runner.Result) {
			s.save(user, r)
		}),
	)
}

func (s *SSHServer) save(user string, r runner.Result) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.store.SaveResult(ctx, storage.NewResult(s.config.QuizName, user, r.Correct, r.Total)); err != nil {
		s.logger.Error("could not save result", "user", user, "error", err)
	}
}

func (s *SSHServer) track(id string, g *runner.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = g
}

// release closes the game of a finished session.
func (s *SSHServer) release(id string) {
	s.mu.Lock()
	g, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()

	if ok {
		g.Close()
	}
}

// sessions returns the number of running sessions.
func (s *SSHServer) sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// loggingMiddleware logs SSH session events. The program has exited by the
// time next returns, so the session's game is released here.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.release(sshSession.Context().SessionID())
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "quiz", s.config.QuizName)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...", "sessions", s.sessions())
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The store is owned by the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
