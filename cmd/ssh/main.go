package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/avoider/internal/config"
	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
	"github.com/tomz197/avoider/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	shutdownGrace = 15 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if err := config.Load(".env"); err != nil {
		logger.Fatal("load .env", "err", err)
	}

	var gf config.GameFlags
	gf.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := gf.Config()
	if err != nil {
		logger.Fatal("game config", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	a := &app{
		hub:    loop.NewHub(),
		cfg:    cfg,
		flags:  &gf,
		logger: logger,
		warn:   config.GetEnvDuration("AVOIDER_INACTIVITY_WARN", loop.DefaultInactivityWarn),
		idle:   config.GetEnvDuration("AVOIDER_INACTIVITY_DISCONNECT", loop.DefaultInactivityDisconnect),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	logger.Info("Notifying connected players about shutdown...", "sessions", a.hub.Len())
	if left := a.hub.Shutdown(shutdownGrace); left > 0 {
		logger.Warn("sessions still open after grace period", "sessions", left)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// app holds what every SSH session shares.
type app struct {
	hub    *loop.Hub
	cfg    game.Config
	flags  *config.GameFlags
	logger *log.Logger
	warn   time.Duration
	idle   time.Duration
}

// gameMiddleware runs one game per SSH session.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Println(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		cfg := a.cfg
		err := loop.Run(sess.Context(), sess, sess, loop.Options{
			Config:               &cfg,
			Rand:                 a.flags.Rand(),
			TermSizeFunc:         sizeTracker.getSize,
			Logger:               logger,
			InactivityWarn:       a.warn,
			InactivityDisconnect: a.idle,
			Hub:                  a.hub,
			User:                 sess.User(),
		})
		switch {
		case errors.Is(err, loop.ErrIdle):
			wish.Println(sess, "Disconnected due to inactivity.")
		case err != nil:
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
