package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/avoider/internal/audio"
	"github.com/tomz197/avoider/internal/config"
	"github.com/tomz197/avoider/internal/tui"
)

func main() {
	if err := config.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	var gf config.GameFlags
	gf.Register(flag.CommandLine)
	logFile := flag.String("log", config.GetEnv("AVOIDER_LOG_FILE", ""), "write logs to this file")
	flag.Parse()

	cfg, err := gf.Config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "avoider-tui")

	opts := tui.Options{
		Config: &cfg,
		Rand:   gf.Rand(),
		Logger: logger,
	}
	if gf.Sound {
		player := audio.NewPlayer(gf.Volume)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Sink = player
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "open screen: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, screen, opts); err != nil {
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
