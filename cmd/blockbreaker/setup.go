package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

var (
	appLogger *log.Logger
	appConfig config.Config
	logCloser io.Closer
)

// setup builds the logger and loads the game config for every command.
func setup(cmd *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(cmd.Name() == "serve")
	if err != nil {
		return err
	}
	appLogger, logCloser = logger, closer
	cobra.OnFinalize(closeLog)

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	appLogger.Debug("config loaded", "source", source, "difficulty", preset, "collision", cfg.Collision.Mode)
	return nil
}

// newLogger returns a stderr logger for the server. Interactive frontends own
// the terminal, so they log only when --log-file is set.
func newLogger(toStderr bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer
	)
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w, closer = f, f
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockbreaker",
		Level:           level,
	})
	return logger, closer, nil
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	return rt
}

func newGate() wallet.Gate {
	return wallet.New(appConfig.Wallet, wallet.WithLogger(appLogger.WithPrefix("wallet")))
}

// playerName is the name local scores are saved under.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
