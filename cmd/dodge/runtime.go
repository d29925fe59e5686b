package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/platform/tui"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

func validPreset(s string) bool {
	return config.ParsePreset(s) != ""
}

// newLogger builds the process logger. Terminal commands log to
// --log-file or nowhere so the alt screen stays clean; server commands
// log to stderr.
func newLogger(server bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case server:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "dodge",
	})
	dodge.SetLogger(logger)
	return logger, closeFn, nil
}

// playerName resolves --player, falling back to the OS user.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return core.DefaultConfig().Player
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Player = playerName()
	cfg.Difficulty = flagDifficulty
	return cfg
}

// keyBindings reads the key bindings from the dodge config.
func keyBindings(logger *log.Logger) (*tui.KeyMapper, time.Duration) {
	cfg, err := dodge.LoadConfig()
	if err != nil {
		logger.Warn("using default key bindings", "error", err)
		cfg = config.DefaultDodgeConfig()
	}
	return tui.NewKeyMapper(cfg.Input), time.Duration(cfg.Input.HoldMs) * time.Millisecond
}

// openStore opens the score database, or returns nil with a warning so
// the game still runs without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
