package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/dshills/autograde/internal/config"
)

// env is the per-invocation state shared by subcommands.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	color  bool
	stdout io.Writer
	stderr io.Writer
}

func loadEnv(rf *rootFlags, stdout, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return nil, exitError(exitPolicy, "failed to load config: %v", err)
	}
	if rf.logLevel != "" {
		cfg.LogLevel = rf.logLevel
	}
	log, err := newLogger(stderr, cfg.LogLevel, rf.verbose)
	if err != nil {
		return nil, exitError(exitPolicy, "%v", err)
	}
	color, err := useColor(rf.color, cfg.Output.Color, stdout)
	if err != nil {
		return nil, exitError(exitPolicy, "%v", err)
	}
	return &env{cfg: cfg, log: log, color: color, stdout: stdout, stderr: stderr}, nil
}

// newLogger builds a text logger on w. verbose raises the threshold to at
// least info.
func newLogger(w io.Writer, level string, verbose bool) (*slog.Logger, error) {
	l, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose && l > slog.LevelInfo {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// useColor resolves the --color mode. In auto mode colour needs both the
// config setting and a terminal on out.
func useColor(mode string, configured bool, out io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return configured && isTerminal(out), nil
	}
	return false, fmt.Errorf("invalid --color %q (want auto, on, or off)", mode)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
