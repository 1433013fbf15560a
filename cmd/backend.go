package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"hybridctl/internal/cache"
	"hybridctl/internal/config"
	"hybridctl/internal/daemon"
	"hybridctl/internal/github"
)

// loadConfig merges environment settings with command-line overrides.
func loadConfig() (config.Config, error) {
	cfg := config.FromEnv()
	if flagDaemonBin != "" {
		cfg.DaemonBinary = flagDaemonBin
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagRepo != "" {
		cfg.GitHubRepo = flagRepo
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupLogging routes hybridctl's own log to a file. Stdout belongs to the
// TUI and the status report, stderr to the MCP banner, so neither is an
// option here. A failed open degrades to a discard handler rather than
// polluting the terminal.
func setupLogging(cfg config.Config) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	if cfg.AppLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.AppLogFile), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.AppLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
			}
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// buildClient picks the backend: the real daemon when it answers a probe,
// the mock otherwise. The bool reports which one the caller got.
func buildClient(ctx context.Context, cfg config.Config) (daemon.Client, bool) {
	if flagMock {
		return daemon.NewMockClient(), true
	}

	exec := daemon.NewExecClient(daemon.ExecOptions{
		Binary:     cfg.DaemonBinary,
		LogFile:    cfg.LogFile,
		StateFile:  cfg.StateFile,
		RescueFile: cfg.RescueFile,
		ModuleDir:  cfg.ModuleDir,
		Timeout:    cfg.CallTimeout,
	})

	probeCtx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	defer cancel()
	if err := exec.Probe(probeCtx); err != nil {
		slog.Warn("daemon unreachable, falling back to mock data",
			"binary", cfg.DaemonBinary, "err", err)
		return daemon.NewMockClient(), true
	}
	return exec, false
}

// buildContrib wires the contributor service with its bbolt cache. Only the
// TUI calls this; the cache file takes an exclusive lock, so subcommands
// that never show contributors must not open it.
func buildContrib(cfg config.Config) (*github.Service, func()) {
	owner, name := cfg.RepoOwnerName()
	fetcher := github.NewFetcher(owner, name, os.Getenv("GITHUB_TOKEN"))

	store, err := cache.Open(cfg.CachePath, cfg.CacheTTL)
	if err != nil {
		slog.Warn("contributor cache unavailable, fetching uncached",
			"path", cfg.CachePath, "err", err)
		return github.NewService(fetcher, nil), func() {}
	}
	return github.NewService(fetcher, store), func() { _ = store.Close() }
}
