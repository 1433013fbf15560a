package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var repoRe = regexp.MustCompile(`^[^/\s]+/[^/\s]+$`)

// Config holds hybridctl's own settings. This is the console's configuration,
// not the daemon's mount Config; those belong to internal/daemon.
type Config struct {
	// Daemon integration.
	DaemonBinary string
	LogFile      string
	StateFile    string
	RescueFile   string
	ModuleDir    string
	CallTimeout  time.Duration

	// Info tab.
	GitHubRepo   string // "owner/name"
	CachePath    string
	CacheTTL     time.Duration
	StoragePoll  time.Duration
	ToastTimeout time.Duration

	// UI.
	AccentOverride string // "#rrggbb", skips the daemon accent probe
	AppLogFile     string // hybridctl's own log; the terminal belongs to the TUI
	Verbose        bool
}

// Default returns the config used when no environment overrides are set.
func Default() Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return Config{
		DaemonBinary: "meta-hybrid",
		LogFile:      "/data/adb/meta-hybrid/daemon.log",
		StateFile:    "/data/adb/meta-hybrid/run/daemon_state.json",
		RescueFile:   "/data/adb/meta-hybrid/rescue_notice",
		ModuleDir:    "/data/adb/modules",
		CallTimeout:  10 * time.Second,

		GitHubRepo:   "meta-hybrid/meta-hybrid",
		CachePath:    filepath.Join(cacheDir, "hybridctl", "cache.db"),
		CacheTTL:     time.Hour,
		StoragePoll:  5 * time.Second,
		ToastTimeout: 4 * time.Second,

		AppLogFile: filepath.Join(cacheDir, "hybridctl", "hybridctl.log"),
	}
}

// FromEnv returns Default overridden by HYBRIDCTL_* variables. godotenv
// autoload in main makes a local .env file part of the environment first.
func FromEnv() Config {
	c := Default()
	envString(&c.DaemonBinary, "HYBRIDCTL_DAEMON_BIN")
	envString(&c.LogFile, "HYBRIDCTL_DAEMON_LOG")
	envString(&c.StateFile, "HYBRIDCTL_DAEMON_STATE")
	envString(&c.RescueFile, "HYBRIDCTL_RESCUE_FILE")
	envString(&c.ModuleDir, "HYBRIDCTL_MODULE_DIR")
	envString(&c.GitHubRepo, "HYBRIDCTL_REPO")
	envString(&c.CachePath, "HYBRIDCTL_CACHE")
	envString(&c.AccentOverride, "HYBRIDCTL_ACCENT")
	envString(&c.AppLogFile, "HYBRIDCTL_LOG")
	envDuration(&c.CacheTTL, "HYBRIDCTL_CACHE_TTL")
	envDuration(&c.StoragePoll, "HYBRIDCTL_STORAGE_POLL")
	envBool(&c.Verbose, "HYBRIDCTL_VERBOSE")
	return c
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func envBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate checks the fields that would otherwise fail deep inside a call.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DaemonBinary, validation.Required),
		validation.Field(&c.GitHubRepo, validation.Required,
			validation.Match(repoRe).Error("must be owner/name")),
		validation.Field(&c.CachePath, validation.Required),
		validation.Field(&c.CacheTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.StoragePoll, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.ToastTimeout, validation.Required, validation.Min(time.Second)),
	)
}

// RepoOwnerName splits GitHubRepo; Validate has already enforced the shape.
func (c Config) RepoOwnerName() (string, string) {
	for i := 0; i < len(c.GitHubRepo); i++ {
		if c.GitHubRepo[i] == '/' {
			return c.GitHubRepo[:i], c.GitHubRepo[i+1:]
		}
	}
	return c.GitHubRepo, ""
}
