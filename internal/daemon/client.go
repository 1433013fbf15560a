package daemon

import (
	"context"
	"errors"
)

// ErrUnavailable means the daemon binary could not be found or executed.
// Callers fall back to the mock backend when they see it at startup.
var ErrUnavailable = errors.New("meta-hybrid daemon unavailable")

// Client is the uniform boundary to the meta-hybrid daemon. Every call is
// synchronous from the caller's goroutine but cheap to wrap in a tea.Cmd;
// every call may fail and failures propagate as errors, never as silently
// substituted defaults. Implementations must be swappable without caller
// changes: the UI depends on this contract, never on which backend answers.
type Client interface {
	// LoadConfig fetches the daemon's current mount configuration.
	LoadConfig(ctx context.Context) (Config, error)
	// SaveConfig persists the full config object; there is no
	// partial-field update on the wire.
	SaveConfig(ctx context.Context, cfg Config) error

	// ScanModules performs a full rescan of daemon-visible modules.
	ScanModules(ctx context.Context) ([]Module, error)
	// SaveModules persists the whole list. Only Mode is expected to have
	// changed, but the full objects round-trip.
	SaveModules(ctx context.Context, mods []Module) error

	// ReadLogs returns the daemon log as one raw blob; the caller splits
	// and classifies it.
	ReadLogs(ctx context.Context) (string, error)

	StorageUsage(ctx context.Context) (StorageUsage, error)
	SystemInfo(ctx context.Context) (SystemInfo, error)
	// ActiveMounts lists the module IDs the daemon currently has mounted.
	ActiveMounts(ctx context.Context) ([]string, error)

	// Conflicts reports paths contended by multiple modules.
	Conflicts(ctx context.Context) ([]ConflictEntry, error)
	// Diagnostics runs the daemon's pre-mount plan check.
	Diagnostics(ctx context.Context) ([]Diagnostic, error)

	// OpenLink opens an external URL on the host; side effect only.
	OpenLink(ctx context.Context, url string) error
	// AccentColor returns the system accent as "#rrggbb". It is a theming
	// hint: callers keep their default palette when it fails.
	AccentColor(ctx context.Context) (string, error)
	Version(ctx context.Context) (string, error)

	// RescueNotice returns the bootloop-recovery notice the daemon leaves
	// for the admin UI, or "" when there is none.
	RescueNotice(ctx context.Context) (string, error)
	DismissRescueNotice(ctx context.Context) error
}
