package tui

import (
	"time"

	"hybridctl/internal/daemon"
	"hybridctl/internal/github"
)

// Result messages. Each load/save result carries the sequence number of the
// request that produced it; the controller drops results tagged with a stale
// sequence so the last request always wins.

type ConfigLoadedMsg struct {
	Seq    int
	Config daemon.Config
	Err    error
}

type ConfigSavedMsg struct {
	Seq    int
	Config daemon.Config
	CSV    string
	Err    error
}

type ModulesLoadedMsg struct {
	Seq     int
	Modules []daemon.Module
	Err     error
}

type ModulesSavedMsg struct {
	Seq     int
	Modules []daemon.Module
	Err     error
}

type LogsLoadedMsg struct {
	Seq  int
	Blob string
	Err  error
}

type StorageLoadedMsg struct {
	Seq        int
	Usage      daemon.StorageUsage
	Background bool
	Err        error
}

type SystemInfoLoadedMsg struct {
	Seq  int
	Info daemon.SystemInfo
	Err  error
}

type MountsLoadedMsg struct {
	Seq    int
	Mounts []string
	Err    error
}

type ConflictsLoadedMsg struct {
	Seq       int
	Conflicts []daemon.ConflictEntry
	Err       error
}

type DiagnosticsLoadedMsg struct {
	Seq         int
	Diagnostics []daemon.Diagnostic
	Err         error
}

type ContributorsLoadedMsg struct {
	Seq          int
	Contributors []github.Contributor
	FromCache    bool
	Err          error
}

// One-shot startup results; no fencing needed.
type AccentColorMsg struct {
	Color string
	Err   error
}

type VersionLoadedMsg struct {
	Version string
	Err     error
}

type RescueNoticeMsg struct {
	Notice string
	Err    error
}

type NoticeDismissedMsg struct {
	Err error
}

type LinkOpenedMsg struct {
	URL string
	Err error
}

type ToastExpiredMsg struct {
	ID int
}

type StorageTickMsg time.Time
type AnimateMsg time.Time
