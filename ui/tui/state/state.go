package state

import (
	"time"

	"hybridctl/internal/daemon"
	"hybridctl/internal/github"
)

type Page int

const (
	PageConfig Page = iota
	PageModules
	PageLogs
	PageInfo
)

// PageCount is the number of tabs; pages cycle modulo this.
const PageCount = 4

func (p Page) String() string {
	switch p {
	case PageConfig:
		return "Config"
	case PageModules:
		return "Modules"
	case PageLogs:
		return "Logs"
	case PageInfo:
		return "Info"
	}
	return "Unknown"
}

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification. The ID ties the auto-dismiss timer to
// the exact toast it was armed for.
type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

// LoadFlags tracks which resources have a fetch in flight.
type LoadFlags struct {
	Config       bool
	Modules      bool
	Logs         bool
	Storage      bool
	SysInfo      bool
	Mounts       bool
	Conflicts    bool
	Diagnostics  bool
	Contributors bool
}

// SaveFlags tracks in-flight writes; saves and loads never share a flag.
type SaveFlags struct {
	Config  bool
	Modules bool
}

// AppState holds the current snapshot of everything the views render. It is
// constructed once by the controller and threaded into every Render call;
// there is no global instance.
type AppState struct {
	CurrentPage Page

	// Config tab. The baseline is the last loaded or saved snapshot; the
	// partition list is edited as one CSV field and only parsed on save.
	Config         daemon.Config
	ConfigBaseline daemon.Config
	PartitionsCSV  string
	PartitionsBase string

	// Modules tab. ModeBaseline remembers each module's mode at scan time
	// so unsaved mode edits are detectable per id.
	Modules      []daemon.Module
	ModeBaseline map[string]daemon.MountMode
	Conflicts    []daemon.ConflictEntry

	Logs []daemon.LogLine

	// Info tab.
	Storage        daemon.StorageUsage
	StorageHistory []float64
	SysInfo        daemon.SystemInfo
	Mounts         []string
	Diagnostics    []daemon.Diagnostic
	Contributors   []github.Contributor
	ContribCached  bool
	RescueNotice   string

	DaemonVersion string
	UIVersion     string
	Accent        string
	Mock          bool

	// Filter inputs survive tab switches; results are recomputed per render.
	ModuleQuery string
	ModuleMode  string
	LogQuery    string
	LogLevel    string

	Loading    LoadFlags
	Saving     SaveFlags
	Toasts     []Toast
	LastUpdate time.Time
}

// New returns a state ready for the first render: config tab up front,
// filters wide open.
func New() AppState {
	return AppState{
		CurrentPage: PageConfig,
		ModuleMode:  ModeAll,
		LogLevel:    LevelAll,
	}
}

// SetConfig installs a freshly loaded config and resets the dirty baseline.
func (s *AppState) SetConfig(cfg daemon.Config) {
	s.Config = cfg.Clone()
	s.PartitionsCSV = FormatPartitions(cfg.Partitions)
	s.MarkConfigClean()
}

// MarkConfigClean snapshots the live config as the new baseline, as after a
// successful save.
func (s *AppState) MarkConfigClean() {
	s.ConfigBaseline = s.Config.Clone()
	s.PartitionsBase = s.PartitionsCSV
}

// ConfigDirty compares the live snapshot against the baseline. Every field
// participates, the partition CSV included, and partition order matters.
func (s *AppState) ConfigDirty() bool {
	return !s.Config.Equal(s.ConfigBaseline) || s.PartitionsCSV != s.PartitionsBase
}

// SetModules installs a scan result and resets the per-module mode baseline.
func (s *AppState) SetModules(mods []daemon.Module) {
	s.Modules = daemon.CloneModules(mods)
	s.MarkModulesClean()
}

// MarkModulesClean records the current mode of every module as saved.
func (s *AppState) MarkModulesClean() {
	base := make(map[string]daemon.MountMode, len(s.Modules))
	for _, m := range s.Modules {
		base[m.ID] = m.Mode
	}
	s.ModeBaseline = base
}

// ModulesDirty reports whether any module's mode differs from its baseline.
func (s *AppState) ModulesDirty() bool {
	for _, m := range s.Modules {
		if mode, ok := s.ModeBaseline[m.ID]; !ok || mode != m.Mode {
			return true
		}
	}
	return false
}

// CycleMode advances the mount mode of the module with the given id.
func (s *AppState) CycleMode(id string) {
	for i := range s.Modules {
		if s.Modules[i].ID == id {
			s.Modules[i].Mode = NextMode(s.Modules[i].Mode)
			return
		}
	}
}

// NextMode steps auto → magic → ignore → auto.
func NextMode(m daemon.MountMode) daemon.MountMode {
	switch m {
	case daemon.ModeAuto:
		return daemon.ModeMagic
	case daemon.ModeMagic:
		return daemon.ModeIgnore
	default:
		return daemon.ModeAuto
	}
}

// SetLogs replaces the log lines atomically; there is no incremental append.
func (s *AppState) SetLogs(blob string) {
	s.Logs = daemon.ParseLogBlob(blob)
}

// storageWindow is how many poll samples the sparkline keeps.
const storageWindow = 31

// PushStorage records a storage sample and extends the usage history.
func (s *AppState) PushStorage(u daemon.StorageUsage) {
	s.Storage = u
	s.StorageHistory = append(s.StorageHistory, u.Percent)
	if len(s.StorageHistory) > storageWindow {
		s.StorageHistory = s.StorageHistory[1:]
	}
}

func (s *AppState) PushToast(id int, kind ToastKind, message string) {
	s.Toasts = append(s.Toasts, Toast{ID: id, Kind: kind, Message: message})
}

// DropToast removes the toast with the given id; expired timers for already
// dropped toasts are no-ops.
func (s *AppState) DropToast(id int) {
	out := s.Toasts[:0]
	for _, t := range s.Toasts {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.Toasts = out
}
