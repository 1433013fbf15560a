package daemon

// ============================================================================
// WIRE TYPES
// ============================================================================
// JSON tags follow the daemon's serialization; the daemon owns the format and
// this package only mirrors it.

// Config is the daemon's mount configuration as served by `show-config` and
// accepted back by `save-config`.
type Config struct {
	Verbose       bool     `json:"verbose"`
	ForceExt4     bool     `json:"force_ext4"`
	EnableNuke    bool     `json:"enable_nuke"`
	DisableUmount bool     `json:"disable_umount"`
	ModuleDir     string   `json:"moduledir"`
	TempDir       string   `json:"tempdir"`
	MountSource   string   `json:"mountsource"`
	Partitions    []string `json:"partitions"`
}

// BuiltinPartitions is the partition set the daemon handles out of the box.
var BuiltinPartitions = []string{"system", "vendor", "product", "system_ext", "odm", "oem", "apex"}

// DefaultConfig mirrors the daemon's `gen-config` output.
func DefaultConfig() Config {
	return Config{
		ModuleDir:   "/data/adb/modules",
		MountSource: "KSU",
		Partitions:  append([]string(nil), BuiltinPartitions...),
	}
}

// Clone returns a deep copy; the partition slice is never shared.
func (c Config) Clone() Config {
	c.Partitions = append([]string(nil), c.Partitions...)
	return c
}

// Equal reports structural equality. Partition order matters: the daemon
// treats the list as ordered, so a reordering counts as a change.
func (c Config) Equal(o Config) bool {
	if c.Verbose != o.Verbose || c.ForceExt4 != o.ForceExt4 ||
		c.EnableNuke != o.EnableNuke || c.DisableUmount != o.DisableUmount ||
		c.ModuleDir != o.ModuleDir || c.TempDir != o.TempDir ||
		c.MountSource != o.MountSource {
		return false
	}
	if len(c.Partitions) != len(o.Partitions) {
		return false
	}
	for i := range c.Partitions {
		if c.Partitions[i] != o.Partitions[i] {
			return false
		}
	}
	return true
}

// ValidPath accepts empty values (daemon falls back to its default) and
// absolute paths longer than a bare "/".
func ValidPath(p string) bool {
	if p == "" {
		return true
	}
	return p[0] == '/' && len(p) > 1
}

// MountMode selects the mounting strategy for a module. The semantics live in
// the daemon; this layer treats the values as opaque selectors.
type MountMode string

const (
	ModeAuto   MountMode = "auto"
	ModeMagic  MountMode = "magic"
	ModeIgnore MountMode = "ignore"
)

func (m MountMode) Valid() bool {
	switch m {
	case ModeAuto, ModeMagic, ModeIgnore:
		return true
	}
	return false
}

// ModuleRules carries the daemon's per-module rule file verbatim. The rules
// vocabulary spells ModeAuto as "overlay"; translation happens at the exec
// boundary, not here.
type ModuleRules struct {
	DefaultMode string            `json:"default_mode"`
	Paths       map[string]string `json:"paths,omitempty"`
}

// Module is one entry of the daemon's `modules` listing.
type Module struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Version     string       `json:"version"`
	Author      string       `json:"author"`
	Description string       `json:"description"`
	Mode        MountMode    `json:"mode"`
	Enabled     bool         `json:"enabled"`
	Mounted     bool         `json:"is_mounted"`
	Rules       *ModuleRules `json:"rules,omitempty"`
}

// CloneModules copies the list so view edits never alias a saved baseline.
func CloneModules(in []Module) []Module {
	if in == nil {
		return nil
	}
	out := make([]Module, len(in))
	copy(out, in)
	return out
}

// StorageUsage is the daemon's `storage` report. Type is the backing store
// the daemon picked at boot: tmpfs, erofs or ext4.
type StorageUsage struct {
	Size    uint64  `json:"size"`
	Used    uint64  `json:"used"`
	Percent float64 `json:"percent"`
	Type    string  `json:"type"`
}

// SystemInfo is the host summary for the Info tab.
type SystemInfo struct {
	Kernel       string `json:"kernel"`
	SELinux      string `json:"selinux"`
	MountBase    string `json:"mount_base"`
	ActiveMounts int    `json:"active_mounts"`
}

// ConflictEntry records one path claimed by more than one module, as computed
// by the daemon's `conflicts` subcommand.
type ConflictEntry struct {
	Partition         string   `json:"partition"`
	RelativePath      string   `json:"relative_path"`
	ContendingModules []string `json:"contending_modules"`
}

// ConflictReport wraps the entries on the wire.
type ConflictReport struct {
	Details []ConflictEntry `json:"details"`
}

// Diagnostic levels as emitted by `diagnostics`.
const (
	DiagInfo     = "info"
	DiagWarning  = "warning"
	DiagCritical = "critical"
)

// Diagnostic is one issue from the daemon's pre-mount plan check.
type Diagnostic struct {
	Level   string `json:"level"`
	Context string `json:"context"`
	Message string `json:"message"`
}

// runtimeState mirrors the daemon's run/daemon_state.json.
type runtimeState struct {
	StorageMode    string   `json:"storage_mode"`
	MountPoint     string   `json:"mount_point"`
	OverlayModules []string `json:"overlay_modules"`
	MagicModules   []string `json:"magic_modules"`
	NukeActive     bool     `json:"nuke_active"`
}
