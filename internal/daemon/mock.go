package daemon

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MockClient is the in-memory backend used when no daemon is reachable and in
// tests. It simulates per-call latency so loading states actually render, and
// its save calls mutate the fixture so load/save round-trips behave like the
// real thing.
type MockClient struct {
	mu        sync.Mutex
	latency   time.Duration
	cfg       Config
	modules   []Module
	logBlob   string
	storage   StorageUsage
	sysInfo   SystemInfo
	conflicts []ConflictEntry
	diags     []Diagnostic
	notice    string
	accent    string
	version   string
	opened    []string
	errs      map[string]error
}

// NewMockClient returns a mock seeded with a plausible device fixture.
func NewMockClient() *MockClient {
	mods := []Module{
		{ID: "zygisk_lsposed", Name: "Zygisk - LSPosed", Version: "v1.9.2", Author: "LSPosed Developers", Description: "Another enhanced implementation of Xposed Framework.", Mode: ModeAuto, Enabled: true, Mounted: true},
		{ID: "playintegrityfix", Name: "Play Integrity Fix", Version: "v17.8", Author: "chiteroman", Description: "Fix Play Integrity verdicts on modified devices.", Mode: ModeMagic, Enabled: true, Mounted: true},
		{ID: "ksu_webui_standalone", Name: "KSU WebUI", Version: "v1.2.0", Author: "mmrl", Description: "Standalone WebUI runtime for module pages.", Mode: ModeAuto, Enabled: true, Mounted: false},
		{ID: "bindhosts", Name: "bindhosts", Version: "v1.4.1", Author: "backslashxx", Description: "Systemless hosts for adblocking.", Mode: ModeAuto, Enabled: false, Mounted: false},
		{ID: "tricky_store", Name: "Tricky Store", Version: "v1.2.1", Author: "5ec1cff", Description: "Keystore patching for attestation.", Mode: ModeIgnore, Enabled: true, Mounted: false},
	}

	logBlob := strings.Join([]string{
		"[INFO] Meta-Hybrid Mount Starting (Refactored Core with Tracing)...",
		"[INFO] Storage backend ready: erofs at /debug_ramdisk",
		"[INFO] Scanned 5 active modules.",
		"[INFO] Generating mount plan...",
		"[INFO] Plan: 3 OverlayFS ops, 1 Magic modules",
		"[DEBUG] lowerdir chain for /system: 2 layers",
		"[WARN] Namespace Detach (try_umount) is DISABLED.",
		"[INFO] Mounting /system [OVERLAY] (2 layers)",
		"[INFO] Mounting /vendor [OVERLAY] (1 layers)",
		"[WARN] OverlayFS failed for /product: device busy. Triggering fallback.",
		"[INFO] >> Phase 4: Magic Mount (Complementary Fallback) for 1 modules...",
		"[ERROR] Dead absolute symlink: /system/bin/late_start -> /product/bin/gone",
		"[INFO] Meta-Hybrid Mount Completed.",
	}, "\n")

	return &MockClient{
		latency: 350 * time.Millisecond,
		cfg:     DefaultConfig(),
		modules: mods,
		logBlob: logBlob,
		storage: StorageUsage{Size: 2 << 30, Used: 731 << 20, Percent: 35.7, Type: "erofs"},
		sysInfo: SystemInfo{
			Kernel:       "5.15.148-android13-8-gd7a7f6e2f1b0",
			SELinux:      "Enforcing",
			MountBase:    "/debug_ramdisk",
			ActiveMounts: 2,
		},
		conflicts: []ConflictEntry{
			{Partition: "system", RelativePath: "etc/hosts", ContendingModules: []string{"bindhosts", "zygisk_lsposed"}},
		},
		diags: []Diagnostic{
			{Level: DiagWarning, Context: "zygisk_lsposed", Message: "Dead absolute symlink: /system/bin/late_start -> /product/bin/gone"},
			{Level: DiagInfo, Context: "product", Message: "Target mounted via magic fallback"},
		},
		accent:  "#A8C7FA",
		version: "v2.1.0-mock",
		errs:    map[string]error{},
	}
}

// WithLatency overrides the simulated delay; tests pass 0.
func (m *MockClient) WithLatency(d time.Duration) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
	return m
}

// Fail makes the named operation return err until cleared with nil. Keys:
// "config.load", "config.save", "modules.scan", "modules.save", "logs",
// "storage", "sysinfo", "mounts", "conflicts", "diagnostics", "link",
// "accent", "version", "notice".
func (m *MockClient) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// SetRescueNotice seeds the bootloop-recovery notice.
func (m *MockClient) SetRescueNotice(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notice = text
}

// OpenedLinks reports the URLs passed to OpenLink, oldest first.
func (m *MockClient) OpenedLinks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

func (m *MockClient) wait(ctx context.Context, op string) error {
	m.mu.Lock()
	d := m.latency
	err := m.errs[op]
	m.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (m *MockClient) LoadConfig(ctx context.Context) (Config, error) {
	if err := m.wait(ctx, "config.load"); err != nil {
		return Config{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.Clone(), nil
}

func (m *MockClient) SaveConfig(ctx context.Context, cfg Config) error {
	if err := m.wait(ctx, "config.save"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg.Clone()
	return nil
}

func (m *MockClient) ScanModules(ctx context.Context) ([]Module, error) {
	if err := m.wait(ctx, "modules.scan"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return CloneModules(m.modules), nil
}

func (m *MockClient) SaveModules(ctx context.Context, mods []Module) error {
	if err := m.wait(ctx, "modules.save"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules = CloneModules(mods)
	return nil
}

func (m *MockClient) ReadLogs(ctx context.Context) (string, error) {
	if err := m.wait(ctx, "logs"); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logBlob, nil
}

func (m *MockClient) StorageUsage(ctx context.Context) (StorageUsage, error) {
	if err := m.wait(ctx, "storage"); err != nil {
		return StorageUsage{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storage, nil
}

func (m *MockClient) SystemInfo(ctx context.Context) (SystemInfo, error) {
	if err := m.wait(ctx, "sysinfo"); err != nil {
		return SystemInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sysInfo, nil
}

func (m *MockClient) ActiveMounts(ctx context.Context) ([]string, error) {
	if err := m.wait(ctx, "mounts"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, mod := range m.modules {
		if mod.Mounted {
			ids = append(ids, mod.ID)
		}
	}
	return ids, nil
}

func (m *MockClient) Conflicts(ctx context.Context) ([]ConflictEntry, error) {
	if err := m.wait(ctx, "conflicts"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConflictEntry(nil), m.conflicts...), nil
}

func (m *MockClient) Diagnostics(ctx context.Context) ([]Diagnostic, error) {
	if err := m.wait(ctx, "diagnostics"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Diagnostic(nil), m.diags...), nil
}

func (m *MockClient) OpenLink(ctx context.Context, url string) error {
	if err := m.wait(ctx, "link"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, url)
	return nil
}

func (m *MockClient) AccentColor(ctx context.Context) (string, error) {
	if err := m.wait(ctx, "accent"); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accent, nil
}

func (m *MockClient) Version(ctx context.Context) (string, error) {
	if err := m.wait(ctx, "version"); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *MockClient) RescueNotice(ctx context.Context) (string, error) {
	if err := m.wait(ctx, "notice"); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notice, nil
}

func (m *MockClient) DismissRescueNotice(ctx context.Context) error {
	if err := m.wait(ctx, "notice"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notice = ""
	return nil
}
