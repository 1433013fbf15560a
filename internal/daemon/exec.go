package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"hybridctl/internal/hostinfo"
)

// Daemon-owned paths; overridable for tests and odd installs.
const (
	DefaultBinary     = "meta-hybrid"
	DefaultLogFile    = "/data/adb/meta-hybrid/daemon.log"
	DefaultStateFile  = "/data/adb/meta-hybrid/run/daemon_state.json"
	DefaultRescueFile = "/data/adb/meta-hybrid/rescue_notice"
	DefaultModuleDir  = "/data/adb/modules"
)

var accentRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ExecOptions configures the real backend. Zero fields take the defaults
// above; Logger defaults to slog.Default().
type ExecOptions struct {
	Binary     string
	LogFile    string
	StateFile  string
	RescueFile string
	ModuleDir  string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// ExecClient talks to the daemon by invoking its CLI and parsing JSON stdout,
// and reads the few files the daemon leaves on disk for its admin UI (log,
// runtime state, rescue notice). It holds no state of its own.
type ExecClient struct {
	opts ExecOptions
}

func NewExecClient(opts ExecOptions) *ExecClient {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.LogFile == "" {
		opts.LogFile = DefaultLogFile
	}
	if opts.StateFile == "" {
		opts.StateFile = DefaultStateFile
	}
	if opts.RescueFile == "" {
		opts.RescueFile = DefaultRescueFile
	}
	if opts.ModuleDir == "" {
		opts.ModuleDir = DefaultModuleDir
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ExecClient{opts: opts}
}

// Probe reports whether the daemon binary is callable. Callers use it once at
// startup to decide between this backend and the mock.
func (c *ExecClient) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(c.opts.Binary); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := c.run(ctx, "--version"); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *ExecClient) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.opts.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.opts.Logger.Debug("daemon call",
		"args", strings.Join(args, " "),
		"took", time.Since(start),
		"err", err,
	)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("daemon %s: %s: %w", args[0], firstLine(msg), err)
		}
		return nil, fmt.Errorf("daemon %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (c *ExecClient) LoadConfig(ctx context.Context) (Config, error) {
	out, err := c.run(ctx, "show-config")
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(out, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse show-config output: %w", err)
	}
	return cfg, nil
}

func (c *ExecClient) SaveConfig(ctx context.Context, cfg Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = c.run(ctx, "save-config", "--payload", string(payload))
	return err
}

func (c *ExecClient) ScanModules(ctx context.Context) ([]Module, error) {
	out, err := c.run(ctx, "modules")
	if err != nil {
		return nil, err
	}
	var mods []Module
	if err := json.Unmarshal(out, &mods); err != nil {
		return nil, fmt.Errorf("parse modules output: %w", err)
	}
	// The listing omits the enable flag; it lives as a marker file next to
	// the module.
	for i := range mods {
		_, statErr := os.Stat(filepath.Join(c.opts.ModuleDir, mods[i].ID, "disable"))
		mods[i].Enabled = statErr != nil
	}
	return mods, nil
}

// rulesVocab translates the listing's mode names into the rules-file
// vocabulary, where auto is spelled "overlay".
func rulesVocab(m MountMode) string {
	if m == ModeAuto {
		return "overlay"
	}
	return string(m)
}

func (c *ExecClient) SaveModules(ctx context.Context, mods []Module) error {
	for _, m := range mods {
		if !m.Mode.Valid() {
			return fmt.Errorf("module %s: unknown mode %q", m.ID, m.Mode)
		}
		rules := ModuleRules{DefaultMode: rulesVocab(m.Mode)}
		if m.Rules != nil {
			rules.Paths = m.Rules.Paths
		}
		payload, err := json.Marshal(rules)
		if err != nil {
			return fmt.Errorf("encode rules for %s: %w", m.ID, err)
		}
		if _, err := c.run(ctx, "save-rules", "--module", m.ID, "--payload", string(payload)); err != nil {
			return err
		}
	}
	return nil
}

func (c *ExecClient) ReadLogs(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(c.opts.LogFile)
	if err != nil {
		return "", fmt.Errorf("read daemon log: %w", err)
	}
	return string(raw), nil
}

func (c *ExecClient) StorageUsage(ctx context.Context) (StorageUsage, error) {
	out, err := c.run(ctx, "storage")
	if err != nil {
		return StorageUsage{}, err
	}
	var usage StorageUsage
	if err := json.Unmarshal(out, &usage); err != nil {
		return StorageUsage{}, fmt.Errorf("parse storage output: %w", err)
	}
	return usage, nil
}

// readState loads the daemon's runtime state. A missing file is not an
// error: the daemon simply has not completed a boot yet.
func (c *ExecClient) readState() (runtimeState, error) {
	raw, err := os.ReadFile(c.opts.StateFile)
	if errors.Is(err, os.ErrNotExist) {
		return runtimeState{}, nil
	}
	if err != nil {
		return runtimeState{}, fmt.Errorf("read daemon state: %w", err)
	}
	var st runtimeState
	if err := json.Unmarshal(raw, &st); err != nil {
		return runtimeState{}, fmt.Errorf("parse daemon state: %w", err)
	}
	return st, nil
}

func (c *ExecClient) SystemInfo(ctx context.Context) (SystemInfo, error) {
	hi, err := hostinfo.Probe(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("probe host: %w", err)
	}
	st, err := c.readState()
	if err != nil {
		return SystemInfo{}, err
	}
	return SystemInfo{
		Kernel:       hi.Kernel,
		SELinux:      hi.SELinux,
		MountBase:    st.MountPoint,
		ActiveMounts: len(st.OverlayModules) + len(st.MagicModules),
	}, nil
}

func (c *ExecClient) ActiveMounts(ctx context.Context) ([]string, error) {
	st, err := c.readState()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var ids []string
	for _, id := range append(append([]string(nil), st.OverlayModules...), st.MagicModules...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *ExecClient) Conflicts(ctx context.Context) ([]ConflictEntry, error) {
	out, err := c.run(ctx, "conflicts")
	if err != nil {
		return nil, err
	}
	var report ConflictReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("parse conflicts output: %w", err)
	}
	return report.Details, nil
}

func (c *ExecClient) Diagnostics(ctx context.Context) ([]Diagnostic, error) {
	out, err := c.run(ctx, "diagnostics")
	if err != nil {
		return nil, err
	}
	var diags []Diagnostic
	if err := json.Unmarshal(out, &diags); err != nil {
		return nil, fmt.Errorf("parse diagnostics output: %w", err)
	}
	return diags, nil
}

func (c *ExecClient) OpenLink(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	// Android handles VIEW intents; desktop hosts get xdg-open.
	if _, err := exec.LookPath("am"); err == nil {
		out, err := exec.CommandContext(ctx, "am", "start", "-a", "android.intent.action.VIEW", "-d", url).CombinedOutput()
		if err != nil {
			return fmt.Errorf("am start: %s: %w", firstLine(strings.TrimSpace(string(out))), err)
		}
		return nil
	}
	if _, err := exec.LookPath("xdg-open"); err == nil {
		if err := exec.CommandContext(ctx, "xdg-open", url).Run(); err != nil {
			return fmt.Errorf("xdg-open: %w", err)
		}
		return nil
	}
	return errors.New("no URL handler available on this host")
}

func (c *ExecClient) AccentColor(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "system-action", "--action", "syscolor")
	if err != nil {
		return "", err
	}
	color := strings.TrimSpace(string(out))
	if !accentRe.MatchString(color) {
		return "", fmt.Errorf("unexpected accent color %q", color)
	}
	return color, nil
}

func (c *ExecClient) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	// The daemon prints "meta-hybrid <version>".
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) >= 2 {
		return fields[len(fields)-1], nil
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *ExecClient) RescueNotice(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(c.opts.RescueFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read rescue notice: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (c *ExecClient) DismissRescueNotice(ctx context.Context) error {
	err := os.Remove(c.opts.RescueFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dismiss rescue notice: %w", err)
	}
	return nil
}
