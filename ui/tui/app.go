package tui

import (
	"fmt"
	"strings"
	"time"

	"hybridctl/internal/config"
	"hybridctl/internal/daemon"
	"hybridctl/internal/github"
	"hybridctl/ui/tui/components"
	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"
	"hybridctl/ui/tui/views"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Options wires the TUI to its backends.
type Options struct {
	Client    daemon.Client
	Contrib   *github.Service
	AppConfig config.Config
	Version   string
	Mock      bool
}

// seqCounters fence one request kind each: a result message whose Seq is
// behind the counter belongs to a superseded request of the same kind and is
// dropped. Loads and saves get separate counters so the newest request of
// either kind always lands and clears its in-flight flag, even when the other
// kind was issued in between.
type seqCounters struct {
	configLoad   int
	configSave   int
	modulesLoad  int
	modulesSave  int
	logs         int
	storage      int
	sysinfo      int
	mounts       int
	conflicts    int
	diagnostics  int
	contributors int
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	client  daemon.Client
	contrib *github.Service
	appCfg  config.Config
	state   state.AppState

	spinner      spinner.Model
	storageChart *components.StorageWidget

	// Config form inputs: module dir, temp dir, mount source, partitions.
	inputs [4]textinput.Model
	focus  int

	moduleFilter textinput.Model
	logFilter    textinput.Model
	filterFocus  bool

	moduleCursor  int
	logScrollBack int

	animCursor float64
	velocity   float64 // Physics velocity
	spring     harmonica.Spring

	seqs     seqCounters
	toastSeq int
	polling  bool

	mouseX   int
	mouseY   int
	quitting bool
	width    int
	height   int
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = width
	ti.CharLimit = 128
	return ti
}

func InitialModel(opts Options) MainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	chart := components.NewStorageWidget(40, 8)

	// Initialize physics spring for smooth tab cursor animation
	spring := harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9)

	st := state.New()
	st.UIVersion = opts.Version
	st.Mock = opts.Mock

	m := MainModel{
		client:       opts.Client,
		contrib:      opts.Contrib,
		appCfg:       opts.AppConfig,
		state:        st,
		spinner:      s,
		storageChart: chart,
		spring:       spring,
	}
	m.inputs[0] = newInput("/data/adb/modules", 32)
	m.inputs[1] = newInput("/debug_ramdisk", 32)
	m.inputs[2] = newInput("KSU", 24)
	m.inputs[3] = newInput("system, vendor, product", 48)
	m.moduleFilter = newInput("name or id", 24)
	m.logFilter = newInput("text", 24)

	if opts.AppConfig.AccentOverride != "" {
		styles.ApplyAccent(opts.AppConfig.AccentOverride)
		m.state.Accent = opts.AppConfig.AccentOverride
	}
	return m
}

func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()
	cmds := []tea.Cmd{
		m.spinner.Tick,
		animateCmd(),
		m.reloadConfig(),
		m.reloadModules(),
		versionCmd(m.client, m.timeout()),
		rescueNoticeCmd(m.client, m.timeout()),
	}
	if m.state.Accent == "" {
		cmds = append(cmds, accentColorCmd(m.client, m.timeout()))
	}
	return tea.Batch(cmds...)
}

func (m *MainModel) timeout() time.Duration {
	if m.appCfg.CallTimeout > 0 {
		return m.appCfg.CallTimeout
	}
	return 10 * time.Second
}

func (m *MainModel) repoURL() string {
	return "https://github.com/" + m.appCfg.GitHubRepo
}

func (m *MainModel) toast(kind state.ToastKind, message string) tea.Cmd {
	m.toastSeq++
	m.state.PushToast(m.toastSeq, kind, message)
	after := m.appCfg.ToastTimeout
	if after <= 0 {
		after = 4 * time.Second
	}
	return toastCmd(m.toastSeq, after)
}

// ============================================================================
// RELOAD HELPERS
// ============================================================================
// Each bumps the resource sequence, raises the loading flag and returns the
// fetch command.

func (m *MainModel) reloadConfig() tea.Cmd {
	m.seqs.configLoad++
	m.state.Loading.Config = true
	return loadConfigCmd(m.client, m.seqs.configLoad, m.timeout())
}

func (m *MainModel) reloadModules() tea.Cmd {
	m.seqs.modulesLoad++
	m.state.Loading.Modules = true
	m.seqs.conflicts++
	m.state.Loading.Conflicts = true
	return tea.Batch(
		loadModulesCmd(m.client, m.seqs.modulesLoad, m.timeout()),
		loadConflictsCmd(m.client, m.seqs.conflicts, m.timeout()),
	)
}

func (m *MainModel) reloadLogs() tea.Cmd {
	m.seqs.logs++
	m.state.Loading.Logs = true
	return loadLogsCmd(m.client, m.seqs.logs, m.timeout())
}

func (m *MainModel) refreshInfo() tea.Cmd {
	t := m.timeout()
	m.seqs.storage++
	m.state.Loading.Storage = true
	m.seqs.sysinfo++
	m.state.Loading.SysInfo = true
	m.seqs.mounts++
	m.state.Loading.Mounts = true
	m.seqs.diagnostics++
	m.state.Loading.Diagnostics = true

	cmds := []tea.Cmd{
		loadStorageCmd(m.client, m.seqs.storage, t, false),
		loadSystemInfoCmd(m.client, m.seqs.sysinfo, t),
		loadMountsCmd(m.client, m.seqs.mounts, t),
		loadDiagnosticsCmd(m.client, m.seqs.diagnostics, t),
	}
	if m.contrib != nil {
		m.seqs.contributors++
		m.state.Loading.Contributors = true
		// Pagination plus per-user lookups need more room than one call.
		cmds = append(cmds, loadContributorsCmd(m.contrib, m.seqs.contributors, 3*t))
	}
	if !m.polling {
		m.polling = true
		cmds = append(cmds, storageTickCmd(m.pollEvery()))
	}
	return tea.Batch(cmds...)
}

func (m *MainModel) pollEvery() time.Duration {
	if m.appCfg.StoragePoll > 0 {
		return m.appCfg.StoragePoll
	}
	return 5 * time.Second
}

func (m *MainModel) saveConfig() tea.Cmd {
	if !daemon.ValidPath(m.state.Config.ModuleDir) {
		return m.toast(state.ToastError, "Module dir must be an absolute path")
	}
	if !daemon.ValidPath(m.state.Config.TempDir) {
		return m.toast(state.ToastError, "Temp dir must be an absolute path")
	}
	cfg := m.state.Config.Clone()
	cfg.Partitions = state.ParsePartitions(m.state.PartitionsCSV)
	m.seqs.configSave++
	m.state.Saving.Config = true
	return saveConfigCmd(m.client, m.seqs.configSave, m.timeout(), cfg, m.state.PartitionsCSV)
}

func (m *MainModel) saveModules() tea.Cmd {
	m.seqs.modulesSave++
	m.state.Saving.Modules = true
	return saveModulesCmd(m.client, m.seqs.modulesSave, m.timeout(), daemon.CloneModules(m.state.Modules))
}

// ============================================================================
// UPDATE
// ============================================================================

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width/2 - 12; w > 10 {
			m.storageChart.Resize(w, 8)
		}
		return m, nil

	case AnimateMsg:
		m.animCursor, m.velocity = m.spring.Update(m.animCursor, m.velocity, float64(m.state.CurrentPage))
		return m, animateCmd()

	case StorageTickMsg:
		if m.quitting || m.state.CurrentPage != state.PageInfo {
			m.polling = false
			return m, nil
		}
		m.seqs.storage++
		return m, tea.Batch(
			loadStorageCmd(m.client, m.seqs.storage, m.timeout(), true),
			storageTickCmd(m.pollEvery()),
		)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConfigLoadedMsg:
		if msg.Seq != m.seqs.configLoad {
			return m, nil
		}
		m.state.Loading.Config = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Config load failed: %v", msg.Err))
		}
		m.state.SetConfig(msg.Config)
		m.syncInputsFromConfig()
		m.state.LastUpdate = time.Now()
		return m, nil

	case ConfigSavedMsg:
		if msg.Seq != m.seqs.configSave {
			return m, nil
		}
		m.state.Saving.Config = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Config save failed: %v", msg.Err))
		}
		// The sent snapshot becomes the baseline; edits made while the
		// save was in flight stay dirty.
		m.state.ConfigBaseline = msg.Config.Clone()
		m.state.PartitionsBase = msg.CSV
		m.state.Config.Partitions = append([]string(nil), msg.Config.Partitions...)
		return m, m.toast(state.ToastSuccess, "Configuration saved")

	case ModulesLoadedMsg:
		if msg.Seq != m.seqs.modulesLoad {
			return m, nil
		}
		m.state.Loading.Modules = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Module scan failed: %v", msg.Err))
		}
		m.state.SetModules(msg.Modules)
		m.clampModuleCursor()
		m.state.LastUpdate = time.Now()
		return m, nil

	case ModulesSavedMsg:
		if msg.Seq != m.seqs.modulesSave {
			return m, nil
		}
		m.state.Saving.Modules = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Module save failed: %v", msg.Err))
		}
		base := make(map[string]daemon.MountMode, len(msg.Modules))
		for _, mod := range msg.Modules {
			base[mod.ID] = mod.Mode
		}
		m.state.ModeBaseline = base
		return m, m.toast(state.ToastSuccess, "Module modes saved")

	case LogsLoadedMsg:
		if msg.Seq != m.seqs.logs {
			return m, nil
		}
		m.state.Loading.Logs = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Log fetch failed: %v", msg.Err))
		}
		m.state.SetLogs(msg.Blob)
		m.logScrollBack = 0
		return m, nil

	case StorageLoadedMsg:
		if msg.Seq != m.seqs.storage {
			return m, nil
		}
		m.state.Loading.Storage = false
		if msg.Err != nil {
			if msg.Background {
				return m, nil
			}
			return m, m.toast(state.ToastError, fmt.Sprintf("Storage query failed: %v", msg.Err))
		}
		m.state.PushStorage(msg.Usage)
		m.storageChart.SetHistory(m.state.StorageHistory)
		return m, nil

	case SystemInfoLoadedMsg:
		if msg.Seq != m.seqs.sysinfo {
			return m, nil
		}
		m.state.Loading.SysInfo = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("System info failed: %v", msg.Err))
		}
		m.state.SysInfo = msg.Info
		return m, nil

	case MountsLoadedMsg:
		if msg.Seq != m.seqs.mounts {
			return m, nil
		}
		m.state.Loading.Mounts = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Mount list failed: %v", msg.Err))
		}
		m.state.Mounts = msg.Mounts
		return m, nil

	case ConflictsLoadedMsg:
		if msg.Seq != m.seqs.conflicts {
			return m, nil
		}
		m.state.Loading.Conflicts = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Conflict check failed: %v", msg.Err))
		}
		m.state.Conflicts = msg.Conflicts
		return m, nil

	case DiagnosticsLoadedMsg:
		if msg.Seq != m.seqs.diagnostics {
			return m, nil
		}
		m.state.Loading.Diagnostics = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Diagnostics failed: %v", msg.Err))
		}
		m.state.Diagnostics = msg.Diagnostics
		return m, nil

	case ContributorsLoadedMsg:
		if msg.Seq != m.seqs.contributors {
			return m, nil
		}
		m.state.Loading.Contributors = false
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Contributors unavailable: %v", msg.Err))
		}
		m.state.Contributors = msg.Contributors
		m.state.ContribCached = msg.FromCache
		return m, nil

	case AccentColorMsg:
		// Theming hint only; keep the default palette on failure.
		if msg.Err == nil && msg.Color != "" {
			styles.ApplyAccent(msg.Color)
			m.state.Accent = msg.Color
		}
		return m, nil

	case VersionLoadedMsg:
		if msg.Err != nil {
			m.state.DaemonVersion = "unknown"
			return m, nil
		}
		m.state.DaemonVersion = msg.Version
		return m, nil

	case RescueNoticeMsg:
		if msg.Err == nil {
			m.state.RescueNotice = msg.Notice
		}
		return m, nil

	case NoticeDismissedMsg:
		if msg.Err != nil {
			return m, m.toast(state.ToastError, fmt.Sprintf("Dismiss failed: %v", msg.Err))
		}
		m.state.RescueNotice = ""
		return m, m.toast(state.ToastSuccess, "Rescue notice dismissed")

	case LinkOpenedMsg:
		if msg.Err != nil {
			if cerr := clipboard.WriteAll(msg.URL); cerr == nil {
				return m, m.toast(state.ToastInfo, "No browser available; link copied")
			}
			return m, m.toast(state.ToastError, fmt.Sprintf("Open link failed: %v", msg.Err))
		}
		return m, nil

	case ToastExpiredMsg:
		m.state.DropToast(msg.ID)
		return m, nil
	}

	if m.textFocused() {
		return m.forwardToFocusedInput(msg)
	}
	return m, nil
}

// ============================================================================
// KEY HANDLING
// ============================================================================

func (m *MainModel) textFocused() bool {
	if m.filterFocus {
		return true
	}
	return m.state.CurrentPage == state.PageConfig &&
		m.focus >= views.FieldModuleDir && m.focus < views.FieldCount
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		return m, m.switchTo((m.state.CurrentPage + 1) % state.PageCount)
	case "shift+tab":
		return m, m.switchTo((m.state.CurrentPage + state.PageCount - 1) % state.PageCount)
	}

	if m.textFocused() {
		return m.handleEditingKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3", "4":
		return m, m.switchTo(state.Page(int(msg.Runes[0] - '1')))
	}

	switch m.state.CurrentPage {
	case state.PageConfig:
		return m.handleConfigKey(msg)
	case state.PageModules:
		return m.handleModulesKey(msg)
	case state.PageLogs:
		return m.handleLogsKey(msg)
	case state.PageInfo:
		return m.handleInfoKey(msg)
	}
	return m, nil
}

func (m *MainModel) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		if m.filterFocus {
			m.filterFocus = false
			m.moduleFilter.Blur()
			m.logFilter.Blur()
		} else {
			m.setFocus(views.FieldVerbose)
		}
		return m, nil
	case "up":
		if m.state.CurrentPage == state.PageConfig {
			m.setFocus(m.focus - 1)
			return m, nil
		}
	case "down":
		if m.state.CurrentPage == state.PageConfig {
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}
	return m.forwardToFocusedInput(msg)
}

// forwardToFocusedInput routes a message into whichever text input has focus
// and mirrors its value back into the state.
func (m *MainModel) forwardToFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.filterFocus && m.state.CurrentPage == state.PageModules:
		m.moduleFilter, cmd = m.moduleFilter.Update(msg)
		m.state.ModuleQuery = m.moduleFilter.Value()
		m.clampModuleCursor()
	case m.filterFocus && m.state.CurrentPage == state.PageLogs:
		m.logFilter, cmd = m.logFilter.Update(msg)
		m.state.LogQuery = m.logFilter.Value()
	case m.state.CurrentPage == state.PageConfig && m.focus >= views.FieldModuleDir:
		idx := m.focus - views.FieldModuleDir
		m.inputs[idx], cmd = m.inputs[idx].Update(msg)
		m.syncConfigFromInputs()
	}
	return m, cmd
}

func (m *MainModel) syncConfigFromInputs() {
	m.state.Config.ModuleDir = m.inputs[0].Value()
	m.state.Config.TempDir = m.inputs[1].Value()
	m.state.Config.MountSource = m.inputs[2].Value()
	m.state.PartitionsCSV = m.inputs[3].Value()
}

func (m *MainModel) syncInputsFromConfig() {
	m.inputs[0].SetValue(m.state.Config.ModuleDir)
	m.inputs[1].SetValue(m.state.Config.TempDir)
	m.inputs[2].SetValue(m.state.Config.MountSource)
	m.inputs[3].SetValue(m.state.PartitionsCSV)
}

func (m *MainModel) setFocus(field int) {
	if field < 0 {
		field = 0
	}
	if field >= views.FieldCount {
		field = views.FieldCount - 1
	}
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if field >= views.FieldModuleDir {
		m.inputs[field-views.FieldModuleDir].Focus()
	}
}

func (m *MainModel) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.setFocus(m.focus - 1)
	case "down", "j":
		m.setFocus(m.focus + 1)
	case " ", "enter":
		switch m.focus {
		case views.FieldVerbose:
			m.state.Config.Verbose = !m.state.Config.Verbose
		case views.FieldForceExt4:
			m.state.Config.ForceExt4 = !m.state.Config.ForceExt4
		case views.FieldEnableNuke:
			m.state.Config.EnableNuke = !m.state.Config.EnableNuke
		case views.FieldDisableUmount:
			m.state.Config.DisableUmount = !m.state.Config.DisableUmount
		}
	case "s":
		return m, m.saveConfig()
	case "r":
		return m, m.reloadConfig()
	}
	return m, nil
}

func (m *MainModel) handleModulesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtered := state.FilterModules(m.state.Modules, m.state.ModuleQuery, m.state.ModuleMode)

	switch msg.String() {
	case "up", "k":
		if m.moduleCursor > 0 {
			m.moduleCursor--
		}
	case "down", "j":
		if m.moduleCursor < len(filtered)-1 {
			m.moduleCursor++
		}
	case " ", "enter", "m":
		if m.moduleCursor >= 0 && m.moduleCursor < len(filtered) {
			m.state.CycleMode(filtered[m.moduleCursor].ID)
		}
	case "f":
		m.state.ModuleMode = nextModeFilter(m.state.ModuleMode)
		m.clampModuleCursor()
	case "/":
		m.filterFocus = true
		return m, m.moduleFilter.Focus()
	case "s":
		return m, m.saveModules()
	case "r":
		return m, m.reloadModules()
	}
	return m, nil
}

func (m *MainModel) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.logScrollBack < len(m.state.Logs) {
			m.logScrollBack++
		}
	case "down", "j":
		if m.logScrollBack > 0 {
			m.logScrollBack--
		}
	case "pgup":
		m.logScrollBack += 10
		if m.logScrollBack > len(m.state.Logs) {
			m.logScrollBack = len(m.state.Logs)
		}
	case "pgdown":
		m.logScrollBack -= 10
		if m.logScrollBack < 0 {
			m.logScrollBack = 0
		}
	case "f":
		m.state.LogLevel = nextLevelFilter(m.state.LogLevel)
	case "/":
		m.filterFocus = true
		return m, m.logFilter.Focus()
	case "c":
		return m, m.copyLogs()
	case "r":
		return m, m.reloadLogs()
	}
	return m, nil
}

func (m *MainModel) copyLogs() tea.Cmd {
	lines := state.FilterLogs(m.state.Logs, m.state.LogQuery, m.state.LogLevel)
	if len(lines) == 0 {
		return m.toast(state.ToastInfo, "No log lines to copy")
	}
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text)
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		return m.toast(state.ToastError, fmt.Sprintf("Copy failed: %v", err))
	}
	return m.toast(state.ToastSuccess, fmt.Sprintf("%d lines copied", len(lines)))
}

func (m *MainModel) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "d":
		if m.state.RescueNotice != "" {
			return m, dismissNoticeCmd(m.client, m.timeout())
		}
	case "g":
		return m, openLinkCmd(m.client, m.timeout(), m.repoURL())
	case "i":
		return m, openLinkCmd(m.client, m.timeout(), m.repoURL()+"/issues")
	case "r":
		return m, m.refreshInfo()
	}
	return m, nil
}

func nextModeFilter(cur string) string {
	switch cur {
	case state.ModeAll:
		return string(daemon.ModeAuto)
	case string(daemon.ModeAuto):
		return string(daemon.ModeMagic)
	case string(daemon.ModeMagic):
		return string(daemon.ModeIgnore)
	}
	return state.ModeAll
}

func nextLevelFilter(cur string) string {
	switch cur {
	case state.LevelAll:
		return string(daemon.LevelInfo)
	case string(daemon.LevelInfo):
		return string(daemon.LevelWarn)
	case string(daemon.LevelWarn):
		return string(daemon.LevelError)
	}
	return state.LevelAll
}

func (m *MainModel) clampModuleCursor() {
	n := len(state.FilterModules(m.state.Modules, m.state.ModuleQuery, m.state.ModuleMode))
	if m.moduleCursor >= n {
		m.moduleCursor = n - 1
	}
	if m.moduleCursor < 0 {
		m.moduleCursor = 0
	}
}

func (m *MainModel) switchTo(p state.Page) tea.Cmd {
	if p == m.state.CurrentPage {
		return nil
	}
	m.state.CurrentPage = p
	m.filterFocus = false
	m.moduleFilter.Blur()
	m.logFilter.Blur()
	for i := range m.inputs {
		m.inputs[i].Blur()
	}

	switch p {
	case state.PageConfig:
		m.setFocus(m.focus)
		return nil
	case state.PageLogs:
		return m.reloadLogs()
	case state.PageInfo:
		return m.refreshInfo()
	}
	return nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	for i := 0; i < state.PageCount; i++ {
		if zone.Get(fmt.Sprintf("tab_%d", i)).InBounds(msg) {
			return m, m.switchTo(state.Page(i))
		}
	}

	if m.state.CurrentPage == state.PageInfo {
		if zone.Get("link_github").InBounds(msg) {
			return m, openLinkCmd(m.client, m.timeout(), m.repoURL())
		}
		if zone.Get("link_issues").InBounds(msg) {
			return m, openLinkCmd(m.client, m.timeout(), m.repoURL()+"/issues")
		}
	}
	return m, nil
}

// ============================================================================
// VIEW
// ============================================================================

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	props := views.ViewProps{
		Width:       m.width,
		Height:      m.height,
		MouseX:      m.mouseX,
		MouseY:      m.mouseY,
		AnimCursor:  m.animCursor,
		SpinnerView: m.spinner.View(),
		ChartView:   m.storageChart.View(),
		ScrollBack:  m.logScrollBack,
		Focus:       m.focus,
		Cursor:      m.moduleCursor,
		FilterFocus: m.filterFocus,
	}

	var body string
	switch m.state.CurrentPage {
	case state.PageConfig:
		body = views.RenderConfig(m.state, props, [4]string{
			m.inputs[0].View(),
			m.inputs[1].View(),
			m.inputs[2].View(),
			m.inputs[3].View(),
		})
	case state.PageModules:
		body = views.RenderModules(m.state, props, m.moduleFilter.View())
	case state.PageLogs:
		body = views.RenderLogs(m.state, props, m.logFilter.View())
	case state.PageInfo:
		body = views.RenderInfo(m.state, props)
	}

	return views.Frame(m.state, props, body)
}

func Start(opts Options) error {
	m := InitialModel(opts)
	p := tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
