package tui

import (
	"errors"
	"testing"
	"time"

	"hybridctl/internal/config"
	"hybridctl/internal/daemon"
	"hybridctl/ui/tui/state"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel() MainModel {
	return InitialModel(Options{
		Client:    daemon.NewMockClient().WithLatency(0),
		AppConfig: config.Config{},
		Version:   "test",
		Mock:      true,
	})
}

func TestTabNavigation(t *testing.T) {
	model := testModel()

	if model.state.CurrentPage != state.PageConfig {
		t.Errorf("Expected initial page PageConfig, got %v", model.state.CurrentPage)
	}

	cmd := tea.KeyMsg{Type: tea.KeyTab}
	updatedModel, _ := model.Update(cmd)
	m := updatedModel.(*MainModel)

	if m.state.CurrentPage != state.PageModules {
		t.Errorf("Expected PageModules after tab, got %v", m.state.CurrentPage)
	}

	cmd = tea.KeyMsg{Type: tea.KeyShiftTab}
	updatedModel, _ = m.Update(cmd)
	m = updatedModel.(*MainModel)

	if m.state.CurrentPage != state.PageConfig {
		t.Errorf("Expected PageConfig after shift+tab, got %v", m.state.CurrentPage)
	}

	// Number keys jump directly.
	cmd = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}
	updatedModel, _ = m.Update(cmd)
	m = updatedModel.(*MainModel)

	if m.state.CurrentPage != state.PageLogs {
		t.Errorf("Expected PageLogs after '3', got %v", m.state.CurrentPage)
	}
}

func TestTabAnimationLogic(t *testing.T) {
	model := testModel()
	model.state.CurrentPage = state.PageModules

	if model.animCursor != 0 {
		t.Errorf("Expected initial animCursor 0, got %f", model.animCursor)
	}

	// The spring should move animCursor towards the active tab index (1.0)
	// without overshooting on the first frame.
	animateMsg := AnimateMsg(time.Now())
	updatedModel, _ := model.Update(animateMsg)
	m := updatedModel.(*MainModel)

	if m.animCursor <= 0 {
		t.Errorf("Expected animCursor to increase after animation frame, got %f", m.animCursor)
	}
	if m.animCursor >= 1.0 {
		t.Errorf("Expected animCursor to not reach target immediately, got %f", m.animCursor)
	}

	updatedModel, _ = m.Update(animateMsg)
	m = updatedModel.(*MainModel)
	prevCursor := m.animCursor

	updatedModel, _ = m.Update(animateMsg)
	m = updatedModel.(*MainModel)

	if m.animCursor <= prevCursor {
		t.Errorf("Expected animCursor to continue increasing, got %f (prev %f)", m.animCursor, prevCursor)
	}
}

func TestStaleResultDropped(t *testing.T) {
	model := testModel()
	model.seqs.modulesLoad = 2 // a second scan is already in flight

	stale := ModulesLoadedMsg{Seq: 1, Modules: []daemon.Module{{ID: "old"}}}
	updatedModel, _ := model.Update(stale)
	m := updatedModel.(*MainModel)

	if len(m.state.Modules) != 0 {
		t.Errorf("Expected stale scan result to be dropped, got %d modules", len(m.state.Modules))
	}

	fresh := ModulesLoadedMsg{Seq: 2, Modules: []daemon.Module{{ID: "new"}}}
	updatedModel, _ = m.Update(fresh)
	m = updatedModel.(*MainModel)

	if len(m.state.Modules) != 1 || m.state.Modules[0].ID != "new" {
		t.Errorf("Expected the current scan result to apply, got %v", m.state.Modules)
	}
}

func TestFailedScanKeepsModules(t *testing.T) {
	model := testModel()
	model.seqs.modulesLoad = 1

	seed := ModulesLoadedMsg{Seq: 1, Modules: []daemon.Module{{ID: "a_mod", Mode: daemon.ModeAuto}}}
	updatedModel, _ := model.Update(seed)
	m := updatedModel.(*MainModel)

	m.seqs.modulesLoad = 2
	fail := ModulesLoadedMsg{Seq: 2, Err: errors.New("daemon exited 1")}
	updatedModel, _ = m.Update(fail)
	m = updatedModel.(*MainModel)

	if len(m.state.Modules) != 1 || m.state.Modules[0].ID != "a_mod" {
		t.Errorf("Expected previous module list to survive a failed scan, got %v", m.state.Modules)
	}
	if m.state.Loading.Modules {
		t.Error("Expected loading flag cleared after failure")
	}
	if len(m.state.Toasts) != 1 || m.state.Toasts[0].Kind != state.ToastError {
		t.Errorf("Expected one error toast, got %v", m.state.Toasts)
	}
}

func TestConfigSaveLifecycle(t *testing.T) {
	model := testModel()
	model.seqs.configLoad = 1

	loaded := ConfigLoadedMsg{Seq: 1, Config: daemon.DefaultConfig()}
	updatedModel, _ := model.Update(loaded)
	m := updatedModel.(*MainModel)

	if m.state.ConfigDirty() {
		t.Error("Expected clean config after load")
	}

	m.state.Config.ForceExt4 = true
	if !m.state.ConfigDirty() {
		t.Error("Expected dirty config after edit")
	}

	cmd := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
	updatedModel, saveCmd := m.Update(cmd)
	m = updatedModel.(*MainModel)

	if saveCmd == nil {
		t.Fatal("Expected save to produce a command")
	}
	if !m.state.Saving.Config {
		t.Error("Expected saving flag raised")
	}

	sent := m.state.Config.Clone()
	sent.Partitions = state.ParsePartitions(m.state.PartitionsCSV)
	saved := ConfigSavedMsg{Seq: m.seqs.configSave, Config: sent, CSV: m.state.PartitionsCSV}
	updatedModel, _ = m.Update(saved)
	m = updatedModel.(*MainModel)

	if m.state.Saving.Config {
		t.Error("Expected saving flag cleared after save")
	}
	if m.state.ConfigDirty() {
		t.Error("Expected clean config after save")
	}
	if len(m.state.Toasts) == 0 || m.state.Toasts[0].Kind != state.ToastSuccess {
		t.Errorf("Expected a success toast, got %v", m.state.Toasts)
	}
}

func TestConfigReloadDuringSaveClearsFlags(t *testing.T) {
	model := testModel()
	model.seqs.configLoad = 1

	loaded := ConfigLoadedMsg{Seq: 1, Config: daemon.DefaultConfig()}
	updatedModel, _ := model.Update(loaded)
	m := updatedModel.(*MainModel)
	m.state.Config.Verbose = true

	// Save, then reload before the save result arrives.
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updatedModel.(*MainModel)
	saveSeq := m.seqs.configSave

	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updatedModel.(*MainModel)
	loadSeq := m.seqs.configLoad

	if !m.state.Saving.Config || !m.state.Loading.Config {
		t.Fatal("Expected both operations in flight")
	}

	sent := m.state.Config.Clone()
	sent.Partitions = state.ParsePartitions(m.state.PartitionsCSV)
	updatedModel, _ = m.Update(ConfigSavedMsg{Seq: saveSeq, Config: sent, CSV: m.state.PartitionsCSV})
	m = updatedModel.(*MainModel)

	if m.state.Saving.Config {
		t.Error("Expected saving flag cleared once the save returned")
	}

	updatedModel, _ = m.Update(ConfigLoadedMsg{Seq: loadSeq, Config: daemon.DefaultConfig()})
	m = updatedModel.(*MainModel)

	if m.state.Loading.Config {
		t.Error("Expected loading flag cleared once the reload returned")
	}
}

func TestModulesRescanDuringSaveClearsFlags(t *testing.T) {
	model := testModel()
	model.state.CurrentPage = state.PageModules
	model.state.SetModules([]daemon.Module{{ID: "a_mod", Mode: daemon.ModeAuto}})
	model.state.CycleMode("a_mod")

	updatedModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m := updatedModel.(*MainModel)
	saveSeq := m.seqs.modulesSave

	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updatedModel.(*MainModel)
	loadSeq := m.seqs.modulesLoad

	if !m.state.Saving.Modules || !m.state.Loading.Modules {
		t.Fatal("Expected both operations in flight")
	}

	updatedModel, _ = m.Update(ModulesSavedMsg{Seq: saveSeq, Modules: daemon.CloneModules(m.state.Modules)})
	m = updatedModel.(*MainModel)

	if m.state.Saving.Modules {
		t.Error("Expected saving flag cleared once the save returned")
	}

	updatedModel, _ = m.Update(ModulesLoadedMsg{Seq: loadSeq, Modules: []daemon.Module{{ID: "a_mod", Mode: daemon.ModeMagic}}})
	m = updatedModel.(*MainModel)

	if m.state.Loading.Modules {
		t.Error("Expected rescan flag cleared once the scan returned")
	}
	if m.state.ModulesDirty() {
		t.Error("Expected clean modules once save and rescan agree")
	}
}

func TestInvalidPathBlocksSave(t *testing.T) {
	model := testModel()
	model.seqs.configLoad = 1

	loaded := ConfigLoadedMsg{Seq: 1, Config: daemon.DefaultConfig()}
	updatedModel, _ := model.Update(loaded)
	m := updatedModel.(*MainModel)

	m.state.Config.TempDir = "relative/tmp"
	seqBefore := m.seqs.configSave

	cmd := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
	updatedModel, _ = m.Update(cmd)
	m = updatedModel.(*MainModel)

	if m.state.Saving.Config {
		t.Error("Expected no save to start with an invalid path")
	}
	if m.seqs.configSave != seqBefore {
		t.Error("Expected no request to be issued")
	}
	if len(m.state.Toasts) != 1 || m.state.Toasts[0].Kind != state.ToastError {
		t.Errorf("Expected a validation error toast, got %v", m.state.Toasts)
	}
}

func TestCycleModeKey(t *testing.T) {
	model := testModel()
	model.state.CurrentPage = state.PageModules
	model.state.SetModules([]daemon.Module{{ID: "a_mod", Mode: daemon.ModeAuto}})

	cmd := tea.KeyMsg{Type: tea.KeySpace}
	updatedModel, _ := model.Update(cmd)
	m := updatedModel.(*MainModel)

	if m.state.Modules[0].Mode != daemon.ModeMagic {
		t.Errorf("Expected mode cycled to magic, got %s", m.state.Modules[0].Mode)
	}
	if !m.state.ModulesDirty() {
		t.Error("Expected dirty modules after cycling")
	}
}

func TestLogsLoadedResetsScroll(t *testing.T) {
	model := testModel()
	model.logScrollBack = 7
	model.seqs.logs = 1

	msg := LogsLoadedMsg{Seq: 1, Blob: "[INFO] boot ok\n[ERROR] vendor mount failed"}
	updatedModel, _ := model.Update(msg)
	m := updatedModel.(*MainModel)

	if len(m.state.Logs) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(m.state.Logs))
	}
	if m.state.Logs[1].Level != daemon.LevelError {
		t.Errorf("Expected second line classified error, got %s", m.state.Logs[1].Level)
	}
	if m.logScrollBack != 0 {
		t.Errorf("Expected scroll pinned back to the tail, got %d", m.logScrollBack)
	}
}

func TestToastExpiry(t *testing.T) {
	model := testModel()
	model.seqs.configLoad = 1

	fail := ConfigLoadedMsg{Seq: 1, Err: errors.New("no daemon")}
	updatedModel, _ := model.Update(fail)
	m := updatedModel.(*MainModel)

	if len(m.state.Toasts) != 1 {
		t.Fatalf("Expected one toast, got %d", len(m.state.Toasts))
	}

	expire := ToastExpiredMsg{ID: m.state.Toasts[0].ID}
	updatedModel, _ = m.Update(expire)
	m = updatedModel.(*MainModel)

	if len(m.state.Toasts) != 0 {
		t.Errorf("Expected toast dismissed, got %v", m.state.Toasts)
	}
}

func TestFilterTypingUpdatesQuery(t *testing.T) {
	model := testModel()
	model.state.CurrentPage = state.PageModules
	model.state.SetModules([]daemon.Module{
		{ID: "a_mod", Name: "Alpha", Mode: daemon.ModeAuto},
		{ID: "b_mod", Name: "Beta", Mode: daemon.ModeMagic},
	})

	slash := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
	updatedModel, _ := model.Update(slash)
	m := updatedModel.(*MainModel)

	if !m.filterFocus {
		t.Fatal("Expected filter focused after '/'")
	}

	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}}
	updatedModel, _ = m.Update(key)
	m = updatedModel.(*MainModel)

	if m.state.ModuleQuery != "b" {
		t.Errorf("Expected query 'b', got %q", m.state.ModuleQuery)
	}
	if got := state.FilterModules(m.state.Modules, m.state.ModuleQuery, m.state.ModuleMode); len(got) != 1 || got[0].ID != "b_mod" {
		t.Errorf("Expected only b_mod to match, got %v", got)
	}

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	updatedModel, _ = m.Update(esc)
	m = updatedModel.(*MainModel)

	if m.filterFocus {
		t.Error("Expected filter blurred after esc")
	}
}
