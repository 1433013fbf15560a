package state

import (
	"reflect"
	"testing"

	"hybridctl/internal/daemon"
)

func TestConfigDirtyLifecycle(t *testing.T) {
	s := New()
	cfg := daemon.DefaultConfig()
	s.SetConfig(cfg)

	if s.ConfigDirty() {
		t.Error("Expected clean state right after load")
	}

	// Edit a toggle.
	s.Config.ForceExt4 = true
	if !s.ConfigDirty() {
		t.Error("Expected dirty state after toggling force_ext4")
	}

	// Save snapshots the baseline.
	s.MarkConfigClean()
	if s.ConfigDirty() {
		t.Error("Expected clean state after save")
	}

	// Editing only the partition CSV must also count.
	s.PartitionsCSV = s.PartitionsCSV + ", my_custom"
	if !s.ConfigDirty() {
		t.Error("Expected dirty state after editing partition CSV")
	}
}

func TestConfigDirtyPartitionOrder(t *testing.T) {
	s := New()
	s.SetConfig(daemon.Config{Partitions: []string{"system", "vendor"}})

	s.Config.Partitions = []string{"vendor", "system"}
	if !s.ConfigDirty() {
		t.Error("Expected reordering partitions to read as dirty")
	}
}

func TestModulesDirtyLifecycle(t *testing.T) {
	s := New()
	s.SetModules([]daemon.Module{
		{ID: "a_mod", Name: "Alpha", Mode: daemon.ModeAuto},
		{ID: "b_mod", Name: "Beta", Mode: daemon.ModeMagic},
	})

	if s.ModulesDirty() {
		t.Error("Expected clean module state after scan")
	}

	s.CycleMode("a_mod")
	if !s.ModulesDirty() {
		t.Error("Expected dirty module state after cycling a mode")
	}

	s.MarkModulesClean()
	if s.ModulesDirty() {
		t.Error("Expected clean module state after save")
	}
}

func TestNextModeCycles(t *testing.T) {
	tests := []struct {
		in   daemon.MountMode
		want daemon.MountMode
	}{
		{daemon.ModeAuto, daemon.ModeMagic},
		{daemon.ModeMagic, daemon.ModeIgnore},
		{daemon.ModeIgnore, daemon.ModeAuto},
	}

	for _, tt := range tests {
		if got := NextMode(tt.in); got != tt.want {
			t.Errorf("NextMode(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFilterModules(t *testing.T) {
	list := []daemon.Module{
		{ID: "a_mod", Name: "Alpha", Mode: daemon.ModeAuto},
		{ID: "b_mod", Name: "Beta", Mode: daemon.ModeMagic},
		{ID: "c_mod", Name: "Gamma", Mode: daemon.ModeMagic},
		{ID: "d_mod", Name: "Bravo", Mode: daemon.ModeIgnore},
	}

	tests := []struct {
		name  string
		query string
		mode  string
		want  []string
	}{
		{"no filters", "", ModeAll, []string{"a_mod", "b_mod", "c_mod", "d_mod"}},
		{"mode only", "", "magic", []string{"b_mod", "c_mod"}},
		{"query and mode", "b", "magic", []string{"b_mod"}},
		{"query matches name case-insensitively", "ALPHA", ModeAll, []string{"a_mod"}},
		{"query matches id", "d_", ModeAll, []string{"d_mod"}},
		{"no match", "zzz", ModeAll, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterModules(list, tt.query, tt.mode)
			var ids []string
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Expected ids %v, got %v", tt.want, ids)
			}
		})
	}
}

func TestFilterLogs(t *testing.T) {
	lines := []daemon.LogLine{
		{Text: "[INFO] mounted system", Level: daemon.LevelInfo},
		{Text: "[WARN] skipping stale module", Level: daemon.LevelWarn},
		{Text: "[ERROR] mount failed: vendor", Level: daemon.LevelError},
	}

	tests := []struct {
		name  string
		query string
		level string
		want  int
	}{
		{"all", "", LevelAll, 3},
		{"level only", "", "warn", 1},
		{"query only", "mount", LevelAll, 2},
		{"query and level", "mount", "error", 1},
		{"query misses level", "stale", "error", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterLogs(lines, tt.query, tt.level); len(got) != tt.want {
				t.Errorf("Expected %d lines, got %d", tt.want, len(got))
			}
		})
	}
}

func TestParsePartitions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"messy csv", "product, system_ext,  , vendor", []string{"product", "system_ext", "vendor"}},
		{"single", "system", []string{"system"}},
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"order preserved", "vendor,system", []string{"vendor", "system"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePartitions(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPartitionsRoundTrip(t *testing.T) {
	in := []string{"system", "vendor", "product"}
	if got := ParsePartitions(FormatPartitions(in)); !reflect.DeepEqual(got, in) {
		t.Errorf("Expected round trip to preserve %v, got %v", in, got)
	}
}

func TestToastQueue(t *testing.T) {
	s := New()
	s.PushToast(1, ToastInfo, "loading")
	s.PushToast(2, ToastError, "save failed")

	if len(s.Toasts) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(s.Toasts))
	}

	s.DropToast(1)
	if len(s.Toasts) != 1 || s.Toasts[0].ID != 2 {
		t.Errorf("Expected only toast 2 to remain, got %v", s.Toasts)
	}

	// Dropping an already dismissed toast is a no-op.
	s.DropToast(1)
	if len(s.Toasts) != 1 {
		t.Errorf("Expected stale dismiss to change nothing, got %v", s.Toasts)
	}
}

func TestPushStorageWindow(t *testing.T) {
	s := New()
	for i := 0; i < 40; i++ {
		s.PushStorage(daemon.StorageUsage{Percent: float64(i)})
	}

	if len(s.StorageHistory) != storageWindow {
		t.Fatalf("Expected history capped at %d, got %d", storageWindow, len(s.StorageHistory))
	}
	if s.StorageHistory[len(s.StorageHistory)-1] != 39 {
		t.Errorf("Expected newest sample last, got %f", s.StorageHistory[len(s.StorageHistory)-1])
	}
	if s.StorageHistory[0] != 9 {
		t.Errorf("Expected oldest samples trimmed, got %f first", s.StorageHistory[0])
	}
}

func TestSetModulesDoesNotAliasInput(t *testing.T) {
	in := []daemon.Module{{ID: "a_mod", Mode: daemon.ModeAuto}}
	s := New()
	s.SetModules(in)

	s.CycleMode("a_mod")
	if in[0].Mode != daemon.ModeAuto {
		t.Error("Expected state edits to leave the caller's slice untouched")
	}
}
