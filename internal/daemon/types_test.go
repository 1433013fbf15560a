package daemon

import "testing"

func TestValidPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "Empty is allowed", path: "", want: true},
		{name: "Absolute path", path: "/data", want: true},
		{name: "Deep absolute path", path: "/data/adb/modules", want: true},
		{name: "Bare slash too short", path: "/", want: false},
		{name: "Relative path", path: "data", want: false},
		{name: "Relative with dot", path: "./data", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPath(tt.path); got != tt.want {
				t.Errorf("ValidPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestConfigEqual(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   bool
	}{
		{name: "Identical clones", mutate: func(*Config) {}, want: true},
		{name: "Flag differs", mutate: func(c *Config) { c.Verbose = true }, want: false},
		{name: "Path differs", mutate: func(c *Config) { c.TempDir = "/cache/tmp" }, want: false},
		{name: "Partition removed", mutate: func(c *Config) { c.Partitions = c.Partitions[:len(c.Partitions)-1] }, want: false},
		{name: "Partition order matters", mutate: func(c *Config) {
			c.Partitions[0], c.Partitions[1] = c.Partitions[1], c.Partitions[0]
		}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base.Clone()
			tt.mutate(&other)
			if got := base.Equal(other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigCloneDoesNotAlias(t *testing.T) {
	orig := DefaultConfig()
	cp := orig.Clone()
	cp.Partitions[0] = "mutated"

	if orig.Partitions[0] == "mutated" {
		t.Error("Clone shares the partitions slice with the original")
	}
}

func TestMountModeValid(t *testing.T) {
	for _, m := range []MountMode{ModeAuto, ModeMagic, ModeIgnore} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if MountMode("overlay").Valid() {
		t.Error("rules vocabulary must not leak into the listing modes")
	}
}
