package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"hybridctl/internal/daemon"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		mode     daemon.MountMode
		expected string
	}{
		{daemon.ModeAuto, colorGreen},
		{daemon.ModeMagic, colorYellow},
		{daemon.ModeIgnore, colorReset},
		{daemon.MountMode("unknown"), colorGreen},
	}

	for _, tt := range tests {
		result := colorFor(tt.mode)
		if result != tt.expected {
			t.Errorf("colorFor(%q) = %q; want %q", tt.mode, result, tt.expected)
		}
	}
}

func TestLeaderTruncatesLongLabels(t *testing.T) {
	long := strings.Repeat("x", 40)
	got := leader(long)
	if !strings.Contains(got, "...") {
		t.Errorf("expected truncation marker in %q", got)
	}
	// Must never panic on short labels either.
	_ = leader("k")
}

func TestGatherCollectsEverything(t *testing.T) {
	mock := daemon.NewMockClient().WithLatency(0)
	r := Gather(context.Background(), mock)

	if len(r.Errors) != 0 {
		t.Fatalf("unexpected probe errors: %v", r.Errors)
	}
	if r.Version != "v2.1.0-mock" {
		t.Errorf("version = %q", r.Version)
	}
	if len(r.Modules) != 5 {
		t.Errorf("got %d modules, want 5", len(r.Modules))
	}
	if len(r.Mounts) != 2 {
		t.Errorf("got %d mounts, want 2", len(r.Mounts))
	}
	if r.Storage.Type != "erofs" {
		t.Errorf("storage type = %q", r.Storage.Type)
	}
}

func TestGatherSurvivesProbeFailures(t *testing.T) {
	mock := daemon.NewMockClient().WithLatency(0)
	mock.Fail("storage", errors.New("statfs failed"))

	r := Gather(context.Background(), mock)

	if len(r.Errors) != 1 || !strings.Contains(r.Errors[0], "statfs failed") {
		t.Fatalf("expected one storage error, got %v", r.Errors)
	}
	// Everything else still came through.
	if len(r.Modules) != 5 {
		t.Errorf("got %d modules, want 5", len(r.Modules))
	}
}

func TestPrint(t *testing.T) {
	mock := daemon.NewMockClient().WithLatency(0)
	mock.SetRescueNotice("Boot #3 failed, mounts skipped this boot")
	r := Gather(context.Background(), mock)
	r.Mock = true

	var buf bytes.Buffer
	Print(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"META-HYBRID STATUS",
		"(mock data)",
		"BOOTLOOP RESCUE",
		"mounts skipped this boot",
		"zygisk_lsposed",
		"(disabled)",
		"35.7",
		"erofs",
		"system/etc/hosts",
		"─ Summary",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestPrintSkipsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Report{})
	out := buf.String()

	for _, absent := range []string{"BOOTLOOP", "Overlay storage", "Modules", "conflicts"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty report should not mention %q\n%s", absent, out)
		}
	}
	if !strings.Contains(out, "─ Summary") {
		t.Error("summary line should always print")
	}
}
