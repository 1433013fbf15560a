package daemon

import (
	"context"
	"errors"
	"testing"
)

func TestMockRoundTrips(t *testing.T) {
	m := NewMockClient().WithLatency(0)
	ctx := context.Background()

	cfg, err := m.LoadConfig(ctx)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.Verbose = true
	cfg.Partitions = []string{"system", "vendor"}
	if err := m.SaveConfig(ctx, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := m.LoadConfig(ctx)
	if err != nil {
		t.Fatalf("LoadConfig after save: %v", err)
	}
	if !got.Equal(cfg) {
		t.Errorf("saved config did not round-trip: got %+v", got)
	}

	mods, err := m.ScanModules(ctx)
	if err != nil {
		t.Fatalf("ScanModules: %v", err)
	}
	if len(mods) == 0 {
		t.Fatal("fixture has no modules")
	}
	mods[0].Mode = ModeMagic
	if err := m.SaveModules(ctx, mods); err != nil {
		t.Fatalf("SaveModules: %v", err)
	}
	again, _ := m.ScanModules(ctx)
	if again[0].Mode != ModeMagic {
		t.Errorf("module mode did not round-trip, got %q", again[0].Mode)
	}
}

func TestMockFailInjection(t *testing.T) {
	m := NewMockClient().WithLatency(0)
	ctx := context.Background()
	boom := errors.New("boom")

	m.Fail("modules.scan", boom)
	if _, err := m.ScanModules(ctx); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}

	m.Fail("modules.scan", nil)
	if _, err := m.ScanModules(ctx); err != nil {
		t.Errorf("cleared error still fires: %v", err)
	}
}

func TestMockActiveMountsMatchMountedFlags(t *testing.T) {
	m := NewMockClient().WithLatency(0)
	ctx := context.Background()

	mods, _ := m.ScanModules(ctx)
	wantCount := 0
	for _, mod := range mods {
		if mod.Mounted {
			wantCount++
		}
	}

	ids, err := m.ActiveMounts(ctx)
	if err != nil {
		t.Fatalf("ActiveMounts: %v", err)
	}
	if len(ids) != wantCount {
		t.Errorf("ActiveMounts returned %d ids, fixture has %d mounted", len(ids), wantCount)
	}
}

func TestMockOpenLinkRecords(t *testing.T) {
	m := NewMockClient().WithLatency(0)
	if err := m.OpenLink(context.Background(), "https://example.com/repo"); err != nil {
		t.Fatalf("OpenLink: %v", err)
	}
	links := m.OpenedLinks()
	if len(links) != 1 || links[0] != "https://example.com/repo" {
		t.Errorf("OpenedLinks = %v", links)
	}
}

func TestMockRescueNoticeDismiss(t *testing.T) {
	m := NewMockClient().WithLatency(0)
	ctx := context.Background()

	m.SetRescueNotice("System recovered from bootloop by restoring snapshot: silo-1")
	notice, err := m.RescueNotice(ctx)
	if err != nil || notice == "" {
		t.Fatalf("RescueNotice = (%q, %v)", notice, err)
	}
	if err := m.DismissRescueNotice(ctx); err != nil {
		t.Fatalf("DismissRescueNotice: %v", err)
	}
	if notice, _ := m.RescueNotice(ctx); notice != "" {
		t.Errorf("notice survived dismiss: %q", notice)
	}
}
