package daemon

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LogLevel
	}{
		{name: "Info marker", line: "[INFO] Meta-Hybrid Mount Starting", want: LevelInfo},
		{name: "Warn marker", line: "[WARN] Namespace Detach (try_umount) is DISABLED.", want: LevelWarn},
		{name: "Error marker", line: "[ERROR] Fatal Error: mount failed", want: LevelError},
		{name: "Fatal marker", line: "[FATAL] unrecoverable", want: LevelError},
		{name: "Panic line uses error marker", line: "[ERROR] PANIC: index out of bounds", want: LevelError},
		{name: "Marker mid-line", line: "2024-01-01 [WARN] deferred", want: LevelWarn},
		{name: "Unknown marker defaults to info", line: "[TRACE] lowerdir resolved", want: LevelInfo},
		{name: "No marker defaults to info", line: "plain text line", want: LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLine(tt.line); got != tt.want {
				t.Errorf("ClassifyLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLogBlob(t *testing.T) {
	blob := "[INFO] one\n\n[WARN] two\n   \n[ERROR] three\n"
	lines := ParseLogBlob(blob)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	wantLevels := []LogLevel{LevelInfo, LevelWarn, LevelError}
	for i, want := range wantLevels {
		if lines[i].Level != want {
			t.Errorf("line %d: level = %q, want %q", i, lines[i].Level, want)
		}
	}
	if lines[1].Text != "[WARN] two" {
		t.Errorf("line 1 text = %q, want %q", lines[1].Text, "[WARN] two")
	}
}

func TestParseLogBlobEmpty(t *testing.T) {
	if lines := ParseLogBlob(""); len(lines) != 0 {
		t.Errorf("empty blob produced %d lines", len(lines))
	}
}
