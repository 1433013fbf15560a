package daemon

import "strings"

// LogLevel classifies a daemon log line for display.
type LogLevel string

const (
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogLine is one classified line of the daemon log. Lines are ephemeral:
// recomputed on every fetch, never persisted.
type LogLine struct {
	Text  string   `json:"text"`
	Level LogLevel `json:"level"`
}

// ClassifyLine scans for the daemon's literal level markers. Unknown markers
// default to info so unexpected formats still render.
func ClassifyLine(line string) LogLevel {
	switch {
	case strings.Contains(line, "[ERROR]"), strings.Contains(line, "[FATAL]"):
		return LevelError
	case strings.Contains(line, "[WARN]"):
		return LevelWarn
	default:
		return LevelInfo
	}
}

// ParseLogBlob splits the raw log blob into classified lines, skipping blanks.
func ParseLogBlob(blob string) []LogLine {
	var out []LogLine
	for _, raw := range strings.Split(blob, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, LogLine{Text: raw, Level: ClassifyLine(raw)})
	}
	return out
}
