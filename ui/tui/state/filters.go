package state

import (
	"strings"

	"hybridctl/internal/daemon"
)

// Wildcard values for the two drop filters.
const (
	ModeAll  = "all"
	LevelAll = "all"
)

// FilterModules returns the modules whose name or id contains the query
// (case-insensitive) and whose mode matches the filter. Pure: callers
// recompute on every render instead of caching.
func FilterModules(list []daemon.Module, query, mode string) []daemon.Module {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []daemon.Module
	for _, m := range list {
		if mode != ModeAll && string(m.Mode) != mode {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.ID), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterLogs returns the lines containing the query at the given level.
func FilterLogs(lines []daemon.LogLine, query, level string) []daemon.LogLine {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []daemon.LogLine
	for _, l := range lines {
		if level != LevelAll && string(l.Level) != level {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(l.Text), q) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// ParsePartitions turns the CSV editor field into the daemon's ordered list:
// split on commas, trim whitespace, drop empties, keep order.
func ParsePartitions(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatPartitions renders the list back into the editor field.
func FormatPartitions(parts []string) string {
	return strings.Join(parts, ", ")
}
