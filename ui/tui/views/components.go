package views

import (
	"fmt"
	"strings"

	"hybridctl/internal/daemon"
	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func ColorForLevel(level daemon.LogLevel) lipgloss.Style {
	switch level {
	case daemon.LevelError:
		return lipgloss.NewStyle().Foreground(styles.Bad)
	case daemon.LevelWarn:
		return lipgloss.NewStyle().Foreground(styles.Warn)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#AAA"))
}

func ColorForDiag(level string) lipgloss.Style {
	switch level {
	case daemon.DiagCritical:
		return styles.StatusStyle.Foreground(styles.Bad)
	case daemon.DiagWarning:
		return styles.StatusStyle.Foreground(styles.Warn)
	}
	return styles.StatusStyle.Foreground(styles.Good)
}

// Checkbox renders one toggle row of the config form.
func Checkbox(label string, on, focused bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	cursor := "  "
	if focused {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%s %s", cursor, box, label)
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(styles.Brand).Render(line)
	}
	return styles.LabelStyle.Render(line)
}

// RenderToasts stacks active toasts newest-last for the bottom overlay.
func RenderToasts(toasts []state.Toast) string {
	if len(toasts) == 0 {
		return ""
	}

	var rows []string
	for _, t := range toasts {
		color := styles.Brand
		switch t.Kind {
		case state.ToastSuccess:
			color = styles.Good
		case state.ToastError:
			color = styles.Bad
		}
		rows = append(rows, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// windowLines clips to the visible region, holding scrollBack lines off the
// tail; scrollBack 0 pins the view to the newest line.
func windowLines(lines []string, available, scrollBack int) ([]string, int) {
	total := len(lines)
	if available < 1 {
		available = 1
	}

	start := total - available - scrollBack
	if start < 0 {
		start = 0
	}
	end := start + available
	if end > total {
		end = total
	}
	return lines[start:end], start
}

// padRight keeps list columns aligned without a table dependency.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
