package views

import (
	"fmt"

	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type LogsView struct {
	FilterInput string
}

func (v LogsView) Render(s state.AppState, props ViewProps) string {
	filtered := state.FilterLogs(s.Logs, s.LogQuery, s.LogLevel)

	status := styles.HintStyle.Render(fmt.Sprintf("%d of %d lines", len(filtered), len(s.Logs)))
	if s.Loading.Logs {
		status = props.SpinnerView + " fetching"
	}
	title := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("DAEMON LOG"),
		"  ", status,
	)

	levelStyle := styles.HintStyle
	if s.LogLevel != state.LevelAll {
		levelStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Brand)
	}
	filterRow := lipgloss.JoinHorizontal(lipgloss.Left,
		styles.LabelStyle.Render("Filter: "), v.FilterInput,
		styles.LabelStyle.Render("  Level: "), levelStyle.Render(s.LogLevel),
	)

	rendered := make([]string, len(filtered))
	for i, line := range filtered {
		rendered[i] = ColorForLevel(line.Level).Render(line.Text)
	}

	available := props.Height - 12
	window, start := windowLines(rendered, available, props.ScrollBack)

	body := "no log lines"
	if len(window) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, window...)
	}

	card := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", filterRow, "", body,
	))

	position := ""
	if len(filtered) > 0 {
		position = fmt.Sprintf("lines %d-%d of %d • ", start+1, start+len(window), len(filtered))
	}
	footer := styles.HintStyle.Render(position + "[↑/↓] Scroll • [/] Filter • [F] Level • [C] Copy • [R] Refresh")

	return lipgloss.JoinVertical(lipgloss.Left,
		card,
		lipgloss.NewStyle().PaddingLeft(2).Render(footer),
	)
}
