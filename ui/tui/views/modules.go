package views

import (
	"fmt"
	"strings"

	"hybridctl/internal/daemon"
	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type ModulesView struct {
	FilterInput string
}

func modeBadge(mode daemon.MountMode) string {
	color := styles.Good
	switch mode {
	case daemon.ModeMagic:
		color = styles.Warn
	case daemon.ModeIgnore:
		color = lipgloss.Color("#666")
	}
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("[%s]", mode))
}

func (v ModulesView) Render(s state.AppState, props ViewProps) string {
	filtered := state.FilterModules(s.Modules, s.ModuleQuery, s.ModuleMode)

	status := styles.HintStyle.Render(fmt.Sprintf("%d of %d shown", len(filtered), len(s.Modules)))
	switch {
	case s.Loading.Modules:
		status = props.SpinnerView + " scanning"
	case s.Saving.Modules:
		status = props.SpinnerView + " saving"
	case s.ModulesDirty():
		status = lipgloss.NewStyle().Foreground(styles.Warn).Render("unsaved mode changes")
	}

	title := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("MODULES"),
		"  ", status,
	)

	modeLabel := s.ModuleMode
	modeStyle := styles.HintStyle
	if s.ModuleMode != state.ModeAll {
		modeStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Brand)
	}
	filterRow := lipgloss.JoinHorizontal(lipgloss.Left,
		styles.LabelStyle.Render("Filter: "), v.FilterInput,
		styles.LabelStyle.Render("  Mode: "), modeStyle.Render(modeLabel),
	)

	maxRows := props.Height - 16
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if props.Cursor >= maxRows {
		start = props.Cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(filtered) {
		end = len(filtered)
	}

	var rows []string
	for i := start; i < end; i++ {
		m := filtered[i]

		cursor := "  "
		if i == props.Cursor {
			cursor = lipgloss.NewStyle().Foreground(styles.Brand).Render("> ")
		}

		marker := styles.HintStyle.Render("○")
		if m.Mounted {
			marker = lipgloss.NewStyle().Foreground(styles.Good).Render("●")
		}

		dirty := " "
		if base, ok := s.ModeBaseline[m.ID]; ok && base != m.Mode {
			dirty = lipgloss.NewStyle().Foreground(styles.Warn).Render("*")
		}

		detail := fmt.Sprintf("%s %s by %s", m.Name, m.Version, m.Author)
		if !m.Enabled {
			detail += " (disabled)"
		}
		detailStyle := styles.HintStyle
		if !m.Enabled {
			detailStyle = detailStyle.Faint(true)
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
			cursor, marker, " ",
			padRight(styles.ValueStyle.Render(m.ID), 26),
			padRight(modeBadge(m.Mode)+dirty, 12),
			detailStyle.Render(detail),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, styles.HintStyle.Render("  no modules match"))
	}

	listCard := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, "", filterRow, ""}, rows...)...,
	))

	sections := []string{listCard}
	if len(s.Conflicts) > 0 {
		var lines []string
		for _, c := range s.Conflicts {
			lines = append(lines, fmt.Sprintf("%s/%s ← %s",
				c.Partition, c.RelativePath, strings.Join(c.ContendingModules, ", ")))
		}
		conflictCard := styles.CardStyle.BorderForeground(styles.Bad).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				append([]string{styles.ErrorStyle.Render("PATH CONFLICTS"), ""}, lines...)...,
			),
		)
		sections = append(sections, conflictCard)
	}

	footer := styles.HintStyle.Render("[↑/↓] Select • [Space] Cycle mode • [/] Filter • [F] Mode filter • [S] Save • [R] Rescan")
	sections = append(sections, lipgloss.NewStyle().PaddingLeft(2).Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
