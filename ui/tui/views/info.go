package views

import (
	"fmt"
	"strings"

	"hybridctl/ui/tui/components"
	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

type InfoView struct{}

func kvLine(key, value string) string {
	return styles.LabelStyle.Render(padRight(key, 14)) + styles.ValueStyle.Render(value)
}

func (v InfoView) Render(s state.AppState, props ViewProps) string {
	var sections []string

	if s.RescueNotice != "" {
		banner := styles.CardStyle.BorderForeground(styles.Bad).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				styles.ErrorStyle.Render("BOOTLOOP RESCUE"),
				s.RescueNotice,
				styles.HintStyle.Render("[D] dismiss"),
			),
		)
		sections = append(sections, banner)
	}

	// Storage card
	storageTitle := lipgloss.NewStyle().Bold(true).Render("OVERLAY STORAGE")
	if s.Loading.Storage {
		storageTitle += "  " + props.SpinnerView
	}
	gauge := components.Gauge{Width: 24}.Render(s.Storage.Percent)
	storageCard := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		storageTitle,
		"",
		gauge+fmt.Sprintf(" %.1f%%", s.Storage.Percent),
		styles.LabelStyle.Render(fmt.Sprintf("%s of %s (%s)",
			formatBytes(s.Storage.Used), formatBytes(s.Storage.Size), s.Storage.Type)),
		"",
		props.ChartView,
	))

	// System card
	systemCard := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("SYSTEM"),
		"",
		kvLine("Kernel", s.SysInfo.Kernel),
		kvLine("SELinux", s.SysInfo.SELinux),
		kvLine("Mount base", s.SysInfo.MountBase),
		kvLine("Active mounts", fmt.Sprintf("%d", s.SysInfo.ActiveMounts)),
	))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, storageCard, systemCard))

	// Versions + links card
	backend := "live daemon"
	if s.Mock {
		backend = "mock"
	}
	links := lipgloss.JoinHorizontal(lipgloss.Left,
		zone.Mark("link_github", lipgloss.NewStyle().Underline(true).Foreground(styles.Brand).Render("GitHub")),
		"   ",
		zone.Mark("link_issues", lipgloss.NewStyle().Underline(true).Foreground(styles.Brand).Render("Issue tracker")),
	)
	versionCard := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("VERSIONS"),
		"",
		kvLine("hybridctl", s.UIVersion),
		kvLine("daemon", s.DaemonVersion),
		kvLine("backend", backend),
		"",
		links,
	))

	// Mounts card
	mountLines := []string{styles.HintStyle.Render("none")}
	if len(s.Mounts) > 0 {
		mountLines = nil
		for _, id := range s.Mounts {
			mountLines = append(mountLines,
				lipgloss.NewStyle().Foreground(styles.Good).Render("● ")+styles.ValueStyle.Render(id))
		}
	}
	mountsCard := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{lipgloss.NewStyle().Bold(true).Render("ACTIVE MOUNTS"), ""}, mountLines...)...,
	))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, versionCard, mountsCard))

	// Diagnostics card
	if len(s.Diagnostics) > 0 {
		var lines []string
		for _, d := range s.Diagnostics {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left,
				ColorForDiag(d.Level).Render(padRight(strings.ToUpper(d.Level), 9)),
				styles.LabelStyle.Render(d.Context+": "),
				styles.ValueStyle.Render(d.Message),
			))
		}
		sections = append(sections, styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			append([]string{lipgloss.NewStyle().Bold(true).Render("DIAGNOSTICS"), ""}, lines...)...,
		)))
	}

	// Contributors card
	contribTitle := lipgloss.NewStyle().Bold(true).Render("CONTRIBUTORS")
	switch {
	case s.Loading.Contributors:
		contribTitle += "  " + props.SpinnerView
	case s.ContribCached:
		contribTitle += "  " + styles.HintStyle.Render("(cached)")
	}
	contribLines := []string{styles.HintStyle.Render("not loaded")}
	if len(s.Contributors) > 0 {
		contribLines = nil
		limit := 10
		if len(s.Contributors) < limit {
			limit = len(s.Contributors)
		}
		for _, c := range s.Contributors[:limit] {
			display := c.Name
			if display == "" {
				display = c.Login
			}
			contribLines = append(contribLines, lipgloss.JoinHorizontal(lipgloss.Left,
				padRight(styles.ValueStyle.Render(display), 26),
				padRight(styles.HintStyle.Render("@"+c.Login), 22),
				styles.LabelStyle.Render(fmt.Sprintf("%d commits", c.Contributions)),
			))
		}
	}
	sections = append(sections, styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{contribTitle, ""}, contribLines...)...,
	)))

	footer := styles.HintStyle.Render("[G] GitHub • [I] Issues • [D] Dismiss notice • [R] Refresh • [Q] Quit")
	sections = append(sections, lipgloss.NewStyle().PaddingLeft(2).Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
