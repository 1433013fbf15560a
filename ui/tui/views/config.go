package views

import (
	"fmt"

	"hybridctl/internal/daemon"
	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type ConfigView struct {
	// Rendered text inputs in form order: module dir, temp dir, mount
	// source, partitions CSV.
	Inputs [4]string
}

func (v ConfigView) Render(s state.AppState, props ViewProps) string {
	status := styles.HintStyle.Render("in sync")
	switch {
	case s.Loading.Config:
		status = props.SpinnerView + " loading"
	case s.Saving.Config:
		status = props.SpinnerView + " saving"
	case s.ConfigDirty():
		status = lipgloss.NewStyle().Foreground(styles.Warn).Render("unsaved changes")
	}

	title := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("MOUNT CONFIGURATION"),
		"  ", status,
	)

	textRow := func(idx int, label, value, input string, wantAbsolute bool) string {
		cursor := "  "
		lbl := styles.LabelStyle.Render(padRight(label, 14))
		if props.Focus == idx {
			cursor = "> "
			lbl = lipgloss.NewStyle().Bold(true).Foreground(styles.Brand).Render(padRight(label, 14))
		}
		row := cursor + lbl + " " + input
		if wantAbsolute && !daemon.ValidPath(value) {
			row += " " + styles.ErrorStyle.Render("must be absolute")
		}
		return row
	}

	rows := []string{
		Checkbox("Verbose daemon logging", s.Config.Verbose, props.Focus == FieldVerbose),
		Checkbox("Force ext4 image backend", s.Config.ForceExt4, props.Focus == FieldForceExt4),
		Checkbox("Enable nuke cleanup", s.Config.EnableNuke, props.Focus == FieldEnableNuke),
		Checkbox("Disable lazy unmount", s.Config.DisableUmount, props.Focus == FieldDisableUmount),
		"",
		textRow(FieldModuleDir, "Module dir", s.Config.ModuleDir, v.Inputs[0], true),
		textRow(FieldTempDir, "Temp dir", s.Config.TempDir, v.Inputs[1], true),
		textRow(FieldMountSource, "Mount source", s.Config.MountSource, v.Inputs[2], false),
		textRow(FieldPartitions, "Partitions", "", v.Inputs[3], false),
	}

	// Show how the CSV field will be parsed before it is ever saved.
	parts := state.ParsePartitions(s.PartitionsCSV)
	rows = append(rows, styles.HintStyle.Render(fmt.Sprintf("   %d partition(s): %v", len(parts), parts)))

	form := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, rows...)...,
	))

	footer := styles.HintStyle.Render("[↑/↓] Field • [Space] Toggle • [S] Save • [R] Reload • [Tab] Next tab • [Q] Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		form,
		lipgloss.NewStyle().PaddingLeft(2).Render(footer),
	)
}
