package views

import (
	"fmt"
	"strings"

	"hybridctl/ui/tui/state"
	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// TabCellWidth is the fixed render width of one tab header; the animated
// cursor position multiplies by it.
const TabCellWidth = 12

// RenderTabBar draws the header plus one clickable cell per tab, with the
// spring-driven underline beneath the active one.
func RenderTabBar(s state.AppState, props ViewProps) string {
	title := "HYBRIDCTL // META-HYBRID ADMIN"
	if s.Mock {
		title += "  ·  MOCK DATA"
	}
	if !s.LastUpdate.IsZero() {
		title += fmt.Sprintf("  ·  updated %s", s.LastUpdate.Format("15:04:05"))
	}
	header := styles.HeaderStyle.Width(props.Width).Render(title)

	var tabs []string
	for i := 0; i < state.PageCount; i++ {
		page := state.Page(i)
		label := fmt.Sprintf("%d %s", i+1, page)
		if (page == state.PageConfig && s.ConfigDirty()) ||
			(page == state.PageModules && s.ModulesDirty()) {
			label += " •"
		}

		style := styles.TabStyle
		if page == s.CurrentPage {
			style = styles.ActiveTabStyle
		}
		cell := style.Width(TabCellWidth).Align(lipgloss.Center).Render(label)
		tabs = append(tabs, zone.Mark(fmt.Sprintf("tab_%d", i), cell))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	offset := int(props.AnimCursor*TabCellWidth + 0.5)
	if offset < 0 {
		offset = 0
	}
	cursor := strings.Repeat(" ", offset) +
		lipgloss.NewStyle().Foreground(styles.Brand).Render(strings.Repeat("▔", TabCellWidth))

	return lipgloss.JoinVertical(lipgloss.Left, header, row, cursor)
}

// Frame wraps a page body with the tab bar above and the toast stack below.
// The single zone.Scan here keeps every page's click zones registered.
func Frame(s state.AppState, props ViewProps, body string) string {
	parts := []string{RenderTabBar(s, props), body}
	if t := RenderToasts(s.Toasts); t != "" {
		parts = append(parts, t)
	}
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
