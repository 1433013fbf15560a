package components

import (
	"strings"

	"hybridctl/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Gauge renders a fixed-width usage bar colored by pressure. Shared between
// the Info tab and the one-shot status report.
type Gauge struct {
	Width int
}

func (g Gauge) Render(percent float64) string {
	width := g.Width
	if width <= 0 {
		width = 20
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := styles.Good
	if percent > 90 {
		color = styles.Bad
	} else if percent > 70 {
		color = styles.Warn
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
