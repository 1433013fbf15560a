package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Brand is the accent for headers, active tabs and card borders. The
	// default holds until the daemon reports a device accent color.
	Brand = lipgloss.Color("#7D56F4")

	Subtle = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	Good   = lipgloss.Color("46")
	Warn   = lipgloss.Color("220")
	Bad    = lipgloss.Color("196")

	TitleStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#FFF7DB"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Brand).
			Padding(0, 2)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Brand).
			Padding(0, 2).
			Margin(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Brand).
			Padding(0, 2)

	TabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAA"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF"))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Bad)

	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))
)

// ApplyAccent re-tints the brand-dependent styles. Called once when the
// daemon answers the accent query; harmless to skip when it never does.
func ApplyAccent(hex string) {
	Brand = lipgloss.Color(hex)
	HeaderStyle = HeaderStyle.Background(Brand)
	CardStyle = CardStyle.BorderForeground(Brand)
	ActiveTabStyle = ActiveTabStyle.Foreground(Brand)
	TitleStyle = TitleStyle.Foreground(Brand)
}
