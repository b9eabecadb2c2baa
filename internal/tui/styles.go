package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Base styles — clubdesk neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles — pitch green
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3ecce4"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#34d474")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))
)

// renderLogo renders the "C L U B D E S K" wordmark with a two-tone fade.
func renderLogo() string {
	const text = "CLUBDESK"
	shades := []string{"#1a3a24", "#236b3d", "#2da355", "#34d474", "#4ade80", "#34d474", "#2da355", "#236b3d"}
	out := ""
	for i := 0; i < len(text); i++ {
		s := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(shades[i%len(shades)]))
		out += s.Render(string(text[i]))
		if i < len(text)-1 {
			out += "  "
		}
	}
	return out
}

// statusBadge renders a license status as a colored badge.
func statusBadge(status string, active bool) string {
	if active {
		return successStyle.Render("[active]")
	}
	return warnStyle.Render("[" + status + "]")
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
