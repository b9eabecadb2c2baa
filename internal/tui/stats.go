package tui

import tea "github.com/charmbracelet/bubbletea"

// statsModel is a placeholder until the stats backend ships.
type statsModel struct {
	width  int
	height int
}

func newStatsModel() statsModel {
	return statsModel{}
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) Update(msg tea.Msg) (statsModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	return m, nil
}

func (m statsModel) View() string {
	return "\n  " + sectionHeaderStyle.Render("Statistics") + "\n\n  " +
		dimStyle.Render("Coming soon: detailed team and player statistics.")
}
