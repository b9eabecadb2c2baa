package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/internal/access"
	"github.com/openclubhq/clubdesk/pkg/client"
	"github.com/openclubhq/clubdesk/pkg/domain"
)

type playersLoadedMsg struct {
	players []domain.Player
	err     error
}

type rosterModel struct {
	api          *client.Client
	entitlements *access.EntitlementManager

	players []domain.Player
	cursor  int
	loading bool
	errText string
	width   int
	height  int
}

func newRosterModel(api *client.Client, entitlements *access.EntitlementManager) rosterModel {
	return rosterModel{api: api, entitlements: entitlements}
}

func (m rosterModel) Init() tea.Cmd {
	lic, ok := m.entitlements.Current()
	if !ok {
		return nil
	}
	return m.load(lic.ID)
}

func (m rosterModel) load(licenseID string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		players, err := api.ListPlayers(context.Background(), licenseID)
		return playersLoadedMsg{players: players, err: err}
	}
}

func (m rosterModel) Update(msg tea.Msg) (rosterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case playersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.players = msg.players
		if m.cursor >= len(m.players) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.players)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			if lic, ok := m.entitlements.Current(); ok {
				m.loading = true
				return m, m.load(lic.ID)
			}
		}
	}
	return m, nil
}

func (m rosterModel) View() string {
	if _, ok := m.entitlements.Current(); !ok {
		return "\n  " + dimStyle.Render("No active license.")
	}
	if m.loading {
		return "\n  " + dimStyle.Render("loading roster...")
	}
	if m.errText != "" {
		return "\n  " + dangerStyle.Render("error: "+truncStr(m.errText, 70))
	}
	if len(m.players) == 0 {
		return "\n  " + dimStyle.Render("No players yet.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", sectionHeaderStyle.Render(fmt.Sprintf("Roster (%d)", len(m.players))))
	for i, p := range m.players {
		num := metaStyle.Render(fmt.Sprintf("#%-3d", p.Number))
		name := normalStyle.Render(truncStr(p.Name, 30))
		pos := dimStyle.Render(p.Position)
		line := fmt.Sprintf("  %s %-32s %s", num, name, pos)
		if i == m.cursor {
			line = selectedRowBg.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
