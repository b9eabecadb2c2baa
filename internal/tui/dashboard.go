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

type summaryLoadedMsg struct {
	summary *domain.TeamSummary
	err     error
}

type dashboardModel struct {
	api          *client.Client
	entitlements *access.EntitlementManager

	summary *domain.TeamSummary
	loading bool
	errText string
	width   int
	height  int
}

func newDashboardModel(api *client.Client, entitlements *access.EntitlementManager) dashboardModel {
	return dashboardModel{api: api, entitlements: entitlements}
}

func (m dashboardModel) Init() tea.Cmd {
	lic, ok := m.entitlements.Current()
	if !ok {
		return nil
	}
	return m.load(lic.ID)
}

func (m dashboardModel) load(licenseID string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		summary, err := api.GetTeamSummary(context.Background(), licenseID)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case summaryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.summary = msg.summary

	case tea.KeyMsg:
		if msg.String() == "r" {
			if lic, ok := m.entitlements.Current(); ok {
				m.loading = true
				return m, m.load(lic.ID)
			}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	lic, ok := m.entitlements.Current()
	if !ok {
		if m.entitlements.Loading() {
			return "\n  " + dimStyle.Render("loading licenses...")
		}
		return "\n  " + dimStyle.Render("No active license. Validate a license code to get started.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n", selectedStyle.Render(lic.Name), statusBadge(lic.Status, lic.Active()))
	if m.loading {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render("loading summary..."))
		return b.String()
	}
	if m.errText != "" {
		fmt.Fprintf(&b, "\n  %s\n", dangerStyle.Render("error: "+truncStr(m.errText, 70)))
		return b.String()
	}
	if m.summary == nil {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render("no summary yet — press r to load"))
		return b.String()
	}

	s := m.summary
	fmt.Fprintf(&b, "\n  %s %s\n", accentStyle.Render(fmt.Sprintf("%d", s.PlayerCount)), dimStyle.Render("players on the roster"))
	record := fmt.Sprintf("%dW %dD %dL", s.MatchesWon, s.MatchesDrawn, s.MatchesLost)
	fmt.Fprintf(&b, "  %s %s\n", accentStyle.Render(record), dimStyle.Render("season record"))
	if s.NextMatch != nil {
		venue := "away"
		if s.NextMatch.Home {
			venue = "home"
		}
		fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Next match"))
		fmt.Fprintf(&b, "  %s %s %s\n",
			normalStyle.Render("vs "+s.NextMatch.Opponent),
			metaStyle.Render("("+venue+")"),
			dimStyle.Render(s.NextMatch.KickoffAt.Format("Mon 2 Jan 15:04")))
	}
	return b.String()
}
