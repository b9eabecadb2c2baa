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

type matchesLoadedMsg struct {
	matches []domain.Match
	err     error
}

type matchesModel struct {
	api          *client.Client
	entitlements *access.EntitlementManager

	matches []domain.Match
	loading bool
	errText string
	width   int
	height  int
}

func newMatchesModel(api *client.Client, entitlements *access.EntitlementManager) matchesModel {
	return matchesModel{api: api, entitlements: entitlements}
}

func (m matchesModel) Init() tea.Cmd {
	lic, ok := m.entitlements.Current()
	if !ok {
		return nil
	}
	return m.load(lic.ID)
}

func (m matchesModel) load(licenseID string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		matches, err := api.ListMatches(context.Background(), licenseID)
		return matchesLoadedMsg{matches: matches, err: err}
	}
}

func (m matchesModel) Update(msg tea.Msg) (matchesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case matchesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.matches = msg.matches

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

func renderMatch(match domain.Match) string {
	venue := "A"
	if match.Home {
		venue = "H"
	}
	when := dimStyle.Render(match.KickoffAt.Format("02 Jan"))
	opp := normalStyle.Render(truncStr(match.Opponent, 26))
	if !match.Played {
		return fmt.Sprintf("  %s  %s %-28s %s", when, metaStyle.Render(venue), opp, dimStyle.Render("upcoming"))
	}
	score := fmt.Sprintf("%d-%d", match.GoalsFor, match.GoalsAgainst)
	var result string
	switch matchResult(match.GoalsFor, match.GoalsAgainst) {
	case "W":
		result = successStyle.Render("W " + score)
	case "L":
		result = dangerStyle.Render("L " + score)
	default:
		result = warnStyle.Render("D " + score)
	}
	return fmt.Sprintf("  %s  %s %-28s %s", when, metaStyle.Render(venue), opp, result)
}

func (m matchesModel) View() string {
	if _, ok := m.entitlements.Current(); !ok {
		return "\n  " + dimStyle.Render("No active license.")
	}
	if m.loading {
		return "\n  " + dimStyle.Render("loading matches...")
	}
	if m.errText != "" {
		return "\n  " + dangerStyle.Render("error: "+truncStr(m.errText, 70))
	}
	if len(m.matches) == 0 {
		return "\n  " + dimStyle.Render("No matches scheduled.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", sectionHeaderStyle.Render(fmt.Sprintf("Matches (%d)", len(m.matches))))
	for _, match := range m.matches {
		b.WriteString(renderMatch(match) + "\n")
	}
	return b.String()
}
