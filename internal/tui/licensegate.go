package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/pkg/client"
	"github.com/openclubhq/clubdesk/pkg/domain"
)

// licenseValidatedMsg carries the result of a license code lookup.
type licenseValidatedMsg struct {
	license *domain.License
	err     error
}

// licenseGateModel is the unauthenticated entry view: validate a shareable
// license code before registering. Unknown routes land here too.
type licenseGateModel struct {
	api *client.Client

	code    textinput.Model
	pending bool
	errText string
	width   int
	height  int
}

func newLicenseGateModel(api *client.Client) licenseGateModel {
	code := newFormInput("license code, e.g. CLB-A4F2", 32)
	code.Focus()
	return licenseGateModel{api: api, code: code}
}

func (m licenseGateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m licenseGateModel) Update(msg tea.Msg) (licenseGateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case licenseValidatedMsg:
		m.pending = false
		if msg.err != nil {
			if client.IsStatus(msg.err, http.StatusNotFound) {
				m.errText = "Unknown license code"
			} else {
				m.errText = "Could not reach the server"
			}
			return m, nil
		}
		m.errText = ""
		return m, nil

	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		if msg.String() == "enter" {
			code := strings.TrimSpace(m.code.Value())
			if code == "" {
				m.errText = "Enter a license code"
				return m, nil
			}
			m.pending = true
			m.errText = ""
			return m, m.validate(code)
		}
	}

	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	return m, cmd
}

func (m licenseGateModel) validate(code string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		lic, err := api.ValidateLicenseCode(context.Background(), code)
		return licenseValidatedMsg{license: lic, err: err}
	}
}

func (m licenseGateModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", sectionHeaderStyle.Render("License validation"))
	fmt.Fprintf(&b, "  %s\n", normalStyle.Render("Enter the license code your club shared with you."))
	fmt.Fprintf(&b, "\n  %s\n", m.code.View())
	if m.pending {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render("checking code..."))
	} else if m.errText != "" {
		fmt.Fprintf(&b, "\n  %s\n", dangerStyle.Render(m.errText))
	}
	fmt.Fprintf(&b, "\n  %s\n", metaStyle.Render("ctrl+l sign in · ctrl+r register without a code"))
	return b.String()
}
