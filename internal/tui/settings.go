package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/internal/access"
	"github.com/openclubhq/clubdesk/pkg/domain"
)

// settingsState is the state machine for the settings interactions.
type settingsState int

const (
	setNormal         settingsState = iota
	setPassword                     // editing new + confirm password
	setConfirmSignOut               // sign-out confirmation
)

// -- messages --

type passwordUpdatedMsg struct{ err error }

type signedOutMsg struct{ err error }

// -- model --

type settingsModel struct {
	sessions     *access.SessionManager
	entitlements *access.EntitlementManager

	state     settingsState
	newPw     textinput.Model
	confirmPw textinput.Model
	pwFocus   int
	pwPending bool

	signOutPending bool
	cursor         int // selection among the other held licenses
	width          int
	height         int
}

func newSettingsModel(sessions *access.SessionManager, entitlements *access.EntitlementManager) settingsModel {
	newPw := newFormInput("new password (min 6 characters)", 128)
	newPw.EchoMode = textinput.EchoPassword
	newPw.EchoCharacter = '•'
	confirmPw := newFormInput("confirm new password", 128)
	confirmPw.EchoMode = textinput.EchoPassword
	confirmPw.EchoCharacter = '•'
	return settingsModel{
		sessions:     sessions,
		entitlements: entitlements,
		newPw:        newPw,
		confirmPw:    confirmPw,
	}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

// otherLicenses returns the held licenses other than the current one, in
// resolution order.
func (m settingsModel) otherLicenses() []domain.License {
	current, ok := m.entitlements.Current()
	all := m.entitlements.Licenses()
	if !ok {
		return all
	}
	others := make([]domain.License, 0, len(all))
	for _, lic := range all {
		if lic.ID != current.ID {
			others = append(others, lic)
		}
	}
	return others
}

func (m settingsModel) editing() bool {
	return m.state == setPassword
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordUpdatedMsg:
		m.pwPending = false
		if msg.err != nil {
			return m, toast(toastError, "Could not update the password")
		}
		m.state = setNormal
		m.newPw.Reset()
		m.confirmPw.Reset()
		return m, toast(toastSuccess, "Password updated")

	case signedOutMsg:
		m.signOutPending = false
		m.state = setNormal
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case setPassword:
			return m.updatePasswordForm(msg)
		case setConfirmSignOut:
			return m.updateSignOutConfirm(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m settingsModel) updateNormal(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch msg.String() {
	case "p":
		m.state = setPassword
		m.pwFocus = 0
		m.confirmPw.Blur()
		return m, m.newPw.Focus()
	case "j", "down":
		if m.cursor < len(m.otherLicenses())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		others := m.otherLicenses()
		if m.cursor < len(others) {
			// Pointer-only switch over the already-resolved set.
			if err := m.entitlements.Switch(others[m.cursor].ID); err != nil {
				return m, toast(toastError, "Could not switch license")
			}
			m.cursor = 0
			return m, toast(toastSuccess, "License switched")
		}
	case "c":
		if lic, ok := m.entitlements.Current(); ok {
			if err := clipboard.WriteAll(lic.Code); err != nil {
				return m, toast(toastError, "Could not copy to clipboard")
			}
			return m, toast(toastSuccess, "License code copied")
		}
	case "r":
		return m, refreshLicenses(m.entitlements)
	case "x":
		m.state = setConfirmSignOut
	}
	return m, nil
}

func (m settingsModel) updatePasswordForm(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.pwPending {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.state = setNormal
		m.newPw.Reset()
		m.confirmPw.Reset()
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m.pwFocus = (m.pwFocus + 1) % 2
		if m.pwFocus == 0 {
			m.confirmPw.Blur()
			return m, m.newPw.Focus()
		}
		m.newPw.Blur()
		return m, m.confirmPw.Focus()
	case "enter":
		if m.pwFocus == 0 {
			m.pwFocus = 1
			m.newPw.Blur()
			return m, m.confirmPw.Focus()
		}
		// Form-level policy: the manager is only called with validated input.
		if len(m.newPw.Value()) < minPasswordLen {
			return m, toast(toastError, fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
		}
		if m.newPw.Value() != m.confirmPw.Value() {
			return m, toast(toastError, "Passwords do not match")
		}
		m.pwPending = true
		return m, m.updatePassword(m.newPw.Value())
	}

	var cmd tea.Cmd
	if m.pwFocus == 0 {
		m.newPw, cmd = m.newPw.Update(msg)
	} else {
		m.confirmPw, cmd = m.confirmPw.Update(msg)
	}
	return m, cmd
}

func (m settingsModel) updateSignOutConfirm(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.signOutPending {
		return m, nil
	}
	switch msg.String() {
	case "y", "enter":
		m.signOutPending = true
		return m, m.signOut()
	case "n", "esc":
		m.state = setNormal
	}
	return m, nil
}

func (m settingsModel) updatePassword(newPassword string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		return passwordUpdatedMsg{err: sessions.UpdatePassword(context.Background(), newPassword)}
	}
}

func (m settingsModel) signOut() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		return signedOutMsg{err: sessions.SignOut(context.Background())}
	}
}

func (m settingsModel) View() string {
	session, _ := m.sessions.Current()

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Account"))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("email        "), normalStyle.Render(session.Email))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("member since "), normalStyle.Render(formatDate(session.CreatedAt)))

	switch m.state {
	case setPassword:
		fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Change password"))
		fmt.Fprintf(&b, "  %s\n", m.newPw.View())
		fmt.Fprintf(&b, "  %s\n", m.confirmPw.View())
		if m.pwPending {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render("updating..."))
		}
	case setConfirmSignOut:
		fmt.Fprintf(&b, "\n  %s\n", dangerStyle.Render("Sign out of your account? (y/n)"))
		if m.signOutPending {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render("signing out..."))
		}
	}

	b.WriteString(m.licenseSection())
	return b.String()
}

func (m settingsModel) licenseSection() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Active license"))

	current, ok := m.entitlements.Current()
	if !ok {
		if m.entitlements.Loading() {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render("loading licenses..."))
		} else {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render("No active license."))
		}
		return b.String()
	}

	plan := current.PlanName()
	if plan == "" {
		plan = "N/A"
	}
	fmt.Fprintf(&b, "  %s %s\n", selectedStyle.Render(current.Name), statusBadge(current.Status, current.Active()))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("code "), codeStyle.Render(current.Code))
	fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render("plan "), normalStyle.Render(plan))

	if m.entitlements.HasMultiple() {
		fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Other licenses (enter to switch)"))
		for i, lic := range m.otherLicenses() {
			line := fmt.Sprintf("  %s %s", normalStyle.Render(truncStr(lic.Name, 30)), metaStyle.Render(lic.Code))
			if i == m.cursor {
				line = selectedRowBg.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
