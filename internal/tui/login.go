package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/internal/access"
	"github.com/openclubhq/clubdesk/pkg/domain"
)

// signedInMsg carries the result of any flow that establishes a session
// (sign-in or registration).
type signedInMsg struct {
	session domain.Session
	err     error
}

type loginModel struct {
	sessions *access.SessionManager

	email    textinput.Model
	password textinput.Model
	focus    int
	pending  bool
	errText  string
	width    int
	height   int
}

func newLoginModel(sessions *access.SessionManager) loginModel {
	email := newFormInput("email", 254)
	email.Focus()
	password := newFormInput("password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	return loginModel{sessions: sessions, email: email, password: password}
}

// newFormInput builds a text input in the house style.
func newFormInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 36
	in.PromptStyle = inputPromptStyle
	in.PlaceholderStyle = inputPlaceholderStyle
	return in
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case signedInMsg:
		m.pending = false
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, access.ErrInvalidCredentials):
				m.errText = "Invalid email or password"
			default:
				m.errText = "Could not reach the server"
			}
			return m, nil
		}
		m.errText = ""
		m.password.Reset()
		return m, nil

	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.setFocus((m.focus + 1) % 2)
		case "shift+tab", "up":
			return m.setFocus((m.focus + 1) % 2)
		case "enter":
			if m.focus == 0 {
				return m.setFocus(1)
			}
			if strings.TrimSpace(m.email.Value()) == "" || m.password.Value() == "" {
				m.errText = "Enter your email and password"
				return m, nil
			}
			m.pending = true
			m.errText = ""
			return m, m.signIn()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) setFocus(focus int) (loginModel, tea.Cmd) {
	m.focus = focus
	if focus == 0 {
		m.password.Blur()
		return m, m.email.Focus()
	}
	m.email.Blur()
	return m, m.password.Focus()
}

func (m loginModel) signIn() tea.Cmd {
	sessions := m.sessions
	creds := domain.Credentials{
		Email:    strings.TrimSpace(m.email.Value()),
		Password: m.password.Value(),
	}
	return func() tea.Msg {
		session, err := sessions.SignIn(context.Background(), creds)
		return signedInMsg{session: session, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", sectionHeaderStyle.Render("Sign in"))
	fmt.Fprintf(&b, "  %s\n", m.email.View())
	fmt.Fprintf(&b, "  %s\n", m.password.View())
	if m.pending {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render("signing in..."))
	} else if m.errText != "" {
		fmt.Fprintf(&b, "\n  %s\n", dangerStyle.Render(m.errText))
	}
	fmt.Fprintf(&b, "\n  %s\n", metaStyle.Render("No account yet? ctrl+r to register, esc for license validation."))
	return b.String()
}
