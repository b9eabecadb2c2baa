package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/internal/access"
	"github.com/openclubhq/clubdesk/pkg/client"
)

// minPasswordLen is the form-level minimum; the identity provider is only
// ever called with input that already passed this check.
const minPasswordLen = 6

type registerModel struct {
	api       *client.Client
	sessions  *access.SessionManager
	saveToken func(string) error

	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	license  textinput.Model
	focus    int
	pending  bool
	errText  string
	width    int
	height   int
}

func newRegisterModel(api *client.Client, sessions *access.SessionManager, saveToken func(string) error) registerModel {
	email := newFormInput("email", 254)
	email.Focus()
	password := newFormInput("password (min 6 characters)", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	confirm := newFormInput("confirm password", 128)
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'
	license := newFormInput("license code (optional)", 32)
	return registerModel{
		api:       api,
		sessions:  sessions,
		saveToken: saveToken,
		email:     email,
		password:  password,
		confirm:   confirm,
		license:   license,
	}
}

// setLicenseCode prefills the license field after code validation.
func (m registerModel) setLicenseCode(code string) registerModel {
	m.license.SetValue(code)
	return m
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *registerModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.email, &m.password, &m.confirm, &m.license}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case signedInMsg:
		m.pending = false
		if msg.err != nil {
			m.errText = "Registration failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.pending {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.setFocus((m.focus + 1) % 4)
		case "shift+tab", "up":
			return m.setFocus((m.focus + 3) % 4)
		case "enter":
			if m.focus < 3 {
				return m.setFocus(m.focus + 1)
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	in := m.inputs()[m.focus]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m registerModel) setFocus(focus int) (registerModel, tea.Cmd) {
	m.focus = focus
	var cmd tea.Cmd
	for i, in := range m.inputs() {
		if i == focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return m, cmd
}

// submit applies the form-level validation before anything reaches the
// provider: minimum length and confirmation match.
func (m registerModel) submit() (registerModel, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	if email == "" {
		m.errText = "Enter your email"
		return m, nil
	}
	if len(m.password.Value()) < minPasswordLen {
		m.errText = fmt.Sprintf("Password must be at least %d characters", minPasswordLen)
		return m, nil
	}
	if m.password.Value() != m.confirm.Value() {
		m.errText = "Passwords do not match"
		return m, nil
	}
	m.pending = true
	m.errText = ""
	return m, m.register(email, m.password.Value(), strings.TrimSpace(m.license.Value()))
}

func (m registerModel) register(email, password, licenseCode string) tea.Cmd {
	api := m.api
	sessions := m.sessions
	saveToken := m.saveToken
	return func() tea.Msg {
		resp, err := api.Register(context.Background(), client.RegisterRequest{
			Email:       email,
			Password:    password,
			LicenseCode: licenseCode,
		})
		if err != nil {
			return signedInMsg{err: err}
		}
		api.SetToken(resp.Token)
		if saveToken != nil {
			saveToken(resp.Token) //nolint:errcheck // in-memory token carries this run
		}
		// Resolve through the session manager so the state machine, not this
		// view, owns the transition to Authenticated.
		if err := sessions.Resolve(context.Background()); err != nil {
			return signedInMsg{err: err}
		}
		session, _ := sessions.Current()
		return signedInMsg{session: session}
	}
}

func (m registerModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", sectionHeaderStyle.Render("Create account"))
	fmt.Fprintf(&b, "  %s\n", m.email.View())
	fmt.Fprintf(&b, "  %s\n", m.password.View())
	fmt.Fprintf(&b, "  %s\n", m.confirm.View())
	fmt.Fprintf(&b, "  %s\n", m.license.View())
	if m.pending {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render("creating account..."))
	} else if m.errText != "" {
		fmt.Fprintf(&b, "\n  %s\n", dangerStyle.Render(truncStr(m.errText, 76)))
	}
	fmt.Fprintf(&b, "\n  %s\n", metaStyle.Render("Already registered? ctrl+l to sign in."))
	return b.String()
}
