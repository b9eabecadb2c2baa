package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclubhq/clubdesk/internal/access"
)

func newTestLogin(s *testStack) loginModel {
	m := newLoginModel(s.sessions)
	m.width = 80
	m.height = 24
	return m
}

func TestLoginEmptySubmitShowsError(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	m.focus = 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no sign-in command for empty form")
	}
	if !strings.Contains(m.View(), "Enter your email and password") {
		t.Errorf("expected empty-form error in view, got:\n%s", m.View())
	}
}

func TestLoginEnterOnEmailAdvancesFocus(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	m.email.SetValue("coach@example.com")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != 1 {
		t.Errorf("expected focus on password after enter, got %d", m.focus)
	}
	if m.pending {
		t.Error("expected no submit while still on email field")
	}
}

func TestLoginSubmitSignsIn(t *testing.T) {
	s := newTestStack()
	s.identity.resolveErr = access.ErrUnauthenticated
	_ = s.sessions.Resolve(context.Background())

	m := newTestLogin(s)
	m.email.SetValue("coach@example.com")
	m.password.SetValue("secret1")
	m.focus = 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.pending {
		t.Fatal("expected pending=true after submit")
	}
	if cmd == nil {
		t.Fatal("expected sign-in command, got nil")
	}

	result := cmd().(signedInMsg)
	if result.err != nil {
		t.Fatalf("sign in: %v", result.err)
	}
	if result.session.Email != "coach@example.com" {
		t.Errorf("expected signed-in session in message, got %+v", result.session)
	}
	if s.sessions.State() != access.StateAuthenticated {
		t.Errorf("expected authenticated state, got %v", s.sessions.State())
	}
}

func TestLoginInvalidCredentialsMessage(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	m.pending = true

	m, _ = m.Update(signedInMsg{err: access.ErrInvalidCredentials})
	if m.pending {
		t.Error("expected pending cleared after result")
	}
	if !strings.Contains(m.View(), "Invalid email or password") {
		t.Errorf("expected credential error in view, got:\n%s", m.View())
	}
}

func TestLoginProviderFailureMessage(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	m.pending = true

	m, _ = m.Update(signedInMsg{err: access.ErrProviderUnavailable})
	if !strings.Contains(m.View(), "Could not reach the server") {
		t.Errorf("expected availability error in view, got:\n%s", m.View())
	}
}

func TestLoginSuccessClearsPassword(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	m.pending = true
	m.password.SetValue("secret1")

	m, _ = m.Update(signedInMsg{session: s.identity.session})
	if m.password.Value() != "" {
		t.Errorf("expected password cleared on success, got %q", m.password.Value())
	}
}

func TestLoginKeysIgnoredWhilePending(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	m.pending = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command while a sign-in is in flight")
	}
	_ = m
}

func TestLoginTabTogglesFocus(t *testing.T) {
	s := newTestStack()
	m := newTestLogin(s)
	if m.focus != 0 {
		t.Fatalf("expected initial focus on email, got %d", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Errorf("expected focus on password after tab, got %d", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 0 {
		t.Errorf("expected focus back on email, got %d", m.focus)
	}
}
