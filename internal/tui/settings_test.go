package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestSettings(s *testStack) settingsModel {
	m := newSettingsModel(s.sessions, s.ents)
	m.width = 80
	m.height = 24
	return m
}

func TestSettingsViewShowsAccountAndLicense(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)

	view := m.View()
	if !strings.Contains(view, "coach@example.com") {
		t.Errorf("expected account email in settings view, got:\n%s", view)
	}
	if !strings.Contains(view, "Riverside FC") {
		t.Errorf("expected license name in settings view, got:\n%s", view)
	}
	if !strings.Contains(view, "CLB-AAAA") {
		t.Errorf("expected license code in settings view, got:\n%s", view)
	}
	if !strings.Contains(view, "N/A") {
		t.Errorf("expected 'N/A' plan fallback when license type missing, got:\n%s", view)
	}
}

func TestSettingsPasswordTooShortRejectedBeforeManager(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)
	m.state = setPassword
	m.pwFocus = 1
	m.newPw.SetValue("abc")
	m.confirmPw.SetValue("abc")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected validation toast command, got nil")
	}
	msg, ok := cmd().(toastMsg)
	if !ok || msg.kind != toastError {
		t.Fatalf("expected error toast, got %#v", msg)
	}
	if !strings.Contains(msg.text, "at least 6") {
		t.Errorf("expected length message, got %q", msg.text)
	}
	if m.pwPending {
		t.Error("expected no pending update for invalid input")
	}
	if s.identity.updatedTo != "" {
		t.Errorf("provider must not be called with invalid input, saw %q", s.identity.updatedTo)
	}
}

func TestSettingsPasswordMismatchRejected(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)
	m.state = setPassword
	m.pwFocus = 1
	m.newPw.SetValue("secret1")
	m.confirmPw.SetValue("secret2")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected validation toast command, got nil")
	}
	msg := cmd().(toastMsg)
	if !strings.Contains(msg.text, "do not match") {
		t.Errorf("expected mismatch message, got %q", msg.text)
	}
	if s.identity.updatedTo != "" {
		t.Errorf("provider must not be called on mismatch, saw %q", s.identity.updatedTo)
	}
}

func TestSettingsPasswordUpdateFlow(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)
	m.state = setPassword
	m.pwFocus = 1
	m.newPw.SetValue("secret1")
	m.confirmPw.SetValue("secret1")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.pwPending {
		t.Fatal("expected pwPending=true after valid submit")
	}
	if cmd == nil {
		t.Fatal("expected update command, got nil")
	}

	result := cmd().(passwordUpdatedMsg)
	if result.err != nil {
		t.Fatalf("update password: %v", result.err)
	}
	if s.identity.updatedTo != "secret1" {
		t.Errorf("expected provider called with new password, got %q", s.identity.updatedTo)
	}

	m, toastCmd := m.Update(result)
	if m.state != setNormal {
		t.Errorf("expected form closed after update, got state %d", m.state)
	}
	if m.newPw.Value() != "" || m.confirmPw.Value() != "" {
		t.Error("expected password inputs reset after update")
	}
	if toastCmd == nil {
		t.Error("expected success toast command")
	}
}

func TestSettingsSwitchLicense(t *testing.T) {
	s := signedInStack(t,
		testLicense("lic-a", "Riverside FC", "CLB-AAAA"),
		testLicense("lic-b", "Harbor United", "CLB-BBBB"),
	)
	m := newTestSettings(s)

	fetchesBefore := s.source.calls
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected toast command after switch, got nil")
	}
	msg := cmd().(toastMsg)
	if msg.kind != toastSuccess {
		t.Fatalf("expected success toast, got %#v", msg)
	}

	current, ok := s.ents.Current()
	if !ok || current.ID != "lic-b" {
		t.Errorf("expected current license lic-b after switch, got %+v", current)
	}
	if s.source.calls != fetchesBefore {
		t.Errorf("switch must not refetch, calls went %d -> %d", fetchesBefore, s.source.calls)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor reset after switch, got %d", m.cursor)
	}
}

func TestSettingsOtherLicensesExcludesCurrent(t *testing.T) {
	s := signedInStack(t,
		testLicense("lic-a", "Riverside FC", "CLB-AAAA"),
		testLicense("lic-b", "Harbor United", "CLB-BBBB"),
		testLicense("lic-c", "Valley Rovers", "CLB-CCCC"),
	)
	m := newTestSettings(s)

	others := m.otherLicenses()
	if len(others) != 2 {
		t.Fatalf("expected 2 other licenses, got %d", len(others))
	}
	for _, lic := range others {
		if lic.ID == "lic-a" {
			t.Error("current license must not appear among others")
		}
	}
}

func TestSettingsSignOutConfirmFlow(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)

	m, _ = m.Update(keyRunes("x"))
	if m.state != setConfirmSignOut {
		t.Fatalf("expected confirmation state after 'x', got %d", m.state)
	}

	m, _ = m.Update(keyRunes("n"))
	if m.state != setNormal {
		t.Fatalf("expected cancel on 'n', got state %d", m.state)
	}
	if s.identity.signOutSeen != 0 {
		t.Fatal("sign-out must not run on cancel")
	}

	m, _ = m.Update(keyRunes("x"))
	m, cmd := m.Update(keyRunes("y"))
	if !m.signOutPending {
		t.Fatal("expected signOutPending=true after confirm")
	}
	if cmd == nil {
		t.Fatal("expected sign-out command, got nil")
	}

	result := cmd().(signedOutMsg)
	if result.err != nil {
		t.Fatalf("sign out: %v", result.err)
	}
	if s.identity.signOutSeen != 1 {
		t.Errorf("expected exactly one provider sign-out, got %d", s.identity.signOutSeen)
	}
	if len(s.ents.Licenses()) != 0 {
		t.Error("expected entitlements cleared after sign-out")
	}
}

func TestSettingsReloadRequestsRefresh(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)

	before := s.source.calls
	_, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatal("expected refresh command on 'r', got nil")
	}
	result := cmd().(licensesLoadedMsg)
	if result.err != nil {
		t.Fatalf("refresh: %v", result.err)
	}
	if s.source.calls != before+1 {
		t.Errorf("expected one additional fetch, calls went %d -> %d", before, s.source.calls)
	}
}

func TestSettingsPasswordEscCancels(t *testing.T) {
	s := signedInStack(t, testLicense("lic-1", "Riverside FC", "CLB-AAAA"))
	m := newTestSettings(s)
	m.state = setPassword
	m.newPw.SetValue("partial")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != setNormal {
		t.Errorf("expected setNormal after esc, got %d", m.state)
	}
	if m.newPw.Value() != "" {
		t.Errorf("expected input cleared on cancel, got %q", m.newPw.Value())
	}
}
