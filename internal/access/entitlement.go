package access

import (
	"context"
	"fmt"
	"sync"

	"github.com/openclubhq/clubdesk/pkg/domain"
)

// EntitlementManager owns the license set of the current session's user and
// the currently selected license. It registers itself as a sign-out hook on
// the session manager, so a session boundary always clears license state.
type EntitlementManager struct {
	source   LicenseSource
	sessions *SessionManager

	mu        sync.Mutex
	licenses  []domain.License
	current   string // selected license ID, "" when none
	loading   bool
	epoch     uint64 // bumped on teardown; suppresses stale fetch results
	observers []func()
}

// NewEntitlementManager creates a manager bound to the session lifecycle.
func NewEntitlementManager(source LicenseSource, sessions *SessionManager) *EntitlementManager {
	m := &EntitlementManager{source: source, sessions: sessions}
	sessions.OnSignOut(m.teardown)
	return m
}

// Licenses returns the resolved license set in resolution order. Empty when
// unauthenticated or when the user holds none.
func (m *EntitlementManager) Licenses() []domain.License {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.License{}, m.licenses...)
}

// Current returns the selected license, if any.
func (m *EntitlementManager) Current() (domain.License, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, lic := range m.licenses {
		if lic.ID == m.current {
			return lic, true
		}
	}
	return domain.License{}, false
}

// HasMultiple reports whether the user holds more than one license.
func (m *EntitlementManager) HasMultiple() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.licenses) > 1
}

// Loading reports whether a refresh is in flight.
func (m *EntitlementManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Subscribe registers fn to run synchronously after every entitlement change.
func (m *EntitlementManager) Subscribe(fn func()) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Refresh fetches the license set for the current session's user.
//
// Selection policy: a surviving prior selection is kept; otherwise the first
// license in resolution order becomes current (the sole license when there is
// exactly one). The last-chosen license is deliberately not persisted across
// sessions.
//
// A fetch failure keeps the previous set intact. A sign-out while the fetch
// is in flight invalidates the result: it is discarded, never written into a
// later session's state.
func (m *EntitlementManager) Refresh(ctx context.Context) error {
	session, state := m.sessions.Current()
	if state != StateAuthenticated {
		return fmt.Errorf("refresh licenses: %w", ErrUnauthenticated)
	}

	m.mu.Lock()
	epoch := m.epoch
	m.loading = true
	m.mu.Unlock()
	m.notify()

	licenses, err := m.source.FetchLicensesForUser(ctx, session.UserID)

	m.mu.Lock()
	if m.epoch != epoch {
		// The session this fetch belonged to has ended.
		m.mu.Unlock()
		return nil
	}
	m.loading = false
	if err != nil {
		m.mu.Unlock()
		m.notify()
		return fmt.Errorf("%w: %v", ErrLicenseFetchFailed, err)
	}
	m.licenses = licenses
	if m.current != "" && !containsID(licenses, m.current) {
		m.current = ""
	}
	if m.current == "" && len(licenses) > 0 {
		m.current = licenses[0].ID
	}
	m.mu.Unlock()
	m.notify()
	return nil
}

// Switch atomically moves the current-license pointer to id. It only selects
// over the already-resolved set and never refetches; an unknown id fails with
// ErrLicenseNotFound and leaves the pointer unchanged.
func (m *EntitlementManager) Switch(id string) error {
	m.mu.Lock()
	if !containsID(m.licenses, id) {
		m.mu.Unlock()
		return fmt.Errorf("switch license %q: %w", id, ErrLicenseNotFound)
	}
	m.current = id
	m.mu.Unlock()
	m.notify()
	return nil
}

// teardown clears the set and pointer unconditionally and invalidates any
// in-flight fetch. Runs as a session sign-out hook.
func (m *EntitlementManager) teardown() {
	m.mu.Lock()
	m.epoch++
	m.licenses = nil
	m.current = ""
	m.loading = false
	m.mu.Unlock()
	m.notify()
}

func (m *EntitlementManager) notify() {
	m.mu.Lock()
	observers := append([]func(){}, m.observers...)
	m.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

func containsID(licenses []domain.License, id string) bool {
	for _, lic := range licenses {
		if lic.ID == id {
			return true
		}
	}
	return false
}
