package access

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/openclubhq/clubdesk/pkg/domain"
)

// State is the session lifecycle state.
type State int

const (
	// StateInitializing is the boot state while the stored credential is being
	// resolved. It is the only state in which identity is unknown rather than
	// absent; no protected view may render during it.
	StateInitializing State = iota
	// StateUnauthenticated means no signed-in user.
	StateUnauthenticated
	// StateAuthenticated means the session snapshot is authoritative.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SessionManager owns the authentication lifecycle: exactly one exists per
// running client. Mutations happen through Resolve, SignIn, SignOut and
// UpdatePassword only; reads are non-blocking snapshots. Observers are
// notified synchronously after every state change, outside the lock.
type SessionManager struct {
	provider IdentityProvider

	mu        sync.Mutex
	state     State
	session   domain.Session
	observers []func()
	onSignOut []func()
}

// NewSessionManager creates a manager in StateInitializing.
func NewSessionManager(provider IdentityProvider) *SessionManager {
	return &SessionManager{provider: provider, state: StateInitializing}
}

// Current returns the latest session snapshot and state. While the state is
// StateInitializing the snapshot must not be trusted as identity.
func (m *SessionManager) Current() (domain.Session, State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.state
}

// State returns the current lifecycle state.
func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to run synchronously after every session state change.
func (m *SessionManager) Subscribe(fn func()) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// OnSignOut registers a teardown hook that runs on successful sign-out,
// before observers are notified. The entitlement manager registers here so
// no license state survives a session boundary.
func (m *SessionManager) OnSignOut(fn func()) {
	m.mu.Lock()
	m.onSignOut = append(m.onSignOut, fn)
	m.mu.Unlock()
}

// Resolve performs the one-shot boot resolution of the stored credential.
// The manager always settles into Authenticated or Unauthenticated; a
// provider failure settles Unauthenticated and is returned for reporting.
func (m *SessionManager) Resolve(ctx context.Context) error {
	session, err := m.provider.ResolveSession(ctx)

	m.mu.Lock()
	if err != nil {
		m.state = StateUnauthenticated
		m.session = domain.Session{}
	} else {
		m.state = StateAuthenticated
		m.session = session
	}
	m.mu.Unlock()
	m.notify()

	if err != nil && !errors.Is(err, ErrUnauthenticated) {
		return fmt.Errorf("resolve session: %w", err)
	}
	return nil
}

// SignIn authenticates with the provider and, on success, replaces the
// session. On failure the prior state is left intact.
func (m *SessionManager) SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	session, err := m.provider.SignIn(ctx, creds)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign in: %w", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.session = session
	m.mu.Unlock()
	m.notify()
	return session, nil
}

// SignOut ends the session with the provider, clears local identity, runs
// the sign-out hooks, then notifies observers. On provider failure nothing
// is cleared.
func (m *SessionManager) SignOut(ctx context.Context) error {
	if err := m.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	m.mu.Lock()
	m.state = StateUnauthenticated
	m.session = domain.Session{}
	hooks := append([]func(){}, m.onSignOut...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	m.notify()
	return nil
}

// UpdatePassword replaces the current user's password. Input policy (minimum
// length, confirmation match) is enforced by the calling view; this only
// requires an authenticated session and the provider's acceptance.
func (m *SessionManager) UpdatePassword(ctx context.Context, newPassword string) error {
	if m.State() != StateAuthenticated {
		return fmt.Errorf("update password: %w", ErrUnauthenticated)
	}
	if err := m.provider.UpdatePassword(ctx, newPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (m *SessionManager) notify() {
	m.mu.Lock()
	observers := append([]func(){}, m.observers...)
	m.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}
