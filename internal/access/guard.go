package access

// Verdict is the outcome class of a guard evaluation.
type Verdict int

const (
	// VerdictAllow renders the requested view.
	VerdictAllow Verdict = iota
	// VerdictPending renders a loading placeholder; identity is not yet known,
	// so neither the view nor a login redirect would be correct.
	VerdictPending
	// VerdictDeny redirects to the decision's Redirect route.
	VerdictDeny
)

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictPending:
		return "pending"
	case VerdictDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// AccessDecision is the per-navigation output of the guard. It is computed
// fresh from session state on every call and never cached.
type AccessDecision struct {
	Verdict  Verdict
	Redirect string // target route when Verdict is VerdictDeny
}

// Guard decides, per navigation, whether a view may render. It gates on
// session state only; license-level requirements are a view concern layered
// on top of Allow via the entitlement manager.
type Guard struct {
	sessions   *SessionManager
	loginRoute string
}

// NewGuard creates a guard that denies to loginRoute.
func NewGuard(sessions *SessionManager, loginRoute string) *Guard {
	return &Guard{sessions: sessions, loginRoute: loginRoute}
}

// Decide evaluates the requested navigation against current session state.
func (g *Guard) Decide(requiresAuth bool) AccessDecision {
	if !requiresAuth {
		return AccessDecision{Verdict: VerdictAllow}
	}
	switch g.sessions.State() {
	case StateInitializing:
		return AccessDecision{Verdict: VerdictPending}
	case StateAuthenticated:
		return AccessDecision{Verdict: VerdictAllow}
	default:
		return AccessDecision{Verdict: VerdictDeny, Redirect: g.loginRoute}
	}
}
