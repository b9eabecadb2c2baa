package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openclubhq/clubdesk/internal/access"
	"github.com/openclubhq/clubdesk/pkg/client"
)

// route identifies a navigable view. Routes at routeDashboard and beyond
// require an authenticated session.
type route int

const (
	routeLicenseGate route = iota // unauthenticated entry; unknown targets land here
	routeLogin
	routeRegister
	routeDashboard
	routeRoster
	routeMatches
	routeStats
	routeSettings
)

func (r route) protected() bool {
	return r >= routeDashboard
}

// routeForPath maps a guard redirect target onto a route. Anything
// unrecognized resolves to the license gate, mirroring the catch-all
// redirect of the web app.
func routeForPath(path string) route {
	switch path {
	case "/login":
		return routeLogin
	case "/register":
		return routeRegister
	case "/license":
		return routeLicenseGate
	default:
		return routeLicenseGate
	}
}

// loginPath is the guard's deny target.
const loginPath = "/login"

// -- messages --

// sessionResolvedMsg reports completion of the boot identity resolution.
type sessionResolvedMsg struct{ err error }

// licensesLoadedMsg reports completion of a license refresh.
type licensesLoadedMsg struct{ err error }

// StateChangedMsg is sent from outside the program (via Program.Send) when a
// manager notifies its observers, so views re-render and the guard
// re-evaluates the current route.
type StateChangedMsg struct{}

// refreshLicenses runs an entitlement refresh as a command.
func refreshLicenses(entitlements *access.EntitlementManager) tea.Cmd {
	return func() tea.Msg {
		return licensesLoadedMsg{err: entitlements.Refresh(context.Background())}
	}
}

// Config carries the collaborators the TUI composes.
type Config struct {
	API          *client.Client
	Sessions     *access.SessionManager
	Entitlements *access.EntitlementManager
	Guard        *access.Guard
	SaveToken    func(string) error
	Version      string
}

// App is the root Bubbletea model. It owns the route and applies the access
// guard on every navigation and on every state change notification.
type App struct {
	sessions     *access.SessionManager
	entitlements *access.EntitlementManager
	guard        *access.Guard
	version      string

	route     route
	gate      licenseGateModel
	login     loginModel
	register  registerModel
	dashboard dashboardModel
	roster    rosterModel
	matches   matchesModel
	stats     statsModel
	settings  settingsModel

	spin   spinner.Model
	toast  toastModel
	width  int
	height int
}

// NewApp creates the root model. The initial route is the dashboard: the
// guard decides what actually renders while the session resolves.
func NewApp(cfg Config) App {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = accentStyle
	return App{
		sessions:     cfg.Sessions,
		entitlements: cfg.Entitlements,
		guard:        cfg.Guard,
		version:      cfg.Version,
		route:        routeDashboard,
		gate:         newLicenseGateModel(cfg.API),
		login:        newLoginModel(cfg.Sessions),
		register:     newRegisterModel(cfg.API, cfg.Sessions, cfg.SaveToken),
		dashboard:    newDashboardModel(cfg.API, cfg.Entitlements),
		roster:       newRosterModel(cfg.API, cfg.Entitlements),
		matches:      newMatchesModel(cfg.API, cfg.Entitlements),
		stats:        newStatsModel(),
		settings:     newSettingsModel(cfg.Sessions, cfg.Entitlements),
		spin:         spin,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.resolveSession())
}

func (a App) resolveSession() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		return sessionResolvedMsg{err: sessions.Resolve(context.Background())}
	}
}

// navigate applies the guard to a navigation request. Deny swaps to the
// redirect target; Pending keeps the requested route and lets View render
// the placeholder; Allow initializes the target view.
func (a App) navigate(r route) (App, tea.Cmd) {
	switch d := a.guard.Decide(r.protected()); d.Verdict {
	case access.VerdictDeny:
		a.route = routeForPath(d.Redirect)
		return a, a.login.Init()
	case access.VerdictPending:
		a.route = r
		return a, nil
	}
	a.route = r
	return a, a.initFor(r)
}

func (a App) initFor(r route) tea.Cmd {
	switch r {
	case routeLicenseGate:
		return a.gate.Init()
	case routeLogin:
		return a.login.Init()
	case routeRegister:
		return a.register.Init()
	case routeDashboard:
		return a.dashboard.Init()
	case routeRoster:
		return a.roster.Init()
	case routeMatches:
		return a.matches.Init()
	case routeStats:
		return a.stats.Init()
	case routeSettings:
		return a.settings.Init()
	}
	return nil
}

// isEditing reports whether a text input currently captures plain keys.
func (a App) isEditing() bool {
	switch a.route {
	case routeLicenseGate, routeLogin, routeRegister:
		return true
	case routeSettings:
		return a.settings.editing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + toast(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.gate, _ = a.gate.Update(bodyMsg)
		a.login, _ = a.login.Update(bodyMsg)
		a.register, _ = a.register.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.roster, _ = a.roster.Update(bodyMsg)
		a.matches, _ = a.matches.Update(bodyMsg)
		a.stats, _ = a.stats.Update(bodyMsg)
		a.settings, _ = a.settings.Update(bodyMsg)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case toastMsg:
		var cmd tea.Cmd
		a.toast, cmd = a.toast.show(msg.kind, msg.text)
		return a, cmd

	case toastExpiredMsg:
		a.toast = a.toast.expire(msg)
		return a, nil

	case sessionResolvedMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			var cmd tea.Cmd
			a.toast, cmd = a.toast.show(toastError, "Could not verify the stored session")
			cmds = append(cmds, cmd)
		}
		var navCmd tea.Cmd
		a, navCmd = a.navigate(a.route)
		cmds = append(cmds, navCmd)
		if a.sessions.State() == access.StateAuthenticated {
			cmds = append(cmds, refreshLicenses(a.entitlements))
		}
		return a, tea.Batch(cmds...)

	case licensesLoadedMsg:
		if msg.err != nil && !errors.Is(msg.err, access.ErrUnauthenticated) {
			var cmd tea.Cmd
			a.toast, cmd = a.toast.show(toastError, "Could not load your licenses")
			return a, cmd
		}
		if a.route.protected() {
			// Views keyed on the current license reload their data.
			return a, a.initFor(a.route)
		}
		return a, nil

	case StateChangedMsg:
		// Re-apply the guard to the current route; a sign-out or session
		// expiry must push a protected view back to login.
		if a.route.protected() {
			if d := a.guard.Decide(true); d.Verdict == access.VerdictDeny {
				a.route = routeForPath(d.Redirect)
				return a, a.login.Init()
			}
		}
		return a, nil

	case signedInMsg:
		a.login, _ = a.login.Update(msg)
		a.register, _ = a.register.Update(msg)
		if msg.err != nil {
			return a, nil
		}
		var navCmd tea.Cmd
		a, navCmd = a.navigate(routeDashboard)
		var toastCmd tea.Cmd
		a.toast, toastCmd = a.toast.show(toastSuccess, "Signed in as "+msg.session.Email)
		return a, tea.Batch(navCmd, refreshLicenses(a.entitlements), toastCmd)

	case signedOutMsg:
		a.settings, _ = a.settings.Update(msg)
		if msg.err != nil {
			var cmd tea.Cmd
			a.toast, cmd = a.toast.show(toastError, "Could not sign out")
			return a, cmd
		}
		a.route = routeLogin
		var toastCmd tea.Cmd
		a.toast, toastCmd = a.toast.show(toastSuccess, "Signed out")
		return a, tea.Batch(a.login.Init(), toastCmd)

	case licenseValidatedMsg:
		a.gate, _ = a.gate.Update(msg)
		if msg.err != nil || msg.license == nil {
			return a, nil
		}
		a.register = a.register.setLicenseCode(msg.license.Code)
		a.route = routeRegister
		var cmd tea.Cmd
		a.toast, cmd = a.toast.show(toastSuccess, "License verified: "+msg.license.Name)
		return a, tea.Batch(a.register.Init(), cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if !a.route.protected() && a.route != routeLogin {
				return a.navApply(routeLogin)
			}
		case "ctrl+r":
			if !a.route.protected() && a.route != routeRegister {
				return a.navApply(routeRegister)
			}
		case "esc":
			if a.route == routeLogin || a.route == routeRegister {
				return a.navApply(routeLicenseGate)
			}
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				return a.navApply(routeDashboard)
			case "2":
				return a.navApply(routeRoster)
			case "3":
				return a.navApply(routeMatches)
			case "4":
				return a.navApply(routeStats)
			case "5":
				return a.navApply(routeSettings)
			}
		}
	}

	return a.updateRoute(msg)
}

// navApply adapts navigate to the (tea.Model, tea.Cmd) return shape.
func (a App) navApply(r route) (tea.Model, tea.Cmd) {
	next, cmd := a.navigate(r)
	return next, cmd
}

// updateRoute forwards a message to the active view's model.
func (a App) updateRoute(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case routeLicenseGate:
		a.gate, cmd = a.gate.Update(msg)
	case routeLogin:
		a.login, cmd = a.login.Update(msg)
	case routeRegister:
		a.register, cmd = a.register.Update(msg)
	case routeDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case routeRoster:
		a.roster, cmd = a.roster.Update(msg)
	case routeMatches:
		a.matches, cmd = a.matches.Update(msg)
	case routeStats:
		a.stats, cmd = a.stats.Update(msg)
	case routeSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

// body renders the guarded view for the current route.
func (a App) body() string {
	if a.route.protected() {
		switch d := a.guard.Decide(true); d.Verdict {
		case access.VerdictPending:
			return "\n  " + a.spin.View() + dimStyle.Render("verifying session...")
		case access.VerdictDeny:
			// Update normalizes the route on the next state change; until
			// then render the redirect target, never the protected view.
			return a.login.View()
		}
	}

	switch a.route {
	case routeLicenseGate:
		return a.gate.View()
	case routeLogin:
		return a.login.View()
	case routeRegister:
		return a.register.View()
	case routeDashboard:
		return a.dashboard.View()
	case routeRoster:
		return a.roster.View()
	case routeMatches:
		return a.matches.View()
	case routeStats:
		return a.stats.View()
	case routeSettings:
		return a.settings.View()
	}
	return ""
}

func (a App) tabBar() string {
	if a.sessions.State() != access.StateAuthenticated {
		return ""
	}
	type tabEntry struct {
		key  string
		name string
		r    route
	}
	tabs := []tabEntry{
		{"1", "Dashboard", routeDashboard},
		{"2", "Roster", routeRoster},
		{"3", "Matches", routeMatches},
		{"4", "Stats", routeStats},
		{"5", "Settings", routeSettings},
	}
	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.r == a.route {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}

func (a App) helpBar() string {
	switch {
	case a.route == routeLicenseGate:
		return " " + helpEntry("enter", "validate") + "  " + helpEntry("ctrl+l", "sign in") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+c", "quit")
	case a.route == routeLogin:
		return " " + helpEntry("enter", "sign in") + "  " + helpEntry("tab", "next") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("esc", "license") + "  " + helpEntry("ctrl+c", "quit")
	case a.route == routeRegister:
		return " " + helpEntry("enter", "next/submit") + "  " + helpEntry("tab", "next") + "  " + helpEntry("ctrl+l", "sign in") + "  " + helpEntry("esc", "license") + "  " + helpEntry("ctrl+c", "quit")
	case a.route == routeSettings:
		if a.settings.editing() {
			return " " + helpEntry("enter", "save") + "  " + helpEntry("tab", "next") + "  " + helpEntry("esc", "cancel")
		}
		return " " + helpEntry("1-5", "tabs") + "  " + helpEntry("p", "password") + "  " + helpEntry("c", "copy code") + "  " + helpEntry("r", "reload") + "  " + helpEntry("x", "sign out") + "  " + helpEntry("q", "quit")
	case a.route == routeRoster:
		return " " + helpEntry("1-5", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("r", "reload") + "  " + helpEntry("q", "quit")
	default:
		return " " + helpEntry("1-5", "tabs") + "  " + helpEntry("r", "reload") + "  " + helpEntry("q", "quit")
	}
}

func (a App) View() string {
	header := centerLine(renderLogo(), a.width)

	session, state := a.sessions.Current()
	meta := ""
	if state == access.StateAuthenticated {
		parts := []string{session.Email}
		if lic, ok := a.entitlements.Current(); ok {
			parts = append(parts, lic.Name)
		}
		meta = metaStyle.Render(strings.Join(parts, " · "))
	}
	if meta == "" {
		meta = metaStyle.Render("clubdesk " + a.version)
	}
	header += "\n" + centerLine(meta, a.width)

	body := strings.TrimRight(truncateToHeight(a.body(), a.height-5), "\n")
	toastLine := " " + a.toast.View()

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, a.tabBar(), body, toastLine, a.helpBar())
}
