package membership

import (
	"sync"
	"time"
)

// Route is a client screen path.
type Route string

const (
	RouteLogin         Route = "/login"
	RouteRegister      Route = "/register"
	RouteResetPassword Route = "/reset-password"

	RouteOnboardRole    Route = "/onboarding/role"
	RouteOnboardTeam    Route = "/onboarding/team"
	RouteOnboardPrivacy Route = "/onboarding/privacy"
	RouteOnboardProfile Route = "/onboarding/profile"

	RouteAwaitingApproval Route = "/awaiting-approval"
	RouteHome             Route = "/home"

	// RouteStats is the diagnostic escape hatch: reachable in any lifecycle
	// state so an authenticated user can always inspect their own data.
	RouteStats Route = "/stats"
)

// LifecycleState is the stage a snapshot is in. It is derived, never stored.
type LifecycleState string

const (
	StateAuthPending      LifecycleState = "auth_pending"
	StateAnonymous        LifecycleState = "anonymous"
	StateOnboardRole      LifecycleState = "onboard_role"
	StateOnboardTeam      LifecycleState = "onboard_team"
	StateOnboardPrivacy   LifecycleState = "onboard_privacy"
	StateOnboardProfile   LifecycleState = "onboard_profile"
	StateAwaitingApproval LifecycleState = "awaiting_approval"
	StateActive           LifecycleState = "active"
)

// Route maps a lifecycle state to its single correct screen.
func (s LifecycleState) Route() Route {
	switch s {
	case StateAnonymous:
		return RouteLogin
	case StateOnboardRole:
		return RouteOnboardRole
	case StateOnboardTeam:
		return RouteOnboardTeam
	case StateOnboardPrivacy:
		return RouteOnboardPrivacy
	case StateOnboardProfile:
		return RouteOnboardProfile
	case StateAwaitingApproval:
		return RouteAwaitingApproval
	case StateActive:
		return RouteHome
	}
	return RouteLogin
}

// DeriveState computes the lifecycle stage for a snapshot. The current path
// only matters for telling the privacy and profile onboarding steps apart:
// a user standing on the privacy step stays there, forward progression is
// the user's move, never the router's.
func DeriveState(snap Snapshot, current Route) LifecycleState {
	if !snap.IsInitialized {
		return StateAuthPending
	}
	if !snap.Authenticated() {
		return StateAnonymous
	}
	if !snap.IsSetupComplete {
		if snap.IntendedRole == RoleNone {
			// Also the fallback for combinations the mutators should have
			// made impossible, such as a team with no intended role.
			return StateOnboardRole
		}
		if snap.TeamID == "" {
			return StateOnboardTeam
		}
		if current == RouteOnboardProfile {
			return StateOnboardProfile
		}
		return StateOnboardPrivacy
	}
	if snap.TeamID == "" {
		// A rejected member keeps their intent but has no team; send them
		// back to team selection rather than the main screen.
		if snap.IntendedRole == RoleNone {
			return StateOnboardRole
		}
		return StateOnboardTeam
	}
	if snap.Status == StatusApproved || snap.IsFirstManager {
		return StateActive
	}
	return StateAwaitingApproval
}

// ComputeIdealRoute is the pure decision function of the smart router.
func ComputeIdealRoute(snap Snapshot, current Route) Route {
	return DeriveState(snap, current).Route()
}

// IsPublicRoute reports whether a path is reachable without a session.
func IsPublicRoute(r Route) bool {
	switch r {
	case RouteLogin, RouteRegister, RouteResetPassword:
		return true
	}
	return false
}

// isLifecycleScreen reports whether the router owns the screen, i.e. may
// move the user off it when the snapshot disagrees.
func isLifecycleScreen(r Route) bool {
	switch r {
	case RouteOnboardRole, RouteOnboardTeam, RouteOnboardPrivacy,
		RouteOnboardProfile, RouteAwaitingApproval:
		return true
	}
	return false
}

// Navigator is the navigation side effect the router drives.
type Navigator interface {
	CurrentPath() Route
	Navigate(to Route)
}

const redirectDebounce = 300 * time.Millisecond

// Router compares the ideal route for the current snapshot against the
// current path and navigates only when they disagree. It holds no lifecycle
// state of its own and never returns an error: malformed snapshots degrade
// to the least-privileged onboarding step inside DeriveState.
type Router struct {
	store *Store
	nav   Navigator

	mu          sync.Mutex
	redirecting bool
	timer       *time.Timer
	debounce    time.Duration
}

// NewRouter wires a router to a store and a navigator.
func NewRouter(store *Store, nav Navigator) *Router {
	return &Router{store: store, nav: nav, debounce: redirectDebounce}
}

// IsRedirecting reports whether a navigation was issued within the debounce
// window. Callers use it to suppress flicker; it gates nothing.
func (r *Router) IsRedirecting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redirecting
}

// Sync recomputes the ideal route and issues at most one navigation. Call it
// on every change to the snapshot or the current path. Re-running it with an
// unchanged snapshot is a no-op.
func (r *Router) Sync() {
	snap := r.store.Snapshot()
	if !snap.IsInitialized {
		// Undefined snapshot: no redirect decision yet.
		return
	}
	current := r.nav.CurrentPath()

	if !snap.Authenticated() {
		if !IsPublicRoute(current) {
			r.redirect(current, RouteLogin)
		}
		return
	}

	if current == RouteStats {
		return
	}

	ideal := ComputeIdealRoute(snap, current)
	switch {
	case IsPublicRoute(current):
		// Authenticated user on the anonymous entry point.
		r.redirect(current, ideal)
	case current == RouteHome && ideal != RouteHome:
		// A stale or cached session must not park on the main screen.
		r.redirect(current, ideal)
	case isLifecycleScreen(current) && current != ideal:
		r.redirect(current, ideal)
	}
}

func (r *Router) redirect(from, to Route) {
	if from == to {
		return
	}
	r.nav.Navigate(to)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirecting = true
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		r.mu.Lock()
		r.redirecting = false
		r.mu.Unlock()
	})
}
