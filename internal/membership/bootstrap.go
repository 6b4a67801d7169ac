package membership

import (
	"context"
	"sync/atomic"

	"rosterhub/internal/logging"
)

// Bootstrapper resolves the session behind a store, loads the full profile
// and keeps the store in sync with asynchronous auth events. A single-flight
// guard ensures at most one profile load is in flight; a liveness flag keeps
// late callbacks from writing into a stopped store.
type Bootstrapper struct {
	store    *Store
	auth     AuthPort
	logger   *logging.Logger
	inFlight atomic.Bool
	alive    atomic.Bool
	unsub    Unsubscribe
	ctx      context.Context
}

// NewBootstrapper wires a bootstrapper to a store and its auth port.
func NewBootstrapper(store *Store, auth AuthPort, logger *logging.Logger) *Bootstrapper {
	return &Bootstrapper{store: store, auth: auth, logger: logger}
}

// Start performs the initial session resolution and subscribes to auth
// events. It is safe to call exactly once per bootstrapper.
func (b *Bootstrapper) Start(ctx context.Context) {
	b.ctx = ctx
	b.alive.Store(true)
	b.unsub = b.auth.OnAuthStateChange(func(event AuthEvent, session *Session) {
		if !b.alive.Load() {
			return
		}
		b.handleEvent(event, session)
	})
	b.load(ctx)
}

// Stop marks the bootstrapper dead and tears down the subscription. Any
// profile load still in flight becomes a no-op.
func (b *Bootstrapper) Stop() {
	b.alive.Store(false)
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
}

// load fetches the session and full profile and applies them to the store.
// A concurrent caller observes the in-flight guard and exits without side
// effects.
func (b *Bootstrapper) load(ctx context.Context) {
	if !b.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer b.inFlight.Store(false)

	sess, err := b.auth.GetSession(ctx)
	if err != nil {
		if b.logger != nil {
			b.logger.Error("session resolution failed: %v", err)
		}
		if b.alive.Load() {
			b.store.resetAnonymous()
			b.store.markInitialized()
		}
		return
	}
	if sess == nil {
		if b.alive.Load() {
			b.store.resetAnonymous()
			b.store.markInitialized()
		}
		return
	}

	rec, err := b.auth.GetFullProfile(ctx, sess.UserID)
	if !b.alive.Load() {
		return
	}
	if err != nil || rec == nil {
		if err != nil && b.logger != nil {
			b.logger.Error("profile load failed for user %s: %v", sess.UserID, err)
		}
		b.store.resetAnonymous()
		b.store.markInitialized()
		return
	}
	b.store.apply(rec)
	b.store.markInitialized()
}

func (b *Bootstrapper) handleEvent(event AuthEvent, _ *Session) {
	switch event {
	case EventSignedOut:
		b.store.resetAnonymous()
		b.store.markInitialized()
	case EventSignedIn, EventUserUpdated:
		b.load(b.ctx)
	default:
		// Unknown events still end the initializing phase.
		b.store.markInitialized()
	}
}
