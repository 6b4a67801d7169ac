package membership

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestBootstrapInitialLoad(t *testing.T) {
	auth := &fakeAuthPort{
		session: &Session{UserID: "u1", Email: "u1@club.test"},
		profile: &ProfileRecord{
			ID:           "u1",
			DisplayName:  "User One",
			Role:         RolePlayer,
			IntendedRole: RolePresident,
			Status:       StatusApproved,
		},
	}
	store := NewStore(auth, &fakeDirectoryPort{}, nil)
	b := NewBootstrapper(store, auth, nil)

	b.Start(context.Background())
	defer b.Stop()

	snap := store.Snapshot()
	if !snap.IsInitialized {
		t.Fatal("store must be initialized after the first load")
	}
	if snap.UserID != "u1" {
		t.Errorf("expected user u1, got %q", snap.UserID)
	}
	if snap.IntendedRole != RolePresident {
		t.Errorf("expected intended role president, got %q", snap.IntendedRole)
	}
}

func TestBootstrapNoSessionIsAnonymous(t *testing.T) {
	auth := &fakeAuthPort{}
	store := NewStore(auth, &fakeDirectoryPort{}, nil)
	b := NewBootstrapper(store, auth, nil)

	b.Start(context.Background())
	defer b.Stop()

	snap := store.Snapshot()
	if !snap.IsInitialized {
		t.Fatal("store must be initialized even without a session")
	}
	if snap.Authenticated() {
		t.Errorf("expected anonymous snapshot, got user %q", snap.UserID)
	}
}

func TestBootstrapSingleFlight(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	auth := &fakeAuthPort{
		getSessionFunc: func(ctx context.Context) (*Session, error) {
			if calls.Add(1) == 1 {
				close(entered)
			}
			<-release
			return nil, nil
		},
	}
	store := NewStore(auth, &fakeDirectoryPort{}, nil)
	b := NewBootstrapper(store, auth, nil)
	b.ctx = context.Background()
	b.alive.Store(true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.load(context.Background())
	}()
	<-entered

	// With one load in flight, further calls must return without fetching.
	for i := 0; i < 5; i++ {
		b.load(context.Background())
	}

	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly one session fetch, got %d", got)
	}
}

func TestBootstrapSignedOutResets(t *testing.T) {
	auth := &fakeAuthPort{
		session: &Session{UserID: "u1"},
		profile: &ProfileRecord{ID: "u1", Role: RolePresident, TeamID: "t1", Status: StatusApproved},
	}
	store := NewStore(auth, &fakeDirectoryPort{}, nil)
	b := NewBootstrapper(store, auth, nil)
	b.Start(context.Background())
	defer b.Stop()

	if !store.Snapshot().Authenticated() {
		t.Fatal("precondition: signed in")
	}

	auth.emit(EventSignedOut, nil)

	snap := store.Snapshot()
	if snap.Authenticated() {
		t.Errorf("expected anonymous snapshot after sign-out, got user %q", snap.UserID)
	}
	if !snap.IsInitialized {
		t.Error("initialization must survive a sign-out")
	}
}

func TestBootstrapUserUpdatedRefetches(t *testing.T) {
	auth := &fakeAuthPort{
		session: &Session{UserID: "u1"},
		profile: &ProfileRecord{ID: "u1", Role: RolePlayer, Status: StatusPending, TeamID: "t1"},
	}
	store := NewStore(auth, &fakeDirectoryPort{}, nil)
	b := NewBootstrapper(store, auth, nil)
	b.Start(context.Background())
	defer b.Stop()

	if store.Snapshot().Status != StatusPending {
		t.Fatal("precondition: pending")
	}

	// An officer approved this member; the backend row changed.
	auth.profile = &ProfileRecord{ID: "u1", Role: RolePresident, Status: StatusApproved, TeamID: "t1"}
	auth.emit(EventUserUpdated, nil)

	snap := store.Snapshot()
	if snap.Status != StatusApproved {
		t.Errorf("expected refetched status approved, got %q", snap.Status)
	}
	if snap.Role != RolePresident {
		t.Errorf("expected refetched role president, got %q", snap.Role)
	}
}

func TestBootstrapStopIgnoresLateEvents(t *testing.T) {
	auth := &fakeAuthPort{
		session: &Session{UserID: "u1"},
		profile: &ProfileRecord{ID: "u1", Role: RolePlayer, Status: StatusApproved},
	}
	store := NewStore(auth, &fakeDirectoryPort{}, nil)
	b := NewBootstrapper(store, auth, nil)
	b.Start(context.Background())
	b.Stop()

	before := store.Snapshot()
	auth.profile = &ProfileRecord{ID: "u1", Role: RolePresident, Status: StatusApproved}
	auth.emit(EventUserUpdated, nil)

	after := store.Snapshot()
	if after.Role != before.Role {
		t.Errorf("a stopped bootstrapper must not write, role went %q -> %q", before.Role, after.Role)
	}
}
