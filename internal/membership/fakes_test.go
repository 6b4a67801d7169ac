package membership

import (
	"context"
	"sync"
)

// Fake AuthPort
type fakeAuthPort struct {
	mu sync.Mutex

	session *Session
	profile *ProfileRecord

	getSessionFunc     func(ctx context.Context) (*Session, error)
	getFullProfileFunc func(ctx context.Context, userID string) (*ProfileRecord, error)
	updateProfileFunc  func(ctx context.Context, userID string, patch ProfilePatch) error

	updates   []ProfilePatch
	callbacks []func(event AuthEvent, session *Session)
}

func (f *fakeAuthPort) GetSession(ctx context.Context) (*Session, error) {
	if f.getSessionFunc != nil {
		return f.getSessionFunc(ctx)
	}
	return f.session, nil
}

func (f *fakeAuthPort) GetFullProfile(ctx context.Context, userID string) (*ProfileRecord, error) {
	if f.getFullProfileFunc != nil {
		return f.getFullProfileFunc(ctx, userID)
	}
	return f.profile, nil
}

func (f *fakeAuthPort) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) error {
	f.mu.Lock()
	f.updates = append(f.updates, patch)
	f.mu.Unlock()
	if f.updateProfileFunc != nil {
		return f.updateProfileFunc(ctx, userID, patch)
	}
	return nil
}

func (f *fakeAuthPort) OnAuthStateChange(cb func(event AuthEvent, session *Session)) Unsubscribe {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, cb)
	idx := len(f.callbacks) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.callbacks[idx] = nil
	}
}

// emit delivers an auth event to every live subscriber, synchronously.
func (f *fakeAuthPort) emit(event AuthEvent, session *Session) {
	f.mu.Lock()
	cbs := make([]func(AuthEvent, *Session), len(f.callbacks))
	copy(cbs, f.callbacks)
	f.mu.Unlock()
	for _, cb := range cbs {
		if cb != nil {
			cb(event, session)
		}
	}
}

func (f *fakeAuthPort) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeAuthPort) lastUpdate() ProfilePatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[len(f.updates)-1]
}

// Fake DirectoryPort
type fakeDirectoryPort struct {
	teamByIDFunc            func(ctx context.Context, teamID string) (*TeamRecord, error)
	officerHolderFunc       func(ctx context.Context, teamID string, office Role) (*ProfileRecord, error)
	demoteToAdminFunc       func(ctx context.Context, profileID string) error
	insertTeamFunc          func(ctx context.Context, details TeamDetails) (*TeamRecord, error)
	updateTeamFlagsFunc     func(ctx context.Context, teamID string, patch TeamFlagPatch) error
	profileByIDFunc         func(ctx context.Context, profileID string) (*ProfileRecord, error)
	updateProfileFieldsFunc func(ctx context.Context, profileID string, patch ProfilePatch) error

	demoted      []string
	memberWrites []ProfilePatch
	teamWrites   []TeamFlagPatch
}

func (f *fakeDirectoryPort) TeamByID(ctx context.Context, teamID string) (*TeamRecord, error) {
	if f.teamByIDFunc != nil {
		return f.teamByIDFunc(ctx, teamID)
	}
	return &TeamRecord{ID: teamID, Name: "FC Test"}, nil
}

func (f *fakeDirectoryPort) OfficerHolder(ctx context.Context, teamID string, office Role) (*ProfileRecord, error) {
	if f.officerHolderFunc != nil {
		return f.officerHolderFunc(ctx, teamID, office)
	}
	return nil, nil
}

func (f *fakeDirectoryPort) DemoteToAdmin(ctx context.Context, profileID string) error {
	f.demoted = append(f.demoted, profileID)
	if f.demoteToAdminFunc != nil {
		return f.demoteToAdminFunc(ctx, profileID)
	}
	return nil
}

func (f *fakeDirectoryPort) InsertTeam(ctx context.Context, details TeamDetails) (*TeamRecord, error) {
	if f.insertTeamFunc != nil {
		return f.insertTeamFunc(ctx, details)
	}
	return &TeamRecord{ID: "team-1", Name: details.Name, Description: details.Description}, nil
}

func (f *fakeDirectoryPort) UpdateTeamFlags(ctx context.Context, teamID string, patch TeamFlagPatch) error {
	f.teamWrites = append(f.teamWrites, patch)
	if f.updateTeamFlagsFunc != nil {
		return f.updateTeamFlagsFunc(ctx, teamID, patch)
	}
	return nil
}

func (f *fakeDirectoryPort) ProfileByID(ctx context.Context, profileID string) (*ProfileRecord, error) {
	if f.profileByIDFunc != nil {
		return f.profileByIDFunc(ctx, profileID)
	}
	return &ProfileRecord{ID: profileID}, nil
}

func (f *fakeDirectoryPort) UpdateProfileFields(ctx context.Context, profileID string, patch ProfilePatch) error {
	f.memberWrites = append(f.memberWrites, patch)
	if f.updateProfileFieldsFunc != nil {
		return f.updateProfileFieldsFunc(ctx, profileID, patch)
	}
	return nil
}

// Fake Navigator
type fakeNavigator struct {
	current Route
	moves   []Route
}

func (f *fakeNavigator) CurrentPath() Route { return f.current }

func (f *fakeNavigator) Navigate(to Route) {
	f.moves = append(f.moves, to)
	f.current = to
}

// signedInStore returns a store pre-populated as an authenticated user.
func signedInStore(snap Snapshot) (*Store, *fakeAuthPort, *fakeDirectoryPort) {
	auth := &fakeAuthPort{}
	dir := &fakeDirectoryPort{}
	s := NewStore(auth, dir, nil)
	s.snap = snap
	s.snap.IsInitialized = true
	return s, auth, dir
}
