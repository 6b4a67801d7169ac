package membership

import (
	"context"
	"errors"
	"sync"

	"rosterhub/internal/logging"
)

// Snapshot is the read view of one user's membership lifecycle. Screens and
// handlers consume snapshots; only the store mutators change them.
type Snapshot struct {
	UserID          string
	DisplayName     string
	AvatarURL       string
	Role            Role
	IntendedRole    Role
	TeamID          string
	Status          Status
	IsFirstManager  bool
	IsSetupComplete bool

	IsLoading     bool
	IsInitialized bool
	Err           string
}

// Authenticated reports whether the snapshot belongs to a signed-in user.
func (s Snapshot) Authenticated() bool {
	return s.UserID != ""
}

// Store holds the authoritative in-memory snapshot of one user's identity,
// role, team linkage and lifecycle flags. Mutators persist through the ports
// first and update local state only after the write succeeds; a failed write
// leaves the snapshot untouched and fills the error slot.
type Store struct {
	mu     sync.Mutex
	auth   AuthPort
	dir    DirectoryPort
	logger *logging.Logger
	snap   Snapshot
}

// NewStore creates a store in the anonymous default state.
func NewStore(auth AuthPort, dir DirectoryPort, logger *logging.Logger) *Store {
	return &Store{
		auth:   auth,
		dir:    dir,
		logger: logger,
		snap:   Snapshot{Status: StatusApproved},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// ClearError empties the error slot so the UI can dismiss a stale message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Err = ""
}

// apply replaces the profile fields from a freshly loaded record.
// Initialization and loading flags are preserved.
func (s *Store) apply(rec *ProfileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.UserID = rec.ID
	s.snap.DisplayName = rec.DisplayName
	s.snap.AvatarURL = rec.AvatarURL
	s.snap.Role = rec.Role
	s.snap.IntendedRole = rec.IntendedRole
	s.snap.TeamID = rec.TeamID
	s.snap.Status = rec.Status
	s.snap.IsFirstManager = rec.IsFirstManager
	s.snap.IsSetupComplete = rec.IsSetupComplete
}

// resetAnonymous returns the store to the signed-out default.
func (s *Store) resetAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	init := s.snap.IsInitialized
	s.snap = Snapshot{Status: StatusApproved, IsInitialized: init}
}

func (s *Store) markInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.IsInitialized = true
}

// fail records err in the error slot and returns it unchanged so callers get
// immediate feedback while screens read the slot.
func (s *Store) fail(err error) error {
	s.snap.Err = err.Error()
	s.snap.IsLoading = false
	if s.logger != nil {
		s.logger.Warn("membership mutation failed for user %s: %v", s.snap.UserID, err)
	}
	return err
}

// SetIntendedRole persists the role the user wants without granting it.
// Actual authority only arrives through team creation or approval.
func (s *Store) SetIntendedRole(ctx context.Context, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return s.fail(ErrUnauthenticated)
	}
	s.snap.IsLoading = true
	r := role
	if err := s.auth.UpdateProfile(ctx, s.snap.UserID, ProfilePatch{IntendedRole: &r}); err != nil {
		return s.fail(err)
	}
	s.snap.IntendedRole = role
	s.snap.IsLoading = false
	return nil
}

// CreateTeam founds a new team. Only a user whose effective role is an
// officer role may found one; the founder is auto-approved and becomes the
// team's first manager. Returns the new team id.
func (s *Store) CreateTeam(ctx context.Context, details TeamDetails) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return "", s.fail(ErrUnauthenticated)
	}
	eff := EffectiveRole(s.snap.Role, s.snap.IntendedRole)
	if !eff.IsOfficer() {
		return "", s.fail(ErrPermissionDenied)
	}
	s.snap.IsLoading = true

	team, err := s.dir.InsertTeam(ctx, details)
	if err != nil {
		return "", s.fail(err)
	}

	approved := StatusApproved
	first := true
	patch := ProfilePatch{
		TeamID:         &team.ID,
		Role:           &eff,
		Status:         &approved,
		IsFirstManager: &first,
	}
	if err := s.auth.UpdateProfile(ctx, s.snap.UserID, patch); err != nil {
		return "", s.fail(err)
	}
	if err := s.dir.UpdateTeamFlags(ctx, team.ID, TeamFlagPatch{HasFirstManager: &first}); err != nil {
		return "", s.fail(err)
	}

	s.snap.TeamID = team.ID
	s.snap.Role = eff
	s.snap.Status = StatusApproved
	s.snap.IsFirstManager = true
	s.snap.IsLoading = false
	return team.ID, nil
}

// JoinTeam requests membership of an existing team. An officer-role joiner
// becomes first manager when the team has none yet; everyone else goes into
// the pending queue with their ambition preserved in intendedRole.
func (s *Store) JoinTeam(ctx context.Context, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return s.fail(ErrUnauthenticated)
	}
	s.snap.IsLoading = true

	team, err := s.dir.TeamByID(ctx, teamID)
	if err != nil {
		return s.fail(err)
	}

	eff := EffectiveRole(s.snap.Role, s.snap.IntendedRole)
	if eff.IsOfficer() && !team.HasFirstManager {
		approved := StatusApproved
		first := true
		patch := ProfilePatch{
			TeamID:         &team.ID,
			Role:           &eff,
			Status:         &approved,
			IsFirstManager: &first,
		}
		if err := s.auth.UpdateProfile(ctx, s.snap.UserID, patch); err != nil {
			return s.fail(err)
		}
		if err := s.dir.UpdateTeamFlags(ctx, team.ID, TeamFlagPatch{HasFirstManager: &first}); err != nil {
			return s.fail(err)
		}
		s.snap.TeamID = team.ID
		s.snap.Role = eff
		s.snap.Status = StatusApproved
		s.snap.IsFirstManager = true
		s.snap.IsLoading = false
		return nil
	}

	player := RolePlayer
	pending := StatusPending
	patch := ProfilePatch{
		TeamID:       &team.ID,
		Role:         &player,
		Status:       &pending,
		IntendedRole: &eff,
	}
	if err := s.auth.UpdateProfile(ctx, s.snap.UserID, patch); err != nil {
		return s.fail(err)
	}
	s.snap.TeamID = team.ID
	s.snap.Role = RolePlayer
	s.snap.Status = StatusPending
	s.snap.IntendedRole = eff
	s.snap.IsLoading = false
	return nil
}

// UpdateMemberRole changes another member's granted role. When the new role
// is an office already held by someone else, the incumbent is demoted to
// admin first so the office never has two approved holders. Failures are
// reported through the error slot; the return value only signals success.
func (s *Store) UpdateMemberRole(ctx context.Context, targetID string, currentRole, newRole Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		s.fail(ErrUnauthenticated)
		return false
	}
	if !s.snap.Role.IsOfficer() {
		s.fail(ErrPermissionDenied)
		return false
	}
	if newRole == currentRole {
		return true
	}
	s.snap.IsLoading = true

	if newRole.IsOfficer() {
		holder, err := s.dir.OfficerHolder(ctx, s.snap.TeamID, newRole)
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.fail(err)
			return false
		}
		if holder != nil && holder.ID != targetID {
			if err := s.dir.DemoteToAdmin(ctx, holder.ID); err != nil {
				s.fail(err)
				return false
			}
		}
	}

	r := newRole
	if err := s.dir.UpdateProfileFields(ctx, targetID, ProfilePatch{Role: &r}); err != nil {
		s.fail(err)
		return false
	}
	if targetID == s.snap.UserID {
		s.snap.Role = newRole
	}
	s.snap.IsLoading = false
	return true
}

// ApproveMember grants a pending member the role they asked for. Approval
// into an occupied office is refused outright, before any write, so the
// applicant is never half-approved.
func (s *Store) ApproveMember(ctx context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return s.fail(ErrUnauthenticated)
	}
	if !s.snap.Role.IsOfficer() {
		return s.fail(ErrPermissionDenied)
	}
	s.snap.IsLoading = true

	member, err := s.dir.ProfileByID(ctx, memberID)
	if err != nil {
		return s.fail(err)
	}

	resolved := member.IntendedRole
	if resolved == RoleNone {
		resolved = member.Role
	}
	if resolved == RoleNone {
		resolved = RolePlayer
	}

	if resolved.IsOfficer() {
		holder, err := s.dir.OfficerHolder(ctx, s.snap.TeamID, resolved)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return s.fail(err)
		}
		if holder != nil && holder.ID != memberID {
			return s.fail(&ConflictError{Office: resolved})
		}
	}

	team, err := s.dir.TeamByID(ctx, s.snap.TeamID)
	if err != nil {
		return s.fail(err)
	}

	approved := StatusApproved
	r := resolved
	if err := s.dir.UpdateProfileFields(ctx, memberID, ProfilePatch{Status: &approved, Role: &r}); err != nil {
		return s.fail(err)
	}
	count := team.MemberCount + 1
	if err := s.dir.UpdateTeamFlags(ctx, team.ID, TeamFlagPatch{MemberCount: &count}); err != nil {
		return s.fail(err)
	}

	s.snap.IsLoading = false
	return nil
}

// RejectMember turns a pending member away and releases them to apply
// elsewhere. Rejection is not terminal: the cleared team linkage lets the
// same user join another team later, and their intendedRole survives.
func (s *Store) RejectMember(ctx context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return s.fail(ErrUnauthenticated)
	}
	if !s.snap.Role.IsOfficer() {
		return s.fail(ErrPermissionDenied)
	}
	s.snap.IsLoading = true

	rejected := StatusRejected
	noTeam := ""
	if err := s.dir.UpdateProfileFields(ctx, memberID, ProfilePatch{Status: &rejected, TeamID: &noTeam}); err != nil {
		return s.fail(err)
	}

	s.snap.IsLoading = false
	return nil
}

// CompleteSetup marks the onboarding wizard as fully walked.
func (s *Store) CompleteSetup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.Authenticated() {
		return s.fail(ErrUnauthenticated)
	}
	s.snap.IsLoading = true
	done := true
	if err := s.auth.UpdateProfile(ctx, s.snap.UserID, ProfilePatch{IsSetupComplete: &done}); err != nil {
		return s.fail(err)
	}
	s.snap.IsSetupComplete = true
	s.snap.IsLoading = false
	return nil
}
