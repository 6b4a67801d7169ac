package membership

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestSetIntendedRole(t *testing.T) {
	s, auth, _ := signedInStore(Snapshot{UserID: "u1", Role: RolePlayer, Status: StatusApproved})

	if err := s.SetIntendedRole(context.Background(), RolePresident); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if snap.IntendedRole != RolePresident {
		t.Errorf("expected intended role president, got %q", snap.IntendedRole)
	}
	if snap.Role != RolePlayer {
		t.Errorf("granted role must not change, got %q", snap.Role)
	}
	if auth.updateCount() != 1 {
		t.Errorf("expected one persisted update, got %d", auth.updateCount())
	}
}

func TestSetIntendedRoleUnauthenticated(t *testing.T) {
	auth := &fakeAuthPort{}
	s := NewStore(auth, &fakeDirectoryPort{}, nil)

	err := s.SetIntendedRole(context.Background(), RolePresident)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if auth.updateCount() != 0 {
		t.Errorf("no write may happen before the auth check, got %d writes", auth.updateCount())
	}
	if s.Snapshot().Err == "" {
		t.Error("expected the error slot to be filled")
	}
}

func TestSetIntendedRoleBackendFailure(t *testing.T) {
	s, auth, _ := signedInStore(Snapshot{UserID: "u1", Status: StatusApproved})
	auth.updateProfileFunc = func(ctx context.Context, userID string, patch ProfilePatch) error {
		return fmt.Errorf("backend unavailable")
	}

	if err := s.SetIntendedRole(context.Background(), RoleAdmin); err == nil {
		t.Fatal("expected error")
	}

	snap := s.Snapshot()
	if snap.IntendedRole != RoleNone {
		t.Errorf("failed write must not change local state, got intended role %q", snap.IntendedRole)
	}
	if snap.Err == "" {
		t.Error("expected the error slot to be filled")
	}
	if snap.IsLoading {
		t.Error("loading flag must be cleared after a failure")
	}
}

// Scenario: a user who chose president founds a team and lands active.
func TestCreateTeamFounderBecomesFirstManager(t *testing.T) {
	s, auth, dir := signedInStore(Snapshot{
		UserID:       "u1",
		Role:         RolePlayer,
		IntendedRole: RolePresident,
		Status:       StatusApproved,
	})

	teamID, err := s.CreateTeam(context.Background(), TeamDetails{Name: "FC Test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if teamID == "" {
		t.Fatal("expected a team id")
	}

	snap := s.Snapshot()
	if snap.Role != RolePresident {
		t.Errorf("expected role president, got %q", snap.Role)
	}
	if snap.Status != StatusApproved {
		t.Errorf("expected status approved, got %q", snap.Status)
	}
	if !snap.IsFirstManager {
		t.Error("founder must become first manager")
	}
	if snap.TeamID != teamID {
		t.Errorf("expected team %q, got %q", teamID, snap.TeamID)
	}
	if got := ComputeIdealRoute(snap, RouteHome); got != RouteHome {
		t.Errorf("founder should be active, ideal route %q", got)
	}

	patch := auth.lastUpdate()
	if patch.IsFirstManager == nil || !*patch.IsFirstManager {
		t.Error("persisted patch must set first manager")
	}
	if len(dir.teamWrites) != 1 || dir.teamWrites[0].HasFirstManager == nil || !*dir.teamWrites[0].HasFirstManager {
		t.Error("team must be flagged as having a first manager")
	}
}

func TestCreateTeamRequiresOfficerIntent(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{UserID: "u1", Role: RolePlayer, Status: StatusApproved})

	_, err := s.CreateTeam(context.Background(), TeamDetails{Name: "FC Test"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(dir.teamWrites) != 0 {
		t.Error("no team write may happen for a non-officer")
	}
}

// Scenario: a second president hopeful joining a managed team goes pending.
func TestJoinTeamGoesPendingWhenFirstManagerExists(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID:       "u2",
		Role:         RolePlayer,
		IntendedRole: RolePresident,
		Status:       StatusApproved,
	})
	dir.teamByIDFunc = func(ctx context.Context, teamID string) (*TeamRecord, error) {
		return &TeamRecord{ID: teamID, Name: "FC Test", HasFirstManager: true}, nil
	}

	if err := s.JoinTeam(context.Background(), "team-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if snap.Role != RolePlayer {
		t.Errorf("joiner must not be granted an office, got %q", snap.Role)
	}
	if snap.Status != StatusPending {
		t.Errorf("expected status pending, got %q", snap.Status)
	}
	if snap.IntendedRole != RolePresident {
		t.Errorf("ambition must survive the join, got %q", snap.IntendedRole)
	}
	if got := ComputeIdealRoute(snap, RouteHome); got != RouteAwaitingApproval {
		t.Errorf("pending joiner should wait for approval, ideal route %q", got)
	}
}

func TestJoinTeamOfficerClaimsUnmanagedTeam(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID:       "u2",
		IntendedRole: RoleVicePresident,
		Status:       StatusApproved,
	})
	dir.teamByIDFunc = func(ctx context.Context, teamID string) (*TeamRecord, error) {
		return &TeamRecord{ID: teamID, Name: "FC Test", HasFirstManager: false}, nil
	}

	if err := s.JoinTeam(context.Background(), "team-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if snap.Role != RoleVicePresident {
		t.Errorf("expected role vice_president, got %q", snap.Role)
	}
	if snap.Status != StatusApproved {
		t.Errorf("expected auto-approval, got %q", snap.Status)
	}
	if !snap.IsFirstManager {
		t.Error("first officer into an unmanaged team becomes first manager")
	}
}

func TestJoinTeamNotFound(t *testing.T) {
	s, auth, dir := signedInStore(Snapshot{UserID: "u2", Status: StatusApproved})
	dir.teamByIDFunc = func(ctx context.Context, teamID string) (*TeamRecord, error) {
		return nil, ErrNotFound
	}

	if err := s.JoinTeam(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if auth.updateCount() != 0 {
		t.Error("no profile write may happen when the team lookup fails")
	}
}

// Scenario: approval into a vacant office grants the asked-for role.
func TestApproveMemberGrantsIntendedRole(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID: "officer",
		Role:   RolePresident,
		TeamID: "team-1",
		Status: StatusApproved,
	})
	dir.profileByIDFunc = func(ctx context.Context, profileID string) (*ProfileRecord, error) {
		return &ProfileRecord{
			ID:           profileID,
			Role:         RolePlayer,
			IntendedRole: RoleVicePresident,
			TeamID:       "team-1",
			Status:       StatusPending,
		}, nil
	}
	dir.teamByIDFunc = func(ctx context.Context, teamID string) (*TeamRecord, error) {
		return &TeamRecord{ID: teamID, MemberCount: 4, HasFirstManager: true}, nil
	}

	if err := s.ApproveMember(context.Background(), "u2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dir.memberWrites) != 1 {
		t.Fatalf("expected one member write, got %d", len(dir.memberWrites))
	}
	w := dir.memberWrites[0]
	if w.Status == nil || *w.Status != StatusApproved {
		t.Error("member must be approved")
	}
	if w.Role == nil || *w.Role != RoleVicePresident {
		t.Errorf("member must receive the intended role, got %v", w.Role)
	}
	if len(dir.teamWrites) != 1 || dir.teamWrites[0].MemberCount == nil || *dir.teamWrites[0].MemberCount != 5 {
		t.Error("member count must increment by one")
	}
}

// Scenario: approval into an occupied office is refused before any write.
func TestApproveMemberConflict(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID: "officer",
		Role:   RoleVicePresident,
		TeamID: "team-1",
		Status: StatusApproved,
	})
	dir.profileByIDFunc = func(ctx context.Context, profileID string) (*ProfileRecord, error) {
		return &ProfileRecord{ID: profileID, IntendedRole: RolePresident, Status: StatusPending}, nil
	}
	dir.officerHolderFunc = func(ctx context.Context, teamID string, office Role) (*ProfileRecord, error) {
		return &ProfileRecord{ID: "incumbent", Role: RolePresident, Status: StatusApproved}, nil
	}

	err := s.ApproveMember(context.Background(), "u2")
	if !IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(dir.memberWrites) != 0 {
		t.Error("a refused approval must not write the member")
	}
	if len(dir.teamWrites) != 0 {
		t.Error("a refused approval must not touch the team")
	}
	if s.Snapshot().Err == "" {
		t.Error("expected the error slot to be filled")
	}
}

func TestApproveMemberFallsBackToPlayer(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID: "officer",
		Role:   RolePresident,
		TeamID: "team-1",
		Status: StatusApproved,
	})
	dir.profileByIDFunc = func(ctx context.Context, profileID string) (*ProfileRecord, error) {
		return &ProfileRecord{ID: profileID, Status: StatusPending}, nil
	}

	if err := s.ApproveMember(context.Background(), "u3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := dir.memberWrites[0]
	if w.Role == nil || *w.Role != RolePlayer {
		t.Errorf("member with no intent resolves to player, got %v", w.Role)
	}
}

func TestApproveMemberRequiresOfficer(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID: "u1",
		Role:   RoleAdmin,
		TeamID: "team-1",
		Status: StatusApproved,
	})

	if err := s.ApproveMember(context.Background(), "u2"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(dir.memberWrites) != 0 {
		t.Error("an admin must not be able to approve")
	}
}

// Scenario: rejection detaches the member but is not terminal.
func TestRejectMemberThenJoinElsewhere(t *testing.T) {
	officer, _, dir := signedInStore(Snapshot{
		UserID: "officer",
		Role:   RolePresident,
		TeamID: "team-1",
		Status: StatusApproved,
	})

	if err := officer.RejectMember(context.Background(), "u2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dir.memberWrites) != 1 {
		t.Fatalf("expected one member write, got %d", len(dir.memberWrites))
	}
	w := dir.memberWrites[0]
	if w.Status == nil || *w.Status != StatusRejected {
		t.Error("member must be marked rejected")
	}
	if w.TeamID == nil || *w.TeamID != "" {
		t.Error("team linkage must be cleared")
	}
	if w.IntendedRole != nil {
		t.Error("intended role must survive rejection")
	}

	// The rejected user keeps their intent and may apply to a new team.
	rejected, _, dir2 := signedInStore(Snapshot{
		UserID:       "u2",
		Role:         RolePlayer,
		IntendedRole: RolePresident,
		Status:       StatusRejected,
	})
	dir2.teamByIDFunc = func(ctx context.Context, teamID string) (*TeamRecord, error) {
		return &TeamRecord{ID: teamID, HasFirstManager: true}, nil
	}
	if err := rejected.JoinTeam(context.Background(), "team-2"); err != nil {
		t.Fatalf("rejected user must be able to join another team: %v", err)
	}
	snap := rejected.Snapshot()
	if snap.TeamID != "team-2" || snap.Status != StatusPending {
		t.Errorf("expected a fresh pending membership, got team %q status %q", snap.TeamID, snap.Status)
	}
}

func TestUpdateMemberRole(t *testing.T) {
	tests := []struct {
		name        string
		snap        Snapshot
		currentRole Role
		newRole     Role
		holder      *ProfileRecord
		wantOK      bool
		wantDemoted []string
		wantWrites  int
	}{
		{
			name:        "promotes into vacant office",
			snap:        Snapshot{UserID: "officer", Role: RolePresident, TeamID: "team-1", Status: StatusApproved, IsInitialized: true},
			currentRole: RolePlayer,
			newRole:     RoleVicePresident,
			wantOK:      true,
			wantWrites:  1,
		},
		{
			name:        "demotes incumbent before promotion",
			snap:        Snapshot{UserID: "officer", Role: RolePresident, TeamID: "team-1", Status: StatusApproved, IsInitialized: true},
			currentRole: RoleAdmin,
			newRole:     RoleVicePresident,
			holder:      &ProfileRecord{ID: "incumbent", Role: RoleVicePresident},
			wantOK:      true,
			wantDemoted: []string{"incumbent"},
			wantWrites:  1,
		},
		{
			name:        "same role short-circuits",
			snap:        Snapshot{UserID: "officer", Role: RolePresident, TeamID: "team-1", Status: StatusApproved, IsInitialized: true},
			currentRole: RoleAdmin,
			newRole:     RoleAdmin,
			wantOK:      true,
			wantWrites:  0,
		},
		{
			name:        "non-officer is refused",
			snap:        Snapshot{UserID: "u1", Role: RoleAdmin, TeamID: "team-1", Status: StatusApproved, IsInitialized: true},
			currentRole: RolePlayer,
			newRole:     RoleAdmin,
			wantOK:      false,
			wantWrites:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, dir := signedInStore(tt.snap)
			if tt.holder != nil {
				holder := tt.holder
				dir.officerHolderFunc = func(ctx context.Context, teamID string, office Role) (*ProfileRecord, error) {
					return holder, nil
				}
			}

			ok := s.UpdateMemberRole(context.Background(), "target", tt.currentRole, tt.newRole)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (err slot %q)", tt.wantOK, ok, s.Snapshot().Err)
			}
			if len(dir.memberWrites) != tt.wantWrites {
				t.Errorf("expected %d member writes, got %d", tt.wantWrites, len(dir.memberWrites))
			}
			if len(tt.wantDemoted) != len(dir.demoted) {
				t.Fatalf("expected demotions %v, got %v", tt.wantDemoted, dir.demoted)
			}
			for i := range tt.wantDemoted {
				if dir.demoted[i] != tt.wantDemoted[i] {
					t.Errorf("expected demotion of %q, got %q", tt.wantDemoted[i], dir.demoted[i])
				}
			}
		})
	}
}

func TestUpdateMemberRoleFailureUsesErrorSlot(t *testing.T) {
	s, _, dir := signedInStore(Snapshot{
		UserID: "officer",
		Role:   RolePresident,
		TeamID: "team-1",
		Status: StatusApproved,
	})
	dir.updateProfileFieldsFunc = func(ctx context.Context, profileID string, patch ProfilePatch) error {
		return fmt.Errorf("backend unavailable")
	}

	if ok := s.UpdateMemberRole(context.Background(), "target", RolePlayer, RoleAdmin); ok {
		t.Fatal("expected failure")
	}
	snap := s.Snapshot()
	if snap.Err == "" {
		t.Error("failures must land in the error slot")
	}
	if snap.IsLoading {
		t.Error("loading flag must be cleared after a failure")
	}
}

// Once granted, first-manager status survives every later role edit: no
// mutator may ever emit a patch that turns it off for anyone.
func TestOfficerActionsNeverClearFirstManager(t *testing.T) {
	s, auth, dir := signedInStore(Snapshot{
		UserID: "officer",
		Role:   RolePresident,
		TeamID: "team-1",
		Status: StatusApproved,
	})
	dir.profileByIDFunc = func(ctx context.Context, profileID string) (*ProfileRecord, error) {
		return &ProfileRecord{
			ID:             profileID,
			Role:           RoleVicePresident,
			IntendedRole:   RoleVicePresident,
			TeamID:         "team-1",
			Status:         StatusPending,
			IsFirstManager: true,
		}, nil
	}

	ctx := context.Background()
	if ok := s.UpdateMemberRole(ctx, "founder", RoleVicePresident, RoleAdmin); !ok {
		t.Fatalf("demotion failed: %s", s.Snapshot().Err)
	}
	if err := s.ApproveMember(ctx, "founder"); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if err := s.RejectMember(ctx, "founder"); err != nil {
		t.Fatalf("rejection failed: %v", err)
	}

	for i, patch := range dir.memberWrites {
		if patch.IsFirstManager != nil && !*patch.IsFirstManager {
			t.Errorf("member write %d revokes first-manager status", i)
		}
	}
	auth.mu.Lock()
	defer auth.mu.Unlock()
	for i, patch := range auth.updates {
		if patch.IsFirstManager != nil && !*patch.IsFirstManager {
			t.Errorf("profile write %d revokes first-manager status", i)
		}
	}
}

func TestCompleteSetup(t *testing.T) {
	s, auth, _ := signedInStore(Snapshot{UserID: "u1", Status: StatusApproved})

	if err := s.CompleteSetup(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().IsSetupComplete {
		t.Error("setup flag must be set")
	}
	patch := auth.lastUpdate()
	if patch.IsSetupComplete == nil || !*patch.IsSetupComplete {
		t.Error("setup flag must be persisted")
	}
}

func TestClearError(t *testing.T) {
	s, _, _ := signedInStore(Snapshot{UserID: "u1", Status: StatusApproved})
	s.fail(fmt.Errorf("something broke"))
	if s.Snapshot().Err == "" {
		t.Fatal("precondition: error slot filled")
	}
	s.ClearError()
	if s.Snapshot().Err != "" {
		t.Error("error slot must be empty after ClearError")
	}
}
