package mapper

import (
	authdto "rosterhub/internal/api/dto/v1/auth"
	membershipdto "rosterhub/internal/api/dto/v1/membership"
	teamdto "rosterhub/internal/api/dto/v1/team"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
)

// ToSnapshotResponse maps a lifecycle snapshot to its API view.
func ToSnapshotResponse(snap membership.Snapshot) *membershipdto.SnapshotResponse {
	return &membershipdto.SnapshotResponse{
		UserID:          snap.UserID,
		DisplayName:     snap.DisplayName,
		AvatarURL:       snap.AvatarURL,
		Role:            string(snap.Role),
		IntendedRole:    string(snap.IntendedRole),
		TeamID:          snap.TeamID,
		Status:          string(snap.Status),
		IsFirstManager:  snap.IsFirstManager,
		IsSetupComplete: snap.IsSetupComplete,
		IsLoading:       snap.IsLoading,
		IsInitialized:   snap.IsInitialized,
		Error:           snap.Err,
	}
}

// ToRouteResponse maps a derived lifecycle state to its API view.
func ToRouteResponse(state membership.LifecycleState) *membershipdto.RouteResponse {
	return &membershipdto.RouteResponse{
		State: string(state),
		Route: string(state.Route()),
	}
}

// ToTeamResponse maps a team record to its API view.
func ToTeamResponse(rec *membership.TeamRecord) *teamdto.Response {
	return &teamdto.Response{
		ID:              rec.ID,
		Name:            rec.Name,
		Description:     rec.Description,
		HasFirstManager: rec.HasFirstManager,
		MemberCount:     rec.MemberCount,
	}
}

// ToMemberResponses maps roster rows to their API view.
func ToMemberResponses(profiles []models.Profile) []*teamdto.MemberResponse {
	out := make([]*teamdto.MemberResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, &teamdto.MemberResponse{
			ID:           p.ID,
			DisplayName:  p.DisplayName,
			Role:         p.Role,
			IntendedRole: p.IntendedRole,
			Status:       p.Status,
		})
	}
	return out
}

// ToProfileResponse maps a stored profile to the auth API view.
func ToProfileResponse(p *models.Profile) *authdto.ProfileResponse {
	teamID := ""
	if p.TeamID != nil {
		teamID = *p.TeamID
	}
	return &authdto.ProfileResponse{
		ID:              p.ID,
		Email:           p.Email,
		DisplayName:     p.DisplayName,
		Role:            p.Role,
		IntendedRole:    p.IntendedRole,
		TeamID:          teamID,
		Status:          p.Status,
		IsFirstManager:  p.IsFirstManager,
		IsSetupComplete: p.IsSetupComplete,
	}
}
