package repository

import (
	"context"
	"errors"
	"fmt"

	"rosterhub/internal/membership"
	"rosterhub/internal/models"

	"gorm.io/gorm"
)

// directoryRepository implements membership.DirectoryPort over Postgres.
// Writes that change another member's profile publish USER_UPDATED so their
// live store picks the change up.
type directoryRepository struct {
	db  *gorm.DB
	hub *AuthHub
}

// NewDirectoryRepository creates the relational team/profile port.
func NewDirectoryRepository(db *gorm.DB, hub *AuthHub) membership.DirectoryPort {
	return &directoryRepository{db: db, hub: hub}
}

func (r *directoryRepository) TeamByID(ctx context.Context, teamID string) (*membership.TeamRecord, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("team %s: %w", teamID, membership.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	return teamToRecord(&team), nil
}

func (r *directoryRepository) OfficerHolder(ctx context.Context, teamID string, office membership.Role) (*membership.ProfileRecord, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND role = ? AND status = ?", teamID, string(office), string(membership.StatusApproved)).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up %s holder: %w", office, err)
	}
	return profileToRecord(&profile), nil
}

func (r *directoryRepository) DemoteToAdmin(ctx context.Context, profileID string) error {
	admin := membership.RoleAdmin
	if err := applyProfilePatch(r.db.WithContext(ctx), profileID, membership.ProfilePatch{Role: &admin}); err != nil {
		return err
	}
	r.hub.Publish(profileID, membership.EventUserUpdated, nil)
	return nil
}

func (r *directoryRepository) InsertTeam(ctx context.Context, details membership.TeamDetails) (*membership.TeamRecord, error) {
	team := models.Team{
		Name:        details.Name,
		Description: details.Description,
	}
	if err := r.db.WithContext(ctx).Create(&team).Error; err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return teamToRecord(&team), nil
}

func (r *directoryRepository) UpdateTeamFlags(ctx context.Context, teamID string, patch membership.TeamFlagPatch) error {
	updates := map[string]interface{}{}
	if patch.HasFirstManager != nil {
		updates["has_first_manager"] = *patch.HasFirstManager
	}
	if patch.MemberCount != nil {
		updates["member_count"] = *patch.MemberCount
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.Team{}).Where("id = ?", teamID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("team %s: %w", teamID, membership.ErrNotFound)
	}
	return nil
}

func (r *directoryRepository) ProfileByID(ctx context.Context, profileID string) (*membership.ProfileRecord, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", profileID, membership.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profileToRecord(&profile), nil
}

func (r *directoryRepository) UpdateProfileFields(ctx context.Context, profileID string, patch membership.ProfilePatch) error {
	if err := applyProfilePatch(r.db.WithContext(ctx), profileID, patch); err != nil {
		return err
	}
	r.hub.Publish(profileID, membership.EventUserUpdated, nil)
	return nil
}

func teamToRecord(t *models.Team) *membership.TeamRecord {
	return &membership.TeamRecord{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		HasFirstManager: t.HasFirstManager,
		MemberCount:     t.MemberCount,
	}
}
