package repository

import (
	"context"
	"errors"
	"fmt"

	"rosterhub/internal/membership"
	"rosterhub/internal/models"

	"gorm.io/gorm"
)

// userAuthPort implements membership.AuthPort for one authenticated user.
// The session backend has already been consulted by the HTTP middleware, so
// GetSession answers from the bound identity; profile reads and writes go to
// the profiles table.
type userAuthPort struct {
	db     *gorm.DB
	hub    *AuthHub
	userID string
}

// NewAuthPortFactory returns a factory producing auth ports bound to a user.
func NewAuthPortFactory(db *gorm.DB, hub *AuthHub) membership.AuthPortFactory {
	return func(userID string) membership.AuthPort {
		return &userAuthPort{db: db, hub: hub, userID: userID}
	}
}

func (p *userAuthPort) GetSession(ctx context.Context) (*membership.Session, error) {
	if p.userID == "" {
		return nil, nil
	}
	var profile models.Profile
	if err := p.db.WithContext(ctx).First(&profile, "id = ?", p.userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return &membership.Session{UserID: profile.ID, Email: profile.Email}, nil
}

func (p *userAuthPort) GetFullProfile(ctx context.Context, userID string) (*membership.ProfileRecord, error) {
	var profile models.Profile
	if err := p.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profileToRecord(&profile), nil
}

func (p *userAuthPort) UpdateProfile(ctx context.Context, userID string, patch membership.ProfilePatch) error {
	if err := applyProfilePatch(p.db.WithContext(ctx), userID, patch); err != nil {
		return err
	}
	if userID != p.userID {
		p.hub.Publish(userID, membership.EventUserUpdated, nil)
	}
	return nil
}

func (p *userAuthPort) OnAuthStateChange(cb func(event membership.AuthEvent, session *membership.Session)) membership.Unsubscribe {
	return p.hub.Subscribe(p.userID, cb)
}

// profileToRecord maps a stored profile row to the lifecycle view.
func profileToRecord(p *models.Profile) *membership.ProfileRecord {
	teamID := ""
	if p.TeamID != nil {
		teamID = *p.TeamID
	}
	return &membership.ProfileRecord{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		AvatarURL:       p.AvatarURL,
		Role:            membership.Role(p.Role),
		IntendedRole:    membership.Role(p.IntendedRole),
		TeamID:          teamID,
		Status:          membership.Status(p.Status),
		IsFirstManager:  p.IsFirstManager,
		IsSetupComplete: p.IsSetupComplete,
	}
}

// applyProfilePatch turns a partial update into a column map. First-manager
// status is sticky: once set it is never written back to false.
func applyProfilePatch(db *gorm.DB, profileID string, patch membership.ProfilePatch) error {
	updates := map[string]interface{}{}
	if patch.DisplayName != nil {
		updates["display_name"] = *patch.DisplayName
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.Role != nil {
		updates["role"] = string(*patch.Role)
	}
	if patch.IntendedRole != nil {
		updates["intended_role"] = string(*patch.IntendedRole)
	}
	if patch.TeamID != nil {
		if *patch.TeamID == "" {
			updates["team_id"] = nil
		} else {
			updates["team_id"] = *patch.TeamID
		}
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.IsFirstManager != nil && *patch.IsFirstManager {
		updates["is_first_manager"] = true
	}
	if patch.IsSetupComplete != nil {
		updates["is_setup_complete"] = *patch.IsSetupComplete
	}
	if len(updates) == 0 {
		return nil
	}

	result := db.Model(&models.Profile{}).Where("id = ?", profileID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return membership.ErrNotFound
	}
	return nil
}
