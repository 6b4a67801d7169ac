package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is one user's club identity. The lifecycle fields (role,
// intended_role, team_id, status, first-manager and setup flags) are only
// ever written through the membership mutators.
type Profile struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	FirebaseUID string  `gorm:"uniqueIndex;not null" json:"-"`
	Email       string  `gorm:"uniqueIndex" json:"email"`
	DisplayName string  `gorm:"size:100" json:"display_name"`
	AvatarURL   string  `json:"avatar_url"`
	Role        string  `gorm:"type:varchar(20);default:'player';index" json:"role"`
	IntendedRole string `gorm:"type:varchar(20);default:''" json:"intended_role"`
	TeamID      *string `gorm:"type:uuid;index" json:"team_id,omitempty"`
	Team        *Team   `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Status      string  `gorm:"type:varchar(20);default:'approved';index" json:"status"`

	IsFirstManager  bool `gorm:"default:false" json:"is_first_manager"`
	IsSetupComplete bool `gorm:"default:false" json:"is_setup_complete"`

	// Display-only fields, opaque to the lifecycle
	Position     string `gorm:"size:50" json:"position"`
	JerseyNumber int    `gorm:"default:0" json:"jersey_number"`
	MatchesPlayed int   `gorm:"default:0" json:"matches_played"`
	GoalsScored   int   `gorm:"default:0" json:"goals_scored"`

	LastLogin   time.Time `json:"last_login"`
	LastLoginIP string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate assigns an id when none was provided.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
