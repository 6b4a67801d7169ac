package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is a club. has_first_manager gates whether a later officer-role
// joiner can claim first-manager status; member_count grows on approvals.
type Team struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `json:"logo_url"`

	HasFirstManager bool `gorm:"default:false" json:"has_first_manager"`
	MemberCount     int  `gorm:"default:0" json:"member_count"`

	Members []Profile `gorm:"foreignKey:TeamID" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns an id when none was provided.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
