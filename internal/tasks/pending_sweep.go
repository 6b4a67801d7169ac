package tasks

import (
	"time"

	"rosterhub/internal/logging"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
	"rosterhub/internal/repository"

	"gorm.io/gorm"
)

// pendingMaxAge is how long a join request may sit unanswered before the
// sweep rejects it and detaches the profile from the team.
const pendingMaxAge = 90 * 24 * time.Hour

// PendingSweep handles periodic rejection of join requests that no officer
// ever acted on.
type PendingSweep struct {
	db  *gorm.DB
	hub *repository.AuthHub
}

// NewPendingSweep creates a new pending membership sweep task
func NewPendingSweep(db *gorm.DB, hub *repository.AuthHub) *PendingSweep {
	return &PendingSweep{db: db, hub: hub}
}

// Start begins the sweep task in the background
func (ps *PendingSweep) Start() {
	go ps.runPeriodically()
}

// runPeriodically runs the sweep task at regular intervals
func (ps *PendingSweep) runPeriodically() {
	// Run immediately on startup
	ps.sweep()

	// Then run every 12 hours
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ps.sweep()
	}
}

// sweep rejects join requests older than pendingMaxAge
func (ps *PendingSweep) sweep() {
	logger := logging.GetLogger()
	cutoff := time.Now().Add(-pendingMaxAge)

	var stale []models.Profile
	if err := ps.db.Where("status = ? AND updated_at < ?", string(membership.StatusPending), cutoff).Find(&stale).Error; err != nil {
		logger.Error("Pending membership sweep query failed: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	for _, p := range stale {
		err := ps.db.Model(&models.Profile{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"status":  string(membership.StatusRejected),
			"team_id": nil,
		}).Error
		if err != nil {
			logger.Error("Failed to reject stale join request for profile %s: %v", p.ID, err)
			continue
		}
		// Live stores for the affected user refetch their snapshot.
		ps.hub.Publish(p.ID, membership.EventUserUpdated, nil)
	}

	logger.Info("Pending membership sweep rejected %d stale join requests", len(stale))
}
