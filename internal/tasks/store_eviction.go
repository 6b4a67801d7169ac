package tasks

import (
	"sync"
	"time"

	"rosterhub/internal/logging"
	"rosterhub/internal/membership"
)

// StoreEviction periodically releases membership stores that have not been
// touched by any request for a while, so their auth subscriptions are torn
// down and the cache does not grow without bound.
type StoreEviction struct {
	manager *membership.Manager
	maxIdle time.Duration
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewStoreEviction creates a new store eviction task
func NewStoreEviction(manager *membership.Manager, maxIdle time.Duration) *StoreEviction {
	return &StoreEviction{
		manager: manager,
		maxIdle: maxIdle,
		done:    make(chan struct{}),
	}
}

// Start begins the eviction task in the background
func (se *StoreEviction) Start() {
	se.wg.Add(1)
	go se.runPeriodically()
}

// Stop gracefully stops the eviction task
func (se *StoreEviction) Stop() {
	close(se.done)
	se.wg.Wait()
}

// runPeriodically runs the eviction at regular intervals
func (se *StoreEviction) runPeriodically() {
	defer se.wg.Done()
	logger := logging.GetLogger()

	logger.Info("Starting membership store eviction task")

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := se.manager.EvictIdle(se.maxIdle); evicted > 0 {
				logger.Info("Evicted %d idle membership stores (%d remaining)", evicted, se.manager.Len())
			}
		case <-se.done:
			logger.Info("Membership store eviction task stopped")
			return
		}
	}
}
