package membership

import (
	"context"
	"sync"
	"time"

	"rosterhub/internal/logging"
)

// AuthPortFactory builds an auth port bound to one user's session.
type AuthPortFactory func(userID string) AuthPort

type managedStore struct {
	store    *Store
	boot     *Bootstrapper
	start    sync.Once
	lastSeen time.Time
}

// Manager owns one store (and its bootstrapper) per signed-in user. Stores
// are created and bootstrapped on first access and kept alive across
// requests so auth events from other officers reach them.
type Manager struct {
	mu      sync.Mutex
	newAuth AuthPortFactory
	dir     DirectoryPort
	logger  *logging.Logger
	entries map[string]*managedStore
}

// NewManager creates an empty manager.
func NewManager(newAuth AuthPortFactory, dir DirectoryPort, logger *logging.Logger) *Manager {
	return &Manager{
		newAuth: newAuth,
		dir:     dir,
		logger:  logger,
		entries: make(map[string]*managedStore),
	}
}

// StoreFor returns the live store for a user, bootstrapping one on first use.
// The bootstrapper outlives any single request, so it runs on the background
// context rather than a request-scoped one. The bootstrap itself happens
// outside the manager lock so one slow session fetch cannot block access to
// every other user's store.
func (m *Manager) StoreFor(userID string) *Store {
	m.mu.Lock()
	e, ok := m.entries[userID]
	if !ok {
		auth := m.newAuth(userID)
		store := NewStore(auth, m.dir, m.logger)
		e = &managedStore{store: store, boot: NewBootstrapper(store, auth, m.logger)}
		m.entries[userID] = e
	}
	e.lastSeen = time.Now()
	m.mu.Unlock()

	e.start.Do(func() {
		e.boot.Start(context.Background())
	})
	return e.store
}

// Release stops and drops a user's store, e.g. on logout.
func (m *Manager) Release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[userID]; ok {
		e.boot.Stop()
		delete(m.entries, userID)
	}
}

// EvictIdle drops stores that have not been touched for maxIdle and returns
// how many were removed.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	n := 0
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			e.boot.Stop()
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// Len returns the number of live stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
