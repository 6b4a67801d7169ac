package repository

import (
	"sync"

	"rosterhub/internal/membership"
)

type subscriber func(event membership.AuthEvent, session *membership.Session)

// AuthHub fans authorization events out to per-user subscribers. Mutations
// that touch another member's profile publish USER_UPDATED here so that
// member's live store refetches its snapshot.
type AuthHub struct {
	mu   sync.RWMutex
	subs map[string]map[int]subscriber
	next int
}

func NewAuthHub() *AuthHub {
	return &AuthHub{subs: make(map[string]map[int]subscriber)}
}

// Subscribe registers a callback for one user's events.
func (h *AuthHub) Subscribe(userID string, cb subscriber) membership.Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]subscriber)
	}
	id := h.next
	h.next++
	h.subs[userID][id] = cb

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[userID], id)
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
	}
}

// Publish delivers an event to all of a user's subscribers. Delivery is
// asynchronous: publishers often hold store locks that the callbacks need.
func (h *AuthHub) Publish(userID string, event membership.AuthEvent, session *membership.Session) {
	h.mu.RLock()
	cbs := make([]subscriber, 0, len(h.subs[userID]))
	for _, cb := range h.subs[userID] {
		cbs = append(cbs, cb)
	}
	h.mu.RUnlock()

	for _, cb := range cbs {
		go cb(event, session)
	}
}
