package session

import (
	"sync"
)

// Store holds the live session of each user. Messages from the same user
// can arrive concurrently, so every user gets an own slot with an own
// mutex: two messages of one user serialize on the slot lock while
// different users never contend on anything but the short map lookup.
type Store struct {
	mu    sync.Mutex
	slots map[int64]*Slot
}

func NewStore() *Store {
	return &Store{
		slots: make(map[int64]*Slot),
	}
}

// Slot returns the per-user slot, creating it on first use. The caller
// must hold the slot lock for the whole message turn.
func (s *Store) Slot(userID int64) *Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[userID]
	if !ok {
		slot = &Slot{}
		s.slots[userID] = slot
	}
	return slot
}

// Slot serializes all session access of a single user.
type Slot struct {
	mu      sync.Mutex
	session *Session
}

func (sl *Slot) Lock()   { sl.mu.Lock() }
func (sl *Slot) Unlock() { sl.mu.Unlock() }

// Session returns the live session, nil when the user is idle.
// Must be called with the slot lock held.
func (sl *Slot) Session() *Session {
	return sl.session
}

// Set replaces the live session (last writer wins, no merge).
// Must be called with the slot lock held.
func (sl *Slot) Set(session *Session) {
	sl.session = session
}

// Clear drops the live session, returning the user to idle.
// Must be called with the slot lock held.
func (sl *Slot) Clear() {
	sl.session = nil
}
