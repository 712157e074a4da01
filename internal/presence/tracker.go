package presence

import (
	"sync"
	"time"
)

// Tracker keeps last-seen timestamps per actor in memory. Presence is
// advisory: it resets on process restart and is never persisted.
type Tracker struct {
	mu   sync.RWMutex
	seen map[string]time.Time
	now  func() time.Time
}

// NewTracker builds a tracker. The clock is injectable for tests.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{seen: make(map[string]time.Time), now: now}
}

// Touch records activity for an actor.
func (t *Tracker) Touch(actorID string) {
	if actorID == "" {
		return
	}
	t.mu.Lock()
	t.seen[actorID] = t.now()
	t.mu.Unlock()
}

// LastSeen returns the actor's last recorded activity.
func (t *Tracker) LastSeen(actorID string) (time.Time, bool) {
	t.mu.RLock()
	at, ok := t.seen[actorID]
	t.mu.RUnlock()
	return at, ok
}

// Online reports whether the actor was active within the window.
func (t *Tracker) Online(actorID string, window time.Duration) bool {
	at, ok := t.LastSeen(actorID)
	if !ok {
		return false
	}
	return t.now().Sub(at) <= window
}

// Reset drops the actor's record, e.g. on logout or deactivation.
func (t *Tracker) Reset(actorID string) {
	t.mu.Lock()
	delete(t.seen, actorID)
	t.mu.Unlock()
}

// Clear empties the tracker; called on shutdown. Presence is advisory, so
// the next process starts from an empty map either way.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.seen = make(map[string]time.Time)
	t.mu.Unlock()
}
