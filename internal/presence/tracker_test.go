package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerTouchAndLastSeen(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(func() time.Time { return current })

	_, ok := tracker.LastSeen("u1")
	assert.False(t, ok)

	tracker.Touch("u1")
	at, ok := tracker.LastSeen("u1")
	require.True(t, ok)
	assert.Equal(t, current, at)
}

func TestTrackerOnlineWindow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(func() time.Time { return current })

	tracker.Touch("u1")
	assert.True(t, tracker.Online("u1", 5*time.Minute))

	current = current.Add(10 * time.Minute)
	assert.False(t, tracker.Online("u1", 5*time.Minute))
	assert.False(t, tracker.Online("unknown", 5*time.Minute))
}

func TestTrackerReset(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Touch("u1")
	tracker.Reset("u1")

	_, ok := tracker.LastSeen("u1")
	assert.False(t, ok)
}

func TestTrackerClearDropsEveryActor(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Touch("u1")
	tracker.Touch("u2")
	tracker.Clear()

	_, ok := tracker.LastSeen("u1")
	assert.False(t, ok)
	_, ok = tracker.LastSeen("u2")
	assert.False(t, ok)

	// Still usable after a clear.
	tracker.Touch("u3")
	_, ok = tracker.LastSeen("u3")
	assert.True(t, ok)
}

func TestTrackerIgnoresEmptyActor(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Touch("")
	_, ok := tracker.LastSeen("")
	assert.False(t, ok)
}
