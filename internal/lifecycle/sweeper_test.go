package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

func TestSweepOncePurgesExpiredOnly(t *testing.T) {
	store := newFakeStore(true)
	now := time.Now().UTC()

	// Notification retention is 30 days.
	expired := now.Add(-40 * day)
	fresh := now.Add(-10 * day)

	store.add(domain.KindNotification, "old", "", nil)
	store.add(domain.KindNotification, "recent", "", nil)
	store.add(domain.KindNotification, "active", "", nil)
	store.records[domain.KindNotification]["old"].deleted = true
	store.records[domain.KindNotification]["old"].deletedAt = &expired
	store.records[domain.KindNotification]["recent"].deleted = true
	store.records[domain.KindNotification]["recent"].deletedAt = &fresh

	sweeper := NewSweeper(store, time.Hour, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	assert.Nil(t, store.records[domain.KindNotification]["old"])
	assert.NotNil(t, store.records[domain.KindNotification]["recent"])
	assert.NotNil(t, store.records[domain.KindNotification]["active"])
}

func TestSweepRespectsPerKindWindows(t *testing.T) {
	store := newFakeStore(true)
	now := time.Now().UTC()

	// 100 days ago: past attachment retention (90d), inside task retention (180d).
	stamp := now.Add(-100 * day)

	store.add(domain.KindAttachment, "att-1", "", nil)
	store.records[domain.KindAttachment]["att-1"].deleted = true
	store.records[domain.KindAttachment]["att-1"].deletedAt = &stamp

	store.add(domain.KindTask, "task-1", "", nil)
	store.records[domain.KindTask]["task-1"].deleted = true
	store.records[domain.KindTask]["task-1"].deletedAt = &stamp

	sweeper := NewSweeper(store, time.Hour, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Nil(t, store.records[domain.KindAttachment]["att-1"])
	assert.NotNil(t, store.records[domain.KindTask]["task-1"])
}

func TestSweepVisitsLeafKindsFirst(t *testing.T) {
	store := newFakeStore(true)
	now := time.Now().UTC()

	// An organization cascade stamps the whole tree with one timestamp, and
	// org/department/user share a retention window. All three must go in the
	// same sweep, children before the rows they reference.
	expired := now.Add(-400 * day)
	seedTenantTree(store)
	for _, recs := range store.records {
		for _, rec := range recs {
			rec.deleted = true
			rec.deletedAt = &expired
		}
	}

	sweeper := NewSweeper(store, time.Hour, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 8, removed)

	position := make(map[domain.Kind]int, len(store.purgeOrder))
	for i, kind := range store.purgeOrder {
		position[kind] = i
	}
	assert.Less(t, position[domain.KindUser], position[domain.KindDepartment])
	assert.Less(t, position[domain.KindDepartment], position[domain.KindOrganization])
	assert.Less(t, position[domain.KindTaskActivity], position[domain.KindTask])
	assert.Less(t, position[domain.KindTaskComment], position[domain.KindTask])
	assert.Less(t, position[domain.KindAttachment], position[domain.KindTask])
}

func TestSweepContinuesPastFailingKind(t *testing.T) {
	store := newFakeStore(true)
	now := time.Now().UTC()
	expired := now.Add(-400 * day)

	store.add(domain.KindOrganization, "org-1", "acme", nil)
	store.records[domain.KindOrganization]["org-1"].deleted = true
	store.records[domain.KindOrganization]["org-1"].deletedAt = &expired
	store.failKinds[domain.KindUser] = errors.New("still referenced")

	sweeper := NewSweeper(store, time.Hour, zap.NewNop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.SweepOnce(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Nil(t, store.records[domain.KindOrganization]["org-1"])
}

func TestSweepIdempotent(t *testing.T) {
	store := newFakeStore(true)
	now := time.Now().UTC()
	expired := now.Add(-400 * day)

	store.add(domain.KindVendor, "vendor-1", "org-1/supplies", nil)
	store.records[domain.KindVendor]["vendor-1"].deleted = true
	store.records[domain.KindVendor]["vendor-1"].deletedAt = &expired

	sweeper := NewSweeper(store, time.Hour, zap.NewNop())
	sweeper.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first)

	second, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, second)
}
