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
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// fakeRecord is one row in the in-memory store.
type fakeRecord struct {
	id        string
	fks       map[string]string
	uniqueKey string
	deleted   bool
	deletedAt *time.Time
	deletedBy *string
}

type fakeStore struct {
	records    map[domain.Kind]map[string]*fakeRecord
	txSupport  bool
	failKinds  map[domain.Kind]error
	purgeOrder []domain.Kind
}

func newFakeStore(txSupport bool) *fakeStore {
	return &fakeStore{
		records:   make(map[domain.Kind]map[string]*fakeRecord),
		txSupport: txSupport,
		failKinds: make(map[domain.Kind]error),
	}
}

func (f *fakeStore) add(kind domain.Kind, id, uniqueKey string, fks map[string]string) *fakeRecord {
	if f.records[kind] == nil {
		f.records[kind] = make(map[string]*fakeRecord)
	}
	rec := &fakeRecord{id: id, fks: fks, uniqueKey: uniqueKey}
	f.records[kind][id] = rec
	return rec
}

func (f *fakeStore) GetTombstone(_ context.Context, kind domain.Kind, id string) (TombstoneState, error) {
	rec, ok := f.records[kind][id]
	if !ok {
		return TombstoneState{}, ErrNotFound
	}
	return TombstoneState{Deleted: rec.deleted, DeletedAt: rec.deletedAt, DeletedBy: rec.deletedBy}, nil
}

func (f *fakeStore) Tombstone(_ context.Context, kind domain.Kind, id string, at time.Time, by *string) (bool, error) {
	rec, ok := f.records[kind][id]
	if !ok {
		return false, ErrNotFound
	}
	if rec.deleted {
		return false, nil
	}
	rec.deleted = true
	rec.deletedAt = &at
	rec.deletedBy = by
	return true, nil
}

func (f *fakeStore) TombstoneChildren(_ context.Context, kind domain.Kind, foreignKey, parentID string, at time.Time, by *string) ([]string, error) {
	if err := f.failKinds[kind]; err != nil {
		return nil, err
	}
	var ids []string
	for _, rec := range f.records[kind] {
		if rec.deleted || rec.fks[foreignKey] != parentID {
			continue
		}
		rec.deleted = true
		rec.deletedAt = &at
		rec.deletedBy = by
		ids = append(ids, rec.id)
	}
	return ids, nil
}

func (f *fakeStore) ClearTombstone(_ context.Context, kind domain.Kind, id string) error {
	rec, ok := f.records[kind][id]
	if !ok {
		return ErrNotFound
	}
	rec.deleted = false
	rec.deletedAt = nil
	rec.deletedBy = nil
	return nil
}

func (f *fakeStore) HasRestoreConflict(_ context.Context, kind domain.Kind, id string) (bool, error) {
	rec, ok := f.records[kind][id]
	if !ok {
		return false, ErrNotFound
	}
	if rec.uniqueKey == "" {
		return false, nil
	}
	for _, other := range f.records[kind] {
		if other.id != id && !other.deleted && other.uniqueKey == rec.uniqueKey {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteExpired(_ context.Context, kind domain.Kind, cutoff time.Time) (int64, error) {
	f.purgeOrder = append(f.purgeOrder, kind)
	if err := f.failKinds[kind]; err != nil {
		return 0, err
	}
	var removed int64
	for id, rec := range f.records[kind] {
		if rec.deleted && rec.deletedAt != nil && rec.deletedAt.Before(cutoff) {
			delete(f.records[kind], id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeStore) Delete(_ context.Context, kind domain.Kind, id string) error {
	if _, ok := f.records[kind][id]; !ok {
		return ErrNotFound
	}
	delete(f.records[kind], id)
	return nil
}

func (f *fakeStore) SupportsTx() bool { return f.txSupport }

func (f *fakeStore) InTx(_ context.Context, fn func(Store) error) error {
	return fn(f)
}

func testEngine(store Store) *Engine {
	return NewEngine(store, nil, zap.NewNop())
}

func seedTenantTree(store *fakeStore) {
	store.add(domain.KindOrganization, "org-1", "acme", nil)
	store.add(domain.KindDepartment, "dept-a", "org-1/maintenance", map[string]string{"organization_id": "org-1"})
	store.add(domain.KindDepartment, "dept-b", "org-1/housekeeping", map[string]string{"organization_id": "org-1"})
	for _, u := range []struct{ id, dept string }{
		{"user-1", "dept-a"}, {"user-2", "dept-a"}, {"user-3", "dept-a"},
		{"user-4", "dept-b"}, {"user-5", "dept-b"},
	} {
		store.add(domain.KindUser, u.id, "org-1/"+u.id+"@acme.test", map[string]string{
			"organization_id": "org-1",
			"department_id":   u.dept,
		})
	}
}

func TestSoftDeleteCascadeCompleteness(t *testing.T) {
	store := newFakeStore(true)
	seedTenantTree(store)
	engine := testEngine(store)

	actor := "user-1"
	require.NoError(t, engine.SoftDelete(context.Background(), domain.KindOrganization, "org-1", &actor))

	// 2 departments + 5 users all flip to tombstoned with one timestamp.
	var stamp *time.Time
	for kind, recs := range store.records {
		for id, rec := range recs {
			assert.True(t, rec.deleted, "%s/%s should be tombstoned", kind, id)
			require.NotNil(t, rec.deletedAt)
			if stamp == nil {
				stamp = rec.deletedAt
			} else {
				assert.True(t, stamp.Equal(*rec.deletedAt), "shared cascade timestamp")
			}
		}
	}
}

func TestSoftDeleteTransitiveCascade(t *testing.T) {
	store := newFakeStore(true)
	store.add(domain.KindOrganization, "org-1", "acme", nil)
	store.add(domain.KindDepartment, "dept-a", "org-1/eng", map[string]string{"organization_id": "org-1"})
	store.add(domain.KindTask, "task-1", "", map[string]string{"organization_id": "org-1", "department_id": "dept-a"})
	store.add(domain.KindTaskComment, "comment-1", "", map[string]string{"task_id": "task-1"})
	store.add(domain.KindAttachment, "att-1", "", map[string]string{"task_id": "task-1"})
	engine := testEngine(store)

	require.NoError(t, engine.SoftDelete(context.Background(), domain.KindOrganization, "org-1", nil))

	// Comment and attachment are two cascade hops from the organization.
	assert.True(t, store.records[domain.KindTaskComment]["comment-1"].deleted)
	assert.True(t, store.records[domain.KindAttachment]["att-1"].deleted)
}

func TestSoftDeleteAlreadyDeleted(t *testing.T) {
	store := newFakeStore(true)
	store.add(domain.KindVendor, "vendor-1", "org-1/supplies", map[string]string{"organization_id": "org-1"})
	engine := testEngine(store)

	require.NoError(t, engine.SoftDelete(context.Background(), domain.KindVendor, "vendor-1", nil))

	err := engine.SoftDelete(context.Background(), domain.KindVendor, "vendor-1", nil)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_DELETED", domainErr.Code)
}

func TestSoftDeleteActorPropagation(t *testing.T) {
	store := newFakeStore(true)
	seedTenantTree(store)
	store.add(domain.KindMaterial, "mat-1", "org-1/paint", map[string]string{"organization_id": "org-1"})
	engine := testEngine(store)

	actor := "admin-9"
	require.NoError(t, engine.SoftDelete(context.Background(), domain.KindOrganization, "org-1", &actor))

	// Users carry the actor (propagateActor edge); materials do not.
	require.NotNil(t, store.records[domain.KindUser]["user-1"].deletedBy)
	assert.Equal(t, "admin-9", *store.records[domain.KindUser]["user-1"].deletedBy)
	assert.Nil(t, store.records[domain.KindMaterial]["mat-1"].deletedBy)
}

func TestSoftDeleteBestEffortKeepsParent(t *testing.T) {
	store := newFakeStore(false)
	seedTenantTree(store)
	store.failKinds[domain.KindUser] = errors.New("connection reset")
	engine := testEngine(store)

	// Cascade step failure is logged, not fatal: the parent stays tombstoned.
	require.NoError(t, engine.SoftDelete(context.Background(), domain.KindOrganization, "org-1", nil))
	assert.True(t, store.records[domain.KindOrganization]["org-1"].deleted)
	assert.True(t, store.records[domain.KindDepartment]["dept-a"].deleted)
}

func TestRestore(t *testing.T) {
	store := newFakeStore(true)
	store.add(domain.KindDepartment, "dept-a", "org-1/finance", map[string]string{"organization_id": "org-1"})
	engine := testEngine(store)
	ctx := context.Background()

	// Not deleted yet.
	err := engine.Restore(ctx, domain.KindDepartment, "dept-a")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_DELETED", domainErr.Code)

	require.NoError(t, engine.SoftDelete(ctx, domain.KindDepartment, "dept-a", nil))
	require.NoError(t, engine.Restore(ctx, domain.KindDepartment, "dept-a"))

	rec := store.records[domain.KindDepartment]["dept-a"]
	assert.False(t, rec.deleted)
	assert.Nil(t, rec.deletedAt)
	assert.Nil(t, rec.deletedBy)
}

func TestRestoreConflictRejected(t *testing.T) {
	store := newFakeStore(true)
	store.add(domain.KindDepartment, "dept-old", "org-1/finance", map[string]string{"organization_id": "org-1"})
	engine := testEngine(store)
	ctx := context.Background()

	require.NoError(t, engine.SoftDelete(ctx, domain.KindDepartment, "dept-old", nil))

	// A new active department reuses the name while the old one is tombstoned.
	store.add(domain.KindDepartment, "dept-new", "org-1/finance", map[string]string{"organization_id": "org-1"})

	err := engine.Restore(ctx, domain.KindDepartment, "dept-old")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RESTORE_CONFLICT", domainErr.Code)

	// The tombstoned record is untouched, the active one unaffected.
	assert.True(t, store.records[domain.KindDepartment]["dept-old"].deleted)
	assert.False(t, store.records[domain.KindDepartment]["dept-new"].deleted)
}

func TestRestoreDoesNotCascade(t *testing.T) {
	store := newFakeStore(true)
	seedTenantTree(store)
	engine := testEngine(store)
	ctx := context.Background()

	require.NoError(t, engine.SoftDelete(ctx, domain.KindOrganization, "org-1", nil))
	require.NoError(t, engine.Restore(ctx, domain.KindOrganization, "org-1"))

	assert.False(t, store.records[domain.KindOrganization]["org-1"].deleted)
	assert.True(t, store.records[domain.KindDepartment]["dept-a"].deleted)
	assert.True(t, store.records[domain.KindUser]["user-1"].deleted)
}

func TestHardDeleteGuard(t *testing.T) {
	store := newFakeStore(true)
	store.add(domain.KindNotification, "notif-1", "", nil)
	engine := testEngine(store)
	ctx := context.Background()

	err := engine.HardDelete(ctx, domain.KindNotification, "notif-1", false)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "HARD_DELETE_DISABLED", domainErr.Code)
	assert.NotNil(t, store.records[domain.KindNotification]["notif-1"])

	require.NoError(t, engine.HardDelete(ctx, domain.KindNotification, "notif-1", true))
	assert.Nil(t, store.records[domain.KindNotification]["notif-1"])
}

func TestTombstoneInvariant(t *testing.T) {
	var ts domain.Tombstone
	now := time.Now()
	actor := "user-1"

	checkInvariant := func() {
		if ts.IsDeleted {
			assert.NotNil(t, ts.DeletedAt)
		} else {
			assert.Nil(t, ts.DeletedAt)
			assert.Nil(t, ts.DeletedBy)
		}
	}

	checkInvariant()
	require.NoError(t, ts.Stamp(now, &actor))
	checkInvariant()
	assert.ErrorIs(t, ts.Stamp(now, &actor), domain.ErrAlreadyDeleted)
	checkInvariant()
	require.NoError(t, ts.Clear())
	checkInvariant()
	assert.ErrorIs(t, ts.Clear(), domain.ErrNotDeleted)
	checkInvariant()
}
