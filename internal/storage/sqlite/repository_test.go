package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"medisync/internal/model"
	"medisync/internal/sync"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC().Truncate(time.Second)
	patient := model.NewPatient(now, "Anjali Rao", model.GenderFemale, uuid.New())

	require.NoError(t, repo.Save(ctx, []model.Patient{patient}))

	got, err := repo.Get(ctx, patient.UUID)
	require.NoError(t, err)
	assert.Equal(t, patient.UUID, got.UUID)
	assert.Equal(t, "Anjali Rao", got.FullName)
	assert.Equal(t, sync.StatusPending, got.SyncStatus)
}

func TestRepository_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	_, err := repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, sync.ErrNotFound)
}

func TestRepository_RecordsWithStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC()
	pending := model.NewPatient(now, "Pending One", model.GenderMale, uuid.New())
	done := model.NewPatient(now, "Done One", model.GenderFemale, uuid.New())
	done.SyncStatus = sync.StatusDone

	require.NoError(t, repo.Save(ctx, []model.Patient{pending, done}))

	got, err := repo.RecordsWithStatus(ctx, sync.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.UUID, got[0].UUID)
}

func TestRepository_SetStatusForIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC()
	a := model.NewPatient(now, "A", model.GenderFemale, uuid.New())
	b := model.NewPatient(now, "B", model.GenderMale, uuid.New())
	require.NoError(t, repo.Save(ctx, []model.Patient{a, b}))

	require.NoError(t, repo.SetStatusForIDs(ctx, []uuid.UUID{a.UUID}, sync.StatusDone))

	gotA, err := repo.Get(ctx, a.UUID)
	require.NoError(t, err)
	assert.Equal(t, sync.StatusDone, gotA.SyncStatus)

	gotB, err := repo.Get(ctx, b.UUID)
	require.NoError(t, err)
	assert.Equal(t, sync.StatusPending, gotB.SyncStatus)
}

func TestRepository_SetStatusForIDs_Empty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	err := repo.SetStatusForIDs(ctx, nil, sync.StatusDone)
	assert.ErrorIs(t, err, sync.ErrNoRecordIDs)
}

func TestRepository_MergeInsertsNewRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC().Truncate(time.Second)
	payload := model.PatientPayload{
		UUID:      uuid.New(),
		FullName:  "From Server",
		Gender:    model.GenderMale,
		Status:    model.PatientActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, repo.Merge(ctx, []model.PatientPayload{payload}))

	got, err := repo.Get(ctx, payload.UUID)
	require.NoError(t, err)
	assert.Equal(t, "From Server", got.FullName)
	assert.Equal(t, sync.StatusDone, got.SyncStatus)
}

func TestRepository_MergeKeepsPendingLocalCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC()
	local := model.NewPatient(now, "Local Edit", model.GenderFemale, uuid.New())
	require.NoError(t, repo.Save(ctx, []model.Patient{local}))

	server := local.Payload()
	server.FullName = "Server Copy"

	require.NoError(t, repo.Merge(ctx, []model.PatientPayload{server}))

	got, err := repo.Get(ctx, local.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Local Edit", got.FullName)
	assert.Equal(t, sync.StatusPending, got.SyncStatus)
}

func TestRepository_MergeOverwritesSyncedCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC()
	local := model.NewPatient(now, "Old Name", model.GenderFemale, uuid.New())
	local.SyncStatus = sync.StatusDone
	require.NoError(t, repo.Save(ctx, []model.Patient{local}))

	server := local.Payload()
	server.FullName = "New Name"

	require.NoError(t, repo.Merge(ctx, []model.PatientPayload{server}))

	got, err := repo.Get(ctx, local.UUID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.FullName)
}

func TestRepository_MergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC().Truncate(time.Second)
	payload := model.PatientPayload{
		UUID:      uuid.New(),
		FullName:  "Repeat",
		Gender:    model.GenderMale,
		Status:    model.PatientActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, repo.Merge(ctx, []model.PatientPayload{payload}))
	require.NoError(t, repo.Merge(ctx, []model.PatientPayload{payload}))

	count, err := repo.RecordCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepository_Counts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC()
	a := model.NewPatient(now, "A", model.GenderFemale, uuid.New())
	b := model.NewPatient(now, "B", model.GenderMale, uuid.New())
	b.SyncStatus = sync.StatusDone
	deleted := model.NewPatient(now, "C", model.GenderMale, uuid.New())
	deleted.SoftDelete(now)

	require.NoError(t, repo.Save(ctx, []model.Patient{a, b, deleted}))

	total, err := repo.RecordCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "soft-deleted records do not count")

	pending, err := repo.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending, "soft delete itself is a pending change")
}

func TestRepository_ListExcludesSoftDeleted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewPatientRepository(store, testLogger())

	now := time.Now().UTC()
	alive := model.NewPatient(now, "Alive", model.GenderFemale, uuid.New())
	dead := model.NewPatient(now, "Gone", model.GenderMale, uuid.New())
	dead.SoftDelete(now)

	require.NoError(t, repo.Save(ctx, []model.Patient{alive, dead}))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alive.UUID, got[0].UUID)
}

func TestRepository_TypesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	patients := NewPatientRepository(store, testLogger())
	facilities := NewFacilityRepository(store, testLogger())

	now := time.Now().UTC()
	patient := model.NewPatient(now, "Only Patient", model.GenderFemale, uuid.New())
	require.NoError(t, patients.Save(ctx, []model.Patient{patient}))

	got, err := facilities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPreferenceStore_Tokens(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	prefs := NewPreferenceStore(store)

	key := sync.TokenKey("patient", 1)

	token, err := prefs.Token(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, token, "missing token reads as empty")

	require.NoError(t, prefs.SetToken(ctx, key, "cursor-42"))

	token, err = prefs.Token(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "cursor-42", token)

	require.NoError(t, prefs.DeleteToken(ctx, key))

	token, err = prefs.Token(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestPreferenceStore_State(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	prefs := NewPreferenceStore(store)

	state, err := prefs.LastSyncedState(ctx)
	require.NoError(t, err)
	assert.True(t, state.SuccessTimestamp.IsZero())

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, prefs.SetLastSyncedState(ctx, state.SyncedSuccessfully(now)))

	state, err = prefs.LastSyncedState(ctx)
	require.NoError(t, err)
	assert.Equal(t, sync.ProgressSuccess, state.Progress)
	assert.Equal(t, now, state.SuccessTimestamp.UTC())
}
