package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenKey(t *testing.T) {
	assert.Equal(t, "last_patient_pull_token", TokenKey("patient", 1))
	assert.Equal(t, "last_patient_pull_token", TokenKey("patient", 0))
	assert.Equal(t, "last_patient_pull_token_v2", TokenKey("patient", 2))
}

func TestStateTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var state LastSyncedState
	state = state.SyncStarted()
	assert.Equal(t, ProgressSyncing, state.Progress)

	state = state.SyncedSuccessfully(now)
	assert.Equal(t, ProgressSuccess, state.Progress)
	assert.Equal(t, now, state.SuccessTimestamp)

	state = state.SyncFailed()
	assert.Equal(t, ProgressFailure, state.Progress)
	assert.Equal(t, now, state.SuccessTimestamp, "failure keeps the last success time")
}

func TestEncodeDecodeStateRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := LastSyncedState{Progress: ProgressSuccess, SuccessTimestamp: now}

	raw, err := EncodeState(state)
	require.NoError(t, err)

	got, err := DecodeState(raw)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestDecodeState_V1WithTimestampMigratesToSuccess(t *testing.T) {
	raw := []byte(`{"version":1,"lastSyncSuccessTimestamp":"2026-02-28T09:00:00Z"}`)

	got, err := DecodeState(raw)
	require.NoError(t, err)
	assert.Equal(t, ProgressSuccess, got.Progress)
	assert.Equal(t, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC), got.SuccessTimestamp)
}

func TestDecodeState_V1WithoutTimestampMigratesToFailure(t *testing.T) {
	raw := []byte(`{"version":1,"lastSyncSuccessTimestamp":"0001-01-01T00:00:00Z"}`)

	got, err := DecodeState(raw)
	require.NoError(t, err)
	assert.Equal(t, ProgressFailure, got.Progress)
	assert.True(t, got.SuccessTimestamp.IsZero())
}

func TestDecodeState_Garbage(t *testing.T) {
	_, err := DecodeState([]byte("not json"))
	assert.Error(t, err)
}
