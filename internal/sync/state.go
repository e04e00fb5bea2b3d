package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TokenStore persists the opaque, server-issued pull cursor per entity type.
// An empty token means "pull from the beginning".
type TokenStore interface {
	Token(ctx context.Context, key string) (string, error)
	SetToken(ctx context.Context, key, token string) error
	DeleteToken(ctx context.Context, key string) error
}

// TokenKey builds the persisted preference key for an entity's pull token.
// Bumping the version abandons the old cursor and forces a full re-pull.
func TokenKey(entity string, version int) string {
	if version <= 1 {
		return fmt.Sprintf("last_%s_pull_token", entity)
	}
	return fmt.Sprintf("last_%s_pull_token_v%d", entity, version)
}

// Progress is the outcome of the most recent sync attempt.
type Progress string

const (
	ProgressSuccess Progress = "SUCCESS"
	ProgressFailure Progress = "FAILURE"
	ProgressSyncing Progress = "SYNCING"
)

// LastSyncedState is the persisted record of the last sync attempt, consumed
// by the indicator. SuccessTimestamp is zero until the first success.
type LastSyncedState struct {
	Progress         Progress  `json:"lastSyncProgress"`
	SuccessTimestamp time.Time `json:"lastSyncSuccessTimestamp"`
}

// SyncStarted returns the state to persist when a sync cycle begins.
func (s LastSyncedState) SyncStarted() LastSyncedState {
	s.Progress = ProgressSyncing
	return s
}

// SyncedSuccessfully returns the state to persist after a fully successful
// cycle, stamping the success time.
func (s LastSyncedState) SyncedSuccessfully(now time.Time) LastSyncedState {
	s.Progress = ProgressSuccess
	s.SuccessTimestamp = now
	return s
}

// SyncFailed returns the state to persist after a failed cycle. The last
// success timestamp is preserved.
func (s LastSyncedState) SyncFailed() LastSyncedState {
	s.Progress = ProgressFailure
	return s
}

// StateStore persists the LastSyncedState.
type StateStore interface {
	LastSyncedState(ctx context.Context) (LastSyncedState, error)
	SetLastSyncedState(ctx context.Context, state LastSyncedState) error
}

// The on-disk encoding is versioned for forward migration. Version 1 stored
// only the success timestamp; version 2 added the progress field.
type versionedState struct {
	Version          int       `json:"version"`
	Progress         Progress  `json:"lastSyncProgress,omitempty"`
	SuccessTimestamp time.Time `json:"lastSyncSuccessTimestamp"`
}

const stateVersion = 2

// EncodeState serializes state in the current versioned format.
func EncodeState(state LastSyncedState) ([]byte, error) {
	return json.Marshal(versionedState{
		Version:          stateVersion,
		Progress:         state.Progress,
		SuccessTimestamp: state.SuccessTimestamp,
	})
}

// DecodeState parses any known version of the persisted state. A v1 value
// has no progress field; it migrates forward as SUCCESS when a timestamp is
// present, else FAILURE.
func DecodeState(raw []byte) (LastSyncedState, error) {
	var v versionedState
	if err := json.Unmarshal(raw, &v); err != nil {
		return LastSyncedState{}, fmt.Errorf("decode last-synced state: %w", err)
	}
	state := LastSyncedState{
		Progress:         v.Progress,
		SuccessTimestamp: v.SuccessTimestamp,
	}
	if v.Version < stateVersion && state.Progress == "" {
		if state.SuccessTimestamp.IsZero() {
			state.Progress = ProgressFailure
		} else {
			state.Progress = ProgressSuccess
		}
	}
	return state, nil
}
