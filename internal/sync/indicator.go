package sync

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/slog"
)

// IndicatorStatus is the user-facing sync status.
type IndicatorStatus string

const (
	IndicatorSynced        IndicatorStatus = "synced"
	IndicatorSyncing       IndicatorStatus = "syncing"
	IndicatorSyncPending   IndicatorStatus = "sync_pending"
	IndicatorConnectToSync IndicatorStatus = "connect_to_sync"
)

// IndicatorState is the resolved indicator with, for Synced, the time since
// the last successful cycle.
type IndicatorState struct {
	Status        IndicatorStatus
	SinceLastSync time.Duration
}

// Indicator derives the user-facing sync status from the persisted
// last-synced state and the live pending-record count of the frequent group.
type Indicator struct {
	data       *DataSync
	state      StateStore
	staleAfter time.Duration
	now        func() time.Time
	log        *slog.Logger
}

func NewIndicator(data *DataSync, state StateStore, staleAfter time.Duration, log *slog.Logger) *Indicator {
	return &Indicator{
		data:       data,
		state:      state,
		staleAfter: staleAfter,
		now:        time.Now,
		log:        log.With("component", "indicator"),
	}
}

// State resolves the decision table:
// currently syncing → Syncing; last success older than the staleness
// threshold (or no success yet) → ConnectToSync; records pending or the last
// attempt failed → SyncPending; otherwise Synced with the age of the last
// success.
func (i *Indicator) State(ctx context.Context) (IndicatorState, error) {
	if i.data.IsSyncing() {
		return IndicatorState{Status: IndicatorSyncing}, nil
	}

	last, err := i.state.LastSyncedState(ctx)
	if err != nil {
		return IndicatorState{}, err
	}

	pending, err := i.data.PendingCount(ctx, GroupFrequent)
	if err != nil {
		return IndicatorState{}, err
	}

	if last.SuccessTimestamp.IsZero() {
		if pending > 0 {
			return IndicatorState{Status: IndicatorSyncPending}, nil
		}
		return IndicatorState{Status: IndicatorConnectToSync}, nil
	}

	age := i.now().Sub(last.SuccessTimestamp)
	if age > i.staleAfter {
		return IndicatorState{Status: IndicatorConnectToSync, SinceLastSync: age}, nil
	}

	if pending > 0 || last.Progress != ProgressSuccess {
		return IndicatorState{Status: IndicatorSyncPending, SinceLastSync: age}, nil
	}

	return IndicatorState{Status: IndicatorSynced, SinceLastSync: age}, nil
}

// Trigger runs a manual frequent-group sync, the action behind tapping the
// indicator. A cycle already in progress is not an error.
func (i *Indicator) Trigger(ctx context.Context) error {
	err := i.data.Sync(ctx, GroupFrequent)
	if errors.Is(err, ErrSyncRunning) {
		i.log.Debug("sync already running, trigger ignored")
		return nil
	}
	return err
}
