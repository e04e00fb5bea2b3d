package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"time"

	"golang.org/x/exp/slog"
)

// ErrSyncRunning is returned by Sync when a cycle is already in progress.
// Concurrent cycles are retry-safe by construction, just wasteful.
var ErrSyncRunning = errors.New("sync: already running")

// EntityError is one entity's failure within a cycle, published on the
// aggregate error stream.
type EntityError struct {
	Entity string
	Kind   ErrorKind
	Err    error
}

// DataSync orchestrates sync across all registered ModelSync instances,
// grouped by frequency. Entities sync concurrently and failures are
// isolated: one entity failing never aborts the others.
type DataSync struct {
	syncs []ModelSync
	state StateStore
	log   *slog.Logger
	now   func() time.Time

	mu      stdsync.Mutex
	syncing bool

	errs chan EntityError
}

func NewDataSync(state StateStore, log *slog.Logger, syncs ...ModelSync) *DataSync {
	return &DataSync{
		syncs: syncs,
		state: state,
		log:   log.With("component", "datasync"),
		now:   time.Now,
		errs:  make(chan EntityError, 64),
	}
}

// Errors is the continuous stream of per-entity failures, consumed by the
// indicator and by "sync now" callers for reporting.
func (d *DataSync) Errors() <-chan EntityError {
	return d.errs
}

// IsSyncing reports whether a cycle is currently in progress.
func (d *DataSync) IsSyncing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.syncing
}

// Syncs returns the registered model syncs belonging to group.
func (d *DataSync) Syncs(group Group) []ModelSync {
	var out []ModelSync
	for _, ms := range d.syncs {
		if ms.Group() == group {
			out = append(out, ms)
		}
	}
	return out
}

// PendingCount sums the pending record counts across the group.
func (d *DataSync) PendingCount(ctx context.Context, group Group) (int, error) {
	total := 0
	for _, ms := range d.Syncs(group) {
		n, err := ms.PendingCount(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Sync runs one cycle for the requested group. Each entity runs in its own
// goroutine; per-entity errors are collected into the returned joined error
// and published on the error stream without short-circuiting the rest.
func (d *DataSync) Sync(ctx context.Context, group Group) error {
	d.mu.Lock()
	if d.syncing {
		d.mu.Unlock()
		return ErrSyncRunning
	}
	d.syncing = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.syncing = false
		d.mu.Unlock()
	}()

	if err := d.persistState(ctx, func(s LastSyncedState) LastSyncedState { return s.SyncStarted() }); err != nil {
		d.log.Warn("persist sync-started state", "error", err)
	}

	targets := d.Syncs(group)
	d.log.Info("sync cycle started", "group", group, "entities", len(targets))

	var (
		wg    stdsync.WaitGroup
		errMu stdsync.Mutex
		errs  []error
	)
	for _, ms := range targets {
		wg.Add(1)
		go func(ms ModelSync) {
			defer wg.Done()
			if err := ms.Sync(ctx); err != nil {
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
				d.publish(EntityError{Entity: ms.Name(), Kind: Resolve(err), Err: err})
			}
		}(ms)
	}
	wg.Wait()

	joined := errors.Join(errs...)
	if joined == nil {
		if err := d.persistState(ctx, func(s LastSyncedState) LastSyncedState { return s.SyncedSuccessfully(d.now()) }); err != nil {
			d.log.Warn("persist sync-success state", "error", err)
		}
		d.log.Info("sync cycle finished", "group", group)
	} else {
		if err := d.persistState(ctx, func(s LastSyncedState) LastSyncedState { return s.SyncFailed() }); err != nil {
			d.log.Warn("persist sync-failure state", "error", err)
		}
		d.log.Warn("sync cycle finished with errors", "group", group, "failed", len(errs))
	}
	return joined
}

// RunPeriodic triggers the group on a fixed cadence until ctx is cancelled.
// An overlapping manual trigger is tolerated: the scheduled cycle simply
// reports ErrSyncRunning and waits for the next tick.
func (d *DataSync) RunPeriodic(ctx context.Context, group Group, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.log.Info("periodic sync started", "group", group, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			d.log.Info("periodic sync stopped", "group", group)
			return
		case <-ticker.C:
			if err := d.Sync(ctx, group); err != nil && !errors.Is(err, ErrSyncRunning) {
				d.log.Warn("periodic sync failed", "group", group, "error", err)
			}
		}
	}
}

func (d *DataSync) persistState(ctx context.Context, update func(LastSyncedState) LastSyncedState) error {
	current, err := d.state.LastSyncedState(ctx)
	if err != nil {
		return err
	}
	return d.state.SetLastSyncedState(ctx, update(current))
}

func (d *DataSync) publish(ee EntityError) {
	select {
	case d.errs <- ee:
	default:
		d.log.Warn("error stream full, dropping", "entity", ee.Entity, "kind", ee.Kind)
	}
}
