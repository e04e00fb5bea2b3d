package sync

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNoRecordIDs is returned by SetStatusForIDs when the id set is empty.
	// Pushing zero records is a caller bug, not a no-op to swallow.
	ErrNoRecordIDs = errors.New("sync: empty record id set")

	// ErrNotFound is returned when a record lookup by uuid finds nothing.
	ErrNotFound = errors.New("sync: record not found")
)

// Repository is the capability contract every syncable entity's storage
// layer implements. T is the local record type, P its wire payload.
//
// Save is an idempotent upsert by uuid; the row is overwritten entirely.
// The conflict policy lives one level up, in Merge.
type Repository[T any, P any] interface {
	// Save upserts records by uuid.
	Save(ctx context.Context, records []T) error

	// RecordsWithStatus returns a snapshot of all records carrying the given
	// status. Used to build a push batch; not a live subscription.
	RecordsWithStatus(ctx context.Context, status Status) ([]T, error)

	// SetStatus transitions every record with status from to status to.
	SetStatus(ctx context.Context, from, to Status) error

	// SetStatusForIDs transitions exactly the given records in one atomic
	// write. Fails with ErrNoRecordIDs when ids is empty.
	SetStatusForIDs(ctx context.Context, ids []uuid.UUID, to Status) error

	// Merge applies server payloads under the conflict guard: a payload is
	// written (and marked done) only when the local record is absent or its
	// status CanBeOverriddenByServerCopy. Payloads colliding with a pending
	// local record are discarded.
	Merge(ctx context.Context, payloads []P) error

	// RecordCount returns the number of records not soft-deleted.
	RecordCount(ctx context.Context) (int, error)

	// PendingCount returns the number of records with status pending.
	PendingCount(ctx context.Context) (int, error)
}
