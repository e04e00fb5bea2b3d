package model

import (
	"time"

	"github.com/google/uuid"

	"medisync/internal/sync"
)

// Syncable is the envelope every syncable clinical record embeds. Identity
// is the client-generated uuid; rows are never hard-deleted, only marked
// with DeletedAt.
type Syncable struct {
	UUID       uuid.UUID   `json:"uuid"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DeletedAt  *time.Time  `json:"deleted_at,omitempty"`
	SyncStatus sync.Status `json:"-"`
}

// NewSyncable stamps a freshly created local record: random uuid, both
// timestamps at now, status pending.
func NewSyncable(now time.Time) Syncable {
	return Syncable{
		UUID:       uuid.New(),
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncStatus: sync.StatusPending,
	}
}

func (s Syncable) RecordID() uuid.UUID { return s.UUID }

// Envelope exposes the embedded sync envelope to generic storage code.
func (s Syncable) Envelope() Syncable { return s }

// Touch records a local mutation: updated_at bumps and the status is forced
// back to pending so the edit reaches the server.
func (s *Syncable) Touch(now time.Time) {
	s.UpdatedAt = now
	s.SyncStatus = sync.StatusPending
}

// SoftDelete marks the record deleted without removing the row. Deletions
// sync like any other mutation.
func (s *Syncable) SoftDelete(now time.Time) {
	s.DeletedAt = &now
	s.Touch(now)
}

// IsDeleted reports whether the record has been soft-deleted.
func (s Syncable) IsDeleted() bool { return s.DeletedAt != nil }
