package feed

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Change is one row of the server change log: the raw wire payload plus the
// columns the feed orders and filters on. Seq is a server-assigned, strictly
// increasing position; updating a record re-assigns its Seq so the change
// reappears at the tail of the feed.
type Change struct {
	Seq        int64
	UUID       uuid.UUID
	RecordType string
	Payload    json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// envelope is the minimal shape every pushed payload must carry.
type envelope struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// RecordError describes why one pushed payload was rejected. Rejections are
// per record; the rest of the batch is still applied.
type RecordError struct {
	ID       string   `json:"id"`
	Messages []string `json:"schema_error_messages,omitempty"`
}
