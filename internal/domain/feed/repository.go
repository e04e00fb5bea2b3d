package feed

import (
	"context"
)

type Repository interface {
	// Upsert writes changes by uuid, assigning each a fresh Seq.
	Upsert(ctx context.Context, changes []Change) error

	// Changes returns up to limit changes of the given type with Seq greater
	// than afterSeq, in Seq order.
	Changes(ctx context.Context, recordType string, afterSeq int64, limit int) ([]Change, error)
}
