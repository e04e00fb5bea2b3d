package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"medisync/internal/domain/feed"
)

// FeedRepository persists the server change log. Every upsert assigns a
// fresh seq from the records sequence, so modified records re-enter the feed
// after the position any client has already consumed.
type FeedRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewFeedRepository(pool *pgxpool.Pool, log *slog.Logger) *FeedRepository {
	return &FeedRepository{
		pool: pool,
		log:  log,
	}
}

func (r *FeedRepository) Upsert(ctx context.Context, changes []feed.Change) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range changes {
		_, err := tx.Exec(ctx, `
			INSERT INTO records (uuid, record_type, payload, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (uuid) DO UPDATE SET
				payload = EXCLUDED.payload,
				updated_at = EXCLUDED.updated_at,
				deleted_at = EXCLUDED.deleted_at,
				seq = nextval('records_seq')
		`, c.UUID, c.RecordType, c.Payload, c.CreatedAt, c.UpdatedAt, c.DeletedAt)
		if err != nil {
			return fmt.Errorf("upsert change %s: %w", c.UUID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *FeedRepository) Changes(ctx context.Context, recordType string, afterSeq int64, limit int) ([]feed.Change, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT seq, uuid, record_type, payload, created_at, updated_at, deleted_at
		FROM records
		WHERE record_type = $1 AND seq > $2
		ORDER BY seq
		LIMIT $3
	`, recordType, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("query %s changes: %w", recordType, err)
	}
	defer rows.Close()

	var out []feed.Change
	for rows.Next() {
		var c feed.Change
		if err := rows.Scan(&c.Seq, &c.UUID, &c.RecordType, &c.Payload, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
