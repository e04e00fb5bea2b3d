package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medisync/internal/sync"
)

const lastSyncedStateKey = "last_synced_state"

// PreferenceStore is a small key-value table backing the pull tokens and the
// persisted sync state. It implements both sync.TokenStore and
// sync.StateStore.
type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(store *Store) *PreferenceStore {
	return &PreferenceStore{db: store.db}
}

// Value returns a stored preference, or "" if none has been persisted yet.
func (p *PreferenceStore) Value(ctx context.Context, key string) (string, error) {
	value, err := p.get(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetValue persists an arbitrary preference.
func (p *PreferenceStore) SetValue(ctx context.Context, key, value string) error {
	return p.set(ctx, key, value)
}

// Token returns the stored pull token, or "" if none has been persisted yet.
func (p *PreferenceStore) Token(ctx context.Context, key string) (string, error) {
	return p.Value(ctx, key)
}

func (p *PreferenceStore) SetToken(ctx context.Context, key, token string) error {
	return p.set(ctx, key, token)
}

func (p *PreferenceStore) DeleteToken(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

// LastSyncedState loads the persisted sync state, migrating old layouts on
// read. A missing row yields the zero state.
func (p *PreferenceStore) LastSyncedState(ctx context.Context) (sync.LastSyncedState, error) {
	raw, err := p.get(ctx, lastSyncedStateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return sync.LastSyncedState{}, nil
	}
	if err != nil {
		return sync.LastSyncedState{}, err
	}
	return sync.DecodeState([]byte(raw))
}

func (p *PreferenceStore) SetLastSyncedState(ctx context.Context, state sync.LastSyncedState) error {
	raw, err := sync.EncodeState(state)
	if err != nil {
		return fmt.Errorf("encode sync state: %w", err)
	}
	return p.set(ctx, lastSyncedStateKey, string(raw))
}

func (p *PreferenceStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (p *PreferenceStore) set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
