package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Record is the minimal surface the coordinator needs from a local record.
type Record interface {
	RecordID() uuid.UUID
}

// PushFunc sends one batch of payloads to the server. Any error means the
// whole batch failed and nothing was acknowledged.
type PushFunc[P any] func(ctx context.Context, payloads []P) error

// PullFunc fetches one page of server payloads starting at token. An empty
// token pulls from the beginning.
type PullFunc[P any] func(ctx context.Context, batchSize int, token string) (Page[P], error)

// Page is one pull response: the payloads plus the cursor for the next call.
type Page[P any] struct {
	Payloads []P
	Token    string
}

// Coordinator implements the generic push/pull algorithm over any
// repository and wire payload type. Entity specifics (payload mapping,
// endpoints, token key, batch size) are supplied by the caller.
type Coordinator[T Record, P any] struct {
	repo      Repository[T, P]
	toPayload func(T) P
	push      PushFunc[P]
	pull      PullFunc[P]
	tokens    TokenStore
	tokenKey  string
	batchSize int
	log       *slog.Logger
}

func NewCoordinator[T Record, P any](
	repo Repository[T, P],
	toPayload func(T) P,
	push PushFunc[P],
	pull PullFunc[P],
	tokens TokenStore,
	tokenKey string,
	batchSize int,
	log *slog.Logger,
) *Coordinator[T, P] {
	return &Coordinator[T, P]{
		repo:      repo,
		toPayload: toPayload,
		push:      push,
		pull:      pull,
		tokens:    tokens,
		tokenKey:  tokenKey,
		batchSize: batchSize,
		log:       log,
	}
}

// Push sends every pending record to the server in one batch and, on ack,
// marks exactly the snapshotted ids done in one bulk write. On any failure
// no status mutates, so the batch is retried verbatim next cycle — nothing
// is ever marked done without a successful response.
//
// The id snapshot (rather than "all pending") means a record mutated while
// the batch is in flight is not silently re-acknowledged by this cycle.
func (c *Coordinator[T, P]) Push(ctx context.Context) error {
	// A pull-only entity has no push function; its records never leave the
	// device, regardless of status.
	if c.push == nil {
		return nil
	}

	records, err := c.repo.RecordsWithStatus(ctx, StatusPending)
	if err != nil {
		return fmt.Errorf("read pending records: %w", err)
	}
	if len(records) == 0 {
		c.log.Debug("nothing to push")
		return nil
	}

	ids := make([]uuid.UUID, len(records))
	payloads := make([]P, len(records))
	for i, rec := range records {
		ids[i] = rec.RecordID()
		payloads[i] = c.toPayload(rec)
	}

	if err := c.push(ctx, payloads); err != nil {
		return fmt.Errorf("push batch of %d: %w", len(payloads), err)
	}

	if err := c.repo.SetStatusForIDs(ctx, ids, StatusDone); err != nil {
		return fmt.Errorf("mark %d records done: %w", len(ids), err)
	}

	c.log.Debug("pushed batch", "count", len(ids))
	return nil
}

// Pull pages through the server change feed from the persisted token,
// merging each page into local storage before advancing the cursor. The
// ordering is the crash-safety invariant: a crash between merge and token
// write causes at most a redundant re-pull of the same page, never a skip.
func (c *Coordinator[T, P]) Pull(ctx context.Context) error {
	token, err := c.tokens.Token(ctx, c.tokenKey)
	if err != nil {
		return fmt.Errorf("read pull token %q: %w", c.tokenKey, err)
	}

	for {
		page, err := c.pull(ctx, c.batchSize, token)
		if err != nil {
			return fmt.Errorf("pull page: %w", err)
		}

		if err := c.repo.Merge(ctx, page.Payloads); err != nil {
			return fmt.Errorf("merge page of %d: %w", len(page.Payloads), err)
		}

		// Token advances only after the page is durably merged.
		if err := c.tokens.SetToken(ctx, c.tokenKey, page.Token); err != nil {
			return fmt.Errorf("persist pull token %q: %w", c.tokenKey, err)
		}

		c.log.Debug("pulled page", "count", len(page.Payloads), "token", page.Token)

		if len(page.Payloads) < c.batchSize {
			return nil
		}
		token = page.Token
	}
}
