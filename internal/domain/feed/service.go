package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

type Servicer interface {
	Apply(ctx context.Context, recordType string, payloads []json.RawMessage) ([]RecordError, error)
	Changes(ctx context.Context, recordType, token string, limit int) ([]json.RawMessage, string, error)
}

// Service is the server half of the sync protocol: it validates pushed
// payloads into the change log and serves the log back out in token-ordered
// pages. The process token is opaque to clients; here it encodes the last
// served Seq.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "feed"),
	}
}

// Apply upserts a pushed batch. Payloads that fail envelope validation are
// reported per record and skipped; the remainder is applied, so a client
// retry of the same batch is harmless.
func (s *Service) Apply(ctx context.Context, recordType string, payloads []json.RawMessage) ([]RecordError, error) {
	var (
		changes []Change
		errs    []RecordError
	)

	for _, raw := range payloads {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			errs = append(errs, RecordError{Messages: []string{fmt.Sprintf("malformed payload: %v", err)}})
			continue
		}
		if env.ID == uuid.Nil {
			errs = append(errs, RecordError{Messages: []string{"id is required"}})
			continue
		}

		changes = append(changes, Change{
			UUID:       env.ID,
			RecordType: recordType,
			Payload:    raw,
			CreatedAt:  env.CreatedAt,
			UpdatedAt:  env.UpdatedAt,
			DeletedAt:  env.DeletedAt,
		})
	}

	if len(changes) > 0 {
		if err := s.repo.Upsert(ctx, changes); err != nil {
			return nil, fmt.Errorf("apply %s batch: %w", recordType, err)
		}
	}

	s.log.Debug("applied push batch",
		"record_type", recordType,
		"received", len(payloads),
		"rejected", len(errs),
	)
	return errs, nil
}

// Changes serves one page of the change log from the given token. The
// returned token always points at the last served change; an empty page
// returns the incoming token unchanged.
func (s *Service) Changes(ctx context.Context, recordType, token string, limit int) ([]json.RawMessage, string, error) {
	afterSeq, err := parseToken(token)
	if err != nil {
		return nil, "", err
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	changes, err := s.repo.Changes(ctx, recordType, afterSeq, limit)
	if err != nil {
		return nil, "", fmt.Errorf("read %s changes: %w", recordType, err)
	}

	payloads := make([]json.RawMessage, len(changes))
	next := afterSeq
	for i, c := range changes {
		payloads[i] = c.Payload
		next = c.Seq
	}

	return payloads, strconv.FormatInt(next, 10), nil
}

func parseToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	seq, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed process token %q", token)
	}
	return seq, nil
}
