package sync

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

// Group partitions entity types by how often they sync. Patient-entered data
// is frequent; reference data is daily.
type Group string

const (
	GroupFrequent Group = "frequent"
	GroupDaily    Group = "daily"
)

// ModelSync binds one entity type to the sync machinery. Each instance owns
// its repository, its network functions, its pull-token key and batch size
// through the coordinator, and declares whether it pushes, pulls, or both.
type ModelSync interface {
	Name() string
	Group() Group

	// Sync runs push then pull. The two legs are independent failure
	// domains: a push failure never prevents the pull from running, and
	// both errors are reported joined.
	Sync(ctx context.Context) error

	Push(ctx context.Context) error
	Pull(ctx context.Context) error

	// PendingCount reports records still awaiting push, for the indicator.
	PendingCount(ctx context.Context) (int, error)
}

type modelSync[T Record, P any] struct {
	name   string
	group  Group
	coord  *Coordinator[T, P]
	repo   Repository[T, P]
	pushes bool
	log    *slog.Logger
}

// NewModelSync builds a full push+pull adapter for one entity type.
func NewModelSync[T Record, P any](name string, group Group, coord *Coordinator[T, P], repo Repository[T, P], log *slog.Logger) ModelSync {
	return &modelSync[T, P]{
		name:   name,
		group:  group,
		coord:  coord,
		repo:   repo,
		pushes: true,
		log:    log.With("entity", name),
	}
}

// NewPullOnlyModelSync builds an adapter for reference data the client never
// authors (facilities, protocols). Push is a trivial success.
func NewPullOnlyModelSync[T Record, P any](name string, group Group, coord *Coordinator[T, P], repo Repository[T, P], log *slog.Logger) ModelSync {
	return &modelSync[T, P]{
		name:  name,
		group: group,
		coord: coord,
		repo:  repo,
		log:   log.With("entity", name),
	}
}

func (m *modelSync[T, P]) Name() string { return m.name }

func (m *modelSync[T, P]) Group() Group { return m.group }

func (m *modelSync[T, P]) Push(ctx context.Context) error {
	if !m.pushes {
		return nil
	}
	return m.coord.Push(ctx)
}

func (m *modelSync[T, P]) Pull(ctx context.Context) error {
	return m.coord.Pull(ctx)
}

func (m *modelSync[T, P]) Sync(ctx context.Context) error {
	var errs []error
	if err := m.Push(ctx); err != nil {
		m.log.Warn("push failed", "error", err)
		errs = append(errs, fmt.Errorf("%s push: %w", m.name, err))
	}
	if err := m.Pull(ctx); err != nil {
		m.log.Warn("pull failed", "error", err)
		errs = append(errs, fmt.Errorf("%s pull: %w", m.name, err))
	}
	return errors.Join(errs...)
}

func (m *modelSync[T, P]) PendingCount(ctx context.Context) (int, error) {
	return m.repo.PendingCount(ctx)
}
