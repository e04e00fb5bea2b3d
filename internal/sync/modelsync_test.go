package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestModelSync_PushFailureDoesNotBlockPull(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(testRecord{id: uuid.New(), name: "stuck", status: StatusPending})

	push := func(_ context.Context, _ []testPayload) error {
		return &ServerError{Code: 500}
	}
	pulled := false
	serverID := uuid.New()
	pull := func(_ context.Context, _ int, _ string) (Page[testPayload], error) {
		pulled = true
		return Page[testPayload]{Payloads: []testPayload{{ID: serverID, Name: "fresh"}}, Token: "t1"}, nil
	}

	coord := newTestCoordinator(repo, push, pull, newMemTokens(), 10)
	ms := NewModelSync[testRecord, testPayload]("test", GroupFrequent, coord, repo, slog.Default())

	err := ms.Sync(ctx)
	require.Error(t, err)
	assert.True(t, pulled, "pull still runs when push fails")
	assert.Equal(t, "fresh", repo.records[serverID].name)
}

func TestModelSync_PullFailureDoesNotHidePushResult(t *testing.T) {
	ctx := context.Background()
	rec := testRecord{id: uuid.New(), name: "ready", status: StatusPending}
	repo := newMemRepo(rec)

	pull := func(_ context.Context, _ int, _ string) (Page[testPayload], error) {
		return Page[testPayload]{}, &NetworkError{Err: errors.New("timeout")}
	}

	coord := newTestCoordinator(repo, noopPush, pull, newMemTokens(), 10)
	ms := NewModelSync[testRecord, testPayload]("test", GroupFrequent, coord, repo, slog.Default())

	err := ms.Sync(ctx)
	require.Error(t, err)
	assert.Equal(t, StatusDone, repo.records[rec.id].status, "push completed before the pull failed")
}

func TestModelSync_JoinedErrorCarriesBothLegs(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(testRecord{id: uuid.New(), status: StatusPending})

	push := func(_ context.Context, _ []testPayload) error {
		return &ServerError{Code: 502}
	}
	pull := func(_ context.Context, _ int, _ string) (Page[testPayload], error) {
		return Page[testPayload]{}, &NetworkError{Err: errors.New("timeout")}
	}

	coord := newTestCoordinator(repo, push, pull, newMemTokens(), 10)
	ms := NewModelSync[testRecord, testPayload]("test", GroupFrequent, coord, repo, slog.Default())

	err := ms.Sync(ctx)
	require.Error(t, err)

	var serverErr *ServerError
	var netErr *NetworkError
	assert.ErrorAs(t, err, &serverErr)
	assert.ErrorAs(t, err, &netErr)
}

func TestPullOnlyModelSync_NeverPushes(t *testing.T) {
	ctx := context.Background()
	// A pending record exists, but a pull-only entity must not push it.
	repo := newMemRepo(testRecord{id: uuid.New(), status: StatusPending})

	push := func(_ context.Context, _ []testPayload) error {
		t.Fatal("pull-only entity attempted a push")
		return nil
	}

	coord := newTestCoordinator(repo, push, noPull, newMemTokens(), 10)
	ms := NewPullOnlyModelSync[testRecord, testPayload]("reference", GroupDaily, coord, repo, slog.Default())

	require.NoError(t, ms.Sync(ctx))
	assert.Equal(t, GroupDaily, ms.Group())
}

func TestModelSync_EndToEndCycle(t *testing.T) {
	ctx := context.Background()

	// Three local edits queued, one record on the server side.
	a := testRecord{id: uuid.New(), name: "a", status: StatusPending}
	b := testRecord{id: uuid.New(), name: "b", status: StatusPending}
	c := testRecord{id: uuid.New(), name: "c", status: StatusPending}
	repo := newMemRepo(a, b, c)

	serverID := uuid.New()
	var pushCalls, pushedCount int
	push := func(_ context.Context, payloads []testPayload) error {
		pushCalls++
		pushedCount = len(payloads)
		return nil
	}
	pull := func(_ context.Context, _ int, _ string) (Page[testPayload], error) {
		return Page[testPayload]{
			Payloads: []testPayload{{ID: serverID, Name: "from server"}},
			Token:    "t1",
		}, nil
	}

	tokens := newMemTokens()
	coord := newTestCoordinator(repo, push, pull, tokens, 10)
	ms := NewModelSync[testRecord, testPayload]("test", GroupFrequent, coord, repo, slog.Default())

	require.NoError(t, ms.Sync(ctx))

	assert.Equal(t, 3, pushedCount)
	for _, rec := range []testRecord{a, b, c} {
		assert.Equal(t, StatusDone, repo.records[rec.id].status)
	}
	assert.Equal(t, "from server", repo.records[serverID].name)
	assert.Equal(t, "t1", tokens.tokens[TokenKey("test", 1)])

	pending, err := ms.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)

	// Nothing left to upload: a second cycle makes zero push requests.
	require.NoError(t, ms.Sync(ctx))
	assert.Equal(t, 1, pushCalls, "drained queue must not trigger another push request")
}
