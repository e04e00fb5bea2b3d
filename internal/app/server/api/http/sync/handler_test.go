package sync

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"medisync/internal/domain/feed"
)

type MockServicer struct {
	mock.Mock
}

func (m *MockServicer) Apply(ctx context.Context, recordType string, payloads []json.RawMessage) ([]feed.RecordError, error) {
	args := m.Called(ctx, recordType, payloads)
	var errs []feed.RecordError
	if args.Get(0) != nil {
		errs = args.Get(0).([]feed.RecordError)
	}
	return errs, args.Error(1)
}

func (m *MockServicer) Changes(ctx context.Context, recordType, token string, limit int) ([]json.RawMessage, string, error) {
	args := m.Called(ctx, recordType, token, limit)
	var payloads []json.RawMessage
	if args.Get(0) != nil {
		payloads = args.Get(0).([]json.RawMessage)
	}
	return payloads, args.String(1), args.Error(2)
}

func patientsEntity() entity {
	return entity{key: "patients", recordType: "patient", pushable: true}
}

func TestHandler_PullBuildsEntityKeyedBody(t *testing.T) {
	service := new(MockServicer)
	service.On("Changes", mock.Anything, "patient", "t1", 25).
		Return([]json.RawMessage{json.RawMessage(`{"id":"x"}`)}, "t2", nil)

	h := NewHandler(service, slog.Default(), huma.Middlewares{})
	out, err := h.pull(patientsEntity())(context.Background(), &pullInput{Limit: 25, ProcessToken: "t1"})
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Body, &body))
	assert.Contains(t, body, "patients")
	assert.JSONEq(t, `"t2"`, string(body["process_token"]))
}

func TestHandler_PullEmptyFeedReturnsEmptyArray(t *testing.T) {
	service := new(MockServicer)
	service.On("Changes", mock.Anything, "patient", "", 50).
		Return(nil, "0", nil)

	h := NewHandler(service, slog.Default(), huma.Middlewares{})
	out, err := h.pull(patientsEntity())(context.Background(), &pullInput{Limit: 50})
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Body, &body))
	assert.JSONEq(t, `[]`, string(body["patients"]), "empty page is an array, not null")
}

func TestHandler_PushUnwrapsEntityKey(t *testing.T) {
	service := new(MockServicer)
	service.On("Apply", mock.Anything, "patient", mock.MatchedBy(func(p []json.RawMessage) bool {
		return len(p) == 2
	})).Return(nil, nil)

	h := NewHandler(service, slog.Default(), huma.Middlewares{})
	out, err := h.push(patientsEntity())(context.Background(), &pushInput{
		RawBody: []byte(`{"patients":[{"id":"a"},{"id":"b"}]}`),
	})
	require.NoError(t, err)
	assert.Empty(t, out.Body.Errors)
	service.AssertExpectations(t)
}

func TestHandler_PushReportsRecordErrors(t *testing.T) {
	service := new(MockServicer)
	service.On("Apply", mock.Anything, "patient", mock.Anything).
		Return([]feed.RecordError{{ID: "a", Messages: []string{"id is required"}}}, nil)

	h := NewHandler(service, slog.Default(), huma.Middlewares{})
	out, err := h.push(patientsEntity())(context.Background(), &pushInput{
		RawBody: []byte(`{"patients":[{}]}`),
	})
	require.NoError(t, err)
	require.Len(t, out.Body.Errors, 1)
	assert.Equal(t, "a", out.Body.Errors[0].ID)
}

func TestHandler_PushRejectsMalformedBody(t *testing.T) {
	service := new(MockServicer)
	h := NewHandler(service, slog.Default(), huma.Middlewares{})

	_, err := h.push(patientsEntity())(context.Background(), &pushInput{RawBody: []byte(`not json`)})
	assert.Error(t, err)
	service.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
}
