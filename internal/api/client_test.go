package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"medisync/internal/model"
	"medisync/internal/sync"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nurse", body["login"])

		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-token"})
	}))
	defer srv.Close()

	client := New(srv.URL, slog.Default())
	token, err := client.Login(context.Background(), "nurse", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, "jwt-token", client.Token(), "login installs the token")
}

func TestClient_UnauthorizedMapsToUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, slog.Default())
	err := client.PushPatients(context.Background(), []model.PatientPayload{{UUID: uuid.New()}})
	require.Error(t, err)
	assert.Equal(t, sync.KindUnauthenticated, sync.Resolve(err))
}

func TestClient_ServerErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, slog.Default())
	err := client.PushPatients(context.Background(), []model.PatientPayload{{UUID: uuid.New()}})
	require.Error(t, err)
	assert.Equal(t, sync.KindServer, sync.Resolve(err))

	var serverErr *sync.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.Code)
	assert.Contains(t, serverErr.Body, "boom")
}

func TestClient_UnreachableMapsToNetwork(t *testing.T) {
	client := New("http://127.0.0.1:1", slog.Default())
	err := client.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Equal(t, sync.KindNetwork, sync.Resolve(err))
}

func TestClient_PushWireShape(t *testing.T) {
	var captured map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/sync/patients", r.URL.Path)
		require.Equal(t, "Bearer session", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, slog.Default())
	client.SetToken("session")

	payload := model.PatientPayload{UUID: uuid.New(), FullName: "Asha", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, client.PushPatients(context.Background(), []model.PatientPayload{payload}))

	data, ok := captured["patients"]
	require.True(t, ok, "payloads go under the entity field key")

	var sent []model.PatientPayload
	require.NoError(t, json.Unmarshal(data, &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, payload.UUID, sent[0].UUID)
}

func TestClient_PullWireShape(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "cursor-7", r.URL.Query().Get("process_token"))

		json.NewEncoder(w).Encode(map[string]any{
			"patients":      []model.PatientPayload{{UUID: id, FullName: "From Server"}},
			"process_token": "cursor-8",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, slog.Default())
	page, err := client.PullPatients(context.Background(), 25, "cursor-7")
	require.NoError(t, err)
	assert.Equal(t, "cursor-8", page.Token)
	require.Len(t, page.Payloads, 1)
	assert.Equal(t, id, page.Payloads[0].UUID)
}

func TestClient_PullFirstPageOmitsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has := r.URL.Query()["process_token"]
		assert.False(t, has, "empty token is omitted, not sent blank")
		json.NewEncoder(w).Encode(map[string]any{"patients": []model.PatientPayload{}, "process_token": "cursor-1"})
	}))
	defer srv.Close()

	client := New(srv.URL, slog.Default())
	page, err := client.PullPatients(context.Background(), 10, "")
	require.NoError(t, err)
	assert.Empty(t, page.Payloads)
	assert.Equal(t, "cursor-1", page.Token)
}
