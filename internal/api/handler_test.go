package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupipe/edupipe/internal/builders"
	"github.com/edupipe/edupipe/internal/caliper"
	"github.com/edupipe/edupipe/internal/config"
	"github.com/edupipe/edupipe/internal/engine"
	"github.com/edupipe/edupipe/internal/statement"
	"github.com/edupipe/edupipe/internal/xapi"
)

func newTestHandler(t *testing.T, sendErr error) (http.Handler, *int) {
	t.Helper()
	calls := 0
	tr := statement.Func(func(ctx context.Context, flat *xapi.Statement, structured *caliper.Event) error {
		calls++
		return sendErr
	})
	proc := statement.NewProcessor(statement.Platform{ID: "acme", App: "https://lms.acme.edu"}, tr)
	eng := engine.New(context.Background(), builders.NewRegistry(), proc, engine.Conf{
		Workers:     2,
		QueueDepth:  16,
		EmitTimeout: 2 * time.Second,
	})
	t.Cleanup(eng.Shutdown)
	return New(eng, nil, func(cfg *config.Config) error { return nil }), &calls
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIngestEvent(t *testing.T) {
	h, calls := newTestHandler(t, nil)

	rec := post(h, "/v1/events", `{
		"event": "assignment.create",
		"actor": {"id": "u1"},
		"timestamp": "2026-08-01T10:30:00Z",
		"metadata": {"id": "https://x/a1", "title": "Essay"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, *calls)

	var res engine.EmitResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "assignment.create", res.Event)
	assert.NotEmpty(t, res.StatementID)
	assert.Equal(t, "https://x/a1", res.Statement.Flat.Object.ID)
}

func TestIngestEventValidationFailure(t *testing.T) {
	h, calls := newTestHandler(t, nil)

	rec := post(h, "/v1/events", `{
		"event": "assignment.submit",
		"actor": {"id": "u1"},
		"metadata": {"id": "https://x/s1"}
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, *calls, "transport must not be invoked on validation failure")

	var resp struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "assignment", resp.Field)
	assert.Contains(t, resp.Error, "missing")
}

func TestIngestEventUnknownKind(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	rec := post(h, "/v1/events", `{"event": "nope", "actor": {"id": "u1"}, "metadata": {}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestEventBadRequests(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	assert.Equal(t, http.StatusBadRequest, post(h, "/v1/events", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "/v1/events", `{"actor": {"id": "u1"}}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "/v1/events", `{"event": "assignment.view"}`).Code)
}

func TestIngestBatch(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := post(h, "/v1/events/batch", `[
		{"event": "assignment.view", "actor": {"id": "u1"}, "metadata": {"assignment": "https://x/a1"}},
		{"event": "assignment.view", "actor": {"id": "u2"}, "metadata": {"assignment": "https://x/a1"}}
	]`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp struct {
		Total  int `json:"total"`
		Queued int `json:"queued"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Queued)
}

func TestListBuilders(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/builders", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Events []string `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 7)
	assert.Contains(t, resp.Events, "submission.grade")
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
