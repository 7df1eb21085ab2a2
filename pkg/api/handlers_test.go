package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantike/gulog/pkg/store"
	"github.com/quantike/gulog/pkg/wal"
)

const testAPIKey = "test-key"

// setupTestRouter wires a router over an in-memory object store. Metrics
// are nil to avoid duplicate Prometheus registration across tests.
func setupTestRouter(t *testing.T) (http.Handler, *wal.Client, *store.MemStore) {
	t.Helper()

	mem := store.NewMemStore()
	client := wal.NewClient(mem, wal.ClientConfig{})

	config := ServerConfig{APIKey: testAPIKey}
	server := NewServer(client, config, nil)

	return NewRouter(server, config, nil), client, mem
}

func doRequest(router http.Handler, method, path string, body []byte, withKey bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if withKey {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func appendPayload(t *testing.T, router http.Handler, payload []byte) AppendResponse {
	t.Helper()

	rec := doRequest(router, http.MethodPost, "/api/v1/records", payload, true)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var appended AppendResponse
	require.NoError(t, json.Unmarshal(data, &appended))
	return appended
}

func TestAppendReadRoundTrip(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	payload := []byte("hello through the API")

	appended := appendPayload(t, router, payload)
	assert.Len(t, appended.ID, 26)
	assert.Equal(t, "wal/"+appended.ID+".wal", appended.Key)

	rec := doRequest(router, http.MethodGet, "/api/v1/records/"+appended.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())
	assert.Equal(t, appended.ID, rec.Header().Get("X-Record-Id"))
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
}

func TestAppendEmptyPayload(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	appended := appendPayload(t, router, nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/records/"+appended.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestReadInvalidID(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/records/not-a-ulid", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestReadUnknownID(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/records/01HZZZZZZZZZZZZZZZZZZZZZZZ", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReadCorruptedRecord(t *testing.T) {
	router, client, mem := setupTestRouter(t)
	ctx := context.Background()

	appended := appendPayload(t, router, []byte("soon to be corrupted"))

	// Corrupt the stored object underneath the API
	id, err := ulid.ParseStrict(appended.ID)
	require.NoError(t, err)
	data, err := mem.Get(ctx, client.Key(id))
	require.NoError(t, err)
	data[0] ^= 0xFF
	require.NoError(t, mem.Put(ctx, client.Key(id), data))

	rec := doRequest(router, http.MethodGet, "/api/v1/records/"+appended.ID, nil, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Verify reports the corruption instead of failing the request
	rec = doRequest(router, http.MethodGet, "/api/v1/records/"+appended.ID+"/verify", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	verify := resp.Data.(map[string]interface{})
	assert.Equal(t, false, verify["valid"])
}

func TestVerifyValidRecord(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	payload := []byte("intact payload")

	appended := appendPayload(t, router, payload)

	rec := doRequest(router, http.MethodGet, "/api/v1/records/"+appended.ID+"/verify", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	verify := resp.Data.(map[string]interface{})
	assert.Equal(t, true, verify["valid"])
	assert.Equal(t, float64(len(payload)), verify["payload_size"])
}

func TestAPIKeyRequired(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/records", []byte("payload"), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", bytes.NewReader([]byte("payload")))
	req.Header.Set("X-API-Key", "wrong-key")
	wrongRec := httptest.NewRecorder()
	router.ServeHTTP(wrongRec, req)
	assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/health", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestRequestIDAssigned(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/health", nil, true)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	// A caller-supplied id is echoed back
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("X-Request-Id", "caller-id")
	echoRec := httptest.NewRecorder()
	router.ServeHTTP(echoRec, req)
	assert.Equal(t, "caller-id", echoRec.Header().Get("X-Request-Id"))
}
