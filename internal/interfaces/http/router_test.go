package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customers-api/pkg/logger"
)

func assertCORS(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestCORS_OnEveryResponse(t *testing.T) {
	app := buildTestApp(newFakeCustomerRepo())

	cases := []struct {
		method, path string
		body         interface{}
		status       int
	}{
		{http.MethodGet, "/customers", nil, http.StatusOK},
		{http.MethodPost, "/customers", anaPayload(), http.StatusCreated},
		{http.MethodPost, "/customers", map[string]string{}, http.StatusBadRequest},
		{http.MethodDelete, "/customers/99", nil, http.StatusNotFound},
		{http.MethodGet, "/no-existe", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, _ := doJSON(t, app, tc.method, tc.path, tc.body)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s", tc.method, tc.path)
		assertCORS(t, resp)
	}
}

func TestCORS_Preflight(t *testing.T) {
	app := buildTestApp(newFakeCustomerRepo())

	req := httptest.NewRequest(http.MethodOptions, "/customers/1", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assertCORS(t, resp)
}

func TestRequestIDHeader(t *testing.T) {
	app := buildTestApp(newFakeCustomerRepo())

	resp, _ := doJSON(t, app, http.MethodGet, "/customers", nil)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36, "debe ser un UUID")
}

func TestMethodNotAllowed(t *testing.T) {
	app := buildTestApp(newFakeCustomerRepo())

	resp, body := doJSON(t, app, http.MethodDelete, "/customers", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"error": "method not allowed"}, body)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(newFakeCustomerRepo())

	resp, body := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"status": "ok", "service": "customers-api-test"}, body)
}

func TestOpenAPIDocument(t *testing.T) {
	app := buildTestApp(newFakeCustomerRepo())

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Swagger string                            `json:"swagger"`
		Paths   map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/customers")
	assert.Contains(t, doc.Paths["/customers/{id}"], "delete")
	assert.Contains(t, doc.Paths, "/health")
}

func TestInternalErrorLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	repo := newFakeCustomerRepo()
	repo.err = errors.New("dial tcp: connection refused")
	app := buildTestAppWithLogger(repo, logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))

	resp, _ := doJSON(t, app, http.MethodGet, "/customers", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	levels := map[string]int{}
	var access map[string]interface{}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		levels[line["level"].(string)]++
		if line["message"] == "http" {
			access = line
		}
	}
	assert.Equal(t, 1, levels["error"], "la causa se registra una sola vez")
	require.NotNil(t, access)
	assert.Equal(t, "warn", access["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), access["status"])
}
