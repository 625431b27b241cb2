package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/config"
	"github.com/szmyty/profile/internal/metrics"
)

func newTestServer(t *testing.T) (*Server, config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		DataDir:    filepath.Join(root, "data"),
		OutputDir:  filepath.Join(root, "output"),
		ThemePath:  filepath.Join(root, "theme.json"),
		MetricsDir: filepath.Join(root, "metrics"),
		ListenAddr: "127.0.0.1:0",
	}
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	return New(cfg, zap.NewNop()), cfg
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoot_ListsEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doGet(t, s, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Profile Engine API", body["name"])
	endpoints := body["endpoints"].(map[string]any)
	assert.Equal(t, "/api/mood", endpoints["mood"])
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doGet(t, s, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"profile-engine-api"}`, rec.Body.String())
}

func TestDataEndpoint_ServesDocument(t *testing.T) {
	s, cfg := newTestServer(t)
	doc := `{"location":"Boston, MA","current":{"temperature":20.5}}`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "weather.json"), []byte(doc), 0o644))

	rec := doGet(t, s, "/api/weather")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, doc, rec.Body.String())
}

func TestDataEndpoint_MissingFile(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doGet(t, s, "/api/developer")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "developer.json")
}

func TestDataEndpoint_CorruptFile(t *testing.T) {
	s, cfg := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "quote.json"), []byte("{truncated"), 0o644))

	rec := doGet(t, s, "/api/quote")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}

func TestMood_DefaultWhenMissing(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doGet(t, s, "/api/mood")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unknown", body["mood_name"])
	assert.Equal(t, 50.0, body["mood_score"])
	assert.Nil(t, body["date"])
}

func TestMood_ServesComputedDocument(t *testing.T) {
	s, cfg := newTestServer(t)
	doc := `{"mood_name":"Cosmic Clarity","mood_score":73.8}`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "mood.json"), []byte(doc), 0o644))

	rec := doGet(t, s, "/api/mood")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, doc, rec.Body.String())
}

func TestStatus_ReturnsWorkflows(t *testing.T) {
	s, cfg := newTestServer(t)
	recorder := metrics.NewRecorder(cfg.MetricsDir, zap.NewNop())
	_, err := recorder.RecordRun("weather", true, metrics.RunOptions{})
	require.NoError(t, err)

	rec := doGet(t, s, "/api/status")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Workflows []metrics.WorkflowMetrics `json:"workflows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Workflows, 1)
	assert.Equal(t, "weather", body.Workflows[0].WorkflowName)
	assert.Equal(t, 1, body.Workflows[0].SuccessfulRuns)
}

func TestCard_ServesSVG(t *testing.T) {
	s, cfg := newTestServer(t)
	svg := `<svg xmlns="http://www.w3.org/2000/svg"></svg>`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "weather.svg"), []byte(svg), 0o644))

	rec := doGet(t, s, "/api/cards/weather")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, svg, rec.Body.String())

	// The .svg suffix is accepted too.
	rec = doGet(t, s, "/api/cards/weather.svg")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCard_MissingAndInvalidNames(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doGet(t, s, "/api/cards/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doGet(t, s, "/api/cards/..%2Fsecret")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doGet(t, s, "/health")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
