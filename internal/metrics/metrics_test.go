package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	return NewRecorder(t.TempDir(), zap.NewNop())
}

func seconds(v float64) *float64 { return &v }

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	r := newTestRecorder(t)
	m := r.Load("weather")

	assert.Equal(t, "weather", m.WorkflowName)
	assert.Equal(t, 0, m.TotalRuns)
	assert.NotNil(t, m.APICalls)
	assert.Equal(t, "unknown", m.Status())
}

func TestRecordRun_Success(t *testing.T) {
	r := newTestRecorder(t)

	m, err := r.RecordRun("weather", true, RunOptions{RunTimeSeconds: seconds(12.5)})
	require.NoError(t, err)

	assert.Equal(t, 1, m.TotalRuns)
	assert.Equal(t, 1, m.SuccessfulRuns)
	assert.Equal(t, 0, m.ConsecutiveFailures)
	require.NotNil(t, m.LastSuccess)
	assert.Nil(t, m.LastFailure)
	assert.Equal(t, 12.5, *m.AvgRunTimeSeconds)
	assert.Equal(t, "success", m.Status())
	require.Len(t, m.RunHistory, 1)
	assert.NotEmpty(t, m.RunHistory[0].RunID)
}

func TestRecordRun_FailureStreakAndRecovery(t *testing.T) {
	r := newTestRecorder(t)

	for i := 0; i < 3; i++ {
		_, err := r.RecordRun("oura", false, RunOptions{ErrorMessage: "timeout"})
		require.NoError(t, err)
	}
	m := r.Load("oura")
	assert.Equal(t, 3, m.ConsecutiveFailures)
	assert.Equal(t, "error", m.Status())
	assert.True(t, r.ExceedsFailureThreshold("oura", 3))

	m, err := r.RecordRun("oura", true, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.ConsecutiveFailures)
	assert.Equal(t, "success", m.Status())
}

func TestRecordRun_MovingAverage(t *testing.T) {
	r := newTestRecorder(t)

	_, err := r.RecordRun("developer", true, RunOptions{RunTimeSeconds: seconds(100)})
	require.NoError(t, err)
	m, err := r.RecordRun("developer", true, RunOptions{RunTimeSeconds: seconds(200)})
	require.NoError(t, err)

	// 0.2*200 + 0.8*100 = 120
	assert.InDelta(t, 120.0, *m.AvgRunTimeSeconds, 1e-9)
	assert.Equal(t, 200.0, *m.LastRunTimeSeconds)
}

func TestRecordRun_HistoryCapped(t *testing.T) {
	r := newTestRecorder(t)

	for i := 0; i < 25; i++ {
		_, err := r.RecordRun("quote", true, RunOptions{})
		require.NoError(t, err)
	}
	m := r.Load("quote")
	assert.Len(t, m.RunHistory, maxRunHistory)
	assert.Equal(t, 25, m.TotalRuns)
}

func TestRecordRun_APICallsAccumulate(t *testing.T) {
	r := newTestRecorder(t)

	_, err := r.RecordRun("weather", true, RunOptions{APICalls: map[string]int{"forecast": 2}})
	require.NoError(t, err)
	m, err := r.RecordRun("weather", true, RunOptions{APICalls: map[string]int{"forecast": 1, "geocode": 1}})
	require.NoError(t, err)

	assert.Equal(t, 3, m.APICalls["forecast"])
	assert.Equal(t, 1, m.APICalls["geocode"])
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, nil)

	_, err := r.RecordRun("weather", true, RunOptions{})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "weather.json", entries[0].Name())
}

func TestLoad_CorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weather.json"), []byte("{broken"), 0o644))

	m := r.Load("weather")
	assert.Equal(t, 0, m.TotalRuns)
}

func TestLoadAll_SortedAndSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, nil)

	_, err := r.RecordRun("weather", true, RunOptions{})
	require.NoError(t, err)
	_, err = r.RecordRun("developer", false, RunOptions{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("nope"), 0o644))

	all := r.LoadAll()
	require.Len(t, all, 2)
	assert.Equal(t, "developer", all[0].WorkflowName)
	assert.Equal(t, "weather", all[1].WorkflowName)
}

func TestSuccessRate(t *testing.T) {
	m := WorkflowMetrics{TotalRuns: 4, SuccessfulRuns: 3}
	assert.Equal(t, 75.0, m.SuccessRate())
	assert.Equal(t, 0.0, WorkflowMetrics{}.SuccessRate())
}

func TestSave_RoundTrips(t *testing.T) {
	r := newTestRecorder(t)
	m, err := r.RecordRun("oura", false, RunOptions{ErrorMessage: "api down"})
	require.NoError(t, err)

	loaded := r.Load("oura")
	a, _ := json.Marshal(m)
	b, _ := json.Marshal(loaded)
	assert.JSONEq(t, string(a), string(b))
}
