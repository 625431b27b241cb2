// Package metrics tracks workflow execution history for observability: run
// counts, failure streaks, run-time averages, and API call tallies. One JSON
// file per workflow under the metrics directory, written atomically so a
// crashed run never corrupts the record.
package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// emaAlpha weights the newest run time in the exponential moving average.
const emaAlpha = 0.2

// maxRunHistory caps the per-workflow run history ring.
const maxRunHistory = 20

// RunRecord is one entry in a workflow's run history.
type RunRecord struct {
	RunID          string   `json:"run_id"`
	Timestamp      string   `json:"timestamp"`
	Success        bool     `json:"success"`
	RunTimeSeconds *float64 `json:"run_time_seconds"`
	ErrorMessage   *string  `json:"error_message"`
}

// WorkflowMetrics is the persisted state for one workflow.
type WorkflowMetrics struct {
	WorkflowName        string         `json:"workflow_name"`
	TotalRuns           int            `json:"total_runs"`
	SuccessfulRuns      int            `json:"successful_runs"`
	FailedRuns          int            `json:"failed_runs"`
	ConsecutiveFailures int            `json:"consecutive_failures"`
	LastSuccess         *string        `json:"last_success"`
	LastFailure         *string        `json:"last_failure"`
	LastRunTimeSeconds  *float64       `json:"last_run_time_seconds"`
	AvgRunTimeSeconds   *float64       `json:"avg_run_time_seconds"`
	APICalls            map[string]int `json:"api_calls"`
	RunHistory          []RunRecord    `json:"run_history"`
}

// Status classifies a workflow for the status page: "unknown" before any
// runs, "error" at three or more consecutive failures, "warning" with a live
// failure streak, "success" otherwise.
func (m WorkflowMetrics) Status() string {
	switch {
	case m.TotalRuns == 0:
		return "unknown"
	case m.ConsecutiveFailures >= 3:
		return "error"
	case m.ConsecutiveFailures > 0:
		return "warning"
	default:
		return "success"
	}
}

// SuccessRate returns the lifetime success percentage, 0 with no runs.
func (m WorkflowMetrics) SuccessRate() float64 {
	if m.TotalRuns == 0 {
		return 0
	}
	return float64(m.SuccessfulRuns) / float64(m.TotalRuns) * 100
}

// Recorder persists workflow metrics under a directory.
type Recorder struct {
	dir string
	log *zap.Logger
	now func() time.Time
}

// NewRecorder builds a Recorder rooted at dir. A nil logger is replaced with
// a no-op one.
func NewRecorder(dir string, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{dir: dir, log: log.Named("metrics"), now: time.Now}
}

func (r *Recorder) metricsFile(workflow string) string {
	return filepath.Join(r.dir, workflow+".json")
}

func emptyMetrics(workflow string) WorkflowMetrics {
	return WorkflowMetrics{
		WorkflowName: workflow,
		APICalls:     map[string]int{},
		RunHistory:   []RunRecord{},
	}
}

// Load returns the stored metrics for a workflow, or a zeroed record when
// the file is missing or unreadable. Load never fails; a corrupt history
// should not block recording new runs.
func (r *Recorder) Load(workflow string) WorkflowMetrics {
	data, err := os.ReadFile(r.metricsFile(workflow))
	if err != nil {
		return emptyMetrics(workflow)
	}

	var m WorkflowMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		r.log.Warn("failed to parse workflow metrics, starting fresh",
			zap.String("workflow", workflow), zap.Error(err))
		return emptyMetrics(workflow)
	}
	if m.APICalls == nil {
		m.APICalls = map[string]int{}
	}
	return m
}

// Save writes metrics via a temp file, re-parses the temp file to prove it
// is valid JSON, then renames into place. A failure here is fatal to the
// caller: losing the metrics record silently would defeat the point.
func (r *Recorder) Save(m WorkflowMetrics) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	target := r.metricsFile(m.WorkflowName)
	tmp := target + ".tmp"

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metrics temp file: %w", err)
	}

	written, err := os.ReadFile(tmp)
	if err == nil {
		var check WorkflowMetrics
		err = json.Unmarshal(written, &check)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("metrics temp file failed validation: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move metrics into place: %w", err)
	}
	return nil
}

// RunOptions carries the optional details of a recorded run.
type RunOptions struct {
	RunTimeSeconds *float64
	APICalls       map[string]int
	ErrorMessage   string
}

// RecordRun folds one run into a workflow's metrics and persists the result.
func (r *Recorder) RecordRun(workflow string, success bool, opts RunOptions) (WorkflowMetrics, error) {
	m := r.Load(workflow)
	timestamp := r.now().UTC().Format("2006-01-02T15:04:05Z")

	m.TotalRuns++
	if success {
		m.SuccessfulRuns++
		m.ConsecutiveFailures = 0
		m.LastSuccess = &timestamp
	} else {
		m.FailedRuns++
		m.ConsecutiveFailures++
		m.LastFailure = &timestamp
	}

	if opts.RunTimeSeconds != nil {
		m.LastRunTimeSeconds = opts.RunTimeSeconds
		if m.AvgRunTimeSeconds == nil {
			avg := *opts.RunTimeSeconds
			m.AvgRunTimeSeconds = &avg
		} else {
			avg := emaAlpha*(*opts.RunTimeSeconds) + (1-emaAlpha)*(*m.AvgRunTimeSeconds)
			m.AvgRunTimeSeconds = &avg
		}
	}

	for endpoint, count := range opts.APICalls {
		m.APICalls[endpoint] += count
	}

	record := RunRecord{
		RunID:          uuid.NewString(),
		Timestamp:      timestamp,
		Success:        success,
		RunTimeSeconds: opts.RunTimeSeconds,
	}
	if opts.ErrorMessage != "" {
		msg := opts.ErrorMessage
		record.ErrorMessage = &msg
	}
	m.RunHistory = append(m.RunHistory, record)
	if len(m.RunHistory) > maxRunHistory {
		m.RunHistory = m.RunHistory[len(m.RunHistory)-maxRunHistory:]
	}

	if err := r.Save(m); err != nil {
		return m, err
	}
	return m, nil
}

// LoadAll returns metrics for every workflow with a record, sorted by name.
// Unreadable files are logged and skipped.
func (r *Recorder) LoadAll() []WorkflowMetrics {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil
	}

	var all []WorkflowMetrics
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			r.log.Warn("failed to read metrics file",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		var m WorkflowMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			r.log.Warn("failed to parse metrics file",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		all = append(all, m)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].WorkflowName < all[j].WorkflowName
	})
	return all
}

// ExceedsFailureThreshold reports whether a workflow's failure streak has
// reached threshold.
func (r *Recorder) ExceedsFailureThreshold(workflow string, threshold int) bool {
	return r.Load(workflow).ConsecutiveFailures >= threshold
}

// ResetFailureCount clears a workflow's failure streak.
func (r *Recorder) ResetFailureCount(workflow string) error {
	m := r.Load(workflow)
	m.ConsecutiveFailures = 0
	return r.Save(m)
}
