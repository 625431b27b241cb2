package pipeline

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/clients"
	"github.com/szmyty/profile/internal/rendering"
)

// Snapshots live under the data directory:
//
//	snapshots/daily/YYYY/MM/YYYY-MM-DD.json
//	snapshots/weekly/YYYY-WNN.json
//	snapshots/monthly/YYYY-MM.json
//
// The weekly aggregate is also copied to summary.json, the summary card's
// input document.
func (r *Runner) snapshotsDir() string {
	return filepath.Join(r.cfg.DataDir, "snapshots")
}

// StoreSnapshot records today's metrics as a daily snapshot and refreshes
// the weekly and monthly aggregates. Missing data sources leave their
// snapshot group empty rather than failing the run.
func (r *Runner) StoreSnapshot(now time.Time) error {
	snapshot := r.buildDailySnapshot(now)

	date := now.UTC().Format("2006-01-02")
	dailyPath := filepath.Join(r.snapshotsDir(), "daily",
		now.UTC().Format("2006"), now.UTC().Format("01"), date+".json")
	if err := clients.SaveJSON(dailyPath, snapshot); err != nil {
		return fmt.Errorf("failed to save daily snapshot: %w", err)
	}
	r.log.Info("saved daily snapshot", zap.String("path", dailyPath))

	weekStart := now.UTC().AddDate(0, 0, -6)
	if weekly := aggregateSnapshots("weekly", r.loadDailySnapshots(weekStart, now.UTC())); weekly != nil {
		year, week := now.UTC().ISOWeek()
		weeklyPath := filepath.Join(r.snapshotsDir(), "weekly", fmt.Sprintf("%d-W%02d.json", year, week))
		if err := clients.SaveJSON(weeklyPath, weekly); err != nil {
			return fmt.Errorf("failed to save weekly snapshot: %w", err)
		}
		if err := clients.SaveJSON(r.dataPath("summary.json"), weekly); err != nil {
			return fmt.Errorf("failed to save summary document: %w", err)
		}
	}

	monthStart := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	if monthly := aggregateSnapshots("monthly", r.loadDailySnapshots(monthStart, now.UTC())); monthly != nil {
		monthlyPath := filepath.Join(r.snapshotsDir(), "monthly", now.UTC().Format("2006-01")+".json")
		if err := clients.SaveJSON(monthlyPath, monthly); err != nil {
			return fmt.Errorf("failed to save monthly snapshot: %w", err)
		}
	}
	return nil
}

// buildDailySnapshot extracts a flat metrics record from whatever data
// documents currently exist.
func (r *Runner) buildDailySnapshot(now time.Time) map[string]any {
	snapshot := map[string]any{
		"timestamp": now.UTC().Format("2006-01-02T15:04:05Z"),
		"date":      now.UTC().Format("2006-01-02"),
		"health":    map[string]any{},
		"mood":      map[string]any{},
		"weather":   map[string]any{},
		"developer": map[string]any{},
	}

	if health := r.loadOptional("health.json"); health != nil {
		snapshot["health"] = map[string]any{
			"sleep_score":       rendering.Get(health, "sleep", "score"),
			"sleep_total":       rendering.Get(health, "sleep", "total_sleep"),
			"sleep_deep":        rendering.Get(health, "sleep", "deep_sleep"),
			"sleep_rem":         rendering.Get(health, "sleep", "rem_sleep"),
			"sleep_efficiency":  rendering.Get(health, "sleep", "efficiency"),
			"readiness_score":   rendering.Get(health, "readiness", "score"),
			"readiness_hrv":     rendering.Get(health, "readiness", "hrv_balance"),
			"readiness_temp":    rendering.Get(health, "readiness", "temperature_deviation"),
			"resting_hr":        rendering.Get(health, "readiness", "resting_heart_rate"),
			"activity_score":    rendering.Get(health, "activity", "score"),
			"activity_steps":    rendering.Get(health, "activity", "steps"),
			"activity_calories": rendering.Get(health, "activity", "active_calories"),
		}
	}
	if moodDoc := r.loadOptional("mood.json"); moodDoc != nil {
		snapshot["mood"] = map[string]any{
			"mood_name":  rendering.Get(moodDoc, "mood_name"),
			"mood_score": rendering.Get(moodDoc, "mood_score"),
			"mood_icon":  rendering.Get(moodDoc, "mood_icon"),
		}
	}
	if weather := r.loadOptional("weather.json"); weather != nil {
		snapshot["weather"] = map[string]any{
			"temperature": rendering.Get(weather, "current", "temperature"),
			"condition":   rendering.Get(weather, "current", "condition"),
			"weathercode": rendering.Get(weather, "current", "weathercode"),
			"wind_speed":  rendering.Get(weather, "current", "wind_speed"),
			"temp_max":    rendering.Get(weather, "daily", "temperature_max"),
			"temp_min":    rendering.Get(weather, "daily", "temperature_min"),
		}
	}
	if developer := r.loadOptional("developer.json"); developer != nil {
		snapshot["developer"] = map[string]any{
			"repos":       rendering.Get(developer, "repos"),
			"stars":       rendering.Get(developer, "stars"),
			"commits_30d": rendering.Get(developer, "commit_activity", "total_30_days"),
			"prs_opened":  rendering.Get(developer, "prs", "opened"),
			"prs_merged":  rendering.Get(developer, "prs", "merged"),
		}
	}
	return snapshot
}

// loadDailySnapshots reads every daily snapshot file in the date range,
// skipping missing days.
func (r *Runner) loadDailySnapshots(start, end time.Time) []map[string]any {
	var snapshots []map[string]any
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		path := filepath.Join(r.snapshotsDir(), "daily",
			day.Format("2006"), day.Format("01"), day.Format("2006-01-02")+".json")
		doc, err := LoadInput(path)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, doc)
	}
	return snapshots
}

func collectValues(snapshots []map[string]any, keys ...string) []float64 {
	var values []float64
	for _, s := range snapshots {
		if v := rendering.GetFloatPtr(s, keys...); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

func meanRounded(values []float64, decimals int) any {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(sum/float64(len(values))*scale) / scale
}

func sumOrNil(values []float64) any {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

func extremes(values []float64) (any, any) {
	if len(values) == 0 {
		return nil, nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// aggregateSnapshots rolls a range of daily snapshots into a period summary.
// Monthly summaries add the sleep score extremes. Returns nil when the range
// holds no snapshots.
func aggregateSnapshots(period string, snapshots []map[string]any) map[string]any {
	if len(snapshots) == 0 {
		return nil
	}

	sleepScores := collectValues(snapshots, "health", "sleep_score")
	readinessScores := collectValues(snapshots, "health", "readiness_score")
	activityScores := collectValues(snapshots, "health", "activity_score")
	steps := collectValues(snapshots, "health", "activity_steps")
	commits := collectValues(snapshots, "developer", "commits_30d")

	health := map[string]any{
		"avg_sleep_score":     meanRounded(sleepScores, 1),
		"avg_readiness_score": meanRounded(readinessScores, 1),
		"avg_activity_score":  meanRounded(activityScores, 1),
		"total_steps":         sumOrNil(steps),
		"avg_steps":           meanRounded(steps, 0),
	}
	if period == "monthly" {
		minSleep, maxSleep := extremes(sleepScores)
		health["min_sleep_score"] = minSleep
		health["max_sleep_score"] = maxSleep
	}

	return map[string]any{
		"period":     period,
		"start_date": rendering.GetString(snapshots[0], "", "date"),
		"end_date":   rendering.GetString(snapshots[len(snapshots)-1], "", "date"),
		"days_count": len(snapshots),
		"health":     health,
		"developer": map[string]any{
			"avg_commits": meanRounded(commits, 1),
		},
	}
}
