package clients

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/mood"
)

var ouraBaseURL = "https://api.ouraring.com/v2/usercollection"

type ouraDailySleep struct {
	Data []struct {
		Day          string `json:"day"`
		Score        int    `json:"score"`
		Contributors struct {
			DeepSleep  int `json:"deep_sleep"`
			RemSleep   int `json:"rem_sleep"`
			Efficiency int `json:"efficiency"`
		} `json:"contributors"`
	} `json:"data"`
}

type ouraSleepDetail struct {
	Data []struct {
		Day                string    `json:"day"`
		DeepSleepDuration  int       `json:"deep_sleep_duration"`
		RemSleepDuration   int       `json:"rem_sleep_duration"`
		TotalSleepDuration int       `json:"total_sleep_duration"`
		Efficiency         int       `json:"efficiency"`
		AverageHeartRate   float64   `json:"average_heart_rate"`
		LowestHeartRate    float64   `json:"lowest_heart_rate"`
		HeartRate          struct {
			Items []*float64 `json:"items"`
		} `json:"heart_rate"`
	} `json:"data"`
}

type ouraDailyReadiness struct {
	Data []struct {
		Day                  string  `json:"day"`
		Score                int     `json:"score"`
		TemperatureDeviation float64 `json:"temperature_deviation"`
		Contributors         struct {
			HRVBalance       int `json:"hrv_balance"`
			RecoveryIndex    int `json:"recovery_index"`
			RestingHeartRate int `json:"resting_heart_rate"`
		} `json:"contributors"`
	} `json:"data"`
}

type ouraDailyActivity struct {
	Data []struct {
		Day            string `json:"day"`
		Score          int    `json:"score"`
		Steps          int    `json:"steps"`
		TotalCalories  int    `json:"total_calories"`
		ActiveCalories int    `json:"active_calories"`
	} `json:"data"`
}

// OuraClient fetches daily health metrics from the Oura API.
type OuraClient struct {
	client *Client
	token  string
}

// NewOuraClient builds an OuraClient with a personal access token.
func NewOuraClient(client *Client, token string) *OuraClient {
	return &OuraClient{client: client, token: token}
}

func (o *OuraClient) get(ctx context.Context, endpoint string, out any) error {
	end := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	url := fmt.Sprintf("%s/%s?start_date=%s&end_date=%s", ouraBaseURL, endpoint, start, end)
	headers := map[string]string{"Authorization": "Bearer " + o.token}
	return o.client.getJSON(ctx, "oura", url, headers, out)
}

// formatSleepDuration renders seconds as "1h 45m".
func formatSleepDuration(seconds int) string {
	return fmt.Sprintf("%dh %dm", seconds/3600, seconds%3600/60)
}

// FetchHealthSnapshot pulls the latest daily sleep, readiness, and activity
// summaries and assembles the health snapshot document.
func (o *OuraClient) FetchHealthSnapshot(ctx context.Context) (map[string]any, error) {
	if o.token == "" {
		return nil, &FetchError{Source: "oura", Message: "missing personal access token"}
	}

	var dailySleep ouraDailySleep
	if err := o.get(ctx, "daily_sleep", &dailySleep); err != nil {
		return nil, err
	}
	var sleepDetail ouraSleepDetail
	if err := o.get(ctx, "sleep", &sleepDetail); err != nil {
		return nil, err
	}
	var readiness ouraDailyReadiness
	if err := o.get(ctx, "daily_readiness", &readiness); err != nil {
		return nil, err
	}
	var activity ouraDailyActivity
	if err := o.get(ctx, "daily_activity", &activity); err != nil {
		return nil, err
	}

	doc := map[string]any{"updated_at": nowISO()}

	sleep := map[string]any{}
	if n := len(dailySleep.Data); n > 0 {
		sleep["score"] = dailySleep.Data[n-1].Score
	}
	if n := len(sleepDetail.Data); n > 0 {
		latest := sleepDetail.Data[n-1]
		sleep["deep_sleep"] = formatSleepDuration(latest.DeepSleepDuration)
		sleep["rem_sleep"] = formatSleepDuration(latest.RemSleepDuration)
		sleep["total_sleep"] = formatSleepDuration(latest.TotalSleepDuration)
		sleep["efficiency"] = latest.Efficiency

		var trend []any
		for _, v := range latest.HeartRate.Items {
			if v != nil {
				trend = append(trend, *v)
			}
		}
		doc["heart_rate"] = map[string]any{
			"resting_bpm":  latest.LowestHeartRate,
			"trend_values": trend,
		}
	}
	doc["sleep"] = sleep

	if n := len(readiness.Data); n > 0 {
		latest := readiness.Data[n-1]
		doc["readiness"] = map[string]any{
			"score":                 latest.Score,
			"recovery_index":        latest.Contributors.RecoveryIndex,
			"hrv_balance":           latest.Contributors.HRVBalance,
			"resting_heart_rate":    latest.Contributors.RestingHeartRate,
			"temperature_deviation": latest.TemperatureDeviation,
		}
	}

	if n := len(activity.Data); n > 0 {
		latest := activity.Data[n-1]
		doc["activity"] = map[string]any{
			"score":           latest.Score,
			"steps":           latest.Steps,
			"total_calories":  latest.TotalCalories,
			"active_calories": latest.ActiveCalories,
		}
	}

	o.client.log.Info("fetched Oura health snapshot",
		zap.Int("sleep_days", len(dailySleep.Data)),
		zap.Int("readiness_days", len(readiness.Data)),
		zap.Int("activity_days", len(activity.Data)))
	return doc, nil
}

// MoodMetricsFromSnapshot flattens a health snapshot into the metrics bundle
// the mood engine scores.
func MoodMetricsFromSnapshot(snapshot map[string]any) mood.Metrics {
	pick := func(keys ...string) *float64 {
		var current any = snapshot
		for _, key := range keys {
			m, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current, ok = m[key]
			if !ok {
				return nil
			}
		}
		switch v := current.(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		}
		return nil
	}
	return mood.Metrics{
		SleepScore:     pick("sleep", "score"),
		ReadinessScore: pick("readiness", "score"),
		ActivityScore:  pick("activity", "score"),
		HRV:            pick("readiness", "hrv_balance"),
		RestingHR:      pick("readiness", "resting_heart_rate"),
		TempDeviation:  pick("readiness", "temperature_deviation"),
	}
}
