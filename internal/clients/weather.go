package clients

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// openMeteoResponse mirrors the slice of the Open-Meteo forecast response we
// consume.
type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
		IsDay       int     `json:"is_day"`
	} `json:"current"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		Sunrise        []string  `json:"sunrise"`
		Sunset         []string  `json:"sunset"`
	} `json:"daily"`
}

// weatherCondition maps a WMO weather code to a label and emoji.
func weatherCondition(code int, isDay bool) (string, string) {
	switch {
	case code == 0:
		if isDay {
			return "Clear sky", "☀️"
		}
		return "Clear sky", "🌙"
	case code <= 2:
		return "Partly cloudy", "⛅"
	case code == 3:
		return "Overcast", "☁️"
	case code == 45 || code == 48:
		return "Fog", "🌫️"
	case code >= 51 && code <= 57:
		return "Drizzle", "🌦️"
	case code >= 61 && code <= 67:
		return "Rain", "🌧️"
	case code >= 71 && code <= 77:
		return "Snow", "🌨️"
	case code >= 80 && code <= 82:
		return "Rain showers", "🌧️"
	case code == 85 || code == 86:
		return "Snow showers", "🌨️"
	case code >= 95:
		return "Thunderstorm", "⛈️"
	default:
		return "Unknown", "🌡️"
	}
}

// FetchWeather pulls current conditions and the day's forecast from
// Open-Meteo and returns the weather data document.
func (c *Client) FetchWeather(ctx context.Context, latitude, longitude float64, location string) (map[string]any, error) {
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,relative_humidity_2m,is_day,weather_code,wind_speed_10m&daily=temperature_2m_max,temperature_2m_min,sunrise,sunset&timezone=auto&forecast_days=1",
		openMeteoBaseURL, latitude, longitude)

	var resp openMeteoResponse
	if err := c.getJSON(ctx, "weather", url, nil, &resp); err != nil {
		return nil, err
	}

	isDay := resp.Current.IsDay == 1
	condition, emoji := weatherCondition(resp.Current.WeatherCode, isDay)

	first := func(values []float64) float64 {
		if len(values) > 0 {
			return values[0]
		}
		return 0
	}
	firstString := func(values []string) string {
		if len(values) > 0 {
			return values[0]
		}
		return ""
	}

	doc := map[string]any{
		"location": location,
		"coordinates": map[string]any{
			"lat": latitude,
			"lon": longitude,
		},
		"current": map[string]any{
			"temperature": resp.Current.Temperature,
			"humidity":    resp.Current.Humidity,
			"wind_speed":  resp.Current.WindSpeed,
			"weathercode": resp.Current.WeatherCode,
			"is_day":      isDay,
			"condition":   condition,
			"emoji":       emoji,
		},
		"daily": map[string]any{
			"temperature_max": first(resp.Daily.TemperatureMax),
			"temperature_min": first(resp.Daily.TemperatureMin),
			"sunrise":         firstString(resp.Daily.Sunrise),
			"sunset":          firstString(resp.Daily.Sunset),
		},
		"updated_at": nowISO(),
	}

	c.log.Info("fetched weather data",
		zap.String("location", location),
		zap.Float64("temperature", resp.Current.Temperature),
		zap.Int("weathercode", resp.Current.WeatherCode))
	return doc, nil
}
