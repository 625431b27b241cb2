package rendering

import (
	"fmt"

	"github.com/szmyty/profile/internal/theme"
)

// WeatherCard renders current conditions and the day's forecast. Source data
// is metric; display is imperial.
type WeatherCard struct {
	Card
}

func NewWeatherCard(th *theme.Theme) *WeatherCard {
	return &WeatherCard{Card: NewCard("weather", th)}
}

// weatherGradient picks the background by time of day and WMO weather code.
func weatherGradient(isDay bool, code int) [2]string {
	if !isDay {
		return [2]string{"#0f0f23", "#1a1a2e"}
	}
	switch {
	case code <= 1:
		return [2]string{"#1e3a5f", "#2d5a7b"} // clear day
	case code <= 3:
		return [2]string{"#3d4f5f", "#4a5d6e"} // cloudy
	case code == 45 || code == 48:
		return [2]string{"#4a5568", "#5a6578"} // fog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return [2]string{"#2d3748", "#3d4758"} // rain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return [2]string{"#4a5568", "#6b7280"} // snow
	case code >= 95:
		return [2]string{"#1a202c", "#2d3748"} // thunderstorm
	default:
		return theme.DefaultGradient
	}
}

// Render builds the weather card SVG from a validated weather document.
func (w *WeatherCard) Render(data map[string]any) (string, error) {
	location := Truncate(GetString(data, "Unknown Location", "location"), 30)
	condition := GetString(data, "Unknown", "current", "condition")
	emoji := GetString(data, "🌡️", "current", "emoji")
	tempF := CelsiusToFahrenheit(GetFloat(data, 0, "current", "temperature"))
	maxF := CelsiusToFahrenheit(GetFloat(data, 0, "daily", "temperature_max"))
	minF := CelsiusToFahrenheit(GetFloat(data, 0, "daily", "temperature_min"))
	windMPH := KmhToMph(GetFloat(data, 0, "current", "wind_speed"))
	sunrise := FormatClockTime(GetString(data, "", "daily", "sunrise"))
	sunset := FormatClockTime(GetString(data, "", "daily", "sunset"))
	updatedAt := GetString(data, "", "updated_at")
	isDay := GetBool(data, true, "current", "is_day")
	code := GetInt(data, 0, "current", "weathercode")

	font := w.FontFamily()
	primary := w.Theme.Color("text", "primary", "#ffffff")
	secondary := w.Theme.Color("text", "secondary", "#8892b0")
	accent := w.Theme.Color("text", "accent", "#64ffda")
	muted := w.Theme.Color("text", "muted", "#4a5568")

	content := fmt.Sprintf(`
  <!-- Header: Location + Weather Icon -->
  <g transform="translate(20, 30)">
    <text font-family="%[1]s" font-size="14" fill="%[2]s" font-weight="600">
      %[3]s %[4]s
    </text>
  </g>

  <!-- Current Condition -->
  <g transform="translate(20, 60)">
    <text font-family="%[1]s" font-size="36" fill="%[5]s" font-weight="bold" filter="url(#glow)">
      %.0[6]f°F
    </text>
    <text x="110" y="0" font-family="%[1]s" font-size="16" fill="%[7]s">
      %[8]s
    </text>
  </g>

  <!-- High/Low -->
  <g transform="translate(20, 95)">
    <text font-family="%[1]s" font-size="13" fill="%[7]s">
      <tspan fill="#ff6b6b">High: %.0[9]f°F</tspan>
      <tspan fill="%[10]s">  •  </tspan>
      <tspan fill="#4ecdc4">Low: %.0[11]f°F</tspan>
    </text>
  </g>

  <!-- Wind -->
  <g transform="translate(20, 120)">
    <text font-family="%[1]s" font-size="12" fill="%[7]s">
      💨 Wind: %.0[12]f mph
    </text>
  </g>

  <!-- Sunrise/Sunset -->
  <g transform="translate(20, 145)">
    <text font-family="%[1]s" font-size="12" fill="%[7]s">
      🌅 %[13]s
      <tspan fill="%[10]s">  •  </tspan>
      🌇 %[14]s
    </text>
  </g>`,
		font, accent, EscapeXML(emoji), EscapeXML(location),
		primary, tempF, secondary, EscapeXML(condition),
		maxF, muted, minF, windMPH,
		EscapeXML(sunrise), EscapeXML(sunset))

	opts := DefsOptions{
		BackgroundGradient: weatherGradient(isDay, code),
		IncludeGlow:        true,
	}
	return w.Compose(opts, "", content, "Updated: "+updatedAt), nil
}
