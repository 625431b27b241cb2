package rendering

import (
	"fmt"
	"math"

	"github.com/szmyty/profile/internal/theme"
)

// LocationCard renders the current-location card with an embedded base64 map
// tile.
type LocationCard struct {
	Card
}

func NewLocationCard(th *theme.Theme) *LocationCard {
	return &LocationCard{Card: NewCard("location", th)}
}

// FormatCoordinates renders lat/lon as a human-readable compass pair, e.g.
// "42.3601°N, 71.0589°W".
func FormatCoordinates(lat, lon float64) string {
	latDir, lonDir := "N", "E"
	if lat < 0 {
		latDir = "S"
	}
	if lon < 0 {
		lonDir = "W"
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", math.Abs(lat), latDir, math.Abs(lon), lonDir)
}

// Render builds the location card. Coordinates come from the weather
// document's coordinates block; map_image_base64 carries a static map tile
// injected by the pipeline when one exists on disk.
func (l *LocationCard) Render(data map[string]any) (string, error) {
	location := Truncate(GetString(data, "Unknown", "location"), 35)
	lat := GetFloat(data, 0, "coordinates", "lat")
	lon := GetFloat(data, 0, "coordinates", "lon")
	mapImage := GetString(data, "", "map_image_base64")
	updatedAt := GetString(data, "", "updated_at")

	font := l.FontFamily()
	primary := l.Theme.Color("text", "primary", "#ffffff")
	secondary := l.Theme.Color("text", "secondary", "#8892b0")
	accent := l.Theme.Color("text", "accent", "#64ffda")

	mapMargin := l.Theme.MapValue("margin", 20)
	mapWidth := l.Width - mapMargin*2
	mapHeight := l.Theme.MapValue("height", 350)
	radiusLg := l.Theme.BorderRadius("lg", 8)

	var mapPanel string
	if mapImage != "" {
		mapPanel = fmt.Sprintf(`
  <!-- Map image -->
  <g clip-path="url(#map-clip)">
    <image x="%d" y="70" width="%d" height="%d" preserveAspectRatio="xMidYMid slice"
           xlink:href="data:image/png;base64,%s"/>
  </g>`, mapMargin, mapWidth, mapHeight, mapImage)
	} else {
		mapPanel = fmt.Sprintf(`
  <!-- Map placeholder -->
  <rect x="%[1]d" y="70" width="%[2]d" height="%[3]d" rx="%[4]d" fill="%[5]s"/>
  <text x="%[6]d" y="%[7]d" font-family="%[8]s" font-size="48" text-anchor="middle">🌍</text>
  <text x="%[6]d" y="%[9]d" font-family="%[8]s" font-size="%[10]d" fill="%[11]s" text-anchor="middle">Map unavailable</text>`,
			mapMargin, mapWidth, mapHeight, radiusLg,
			l.Theme.Color("background", "panel", "#1e293b"),
			mapMargin+mapWidth/2, 70+mapHeight/2, font,
			70+mapHeight/2+35, l.Theme.FontSize("sm", 12), secondary)
	}

	content := fmt.Sprintf(`
  <!-- Header: Location title -->
  <g transform="translate(%[1]d, 35)">
    <text font-family="%[2]s" font-size="%[3]d" fill="%[4]s" font-weight="600" filter="url(#glow)">
      📍 My Location
    </text>
  </g>

  <!-- Location name -->
  <g transform="translate(%[1]d, 58)">
    <text font-family="%[2]s" font-size="%[5]d" fill="%[6]s">
      %[7]s
    </text>
  </g>
%[10]s

  <!-- Map border -->
  <rect x="%[1]d" y="70" width="%[8]d" height="%[9]d" rx="%[11]d" fill="none" stroke="%[4]s" stroke-width="%[12]d" stroke-opacity="0.5"/>

  <!-- Coordinates display -->
  <g transform="translate(%[1]d, 445)">
    <text font-family="%[2]s" font-size="%[13]d" fill="%[14]s">
      🌐 %[15]s
    </text>
  </g>`,
		mapMargin, font, l.Theme.FontSize("3xl", 24), accent,
		l.Theme.FontSize("xl", 18), primary, EscapeXML(location),
		mapWidth, mapHeight, mapPanel, radiusLg, l.Theme.StrokeWidth(),
		l.Theme.FontSize("lg", 16), secondary, FormatCoordinates(lat, lon))

	opts := DefsOptions{
		IncludeGlow: true,
		ExtraDefs: fmt.Sprintf(`    <clipPath id="map-clip">
      <rect x="%d" y="70" width="%d" height="%d" rx="%d"/>
    </clipPath>`, mapMargin, mapWidth, mapHeight, radiusLg),
	}
	return l.Compose(opts, "", content, "Updated: "+updatedAt), nil
}
