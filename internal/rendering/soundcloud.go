package rendering

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/szmyty/profile/internal/theme"
)

// SoundCloudCard renders the latest-track card with embedded artwork and a
// clickable overlay for GitHub markdown.
type SoundCloudCard struct {
	Card
}

func NewSoundCloudCard(th *theme.Theme) *SoundCloudCard {
	return &SoundCloudCard{Card: NewCard("soundcloud", th)}
}

// ArtworkDataURI reads an artwork file and returns it as a base64 data URI.
// Missing or unreadable artwork yields an empty string; the card renders
// without it.
func ArtworkDataURI(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Render builds the track card from a validated track document. The optional
// artwork_data_uri field carries a pre-encoded image.
func (s *SoundCloudCard) Render(data map[string]any) (string, error) {
	title := Truncate(GetString(data, "", "title"), 35)
	artist := GetString(data, "", "artist")
	genre := GetString(data, "", "genre")
	duration := FormatDurationMS(int64(GetFloat(data, 0, "duration_ms")))
	plays := FormatLargeNumber(int64(GetFloat(data, 0, "playback_count")))
	createdAt := GetString(data, "", "created_at")
	permalink := GetString(data, "", "permalink_url")
	artwork := GetString(data, "", "artwork_data_uri")

	date := createdAt
	if t, err := ParseTimestamp(createdAt); err == nil {
		date = t.Format("Jan 2, 2006")
	}

	brand := "#ff5500"
	font := s.FontFamily()
	primary := s.Theme.Color("text", "primary", "#ffffff")
	secondary := s.Theme.Color("text", "secondary", "#8892b0")
	accent := s.Theme.Color("text", "accent", "#64ffda")
	muted := s.Theme.Color("text", "muted", "#4a5568")

	artworkSVG := ""
	if artwork != "" {
		artworkSVG = fmt.Sprintf(`
  <!-- Artwork -->
  <g clip-path="url(#artwork-clip)">
    <image x="10" y="10" width="100" height="100" preserveAspectRatio="xMidYMid slice" href="%s"/>
  </g>
  <rect x="10" y="10" width="100" height="100" rx="8" fill="none" stroke="%s" stroke-width="2" stroke-opacity="0.5"/>`,
			artwork, brand)
	}

	content := fmt.Sprintf(`%[1]s

  <!-- SoundCloud Logo/Icon -->
  <g transform="translate(%[2]d, 10)">
    <circle cx="10" cy="10" r="10" fill="%[3]s"/>
    <text x="10" y="14" font-family="Arial, sans-serif" font-size="10" fill="white" text-anchor="middle" font-weight="bold">SC</text>
  </g>

  <!-- Track Info -->
  <g transform="translate(125, 25)">
    <text font-family="%[4]s" font-size="16" font-weight="bold" fill="%[5]s">
      %[6]s
    </text>
    <text y="22" font-family="%[4]s" font-size="12" fill="%[3]s">
      %[7]s
    </text>
    <text y="42" font-family="%[4]s" font-size="11" fill="%[8]s">
      <tspan fill="%[9]s">%[10]s</tspan>
      <tspan fill="%[11]s"> · </tspan>
      <tspan>%[12]s</tspan>
    </text>
    <g transform="translate(0, 58)">
      <polygon points="0,0 0,10 8,5" fill="%[8]s"/>
      <text x="12" y="9" font-family="%[4]s" font-size="10" fill="%[8]s">%[13]s plays</text>
      <text x="80" y="9" font-family="%[4]s" font-size="10" fill="%[8]s">Released %[14]s</text>
    </g>
  </g>

  <!-- Clickable overlay -->
  <a href="%[15]s" target="_blank">
    <rect width="%[16]d" height="%[17]d" fill="transparent" style="cursor: pointer;"/>
  </a>`,
		artworkSVG, s.Width-30, brand, font, primary, EscapeXML(title),
		EscapeXML(artist), secondary, accent, EscapeXML(genre), muted,
		duration, plays, EscapeXML(date), EscapeXML(permalink),
		s.Width, s.Height)

	opts := DefsOptions{
		IncludeShadow: true,
		ExtraDefs: `    <clipPath id="artwork-clip">
      <rect x="10" y="10" width="100" height="100" rx="8"/>
    </clipPath>`,
	}
	return s.Compose(opts, brand, content, ""), nil
}
