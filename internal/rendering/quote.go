package rendering

import (
	"fmt"
	"strings"

	"github.com/szmyty/profile/internal/theme"
)

// QuoteCard renders the quote of the day with a gradient matched to the
// quote's emotional tone. Analysis data is optional; without it the card
// falls back to a neutral palette.
type QuoteCard struct {
	Card
}

func NewQuoteCard(th *theme.Theme) *QuoteCard {
	return &QuoteCard{Card: NewCard("quote", th)}
}

// quoteMaxLineChars is where quote text wraps, tuned to the card width.
const quoteMaxLineChars = 45

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (q *QuoteCard) paletteGradient(analysis map[string]any) [2]string {
	profile := GetString(analysis, "neutral", "color_profile")
	fallback := q.Theme.Gradient("background.default", theme.DefaultGradient)
	return q.Theme.Gradient("emotion."+profile, fallback)
}

// stylisticEffects adds light decoration driven by analysis keywords.
func (q *QuoteCard) stylisticEffects(analysis map[string]any) string {
	keywords := map[string]bool{}
	for _, kw := range GetSlice(analysis, "style_keywords") {
		if s, ok := kw.(string); ok {
			keywords[s] = true
		}
	}
	if len(keywords) == 0 {
		return ""
	}

	accent := q.Theme.Color("text", "accent", "#64ffda")
	muted := q.Theme.Color("text", "muted", "#4a5568")
	var effects []string

	if keywords["sunrise"] || keywords["sunset"] || keywords["sky"] {
		effects = append(effects, fmt.Sprintf(`
    <rect x="0" y="20" width="%d" height="2" fill="%s" opacity="0.3"/>
    <rect x="0" y="25" width="%d" height="1" fill="%s" opacity="0.2"/>`,
			q.Width, accent, q.Width, accent))
	}

	if keywords["storm"] || keywords["rain"] {
		for i, x := range []int{100, 250, 400} {
			y := 30 + i*40
			effects = append(effects, fmt.Sprintf(`
    <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1" opacity="0.15"/>`,
				x, y, x+30, y+60, muted))
		}
	}

	if keywords["cosmic"] || keywords["universe"] || keywords["starfield"] {
		positions := [][2]float64{
			{float64(q.Width) * 0.1, float64(q.Height) * 0.2},
			{float64(q.Width) * 0.3, float64(q.Height) * 0.35},
			{float64(q.Width) * 0.7, float64(q.Height) * 0.25},
			{float64(q.Width) * 0.85, float64(q.Height) * 0.5},
			{float64(q.Width) * 0.55, float64(q.Height) * 0.7},
		}
		for _, p := range positions {
			effects = append(effects, fmt.Sprintf(`
    <circle cx="%g" cy="%g" r="1.5" fill="%s" opacity="0.4"/>`, p[0], p[1], accent))
		}
	}

	if keywords["gentle"] || keywords["soft"] || keywords["calm"] {
		effects = append(effects, fmt.Sprintf(`
    <rect x="0" y="0" width="%d" height="%d" fill="black" opacity="0.05" rx="%d"/>`,
			q.Width, q.Height, q.Theme.BorderRadius("xl", 12)))
	}

	return strings.Join(effects, "\n")
}

// Render builds the quote card from the quote document and its optional
// analysis document.
func (q *QuoteCard) Render(data map[string]any) (string, error) {
	quote := GetString(data, "Quote not available", "quote")
	if quote == "" {
		quote = "Quote not available"
	}
	author := GetString(data, "", "author")
	analysis := GetMap(data, "analysis")

	font := q.FontFamily()
	quoteSize := q.Theme.FontSize("xl", 18)
	primary := q.Theme.Color("text", "primary", "#ffffff")
	secondary := q.Theme.Color("text", "secondary", "#8892b0")
	accent := q.Theme.Color("text", "accent", "#64ffda")

	lines := WrapText(quote, quoteMaxLineChars)
	lineHeight := quoteSize + 6
	yStart := 50

	var b strings.Builder
	b.WriteString("\n  <!-- Quote marks -->\n")
	fmt.Fprintf(&b, `    <text x="15" y="35" font-family="%s" font-size="%d" fill="%s" opacity="0.3">"</text>`,
		font, q.Theme.FontSize("6xl", 48), accent)

	b.WriteString("\n  <!-- Quote text -->\n  <g id=\"quote-content\">\n")
	for i, line := range lines {
		fmt.Fprintf(&b, `    <text x="30" y="%d" font-family="%s" font-size="%d" fill="%s" font-style="italic">%s</text>`+"\n",
			yStart+i*lineHeight, font, quoteSize, primary, EscapeXML(line))
	}
	if author != "" {
		authorY := yStart + len(lines)*lineHeight + 20
		fmt.Fprintf(&b, `    <text x="30" y="%d" font-family="%s" font-size="%d" fill="%s">— %s</text>`+"\n",
			authorY, font, q.Theme.FontSize("md", 14), secondary, EscapeXML(author))
	}
	b.WriteString("  </g>\n")

	if effects := q.stylisticEffects(analysis); effects != "" {
		b.WriteString(effects)
	}

	sentiment := GetString(analysis, "", "sentiment")
	if sentiment != "" {
		badge := titleCase(sentiment)
		if quoteTheme := GetString(analysis, "", "theme"); quoteTheme != "" {
			badge += " • " + titleCase(quoteTheme)
		}
		fmt.Fprintf(&b, `
  <!-- Sentiment badge -->
  <text x="30" y="%d" font-family="%s" font-size="%d" fill="%s" opacity="0.7">%s</text>`,
			q.Height-15, font, q.Theme.FontSize("xs", 10), secondary, EscapeXML(badge))
	}

	opts := DefsOptions{
		BackgroundGradient: q.paletteGradient(analysis),
		IncludeGlow:        true,
	}
	return q.Compose(opts, "", b.String(), ""), nil
}
