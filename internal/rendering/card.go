package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/szmyty/profile/internal/theme"
)

// Card carries the shared state every renderer needs: the resolved theme and
// the card's themed dimensions. Renderers embed it and contribute content.
type Card struct {
	Type   string
	Theme  *theme.Theme
	Width  int
	Height int
}

// NewCard builds the base for a card type, resolving its dimensions from the
// theme.
func NewCard(cardType string, th *theme.Theme) Card {
	return Card{
		Type:   cardType,
		Theme:  th,
		Width:  th.CardDimension("widths", cardType, 400),
		Height: th.CardDimension("heights", cardType, 200),
	}
}

// DefsOptions control which gradients and filters the defs block carries.
type DefsOptions struct {
	BackgroundGradient [2]string // zero value uses the theme default
	IncludeGlow        bool
	IncludeShadow      bool
	ExtraDefs          string
}

// SVGOpen builds the opening svg element with namespaces and viewBox.
func (c Card) SVGOpen() string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">`,
		c.Width, c.Height, c.Width, c.Height)
}

// Defs builds the defs block with the background gradient and optional glow
// and shadow filters.
func (c Card) Defs(opts DefsOptions) string {
	gradient := opts.BackgroundGradient
	if gradient == [2]string{} {
		gradient = c.Theme.Gradient("background.default", theme.DefaultGradient)
	}

	var b strings.Builder
	b.WriteString("  <defs>\n")
	fmt.Fprintf(&b, `    <linearGradient id="bg-gradient" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:%s"/>
      <stop offset="100%%" style="stop-color:%s"/>
    </linearGradient>
`, gradient[0], gradient[1])

	if opts.IncludeGlow {
		fmt.Fprintf(&b, `    <filter id="glow" x="-20%%" y="-20%%" width="140%%" height="140%%">
      <feGaussianBlur stdDeviation="%g" result="coloredBlur"/>
      <feMerge>
        <feMergeNode in="coloredBlur"/>
        <feMergeNode in="SourceGraphic"/>
      </feMerge>
    </filter>
`, c.Theme.GlowStdDeviation())
	}

	if opts.IncludeShadow {
		shadow := c.Theme.ShadowSettings()
		fmt.Fprintf(&b, `    <filter id="shadow" x="-20%%" y="-20%%" width="140%%" height="140%%">
      <feDropShadow dx="%g" dy="%g" stdDeviation="%g" flood-opacity="%.2f"/>
    </filter>
`, shadow.DX, shadow.DY, shadow.StdDeviation, shadow.FloodOpacity)
	}

	if opts.ExtraDefs != "" {
		b.WriteString(opts.ExtraDefs)
		b.WriteString("\n")
	}
	b.WriteString("  </defs>")
	return b.String()
}

// Background builds the rounded gradient background with a subtle border.
func (c Card) Background(strokeColor string) string {
	if strokeColor == "" {
		strokeColor = c.Theme.Color("text", "accent", "#64ffda")
	}
	radius := c.Theme.BorderRadius("xl", 12)
	return fmt.Sprintf(`
  <!-- Background -->
  <rect width="%d" height="%d" rx="%d" fill="url(#bg-gradient)"/>
  <rect width="%d" height="%d" rx="%d" fill="none" stroke="%s" stroke-width="%d" stroke-opacity="%.2f"/>`,
		c.Width, c.Height, radius,
		c.Width, c.Height, radius,
		strokeColor, c.Theme.StrokeWidth(), c.Theme.StrokeOpacity())
}

// DecorativeAccent builds the vertical accent bar near the right edge.
func (c Card) DecorativeAccent() string {
	color := c.Theme.Color("text", "accent", "#64ffda")
	return fmt.Sprintf(`
  <!-- Decorative accent -->
  <rect x="%d" y="15" width="4" height="%d" rx="2" fill="%s" fill-opacity="%.2f"/>`,
		c.Width-20, c.Height-30, color, c.Theme.StrokeOpacity())
}

// Footer builds a muted footer line, typically a timestamp.
func (c Card) Footer(text string) string {
	return fmt.Sprintf(`
  <!-- Footer -->
  <g transform="translate(20, %d)">
    <text font-family="%s" font-size="%d" fill="%s">
      %s
    </text>
  </g>`,
		c.Height-25,
		c.Theme.Typography("font_family", "'Segoe UI', Arial, sans-serif"),
		c.Theme.FontSize("xs", 10),
		c.Theme.Color("text", "muted", "#4a5568"),
		EscapeXML(text))
}

// Compose assembles a full SVG document from the frame pieces and card
// content.
func (c Card) Compose(opts DefsOptions, strokeColor, content, footer string) string {
	parts := []string{
		c.SVGOpen(),
		c.Defs(opts),
		c.Background(strokeColor),
		content,
		c.DecorativeAccent(),
	}
	if footer != "" {
		parts = append(parts, c.Footer(footer))
	}
	parts = append(parts, "</svg>")
	return strings.Join(parts, "\n")
}

// WriteSVG writes content to path, creating parent directories as needed.
func WriteSVG(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

// FontFamily is shorthand for the theme's body font.
func (c Card) FontFamily() string {
	return c.Theme.Typography("font_family", "'Segoe UI', Arial, sans-serif")
}
