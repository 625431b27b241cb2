package rendering

import (
	"fmt"
	"strings"
	"time"

	"github.com/szmyty/profile/internal/metrics"
	"github.com/szmyty/profile/internal/theme"
)

// StatusPage renders the workflow health overview built from recorded
// workflow metrics. Unlike the other cards its height grows with the
// number of workflows.
type StatusPage struct {
	Theme *theme.Theme
	Now   time.Time
}

const (
	statusPageWidth  = 800
	statusRowHeight  = 70
	statusHeaderArea = 60
	statusMargin     = 20
)

func statusColor(status string) string {
	switch status {
	case "success":
		return "#4ade80"
	case "warning":
		return "#fbbf24"
	case "error":
		return "#ef4444"
	default:
		return "#6b7280"
	}
}

// workflowDisplayName turns "oura-mood" into "Oura Mood".
func workflowDisplayName(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "-", " "), " ")
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

func statusIndicator(x, y int, status string) string {
	return fmt.Sprintf(`<circle cx="%d" cy="%d" r="8" fill="%s">
    <animate attributeName="opacity" values="1;0.4;1" dur="2s" repeatCount="indefinite"/>
  </circle>`, x, y, statusColor(status))
}

func (s StatusPage) columnHeaders(width int) string {
	var b strings.Builder
	y := statusHeaderArea + 15
	style := fmt.Sprintf(`font-family="%s" font-size="%d" fill="%s" font-weight="bold"`,
		s.Theme.Typography("font_family", "'Segoe UI', Arial, sans-serif"),
		s.Theme.FontSize("xs", 10), s.Theme.Color("text", "muted", "#4a5568"))
	fmt.Fprintf(&b, `  <text x="45" y="%d" %s>WORKFLOW</text>`+"\n", y, style)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" %s text-anchor="end">LAST SUCCESS</text>`+"\n", width-400, y, style)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" %s text-anchor="end">LAST FAILURE</text>`+"\n", width-240, y, style)
	fmt.Fprintf(&b, `  <text x="%d" y="%d" %s text-anchor="end">SUCCESS RATE</text>`+"\n", width-90, y, style)
	return b.String()
}

func (s StatusPage) workflowRow(m metrics.WorkflowMetrics, y, width int) string {
	var b strings.Builder
	font := s.Theme.Typography("font_family", "'Segoe UI', Arial, sans-serif")
	textColor := s.Theme.Color("text", "primary", "#e6e6e6")
	muted := s.Theme.Color("text", "muted", "#4a5568")

	b.WriteString("  " + statusIndicator(30, y, m.Status()) + "\n")
	fmt.Fprintf(&b, `  <text x="45" y="%d" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
		y+5, font, s.Theme.FontSize("base", 14), textColor, EscapeXML(workflowDisplayName(m.WorkflowName)))

	lastSuccess := "Never"
	if m.LastSuccess != nil {
		lastSuccess = FormatTimeSince(*m.LastSuccess, s.Now)
	}
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="end">%s</text>`+"\n",
		width-400, y+5, font, s.Theme.FontSize("sm", 12), muted, EscapeXML(lastSuccess))

	lastFailure := "Never"
	failureColor := muted
	if m.LastFailure != nil {
		lastFailure = FormatTimeSince(*m.LastFailure, s.Now)
		if m.ConsecutiveFailures >= 3 {
			lastFailure = fmt.Sprintf("%s (%d consecutive)", lastFailure, m.ConsecutiveFailures)
			failureColor = "#ef4444"
		}
	}
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="end">%s</text>`+"\n",
		width-240, y+5, font, s.Theme.FontSize("sm", 12), failureColor, EscapeXML(lastFailure))

	rate := "No runs yet"
	if m.TotalRuns > 0 {
		rate = fmt.Sprintf("%.0f%% (%d runs)", m.SuccessRate(), m.TotalRuns)
	}
	fmt.Fprintf(&b, `  <text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="end">%s</text>`+"\n",
		width-90, y+5, font, s.Theme.FontSize("sm", 12), muted, EscapeXML(rate))

	return b.String()
}

func (s StatusPage) emptyState() string {
	card := Card{Type: "status-page", Theme: s.Theme, Width: 600, Height: 200}
	content := fmt.Sprintf(`  <text x="%d" y="100" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">No workflow metrics available yet</text>`,
		card.Width/2, card.FontFamily(), s.Theme.FontSize("base", 14), s.Theme.Color("text", "muted", "#4a5568"))
	return card.Compose(DefsOptions{}, s.Theme.Color("text", "accent", "#64ffda"), content, "")
}

// Render builds the status page SVG from all recorded workflow metrics.
func (s StatusPage) Render(all []metrics.WorkflowMetrics) string {
	if len(all) == 0 {
		return s.emptyState()
	}

	height := statusHeaderArea + len(all)*statusRowHeight + 2*statusMargin
	card := Card{Type: "status-page", Theme: s.Theme, Width: statusPageWidth, Height: height}

	var content strings.Builder
	font := card.FontFamily()

	fmt.Fprintf(&content, `  <text x="%d" y="35" font-family="%s" font-size="%d" fill="%s" font-weight="bold" text-anchor="middle">System Status</text>`+"\n",
		card.Width/2, font, s.Theme.FontSize("2xl", 22), s.Theme.Color("text", "primary", "#e6e6e6"))
	fmt.Fprintf(&content, `  <text x="%d" y="52" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">Last updated: %s</text>`+"\n",
		card.Width/2, font, s.Theme.FontSize("xs", 10), s.Theme.Color("text", "muted", "#4a5568"),
		EscapeXML(s.Now.Format("Jan 2, 2006 3:04 PM")))

	content.WriteString(s.columnHeaders(card.Width))

	for i, m := range all {
		y := statusHeaderArea + 35 + i*statusRowHeight
		content.WriteString(s.workflowRow(m, y, card.Width))
		if i < len(all)-1 {
			fmt.Fprintf(&content, `  <line x1="20" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-opacity="0.2"/>`+"\n",
				y+statusRowHeight/2, card.Width-20, y+statusRowHeight/2, s.Theme.Color("text", "muted", "#4a5568"))
		}
	}

	return card.Compose(DefsOptions{}, s.Theme.Color("text", "accent", "#64ffda"),
		content.String(), "Updates every 30 minutes")
}
