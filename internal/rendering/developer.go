package rendering

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/szmyty/profile/internal/theme"
)

// DeveloperCard renders the developer stats dashboard: metric badges, a
// 30-day commit sparkline, a day-by-hour activity heatmap, top repositories,
// and the language distribution bar.
type DeveloperCard struct {
	Card
	Now time.Time
}

func NewDeveloperCard(th *theme.Theme) *DeveloperCard {
	return &DeveloperCard{Card: NewCard("developer_dashboard", th), Now: time.Now()}
}

func (d *DeveloperCard) metricBadge(label, value, icon string, x int) string {
	return fmt.Sprintf(`
    <g transform="translate(%d, 0)">
      <text font-family="%s" font-size="18" fill="%s" font-weight="bold">
        %s %s
      </text>
      <text y="16" font-family="%s" font-size="10" fill="%s">
        %s
      </text>
    </g>`,
		x, d.FontFamily(), d.Theme.Color("text", "primary", "#ffffff"),
		icon, EscapeXML(value),
		d.FontFamily(), d.Theme.Color("text", "secondary", "#8892b0"),
		EscapeXML(label))
}

// activityHeatmap renders the 7x24 commit grid. Opacity scales with count;
// empty cells stay faintly visible so the grid shape reads.
func (d *DeveloperCard) activityHeatmap(grid [][]int, x, y, width, height int) string {
	if len(grid) != 7 {
		return ""
	}

	maxCommits := 1
	for _, row := range grid {
		for _, count := range row {
			if count > maxCommits {
				maxCommits = count
			}
		}
	}

	cellW := float64(width) / 24
	cellH := float64(height) / 7
	accent := d.Theme.Color("accent", "commits", "#f6ad55")

	var cells []string
	for dayIdx, row := range grid {
		for hourIdx, count := range row {
			opacity := 0.1
			if count > 0 {
				opacity = 0.2 + float64(count)/float64(maxCommits)*0.8
			}
			cells = append(cells, fmt.Sprintf(
				`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="1" fill="%s" fill-opacity="%.2f"/>`,
				float64(x)+float64(hourIdx)*cellW, float64(y)+float64(dayIdx)*cellH,
				cellW-1, cellH-1, accent, opacity))
		}
	}
	return strings.Join(cells, "\n")
}

func (d *DeveloperCard) sparklineChart(values []*float64, x, y, width, height int) string {
	path := SparklinePath(values, width, height)
	return fmt.Sprintf(`
    <g transform="translate(%d, %d)">
      <rect width="%d" height="%d" rx="4" fill="%s"/>
      <path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"/>
    </g>`,
		x, y, width, height,
		d.Theme.Color("background", "panel", "#2d3748"),
		path, d.Theme.Color("accent", "commits", "#f6ad55"))
}

type repoBar struct {
	Name  string
	Value int64
}

func (d *DeveloperCard) repoBars(repos []repoBar, x, y, width int) string {
	if len(repos) == 0 {
		return ""
	}
	if len(repos) > 5 {
		repos = repos[:5]
	}

	var maxValue int64 = 1
	for _, r := range repos {
		if r.Value > maxValue {
			maxValue = r.Value
		}
	}

	labelWidth := d.Theme.ChartValue("label_width", 100)
	barWidth := width - labelWidth - 40
	barHeight, barGap := 14, 4
	color := d.Theme.Color("accent", "repos", "#63b3ed")

	var b strings.Builder
	for idx, repo := range repos {
		barLen := float64(repo.Value) / float64(maxValue) * float64(barWidth)
		by := y + idx*(barHeight+barGap)
		fmt.Fprintf(&b, `
        <g transform="translate(%d, %d)">
          <text font-family="%s" font-size="10" fill="%s" dominant-baseline="middle" y="%d">%s</text>
          <rect x="%d" y="0" width="%.1f" height="%d" rx="2" fill="%s"/>
          <text x="%.1f" y="%d" font-family="%s" font-size="9" fill="%s" dominant-baseline="middle">%s</text>
        </g>`,
			x, by,
			d.FontFamily(), d.Theme.Color("text", "secondary", "#8892b0"), barHeight/2,
			EscapeXML(Truncate(repo.Name, 12)),
			labelWidth, barLen, barHeight, color,
			float64(labelWidth)+barLen+5, barHeight/2, d.FontFamily(),
			d.Theme.Color("text", "secondary", "#8892b0"),
			FormatLargeNumber(repo.Value))
	}
	return b.String()
}

// languageBars renders the stacked distribution bar plus its legend, capped
// at the six largest languages.
func (d *DeveloperCard) languageBars(languages map[string]float64, x, y, width int) string {
	if len(languages) == 0 {
		return ""
	}

	type langPct struct {
		Name string
		Pct  float64
	}
	sorted := make([]langPct, 0, len(languages))
	for name, pct := range languages {
		sorted = append(sorted, langPct{name, pct})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Pct != sorted[j].Pct {
			return sorted[i].Pct > sorted[j].Pct
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > 6 {
		sorted = sorted[:6]
	}

	barHeight := d.Theme.ChartValue("bar_height", 16)
	currentX := float64(x)
	var bars, legends []string

	for idx, lang := range sorted {
		barWidth := lang.Pct / 100 * float64(width)
		color := d.Theme.LanguageColor(lang.Name, "#8892b0")
		if barWidth > 1 {
			bars = append(bars, fmt.Sprintf(
				`<rect x="%.1f" y="%d" width="%.1f" height="%d" fill="%s"/>`,
				currentX, y, barWidth, barHeight, color))
			currentX += barWidth
		}
		legendX := x + (idx%3)*(width/3)
		legendY := y + barHeight + 10 + (idx/3)*14
		legends = append(legends, fmt.Sprintf(`
        <g transform="translate(%d, %d)">
          <rect width="8" height="8" rx="2" fill="%s"/>
          <text x="12" font-family="%s" font-size="9" fill="%s" dominant-baseline="middle" y="4">%s %.1f%%</text>
        </g>`,
			legendX, legendY, color, d.FontFamily(),
			d.Theme.Color("text", "secondary", "#8892b0"),
			EscapeXML(lang.Name), lang.Pct))
	}

	return fmt.Sprintf(`
    <g clip-path="url(#lang-clip)">
      %s
    </g>
    <defs>
      <clipPath id="lang-clip">
        <rect x="%d" y="%d" width="%d" height="%d" rx="4"/>
      </clipPath>
    </defs>
    %s`,
		strings.Join(bars, "\n"), x, y, width, barHeight, strings.Join(legends, "\n"))
}

// stalenessBadge shows the data age in the top-right corner, with a warning
// marker once the feed goes stale.
func (c Card) stalenessBadge(updatedAt string, now time.Time) string {
	if updatedAt == "" {
		return ""
	}
	color := c.Theme.Color("text", "muted", "#4a5568")
	icon := ""
	if IsDataStale(updatedAt, now) {
		color = c.Theme.Color("accent", "issues", "#fc8181")
		icon = "⚠️ "
	}
	return fmt.Sprintf(`
  <!-- Staleness Badge -->
  <g transform="translate(%d, 10)">
    <text x="0" y="12" font-family="%s" font-size="%d" fill="%s" text-anchor="end">
      %sUpdated: %s
    </text>
  </g>`,
		c.Width-10, c.FontFamily(), c.Theme.FontSize("xs", 10), color,
		icon, EscapeXML(FormatTimeSince(updatedAt, now)))
}

// Render builds the developer dashboard SVG from a validated stats document.
func (d *DeveloperCard) Render(data map[string]any) (string, error) {
	name := GetString(data, GetString(data, "Developer", "username"), "name")
	repos := GetInt(data, 0, "repos")
	stars := int64(GetInt(data, 0, "stars"))
	followers := int64(GetInt(data, 0, "followers"))
	prsOpened := GetInt(data, 0, "prs", "opened")
	prsMerged := GetInt(data, 0, "prs", "merged")
	issuesOpened := GetInt(data, 0, "issues", "opened")

	var daily []*float64
	var totalCommits int64
	for _, v := range GetSlice(data, "commit_activity", "last_30_days") {
		if f, ok := v.(float64); ok {
			f := f
			daily = append(daily, &f)
			totalCommits += int64(f)
		}
	}
	if t := GetFloatPtr(data, "commit_activity", "total_30_days"); t != nil {
		totalCommits = int64(*t)
	}

	var grid [][]int
	for _, rawRow := range GetSlice(data, "commit_activity", "activity_grid") {
		row, ok := rawRow.([]any)
		if !ok {
			continue
		}
		hours := make([]int, 0, len(row))
		for _, cell := range row {
			if f, ok := cell.(float64); ok {
				hours = append(hours, int(f))
			}
		}
		grid = append(grid, hours)
	}

	languages := map[string]float64{}
	for lang, pct := range GetMap(data, "languages") {
		if f, ok := pct.(float64); ok {
			languages[lang] = f
		}
	}

	var topRepos []repoBar
	for _, raw := range GetSlice(data, "top_repositories") {
		repo, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		value := GetFloat(repo, GetFloat(repo, 0, "commits"), "value")
		topRepos = append(topRepos, repoBar{
			Name:  GetString(repo, "", "name"),
			Value: int64(value),
		})
	}

	accent := d.Theme.Color("text", "accent", "#64ffda")
	secondary := d.Theme.Color("text", "secondary", "#8892b0")
	font := d.FontFamily()

	var b strings.Builder
	fmt.Fprintf(&b, `
  <!-- Header -->
  <g transform="translate(25, 25)">
    <text font-family="%s" font-size="16" fill="%s" font-weight="600">
      💻 %s's Developer Dashboard
    </text>
  </g>

  <!-- Metrics Row -->
  <g transform="translate(25, 50)">%s%s%s%s%s%s
  </g>`,
		font, accent, EscapeXML(name),
		d.metricBadge("Repos", strconv.Itoa(repos), "📦", 0),
		d.metricBadge("Stars", FormatLargeNumber(stars), "⭐", 120),
		d.metricBadge("PRs", fmt.Sprintf("%d/%d", prsOpened, prsMerged), "🔀", 240),
		d.metricBadge("Issues", strconv.Itoa(issuesOpened), "🐛", 360),
		d.metricBadge("Followers", FormatLargeNumber(followers), "👥", 480),
		d.metricBadge("Commits", FormatLargeNumber(totalCommits), "📊", 600))

	fmt.Fprintf(&b, `

  <!-- Section Labels -->
  <g transform="translate(25, 95)">
    <text font-family="%[1]s" font-size="11" fill="%[2]s" font-weight="500">
      📈 Commits (Last 30 Days)
    </text>
  </g>
  <g transform="translate(400, 95)">
    <text font-family="%[1]s" font-size="11" fill="%[2]s" font-weight="500">
      🕐 Activity Pattern (Day × Hour)
    </text>
  </g>
`, font, secondary)

	b.WriteString(d.sparklineChart(daily, 25, 105, 350, 50))
	b.WriteString("\n")
	b.WriteString(d.activityHeatmap(grid, 400, 100, 375, 50))

	fmt.Fprintf(&b, `

  <g transform="translate(25, 175)">
    <text font-family="%[1]s" font-size="11" fill="%[2]s" font-weight="500">
      🏆 Top Repositories
    </text>
  </g>
  <g transform="translate(400, 175)">
    <text font-family="%[1]s" font-size="11" fill="%[2]s" font-weight="500">
      💬 Languages
    </text>
  </g>
`, font, secondary)

	b.WriteString(d.repoBars(topRepos, 25, 185, 350))
	b.WriteString(d.languageBars(languages, 400, 185, 375))
	b.WriteString(d.stalenessBadge(GetString(data, "", "updated_at"), d.Now))

	opts := DefsOptions{
		BackgroundGradient: d.Theme.Gradient("developer", theme.DefaultGradient),
		IncludeGlow:        true,
	}
	return d.Compose(opts, "", b.String(), ""), nil
}
