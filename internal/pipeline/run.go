package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/szmyty/profile/internal/clients"
	"github.com/szmyty/profile/internal/config"
	"github.com/szmyty/profile/internal/metrics"
	"github.com/szmyty/profile/internal/mood"
	"github.com/szmyty/profile/internal/quality"
	"github.com/szmyty/profile/internal/rendering"
	"github.com/szmyty/profile/internal/schemas"
	"github.com/szmyty/profile/internal/theme"
)

// Runner drives the full build-profile pipeline: fetch every data source,
// compute the mood document, then regenerate every card.
type Runner struct {
	cfg      config.Config
	theme    *theme.Theme
	gen      *Generator
	recorder *metrics.Recorder
	client   *clients.Client
	checker  *quality.Checker
	log      *zap.Logger
}

// requiredFields names the top-level fields a fetched document must carry
// for its quality check to pass.
var requiredFields = map[string][]string{
	"weather":         {"location", "current"},
	"developer-stats": {"username"},
	"oura-health":     {"sleep"},
	"soundcloud":      {"title"},
	"quote":           {"quote"},
}

// NewRunner wires the pipeline from a merged configuration. The theme is
// loaded once and shared by every renderer.
func NewRunner(cfg config.Config, log *zap.Logger) (*Runner, error) {
	if log == nil {
		log = zap.NewNop()
	}
	th, err := theme.Load(cfg.ThemePath, cfg.ThemeVariant)
	if err != nil {
		return nil, err
	}
	registry := schemas.NewRegistry(cfg.SchemaDir, log)
	return &Runner{
		cfg:      cfg,
		theme:    th,
		gen:      NewGenerator(registry, log),
		recorder: metrics.NewRecorder(cfg.MetricsDir, log),
		client:   clients.New(cfg.RequestTimeout, log),
		checker:  quality.NewChecker(log),
		log:      log.Named("pipeline"),
	}, nil
}

// Recorder exposes the workflow metrics store, used by the status page and
// the record-metrics command.
func (r *Runner) Recorder() *metrics.Recorder {
	return r.recorder
}

func (r *Runner) dataPath(name string) string {
	return filepath.Join(r.cfg.DataDir, name)
}

func (r *Runner) outputPath(name string) string {
	return filepath.Join(r.cfg.OutputDir, name)
}

// recordFetch times a fetch, saves its document on success, and records the
// outcome in the workflow metrics store. Fetch failures are recorded but not
// returned; a stale data file is still renderable.
func (r *Runner) recordFetch(workflow, dataFile string, fetch func() (map[string]any, error)) {
	start := time.Now()
	doc, err := fetch()
	if err == nil {
		report := r.checker.Check(doc, requiredFields[workflow], nil, workflow)
		r.checker.LogSummary(report, workflow)
		err = clients.SaveJSON(r.dataPath(dataFile), doc)
	}
	elapsed := time.Since(start).Seconds()

	opts := metrics.RunOptions{
		RunTimeSeconds: &elapsed,
		APICalls:       map[string]int{workflow: 1},
	}
	if err != nil {
		opts.ErrorMessage = err.Error()
		r.log.Warn("fetch failed, keeping previous data",
			zap.String("workflow", workflow), zap.Error(err))
	}
	if _, recErr := r.recorder.RecordRun(workflow, err == nil, opts); recErr != nil {
		r.log.Warn("failed to record workflow metrics",
			zap.String("workflow", workflow), zap.Error(recErr))
	}
}

// FetchAll pulls every configured data source concurrently. Sources without
// configuration (no GitHub user, no Oura token) are skipped with a notice.
func (r *Runner) FetchAll(ctx context.Context) {
	var eg errgroup.Group

	if r.cfg.WeatherLatitude != 0 || r.cfg.WeatherLongitude != 0 {
		eg.Go(func() error {
			r.recordFetch("weather", "weather.json", func() (map[string]any, error) {
				return r.client.FetchWeather(ctx, r.cfg.WeatherLatitude, r.cfg.WeatherLongitude, r.cfg.WeatherLocation)
			})
			return nil
		})
	} else {
		r.log.Info("weather fetch skipped, no coordinates configured")
	}

	if r.cfg.GitHubUser != "" {
		eg.Go(func() error {
			gh := clients.NewGitHubClient(os.Getenv("GITHUB_TOKEN"), r.log)
			r.recordFetch("developer-stats", "developer.json", func() (map[string]any, error) {
				return gh.FetchDeveloperStats(ctx, r.cfg.GitHubUser)
			})
			return nil
		})
	} else {
		r.log.Info("developer stats fetch skipped, no GitHub user configured")
	}

	if token := os.Getenv("OURA_PAT"); token != "" {
		eg.Go(func() error {
			oura := clients.NewOuraClient(r.client, token)
			r.recordFetch("oura-health", "health.json", func() (map[string]any, error) {
				return oura.FetchHealthSnapshot(ctx)
			})
			return nil
		})
	} else {
		r.log.Info("oura fetch skipped, OURA_PAT not set")
	}

	if r.cfg.SoundCloudURL != "" {
		eg.Go(func() error {
			sc := clients.NewSoundCloudClient(r.client)
			r.recordFetch("soundcloud", "soundcloud.json", func() (map[string]any, error) {
				return sc.FetchTrack(ctx, r.cfg.SoundCloudURL)
			})
			return nil
		})
	} else {
		r.log.Info("soundcloud fetch skipped, no track URL configured")
	}

	eg.Go(func() error {
		r.recordFetch("quote", "quote.json", func() (map[string]any, error) {
			return r.client.FetchQuote(ctx)
		})
		return nil
	})

	eg.Wait()
}

// FetchOne fetches a single named source, returning an error for sources
// missing their configuration.
func (r *Runner) FetchOne(ctx context.Context, source string) error {
	switch source {
	case "weather":
		if r.cfg.WeatherLatitude == 0 && r.cfg.WeatherLongitude == 0 {
			return fmt.Errorf("weather coordinates not configured")
		}
		r.recordFetch("weather", "weather.json", func() (map[string]any, error) {
			return r.client.FetchWeather(ctx, r.cfg.WeatherLatitude, r.cfg.WeatherLongitude, r.cfg.WeatherLocation)
		})
	case "developer":
		if r.cfg.GitHubUser == "" {
			return fmt.Errorf("github_user not configured")
		}
		gh := clients.NewGitHubClient(os.Getenv("GITHUB_TOKEN"), r.log)
		r.recordFetch("developer-stats", "developer.json", func() (map[string]any, error) {
			return gh.FetchDeveloperStats(ctx, r.cfg.GitHubUser)
		})
	case "oura":
		token := os.Getenv("OURA_PAT")
		if token == "" {
			return fmt.Errorf("OURA_PAT environment variable is required")
		}
		oura := clients.NewOuraClient(r.client, token)
		r.recordFetch("oura-health", "health.json", func() (map[string]any, error) {
			return oura.FetchHealthSnapshot(ctx)
		})
	case "soundcloud":
		if r.cfg.SoundCloudURL == "" {
			return fmt.Errorf("soundcloud_url not configured")
		}
		sc := clients.NewSoundCloudClient(r.client)
		r.recordFetch("soundcloud", "soundcloud.json", func() (map[string]any, error) {
			return sc.FetchTrack(ctx, r.cfg.SoundCloudURL)
		})
	case "quote":
		r.recordFetch("quote", "quote.json", func() (map[string]any, error) {
			return r.client.FetchQuote(ctx)
		})
	default:
		return fmt.Errorf("unknown source %q (expected weather, developer, oura, soundcloud, or quote)", source)
	}
	return nil
}

// ComputeMood derives the mood document from the latest health snapshot and
// writes it next to the other data files.
func (r *Runner) ComputeMood(now time.Time) error {
	snapshot, err := LoadInput(r.dataPath("health.json"))
	if err != nil {
		return err
	}
	result := mood.Compute(clients.MoodMetricsFromSnapshot(snapshot), now)
	if err := clients.SaveJSON(r.dataPath("mood.json"), result); err != nil {
		return err
	}
	r.log.Info("computed mood", zap.String("mood", result.MoodName),
		zap.Float64("score", result.MoodScore))
	return nil
}

// cardJob binds a card type to its input file, schema, and renderer.
type cardJob struct {
	cardType string
	dataFile string
	schema   string
	render   RenderFunc
}

func (r *Runner) cardJobs() []cardJob {
	return []cardJob{
		{"weather", "weather.json", "weather", rendering.NewWeatherCard(r.theme).Render},
		{"developer", "developer.json", "developer-stats", rendering.NewDeveloperCard(r.theme).Render},
		{"health", "health.json", "health-snapshot", rendering.NewHealthCard(r.theme).Render},
		{"mood", "mood.json", "mood", rendering.NewMoodCard(r.theme).Render},
		{"soundcloud", "soundcloud.json", "soundcloud-track", rendering.NewSoundCloudCard(r.theme).Render},
		{"quote", "quote.json", "quote", rendering.NewQuoteCard(r.theme).Render},
		{"location", "weather.json", "weather", r.renderLocation},
	}
}

// renderLocation injects the static map tile into the weather document
// before rendering. A missing map file leaves the card on its placeholder
// panel.
func (r *Runner) renderLocation(data map[string]any) (string, error) {
	if tile, err := os.ReadFile(r.dataPath("map.png")); err == nil {
		data["map_image_base64"] = base64.StdEncoding.EncodeToString(tile)
	}
	return rendering.NewLocationCard(r.theme).Render(data)
}

// GenerateResult summarizes one card's outcome within a generate-all pass.
type GenerateResult struct {
	CardType  string
	Skipped   bool
	Generated bool
	Err       error
}

// GenerateAll regenerates every card whose input exists, honoring the change
// detection cache. A card with no data file yet is skipped silently; a card
// whose generation fails without a fallback is reported in its result.
func (r *Runner) GenerateAll(force bool) []GenerateResult {
	var results []GenerateResult
	for _, job := range r.cardJobs() {
		inputPath := r.dataPath(job.dataFile)
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			r.log.Info("no data yet, skipping card", zap.String("card_type", job.cardType))
			continue
		}
		outcome, err := r.gen.GenerateIncremental(job.cardType, r.outputPath(job.cardType+".svg"),
			inputPath, job.schema, r.cfg.CachePath, job.cardType, force, job.render)
		results = append(results, GenerateResult{
			CardType:  job.cardType,
			Skipped:   outcome.Skipped,
			Generated: outcome.Generated,
			Err:       err,
		})
	}

	results = append(results, r.generateConsolidated())
	results = append(results, r.generateSummary())
	results = append(results, r.generateStatusPage())
	return results
}

// loadOptional reads a data document if its file exists, returning nil for a
// missing or unreadable file so the consolidated dashboard can omit the
// panel.
func (r *Runner) loadOptional(dataFile string) map[string]any {
	doc, err := LoadInput(r.dataPath(dataFile))
	if err != nil {
		return nil
	}
	return doc
}

// generateConsolidated renders the multi-source dashboard from whatever data
// documents are currently available.
func (r *Runner) generateConsolidated() GenerateResult {
	weather := r.loadOptional("weather.json")
	in := rendering.ConsolidatedInput{
		Developer:  r.loadOptional("developer.json"),
		SoundCloud: r.loadOptional("soundcloud.json"),
		Weather:    weather,
		Location:   weather,
		Mood:       r.loadOptional("mood.json"),
	}
	card := rendering.NewConsolidatedCard(r.theme, time.Now())
	if err := writeAtomic(r.outputPath("consolidated.svg"), card.Render(in)); err != nil {
		return GenerateResult{CardType: "consolidated", Err: &GenerateError{
			CardType: "consolidated", Message: "failed to write consolidated dashboard", Cause: err}}
	}
	return GenerateResult{CardType: "consolidated", Generated: true}
}

// generateSummary renders the period summary card when an aggregated
// snapshot exists.
func (r *Runner) generateSummary() GenerateResult {
	snapshot, err := LoadInput(r.dataPath("summary.json"))
	if err != nil {
		r.log.Info("no summary snapshot, skipping summary card")
		return GenerateResult{CardType: "summary", Skipped: true}
	}
	period := rendering.GetString(snapshot, "weekly", "period")
	card := rendering.NewSummaryCard(period, r.theme, time.Now())
	if err := writeAtomic(r.outputPath("summary.svg"), card.Render(snapshot)); err != nil {
		return GenerateResult{CardType: "summary", Err: &GenerateError{
			CardType: "summary", Message: "failed to write summary card", Cause: err}}
	}
	return GenerateResult{CardType: "summary", Generated: true}
}

// generateStatusPage renders the workflow status page from the metrics
// store. It bypasses the data-file pipeline since its input is the store
// itself.
func (r *Runner) generateStatusPage() GenerateResult {
	all := r.recorder.LoadAll()
	page := rendering.StatusPage{Theme: r.theme, Now: time.Now()}
	svg := page.Render(all)
	outputPath := r.outputPath("status.svg")
	if err := writeAtomic(outputPath, svg); err != nil {
		return GenerateResult{CardType: "status", Err: &GenerateError{
			CardType: "status", Message: "failed to write status page", Cause: err}}
	}
	return GenerateResult{CardType: "status", Generated: true}
}

// GenerateOne regenerates a single card. Empty inputPath and outputPath fall
// back to the configured directories. The special card types status,
// consolidated, and summary ignore inputPath.
func (r *Runner) GenerateOne(cardType, inputPath, outputPath string, force bool) GenerateResult {
	switch cardType {
	case "status":
		return r.generateStatusPage()
	case "consolidated":
		return r.generateConsolidated()
	case "summary":
		return r.generateSummary()
	}

	for _, job := range r.cardJobs() {
		if job.cardType != cardType {
			continue
		}
		if inputPath == "" {
			inputPath = r.dataPath(job.dataFile)
		}
		if outputPath == "" {
			outputPath = r.outputPath(cardType + ".svg")
		}
		outcome, err := r.gen.GenerateIncremental(cardType, outputPath, inputPath,
			job.schema, r.cfg.CachePath, cardType, force, job.render)
		return GenerateResult{
			CardType:  cardType,
			Skipped:   outcome.Skipped,
			Generated: outcome.Generated,
			Err:       err,
		}
	}
	return GenerateResult{CardType: cardType, Err: &GenerateError{
		CardType: cardType, Message: "unknown card type"}}
}

// Run executes the full pipeline: fetch, mood, snapshot, generate.
func (r *Runner) Run(ctx context.Context, force bool) []GenerateResult {
	r.FetchAll(ctx)
	if err := r.ComputeMood(time.Now()); err != nil {
		r.log.Warn("mood computation skipped", zap.Error(err))
	}
	if err := r.StoreSnapshot(time.Now()); err != nil {
		r.log.Warn("snapshot storage failed", zap.Error(err))
	}
	return r.GenerateAll(force)
}
