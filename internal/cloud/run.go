package cloud

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/mastodon-wordcloud/models"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/collector"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/db"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mapreduce"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mastodon"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/render"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/stopwords"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/storage"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/validate"
	"golang.org/x/time/rate"
)

// ConfigError marks a problem with the inputs, found before any request.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// Runner wires the pipeline together. Zero fields get defaults.
type Runner struct {
	Out        io.Writer
	Logger     *slog.Logger
	Progress   collector.Progress
	HTTPClient *http.Client
}

// Summary describes a finished run.
type Summary struct {
	Account          models.Account
	Stats            collector.Stats
	StopwordsRemoved int
	Words            int
	RunID            int64
}

// validateInputs checks every local input so a bad flag fails before the
// slow collection phase.
func validateInputs(cfg *models.CloudConfig) (render.Options, error) {
	if err := cfg.Validate(); err != nil {
		return render.Options{}, &ConfigError{err}
	}
	if err := validate.StopwordsFile(cfg.Stopwords); err != nil {
		return render.Options{}, &ConfigError{err}
	}
	mask, err := validate.MaskImage(cfg.MaskImg)
	if err != nil {
		return render.Options{}, &ConfigError{err}
	}
	contour, err := validate.Color(cfg.ContourColor)
	if err != nil {
		return render.Options{}, &ConfigError{fmt.Errorf("contour_color: %w", err)}
	}
	background, err := validate.Color(cfg.BackgroundColor)
	if err != nil {
		return render.Options{}, &ConfigError{fmt.Errorf("background_color: %w", err)}
	}
	if err := validate.ContourWidth(cfg.ContourWidth); err != nil {
		return render.Options{}, &ConfigError{err}
	}

	var fontData []byte
	if cfg.Font != "" {
		if fontData, err = (&storage.Storage{}).ReadFile(cfg.Font); err != nil {
			return render.Options{}, &ConfigError{fmt.Errorf("font: %w", err)}
		}
	}

	opts := render.DefaultOptions()
	opts.Mask = mask
	opts.ContourColor = contour
	opts.ContourWidth = cfg.ContourWidth
	opts.Background = background
	opts.MaxWords = cfg.MaxWords
	opts.Seed = cfg.Seed
	opts.FontData = fontData

	return opts, nil
}

// Run validates cfg, collects the account's word frequencies, removes
// stopwords and writes the word cloud. Nothing is written on failure.
func (r *Runner) Run(ctx context.Context, cfg *models.CloudConfig) (Summary, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var summary Summary

	renderOpts, err := validateInputs(cfg)
	if err != nil {
		return summary, err
	}

	clientOpts := []mastodon.Option{mastodon.WithRateLimit(rate.Limit(cfg.RequestsPerSecond))}
	if r.HTTPClient != nil {
		clientOpts = append(clientOpts, mastodon.WithHTTPClient(r.HTTPClient))
	}
	client, err := mastodon.NewClient(cfg.ServerURL, cfg.AccessToken, clientOpts...)
	if err != nil {
		return summary, &ConfigError{err}
	}

	fmt.Fprintln(out, "Finding the account's ID...")
	account, err := client.LookupAccount(ctx, cfg.AccountName)
	if err != nil {
		return summary, err
	}
	summary.Account = account
	logger.Info("Account found", "account", cfg.AccountName, "id", account.ID, "statuses_count", account.StatusesCount)

	fmt.Fprintln(out, "Calculating word frequencies...")
	col := &collector.Collector{
		Lister:   client,
		Progress: r.Progress,
		Logger:   logger,
		MaxPages: cfg.MaxPages,
	}
	freq, stats, err := col.Collect(ctx, account.ID, account.StatusesCount)
	summary.Stats = stats
	if err != nil {
		return summary, fmt.Errorf("failed to collect statuses: %w", err)
	}
	logger.Info("Collection complete",
		"pages", stats.Pages,
		"requests", stats.Requests,
		"statuses", stats.Statuses,
		"skipped", stats.Skipped,
		"distinct_words", len(freq),
		"capped", stats.Capped)

	fmt.Fprintln(out, "Removing stopwords...")
	set, err := stopwords.Load(cfg.Stopwords)
	if err != nil {
		return summary, &ConfigError{err}
	}
	summary.StopwordsRemoved = set.Remove(freq)
	summary.Words = len(freq)
	logger.Info("Stopwords removed", "stopwords", set.Len(), "removed", summary.StopwordsRemoved, "remaining", len(freq),
		"top_keywords", mapreduce.TopKeywords(freq, 25))

	fmt.Fprintln(out, "Creating wordcloud...")
	img, err := render.Render(freq, renderOpts)
	if err != nil {
		return summary, fmt.Errorf("failed to render word cloud: %w", err)
	}

	files := &storage.Storage{}
	if err := files.SavePNG(cfg.Output, img); err != nil {
		return summary, err
	}
	logger.Info("Word cloud saved", "path", cfg.Output)

	if cfg.HTMLOutput != "" {
		var page bytes.Buffer
		if err := render.RenderHTML(&page, freq, "@"+cfg.AccountName, cfg.MaxWords); err != nil {
			return summary, fmt.Errorf("failed to render html word cloud: %w", err)
		}
		if err := files.SaveFile(cfg.HTMLOutput, page.Bytes()); err != nil {
			return summary, err
		}
		logger.Info("HTML word cloud saved", "path", cfg.HTMLOutput)
	}

	if cfg.History {
		runID, dbPath, err := recordRun(cfg, account, stats, summary.StopwordsRemoved, freq)
		if err != nil {
			// The image is already written; a history failure does not undo it.
			logger.Warn("Failed to record run history", "error", err)
		} else {
			summary.RunID = runID
			logger.Info("Run recorded", "run_id", runID, "db", dbPath)
		}
	}

	return summary, nil
}

func recordRun(cfg *models.CloudConfig, account models.Account, stats collector.Stats, removed int, freq analytics.FrequencyMap) (int64, string, error) {
	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return 0, "", err
	}
	defer database.Close()

	runID, err := database.InsertRun(db.Run{
		ServerURL:        cfg.ServerURL,
		AccountName:      cfg.AccountName,
		AccountID:        account.ID,
		StatusesCount:    account.StatusesCount,
		StatusesSeen:     stats.Statuses,
		Pages:            stats.Pages,
		Capped:           stats.Capped,
		StopwordsRemoved: removed,
		OutputPath:       cfg.Output,
	}, freq)
	return runID, database.Path(), err
}
