package cloud

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/mastodon-wordcloud/models"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// Flags are the options of the cloud command. Defaults shown in help match
// models.DefaultCloudConfig; values only override the config file when set.
func Flags() []cli.Flag {
	d := models.DefaultCloudConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML file with one parameter per key (server_url, account_name, ...); command line values win"},
		&cli.StringFlag{Name: "stopwords", Value: d.Stopwords, Usage: "file containing one stopword per line"},
		&cli.StringFlag{Name: "mask_img", Value: d.MaskImg, Usage: "masking image for the word cloud, defines its shape"},
		&cli.StringFlag{Name: "output", Value: d.Output, Usage: "filename of the generated word cloud"},
		&cli.StringFlag{Name: "html", Usage: "also write an interactive HTML word cloud to this file"},
		&cli.StringFlag{Name: "contour_color", Value: d.ContourColor, Usage: "color of the mask contour: a color name or #rrggbb (quote it)"},
		&cli.IntFlag{Name: "contour_width", Value: d.ContourWidth, Usage: "width of the mask contour, 0 for none"},
		&cli.StringFlag{Name: "background_color", Value: d.BackgroundColor, Usage: "background color: a color name or #rrggbb"},
		&cli.StringFlag{Name: "font", Usage: "TrueType font file (default Go Regular)"},
		&cli.IntFlag{Name: "max_words", Value: d.MaxWords, Usage: "maximum number of words drawn"},
		&cli.Int64Flag{Name: "seed", Value: d.Seed, Usage: "layout and color seed"},
		&cli.IntFlag{Name: "max_pages", Usage: "stop after this many pages (0 = until the server returns an empty page)"},
		&cli.Float64Flag{Name: "rate", Usage: "maximum requests per second (0 = unlimited)"},
		&cli.BoolFlag{Name: "history", Usage: "record the run and its word counts in the history database"},
		&cli.StringFlag{Name: "history_db", Usage: "history database path (default next to the binary)"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every page"},
	}
}

// CloudAction is the default command:
// toot-cloud [options] server_url account_name access_token
func CloudAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(diagnostic(err), 1)
	}

	runner := &Runner{
		Out:      os.Stdout,
		Logger:   logger,
		Progress: newProgress(logger, c.Bool("quiet")),
	}
	if _, err := runner.Run(c.Context, cfg); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return cli.Exit(diagnostic(cfgErr), 1)
		}
		logger.Error("Word cloud failed", "error", err)
		return cli.Exit("", 2)
	}
	return nil
}

// buildConfig layers defaults, the config file, the environment and the
// command line, lowest precedence first.
func buildConfig(c *cli.Context) (*models.CloudConfig, error) {
	cfg := models.DefaultCloudConfig()
	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv(os.Getenv)

	if c.NArg() > 3 {
		return nil, fmt.Errorf("expected at most 3 arguments (server_url account_name access_token), got %d", c.NArg())
	}
	positional := []*string{&cfg.ServerURL, &cfg.AccountName, &cfg.AccessToken}
	for i, dst := range positional {
		if v := c.Args().Get(i); v != "" {
			*dst = v
		}
	}

	stringFlags := map[string]*string{
		"stopwords":        &cfg.Stopwords,
		"mask_img":         &cfg.MaskImg,
		"output":           &cfg.Output,
		"html":             &cfg.HTMLOutput,
		"contour_color":    &cfg.ContourColor,
		"background_color": &cfg.BackgroundColor,
		"font":             &cfg.Font,
		"history_db":       &cfg.HistoryDB,
	}
	for name, dst := range stringFlags {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	intFlags := map[string]*int{
		"contour_width": &cfg.ContourWidth,
		"max_words":     &cfg.MaxWords,
		"max_pages":     &cfg.MaxPages,
	}
	for name, dst := range intFlags {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.IsSet("rate") {
		cfg.RequestsPerSecond = c.Float64("rate")
	}
	if c.IsSet("history") {
		cfg.History = c.Bool("history")
	}
	if c.IsSet("history_db") {
		cfg.History = true
	}

	return &cfg, nil
}

var errorColor = color.New(color.FgRed, color.Bold)

func diagnostic(err error) string {
	return errorColor.Sprint("Error: ") + err.Error()
}
