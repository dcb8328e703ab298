package cloud

import (
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/collector"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// barProgress draws a page progress bar on a terminal.
type barProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (p *barProgress) Start(total int) {
	if total <= 0 {
		total = -1 // spinner
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *barProgress) Step() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// logProgress reports pages at debug level when no terminal is attached.
type logProgress struct {
	logger *slog.Logger
	total  int
	done   int
}

func (p *logProgress) Start(total int) { p.total = total }

func (p *logProgress) Step() {
	p.done++
	p.logger.Debug("Progress", "page", p.done, "estimated_pages", p.total)
}

func (p *logProgress) Finish() {}

func newProgress(logger *slog.Logger, quiet bool) collector.Progress {
	if !quiet && isatty.IsTerminal(os.Stderr.Fd()) {
		return &barProgress{w: os.Stderr}
	}
	return &logProgress{logger: logger}
}
