// Package collector pages backwards through an account's statuses and
// accumulates word frequencies across all of them.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/mastodon-wordcloud/models"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mapreduce"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mastodon"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/parser"
)

// ErrCursorNotDecreasing is returned when a page does not move the cursor
// to older statuses, which would otherwise fetch the same page forever.
var ErrCursorNotDecreasing = errors.New("pagination cursor did not decrease")

// StatusLister fetches one page of statuses older than the cursor.
type StatusLister interface {
	ListStatuses(ctx context.Context, accountID string, cursor models.Cursor) ([]models.Status, error)
}

// Progress is told the estimated number of pages, then once per page.
type Progress interface {
	Start(total int)
	Step()
	Finish()
}

type Stats struct {
	Requests int
	Pages    int
	Statuses int
	// Skipped counts statuses without usable content.
	Skipped int
	// Capped is set when MaxPages stopped collection early.
	Capped bool
	Cursor models.Cursor
}

type Collector struct {
	Lister   StatusLister
	Progress Progress
	Logger   *slog.Logger
	// MaxPages stops collection after that many non-empty pages. Zero means
	// no cap: collection then ends only when the server returns an empty page.
	MaxPages int
	// PageSize scales the progress estimate. Defaults to mastodon.PageSize.
	PageSize int
}

// EstimatePages is ceil(statusCount / pageSize).
func EstimatePages(statusCount, pageSize int) int {
	if pageSize <= 0 || statusCount <= 0 {
		return 0
	}
	return (statusCount + pageSize - 1) / pageSize
}

// Collect fetches every status reachable by paging backwards from the newest
// and returns the combined word counts. statusCount only sizes the progress
// estimate. Any fetch error aborts the run and discards the counts.
func (c *Collector) Collect(ctx context.Context, accountID string, statusCount int) (analytics.FrequencyMap, Stats, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = mastodon.PageSize
	}
	progress := c.Progress
	if progress == nil {
		progress = nopProgress{}
	}

	freq := analytics.FrequencyMap{}
	var stats Stats

	progress.Start(EstimatePages(statusCount, pageSize))
	defer progress.Finish()

	for {
		if c.MaxPages > 0 && stats.Pages >= c.MaxPages {
			stats.Capped = true
			logger.Warn("Page cap reached, stopping early", "max_pages", c.MaxPages, "cursor", stats.Cursor.String())
			break
		}

		statuses, err := c.Lister.ListStatuses(ctx, accountID, stats.Cursor)
		stats.Requests++
		if err != nil {
			return nil, stats, fmt.Errorf("page %d: %w", stats.Pages+1, err)
		}
		if len(statuses) == 0 {
			break
		}

		page, skipped := countPage(statuses)
		mapreduce.Merge(freq, page)

		next := models.Before(oldest(statuses))
		if !next.Below(stats.Cursor) {
			return nil, stats, fmt.Errorf("%w: %s after %s", ErrCursorNotDecreasing, next, stats.Cursor)
		}

		stats.Cursor = next
		stats.Pages++
		stats.Statuses += len(statuses)
		stats.Skipped += skipped
		progress.Step()

		logger.Debug("Page collected",
			"page", stats.Pages,
			"statuses", len(statuses),
			"words", len(page),
			"next_max_id", next.String())
	}

	return freq, stats, nil
}

func countPage(statuses []models.Status) (analytics.FrequencyMap, int) {
	page := analytics.FrequencyMap{}
	skipped := 0
	for _, s := range statuses {
		markup, ok := s.Markup()
		if !ok {
			skipped++
			continue
		}
		text, err := parser.ExtractText(markup)
		if err != nil {
			skipped++
			continue
		}
		page.Count(text)
	}
	return page, skipped
}

// oldest returns the smallest id in a page. Servers list newest first so
// this is normally the last status.
func oldest(statuses []models.Status) models.StatusID {
	minID := statuses[0].ID
	for _, s := range statuses[1:] {
		if s.ID < minID {
			minID = s.ID
		}
	}
	return minID
}

type nopProgress struct{}

func (nopProgress) Start(int) {}
func (nopProgress) Step()     {}
func (nopProgress) Finish()   {}
