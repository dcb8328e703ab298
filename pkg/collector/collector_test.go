package collector

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/dtnitsch/mastodon-wordcloud/models"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
)

// fakeLister serves pages in order and records the cursor of each request.
type fakeLister struct {
	pages   [][]models.Status
	cursors []models.Cursor
	err     error
	errAt   int
}

func (f *fakeLister) ListStatuses(ctx context.Context, accountID string, cursor models.Cursor) ([]models.Status, error) {
	f.cursors = append(f.cursors, cursor)
	n := len(f.cursors)
	if f.err != nil && n == f.errAt {
		return nil, f.err
	}
	if n > len(f.pages) {
		return nil, nil
	}
	return f.pages[n-1], nil
}

type countingProgress struct {
	total, steps int
	finished     bool
}

func (p *countingProgress) Start(total int) { p.total = total }
func (p *countingProgress) Step()           { p.steps++ }
func (p *countingProgress) Finish()         { p.finished = true }

func status(id int64, content string) models.Status {
	raw, _ := json.Marshal(content)
	return models.Status{ID: models.StatusID(id), Content: raw}
}

func TestCollectPagination(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Status{
		{status(300, "<p>alpha</p>"), status(290, "<p>beta</p>"), status(280, "<p>alpha</p>")},
		{status(200, "<p>gamma</p>"), status(150, "<p>alpha</p>")},
		{status(99, "<p>delta</p>")},
		{},
	}}
	progress := &countingProgress{}
	c := &Collector{Lister: lister, Progress: progress, PageSize: 2}

	freq, stats, err := c.Collect(context.Background(), "1", 6)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(lister.cursors) != 4 {
		t.Fatalf("issued %d requests, want 4", len(lister.cursors))
	}
	if _, bounded := lister.cursors[0].MaxID(); bounded {
		t.Errorf("first request had a bound: %s", lister.cursors[0])
	}
	wantBounds := []int64{279, 149, 98}
	for k, want := range wantBounds {
		got, bounded := lister.cursors[k+1].MaxID()
		if !bounded || got != want {
			t.Errorf("cursor after page %d = %s, want %d", k+1, lister.cursors[k+1], want)
		}
	}

	want := analytics.FrequencyMap{"alpha": 3, "beta": 1, "gamma": 1, "delta": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("Collect() = %v, want %v", freq, want)
	}

	if stats.Pages != 3 || stats.Requests != 4 || stats.Statuses != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if progress.total != 3 || progress.steps != 3 || !progress.finished {
		t.Errorf("progress = %+v", progress)
	}
}

func TestCollectCursorUsesMinimumID(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Status{
		{status(50, "a"), status(10, "b"), status(30, "c")},
	}}
	c := &Collector{Lister: lister}

	if _, _, err := c.Collect(context.Background(), "1", 3); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got, _ := lister.cursors[1].MaxID(); got != 9 {
		t.Errorf("cursor = %d, want 9", got)
	}
}

func TestCollectEmptyAccount(t *testing.T) {
	lister := &fakeLister{}
	c := &Collector{Lister: lister}

	freq, stats, err := c.Collect(context.Background(), "1", 0)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(freq) != 0 || stats.Requests != 1 || stats.Pages != 0 {
		t.Errorf("freq = %v, stats = %+v", freq, stats)
	}
}

func TestCollectSkipsMissingContent(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Status{{
		{ID: 5, Content: json.RawMessage(`null`)},
		{ID: 4},
		{ID: 3, Content: json.RawMessage(`{"not":"html"}`)},
		status(2, "<p>kept</p>"),
	}}}
	c := &Collector{Lister: lister}

	freq, stats, err := c.Collect(context.Background(), "1", 4)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if !reflect.DeepEqual(freq, analytics.FrequencyMap{"kept": 1}) {
		t.Errorf("freq = %v", freq)
	}
	if stats.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", stats.Skipped)
	}
}

func TestCollectStatusMarkup(t *testing.T) {
	content := `<p>Hello <span class="h-card"><a href="https://x.social/@alice" class="u-url mention">@<span>alice</span></a></span> ` +
		`check <a href="https://x.com/y">https://x.com/y</a> ` +
		`<a href="https://x.social/tags/tag" class="mention hashtag">#<span>tag</span></a> great-work!</p>`
	lister := &fakeLister{pages: [][]models.Status{{status(10, content)}}}
	c := &Collector{Lister: lister}

	freq, _, err := c.Collect(context.Background(), "1", 1)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := analytics.FrequencyMap{"hello": 1, "check": 1, "tag": 1, "great-work": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("Collect() = %v, want %v", freq, want)
	}
}

func TestCollectPropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	lister := &fakeLister{
		pages: [][]models.Status{{status(10, "one")}, {status(5, "two")}},
		err:   boom,
		errAt: 2,
	}
	c := &Collector{Lister: lister}

	freq, _, err := c.Collect(context.Background(), "1", 2)
	if !errors.Is(err, boom) {
		t.Fatalf("Collect() error = %v, want %v", err, boom)
	}
	if freq != nil {
		t.Errorf("partial counts returned: %v", freq)
	}
}

func TestCollectRejectsRepeatedPage(t *testing.T) {
	page := []models.Status{status(10, "again")}
	lister := &fakeLister{pages: [][]models.Status{page, page}}
	c := &Collector{Lister: lister}

	_, _, err := c.Collect(context.Background(), "1", 2)
	if !errors.Is(err, ErrCursorNotDecreasing) {
		t.Fatalf("Collect() error = %v, want ErrCursorNotDecreasing", err)
	}
}

func TestCollectMaxPages(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Status{
		{status(30, "a")}, {status(20, "b")}, {status(10, "c")},
	}}
	c := &Collector{Lister: lister, MaxPages: 2}

	freq, stats, err := c.Collect(context.Background(), "1", 3)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if !stats.Capped || stats.Pages != 2 || stats.Requests != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if !reflect.DeepEqual(freq, analytics.FrequencyMap{"a": 1, "b": 1}) {
		t.Errorf("freq = %v", freq)
	}
}

func TestEstimatePages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := EstimatePages(tt.count, tt.size); got != tt.want {
			t.Errorf("EstimatePages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}
