package render

import (
	"io"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
	"github.com/dtnitsch/mastodon-wordcloud/pkg/mapreduce"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive word cloud page for the same words the
// raster image uses.
func RenderHTML(w io.Writer, freq analytics.FrequencyMap, title string, maxWords int) error {
	top := mapreduce.TopN(freq, maxWords)
	if len(top) == 0 {
		return ErrNoWords
	}

	items := make([]opts.WordCloudData, 0, len(top))
	for _, wc := range top {
		items = append(items, opts.WordCloudData{Name: wc.Word, Value: wc.Count})
	}

	cloud := charts.NewWordCloud()
	cloud.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	cloud.AddSeries("words", items).
		SetSeriesOptions(
			charts.WithWorldCloudChartOpts(opts.WordCloudChart{
				SizeRange: []float32{14, 80},
				Shape:     "circle",
			}),
		)

	return cloud.Render(w)
}
