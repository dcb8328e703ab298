package mapreduce

import "github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"

// Merge adds every count in src to dst.
func Merge(dst, src analytics.FrequencyMap) {
	for word, count := range src {
		dst[word] += count
	}
}
