package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
)

type WordCount struct {
	Word  string
	Count int
}

// TopN returns the n most frequent words, highest count first. Ties are
// broken alphabetically so the order is stable between runs. n <= 0 returns
// every word.
func TopN(wordCounts analytics.FrequencyMap, n int) []WordCount {
	ss := make([]WordCount, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, WordCount{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	if n > 0 && len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// TopKeywords returns the top N keywords formatted as "word:count".
func TopKeywords(wordCounts analytics.FrequencyMap, n int) []string {
	top := TopN(wordCounts, n)
	keywords := make([]string, len(top))
	for i, wc := range top {
		keywords[i] = fmt.Sprintf("%s:%d", wc.Word, wc.Count)
	}
	return keywords
}
