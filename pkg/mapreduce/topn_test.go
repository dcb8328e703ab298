package mapreduce

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
)

func TestTopN(t *testing.T) {
	freq := analytics.FrequencyMap{"go": 5, "rust": 2, "zig": 2, "c": 9, "odin": 1}

	tests := []struct {
		name string
		n    int
		want []WordCount
	}{
		{
			name: "top three with alphabetical tie break",
			n:    3,
			want: []WordCount{{"c", 9}, {"go", 5}, {"rust", 2}},
		},
		{
			name: "n larger than map",
			n:    50,
			want: []WordCount{{"c", 9}, {"go", 5}, {"rust", 2}, {"zig", 2}, {"odin", 1}},
		},
		{
			name: "zero means all",
			n:    0,
			want: []WordCount{{"c", 9}, {"go", 5}, {"rust", 2}, {"zig", 2}, {"odin", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopN(freq, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopN(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestTopKeywords(t *testing.T) {
	got := TopKeywords(analytics.FrequencyMap{"toot": 3, "boost": 1}, 2)
	want := []string{"toot:3", "boost:1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}
}
