package analytics

import (
	"reflect"
	"testing"
)

func TestCanonicalWord(t *testing.T) {
	tests := []struct {
		token  string
		want   string
		wantOK bool
	}{
		{"great!", "great", true},
		{"great-work!", "great-work", true},
		{"don't", "don't", true},
		{"#tag", "tag", true},
		{"(quoted)", "quoted", true},
		{"42nd", "nd", true},
		{"-", "-", true},
		{"'-", "'-", true},
		{"'tis", "'tis", true},
		{"foo.bar", "foo", true},
		{"2024", "", false},
		{"'", "", false},
		{"!!!", "", false},
		{"😀", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := CanonicalWord(tt.token)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CanonicalWord(%q) = %q, %v; want %q, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCanonicalWords(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name:   "lone at consumes the handle",
			tokens: []string{"hi", "@", "alice", "there"},
			want:   []string{"hi", "there"},
		},
		{
			name:   "lone at as last token",
			tokens: []string{"bye", "@"},
			want:   []string{"bye"},
		},
		{
			name:   "lone at followed by lone at",
			tokens: []string{"@", "@", "word"},
			want:   []string{"word"},
		},
		{
			name:   "lone hash skips only itself",
			tokens: []string{"#", "golang", "rocks"},
			want:   []string{"golang", "rocks"},
		},
		{
			name:   "urls skipped",
			tokens: []string{"http://a.b", "https://x.org/y", "httpd"},
			want:   nil,
		},
		{
			name:   "inline mention skipped",
			tokens: []string{"@bob@example.social", "@carol"},
			want:   nil,
		},
		{
			name:   "dot com anywhere skipped",
			tokens: []string{"example.com", "(see:github.com/x)", "dotcom"},
			want:   []string{"dotcom"},
		},
		{
			name:   "numbers dropped",
			tokens: []string{"100", "3.14", "ok"},
			want:   []string{"ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalWords(tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CanonicalWords(%q) = %q, want %q", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestCountPlainText(t *testing.T) {
	freq := FrequencyMap{}
	freq.Count("Hello @alice check https://x.com/y #tag great-work!")

	want := FrequencyMap{"hello": 1, "check": 1, "tag": 1, "great-work": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("Count() = %v, want %v", freq, want)
	}
}

func TestCountAccumulates(t *testing.T) {
	freq := FrequencyMap{}
	freq.Count("Go go GO!")
	freq.Count("go, gophers")

	if freq["go"] != 4 {
		t.Errorf("go = %d, want 4", freq["go"])
	}
	if freq["gophers"] != 1 {
		t.Errorf("gophers = %d, want 1", freq["gophers"])
	}
	for w, n := range freq {
		if n < 1 {
			t.Errorf("%q has count %d", w, n)
		}
	}
}
