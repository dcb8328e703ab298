package stopwords

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
)

func writeStopwords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stopwords.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write stopwords: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeStopwords(t, "toot\r\nboost  \nFediverse\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		word string
		want bool
	}{
		{"toot", true},
		{"boost", true},
		{"Fediverse", true},
		{"fediverse", false}, // no case folding of file entries
		{"the", true},        // built-in
		{"you're", true},
		{"gopher", false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.word); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Load() error = %v, want ErrFileNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	s, err := Read(strings.NewReader("toot\nboost\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	freq := analytics.FrequencyMap{"the": 9, "toot": 4, "gopher": 3, "boost": 1, "go": 2}
	removed := s.Remove(freq)

	want := analytics.FrequencyMap{"gopher": 3, "go": 2}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("Remove() left %v, want %v", freq, want)
	}
	if removed != 3 {
		t.Errorf("Remove() = %d, want 3", removed)
	}
	for word := range freq {
		if s.Contains(word) {
			t.Errorf("stopword %q survived", word)
		}
	}
}

func TestRemoveIdempotent(t *testing.T) {
	s, err := Read(strings.NewReader("toot\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	once := analytics.FrequencyMap{"the": 1, "toot": 2, "gopher": 3}
	s.Remove(once)

	twice := analytics.FrequencyMap{"the": 1, "toot": 2, "gopher": 3}
	s.Remove(twice)
	if n := s.Remove(twice); n != 0 {
		t.Errorf("second Remove() removed %d entries", n)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("once = %v, twice = %v", once, twice)
	}
}

func TestBuiltinUnchangedByLoad(t *testing.T) {
	before := Builtin().Len()
	if _, err := Read(strings.NewReader("zzz\nyyy\n")); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if IsBuiltin("zzz") {
		t.Error("Read() leaked into the built-in list")
	}
	if after := Builtin().Len(); after != before {
		t.Errorf("built-in size changed from %d to %d", before, after)
	}
}

func TestReadLongLine(t *testing.T) {
	long := strings.Repeat("x", 70000)
	set, err := Read(strings.NewReader("toot\n" + long + "\nboost"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	for _, w := range []string{"toot", long, "boost"} {
		if !set.Contains(w) {
			t.Errorf("Contains(%.10q...) = false, want true", w)
		}
	}
}

func TestLen(t *testing.T) {
	set, err := Read(strings.NewReader("toot\nthe\ntoot\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	// "the" is already built in and "toot" is listed twice.
	if got, want := set.Len(), Builtin().Len()+1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}
