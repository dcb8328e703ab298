// Package stopwords removes uninformative words from a frequency map.
package stopwords

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/dtnitsch/mastodon-wordcloud/pkg/analytics"
)

var ErrFileNotFound = errors.New("stopwords file not found")

// Set is the union of the built-in list and any user supplied words.
type Set struct {
	extra map[string]struct{}
}

// Builtin returns a Set holding only the built-in list.
func Builtin() Set {
	return Set{extra: map[string]struct{}{}}
}

// Load returns the built-in list merged with the words in path, one per
// line. Trailing whitespace is stripped; nothing else is normalised, so
// entries must be lowercase to match counted words.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Set{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return Set{}, fmt.Errorf("failed to open stopwords file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read is Load for an already open source.
func Read(r io.Reader) (Set, error) {
	s := Builtin()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			s.extra[strings.TrimRightFunc(line, unicode.IsSpace)] = struct{}{}
		}
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return Set{}, fmt.Errorf("failed to read stopwords: %w", err)
		}
	}
}

// Contains reports whether word is a stopword.
func (s Set) Contains(word string) bool {
	if IsBuiltin(word) {
		return true
	}
	_, ok := s.extra[word]
	return ok
}

// Len is the number of distinct stopwords.
func (s Set) Len() int {
	n := len(builtin)
	for w := range s.extra {
		if !IsBuiltin(w) {
			n++
		}
	}
	return n
}

// Remove deletes every stopword from freq in place and returns how many
// entries were removed.
func (s Set) Remove(freq analytics.FrequencyMap) int {
	removed := 0
	for word := range freq {
		if s.Contains(word) {
			delete(freq, word)
			removed++
		}
	}
	return removed
}
