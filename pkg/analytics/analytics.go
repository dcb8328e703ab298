package analytics

import (
	"regexp"
	"strings"
)

// FrequencyMap maps a canonical word to the number of times it was seen.
type FrequencyMap map[string]int

var (
	wordChar = regexp.MustCompile(`[A-Za-z-]`)
	wordRun  = regexp.MustCompile(`[A-Za-z'-]+`)
)

// Add increments the count of every word.
func (f FrequencyMap) Add(words ...string) {
	for _, w := range words {
		f[w]++
	}
}

// Count tokenizes plain text and adds its canonical words.
func (f FrequencyMap) Count(text string) {
	f.Add(CanonicalWords(Tokenize(text))...)
}

// Tokenize lowercases text and splits it on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// CanonicalWords walks the token sequence and returns the words worth
// counting. Mastodon renders mentions as "@ handle" and bare hashtags as
// "# tag" once markup is stripped, hence the lone "@" and "#" rules.
//
//   - "@" skips itself and the following token
//   - "#" is skipped
//   - tokens starting with "http" or "@" are skipped
//   - tokens containing ".com" are skipped
//   - anything else yields CanonicalWord, if any
func CanonicalWords(tokens []string) []string {
	var words []string
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch {
		case tok == "@":
			i += 2
			continue
		case tok == "#",
			strings.HasPrefix(tok, "http"),
			strings.HasPrefix(tok, "@"),
			strings.Contains(tok, ".com"):
			i++
			continue
		}
		if word, ok := CanonicalWord(tok); ok {
			words = append(words, word)
		}
		i++
	}
	return words
}

// CanonicalWord extracts the first run of letters, apostrophes and hyphens
// from token ("great!" -> "great"). Tokens without a single letter or hyphen
// have no canonical word.
func CanonicalWord(token string) (string, bool) {
	if !wordChar.MatchString(token) {
		return "", false
	}
	return wordRun.FindString(token), true
}
