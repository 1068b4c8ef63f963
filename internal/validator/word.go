package validator

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	minWordLength  = 2
	maxWordLength  = 50
	minLetterRatio = 0.5
)

var (
	validChars     = regexp.MustCompile(`^[a-zA-Z\-'.]+$`)
	punctuationRun = regexp.MustCompile(`[\-'.]{3,}`)
	doubledPunct   = regexp.MustCompile(`--|\.\.|''`)
	dottedAbbrev   = regexp.MustCompile(`\.[a-zA-Z]\.|[a-zA-Z]\.[a-zA-Z]\.`)
)

// IsValidWord reports whether word is a plausible dictionary headword: 2-50
// ASCII letters with the occasional hyphen, apostrophe or period.
func IsValidWord(word string) bool {
	w := strings.TrimSpace(word)
	if len(w) < minWordLength || len(w) > maxWordLength {
		return false
	}
	if !validChars.MatchString(w) {
		return false
	}

	letters := 0
	for _, r := range w {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	if float64(letters)/float64(len(w)) < minLetterRatio {
		return false
	}

	if punctuationRun.MatchString(w) || doubledPunct.MatchString(w) || dottedAbbrev.MatchString(w) {
		return false
	}
	// apostrophes may lead ('tis), hyphens and periods may not
	if w[0] == '-' || w[0] == '.' {
		return false
	}
	if w[len(w)-1] == '-' {
		return false
	}
	return true
}

// NormalizeWord is the stored form of a headword.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// FilterValidWords keeps valid words, normalized, dropping repeats.
func FilterValidWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !IsValidWord(w) {
			continue
		}
		n := NormalizeWord(w)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ReadWordList reads one word per line, skipping blank lines.
func ReadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return words, nil
}
