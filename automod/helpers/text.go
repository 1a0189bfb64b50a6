package helpers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spaolacci/murmur3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func DedupeStrings(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range in {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}

// returns a fast, compact hash of a string
//
// current implementation uses murmur3, default seed, and hex encoding
func HashOfString(s string) string {
	val := murmur3.Sum64([]byte(s))
	return fmt.Sprintf("%016x", val)
}

var bareURLRegex = regexp.MustCompile(`^(?:https?://|www\.)\S*$`)

// IsBareURL reports whether a single whitespace-delimited token is nothing
// but a link.
func IsBareURL(token string) bool {
	return bareURLRegex.MatchString(token)
}

// CountLetters returns the number of ASCII letters in s, and how many of
// those are uppercase.
func CountLetters(s string) (letters, upper int) {
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			letters++
		} else if r >= 'A' && r <= 'Z' {
			letters++
			upper++
		}
	}
	return letters, upper
}

var titleCaser = cases.Title(language.English)

// TitleCase renders a shouty title the way we suggest resubmitting it.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// ContainsAnyWord is a case-folded substring check against a word list,
// returning the first word found.
func ContainsAnyWord(text string, words []string) string {
	lower := strings.ToLower(text)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return w
		}
	}
	return ""
}
