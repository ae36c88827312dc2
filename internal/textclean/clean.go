package textclean

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	digitPattern       = regexp.MustCompile(`\d+`)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	sentencePattern    = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
)

// Tokens lowercases s, drops digits and punctuation and splits it into words
// without stopwords.
func Tokens(s string) []string {
	s = strings.ToLower(s)
	s = digitPattern.ReplaceAllString(s, "")
	s = punctuationPattern.ReplaceAllString(s, "")

	fields := strings.Fields(s)
	out := fields[:0]
	for _, w := range fields {
		if !IsStopword(w) {
			out = append(out, w)
		}
	}
	return out
}

// Words lowercases s and splits it on anything other than letters, digits and
// apostrophes. Stopwords are kept.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})
}

// Sentences splits s on terminal punctuation and newlines, keeping the
// punctuation with its sentence. Blank sentences are dropped.
func Sentences(s string) []string {
	var out []string
	for _, part := range sentencePattern.FindAllString(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
