package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minTokenRunes is the minimum token length kept by Tokenize.
const minTokenRunes = 2

// NormalizeTerm lower-cases, trims and NFKC-normalizes a single term.
// Synonym table keys and values pass through here at load time.
func NormalizeTerm(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}

// Tokenize splits free text into lower-case tokens. Punctuation is
// dropped, hyphens inside a token are kept ("омега-3", "l-карнитин"),
// and tokens shorter than two runes are discarded. Works for both
// Latin and Cyrillic scripts.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	normalized := strings.ToLower(norm.NFKC.String(text))

	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if utf8.RuneCountInString(f) < minTokenRunes {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenSet tokenizes text and returns the tokens as a set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// DeduplicateSlice removes duplicates and blanks, keeping first-seen order.
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}
