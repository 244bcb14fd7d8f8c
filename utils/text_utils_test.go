package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeBasics(t *testing.T) {
	tokens := Tokenize("Давление, сосуды! И сердце?")
	assert.Equal(t, []string{"давление", "сосуды", "сердце"}, tokens)
}

func TestTokenizeMixedScripts(t *testing.T) {
	tokens := Tokenize("Magnesium Glycinate и вазодилатация")
	assert.Equal(t, []string{"magnesium", "glycinate", "вазодилатация"}, tokens)
}

func TestTokenizeKeepsInnerHyphens(t *testing.T) {
	tokens := Tokenize("омега-3 и l-карнитин --- -x-")
	assert.Equal(t, []string{"омега-3", "l-карнитин"}, tokens)
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := Tokenize("я и in a сердце ok")
	assert.Equal(t, []string{"in", "сердце", "ok"}, tokens)
}

func TestTokenizeIdempotent(t *testing.T) {
	first := Tokenize("Давление: сосуды, ОМЕГА-3!")
	second := Tokenize(strings.Join(first, " "))
	assert.Equal(t, first, second)

	for _, token := range first {
		assert.Equal(t, strings.ToLower(token), token, "token must be lower-case")
		assert.GreaterOrEqual(t, utf8.RuneCountInString(token), 2)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n"))
	assert.Empty(t, Tokenize("!!! ... ???"))
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "давление", NormalizeTerm("  ДавлЕние "))
	assert.Equal(t, "coq10", NormalizeTerm("CoQ10"))
}

func TestDeduplicateSlice(t *testing.T) {
	result := DeduplicateSlice([]string{"а", " б ", "а", "", "б", "в"})
	assert.Equal(t, []string{"а", "б", "в"}, result)
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("давление и давление")
	assert.Len(t, set, 1)
	assert.Contains(t, set, "давление")
}
