package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minTokenLength = 3

// Fold lowercases s and strips diacritics.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Lower(language.Und))

	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}

	return folded
}

// Tokens splits text into folded word tokens of at least three characters and
// adds the local-part pieces of any email address.
func Tokens(text string) []string {
	var tokens []string

	for _, word := range strings.Fields(Fold(text)) {
		if at := strings.IndexByte(word, '@'); at > 0 {
			local := word[:at]
			for _, part := range strings.FieldsFunc(local, isEmailSeparator) {
				part = trimPunct(part)
				if part != "" {
					tokens = append(tokens, part)
				}
			}

			continue
		}

		word = trimPunct(word)
		if len([]rune(word)) >= minTokenLength {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// SearchKeys derives the deduplicated staff lookup tokens of values, at most limit of them.
func SearchKeys(limit int, values ...string) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	for _, v := range values {
		for _, tok := range Tokens(v) {
			if _, ok := seen[tok]; ok {
				continue
			}

			if len(keys) >= limit {
				return keys
			}

			seen[tok] = struct{}{}
			keys = append(keys, tok)
		}
	}

	return keys
}

func isEmailSeparator(r rune) bool {
	switch r {
	case '.', '_', '+', '-':
		return true
	}

	return false
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
