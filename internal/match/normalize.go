package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy matching: camelCase and
// separators (_ - . space and brackets) are flattened and the result is
// lowercased. "K_HOME_SCORE", "home.score" and "homeScore" all fold to a
// comparable form.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lowercase tokens.
//
//	"homeScore"     -> ["home", "score"]
//	"K_HOME_SCORE"  -> ["k", "home", "score"]
//	"players[0].id" -> ["players", "0", "id"]
//	"XMLFeed"       -> ["xml", "feed"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ', '[', ']':
		return true
	}

	return false
}

// startsToken reports a camelCase boundary before runes[i]: lower to upper
// ("homeScore") or the last capital of an acronym ("XMLFeed").
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
