package prose

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Speech-attribution verbs that mark a line as dialogue even without
// quotation marks.
var speechVerbs = map[string]bool{
	"said": true, "asked": true, "replied": true, "shouted": true,
	"whispered": true, "muttered": true, "answered": true, "exclaimed": true,
	"cried": true, "yelled": true, "screamed": true, "murmured": true,
	"added": true, "continued": true, "interrupted": true, "stammered": true,
	"growled": true, "hissed": true, "sighed": true, "laughed": true,
	"chuckled": true, "snorted": true, "gasped": true, "breathed": true,
	"wondered": true, "thought": true, "mused": true,
}

var quoteRunes = map[rune]bool{
	'"': true, '“': true, '”': true,
}

// IsDialogue reports whether a span of text reads as spoken dialogue: it
// begins or ends with a quotation mark, or contains a speech-attribution verb
// as a whole word, case-insensitively. Blank text is not dialogue.
//
// Known limitation: narration that merely mentions one of the verbs (a
// character who "sighed" without speaking) still classifies as dialogue. The
// rule set is intentionally lexical and makes no attempt at attribution.
func IsDialogue(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(trimmed)
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if quoteRunes[first] || quoteRunes[last] {
		return true
	}

	words := strings.FieldsFunc(trimmed, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if speechVerbs[strings.ToLower(w)] {
			return true
		}
	}
	return false
}
