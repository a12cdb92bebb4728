package prose

import (
	"regexp"
	"strings"
)

// Titles and other abbreviations whose trailing period must not be read as a
// sentence terminator.
var abbreviations = []string{
	"Mr", "Mrs", "Ms", "Dr", "Prof", "Sr", "Jr", "vs", "etc",
	"Inc", "Ltd", "Co", "Corp", "St", "Ave", "Blvd", "Rd",
}

// abbrevMask stands in for an abbreviation's period while splitting. A
// private-use rune cannot occur in ordinary prose, so masking and restoring
// is lossless.
const abbrevMask = "\uE000"

var (
	abbrevPattern = regexp.MustCompile(`\b(` + strings.Join(abbreviations, "|") + `)\.`)
	sentenceEnd   = regexp.MustCompile(`([.!?]+)(\s+|$)`)
)

// Segment splits text into trimmed, terminator-inclusive sentences.
// Abbreviation periods (Mr., Dr., St., ...) are protected and do not end a
// sentence. A trailing span with no terminator is still a sentence. Empty
// input yields nil.
func Segment(text string) []string {
	protected := abbrevPattern.ReplaceAllString(text, "${1}"+abbrevMask)

	var sentences []string
	last := 0
	for _, m := range sentenceEnd.FindAllStringSubmatchIndex(protected, -1) {
		// m[3] is the end of the terminator run; the whole match end m[1]
		// also swallows the separating whitespace.
		s := strings.TrimSpace(protected[last:m[3]])
		last = m[1]
		if s == "" {
			continue
		}
		sentences = append(sentences, strings.ReplaceAll(s, abbrevMask, "."))
	}
	if rest := strings.TrimSpace(protected[last:]); rest != "" {
		sentences = append(sentences, strings.ReplaceAll(rest, abbrevMask, "."))
	}
	return sentences
}

// CountSentences reports how many sentences Segment finds in text.
func CountSentences(text string) int {
	return len(Segment(text))
}
