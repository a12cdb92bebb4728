package prose

import "strings"

// splitLong breaks an oversized description block into consecutive blocks of
// at most maxSentences sentences each; the last block may be shorter. Blocks
// within the bound come back unchanged as a single-element slice. Callers
// must not pass dialogue blocks: speaker turns and embedded line breaks have
// to survive verbatim.
func splitLong(b Block, maxSentences int) []Block {
	sentences := Segment(b.Text)
	if len(sentences) <= maxSentences {
		return []Block{b}
	}

	blocks := make([]Block, 0, (len(sentences)+maxSentences-1)/maxSentences)
	for start := 0; start < len(sentences); start += maxSentences {
		end := start + maxSentences
		if end > len(sentences) {
			end = len(sentences)
		}
		blocks = append(blocks, Block{
			Type:      b.Type,
			Text:      strings.Join(sentences[start:end], " "),
			Paragraph: b.Paragraph,
		})
	}
	return blocks
}
