package prose

import (
	"regexp"
	"strings"
)

// A paragraph boundary is one or more blank lines, where a blank line may
// carry stray whitespace.
var paragraphSep = regexp.MustCompile(`\n[ \t]*\n[\s]*`)

// ParseBlocks splits raw content into ordered, classified blocks.
//
// Content is first split into paragraphs on blank-line runs. A paragraph
// whose lines all classify the same way becomes a single block, keeping its
// internal line breaks. A paragraph mixing narration and dialogue lines is
// decomposed into the minimum number of contiguous same-type blocks, in
// source order. Empty paragraphs and empty lines are discarded.
func ParseBlocks(content string) []Block {
	var blocks []Block

	paraIdx := 0
	for _, raw := range paragraphSep.Split(content, -1) {
		para := strings.TrimSpace(raw)
		if para == "" {
			continue
		}
		blocks = append(blocks, parseParagraph(para, paraIdx)...)
		paraIdx++
	}
	return blocks
}

func parseParagraph(para string, idx int) []Block {
	var lines []string
	for _, l := range strings.Split(para, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	if len(lines) == 1 {
		return []Block{{Type: classify(para), Text: lines[0], Paragraph: idx}}
	}

	types := make([]BlockType, len(lines))
	uniform := true
	for i, l := range lines {
		types[i] = classify(l)
		if types[i] != types[0] {
			uniform = false
		}
	}
	if uniform {
		return []Block{{Type: types[0], Text: strings.Join(lines, "\n"), Paragraph: idx}}
	}

	// Mixed paragraph: scan lines, accumulating runs of one type and
	// flushing whenever the type flips.
	var blocks []Block
	currentType := types[0]
	currentLines := []string{lines[0]}
	flush := func() {
		blocks = append(blocks, Block{
			Type:      currentType,
			Text:      strings.Join(currentLines, "\n"),
			Paragraph: idx,
		})
	}
	for i := 1; i < len(lines); i++ {
		if types[i] == currentType {
			currentLines = append(currentLines, lines[i])
			continue
		}
		flush()
		currentType = types[i]
		currentLines = []string{lines[i]}
	}
	flush()
	return blocks
}

func classify(text string) BlockType {
	if IsDialogue(text) {
		return Dialogue
	}
	return Description
}
