package prose

// BlockType distinguishes narration from spoken exchanges.
type BlockType int

const (
	// Description is narrative prose: scene setting, action, interiority.
	Description BlockType = iota
	// Dialogue is spoken text, usually quoted, possibly spanning several lines.
	Dialogue
)

func (t BlockType) String() string {
	if t == Dialogue {
		return "dialogue"
	}
	return "description"
}

// Block is a classified, contiguous span of text. Text is never empty after
// trimming and may contain embedded newlines when the block was assembled from
// multiple contiguous same-type lines (multi-line dialogue exchanges keep
// their internal line breaks). Paragraph is the zero-based index of the source
// paragraph the block came from; it exists for diagnostics and change
// reporting, not for ordering.
type Block struct {
	Type      BlockType
	Text      string
	Paragraph int
}
