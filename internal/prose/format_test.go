package prose

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longDescription = "Sarah walked into the room. The walls were painted a dull gray, " +
	"and the furniture was sparse. She noticed a desk in the corner with papers scattered " +
	"across it. The window overlooked a busy street, and she could hear the sounds of " +
	"traffic below."

func TestFormat_SplitsLongDescription(t *testing.T) {
	content := longDescription +
		"\n\n\"What are you doing here?\" Marcus asked." +
		"\n\n\"I could ask you the same thing,\" Sarah replied." +
		"\n\n\"This is my office,\" Marcus said."

	res := Format(content)

	assert.Equal(t, 1, res.Stats.SentencesSplit)
	assert.Equal(t, 0, res.Stats.SpacingFixed)

	var splits []Change
	for _, c := range res.Changes {
		if c.Kind == ChangeParagraphSplit {
			splits = append(splits, c)
		}
	}
	require.Len(t, splits, 1)
	assert.Contains(t, splits[0].Description, "4 sentences")
	assert.Contains(t, splits[0].Description, "2 paragraphs")

	// 4 input paragraphs become 5: the description splits 3+1, dialogue is untouched.
	assert.Equal(t, 4, res.Stats.OriginalParagraphs)
	assert.Equal(t, 5, res.Stats.FormattedParagraphs)

	paras := strings.Split(res.Formatted, "\n\n")
	require.Len(t, paras, 5)
	assert.Equal(t, 3, CountSentences(paras[0]))
	assert.Equal(t, 1, CountSentences(paras[1]))
	assert.Equal(t, `"What are you doing here?" Marcus asked.`, paras[2])
}

func TestFormat_SeparatesMixedParagraph(t *testing.T) {
	content := "The walls were painted a dull gray.\n\"What are you doing here?\" Marcus asked."

	res := Format(content)

	assert.GreaterOrEqual(t, res.Stats.SpacingFixed, 1)
	assert.Equal(t, "The walls were painted a dull gray.\n\n\"What are you doing here?\" Marcus asked.", res.Formatted)

	var spacing []Change
	for _, c := range res.Changes {
		if c.Kind == ChangeSpacingAdded {
			spacing = append(spacing, c)
		}
	}
	require.Len(t, spacing, 1)
	assert.Contains(t, spacing[0].Description, "description")
	assert.Contains(t, spacing[0].Description, "dialogue")
}

func TestFormat_WellFormedInputUnchanged(t *testing.T) {
	content := "The station stood empty at dawn. A single light burned in the office.\n\n" +
		"\"Anyone here?\" she called.\n\n" +
		"Dust drifted in the pale light. Her footsteps echoed off the tiles.\n\n" +
		"\"We open at nine,\" a voice answered."

	res := Format(content)

	assert.Empty(t, res.Changes)
	assert.Equal(t, content, res.Formatted)
	assert.Equal(t, 0, res.Stats.SentencesSplit)
	assert.Equal(t, 0, res.Stats.SpacingFixed)
}

func TestFormat_AbbreviationsSurviveSplitting(t *testing.T) {
	res := Format("Dr. Smith walked in. He nodded at Mrs. Jones.")
	assert.Equal(t, "Dr. Smith walked in. He nodded at Mrs. Jones.", res.Formatted)
	assert.Equal(t, 2, CountSentences(res.Formatted))
}

func TestFormat_DialogueNeverSplit(t *testing.T) {
	long := `"I told you before. I told you twice. I told you three times. ` +
		`And I will tell you again. Nobody is coming," he said.`
	content := long + "\n\n" + long + "\n\n" + long

	res := Format(content)

	assert.Equal(t, 0, res.Stats.SentencesSplit)
	assert.Equal(t, content, res.Formatted)
}

func TestFormat_EmptyInput(t *testing.T) {
	res := Format("")
	assert.Equal(t, "", res.Formatted)
	assert.Empty(t, res.Changes)
	assert.Equal(t, Stats{}, res.Stats)

	res = Format("  \n\n \t ")
	assert.Equal(t, "", res.Formatted)
	assert.Equal(t, Stats{}, res.Stats)
}

func TestFormat_Deterministic(t *testing.T) {
	content := longDescription + "\n\"Hello?\" she said.\nThe echo faded."
	first := Format(content)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Format(content))
	}
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		longDescription,
		"The walls were painted a dull gray.\n\"What are you doing here?\" Marcus asked.",
		longDescription + "\n\n\"Run,\" he whispered.\nShe did not move. The clock ticked on. " +
			"Somewhere a door slammed. The lights flickered twice.",
		"",
		"one line no terminator",
	}
	for _, in := range inputs {
		once := Format(in)
		twice := Format(once.Formatted)
		assert.Equal(t, once.Formatted, twice.Formatted, "input: %q", in)
		assert.Empty(t, twice.Changes, "input: %q", in)
	}
}

func TestFormat_SentenceBoundHolds(t *testing.T) {
	content := longDescription + " The floorboards groaned underfoot. A faint draft " +
		"carried the smell of old paper. She pulled the curtain aside."

	res := NewFormatter(3).Format(content)

	for _, b := range ParseBlocks(res.Formatted) {
		if b.Type == Description {
			assert.LessOrEqual(t, CountSentences(b.Text), 3)
		}
	}
}

func TestFormat_DialoguePreserved(t *testing.T) {
	content := longDescription + "\n\"Don't touch that,\" Marcus said.\n\"Why not?\"\n" +
		"He did not answer her question at all."

	res := Format(content)

	collect := func(blocks []Block) string {
		var sb strings.Builder
		for _, b := range blocks {
			if b.Type == Dialogue {
				sb.WriteString(b.Text)
				sb.WriteString("\n")
			}
		}
		return sb.String()
	}
	assert.Equal(t, collect(ParseBlocks(content)), collect(ParseBlocks(res.Formatted)))
}

func TestFormat_Lossless(t *testing.T) {
	contents := []string{
		longDescription,
		longDescription + "\n\"Hey.\"\nShe froze. He waited. The rain kept on. Nothing else happened.",
		"Dr. Smith walked in. He nodded at Mrs. Jones.",
	}
	squeeze := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}
	for _, c := range contents {
		res := Format(c)
		assert.Equal(t, squeeze(c), squeeze(res.Formatted))
	}
}

func TestNewFormatter_InvalidLimitFallsBack(t *testing.T) {
	res := NewFormatter(0).Format(longDescription)
	assert.Equal(t, 1, res.Stats.SentencesSplit)
}

func TestFormatter_CustomLimit(t *testing.T) {
	res := NewFormatter(2).Format(longDescription)
	// 4 sentences at a bound of 2 give two paragraphs of 2.
	paras := strings.Split(res.Formatted, "\n\n")
	require.Len(t, paras, 2)
	assert.Equal(t, 2, CountSentences(paras[0]))
	assert.Equal(t, 2, CountSentences(paras[1]))
	assert.Equal(t, 1, res.Stats.SentencesSplit)
}
