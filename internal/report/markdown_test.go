package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prosefmt/internal/pipeline"
	"prosefmt/internal/prose"
)

func sampleReport() *pipeline.Report {
	return &pipeline.Report{
		StartedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt:   time.Date(2026, 8, 1, 10, 0, 2, 0, time.UTC),
		TotalScenes:  2,
		TotalChanged: 1,
		Scenes: []pipeline.SceneOutcome{
			{
				SceneID: 1,
				Title:   "Opening",
				Changed: true,
				Written: true,
				Stats: prose.Stats{
					OriginalParagraphs:  2,
					FormattedParagraphs: 3,
					SentencesSplit:      1,
					SpacingFixed:        1,
				},
				Changes: []prose.Change{
					{Kind: prose.ChangeParagraphSplit, Location: "paragraph 0", Description: "split 4 sentences into 2 paragraphs"},
					{Kind: prose.ChangeSpacingAdded, Location: "paragraph 0", Description: "separated description from dialogue"},
				},
			},
			{SceneID: 2, Title: "Interlude"},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	assert.Contains(t, md, "# Scene Formatting Report")
	assert.Contains(t, md, "- Scenes: 2")
	assert.Contains(t, md, "- Changed: 1")
	assert.Contains(t, md, "## Scene 1: Opening")
	assert.Contains(t, md, "- Paragraphs: 2 → 3")
	assert.Contains(t, md, "split 4 sentences into 2 paragraphs")
	assert.Contains(t, md, "## Scene 2: Interlude")
	assert.Contains(t, md, "No changes.")
	assert.NotContains(t, md, "Dry run")
}

func TestRenderMarkdown_DryRun(t *testing.T) {
	r := sampleReport()
	r.DryRun = true
	assert.Contains(t, RenderMarkdown(r), "Dry run")
}

func TestRenderMarkdown_Error(t *testing.T) {
	r := sampleReport()
	r.Scenes[1].Err = "scene version conflict"
	assert.Contains(t, RenderMarkdown(r), "**Error:** scene version conflict")
}

func TestRenderChanges(t *testing.T) {
	out := RenderChanges([]prose.Change{
		{Kind: prose.ChangeSpacingAdded, Location: "paragraph 3", Description: "separated dialogue from description"},
	})
	assert.Equal(t, "- [spacing_added] paragraph 3: separated dialogue from description\n", out)
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.md")
	require.NoError(t, WriteMarkdown(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Scene Formatting Report")
}
