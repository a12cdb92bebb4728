package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prosefmt/internal/pipeline"
	"prosefmt/internal/prose"
)

// RenderMarkdown produces a human-readable migration report: run totals
// followed by a per-scene breakdown of what was normalized.
func RenderMarkdown(r *pipeline.Report) string {
	var sb strings.Builder

	sb.WriteString("# Scene Formatting Report\n\n")
	if r.DryRun {
		sb.WriteString("**Dry run** — no content was written.\n\n")
	}
	sb.WriteString(fmt.Sprintf("- Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("- Finished: %s\n", r.FinishedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("- Scenes: %d\n", r.TotalScenes))
	sb.WriteString(fmt.Sprintf("- Changed: %d\n", r.TotalChanged))
	sb.WriteString(fmt.Sprintf("- Errors: %d\n", r.TotalErrors))

	for _, o := range r.Scenes {
		sb.WriteString(fmt.Sprintf("\n## Scene %d: %s\n\n", o.SceneID, o.Title))

		if o.Err != "" {
			sb.WriteString(fmt.Sprintf("**Error:** %s\n", o.Err))
			continue
		}
		if !o.Changed {
			sb.WriteString("No changes.\n")
			continue
		}

		sb.WriteString(fmt.Sprintf("- Paragraphs: %d → %d\n",
			o.Stats.OriginalParagraphs, o.Stats.FormattedParagraphs))
		sb.WriteString(fmt.Sprintf("- Sentence splits: %d\n", o.Stats.SentencesSplit))
		sb.WriteString(fmt.Sprintf("- Spacing fixes: %d\n", o.Stats.SpacingFixed))

		if len(o.Changes) > 0 {
			sb.WriteString("\n")
			sb.WriteString(RenderChanges(o.Changes))
		}
	}

	return sb.String()
}

// RenderChanges renders a change log as a markdown bullet list.
func RenderChanges(changes []prose.Change) string {
	var sb strings.Builder
	for _, c := range changes {
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", c.Kind, c.Location, c.Description))
	}
	return sb.String()
}

// WriteMarkdown renders the report and writes it to path, creating parent
// directories as needed.
func WriteMarkdown(path string, r *pipeline.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
