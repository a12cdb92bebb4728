package pipeline

import (
	"context"
	"fmt"
	"time"

	"prosefmt/internal/prose"
	"prosefmt/internal/storage"
)

// Migration reformats every stored scene. Scenes are independent units of
// work: each one is read, formatted, and written back under an optimistic
// version check, and a failure on one scene does not stop the run.
type Migration struct {
	Store     storage.SceneStore
	Formatter *prose.Formatter
	// DryRun formats and reports without writing anything back.
	DryRun bool
}

// SceneOutcome is the result of migrating a single scene.
type SceneOutcome struct {
	SceneID int64
	Title   string
	Changed bool
	Written bool
	Stats   prose.Stats
	Changes []prose.Change
	Err     string
}

// Report summarizes one migration run.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Scenes     []SceneOutcome

	TotalScenes  int
	TotalChanged int
	TotalErrors  int
}

// NewMigration wires a migration over a store with the given sentence bound.
func NewMigration(store storage.SceneStore, maxSentences int) *Migration {
	return &Migration{
		Store:     store,
		Formatter: prose.NewFormatter(maxSentences),
	}
}

// Run migrates all scenes and returns the aggregated report. It fails only
// when the scene list itself cannot be loaded; per-scene errors are recorded
// in the report and the run continues.
func (m *Migration) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now().UTC(), DryRun: m.DryRun}

	scenes, err := m.Store.ListScenes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}

	for _, scene := range scenes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Scenes = append(report.Scenes, m.migrateScene(ctx, scene))
	}

	report.FinishedAt = time.Now().UTC()
	report.TotalScenes = len(report.Scenes)
	for _, o := range report.Scenes {
		if o.Changed {
			report.TotalChanged++
		}
		if o.Err != "" {
			report.TotalErrors++
		}
	}
	return report, nil
}

func (m *Migration) migrateScene(ctx context.Context, scene *storage.Scene) SceneOutcome {
	outcome := SceneOutcome{SceneID: scene.ID, Title: scene.Title}

	res := m.Formatter.Format(scene.Content)
	outcome.Stats = res.Stats
	outcome.Changes = res.Changes
	outcome.Changed = res.Formatted != scene.Content

	if !outcome.Changed || m.DryRun {
		return outcome
	}

	if err := m.Store.UpdateContent(ctx, scene.ID, res.Formatted, scene.Version); err != nil {
		outcome.Err = err.Error()
		return outcome
	}
	outcome.Written = true
	return outcome
}
