package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"prosefmt/internal/config"
	"prosefmt/internal/crawler"
	"prosefmt/internal/pipeline"
	"prosefmt/internal/prose"
	"prosefmt/internal/report"
	"prosefmt/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "prosefmt",
		Short: "Narrative scene formatter",
		Long:  "prosefmt normalizes narrative prose: it splits overlong description\nparagraphs at sentence boundaries and separates interleaved dialogue\nfrom narration, leaving dialogue content untouched.",
	}
	configPath   string
	dbPath       string
	maxSentences int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "prosefmt.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the scene database (SQLite), overrides config")
	rootCmd.PersistentFlags().IntVarP(&maxSentences, "max-sentences", "m", 0, "Max sentences per description paragraph, overrides config")

	formatCmd.Flags().BoolP("verbose", "v", false, "Print the change log and stats to stderr")
	batchCmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	migrateCmd.Flags().Bool("dry-run", false, "Report what would change without writing to the database")
	migrateCmd.Flags().String("report", "", "Write a markdown report to this path")

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadConfig layers flag overrides on top of the config file.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if maxSentences > 0 {
		cfg.Format.MaxSentences = maxSentences
	}
	return cfg
}

func initStore(cfg *config.Config) *storage.SQLiteStore {
	store, err := storage.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to open scene database: %v", err)
	}
	return store
}

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format a single scene from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var content []byte
		var err error
		if len(args) > 0 {
			content, err = os.ReadFile(args[0])
		} else {
			content, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}

		res := prose.NewFormatter(cfg.Format.MaxSentences).Format(string(content))
		fmt.Println(res.Formatted)

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(os.Stderr, "Paragraphs: %d → %d, sentence splits: %d, spacing fixes: %d\n",
				res.Stats.OriginalParagraphs, res.Stats.FormattedParagraphs,
				res.Stats.SentencesSplit, res.Stats.SpacingFixed)
			if len(res.Changes) > 0 {
				fmt.Fprint(os.Stderr, report.RenderChanges(res.Changes))
			}
		}
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Reformat narrative text files under a directory in place",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		formatter := prose.NewFormatter(cfg.Format.MaxSentences)
		c := crawler.NewCrawler(cfg.Crawler.Extensions)

		total, changed := 0, 0
		err := c.ScanDir(args[0], func(f crawler.SceneFile) {
			total++
			res := formatter.Format(f.Content)
			if res.Formatted == f.Content {
				return
			}
			changed++
			if dryRun {
				fmt.Printf("📝 Would reformat %s (splits: %d, spacing: %d)\n",
					f.Path, res.Stats.SentencesSplit, res.Stats.SpacingFixed)
				return
			}
			if err := os.WriteFile(f.Path, []byte(res.Formatted), 0o644); err != nil {
				log.Fatalf("Failed to write %s: %v", f.Path, err)
			}
			fmt.Printf("✅ Reformatted %s (splits: %d, spacing: %d)\n",
				f.Path, res.Stats.SentencesSplit, res.Stats.SpacingFixed)
		})
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		fmt.Printf("🎉 Done. %d of %d files changed.\n", changed, total)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <dir>",
	Short: "Load narrative text files from a directory into the scene database",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := initStore(cfg)
		defer store.Close()

		ctx := context.Background()
		c := crawler.NewCrawler(cfg.Crawler.Extensions)

		position := 0
		err := c.ScanDir(args[0], func(f crawler.SceneFile) {
			position++
			title := strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
			scene := &storage.Scene{Title: title, Position: position, Content: f.Content}
			if err := store.SaveScene(ctx, scene); err != nil {
				log.Fatalf("Failed to save scene %q: %v", title, err)
			}
			fmt.Printf("💾 Seeded scene %d: %s\n", scene.ID, title)
		})
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		fmt.Printf("🎉 Seeded %d scenes into %s\n", position, cfg.Storage.DBPath)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Reformat every stored scene, writing back under a version check",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store := initStore(cfg)
		defer store.Close()

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		reportPath, _ := cmd.Flags().GetString("report")

		m := pipeline.NewMigration(store, cfg.Format.MaxSentences)
		m.DryRun = dryRun

		fmt.Printf("🚀 Migrating scenes in %s...\n", cfg.Storage.DBPath)
		rep, err := m.Run(context.Background())
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		for _, o := range rep.Scenes {
			switch {
			case o.Err != "":
				fmt.Printf("❌ Scene %d (%s): %s\n", o.SceneID, o.Title, o.Err)
			case o.Changed && dryRun:
				fmt.Printf("📝 Scene %d (%s): would change (splits: %d, spacing: %d)\n",
					o.SceneID, o.Title, o.Stats.SentencesSplit, o.Stats.SpacingFixed)
			case o.Changed:
				fmt.Printf("✅ Scene %d (%s): reformatted (splits: %d, spacing: %d)\n",
					o.SceneID, o.Title, o.Stats.SentencesSplit, o.Stats.SpacingFixed)
			}
		}
		fmt.Printf("🎉 Migration complete: %d of %d scenes changed, %d errors.\n",
			rep.TotalChanged, rep.TotalScenes, rep.TotalErrors)

		if reportPath != "" {
			if err := report.WriteMarkdown(reportPath, rep); err != nil {
				log.Fatalf("Failed to write report: %v", err)
			}
			fmt.Printf("📄 Report written to %s\n", reportPath)
		}
	},
}
