package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneFile is one narrative text file discovered during a scan.
type SceneFile struct {
	Path    string
	Content string
}

// Crawler scans a directory tree for narrative text files.
type Crawler struct {
	extensions map[string]bool
	ignored    []string
}

// NewCrawler creates a crawler that picks up files with the given extensions
// (e.g. ".txt", ".md"). Nil or empty defaults to .txt and .md.
func NewCrawler(extensions []string) *Crawler {
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md"}
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &Crawler{
		extensions: exts,
		ignored:    []string{".git", "node_modules", "vendor"},
	}
}

// ScanDir walks the root directory and streams every matching file to the
// callback in deterministic (sorted) path order. Files that cannot be read
// are skipped rather than failing the whole scan.
func (c *Crawler) ScanDir(root string, onFile func(SceneFile)) error {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !c.extensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	sort.Strings(paths)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		onFile(SceneFile{Path: path, Content: string(data)})
	}
	return nil
}
