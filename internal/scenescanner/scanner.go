package scenescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/lightfield/internal/core/scene"
)

// SceneEntry represents a loadable scene file in the scenes directory
type SceneEntry struct {
	Name      string // Display name from the file (falls back to the file name)
	Path      string // Path to the scene file
	Obstacles int    // Number of obstacles in the scene
}

// ScanSceneDirectory scans a directory for scene files.
// Files that fail to load are returned in skipped rather than aborting the scan.
func ScanSceneDirectory(dir string) (entries []SceneEntry, skipped map[string]error, err error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read scene directory: %w", err)
	}

	skipped = make(map[string]error)
	for _, entry := range dirEntries {
		// Skip directories
		if entry.IsDir() {
			continue
		}

		// Only JSON files, and skip hidden files
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".json") || strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		s, err := scene.Load(path)
		if err != nil {
			skipped[path] = err
			continue
		}

		display := s.Name()
		if display == "" {
			display = strings.TrimSuffix(name, filepath.Ext(name))
		}
		entries = append(entries, SceneEntry{
			Name:      display,
			Path:      path,
			Obstacles: s.Len(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, skipped, nil
}
