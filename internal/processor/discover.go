package processor

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"imgcrop/pkg/imgutil"
)

var supportedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// IsSupported reports whether path has an extension the cropper accepts.
func IsSupported(path string) bool {
	return supportedExtensions[imgutil.Ext(path)]
}

// Discover walks root and returns one WorkItem per supported image file.
// Every destination is outputDir joined with the source's base name, so
// equally named files from different subdirectories share a destination.
// Symbolic links are not followed.
func Discover(root, outputDir string, logger *zap.Logger) ([]WorkItem, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	item := func(src string) WorkItem {
		return WorkItem{Source: src, Destination: filepath.Join(outputDir, filepath.Base(src))}
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() || !IsSupported(root) {
			return nil, nil
		}
		return []WorkItem{item(root)}, nil
	}

	var items []WorkItem
	err = fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == "." {
				return walkErr
			}
			logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(walkErr))
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !IsSupported(path) {
			return nil
		}

		items = append(items, item(filepath.Join(root, filepath.FromSlash(path))))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Collision is a destination written by more than one source. The last
// source to finish wins.
type Collision struct {
	Destination string
	Sources     []string
}

// Collisions lists destinations shared by several items, sorted by destination.
func Collisions(items []WorkItem) []Collision {
	byDest := make(map[string][]string)
	for _, it := range items {
		byDest[it.Destination] = append(byDest[it.Destination], it.Source)
	}

	var out []Collision
	for dest, sources := range byDest {
		if len(sources) < 2 {
			continue
		}
		out = append(out, Collision{Destination: dest, Sources: sources})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Destination < out[j].Destination })
	return out
}
