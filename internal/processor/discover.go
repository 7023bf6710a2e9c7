package processor

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"webpconv/pkg/imgutil"
)

// CollectInputs expands CLI arguments into an ordered list of input files.
// Files are kept in argument order whatever their extension; directories are
// walked recursively and contribute files with an image extension in lexical
// order. Anything under skipDir (typically the output directory) is ignored
// during walks. Duplicate paths are dropped after their first occurrence.
func CollectInputs(args []string, skipDir string) ([]string, error) {
	var skipAbs string
	if skipDir != "" {
		if abs, err := filepath.Abs(skipDir); err == nil {
			skipAbs = filepath.Clean(abs)
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, arg := range args {
		absArg, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absArg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(absArg)
			continue
		}

		skipInside := skipAbs != "" && skipAbs != filepath.Clean(absArg) && isWithin(skipAbs, absArg)
		fsys := os.DirFS(absArg)
		err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			full := filepath.Join(absArg, path)
			if d.IsDir() {
				if skipInside && isWithin(full, skipAbs) {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !imgutil.HasInputExtension(path) {
				return nil
			}
			add(full)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// DefaultOutputDir is the parent directory of the first selected file.
func DefaultOutputDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return filepath.Dir(paths[0])
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
