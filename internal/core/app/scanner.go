// # internal/core/app/scanner.go
package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"minibun/internal/core/errors"
	"minibun/internal/engine/modmap"
)

// LoadModules walks the configured source directories and materializes the
// ordered module map. Keys follow the literal-specifier convention: the
// slash-separated path relative to its source root, prefixed "./". No path
// resolution or extension inference happens beyond that.
func (a *App) LoadModules() (*modmap.Map, error) {
	dirGlobs := make([]glob.Glob, 0, len(a.Config.Exclude.Dirs))
	for _, p := range a.Config.Exclude.Dirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(a.Config.Exclude.Files))
	for _, p := range a.Config.Exclude.Files {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	extensions := make(map[string]bool, len(a.Config.Extensions))
	for _, ext := range a.Config.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	modules := modmap.New()
	for _, root := range a.Config.SourceDirs {
		var paths []string
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !extensions[strings.ToLower(filepath.Ext(base))] {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, err
		}

		// Deterministic map order regardless of walk quirks.
		sort.Strings(paths)
		for _, path := range paths {
			id, err := moduleID(root, path)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.AddContext(
					errors.Wrap(err, errors.CodeInternal, "read module source"),
					errors.CtxModule, id)
			}
			modules.Set(id, string(data))
		}
	}

	return modules, nil
}

func moduleID(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return "./" + filepath.ToSlash(rel), nil
}
