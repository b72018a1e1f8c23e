package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/astforge/astforge/internal/config"
	"github.com/astforge/astforge/internal/driver"
)

// sourceTypeForExt maps a file extension to the grammar subset the
// parser should accept for it. ".js"/".mjs"/".cjs" never enable JSX.
func sourceTypeForExt(ext string) (config.SourceType, bool) {
	switch ext {
	case ".js":
		return config.SourceJS, true
	case ".mjs":
		return config.SourceMJS, true
	case ".cjs":
		return config.SourceCJS, true
	case ".jsx":
		return config.SourceJSX, true
	case ".ts", ".mts", ".cts":
		return config.SourceTS, true
	case ".tsx":
		return config.SourceTSX, true
	default:
		return 0, false
	}
}

// resolveInputs walks every --path entry, dropping any file whose
// walked path (as prefixed by its --path root) or base name matches
// one of the --ignore globs, and turns the
// survivors into driver.Input values. It returns a usage error if a
// path doesn't exist or if nothing survives the ignore filter.
func resolveInputs(paths, ignore []string) ([]driver.Input, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var inputs []driver.Input
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("astforge: %w", err)
		}
		walkErr := filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			sourceType, ok := sourceTypeForExt(strings.ToLower(filepath.Ext(p)))
			if !ok {
				return nil
			}
			if ignored(p, ignore) {
				return nil
			}
			content, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			inputs = append(inputs, driver.Input{
				Path:    p,
				Pretty:  prettyPath(root, p, info),
				Content: string(content),
				Options: config.ParseOptions{SourceType: sourceType, ParseRegularExpression: true},
			})
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("astforge: %w", walkErr)
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("astforge: no matching .js/.jsx/.ts/.tsx files under %v", paths)
	}
	return inputs, nil
}

func prettyPath(root, p string, rootInfo os.FileInfo) string {
	if rootInfo.IsDir() {
		if rel, err := filepath.Rel(root, p); err == nil {
			return filepath.Join(root, rel)
		}
	}
	return p
}

func ignored(p string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, p); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, filepath.Base(p)); ok {
			return true
		}
	}
	return false
}

func threadCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}
