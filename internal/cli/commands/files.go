package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// excludeMatcher reports whether a path was excluded with --exclude.
type excludeMatcher []glob.Glob

func compileExcludes(patterns []string) (excludeMatcher, error) {
	m := make(excludeMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		m = append(m, g)
	}
	return m, nil
}

func (m excludeMatcher) Match(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, g := range m {
		if g.Match(slashed) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

// sourceLanguage returns forced when set, otherwise the language implied by
// the extension of path. A file the compiler would not know how to read is
// an error rather than a command without -x.
func sourceLanguage(path string, forced linter.Language) (linter.Language, error) {
	if forced != linter.LanguageUnknown {
		return forced, nil
	}
	if lang := linter.LanguageForPath(path); lang != linter.LanguageUnknown {
		return lang, nil
	}
	return linter.LanguageUnknown, fmt.Errorf("cannot tell whether %s is C or C++; use --syntax c or --syntax c++", path)
}

// resolveSources expands args into a sorted, deduplicated list of files.
// Directories are walked for C, C++ and sketch sources, skipping hidden
// directories. Explicitly named files are kept whatever their extension;
// sourceLanguage rejects them later unless --syntax is given.
func resolveSources(args []string, exclude excludeMatcher) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	addFile := func(path string) {
		if exclude.Match(path) {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %q: %w", arg, err)
		}
		if !info.IsDir() {
			addFile(arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && (strings.HasPrefix(d.Name(), ".") || exclude.Match(path)) {
					return filepath.SkipDir
				}
				return nil
			}
			if linter.IsSource(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}

	sort.Strings(result)
	return result, nil
}
