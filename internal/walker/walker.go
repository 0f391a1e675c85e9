// Package walker finds analyzable source files under a root,
// honoring config excludes and .gitignore files.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/messdev/mess/pkg/config"
	"github.com/messdev/mess/pkg/profile"
)

// Walker finds source files in a directory.
type Walker struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// New creates a file walker.
func New(cfg *config.Config) *Walker {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Walker{config: cfg}
}

// findGitRoot finds the root of the git repository by looking for a
// .git directory. Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config exclude patterns with .gitignore
// files found in the tree. Config patterns use gitignore syntax.
// Matchers are rebuilt per root so one root's .gitignore never leaks
// into another.
func (w *Walker) loadExcludePatterns(root string) {
	w.matchers = nil

	var patterns []gitignore.Pattern

	for _, pattern := range w.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}
	for _, dir := range w.config.Exclude.Dirs {
		patterns = append(patterns, gitignore.ParsePattern(dir+"/", nil))
	}

	if w.config.Exclude.Gitignore {
		gitRoot := findGitRoot(root)
		if gitRoot != "" {
			fsys := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fsys, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) > 0 {
		w.matchers = append(w.matchers, gitignore.NewMatcher(patterns))
	}
}

// isExcluded checks if a path matches any exclusion pattern.
func (w *Walker) isExcluded(path string, isDir bool) bool {
	if w.config.ShouldExclude(path) {
		return true
	}
	if len(w.matchers) == 0 {
		return false
	}

	pathParts := strings.Split(path, string(filepath.Separator))
	for _, m := range w.matchers {
		if m.Match(pathParts, isDir) {
			return true
		}
	}
	return false
}

// Walk recursively collects analyzable source files under root in
// sorted order. Paths are validated to stay within the root so
// symlinks cannot pull in files from outside the tree.
func (w *Walker) Walk(root string) ([]string, error) {
	files := make([]string, 0, 1024)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	w.loadExcludePatterns(root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if relPath != "." && w.isExcluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.isExcluded(relPath, false) {
			return nil
		}
		if profile.Detect(path) != nil {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)
	return files, walkErr
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// CheckFile reports whether a single explicitly-named file should be
// analyzed.
func (w *Walker) CheckFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	dir := filepath.Dir(abs)
	w.loadExcludePatterns(dir)

	// Match the same root-relative form Walk uses so directory
	// patterns like vendor/ apply to explicitly-named files too.
	rel := filepath.Base(abs)
	if root := findGitRoot(dir); root != "" {
		if r, err := filepath.Rel(root, abs); err == nil {
			rel = r
		}
	}
	if w.isExcluded(rel, false) {
		return false, nil
	}

	return profile.Detect(path) != nil, nil
}

// FilterBySize drops files that exceed maxSize bytes. Returns the
// filtered list and the count skipped. maxSize 0 disables the filter.
func FilterBySize(files []string, maxSize int64) ([]string, int) {
	if maxSize <= 0 {
		return files, 0
	}

	filtered := make([]string, 0, len(files))
	skipped := 0

	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			skipped++
			continue
		}
		if info.Size() > maxSize {
			skipped++
			continue
		}
		filtered = append(filtered, f)
	}

	return filtered, skipped
}
