package scanner

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns cover common smart contract source extensions
var DefaultPatterns = []string{
	"**/*.sol",
	"**/*.vy",
	"**/*.cairo",
	"**/*.rs",
	"**/*.move",
}

// excludedNameFragment drops test fixtures from analysis
const excludedNameFragment = "test"

// Selector resolves a source directory and patterns into candidate files
type Selector struct {
	logger *log.Logger
}

// New creates a new Selector
func New(logger *log.Logger) *Selector {
	return &Selector{logger: logger}
}

// Select returns the regular, non-test files under sourceDir matched by patterns.
// With no patterns the DefaultPatterns are applied. An empty result is not an error.
func (s *Selector) Select(sourceDir string, patterns []string) ([]string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", sourceDir)
	}

	var candidates []string
	if len(patterns) > 0 {
		for _, pattern := range patterns {
			candidates = append(candidates, s.expandPattern(sourceDir, pattern)...)
		}
	} else {
		for _, pattern := range DefaultPatterns {
			candidates = append(candidates, s.glob(sourceDir, pattern)...)
		}
	}

	return filterFiles(candidates), nil
}

// expandPattern globs the pattern and also accepts it as a literal relative path,
// so exact filenames containing glob metacharacters still resolve.
func (s *Selector) expandPattern(sourceDir, pattern string) []string {
	pat := strings.TrimPrefix(pattern, "./")

	matches := s.glob(sourceDir, pat)

	direct := pat
	if !filepath.IsAbs(direct) {
		direct = filepath.Join(sourceDir, filepath.FromSlash(pat))
	}
	if isRegularFile(direct) && !contains(matches, direct) {
		matches = append(matches, direct)
	}

	return matches
}

func (s *Selector) glob(sourceDir, pattern string) []string {
	matches, err := doublestar.Glob(os.DirFS(sourceDir), filepath.ToSlash(pattern))
	if err != nil {
		s.logger.Printf("Warning: invalid pattern %q: %v", pattern, err)
		return nil
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(sourceDir, filepath.FromSlash(m)))
	}
	return paths
}

// filterFiles drops duplicates, non-regular files and test files
func filterFiles(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	files := make([]string, 0, len(candidates))

	for _, path := range candidates {
		key := identity(path)
		if seen[key] {
			continue
		}
		seen[key] = true

		if !isRegularFile(path) {
			continue
		}
		if IsTestFile(path) {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files
}

// IsTestFile reports whether the file name looks like a test fixture
func IsTestFile(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), excludedNameFragment)
}

func identity(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func contains(paths []string, target string) bool {
	key := identity(target)
	for _, p := range paths {
		if identity(p) == key {
			return true
		}
	}
	return false
}
