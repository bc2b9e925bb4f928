// Package discovery finds FSH files matching glob patterns and inputs
// supplied on the command line (specific files, directories, or globs).
package discovery

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoveredFile is a single FSH file discovered during file discovery.
type DiscoveredFile struct {
	// Path is the file's path. For explicit file inputs this preserves the
	// original path (relative or absolute); for files found via directory
	// or glob expansion this is absolute.
	Path string

	// ConfigRoot is the directory used for project config discovery,
	// typically the directory containing the file.
	ConfigRoot string
}

// Options configures file discovery behavior.
type Options struct {
	// Patterns are the glob patterns to match (default: DefaultPatterns()).
	// Supports doublestar patterns like "**/*.fsh".
	Patterns []string

	// ExcludePatterns are glob patterns to exclude from results.
	ExcludePatterns []string
}

// DefaultPatterns returns the default FSH file pattern.
func DefaultPatterns() []string {
	return []string{"*.fsh"}
}

// Discover finds FSH files matching the given inputs. Each input can be a
// specific file path, a directory (searched recursively), or a glob
// pattern. Results are deduplicated by absolute path and sorted.
func Discover(inputs []string, opts Options) ([]DiscoveredFile, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	seen := make(map[string]bool)
	var results []DiscoveredFile

	for _, input := range inputs {
		discovered, err := discoverInput(input, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}

	slices.SortFunc(results, func(a, b DiscoveredFile) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return results, nil
}

func discoverInput(input string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	if containsGlobChars(input) {
		return discoverGlob(input, opts, seen)
	}

	info, err := os.Stat(input)
	if err == nil {
		if info.IsDir() {
			return discoverDirectory(input, opts, seen)
		}
		return discoverFile(input, seen)
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	return discoverGlob(input, opts, seen)
}

func containsGlobChars(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', ']':
			return true
		}
	}
	return false
}

func discoverFile(path string, seen map[string]bool) ([]DiscoveredFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if seen[absPath] {
		return nil, nil
	}
	seen[absPath] = true

	return []DiscoveredFile{{
		Path:       path,
		ConfigRoot: filepath.Dir(absPath),
	}}, nil
}

func discoverDirectory(dir string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, pattern := range opts.Patterns {
		patterns = append(patterns,
			filepath.Join(absDir, "**", pattern),
			filepath.Join(absDir, pattern),
		)
	}

	var results []DiscoveredFile
	for _, pattern := range patterns {
		discovered, err := globMatches(pattern, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}
	return results, nil
}

func globMatches(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	var results []DiscoveredFile
	for _, match := range matches {
		absPath, err := filepath.Abs(match)
		if err != nil {
			return nil, err
		}
		if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
			continue
		}
		seen[absPath] = true
		results = append(results, DiscoveredFile{
			Path:       absPath,
			ConfigRoot: filepath.Dir(absPath),
		})
	}
	return results, nil
}

func discoverGlob(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	return globMatches(pattern, opts, seen)
}

// isExcluded reports whether absPath matches any exclusion pattern.
// Relative patterns (no leading "/" or "**/") are matched at any directory
// depth by prepending "**/".
func isExcluded(absPath string, excludePatterns []string) bool {
	pathSlash := filepath.ToSlash(absPath)

	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)
		if !strings.HasPrefix(pattern, "/") && !strings.HasPrefix(pattern, "**/") {
			pattern = "**/" + pattern
		}
		if matched, err := doublestar.Match(pattern, pathSlash); err == nil && matched {
			return true
		}
	}
	return false
}
