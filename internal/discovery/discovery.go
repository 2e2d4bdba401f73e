package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ponharu/sort-json/internal/config"
	"github.com/ponharu/sort-json/internal/errors"
)

// Options controls one discovery pass.
type Options struct {
	// Patterns are the positional arguments: literal paths or globs,
	// relative to the working directory. When empty, Include is used.
	Patterns []string
	// Include are the configuration's fallback patterns.
	Include []string
	// Ignore patterns exclude matched files (config ignore plus any
	// --ignore flags), using the same glob dialect as the config resolver.
	Ignore []string
	// UseGitignore also excludes files matched by dir's .gitignore.
	UseGitignore bool
}

// Discover expands patterns relative to dir into a sorted, deduplicated list
// of file paths. Every discovered path is filtered through the ignore
// patterns and, when enabled, the .gitignore rules. A pattern that matches
// nothing contributes nothing; only the aggregate result matters to callers.
func Discover(dir string, opts Options) ([]string, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = opts.Include
	}

	excluded, err := newExclusions(dir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	files := []string{}
	for _, pattern := range patterns {
		matches, err := expand(dir, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			if excluded.matches(relSlash(dir, match)) {
				continue
			}
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

// expand resolves a single positional pattern. A pattern naming an existing
// regular file is taken as-is; anything else goes through glob expansion.
// Wildcards never match hidden files: a dotfile is only discovered when the
// pattern spells out the dot-prefixed segment, or names the file directly.
func expand(dir, pattern string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, full)
	}

	if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() {
		return []string{full}, nil
	}

	matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.NewPatternError(fmt.Sprintf("invalid glob pattern '%s'", pattern), err)
	}
	if allowsHidden(pattern) {
		return matches, nil
	}
	visible := make([]string, 0, len(matches))
	for _, match := range matches {
		if hasHiddenSegment(relSlash(dir, match)) {
			continue
		}
		visible = append(visible, match)
	}
	return visible, nil
}

// allowsHidden reports whether the pattern itself names a hidden segment,
// which opts the caller into matching dotfiles.
func allowsHidden(pattern string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(pattern), "/") {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}
	return false
}

func hasHiddenSegment(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}
	return false
}

// relSlash rewrites path relative to dir with forward slashes, the form the
// ignore patterns are written against.
func relSlash(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// exclusions is the merged ignore state for one discovery pass.
type exclusions struct {
	patterns []string
	git      []gitRule
}

func newExclusions(dir string, opts Options) (*exclusions, error) {
	excluded := &exclusions{patterns: opts.Ignore}
	if opts.UseGitignore {
		rules, err := readGitignore(filepath.Join(dir, ".gitignore"))
		if err != nil {
			return nil, err
		}
		excluded.git = rules
	}
	return excluded, nil
}

func (e *exclusions) matches(relPath string) bool {
	for _, pattern := range e.patterns {
		if config.MatchPattern(pattern, relPath) {
			return true
		}
	}
	return e.gitIgnored(relPath)
}

// gitIgnored applies the .gitignore rules in file order; the last matching
// rule decides, so a later "!pattern" can re-include an earlier exclusion.
func (e *exclusions) gitIgnored(relPath string) bool {
	ignored := false
	for _, rule := range e.git {
		if rule.matches(relPath) {
			ignored = !rule.negate
		}
	}
	return ignored
}

// gitRule is one parsed .gitignore line.
type gitRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

func readGitignore(path string) ([]gitRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIOError(fmt.Sprintf("failed to read '%s'", path), err)
	}

	var rules []gitRule
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(line, "\r"))
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		rule := gitRule{pattern: trimmed}
		if strings.HasPrefix(rule.pattern, "!") {
			rule.negate = true
			rule.pattern = rule.pattern[1:]
		}
		if strings.HasSuffix(rule.pattern, "/") {
			rule.dirOnly = true
			rule.pattern = strings.TrimSuffix(rule.pattern, "/")
		}
		if strings.HasPrefix(rule.pattern, "/") {
			rule.anchored = true
			rule.pattern = strings.TrimPrefix(rule.pattern, "/")
		}
		if rule.pattern == "" {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// matches applies one rule to a slash-separated file path. Patterns without
// a slash match any path segment, like git does; patterns with a slash are
// anchored to the root of the tree. A directory pattern matches everything
// beneath the directory but never the path itself.
func (r gitRule) matches(relPath string) bool {
	if !r.anchored && !strings.Contains(r.pattern, "/") {
		segments := strings.Split(relPath, "/")
		limit := len(segments)
		if r.dirOnly {
			// The final segment is the file itself, not a directory.
			limit--
		}
		for i := 0; i < limit; i++ {
			if ok, _ := doublestar.Match(r.pattern, segments[i]); ok {
				return true
			}
		}
		return false
	}

	if !r.dirOnly {
		if ok, _ := doublestar.Match(r.pattern, relPath); ok {
			return true
		}
	}
	ok, _ := doublestar.Match(r.pattern+"/**", relPath)
	return ok
}
