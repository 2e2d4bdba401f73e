package config

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Resolve computes the effective settings for path by matching it against
// the configured file rules. When several patterns match, the one with the
// highest specificity score wins; ties keep the first declared rule. With no
// matching rule the config-level defaults are returned and MatchedPattern
// stays empty.
func (c *Config) Resolve(path string) Resolution {
	resolution := Resolution{SortFrom: c.SortFrom}

	slashed := filepath.ToSlash(path)
	best := -1
	bestScore := 0
	for i := range c.Files {
		rule := &c.Files[i]
		if !rule.MatchesPath(slashed) {
			continue
		}
		score := Specificity(rule.Pattern)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 {
		return resolution
	}

	rule := c.Files[best]
	resolution.MatchedPattern = rule.Pattern
	if rule.Override.SortFrom != nil {
		resolution.SortFrom = *rule.Override.SortFrom
	}
	if rule.Override.Ignore != nil {
		resolution.Ignore = *rule.Override.Ignore
	}
	if len(rule.Override.SortOrder) > 0 {
		resolution.SortOrder = rule.Override.SortOrder
	}
	return resolution
}

// MatchesPath checks if this rule's pattern matches the given slash-separated path
func (r *FileRule) MatchesPath(path string) bool {
	if r.regex == nil {
		// Compile if not already compiled (rules built outside Load)
		r.regex = patternRegexp(r.Pattern)
	}
	return r.regex.MatchString(path)
}

// compilePatterns compiles all file rule patterns in the config
func (c *Config) compilePatterns() {
	for i := range c.Files {
		rule := &c.Files[i]
		rule.regex = patternRegexp(rule.Pattern)
	}
}

// MatchPattern reports whether a glob-like pattern matches the
// slash-separated path. "**" matches across path separators, a single "*"
// matches within one segment, and a leading "**/" also matches the
// zero-segment case, so "**/*.json" matches both "bar.json" and
// "foo/bar.json". Everything else in the pattern matches literally.
func MatchPattern(pattern, path string) bool {
	return patternRegexp(pattern).MatchString(path)
}

// patternRegexp translates a glob-like pattern into an anchored regular
// expression. All regexp metacharacters other than "*" are quoted, so the
// translation cannot fail to compile.
func patternRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")

	rest := pattern
	if strings.HasPrefix(rest, "**/") {
		b.WriteString("(?:.*/)?")
		rest = rest[len("**/"):]
	}
	for i := 0; i < len(rest); {
		switch {
		case strings.HasPrefix(rest[i:], "**"):
			b.WriteString(".*")
			i += 2
		case rest[i] == '*':
			b.WriteString("[^/]*")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(rest[i])))
			i++
		}
	}
	b.WriteString("$")

	return regexp.MustCompile(b.String())
}

// Specificity scores a pattern for override precedence: literal patterns
// with no wildcards score highest, deeper paths beat shallow ones, globstars
// are penalized, and pattern length breaks what remains.
func Specificity(pattern string) int {
	score := 0
	if !strings.Contains(pattern, "*") {
		score += 1000
	}
	globstars := strings.Count(pattern, "**")
	singles := strings.Count(pattern, "*") - 2*globstars

	score += 10 * strings.Count(pattern, "/")
	score -= 5 * globstars
	score += singles
	score += len(pattern)
	return score
}
