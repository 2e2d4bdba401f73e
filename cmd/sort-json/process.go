package main

import (
	"fmt"
	"os"
	"path/filepath"

	sortjson "github.com/ponharu/sort-json"
	"github.com/ponharu/sort-json/internal/config"
	"github.com/ponharu/sort-json/internal/errors"
)

// Status classifies the outcome of processing one file.
type Status int

const (
	// StatusUnchanged means the file already had its canonical form.
	StatusUnchanged Status = iota
	// StatusSorted means the file was rewritten with sorted output.
	StatusSorted
	// StatusChanged means the canonical form differs but nothing was
	// written (check mode or --no-write).
	StatusChanged
	// StatusSkipped means the file was deliberately not processed.
	StatusSkipped
	// StatusError means the file could not be processed.
	StatusError
)

// Result is the outcome of processing a single file.
type Result struct {
	Path       string
	Status     Status
	Message    string
	Err        error
	Resolution config.Resolution
	SortFrom   int
}

// processFile runs the full pipeline for one file: read, resolve per-file
// configuration, detect/strip comments, parse, sort, format, then compare or
// write. It never returns an error; failures degrade to a StatusError result
// so the rest of the batch keeps going.
func processFile(ctx *Context, cfg *config.Config, path string) Result {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{
			Path:   path,
			Status: StatusError,
			Err:    errors.NewIOError(fmt.Sprintf("failed to read file '%s'", path), err),
		}
	}

	resolution := cfg.Resolve(relPath(ctx.Dir, path))

	// Effective depth: an explicit --sort-from beats the resolved value.
	sortFrom := resolution.SortFrom
	if CLI.SortFrom >= 0 {
		sortFrom = CLI.SortFrom
	}

	result := Result{Path: path, Resolution: resolution, SortFrom: sortFrom}

	if resolution.Ignore {
		result.Status = StatusSkipped
		result.Message = "ignored by configuration"
		return result
	}

	text := string(raw)
	if sortjson.HasComments(text) {
		if !CLI.Force {
			result.Status = StatusSkipped
			result.Message = "contains comments (use --force to strip and sort)"
			return result
		}
		text = sortjson.StripComments(text)
	}

	value, err := sortjson.ParseString(text)
	if err != nil {
		result.Status = StatusError
		result.Err = err
		return result
	}

	sorted := sortjson.Sort(value, sortFrom, resolution.SortOrder)
	opts := sortjson.FormatOptions{Indent: CLI.Indent, Tabs: CLI.Tabs}
	output := sortjson.Format(sorted, opts)

	if output == string(raw) {
		result.Status = StatusUnchanged
		return result
	}

	if CLI.Check || !CLI.Write {
		result.Status = StatusChanged
		result.Message = "not in canonical form"
		if CLI.Verbose {
			// The formatter never reorders, so rendering the unsorted
			// value tells ordering changes apart from whitespace ones.
			if sortjson.Format(value, opts) == output {
				result.Message = "formatting differs"
			} else {
				result.Message = "key order differs"
			}
		}
		return result
	}

	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		result.Status = StatusError
		result.Err = errors.NewIOError(fmt.Sprintf("failed to write file '%s'", path), err)
		return result
	}
	result.Status = StatusSorted
	return result
}

// relPath rewrites path relative to dir for pattern matching; config
// patterns are written against paths relative to the working directory.
func relPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}

// report prints the per-file line for a result. Failures always print;
// everything else respects --quiet.
func report(ctx *Context, result Result) {
	if CLI.Verbose {
		source := "defaults"
		if result.Resolution.MatchedPattern != "" {
			source = fmt.Sprintf("pattern '%s'", result.Resolution.MatchedPattern)
		}
		fmt.Fprintf(ctx.Stdout, "%s: %s, sorting from depth %d\n", result.Path, source, result.SortFrom)
	}

	switch result.Status {
	case StatusError:
		fmt.Fprintf(ctx.Stderr, "%s: %s\n", result.Path, errors.UserFriendlyError(result.Err))
	case StatusChanged:
		fmt.Fprintf(ctx.Stdout, "%s: %s\n", result.Path, result.Message)
	case StatusSkipped:
		if !CLI.Quiet {
			fmt.Fprintf(ctx.Stdout, "%s: skipped (%s)\n", result.Path, result.Message)
		}
	case StatusSorted:
		if !CLI.Quiet {
			fmt.Fprintf(ctx.Stdout, "%s: sorted\n", result.Path)
		}
	case StatusUnchanged:
		if !CLI.Quiet {
			fmt.Fprintf(ctx.Stdout, "%s: unchanged\n", result.Path)
		}
	}
}

// Summary aggregates per-file results for exit-code selection.
type Summary struct {
	Sorted    int
	Unchanged int
	Changed   int
	Skipped   int
	Errors    int
}

func (s *Summary) add(result Result) {
	switch result.Status {
	case StatusSorted:
		s.Sorted++
	case StatusUnchanged:
		s.Unchanged++
	case StatusChanged:
		s.Changed++
	case StatusSkipped:
		s.Skipped++
	case StatusError:
		s.Errors++
	}
}

func (s *Summary) total() int {
	return s.Sorted + s.Unchanged + s.Changed + s.Skipped + s.Errors
}

// failed reports whether the batch should exit non-zero: any error or any
// changed outcome, independent of skipped/success counts.
func (s *Summary) failed() bool {
	return s.Errors > 0 || s.Changed > 0
}

func printSummary(ctx *Context, s *Summary) {
	if CLI.Quiet && !s.failed() {
		return
	}
	fmt.Fprintf(ctx.Stdout, "%d files: %d sorted, %d unchanged, %d changed, %d skipped, %d errors\n",
		s.total(), s.Sorted, s.Unchanged, s.Changed, s.Skipped, s.Errors)
}
