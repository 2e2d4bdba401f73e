package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ponharu/sort-json/internal/config"
	"github.com/ponharu/sort-json/internal/discovery"
	"github.com/ponharu/sort-json/internal/errors"
)

// CLI defines the command-line interface
var CLI struct {
	Paths []string `help:"Files or glob patterns to process. Defaults to the configuration's include patterns." arg:"" optional:"" name:"path"`

	Check bool `help:"Report files whose canonical form differs, without writing; exits 1 on any difference." short:"c"`
	Write bool `help:"Write sorted output back to each file (--no-write to disable)." short:"w" default:"true" negatable:""`
	Force bool `help:"Process files that contain comments by stripping the comments." short:"f"`

	Indent   int  `help:"Number of spaces per indentation level." short:"i" default:"2"`
	Tabs     bool `help:"Indent with tabs instead of spaces."`
	SortFrom int  `help:"Depth to start sorting keys from, overriding configuration." default:"-1" placeholder:"N"`

	Ignore      []string `help:"Glob pattern to exclude from processing. Repeatable." placeholder:"PATTERN"`
	NoGitignore bool     `help:"Do not exclude files listed in .gitignore."`

	Quiet   bool `help:"Only report failures." short:"q"`
	Verbose bool `help:"Explain which configuration applies to each file."`
	Version bool `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("sort-json"),
		kong.Description("Sorts the keys of JSON files for stable diffs and clean reviews"),
		kong.UsageOnError(),
	)

	// Parse the command line arguments
	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("sort-json version %s\n", Version)
		return
	}

	ctx := &Context{Dir: ".", Stdout: os.Stdout, Stderr: os.Stderr}
	summary, err := run(ctx)
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: sort-json --help\n")

		os.Exit(1)
	}

	if summary.failed() {
		os.Exit(1)
	}
}

// run executes the main program logic and returns the batch summary. Errors
// returned here are fatal: flag misuse, configuration validation failures,
// discovery failures, or an empty batch. Per-file problems are recorded in
// the summary instead, so one bad file never stops the rest.
func run(ctx *Context) (*Summary, error) {
	if err := validateFlags(); err != nil {
		return nil, err
	}

	// Resolve the working directory up front; pattern matching runs on
	// paths made relative to it, even when a file is named absolutely.
	dir, err := filepath.Abs(ctx.Dir)
	if err != nil {
		return nil, errors.NewIOError("failed to resolve working directory", err)
	}
	ctx.Dir = dir

	// 1. Load and validate configuration (once per run, immutable after)
	cfg, err := config.Load(ctx.Dir)
	if err != nil {
		return nil, err
	}

	// 2. Discover files
	ignore := make([]string, 0, len(cfg.Ignore)+len(CLI.Ignore))
	ignore = append(ignore, cfg.Ignore...)
	ignore = append(ignore, CLI.Ignore...)

	files, err := discovery.Discover(ctx.Dir, discovery.Options{
		Patterns:     CLI.Paths,
		Include:      cfg.Include,
		Ignore:       ignore,
		UseGitignore: !CLI.NoGitignore,
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NewIOError("no files matched the given paths or include patterns", errors.ErrNoFilesMatched)
	}

	// 3. Process each file in order; outcomes are isolated per file
	summary := &Summary{}
	for _, file := range files {
		result := processFile(ctx, cfg, file)
		summary.add(result)
		report(ctx, result)
	}

	printSummary(ctx, summary)
	return summary, nil
}

// validateFlags rejects flag values kong cannot range-check itself.
func validateFlags() error {
	if CLI.Indent < 1 {
		return errors.NewConfigError(fmt.Sprintf("indent must be at least 1, got %d", CLI.Indent), nil)
	}
	// -1 is the "not set" sentinel; anything else negative is a user error.
	if CLI.SortFrom < -1 {
		return errors.NewConfigError(fmt.Sprintf("sort-from must be a non-negative integer, got %d", CLI.SortFrom), nil)
	}
	return nil
}
