package config

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"regexp"

	sortjson "github.com/ponharu/sort-json"
	"github.com/ponharu/sort-json/internal/errors"
)

// ConfigFileNames are the recognized configuration file names, in priority
// order. The first candidate that exists and parses as JSON wins; later
// candidates are never consulted once one parses.
var ConfigFileNames = []string{".sortjsonrc.json", ".sortjsonrc", "sortjson.config.json"}

// Config is the validated configuration for one run.
type Config struct {
	Include  []string
	Ignore   []string
	SortFrom int
	Files    []FileRule
}

// FileRule binds a glob-like pattern to the override applied to matching
// files. Rules keep their declaration order; among equally specific matching
// patterns the first declared wins.
type FileRule struct {
	Pattern  string
	Override FileOverride

	// compiled pattern (built at load time)
	regex *regexp.Regexp
}

// FileOverride is the per-pattern override shape. Nil fields mean "not set".
type FileOverride struct {
	SortFrom  *int
	Ignore    *bool
	SortOrder []string
}

// Resolution is the effective per-file settings produced by Resolve.
type Resolution struct {
	SortFrom       int
	Ignore         bool
	SortOrder      []string
	MatchedPattern string
}

// NewConfig creates a new Config with the built-in defaults: sort below the
// root mapping, include every .json file, ignore nothing.
func NewConfig() *Config {
	return &Config{
		Include:  []string{"**/*.json"},
		Ignore:   []string{},
		SortFrom: 1,
		Files:    []FileRule{},
	}
}

// Load looks for a configuration file in dir, trying each recognized name in
// priority order. A candidate that is missing, unreadable, or not valid JSON
// falls through to the next one; a candidate that parses but violates the
// configuration shape aborts the run with a validation error instead of
// falling through. When no candidate is usable the built-in defaults are
// returned.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		root, err := sortjson.ParseFile(path)
		if err != nil {
			continue
		}
		cfg, err := fromValue(root)
		if err != nil {
			return nil, errors.NewConfigError(
				fmt.Sprintf("invalid configuration in '%s': %v", path, err),
				errors.ErrInvalidConfig,
			)
		}
		cfg.compilePatterns()
		return cfg, nil
	}
	return NewConfig(), nil
}

// fromValue validates the parsed configuration document against the
// configuration shape. Validation fails closed: unrecognized fields are
// errors, not ignored.
func fromValue(root sortjson.Value) (*Config, error) {
	object, ok := root.(sortjson.Object)
	if !ok {
		return nil, fmt.Errorf("configuration root must be an object")
	}

	cfg := NewConfig()
	for _, m := range object {
		switch m.Key {
		case "include":
			list, err := stringList(m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			cfg.Include = list
		case "ignore":
			list, err := stringList(m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			cfg.Ignore = list
		case "sortFrom":
			n, err := nonNegativeInt(m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			cfg.SortFrom = n
		case "files":
			rules, err := fileRules(m.Value)
			if err != nil {
				return nil, err
			}
			cfg.Files = rules
		default:
			return nil, fmt.Errorf("unrecognized field %q", m.Key)
		}
	}
	return cfg, nil
}

func fileRules(v sortjson.Value) ([]FileRule, error) {
	object, ok := v.(sortjson.Object)
	if !ok {
		return nil, fmt.Errorf(`field "files" must be an object mapping patterns to overrides`)
	}

	rules := make([]FileRule, 0, len(object))
	for _, m := range object {
		override, err := fileOverride(m.Key, m.Value)
		if err != nil {
			return nil, err
		}
		rules = append(rules, FileRule{Pattern: m.Key, Override: override})
	}
	return rules, nil
}

func fileOverride(pattern string, v sortjson.Value) (FileOverride, error) {
	object, ok := v.(sortjson.Object)
	if !ok {
		return FileOverride{}, fmt.Errorf("override for %q must be an object", pattern)
	}

	var override FileOverride
	for _, m := range object {
		switch m.Key {
		case "sortFrom":
			n, err := nonNegativeInt("sortFrom", m.Value)
			if err != nil {
				return FileOverride{}, fmt.Errorf("override for %q: %w", pattern, err)
			}
			override.SortFrom = &n
		case "ignore":
			flag, ok := m.Value.(sortjson.Bool)
			if !ok {
				return FileOverride{}, fmt.Errorf(`override for %q: field "ignore" must be a boolean`, pattern)
			}
			b := bool(flag)
			override.Ignore = &b
		case "sortOrder":
			list, err := stringList("sortOrder", m.Value)
			if err != nil {
				return FileOverride{}, fmt.Errorf("override for %q: %w", pattern, err)
			}
			override.SortOrder = list
		default:
			return FileOverride{}, fmt.Errorf("override for %q has unrecognized field %q", pattern, m.Key)
		}
	}
	return override, nil
}

func stringList(field string, v sortjson.Value) ([]string, error) {
	array, ok := v.(sortjson.Array)
	if !ok {
		return nil, fmt.Errorf("field %q must be an array of strings", field)
	}
	list := make([]string, len(array))
	for i, e := range array {
		s, ok := e.(sortjson.String)
		if !ok {
			return nil, fmt.Errorf("field %q must be an array of strings", field)
		}
		list[i] = string(s)
	}
	return list, nil
}

// nonNegativeInt accepts any JSON number whose value is a non-negative
// integer, so spellings like 2.0 and 1e3 validate while 1.5 and -1 fail.
func nonNegativeInt(field string, v sortjson.Value) (int, error) {
	number, ok := v.(sortjson.Number)
	if !ok {
		return 0, fmt.Errorf("field %q must be a non-negative integer", field)
	}
	f, err := json.Number(number).Float64()
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("field %q must be a non-negative integer, got %s", field, string(number))
	}
	return int(f), nil
}
