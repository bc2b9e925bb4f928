// Package config provides configuration loading and discovery for fshlint.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. Environment variables (FSHLINT_* prefix)
//  2. Config file (closest .fshlint.toml or fshlint.toml)
//  3. Built-in defaults
//
// Config file discovery follows a cascading pattern: starting from the
// target file's directory, walk up the filesystem until a config file is
// found. The closest config wins (no merging).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".fshlint.toml", "fshlint.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "FSHLINT_"

// Config represents the complete fshlint configuration.
type Config struct {
	Rules     RulesConfig     `koanf:"rules"`
	Output    OutputConfig    `koanf:"output"`
	Fix       FixConfig       `koanf:"fix"`
	Cache     CacheConfig     `koanf:"cache"`
	Discovery DiscoveryConfig `koanf:"discovery"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `koanf:"-"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format: "text", "json", "sarif",
	// "github-actions", "compact". Default: "text".
	Format string `koanf:"format"`

	// Path specifies where to write output: "stdout", "stderr", or a file path.
	Path string `koanf:"path"`

	// ShowSource enables source code snippets in text output.
	ShowSource bool `koanf:"show-source"`

	// Color enables ANSI color in text output. Default: auto-detected by the
	// reporter via isatty; this only forces it on or off when non-empty
	// ("always", "never", "auto").
	Color string `koanf:"color"`

	// FailLevel sets the minimum severity that causes a non-zero exit code.
	// Valid values: "error", "warning", "info", "style", "none".
	FailLevel string `koanf:"fail-level"`
}

// FixConfig configures the autofix engine.
type FixConfig struct {
	// ApplyUnsafe allows Unsafe-safety fixes to be applied, not just Safe ones.
	ApplyUnsafe bool `koanf:"apply-unsafe"`

	// DryRun computes fixes and reports a diff without writing files.
	DryRun bool `koanf:"dry-run"`

	// ValidateSyntax re-parses a file after fixing and rejects the result
	// (rolling back) if brackets/parens are unbalanced.
	ValidateSyntax bool `koanf:"validate-syntax"`

	// MaxFixesPerFile caps how many fixes are applied to one file per run.
	// 0 means unlimited.
	MaxFixesPerFile int `koanf:"max-fixes-per-file"`

	// SemanticConflictWindow is the line-distance threshold for the
	// secondary same-rule conflict check (spec's "same file + same rule +
	// within N lines" soft conflict). 0 disables the check.
	SemanticConflictWindow int `koanf:"semantic-conflict-window"`
}

// CacheConfig configures the parse-result cache.
type CacheConfig struct {
	// Enabled turns the parse cache on or off.
	Enabled bool `koanf:"enabled"`

	// MaxEntries bounds the number of cached parse results.
	MaxEntries int `koanf:"max-entries"`

	// Watch enables filesystem watching to invalidate the cache on change.
	Watch bool `koanf:"watch"`
}

// DiscoveryConfig configures file discovery.
type DiscoveryConfig struct {
	// Include are glob patterns to discover. Default: ["*.fsh"].
	Include []string `koanf:"include"`

	// Exclude are glob patterns to skip.
	Exclude []string `koanf:"exclude"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     "text",
			Path:       "stdout",
			ShowSource: true,
			Color:      "auto",
			FailLevel:  "warning",
		},
		Fix: FixConfig{
			ApplyUnsafe:            false,
			DryRun:                 false,
			ValidateSyntax:         true,
			MaxFixesPerFile:        0,
			SemanticConflictWindow: 3,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1000,
			Watch:      false,
		},
		Discovery: DiscoveryConfig{
			Include: []string{"*.fsh"},
		},
	}
}

// Load loads configuration for a target file path. It discovers the closest
// config file, loads it, and applies environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return loadWithConfigPath(Discover(targetPath))
}

// LoadFromFile loads configuration from a specific config file path. Unlike
// Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath)
}

func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.ConfigFile = configPath
	return cfg, nil
}

// knownHyphenatedKeys maps dot-separated env-derived patterns to their
// hyphenated config-key equivalents.
var knownHyphenatedKeys = map[string]string{
	"show.source":              "show-source",
	"fail.level":               "fail-level",
	"apply.unsafe":             "apply-unsafe",
	"dry.run":                  "dry-run",
	"validate.syntax":          "validate-syntax",
	"max.fixes.per.file":       "max-fixes-per-file",
	"semantic.conflict.window": "semantic-conflict-window",
	"max.entries":              "max-entries",
}

// envKeyTransform converts environment variable names to config keys.
// FSHLINT_OUTPUT_FORMAT -> output.format
// FSHLINT_FIX_MAX_FIXES_PER_FILE -> fix.max-fixes-per-file
func envKeyTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}
	return s
}

// Discover finds the closest config file for a target file path, walking up
// the directory tree. Returns empty string if none is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := filepath.Dir(absPath)
	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
