// Package config provides configuration management for the leaplint CLI.
package config

import (
	"runtime"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat        string      `koanf:"output" yaml:"output"`
	Verbose             bool        `koanf:"verbose" yaml:"verbose"`
	Concurrency         int         `koanf:"concurrency" yaml:"concurrency"`
	IgnoreFileDirective string      `koanf:"ignore_file_directive" yaml:"ignore_file_directive"`
	IgnoreDirective     string      `koanf:"ignore_directive" yaml:"ignore_directive"`
	DocsBaseURL         string      `koanf:"docs_base_url" yaml:"docs_base_url,omitempty"`
	Files               FilesConfig `koanf:"files" yaml:"files"`
	Rules               RulesConfig `koanf:"rules" yaml:"rules"`
	Cache               CacheConfig `koanf:"cache" yaml:"cache"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// FilesConfig selects the files to lint.
type FilesConfig struct {
	// Include lists file extensions linted when walking directories.
	Include []string `koanf:"include" yaml:"include,omitempty"`
	// Exclude lists glob patterns of files and directories to skip.
	Exclude []string `koanf:"exclude" yaml:"exclude,omitempty"`
}

// RulesConfig selects the rules to run.
type RulesConfig struct {
	Tags    []string `koanf:"tags" yaml:"tags,omitempty"`
	Include []string `koanf:"include" yaml:"include,omitempty"`
	Exclude []string `koanf:"exclude" yaml:"exclude,omitempty"`
	// Scripts lists Starlark rule files, relative to the project root.
	Scripts []string `koanf:"scripts" yaml:"scripts,omitempty"`
}

// CacheConfig controls the lint result cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`
	// Path is the SQLite database file, relative to the project root.
	Path string `koanf:"path" yaml:"path"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultTag    = "recommended"
	DefaultCache  = ".leaplint/cache.db"
)

// Config file names, in lookup order.
var configFileNames = []string{"leaplint.yaml", "leaplint.yml"}

// DefaultConcurrency is the default number of files linted at once.
func DefaultConcurrency() int {
	return runtime.NumCPU()
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		OutputFormat:        DefaultOutput,
		Concurrency:         DefaultConcurrency(),
		IgnoreFileDirective: lint.DefaultIgnoreFileDirective,
		IgnoreDirective:     lint.DefaultIgnoreDirective,
		Rules:               RulesConfig{Tags: []string{DefaultTag}},
		Cache:               CacheConfig{Path: DefaultCache},
	}
}

// defaults returns the lowest-precedence configuration layer.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"output":                DefaultOutput,
		"verbose":               false,
		"concurrency":           DefaultConcurrency(),
		"ignore_file_directive": lint.DefaultIgnoreFileDirective,
		"ignore_directive":      lint.DefaultIgnoreDirective,
		"rules.tags":            []string{DefaultTag},
		"cache.enabled":         false,
		"cache.path":            DefaultCache,
	}
}
