package config

import (
	"fmt"
	"strings"
)

var validOutputs = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	valid := false
	for _, o := range validOutputs {
		if c.OutputFormat == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format %q\nHint: use one of %s", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.IgnoreFileDirective == "" || c.IgnoreDirective == "" {
		return fmt.Errorf("ignore directive names must not be empty")
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path must be set when the cache is enabled")
	}
	return nil
}
