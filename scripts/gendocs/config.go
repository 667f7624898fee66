package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
)

// configField documents one key of leaplint.yaml.
type configField struct {
	Key         string
	Type        string
	Flag        string
	Description string
}

// configFields lists leaplint.yaml keys in document order.
var configFields = []configField{
	{"output", "string", "--output, --format", "Output format: auto, text, markdown, json or yaml"},
	{"verbose", "bool", "--verbose", "Log debug messages to stderr"},
	{"concurrency", "int", "--concurrency", "Files linted at once"},
	{"ignore_directive", "string", "--ignore-directive", "Name of the next-line ignore directive"},
	{"ignore_file_directive", "string", "--ignore-file-directive", "Name of the file ignore directive"},
	{"docs_base_url", "string", "", "Base URL of rule documentation links"},
	{"files.include", "[]string", "--ext", "File extensions linted when walking directories"},
	{"files.exclude", "[]string", "--exclude", "Glob patterns of files and directories to skip"},
	{"rules.tags", "[]string", "--tag", "Enable rules carrying any of these tags"},
	{"rules.include", "[]string", "--rule", "Enable rules by code"},
	{"rules.exclude", "[]string", "--exclude-rule", "Disable rules by code"},
	{"rules.scripts", "[]string", "--script", "Starlark rule files, relative to the config file"},
	{"cache.enabled", "bool", "--cache", "Reuse results for unchanged files"},
	{"cache.path", "string", "--cache-path", "SQLite cache database, relative to the config file"},
}

// generateConfigDocs writes configuration.md. The example is the default
// configuration as the loader sees it.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "leaplint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leaplint reads `leaplint.yaml` (or `leaplint.yml`) from the working directory or the nearest parent. " +
		"Flags override environment variables, which override the file.")

	rows := make([][]string, 0, len(configFields))
	for _, f := range configFields {
		flag := f.Flag
		if flag == "" {
			flag = "-"
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, flag, f.Description})
	}
	w.Table([]string{"Key", "Type", "Flag", "Description"}, rows)

	w.Header(2, "Environment Variables")
	w.Paragraph("Every key can be set with a `LEAPLINT_` variable. Nested keys use a double underscore:")
	w.CodeBlock("bash", "LEAPLINT_OUTPUT=json LEAPLINT_RULES__TAGS=recommended,fresh leaplint lint")

	defaults := config.Default()
	defaults.Concurrency = 4
	example, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	w.Header(2, "Defaults")
	w.CodeBlock("yaml", string(example))

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
