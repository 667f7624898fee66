package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/leapstack-labs/leaplint/internal/cache"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lint result cache",
		Long: `Manage the SQLite database used by "leaplint lint --cache".

Entries are keyed on file content and on the active configuration, so
changing rules or directives makes existing entries stale.`,
	}
	cmd.AddCommand(newCacheInfoCommand())
	cmd.AddCommand(newCacheCleanCommand())
	return cmd
}

func newCacheInfoCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache location, entries and the last run",
		Example: `  leaplint cache info
  leaplint cache info --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.Renderer
			if format != "" {
				r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
			}

			path := cmdCtx.Cfg.Cache.Path
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				return renderCacheStats(r, &cache.Stats{Path: path})
			}

			linter, err := cmdCtx.BuildLinter()
			if err != nil {
				return err
			}
			store, err := cmdCtx.OpenCache(cmd.Context(), linter)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return renderCacheStats(r, stats)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, yaml")
	return cmd
}

func newCacheCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the cache database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			path := cmdCtx.Cfg.Cache.Path

			removed := false
			for _, p := range []string{path, path + "-wal", path + "-shm"} {
				err := os.Remove(p)
				if err == nil {
					removed = removed || p == path
					continue
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to remove %s: %w", p, err)
				}
			}

			if removed {
				cmdCtx.Renderer.Success("Removed " + path)
			} else {
				cmdCtx.Renderer.Muted("No cache at " + path)
			}
			return nil
		},
	}
}

func renderCacheStats(r *output.Renderer, stats *cache.Stats) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(stats)
	case output.ModeYAML:
		return r.YAML(stats)
	}

	r.Header(1, "Cache")
	r.Println(output.FormatKeyValue("Path", stats.Path))
	r.Println(output.FormatKeyValue("Entries", fmt.Sprintf("%d (%d stale)", stats.Entries, stats.Stale)))
	if run := stats.LastRun; run != nil {
		r.Println(output.FormatKeyValue("Last run", run.StartedAt.Local().Format(time.DateTime)))
		r.Println(output.FormatKeyValue("Files", fmt.Sprintf("%d (%d from cache)", run.Files, run.Cached)))
		r.Println(output.FormatKeyValue("Issues", fmt.Sprint(run.Issues)))
	}
	return nil
}
