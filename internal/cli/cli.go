// Package cli implements the scenestack command-line interface.
//
// The CLI operates on portable scene documents (JSON) and build plans
// (TOML). Commands map one-to-one onto user actions: build stacks, replay
// recorded placements, export renders, inspect a scene, browse stacks
// interactively, and list past runs.
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so library code can report progress
// without holding CLI state.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scenestack/scenestack/pkg/buildinfo"
	"github.com/scenestack/scenestack/pkg/cache"
	"github.com/scenestack/scenestack/pkg/runlog"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scenestack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "scenestack",
		Short:        "Scenestack stacks scene objects into towers",
		Long:         `Scenestack builds towers of 3D scene objects by resting bounding boxes on top of each other, spreading finished stacks apart, and recording the placements for replay.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		// The E variant, because main.go wraps PersistentPreRunE to apply
		// the --verbose level; cobra runs only one of the two hooks.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backends
// =============================================================================

// newCache returns the artifact cache for export runs. Cache failures fall
// back to the null cache so rendering still works without a writable disk.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newRunStore opens the run record store in the default config location.
func newRunStore() (*runlog.FileStore, error) {
	return runlog.NewFileStore("")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/scenestack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives an output file path from the input scene path when the
// user did not pass one, swapping the extension for the export format.
func outputPath(input, output, ext string) string {
	if output != "" {
		return output
	}
	base := input[:len(input)-len(filepath.Ext(input))]
	return base + "." + ext
}
