// Package cli implements the brainwave command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brainwave/pkg/buildinfo"
	"github.com/matzehuels/brainwave/pkg/cache"
	"github.com/matzehuels/brainwave/pkg/config"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/pipeline"
	"github.com/matzehuels/brainwave/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "brainwave"

	// docExt is the file extension of saved mind maps.
	docExt = ".json"
)

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

	// Config is loaded before any command runs. Commands never see nil.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Brainwave lays out and renders mind maps",
		Long: `Brainwave is a mind map engine. It keeps a tree of ideas with cross links,
lays the tree out left to right, routes curved connectors between the nodes
and renders the result as SVG, PNG, PDF, JSON or Graphviz DOT.

Maps are stored as JSON files that can be edited in the terminal, served
over HTTP or rendered from scripts.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	// Document commands and quick edits
	docCommands := []*cobra.Command{
		c.newCommand(),
		c.layoutCommand(),
		c.renderCommand(),
		c.visibleCommand(),
		c.inspectCommand(),
		c.addCommand(),
		c.deleteCommand(),
		c.linkCommand(),
		c.editCommand(),
	}
	withMapFileCompletion(docCommands...)
	root.AddCommand(docCommands...)

	// Services and housekeeping
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file, applies BRAINWAVE_* overrides and
// validates the result.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/brainwave/) when none is set.
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

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

// basePath returns output, or input when output is empty, without its file
// extension.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the loaded config.
func (c *CLI) pipelineOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		Measure:        cfg.Render.Measure,
		Style:          cfg.Render.Style,
		Shadows:        cfg.Render.Shadows,
		ViewportWidth:  cfg.Render.Width,
		ViewportHeight: cfg.Render.Height,
		Layout:         cfg.Layout,
		Route:          cfg.Route,
		Viewport:       cfg.Viewport,
		Logger:         c.Logger,
	}
}

// sessionOptions configures editing sessions from the loaded config.
func (c *CLI) sessionOptions() session.Options {
	opts := session.Options{
		Layout:   c.Config.Layout,
		Route:    c.Config.Route,
		Viewport: c.Config.Viewport,
	}
	if c.Config.Render.Measure {
		opts.Measurer = layout.DefaultTextMeasurer()
	}
	return opts
}
