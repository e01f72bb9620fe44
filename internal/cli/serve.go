package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/server"
	"github.com/matzehuels/brainwave/pkg/session"
	"github.com/matzehuels/brainwave/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		backend string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing API over HTTP",
		Long: `Serve the session API over HTTP.

Each session edits one named document. Changes are written to the configured
store after a short quiet period, and pending writes are flushed on shutdown.

Store backends: file (default), sqlite, redis, mongo, memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				c.Config.Server.Listen = listen
			}
			if backend != "" {
				c.Config.Store.Backend = backend
				if err := c.Config.Validate(); err != nil {
					return err
				}
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :7480)")
	cmd.Flags().StringVar(&backend, "store", "", "store backend: file, sqlite, redis, mongo, memory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the export cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	cfg := c.Config
	logger := loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Opening %s store...", cfg.Store.Backend))
	spinner.Start()
	st, err := store.Open(ctx, cfg.Store)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	defer st.Close()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	manager := session.NewManager(session.ManagerConfig{
		MaxSessions: cfg.Server.MaxSessions,
		TTL:         cfg.Server.SessionTTL,
		Store:       st,
		Debounce:    cfg.Store.Debounce,
		Session:     c.sessionOptions(),
		Logger:      logger,
	})
	defer manager.Close()

	if cfg.Server.CleanupInterval > 0 {
		stopCleanup := manager.StartCleanup(cfg.Server.CleanupInterval)
		defer stopCleanup()
	}

	render := c.pipelineOptions()
	srv := server.New(manager, server.Options{
		Logger:          logger,
		Runner:          runner,
		Render:          render,
		Screen:          geom.Rect{MaxX: cfg.Render.Width, MaxY: cfg.Render.Height},
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Listen)))
	printDetail("store: %s", cfg.Store.Backend)
	return srv.ListenAndServe(ctx, cfg.Server.Listen)
}

// displayAddr turns ":7480" into "localhost:7480".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
