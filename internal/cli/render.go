package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/pipeline"
	"github.com/matzehuels/brainwave/pkg/render/styles"
)

// renderCommand creates the render command for exporting a map.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [map.json]",
		Short: "Render a mind map to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a mind map.

The visible part of the tree is drawn as cards joined by curved connectors,
with cross links dashed on top. Collapsed nodes show how many descendants
they hide.

Formats:
  svg      standalone SVG with hover highlighting (default)
  png      raster image (requires rsvg-convert)
  pdf      vector document (requires rsvg-convert)
  json     scene with node boxes and connector paths
  dot      Graphviz node-link diagram source
  dot.svg  node-link diagram laid out and drawn by Graphviz

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.pipelineOptions()
			flags := cmd.Flags()
			if flags.Changed("style") {
				base.Style = opts.Style
			}
			if flags.Changed("measure") {
				base.Measure = opts.Measure
			}
			if flags.Changed("shadows") {
				base.Shadows = opts.Shadows
			}
			if flags.Changed("width") {
				base.ViewportWidth = opts.ViewportWidth
			}
			if flags.Changed("height") {
				base.ViewportHeight = opts.ViewportHeight
			}
			base.AutoLayout = opts.AutoLayout
			base.Detailed = opts.Detailed
			base.HideLinks = opts.HideLinks
			base.ExpandAll = opts.ExpandAll
			base.Highlight = opts.Highlight
			base.Selected = opts.Selected
			base.RootID = opts.RootID
			base.Scale = opts.Scale

			base.Formats = pipeline.ParseFormats(formatsStr)
			if len(base.Formats) == 0 {
				base.Formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(base.Formats); err != nil {
				return err
			}
			if base.Style != "" {
				if err := pipeline.ValidateStyle(base.Style); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], base, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, dot.svg (comma-separated)")

	// Scene flags
	cmd.Flags().BoolVar(&opts.AutoLayout, "layout", false, "lay out the tree before rendering")
	cmd.Flags().BoolVar(&opts.Measure, "measure", true, "size nodes from their text")
	cmd.Flags().StringVar(&opts.RootID, "root", "", "layout root node id")
	cmd.Flags().StringVar(&opts.Highlight, "highlight", "", "highlight nodes whose title contains this text")
	cmd.Flags().StringVar(&opts.Selected, "select", "", "draw this node as selected")

	// Render flags
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: "+strings.Join(styles.Names(), ", "))
	cmd.Flags().BoolVar(&opts.Shadows, "shadows", false, "draw card shadows")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include descriptions and URLs in DOT labels")
	cmd.Flags().BoolVar(&opts.HideLinks, "hide-links", false, "leave cross links out of DOT diagrams")
	cmd.Flags().BoolVar(&opts.ExpandAll, "expand-all", false, "include collapsed subtrees in DOT diagrams")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().Float64Var(&opts.ViewportWidth, "width", 0, "viewport width used to fit the view")
	cmd.Flags().Float64Var(&opts.ViewportHeight, "height", 0, "viewport height used to fit the view")

	return cmd
}

// runRender loads the map, renders every requested format and writes the
// artifacts next to the input (or to output).
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pkgio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load map %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", filepath.Base(input))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}

// artifactPaths returns the file written for each format. A single format
// with an explicit output file is written to exactly that path.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes each rendered artifact and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := artifactPaths(formats, input, output)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
