package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// layoutCommand creates the layout command for repositioning a map's tree.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		rootID  string
		measure bool
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json]",
		Short: "Reposition the tree from the root",
		Long: `Reposition every node of the tree left to right.

Children are stacked vertically beside their parent, centered on the parent's
row, with each child's whole subtree reserving its own band. Collapsed nodes
keep their hidden descendants in place; nodes outside the tree keep their
positions.

The map is rewritten in place unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("measure") {
				measure = c.Config.Render.Measure
			}
			return c.runLayout(cmd.Context(), args[0], output, rootID, measure)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().StringVar(&rootID, "root", "", "layout root node id (default: the document root)")
	cmd.Flags().BoolVar(&measure, "measure", true, "size nodes from their text before layout")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output, rootID string, measure bool) error {
	logger := loggerFromContext(ctx)

	doc, err := pkgio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load map %s: %w", input, err)
	}

	prog := newProgress(logger)
	if measure {
		layout.MeasureAll(doc, mindmap.Visible(doc), layout.DefaultTextMeasurer())
	}
	res, err := layout.Tree(doc, rootID, c.Config.Layout)
	if err != nil {
		return err
	}
	prog.done("laid out tree", "root", res.RootID, "placed", res.Placed, "skipped", res.Skipped)

	if output == "" {
		output = input
	}
	if err := pkgio.ExportJSON(doc, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printKeyValue("placed", fmt.Sprintf("%d nodes", res.Placed))
	if res.Skipped > 0 {
		printWarning("%d locked nodes kept in place", res.Skipped)
	}
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
