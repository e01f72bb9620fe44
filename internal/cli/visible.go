package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// visibleNode is one line of `visible --json`.
type visibleNode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Depth    int    `json:"depth"`
	Children int    `json:"children"`
	Hidden   int    `json:"hidden,omitempty"`
}

// visibleCommand creates the visible command for listing displayed nodes.
func (c *CLI) visibleCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "visible [map.json]",
		Short: "List the nodes shown under the current collapse state",
		Long: `List the displayable nodes in breadth-first order from the roots.

Each line starts with the node depth. Collapsed nodes are listed, but their
descendants are not; each collapsed node shows how many descendants it hides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load map %s: %w", args[0], err)
			}
			nodes := visibleNodes(doc)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(nodes)
			}
			for _, n := range nodes {
				line := StyleDim.Render(fmt.Sprintf("%3d ", n.Depth)) + StyleValue.Render(n.Title) + " " + StyleDim.Render(n.ID)
				if n.Hidden > 0 {
					line += " " + StyleHighlight.Render(fmt.Sprintf("+%d", n.Hidden))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of an outline")

	return cmd
}

func visibleNodes(doc *mindmap.Document) []visibleNode {
	vis := mindmap.Visible(doc)
	out := make([]visibleNode, len(vis))
	for i, n := range vis {
		out[i] = visibleNode{
			ID:       n.ID,
			Title:    n.Title,
			Depth:    doc.Depth(n.ID),
			Children: doc.ChildCount(n.ID),
			Hidden:   mindmap.HiddenCount(doc, n.ID),
		}
	}
	return out
}
