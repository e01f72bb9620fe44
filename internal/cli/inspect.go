package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/render/styles"
)

// inspectCommand creates the inspect command for summarizing a map.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [map.json]",
		Short: "Show the nodes, links and integrity problems of a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load map %s: %w", args[0], err)
			}
			fmt.Println(StyleTitle.Render(args[0]))
			fmt.Println(nodeTable(doc))
			if links := doc.Links(); len(links) > 0 {
				fmt.Println(linkTable(doc, links))
			}
			printSummary(doc)
			return nil
		},
	}
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// nodeTable lists every node in document order.
func nodeTable(doc *mindmap.Document) string {
	nodes := doc.Nodes()
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		parent := "—"
		if p := doc.Parent(n.ID); p != nil {
			parent = p.ID
		}
		shape := string(n.Shape)
		if shape == "" {
			shape = "—"
		}
		rows[i] = []string{
			n.ID,
			styles.Truncate(n.Title, 32),
			parent,
			swatch(n.Color),
			shape,
			fmt.Sprintf("%.0f, %.0f", n.X, n.Y),
			fmt.Sprint(doc.ChildCount(n.ID)),
			nodeFlags(n),
		}
	}

	t := newTable("ID", "Title", "Parent", "Color", "Shape", "Position", "Kids", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 || col == 2 || col == 5 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func nodeFlags(n *mindmap.Node) string {
	var flags []string
	if n.Collapsed {
		flags = append(flags, "collapsed")
	}
	if n.Locked {
		flags = append(flags, "locked")
	}
	if n.URL != "" {
		flags = append(flags, "url")
	}
	return strings.Join(flags, " ")
}

// linkTable lists the cross links with their index, as used by `delete --link`.
func linkTable(doc *mindmap.Document, links []mindmap.Link) string {
	title := func(id string) string {
		if n := doc.Node(id); n != nil {
			return styles.Truncate(n.Title, 24)
		}
		return StyleWarning.Render(id + " (missing)")
	}
	rows := make([][]string, len(links))
	for i, l := range links {
		rows[i] = []string{fmt.Sprint(i), title(l.From), iconArrow, title(l.To), l.Label}
	}
	return newTable("#", "From", "", "To", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 0 || col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func printSummary(doc *mindmap.Document) {
	visible := mindmap.Visible(doc)
	printKeyValue("nodes", fmt.Sprint(doc.Len()))
	printKeyValue("visible", fmt.Sprint(len(visible)))
	printKeyValue("links", fmt.Sprint(len(doc.Links())))
	printKeyValue("roots", fmt.Sprint(len(doc.Roots())))
	printKeyValue("next id", fmt.Sprint(doc.NextID()))

	problems := doc.Validate()
	if len(problems) == 0 {
		printSuccess("No integrity problems")
		return
	}
	printWarning("%d integrity problems", len(problems))
	for _, p := range problems {
		printDetail("%s", p)
	}
}
