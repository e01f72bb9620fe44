package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brainwave/pkg/errors"
	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// editFile loads the map at path, applies fn and writes the map back. The
// file is left untouched when fn fails.
func editFile(path string, fn func(doc *mindmap.Document) error) error {
	doc, err := pkgio.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("load map %s: %w", path, err)
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := pkgio.ExportJSON(doc, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// addCommand creates the add command for appending a child node.
func (c *CLI) addCommand() *cobra.Command {
	var (
		colorStr string
		shapeStr string
		f        mindmap.Fields
		label    string
	)

	cmd := &cobra.Command{
		Use:   "add [map.json] [parent-id] [title...]",
		Short: "Add a child node",
		Long: `Add a child node under parent-id.

The child is placed one column to the right of its parent, on the parent's
row. Run 'layout' afterwards to stack siblings.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Title = strings.Join(args[2:], " ")
			if colorStr != "" {
				color, err := mindmap.ParseColor(colorStr)
				if err != nil {
					return err
				}
				f.Color = color
			}
			shape, err := mindmap.ParseShape(shapeStr)
			if err != nil {
				return err
			}
			f.Shape = shape

			var added *mindmap.Node
			err = editFile(args[0], func(doc *mindmap.Document) error {
				n, err := doc.AddChild(args[1], f)
				if err != nil {
					return err
				}
				added = n
				if label != "" {
					return doc.SetEdgeLabel(n.ID, label)
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s under %s", StyleValue.Render(added.Title), args[1])
			printKeyValue("id", added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&colorStr, "color", "", "palette color name or index 1-12")
	cmd.Flags().StringVar(&shapeStr, "shape", "", "shape: rect, rounded, pill, ellipse, diamond")
	cmd.Flags().StringVar(&f.Description, "desc", "", "description")
	cmd.Flags().StringVar(&f.URL, "url", "", "http(s) link")
	cmd.Flags().StringVar(&label, "label", "", "label on the connector from the parent")

	return cmd
}

// deleteCommand creates the delete command for removing nodes or links.
func (c *CLI) deleteCommand() *cobra.Command {
	var link bool

	cmd := &cobra.Command{
		Use:   "delete [map.json] [node-id | link-index]",
		Short: "Delete a node with its subtree, or a cross link",
		Long: `Delete a node together with its whole subtree and every cross link that
touches a removed node. The root node cannot be deleted.

With --link, the argument is a link index as listed by 'inspect'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if link {
				i, err := strconv.Atoi(args[1])
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "link index must be an integer, got %q", args[1])
				}
				if err := editFile(args[0], func(doc *mindmap.Document) error { return doc.RemoveLink(i) }); err != nil {
					return err
				}
				printSuccess("Removed link %d", i)
				return nil
			}

			var removed []string
			err := editFile(args[0], func(doc *mindmap.Document) error {
				var err error
				removed, err = doc.Delete(args[1])
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %d nodes", len(removed))
			printDetail("%s", strings.Join(removed, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&link, "link", false, "delete the cross link at the given index")

	return cmd
}

// linkCommand creates the link command for adding a cross link.
func (c *CLI) linkCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "link [map.json] [from-id] [to-id]",
		Short: "Add a cross link between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := editFile(args[0], func(doc *mindmap.Document) error {
				return doc.AddLink(args[1], args[2], label)
			})
			if err != nil {
				return err
			}
			printSuccess("Linked %s %s %s", args[1], iconArrow, args[2])
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "link label")

	return cmd
}
