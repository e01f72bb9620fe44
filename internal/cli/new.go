package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brainwave/pkg/errors"
	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// newCommand creates the new command for starting a mind map file.
func (c *CLI) newCommand() *cobra.Command {
	var (
		title string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "new [map.json]",
		Short: "Create a mind map with a single root node",
		Long: `Create a mind map file holding a single root node at the origin.

Existing files are kept unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(args[0], title, force)
		},
	}

	cmd.Flags().StringVar(&title, "title", mindmap.DefaultRoot().Title, "root node title")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runNew(path, title string, force bool) error {
	if !strings.HasSuffix(path, docExt) {
		path += docExt
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}

	doc := mindmap.NewDefault()
	f := mindmap.FieldsOf(doc.Root())
	f.Title = title
	if err := doc.Update(mindmap.RootID, f); err != nil {
		return err
	}
	if err := pkgio.ExportJSON(doc, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	c.Logger.Debug("created map", "path", path, "title", title)
	printSuccess("Created mind map")
	printFile(path)
	printNewline()
	printNextStep("Add an idea", fmt.Sprintf("%s add %s root %q", appName, path, "First idea"))
	return nil
}
