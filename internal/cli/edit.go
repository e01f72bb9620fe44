package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brainwave/pkg/errors"
	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/session"
)

// editCommand creates the edit command for the interactive outline editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [map.json]",
		Short: "Edit a mind map interactively as an outline",
		Long: `Open a mind map in the terminal outline editor.

The outline shows the visible tree depth-first. Nodes can be added, renamed,
recolored, collapsed, locked and deleted; 'L' runs the automatic layout and
'u'/'U' undo and redo. Nothing is written until you save with 's'.

A missing file starts a new map with a single root node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0])
		},
	}
}

func (c *CLI) runEdit(path string) error {
	data, err := loadOrNew(path)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sess := session.FromData(name, *data, c.sessionOptions())
	save := func(d mindmap.Data) error { return pkgio.ExportData(d, path) }

	final, err := tea.NewProgram(NewEditorModel(sess, save), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	if m, ok := final.(EditorModel); ok && m.Dirty() {
		printWarning("Quit without saving %s", path)
		return nil
	}
	printSuccess("Closed %s", path)
	return nil
}

// loadOrNew reads the map at path, or returns the default single-root map
// when the file does not exist yet.
func loadOrNew(path string) (*mindmap.Data, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		data := mindmap.NewDefault().Data()
		return &data, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	data, err := pkgio.ReadData(f)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	return data, nil
}
