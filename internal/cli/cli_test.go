package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/brainwave/pkg/errors"
	pkgio "github.com/matzehuels/brainwave/pkg/io"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// runCLI executes the root command with a config path that does not exist,
// so every test runs on the built-in defaults.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	return root.ExecuteContext(context.Background())
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := runCLI(t, args...); err != nil {
		t.Fatalf("brainwave %s: %v", strings.Join(args, " "), err)
	}
}

func loadMap(t *testing.T, path string) *mindmap.Document {
	t.Helper()
	doc, err := pkgio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON(%s): %v", path, err)
	}
	return doc
}

func TestQuickEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.json")

	mustRun(t, "new", path, "--title", "Ideas")
	if doc := loadMap(t, path); doc.Len() != 1 || doc.Root().Title != "Ideas" {
		t.Fatalf("new map = %d nodes, root %q", doc.Len(), doc.Root().Title)
	}
	if err := runCLI(t, "new", path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("new over existing file: err = %v, want INVALID_INPUT", err)
	}

	mustRun(t, "add", path, "root", "Read", "more")
	mustRun(t, "add", path, "1", "Novels", "--color", "red", "--shape", "pill", "--label", "genre")

	doc := loadMap(t, path)
	read, novels := doc.Node("1"), doc.Node("2")
	if read == nil || read.Title != "Read more" || read.ParentID != mindmap.RootID {
		t.Fatalf("first child = %+v", read)
	}
	if novels == nil || novels.Color != mindmap.ColorRed || novels.Shape != mindmap.ShapePill || novels.EdgeLabel != "genre" {
		t.Fatalf("second child = %+v", novels)
	}

	if err := runCLI(t, "add", path, "root", "Bad", "--color", "mauve"); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("unknown color: err = %v", err)
	}

	mustRun(t, "link", path, "2", "root", "--label", "back")
	if links := loadMap(t, path).Links(); len(links) != 1 || links[0].Label != "back" {
		t.Fatalf("links = %+v", links)
	}
	mustRun(t, "delete", path, "0", "--link")
	if links := loadMap(t, path).Links(); len(links) != 0 {
		t.Fatalf("links after delete = %+v", links)
	}
	if err := runCLI(t, "delete", path, "3", "--link"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("delete missing link: err = %v", err)
	}

	if err := runCLI(t, "delete", path, "root"); !errors.Is(err, errors.ErrCodeRootProtected) {
		t.Errorf("delete root: err = %v", err)
	}
	mustRun(t, "delete", path, "1")
	if doc := loadMap(t, path); doc.Len() != 1 {
		t.Errorf("delete should remove the subtree, %d nodes left", doc.Len())
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")
	out := filepath.Join(dir, "laid-out.json")

	mustRun(t, "new", path)
	mustRun(t, "add", path, "root", "A")
	mustRun(t, "add", path, "root", "B")
	mustRun(t, "layout", path, "-o", out, "--measure=false")

	doc := loadMap(t, out)
	a, b := doc.Node("1"), doc.Node("2")
	if a.X != 350 || b.X != 350 {
		t.Errorf("children x = %v, %v, want 350", a.X, b.X)
	}
	if a.Y >= b.Y || a.Y != -b.Y {
		t.Errorf("children should be stacked around the root row, got y = %v, %v", a.Y, b.Y)
	}
	if orig := loadMap(t, path); orig.Node("2").Y == b.Y {
		t.Error("layout with -o should leave the input untouched")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")
	mustRun(t, "new", path)
	mustRun(t, "add", path, "root", "Child")

	base := filepath.Join(dir, "out", "scene")
	mustRun(t, "render", path, "-f", "svg,json,dot", "-o", base, "--no-cache", "--layout")

	for _, ext := range []string{"svg", "json", "dot"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Fatalf("read %s output: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
	svg, _ := os.ReadFile(base + ".svg")
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg output = %.40s", svg)
	}

	if err := runCLI(t, "render", path, "-f", "gif", "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format: err = %v", err)
	}
	if err := runCLI(t, "render", path, "--style", "neon", "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("unknown style: err = %v", err)
	}
	if err := runCLI(t, "render", filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing input: err = %v", err)
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    map[string]string
	}{
		{"next to input", []string{"svg", "png"}, "maps/brain.json", "", map[string]string{"svg": "maps/brain.svg", "png": "maps/brain.png"}},
		{"exact single file", []string{"svg"}, "brain.json", "out/picture.svg", map[string]string{"svg": "out/picture.svg"}},
		{"base path for many", []string{"svg", "pdf"}, "brain.json", "out/picture.svg", map[string]string{"svg": "out/picture.svg", "pdf": "out/picture.pdf"}},
		{"base without extension", []string{"dot"}, "brain.json", "out/graph", map[string]string{"dot": "out/graph.dot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPaths(tt.formats, tt.input, tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("artifactPaths = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("path[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestVisibleNodes(t *testing.T) {
	doc := mindmap.NewDefault()
	a, _ := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "A"})
	doc.AddChild(a.ID, mindmap.Fields{Title: "A1"})
	doc.AddChild(a.ID, mindmap.Fields{Title: "A2"})
	doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "B"})
	if err := doc.SetCollapsed(a.ID, true); err != nil {
		t.Fatal(err)
	}

	got := visibleNodes(doc)
	var titles []string
	for _, n := range got {
		titles = append(titles, n.Title)
	}
	if strings.Join(titles, ",") != "Master The Brain,A,B" {
		t.Fatalf("visible = %v", titles)
	}
	if got[1].Hidden != 2 || got[1].Depth != 1 || got[1].Children != 2 {
		t.Errorf("collapsed node row = %+v", got[1])
	}
}
