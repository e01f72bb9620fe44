package layout

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/brainwave/pkg/mindmap"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks on space", "hello brave new world", 11, []string{"hello brave", "new world"}},
		{"hard break", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"newline", "a\nb", 10, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.text, tt.limit); !slices.Equal(got, tt.want) {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextMeasurer(t *testing.T) {
	m := DefaultTextMeasurer()

	short := &mindmap.Node{Title: "Hi"}
	w, h := m.Measure(short)
	if w != m.MinWidth {
		t.Errorf("short width = %v, want min %v", w, m.MinWidth)
	}

	long := &mindmap.Node{Title: strings.Repeat("word ", 40)}
	lw, lh := m.Measure(long)
	if lw <= w || lw > m.MaxWidth {
		t.Errorf("long width = %v, want within (%v, %v]", lw, w, m.MaxWidth)
	}
	if lh <= h {
		t.Errorf("wrapped title height %v should exceed single line %v", lh, h)
	}

	withDesc := &mindmap.Node{Title: "Hi", Description: "details", URL: "https://example.com"}
	if _, dh := m.Measure(withDesc); dh <= h {
		t.Errorf("description and URL should add height: %v <= %v", dh, h)
	}

	huge := &mindmap.Node{Title: "x", Description: strings.Repeat("lorem ipsum ", 100)}
	if got := len(m.Lines(huge).Description); got != m.MaxDescLines {
		t.Errorf("description lines = %d, want %d", got, m.MaxDescLines)
	}
}

func TestMeasureAll(t *testing.T) {
	d := doc("root", "", "a", "root")
	MeasureAll(d, d.Nodes(), MeasurerFunc(func(n *mindmap.Node) (float64, float64) {
		return 100, float64(len(n.ID)) * 10
	}))
	if n := d.Node("root"); n.Width != 100 || n.Height != 40 {
		t.Errorf("root size = %vx%v", n.Width, n.Height)
	}
	if n := d.Node("a"); n.Height != 10 {
		t.Errorf("a height = %v", n.Height)
	}
}
