package styles

import (
	"bytes"
	"sort"
	"strings"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// Style defines the visual appearance of a rendered mind map.
type Style interface {
	// Name returns the style identifier used on the command line.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, markers).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground fills the canvas.
	RenderBackground(buf *bytes.Buffer, w, h float64)
	// RenderConnector writes the path of one connector.
	RenderConnector(buf *bytes.Buffer, w Wire)
	// RenderLabel writes the label of one connector. Wires without a label
	// are skipped by the caller.
	RenderLabel(buf *bytes.Buffer, w Wire)
	// RenderNode writes one node card including its text.
	RenderNode(buf *bytes.Buffer, c Card)
}

// Card contains all data needed to draw one node card. Coordinates are canvas
// coordinates (top-left of the card).
type Card struct {
	ID          string
	Title       []string // wrapped title lines
	Description []string // wrapped description lines
	URL         string
	Color       string // palette hex
	Shape       mindmap.Shape
	X, Y, W, H  float64
	TitleSize   float64
	BodySize    float64
	Padding     float64
	Collapsed   bool
	Hidden      int // descendants hidden by collapse
	Locked      bool
	Highlight   bool
	Selected    bool
	Shadow      bool
}

// Wire contains the data needed to draw one connector.
type Wire struct {
	ID             string // source edge id, e.g. "edge:3" or "link:0"
	Link           bool   // auxiliary link rather than a tree edge
	FromID, ToID   string
	Path           string // SVG path data in canvas coordinates
	Label          string
	LabelX, LabelY float64
	Color          string // palette hex of the child, for tree edges
	Highlight      bool
}

var registry = map[string]Style{
	Dark.Name():  Dark,
	Light.Name(): Light,
}

// Default is the style used when none is requested.
var Default Style = Dark

// ByName returns the built-in style with the given name, ignoring case.
func ByName(name string) (Style, error) {
	if name == "" {
		return Default, nil
	}
	if s, ok := registry[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names lists the built-in style names in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
