package mindmap

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/geom"
)

// RootID is the identifier of the designated root node. Layout, centering and
// connector routing treat the node with this id specially.
const RootID = "root"

// Color is an index into the fixed 12-color node palette.
type Color int

const (
	ColorRed Color = iota + 1
	ColorOrange
	ColorYellow
	ColorLime
	ColorGreen
	ColorTeal
	ColorCyan
	ColorBlue
	ColorIndigo
	ColorViolet
	ColorFuchsia
	ColorPink
)

// DefaultColor is used for nodes stored without a color.
const DefaultColor = ColorIndigo

var palette = [...]string{
	"#ef4444", "#f97316", "#eab308", "#84cc16", "#22c55e", "#14b8a6",
	"#06b6d4", "#3b82f6", "#6366f1", "#8b5cf6", "#d946ef", "#ec4899",
}

var colorNames = [...]string{
	"red", "orange", "yellow", "lime", "green", "teal",
	"cyan", "blue", "indigo", "violet", "fuchsia", "pink",
}

// Colors returns every palette color in order.
func Colors() []Color {
	out := make([]Color, len(palette))
	for i := range palette {
		out[i] = Color(i + 1)
	}
	return out
}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool { return c >= ColorRed && c <= ColorPink }

// Hex returns the CSS hex value of the color. Invalid colors return the
// default color's value.
func (c Color) Hex() string {
	if !c.Valid() {
		c = DefaultColor
	}
	return palette[c-1]
}

// String returns the color name.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c-1]
}

// ParseColor accepts a palette index ("1".."12") or a color name.
func ParseColor(s string) (Color, error) {
	if n, err := strconv.Atoi(s); err == nil {
		c := Color(n)
		if !c.Valid() {
			return 0, errors.New(errors.ErrCodeInvalidColor, "color %d out of range 1..%d", n, len(palette))
		}
		return c, nil
	}
	for i, name := range colorNames {
		if name == s {
			return Color(i + 1), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", s)
}

// UnmarshalJSON decodes a palette index. Zero and null decode as
// DefaultColor; other out-of-range values are rejected.
func (c *Color) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = DefaultColor
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "color must be a number")
	}
	if f == 0 {
		*c = DefaultColor
		return nil
	}
	v := Color(f)
	if float64(v) != f || !v.Valid() {
		return errors.New(errors.ErrCodeInvalidColor, "color %v out of range 1..%d", f, len(palette))
	}
	*c = v
	return nil
}

// Shape is the outline drawn for a node.
type Shape string

const (
	ShapeDefault Shape = ""
	ShapeRect    Shape = "rect"
	ShapeRounded Shape = "rounded"
	ShapePill    Shape = "pill"
	ShapeEllipse Shape = "ellipse"
	ShapeDiamond Shape = "diamond"
)

// Shapes returns the named shapes, excluding the default.
func Shapes() []Shape {
	return []Shape{ShapeRect, ShapeRounded, ShapePill, ShapeEllipse, ShapeDiamond}
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	switch s {
	case ShapeDefault, ShapeRect, ShapeRounded, ShapePill, ShapeEllipse, ShapeDiamond:
		return true
	}
	return false
}

// ParseShape validates a shape name. The empty string is the default shape.
func ParseShape(s string) (Shape, error) {
	sh := Shape(s)
	if !sh.Valid() {
		return "", errors.New(errors.ErrCodeInvalidShape, "unknown shape %q", s)
	}
	return sh, nil
}

// UnmarshalJSON rejects unknown shape names.
func (s *Shape) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ShapeDefault
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidShape, err, "shape must be a string")
	}
	sh, err := ParseShape(raw)
	if err != nil {
		return err
	}
	*s = sh
	return nil
}

// Node is a single idea in the mind map.
//
// X and Y locate the node center in model space. Width and Height are the
// last measured size; they are derived from content and never persisted.
type Node struct {
	ID          string  `bson:"id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description,omitempty"`
	URL         string  `bson:"url,omitempty"`
	Color       Color   `bson:"color"`
	Shape       Shape   `bson:"shape,omitempty"`
	X           float64 `bson:"x"`
	Y           float64 `bson:"y"`
	Width       float64 `bson:"-"`
	Height      float64 `bson:"-"`
	ParentID    string  `bson:"parentId,omitempty"`
	Collapsed   bool    `bson:"collapsed"`
	Locked      bool    `bson:"locked"`
	EdgeLabel   string  `bson:"edgeLabel,omitempty"`
}

// Center returns the node position.
func (n *Node) Center() geom.Point { return geom.Point{X: n.X, Y: n.Y} }

// IsRoot reports whether the node is stored without a parent.
func (n *Node) IsRoot() bool { return n.ParentID == "" }

// Measured reports whether the node carries a measured size.
func (n *Node) Measured() bool { return n.Width > 0 && n.Height > 0 }

type nodeJSON struct {
	ID          flexID  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Color       Color   `json:"color"`
	Shape       Shape   `json:"shape,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ParentID    *flexID `json:"parentId"`
	Collapsed   bool    `json:"collapsed"`
	Locked      bool    `json:"locked"`
	EdgeLabel   string  `json:"edgeLabel,omitempty"`
}

// MarshalJSON writes the persisted node shape. The measured size is omitted
// and a root node carries "parentId": null.
func (n Node) MarshalJSON() ([]byte, error) {
	color := n.Color
	if !color.Valid() {
		color = DefaultColor
	}
	out := nodeJSON{
		ID:          flexID(n.ID),
		Title:       n.Title,
		Description: n.Description,
		URL:         n.URL,
		Color:       color,
		Shape:       n.Shape,
		X:           n.X,
		Y:           n.Y,
		Collapsed:   n.Collapsed,
		Locked:      n.Locked,
		EdgeLabel:   n.EdgeLabel,
	}
	if n.ParentID != "" {
		p := flexID(n.ParentID)
		out.ParentID = &p
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a persisted node. Ids may be strings or numbers.
func (n *Node) UnmarshalJSON(b []byte) error {
	in := nodeJSON{Color: DefaultColor}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*n = Node{
		ID:          string(in.ID),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Color:       in.Color,
		Shape:       in.Shape,
		X:           in.X,
		Y:           in.Y,
		Collapsed:   in.Collapsed,
		Locked:      in.Locked,
		EdgeLabel:   in.EdgeLabel,
	}
	if in.ParentID != nil {
		n.ParentID = string(*in.ParentID)
	}
	return nil
}

// flexID decodes identifiers stored either as JSON strings or numbers.
type flexID string

func (f flexID) MarshalJSON() ([]byte, error) { return json.Marshal(string(f)) }

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "id must be a string or number")
	}
	*f = flexID(num.String())
	return nil
}

// Link is an auxiliary directed edge between two nodes, independent of the
// parent tree.
type Link struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// View is the persisted viewport state.
type View struct {
	Scale float64 `json:"scale" bson:"scale"`
	PanX  float64 `json:"panX" bson:"panX"`
	PanY  float64 `json:"panY" bson:"panY"`
}

// Data is the persisted document shape:
//
//	{"nodes": [...], "nextId": n, "links": [...]}
//
// View and SelectedID are optional editor state written alongside.
type Data struct {
	Nodes      []Node `json:"nodes" bson:"nodes"`
	NextID     int    `json:"nextId,omitempty" bson:"nextId"`
	Links      []Link `json:"links" bson:"links"`
	View       *View  `json:"view,omitempty" bson:"view,omitempty"`
	SelectedID string `json:"selectedId,omitempty" bson:"selectedId,omitempty"`
}

// UnmarshalJSON requires the nodes array to be present.
func (d *Data) UnmarshalJSON(b []byte) error {
	type plain Data
	var raw struct {
		plain
		Nodes *[]Node `json:"nodes"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Nodes == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no nodes array")
	}
	*d = Data(raw.plain)
	d.Nodes = *raw.Nodes
	return nil
}
