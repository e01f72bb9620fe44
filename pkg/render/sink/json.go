package sink

import (
	"encoding/json"

	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/render"
	"github.com/matzehuels/brainwave/pkg/route"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	indent bool
}

// WithJSONStyle records the style name in the output so a client can draw
// the scene with matching colors.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Origin     geom.Point        `json:"origin"`
	Style      string            `json:"style,omitempty"`
	RootID     string            `json:"rootId"`
	Nodes      []jsonNode        `json:"nodes"`
	Connectors []route.Connector `json:"connectors"`
}

type jsonNode struct {
	render.SceneNode
	Hex string `json:"hex"`
}

// RenderJSON serializes the scene. Node boxes and connector anchors are in
// model coordinates; connector paths and the width and height are relative
// to origin.
func RenderJSON(s *render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      s.Bounds.Width(),
		Height:     s.Bounds.Height(),
		Origin:     s.Origin(),
		Style:      r.style,
		RootID:     s.RootID,
		Nodes:      make([]jsonNode, 0, len(s.Nodes)),
		Connectors: s.Overlay.Connectors,
	}
	if out.Connectors == nil {
		out.Connectors = []route.Connector{}
	}
	for _, n := range s.Nodes {
		out.Nodes = append(out.Nodes, jsonNode{SceneNode: n, Hex: n.Color.Hex()})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
