package render

import (
	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/route"
)

// SceneNode is one visible node card.
type SceneNode struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Color       mindmap.Color `json:"color"`
	Shape       mindmap.Shape `json:"shape,omitempty"`
	Box         geom.Rect     `json:"box"`
	Depth       int           `json:"depth"`
	Collapsed   bool          `json:"collapsed,omitempty"`
	Locked      bool          `json:"locked,omitempty"`
	ChildCount  int           `json:"childCount"`
	HiddenCount int           `json:"hiddenCount,omitempty"` // descendants hidden by collapse
	Highlight   bool          `json:"highlight,omitempty"`
	Selected    bool          `json:"selected,omitempty"`
}

// Scene is everything needed to draw one frame of a mind map.
type Scene struct {
	RootID  string        `json:"rootId"`
	Nodes   []SceneNode   `json:"nodes"`
	Overlay route.Overlay `json:"overlay"`
	Bounds  geom.Rect     `json:"bounds"`
}

// NewScene builds a scene from the visible nodes of doc and their routed
// overlay. Card boxes follow the same sizing rule as the router, so cards
// and connector anchors line up.
func NewScene(doc *mindmap.Document, visible []*mindmap.Node, overlay route.Overlay, cfg route.Config) *Scene {
	s := &Scene{
		Nodes:   make([]SceneNode, 0, len(visible)),
		Overlay: overlay,
		Bounds:  overlay.Bounds,
	}
	if root := doc.Root(); root != nil {
		s.RootID = root.ID
	}
	for _, n := range visible {
		s.Nodes = append(s.Nodes, SceneNode{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			URL:         n.URL,
			Color:       n.Color,
			Shape:       n.Shape,
			Box:         route.Box(n, cfg),
			Depth:       doc.Depth(n.ID),
			Collapsed:   n.Collapsed,
			Locked:      n.Locked,
			ChildCount:  doc.ChildCount(n.ID),
			HiddenCount: mindmap.HiddenCount(doc, n.ID),
		})
	}
	return s
}

// Node returns the scene node with the given id, or nil.
func (s *Scene) Node(id string) *SceneNode {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// Highlight marks the given nodes, typically search matches. Ids that are
// not visible are ignored.
func (s *Scene) Highlight(ids ...string) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for i := range s.Nodes {
		s.Nodes[i].Highlight = set[s.Nodes[i].ID]
	}
}

// Select marks id as the selected node. An empty id clears the selection.
func (s *Scene) Select(id string) {
	for i := range s.Nodes {
		s.Nodes[i].Selected = id != "" && s.Nodes[i].ID == id
	}
}

// Origin returns the model point mapped to (0, 0) of the scene canvas.
func (s *Scene) Origin() geom.Point { return s.Bounds.Origin() }

// Local returns box translated into canvas coordinates.
func (s *Scene) Local(box geom.Rect) geom.Rect {
	o := s.Origin()
	return geom.Rect{MinX: box.MinX - o.X, MinY: box.MinY - o.Y, MaxX: box.MaxX - o.X, MaxY: box.MaxY - o.Y}
}
