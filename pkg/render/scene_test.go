package render

import (
	"testing"

	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/route"
)

func buildScene(t *testing.T) (*mindmap.Document, *Scene) {
	t.Helper()
	doc := mindmap.NewDefault()
	a, err := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AddChild(a.ID, mindmap.Fields{Title: "B"}); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.ToggleCollapsed(a.ID); err != nil {
		t.Fatal(err)
	}
	cfg := route.DefaultConfig()
	vis := mindmap.Visible(doc)
	return doc, NewScene(doc, vis, route.Route(vis, doc.Links(), cfg), cfg)
}

func TestNewScene(t *testing.T) {
	doc, s := buildScene(t)
	if s.RootID != mindmap.RootID {
		t.Errorf("RootID = %q", s.RootID)
	}
	if len(s.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2 (collapsed child hidden)", len(s.Nodes))
	}
	a := s.Node(doc.Children(mindmap.RootID)[0].ID)
	if a == nil {
		t.Fatal("child A missing from scene")
	}
	if !a.Collapsed || a.HiddenCount != 1 || a.ChildCount != 1 || a.Depth != 1 {
		t.Errorf("A = %+v", *a)
	}
	if s.Bounds != s.Overlay.Bounds {
		t.Errorf("Bounds = %v, overlay bounds %v", s.Bounds, s.Overlay.Bounds)
	}
	if s.Node("missing") != nil {
		t.Error("Node(missing) should be nil")
	}
}

func TestSceneLocal(t *testing.T) {
	_, s := buildScene(t)
	root := s.Node(mindmap.RootID)
	local := s.Local(root.Box)
	o := s.Origin()
	if local.MinX != root.Box.MinX-o.X || local.MaxY != root.Box.MaxY-o.Y {
		t.Errorf("Local(%v) = %v with origin %v", root.Box, local, o)
	}
	if local.MinX < 0 || local.MinY < 0 {
		t.Errorf("padded bounds should contain the root box, got %v", local)
	}
}

func TestSceneHighlightSelect(t *testing.T) {
	_, s := buildScene(t)
	s.Highlight(mindmap.RootID, "not-visible")
	s.Select(mindmap.RootID)
	for _, n := range s.Nodes {
		want := n.ID == mindmap.RootID
		if n.Highlight != want || n.Selected != want {
			t.Errorf("%s: highlight=%v selected=%v", n.ID, n.Highlight, n.Selected)
		}
	}
	s.Select("")
	if s.Node(mindmap.RootID).Selected {
		t.Error("Select(\"\") should clear the selection")
	}
}
