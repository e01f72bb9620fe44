package mindmap

import (
	"slices"
	"testing"

	"github.com/matzehuels/brainwave/pkg/errors"
)

func TestAddChild(t *testing.T) {
	d := NewDefault()
	root := d.Node(RootID)
	root.X, root.Y = 10, 20

	wantY := []float64{20, 140, 140, 200}
	for i, y := range wantY {
		n, err := d.AddChild(RootID, Fields{Title: "child"})
		if err != nil {
			t.Fatalf("AddChild #%d: %v", i, err)
		}
		if n.X != 360 {
			t.Errorf("child %d X = %v, want 360", i, n.X)
		}
		if n.Y != y {
			t.Errorf("child %d Y = %v, want %v", i, n.Y, y)
		}
		if n.ParentID != RootID {
			t.Errorf("child %d ParentID = %q", i, n.ParentID)
		}
	}
	if got := ids(d.Children(RootID)); !slices.Equal(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("ids = %v, want sequential", got)
	}
	if d.NextID() != 5 {
		t.Errorf("NextID() = %d, want 5", d.NextID())
	}
}

func TestAddChildFallbacks(t *testing.T) {
	t.Run("unknown parent uses root", func(t *testing.T) {
		d := NewDefault()
		n, err := d.AddChild("ghost", Fields{Title: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if n.ParentID != RootID {
			t.Errorf("ParentID = %q, want root", n.ParentID)
		}
	})

	t.Run("missing root is created", func(t *testing.T) {
		d := New()
		n, err := d.AddChild("", Fields{Title: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if d.Node(RootID) == nil {
			t.Fatal("root was not created")
		}
		if n.ParentID != RootID || d.Len() != 2 {
			t.Errorf("ParentID = %q, Len = %d", n.ParentID, d.Len())
		}
	})

	t.Run("skips taken ids", func(t *testing.T) {
		d := FromData(Data{NextID: 1, Nodes: []Node{{ID: "root"}, {ID: "1", ParentID: "root"}}})
		n, err := d.AddChild(RootID, Fields{Title: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if n.ID != "2" {
			t.Errorf("ID = %q, want 2", n.ID)
		}
	})

	t.Run("defaults and validation", func(t *testing.T) {
		d := NewDefault()
		n, err := d.AddChild(RootID, Fields{Title: "  padded  "})
		if err != nil {
			t.Fatal(err)
		}
		if n.Title != "padded" || n.Color != DefaultColor {
			t.Errorf("got title %q color %v", n.Title, n.Color)
		}
		if _, err := d.AddChild(RootID, Fields{Title: " "}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("blank title error = %v", err)
		}
		if _, err := d.AddChild(RootID, Fields{Title: "x", Color: 99}); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("bad color error = %v", err)
		}
		if _, err := d.AddChild(RootID, Fields{Title: "x", URL: "ftp://x"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("bad url error = %v", err)
		}
		if d.Len() != 2 {
			t.Errorf("rejected adds changed the document: Len = %d", d.Len())
		}
	})
}

func TestUpdate(t *testing.T) {
	d := build(t, "root", "", "a", "root")
	if err := d.Update("a", Fields{Title: "A", Color: ColorTeal, Shape: ShapePill}); err != nil {
		t.Fatal(err)
	}
	n := d.Node("a")
	if n.Title != "A" || n.Color != ColorTeal || n.Shape != ShapePill {
		t.Errorf("Update did not apply: %+v", n)
	}

	n.Locked = true
	err := d.Update("a", Fields{Title: "B"})
	if !errors.Is(err, errors.ErrCodeNodeLocked) {
		t.Errorf("locked update error = %v", err)
	}
	if n.Title != "A" {
		t.Error("locked node was changed")
	}

	if err := d.Update("ghost", Fields{Title: "x"}); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("missing node error = %v", err)
	}
}

func TestDeleteRemovesSubtreeAndLinks(t *testing.T) {
	d := build(t,
		"root", "",
		"A", "root",
		"B", "A",
		"other", "root",
	)
	if err := d.AddLink("B", "other", ""); err != nil {
		t.Fatal(err)
	}
	if err := d.AddLink("other", "root", ""); err != nil {
		t.Fatal(err)
	}

	removed, err := d.Delete("A")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(removed, []string{"A", "B"}) {
		t.Errorf("removed = %v, want [A B]", removed)
	}
	if d.Node("A") != nil || d.Node("B") != nil {
		t.Error("subtree still present")
	}
	links := d.Links()
	if len(links) != 1 || links[0].From != "other" {
		t.Errorf("links = %v, want only other->root", links)
	}
}

func TestDeleteRejections(t *testing.T) {
	d := build(t, "root", "", "a", "root")
	d.Node("a").Locked = true

	tests := []struct {
		id   string
		code errors.Code
	}{
		{"root", errors.ErrCodeRootProtected},
		{"a", errors.ErrCodeNodeLocked},
		{"ghost", errors.ErrCodeNodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := d.Delete(tt.id)
			if !errors.Is(err, tt.code) {
				t.Errorf("Delete(%s) error = %v, want %s", tt.id, err, tt.code)
			}
		})
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d after rejected deletes", d.Len())
	}
}

func TestReparent(t *testing.T) {
	newDoc := func() *Document {
		return build(t,
			"root", "",
			"A", "root",
			"B", "A",
			"C", "B",
			"D", "root",
		)
	}

	tests := []struct {
		name    string
		id      string
		parent  string
		code    errors.Code
		wantPar string
	}{
		{"move under sibling", "B", "D", "", "D"},
		{"under own child", "B", "C", errors.ErrCodeCycle, "A"},
		{"under deep descendant", "A", "C", errors.ErrCodeCycle, "root"},
		{"self", "B", "B", errors.ErrCodeCycle, "A"},
		{"root", "root", "A", errors.ErrCodeRootProtected, ""},
		{"unknown parent", "B", "ghost", errors.ErrCodeNodeNotFound, "A"},
		{"unknown node", "ghost", "A", errors.ErrCodeNodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc()
			err := d.Reparent(tt.id, tt.parent)
			if tt.code == "" && err != nil {
				t.Fatalf("Reparent() error = %v", err)
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Fatalf("Reparent() error = %v, want %s", err, tt.code)
			}
			if n := d.Node(tt.id); n != nil && n.ParentID != tt.wantPar {
				t.Errorf("ParentID = %q, want %q", n.ParentID, tt.wantPar)
			}
		})
	}
}

func TestMove(t *testing.T) {
	d := build(t, "root", "", "a", "root")
	if err := d.Move("a", 5, 6); err != nil {
		t.Fatal(err)
	}
	if err := d.MoveBy("a", 1, -1); err != nil {
		t.Fatal(err)
	}
	if n := d.Node("a"); n.X != 6 || n.Y != 5 {
		t.Errorf("position = (%v, %v), want (6, 5)", n.X, n.Y)
	}

	d.Node("a").Locked = true
	if err := d.MoveBy("a", 1, 1); !errors.Is(err, errors.ErrCodeNodeLocked) {
		t.Errorf("locked move error = %v", err)
	}
}

func TestToggles(t *testing.T) {
	d := build(t, "root", "", "a", "root")

	if v, _ := d.ToggleCollapsed("a"); !v {
		t.Error("ToggleCollapsed should set collapsed")
	}
	if v, _ := d.ToggleCollapsed("a"); v {
		t.Error("second ToggleCollapsed should clear collapsed")
	}
	if v, _ := d.ToggleLocked("a"); !v {
		t.Error("ToggleLocked should set locked")
	}
	if err := d.SetLocked("a", false); err != nil || d.Node("a").Locked {
		t.Errorf("SetLocked(false) err=%v locked=%v", err, d.Node("a").Locked)
	}
	if err := d.SetCollapsed("ghost", true); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("SetCollapsed(ghost) = %v", err)
	}
	if err := d.SetEdgeLabel("a", " because "); err != nil || d.Node("a").EdgeLabel != "because" {
		t.Errorf("SetEdgeLabel err=%v label=%q", err, d.Node("a").EdgeLabel)
	}
	d.Node("a").Locked = true
	if err := d.SetEdgeLabel("a", "changed"); !errors.Is(err, errors.ErrCodeNodeLocked) || d.Node("a").EdgeLabel != "because" {
		t.Errorf("SetEdgeLabel on locked node err=%v label=%q", err, d.Node("a").EdgeLabel)
	}
}

func TestLinks(t *testing.T) {
	d := build(t, "root", "", "a", "root", "b", "root")

	if err := d.AddLink("a", "b", "see also"); err != nil {
		t.Fatal(err)
	}
	if err := d.AddLink("a", "b", "see also"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate link error = %v", err)
	}
	if err := d.AddLink("a", "a", ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("self link error = %v", err)
	}
	if err := d.AddLink("a", "ghost", ""); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("dangling link error = %v", err)
	}
	if err := d.RemoveLink(3); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("RemoveLink(3) = %v", err)
	}
	if err := d.RemoveLink(0); err != nil {
		t.Fatal(err)
	}
	if len(d.Links()) != 0 {
		t.Errorf("Links() = %v after removal", d.Links())
	}
}

func TestSetSize(t *testing.T) {
	d := build(t, "root", "")
	d.SetSize("root", 240, 96)
	if !d.Node("root").Measured() {
		t.Error("Measured() = false after SetSize")
	}
	d.SetSize("root", -1, 10)
	if d.Node("root").Measured() {
		t.Error("negative size should clear the measurement")
	}
	d.SetSize("ghost", 1, 1)
}
