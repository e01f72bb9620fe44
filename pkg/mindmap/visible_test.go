package mindmap

import (
	"slices"
	"testing"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name      string
		pairs     []string
		collapsed []string
		want      []string
	}{
		{
			name:  "breadth first",
			pairs: []string{"root", "", "a", "root", "b", "root", "a1", "a", "b1", "b"},
			want:  []string{"root", "a", "b", "a1", "b1"},
		},
		{
			name:      "collapsed hides descendants",
			pairs:     []string{"root", "", "a", "root", "a1", "a", "a2", "a1", "b", "root"},
			collapsed: []string{"a"},
			want:      []string{"root", "a", "b"},
		},
		{
			name:      "collapsed root",
			pairs:     []string{"root", "", "a", "root"},
			collapsed: []string{"root"},
			want:      []string{"root"},
		},
		{
			name:  "dangling parent is a root",
			pairs: []string{"root", "", "orphan", "ghost", "kid", "orphan"},
			want:  []string{"root", "orphan", "kid"},
		},
		{
			name:  "parent cycle is unreachable",
			pairs: []string{"root", "", "x", "y", "y", "x"},
			want:  []string{"root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, tt.pairs...)
			for _, id := range tt.collapsed {
				d.Node(id).Collapsed = true
			}
			if got := ids(Visible(d)); !slices.Equal(got, tt.want) {
				t.Errorf("Visible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleExcludesCollapsedDescendants(t *testing.T) {
	d := NewDefault()
	var all []string
	for i := 0; i < 4; i++ {
		parent := RootID
		if len(all) > 0 {
			parent = all[len(all)/2]
		}
		for j := 0; j < 3; j++ {
			n, err := d.AddChild(parent, Fields{Title: "n"})
			if err != nil {
				t.Fatal(err)
			}
			all = append(all, n.ID)
		}
	}

	for _, id := range all {
		c := d.Clone()
		c.Node(id).Collapsed = true
		vis := VisibleSet(Visible(c))
		if !vis[id] {
			t.Errorf("collapsed node %s is not visible", id)
		}
		for _, desc := range c.Descendants(id) {
			if vis[desc.ID] {
				t.Errorf("descendant %s of collapsed %s is visible", desc.ID, id)
			}
		}
	}
}

func TestHiddenCount(t *testing.T) {
	d := build(t, "root", "", "a", "root", "b", "a", "c", "b")
	if got := HiddenCount(d, "a"); got != 0 {
		t.Errorf("expanded HiddenCount = %d", got)
	}
	d.Node("a").Collapsed = true
	if got := HiddenCount(d, "a"); got != 2 {
		t.Errorf("HiddenCount(a) = %d, want 2", got)
	}
}
