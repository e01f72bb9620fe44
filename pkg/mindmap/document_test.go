package mindmap

import (
	"slices"
	"testing"
)

func TestNewDefault(t *testing.T) {
	d := NewDefault()
	root := d.Root()
	if root == nil || root.ID != RootID {
		t.Fatalf("Root() = %v, want root node", root)
	}
	if root.Title != "Master The Brain" {
		t.Errorf("Title = %q", root.Title)
	}
	if root.Color != ColorIndigo {
		t.Errorf("Color = %v, want indigo", root.Color)
	}
	if d.NextID() != 1 {
		t.Errorf("NextID() = %d, want 1", d.NextID())
	}
}

func TestFromDataEffectiveRoots(t *testing.T) {
	tests := []struct {
		name  string
		data  Data
		roots []string
	}{
		{
			name: "single root",
			data: Data{Nodes: []Node{{ID: "root"}, {ID: "1", ParentID: "root"}}},
			roots: []string{"root"},
		},
		{
			name:  "dangling parent",
			data:  Data{Nodes: []Node{{ID: "root"}, {ID: "1", ParentID: "ghost"}}},
			roots: []string{"root", "1"},
		},
		{
			name:  "self parent",
			data:  Data{Nodes: []Node{{ID: "root"}, {ID: "1", ParentID: "1"}}},
			roots: []string{"root", "1"},
		},
		{
			name:  "duplicate id",
			data:  Data{Nodes: []Node{{ID: "root"}, {ID: "1", ParentID: "root"}, {ID: "1", ParentID: "root"}}},
			roots: []string{"root", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromData(tt.data)
			if got := ids(d.Roots()); !slices.Equal(got, tt.roots) {
				t.Errorf("Roots() = %v, want %v", got, tt.roots)
			}
		})
	}
}

func TestFromDataNextID(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want int
	}{
		{"explicit", Data{NextID: 9, Nodes: []Node{{ID: "root"}}}, 9},
		{"derived", Data{Nodes: []Node{{ID: "root"}, {ID: "4"}, {ID: "12"}}}, 13},
		{"no numeric ids", Data{Nodes: []Node{{ID: "root"}}}, 1},
		{"empty", Data{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromData(tt.data).NextID(); got != tt.want {
				t.Errorf("NextID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDataSnapshot(t *testing.T) {
	d := build(t, "root", "", "1", "root")
	d.SetSize("1", 200, 80)
	data := d.Data()

	if data.Nodes[1].Width != 0 || data.Nodes[1].Height != 0 {
		t.Error("Data() must not carry measured sizes")
	}
	if data.Links == nil {
		t.Error("Data().Links should be an empty slice, not nil")
	}

	data.Nodes[0].Title = "changed"
	if d.Node("root").Title == "changed" {
		t.Error("Data() must be a copy")
	}
}

func TestClone(t *testing.T) {
	d := build(t, "root", "", "1", "root")
	c := d.Clone()
	c.Node("1").X = 500
	if d.Node("1").X == 500 {
		t.Error("Clone() shares nodes with the original")
	}
	if got := ids(c.Children("root")); !slices.Equal(got, []string{"1"}) {
		t.Errorf("clone Children(root) = %v", got)
	}
}

func TestLookups(t *testing.T) {
	d := build(t,
		"root", "",
		"a", "root",
		"b", "a",
		"c", "a",
		"d", "c",
	)

	if got := ids(d.Children("a")); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v", got)
	}
	if p := d.Parent("d"); p == nil || p.ID != "c" {
		t.Errorf("Parent(d) = %v, want c", p)
	}
	if p := d.Parent("root"); p != nil {
		t.Errorf("Parent(root) = %v, want nil", p)
	}
	if got := ids(d.Descendants("a")); !slices.Equal(got, []string{"b", "c", "d"}) {
		t.Errorf("Descendants(a) = %v", got)
	}
	if !d.IsAncestor("a", "d") {
		t.Error("IsAncestor(a, d) = false")
	}
	if d.IsAncestor("d", "a") {
		t.Error("IsAncestor(d, a) = true")
	}
	if got := d.Depth("d"); got != 3 {
		t.Errorf("Depth(d) = %d, want 3", got)
	}
	if got := d.Depth("missing"); got != -1 {
		t.Errorf("Depth(missing) = %d, want -1", got)
	}
}

func TestRootFallback(t *testing.T) {
	d := build(t, "top", "", "x", "top")
	if r := d.Root(); r == nil || r.ID != "top" {
		t.Errorf("Root() = %v, want top", r)
	}
	if r := New().Root(); r != nil {
		t.Errorf("empty Root() = %v, want nil", r)
	}
}

func TestSearch(t *testing.T) {
	var data Data
	data.Nodes = []Node{
		{ID: "root", Title: "Master The Brain"},
		{ID: "1", Title: "Brainstorm", ParentID: "root"},
		{ID: "2", Title: "Sleep", ParentID: "root"},
	}
	d := FromData(data)

	tests := []struct {
		term string
		want []string
	}{
		{"brain", []string{"root", "1"}},
		{"SLEEP", []string{"2"}},
		{"", nil},
		{"  ", nil},
		{"zzz", nil},
	}
	for _, tt := range tests {
		if got := ids(d.Search(tt.term)); !slices.Equal(got, tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	d := FromData(Data{
		Nodes: []Node{
			{ID: "root"},
			{ID: "dup", ParentID: "root"},
			{ID: "dup", ParentID: "root"},
			{ID: "lost", ParentID: "ghost"},
			{ID: "x", ParentID: "y"},
			{ID: "y", ParentID: "x"},
		},
		Links: []Link{{From: "root", To: "nowhere"}},
	})

	problems := d.Validate()
	reasons := map[string]int{}
	for _, p := range problems {
		reasons[p.NodeID]++
	}
	for _, id := range []string{"dup", "lost", "x", "y", "root"} {
		if reasons[id] == 0 {
			t.Errorf("expected a problem for %q, got %v", id, problems)
		}
	}

	if p := NewDefault().Validate(); p != nil {
		t.Errorf("default document has problems: %v", p)
	}
}
