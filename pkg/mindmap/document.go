package mindmap

import (
	"slices"
	"strconv"
	"strings"
)

// Document is an owned, in-memory mind map.
//
// Nodes keep their insertion order, which is also the order children are
// enumerated in. The zero value is not usable; create documents with [New],
// [NewDefault] or [FromData].
type Document struct {
	nodes    []*Node
	index    map[string]*Node   // id -> first node with that id
	children map[string][]*Node // effective parent id -> children in order
	links    []Link
	nextID   int
}

// New returns an empty document.
func New() *Document {
	d := &Document{nextID: 1}
	d.reindex()
	return d
}

// NewDefault returns the single-root document used on first run.
func NewDefault() *Document {
	d := New()
	d.insert(DefaultRoot())
	return d
}

// DefaultRoot returns the root node of a fresh mind map.
func DefaultRoot() *Node {
	return &Node{
		ID:          RootID,
		Title:       "Master The Brain",
		Description: "This is the central idea of your mind map.",
		Color:       DefaultColor,
	}
}

// FromData builds a document from persisted data without rejecting anything.
// The data is copied; later changes to data do not affect the document.
func FromData(data Data) *Document {
	d := &Document{
		nodes:  make([]*Node, 0, len(data.Nodes)),
		links:  slices.Clone(data.Links),
		nextID: data.NextID,
	}
	for i := range data.Nodes {
		n := data.Nodes[i]
		if !n.Color.Valid() {
			n.Color = DefaultColor
		}
		if !n.Shape.Valid() {
			n.Shape = ShapeDefault
		}
		d.nodes = append(d.nodes, &n)
	}
	if d.nextID <= 0 {
		d.nextID = deriveNextID(d.nodes)
	}
	d.reindex()
	return d
}

func deriveNextID(nodes []*Node) int {
	highest := 0
	for _, n := range nodes {
		if v, err := strconv.Atoi(n.ID); err == nil && v > highest {
			highest = v
		}
	}
	return highest + 1
}

// Data returns a snapshot of the document for persistence.
func (d *Document) Data() Data {
	out := Data{
		Nodes:  make([]Node, len(d.nodes)),
		NextID: d.nextID,
		Links:  slices.Clone(d.links),
	}
	if out.Links == nil {
		out.Links = []Link{}
	}
	for i, n := range d.nodes {
		out.Nodes[i] = *n
		out.Nodes[i].Width, out.Nodes[i].Height = 0, 0
	}
	return out
}

// Clone returns a deep copy including measured sizes.
func (d *Document) Clone() *Document {
	c := &Document{
		nodes:  make([]*Node, len(d.nodes)),
		links:  slices.Clone(d.links),
		nextID: d.nextID,
	}
	for i, n := range d.nodes {
		cp := *n
		c.nodes[i] = &cp
	}
	c.reindex()
	return c
}

// reindex rebuilds the id and parent indexes. It runs after every structural
// change; node counts are small enough that incremental upkeep is not worth
// the bookkeeping.
func (d *Document) reindex() {
	d.index = make(map[string]*Node, len(d.nodes))
	d.children = make(map[string][]*Node)
	for _, n := range d.nodes {
		if _, dup := d.index[n.ID]; !dup {
			d.index[n.ID] = n
		}
	}
	for _, n := range d.nodes {
		if p := d.effectiveParent(n); p != "" {
			d.children[p] = append(d.children[p], n)
		}
	}
}

// effectiveParent returns the parent id used for traversal, or "" when the
// node acts as a root.
func (d *Document) effectiveParent(n *Node) string {
	if n.ParentID == "" || n.ParentID == n.ID {
		return ""
	}
	if d.index[n.ID] != n {
		return ""
	}
	if _, ok := d.index[n.ParentID]; !ok {
		return ""
	}
	return n.ParentID
}

func (d *Document) insert(n *Node) {
	d.nodes = append(d.nodes, n)
	d.reindex()
}

// Len returns the number of nodes.
func (d *Document) Len() int { return len(d.nodes) }

// NextID returns the numeric id the next created node will receive.
func (d *Document) NextID() int { return d.nextID }

// Node returns the node with the given id, or nil.
func (d *Document) Node(id string) *Node { return d.index[id] }

// Nodes returns all nodes in document order.
// The slice is a copy but the pointers are live.
func (d *Document) Nodes() []*Node { return slices.Clone(d.nodes) }

// Children returns the children of id in document order.
func (d *Document) Children(id string) []*Node { return slices.Clone(d.children[id]) }

// ChildCount returns the number of children of id.
func (d *Document) ChildCount(id string) int { return len(d.children[id]) }

// Parent returns the effective parent of id, or nil for roots and unknown ids.
func (d *Document) Parent(id string) *Node {
	n := d.index[id]
	if n == nil {
		return nil
	}
	return d.index[d.effectiveParent(n)]
}

// Roots returns the effective roots in document order.
func (d *Document) Roots() []*Node {
	var out []*Node
	for _, n := range d.nodes {
		if d.effectiveParent(n) == "" {
			out = append(out, n)
		}
	}
	return out
}

// Root returns the node with id RootID, falling back to the first effective
// root. It returns nil for an empty document.
func (d *Document) Root() *Node {
	if n := d.index[RootID]; n != nil {
		return n
	}
	if roots := d.Roots(); len(roots) > 0 {
		return roots[0]
	}
	return nil
}

// Links returns a copy of the auxiliary links.
func (d *Document) Links() []Link { return slices.Clone(d.links) }

// Descendants returns every node below id in depth-first order. A visited
// set keeps corrupted parent cycles from looping.
func (d *Document) Descendants(id string) []*Node {
	var out []*Node
	seen := map[string]bool{id: true}
	var walk func(string)
	walk = func(pid string) {
		for _, c := range d.children[pid] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
			walk(c.ID)
		}
	}
	walk(id)
	return out
}

// IsAncestor reports whether ancestor lies on the parent chain above id.
func (d *Document) IsAncestor(ancestor, id string) bool {
	seen := map[string]bool{}
	for n := d.Parent(id); n != nil; n = d.Parent(n.ID) {
		if n.ID == ancestor {
			return true
		}
		if seen[n.ID] {
			return false
		}
		seen[n.ID] = true
	}
	return false
}

// Depth returns the number of edges between id and its effective root, or -1
// for unknown ids.
func (d *Document) Depth(id string) int {
	if d.index[id] == nil {
		return -1
	}
	depth := 0
	seen := map[string]bool{id: true}
	for n := d.Parent(id); n != nil; n = d.Parent(n.ID) {
		if seen[n.ID] {
			break
		}
		seen[n.ID] = true
		depth++
	}
	return depth
}

// Search returns the nodes whose title contains term, case-insensitively, in
// document order. An empty term matches nothing.
func (d *Document) Search(term string) []*Node {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []*Node
	for _, n := range d.nodes {
		if strings.Contains(strings.ToLower(n.Title), term) {
			out = append(out, n)
		}
	}
	return out
}
