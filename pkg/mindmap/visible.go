package mindmap

// Visible returns the displayable nodes in breadth-first order, starting from
// the effective roots in document order. Collapsed nodes are included but
// their children are not expanded.
//
// Visible never fails: nodes stranded in a corrupted parent cycle are simply
// unreachable, and the visited set bounds the walk to O(V).
func Visible(d *Document) []*Node {
	queue := d.Roots()
	seen := make(map[*Node]bool, d.Len())
	out := make([]*Node, 0, d.Len())
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		if n.Collapsed {
			continue
		}
		queue = append(queue, d.children[n.ID]...)
	}
	return out
}

// VisibleSet indexes a node slice by id.
func VisibleSet(nodes []*Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}

// HiddenCount returns the number of descendants hidden below a collapsed node.
// It returns 0 for expanded nodes.
func HiddenCount(d *Document, id string) int {
	n := d.Node(id)
	if n == nil || !n.Collapsed {
		return 0
	}
	return len(d.Descendants(id))
}
