package mindmap

import "fmt"

// Problem describes one integrity issue found by [Document.Validate].
type Problem struct {
	NodeID string
	Reason string
}

func (p Problem) String() string { return fmt.Sprintf("%s: %s", p.NodeID, p.Reason) }

// Validate lists integrity problems that tolerant loading papered over:
// duplicate ids, dangling or self parents, parent cycles and dangling links.
// A document with no problems returns nil.
func (d *Document) Validate() []Problem {
	var out []Problem
	seen := make(map[string]bool, len(d.nodes))
	for _, n := range d.nodes {
		switch {
		case n.ID == "":
			out = append(out, Problem{n.ID, "empty id"})
		case seen[n.ID]:
			out = append(out, Problem{n.ID, "duplicate id"})
		}
		seen[n.ID] = true

		if n.ParentID == "" {
			continue
		}
		if n.ParentID == n.ID {
			out = append(out, Problem{n.ID, "node is its own parent"})
		} else if d.index[n.ParentID] == nil {
			out = append(out, Problem{n.ID, fmt.Sprintf("parent %q does not exist", n.ParentID)})
		}
	}

	for _, id := range d.cycleMembers() {
		out = append(out, Problem{id, "parent chain forms a cycle"})
	}

	for i, l := range d.links {
		if d.index[l.From] == nil || d.index[l.To] == nil {
			out = append(out, Problem{l.From, fmt.Sprintf("link %d references a missing node", i)})
		}
	}
	return out
}

// cycleMembers returns the ids of nodes that cannot reach an effective root
// by following parents.
func (d *Document) cycleMembers() []string {
	reach := make(map[string]bool, len(d.nodes))
	for _, r := range d.Roots() {
		reach[r.ID] = true
		for _, c := range d.Descendants(r.ID) {
			reach[c.ID] = true
		}
	}
	var out []string
	for _, n := range d.nodes {
		if !reach[n.ID] && d.index[n.ID] == n {
			out = append(out, n.ID)
		}
	}
	return out
}
