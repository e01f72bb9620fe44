package mindmap

import "testing"

// build creates a document from (id, parent) pairs. An empty parent makes a
// root.
func build(t *testing.T, pairs ...string) *Document {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("build needs id/parent pairs")
	}
	var data Data
	for i := 0; i < len(pairs); i += 2 {
		data.Nodes = append(data.Nodes, Node{ID: pairs[i], Title: pairs[i], ParentID: pairs[i+1]})
	}
	return FromData(data)
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
