// Package mindmap provides the in-memory document model of a Brainwave mind
// map: a tree of nodes linked through parent ids, plus free-form auxiliary
// links between any two nodes.
//
// # Overview
//
// A [Document] owns its nodes. Geometry packages ([layout], [route]) receive
// the document (or the visible slice of it) explicitly and read or write node
// coordinates through the returned pointers; there is no ambient global state.
//
//	doc := mindmap.NewDefault()
//	n, err := doc.AddChild("root", mindmap.Fields{Title: "Idea"})
//	visible := mindmap.Visible(doc)
//
// # Tolerant Loading
//
// [FromData] never fails on malformed input. Nodes with a dangling parent id,
// a self parent, or an id already used by an earlier node are treated as
// effective roots. A missing nextId is derived from the numeric ids present.
// Use [Document.Validate] to list such problems without rejecting the data.
//
// # Rejected Actions
//
// Mutations validate before touching the document and return a
// *errors.Error on rejection: CYCLE_DETECTED when re-parenting under a
// descendant, NODE_LOCKED for locked nodes and ROOT_PROTECTED when deleting
// the root. A rejected mutation leaves the document unchanged.
//
// # Visibility
//
// [Visible] resolves which nodes are currently displayable: everything
// reachable from an effective root without passing through a collapsed node.
// Collapsed nodes are themselves visible.
//
// # Concurrency
//
// Document is not safe for concurrent use. The editing session in
// pkg/session serializes access.
//
// [layout]: github.com/matzehuels/brainwave/pkg/layout
// [route]: github.com/matzehuels/brainwave/pkg/route
package mindmap
