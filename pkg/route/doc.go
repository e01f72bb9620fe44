// Package route computes connector geometry for a laid-out mind map.
//
// For every visible parent/child pair and every auxiliary link between two
// visible nodes, [Route] picks an anchor on each node's boundary and joins
// them with a cubic bezier whose control points leave each anchor
// perpendicular to its side.
//
// # Anchor Rules
//
// The designated root anchors in four directions ([FreeAnchor]): whichever of
// |dx| and |dy| to the target is longer decides the side, ties going
// horizontal. Every other node anchors laterally ([LateralAnchor]): left or
// right by the sign of dx. Near the diagonal |dx| ≈ |dy| a root anchor can
// flip between a horizontal and a vertical side as a node is dragged; this
// jitter is a known property of the rule and is kept.
//
// # Overlay Coordinates
//
// [Bounds] covers every visible node box plus padding. Connector paths are
// expressed relative to the top-left corner of those bounds so an SVG overlay
// can be positioned at that corner. Anchor and label points stay in model
// space. Zero visible nodes or non-finite coordinates fall back to
// [Config.EmptyBounds].
//
// Routing never fails: links with a missing or hidden endpoint are skipped.
package route
