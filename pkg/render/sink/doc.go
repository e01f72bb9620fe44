// Package sink writes a [render.Scene] to output formats.
//
// # SVG
//
// [RenderSVG] produces a standalone SVG whose viewBox is the scene bounds.
// Connectors are drawn first, then their labels, then the node cards, so
// cards always sit on top of the wires that meet them.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithStyle(styles.Light),
//	    sink.WithShadows(),
//	    sink.WithHighlights(matches...),
//	)
//
// The output carries a small stylesheet and script that highlight a node's
// connectors on hover.
//
// # JSON
//
// [RenderJSON] serializes the scene itself: node boxes, connector anchors
// and paths. It is what the HTTP API serves to browser front ends that draw
// the map themselves.
//
// # PDF and PNG
//
// [RenderPDF] and [RenderPNG] convert the SVG with rsvg-convert.
//
// [render.Scene]: github.com/matzehuels/brainwave/pkg/render.Scene
package sink
