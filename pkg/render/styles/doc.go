// Package styles defines the visual themes used by the SVG sink.
//
// A [Style] draws the three layers of a mind map frame: connectors, their
// labels and node cards. Two themes are built in: [Dark] (the default,
// matching the interactive editor) and [Light] (suited to print and PDF).
//
// Card outlines follow the node's [mindmap.Shape]; the palette color of a
// node is used for its outline and title accent.
//
// # Text helpers
//
// [EscapeXML], [Truncate] and [WrapURL] are shared by every style and by
// the sink.
package styles
