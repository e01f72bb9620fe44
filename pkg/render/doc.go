// Package render turns a laid-out mind map into drawable output.
//
// # Overview
//
// A [Scene] is the renderer-independent description of one frame: the
// visible node cards with their boxes, the routed connector overlay and the
// bounds that frame them. It is built by the pipeline from a document and
// consumed by the output packages:
//
//   - [sink]: standalone SVG and JSON scene output
//   - [styles]: color themes and card shapes used by the SVG sink
//   - [nodelink]: a Graphviz rendering of the tree for quick overviews
//
// # Coordinates
//
// Scene boxes and connector anchors are model coordinates. Connector paths
// are relative to [Scene.Bounds], so an SVG with viewBox "0 0 W H" can place
// each card at Box.Min - Bounds.Min and draw the paths unchanged.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/brainwave/pkg/render/sink
// [styles]: github.com/matzehuels/brainwave/pkg/render/styles
// [nodelink]: github.com/matzehuels/brainwave/pkg/render/nodelink
package render
