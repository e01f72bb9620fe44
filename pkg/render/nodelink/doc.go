// Package nodelink renders mind maps as Graphviz node-link diagrams.
//
// # Overview
//
// This is an alternative to the positioned [sink] output: Graphviz picks the
// node positions itself, ignoring the stored coordinates. It is handy for a
// quick overview of a large map or for feeding the tree into other Graphviz
// tooling.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT lays the tree out left to right (rankdir=LR). Tree
// edges take the child's palette color; links are dashed and unconstrained.
// Collapsed subtrees are omitted and their root is tagged with the hidden
// count, unless [Options].ExpandAll is set.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. The pipeline exposes it as the "dot.svg" format.
//
// [sink]: github.com/matzehuels/brainwave/pkg/render/sink
package nodelink
