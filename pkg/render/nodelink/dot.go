package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the description and URL to node labels.
	// When false, only the title is shown.
	Detailed bool

	// HideLinks omits auxiliary links, leaving only the tree.
	HideLinks bool

	// ExpandAll renders every node, ignoring collapse state.
	ExpandAll bool
}

// ToDOT converts a mind map to Graphviz DOT format. Tree edges run left to
// right from the root; auxiliary links are drawn dashed and do not affect
// ranking. The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(doc *mindmap.Document, opts Options) string {
	nodes := mindmap.Visible(doc)
	if opts.ExpandAll {
		nodes = doc.Nodes()
	}
	shown := mindmap.VisibleSet(nodes)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=18, margin=\"0.25,0.12\"];\n")
	buf.WriteString("  edge [arrowhead=none, penwidth=2];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.35;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		if n.Collapsed && !opts.ExpandAll {
			if hidden := mindmap.HiddenCount(doc, n.ID); hidden > 0 {
				attrs = append(attrs, fmt.Sprintf("xlabel=\"+%d\"", hidden))
			}
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		p := doc.Parent(n.ID)
		if p == nil || !shown[p.ID] {
			continue
		}
		attrs := []string{fmt.Sprintf("color=%q", n.Color.Hex())}
		if n.EdgeLabel != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", n.EdgeLabel))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", p.ID, n.ID, strings.Join(attrs, ", "))
	}

	if !opts.HideLinks {
		for _, l := range doc.Links() {
			if !shown[l.From] || !shown[l.To] {
				continue
			}
			attrs := []string{"style=dashed", "color=\"#94a3b8\"", "arrowhead=normal", "constraint=false"}
			if l.Label != "" {
				attrs = append(attrs, fmt.Sprintf("label=%q", l.Label))
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.From, l.To, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *mindmap.Node, detailed bool) string {
	if !detailed {
		return n.Title
	}
	parts := []string{n.Title}
	if n.Description != "" {
		parts = append(parts, n.Description)
	}
	if n.URL != "" {
		parts = append(parts, n.URL)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *mindmap.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", n.Color.Hex()),
	}
	switch n.Shape {
	case mindmap.ShapeRect:
		attrs = append(attrs, "style=filled")
	case mindmap.ShapeEllipse:
		attrs = append(attrs, "shape=ellipse", "style=filled")
	case mindmap.ShapeDiamond:
		attrs = append(attrs, "shape=diamond", "style=filled")
	case mindmap.ShapePill:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"", "peripheries=1")
	}
	if n.Locked {
		attrs = append(attrs, "penwidth=3", "color=\"#f8fafc\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with a
// viewBox-only one so the diagram scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
