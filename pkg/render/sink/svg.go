package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/render"
	"github.com/matzehuels/brainwave/pkg/render/styles"
	"github.com/matzehuels/brainwave/pkg/route"
)

const nodeInteractionCSS = `
    .node .card { transition: stroke-width 0.2s ease; }
    .node:hover .card { stroke-width: 4; }
    .connector { transition: stroke-width 0.2s ease, opacity 0.2s ease; }
    .connector.highlight { stroke-width: 4; }
    .dim .connector:not(.highlight) { opacity: 0.35; }
    a { cursor: pointer; }`

const nodeInteractionJS = `
    function highlight(id) {
      document.documentElement.classList.add('dim');
      document.querySelectorAll('.connector').forEach(c => c.classList.toggle('highlight', c.dataset.from === id || c.dataset.to === id));
    }
    function clearHighlight() {
      document.documentElement.classList.remove('dim');
      document.querySelectorAll('.connector').forEach(c => c.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.node));
      el.addEventListener('mouseleave', clearHighlight);
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	measurer    layout.TextMeasurer
	highlights  []string
	shadows     bool
	interactive bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithShadows() SVGOption             { return func(r *svgRenderer) { r.shadows = true } }
func WithStatic() SVGOption              { return func(r *svgRenderer) { r.interactive = false } }

// WithHighlights marks nodes (typically search matches) in addition to any
// highlight already set on the scene.
func WithHighlights(ids ...string) SVGOption {
	return func(r *svgRenderer) { r.highlights = append(r.highlights, ids...) }
}

// WithMeasurer sets the text metrics used to wrap card text. It should match
// the measurer used to size the nodes.
func WithMeasurer(m layout.TextMeasurer) SVGOption { return func(r *svgRenderer) { r.measurer = m } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Default, measurer: layout.DefaultTextMeasurer(), interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(s *render.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := s.Bounds.Width(), s.Bounds.Height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.style.RenderDefs(&buf)
	r.style.RenderBackground(&buf, w, h)

	cards := buildCards(s, &r)
	wires := buildWires(s, cards)

	buf.WriteString(`  <g class="connectors">` + "\n")
	for _, wr := range wires {
		r.style.RenderConnector(&buf, wr)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="labels">` + "\n")
	for _, wr := range wires {
		if wr.Label != "" {
			r.style.RenderLabel(&buf, wr)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, c := range cards {
		r.style.RenderNode(&buf, c)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		renderNodeInteraction(&buf)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNodeInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
}

func buildCards(s *render.Scene, r *svgRenderer) []styles.Card {
	extra := make(map[string]bool, len(r.highlights))
	for _, id := range r.highlights {
		extra[id] = true
	}

	cards := make([]styles.Card, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		box := s.Local(n.Box)
		lines := r.measurer.Lines(&mindmap.Node{
			Title:       n.Title,
			Description: n.Description,
			URL:         n.URL,
		})
		cards = append(cards, styles.Card{
			ID:          n.ID,
			Title:       lines.Title,
			Description: lines.Description,
			URL:         n.URL,
			Color:       n.Color.Hex(),
			Shape:       n.Shape,
			X:           box.MinX,
			Y:           box.MinY,
			W:           box.Width(),
			H:           box.Height(),
			TitleSize:   r.measurer.TitleSize,
			BodySize:    r.measurer.BodySize,
			Padding:     r.measurer.Padding,
			Collapsed:   n.Collapsed,
			Hidden:      n.HiddenCount,
			Locked:      n.Locked,
			Highlight:   n.Highlight || extra[n.ID],
			Selected:    n.Selected,
			Shadow:      r.shadows,
		})
	}
	return cards
}

func buildWires(s *render.Scene, cards []styles.Card) []styles.Wire {
	colorOf := make(map[string]string, len(cards))
	lit := make(map[string]bool)
	for _, c := range cards {
		colorOf[c.ID] = c.Color
		if c.Highlight || c.Selected {
			lit[c.ID] = true
		}
	}

	o := s.Origin()
	wires := make([]styles.Wire, 0, len(s.Overlay.Connectors))
	for _, c := range s.Overlay.Connectors {
		wr := styles.Wire{
			ID:        c.SourceEdgeID,
			Link:      c.Kind == route.KindLink,
			FromID:    c.FromID,
			ToID:      c.ToID,
			Path:      c.Path,
			Label:     c.Label,
			LabelX:    c.LabelAt.X - o.X,
			LabelY:    c.LabelAt.Y - o.Y,
			Highlight: lit[c.FromID] && lit[c.ToID],
		}
		if !wr.Link {
			wr.Color = colorOf[c.ToID]
		}
		wires = append(wires, wr)
	}
	return wires
}
