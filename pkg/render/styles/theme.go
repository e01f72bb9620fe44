package styles

import (
	"bytes"
	"fmt"
)

// Theme is a flat-color Style. Dark and Light are the built-in instances.
type Theme struct {
	ID          string
	Background  string
	CardFill    string
	Text        string
	Muted       string
	Connector   string
	Link        string
	LabelFill   string
	Highlight   string
	Selection   string
	FontFamily  string
	StrokeWidth float64
}

// Dark is the default theme of the interactive editor.
var Dark = Theme{
	ID:          "dark",
	Background:  "#0f172a",
	CardFill:    "#1e293b",
	Text:        "#f1f5f9",
	Muted:       "#94a3b8",
	Connector:   "#64748b",
	Link:        "#f59e0b",
	LabelFill:   "#0f172a",
	Highlight:   "#facc15",
	Selection:   "#38bdf8",
	FontFamily:  "Inter, system-ui, sans-serif",
	StrokeWidth: 2,
}

// Light is a print friendly theme.
var Light = Theme{
	ID:          "light",
	Background:  "#ffffff",
	CardFill:    "#ffffff",
	Text:        "#0f172a",
	Muted:       "#475569",
	Connector:   "#94a3b8",
	Link:        "#d97706",
	LabelFill:   "#ffffff",
	Highlight:   "#ca8a04",
	Selection:   "#0284c7",
	FontFamily:  "Inter, system-ui, sans-serif",
	StrokeWidth: 2,
}

func (t Theme) Name() string { return t.ID }

func (t Theme) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="card-shadow" x="-20%" y="-20%" width="140%" height="160%">` +
		`<feDropShadow dx="0" dy="4" stdDeviation="6" flood-opacity="0.35"/></filter>` + "\n")
	fmt.Fprintf(buf, `    <marker id="link-arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">`+
		`<path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n", t.Link)
	buf.WriteString("  </defs>\n")
}

func (t Theme) RenderBackground(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", w, h, t.Background)
}

func (t Theme) RenderConnector(buf *bytes.Buffer, w Wire) {
	stroke, extra := t.Connector, ""
	class := "connector"
	if w.Link {
		stroke = t.Link
		extra = ` stroke-dasharray="8 6" marker-end="url(#link-arrow)"`
		class += " link"
	} else if w.Color != "" {
		stroke = w.Color
	}
	if w.Highlight {
		class += " highlight"
	}
	fmt.Fprintf(buf, `  <path id="%s" class="%s" data-from="%s" data-to="%s" d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round"%s/>`+"\n",
		EscapeXML(w.ID), class, EscapeXML(w.FromID), EscapeXML(w.ToID), w.Path, stroke, t.StrokeWidth, extra)
}

func (t Theme) RenderLabel(buf *bytes.Buffer, w Wire) {
	const size = 12.0
	label := Truncate(w.Label, 40)
	width := float64(len([]rune(label)))*size*0.55 + 12
	fmt.Fprintf(buf, `  <g class="edge-label" data-edge="%s">`, EscapeXML(w.ID))
	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s" opacity="0.9"/>`,
		w.LabelX-width/2, w.LabelY-size*0.8, width, size*1.6, t.LabelFill)
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`,
		w.LabelX, w.LabelY, t.FontFamily, size, t.Muted, EscapeXML(label))
	buf.WriteString("</g>\n")
}

func (t Theme) RenderNode(buf *bytes.Buffer, c Card) {
	stroke, width := c.Color, t.StrokeWidth
	if c.Highlight {
		stroke, width = t.Highlight, t.StrokeWidth*2
	}
	if c.Selected {
		stroke, width = t.Selection, t.StrokeWidth*2
	}

	fmt.Fprintf(buf, `  <g id="node-%s" class="node" data-node="%s">`+"\n", EscapeXML(c.ID), EscapeXML(c.ID))
	attrs := fmt.Sprintf(`class="card" fill="%s" stroke="%s" stroke-width="%.1f"`, t.CardFill, stroke, width)
	if c.Shadow {
		attrs += ` filter="url(#card-shadow)"`
	}
	buf.WriteString("    ")
	WriteShape(buf, c.Shape, c.X, c.Y, c.W, c.H, attrs)
	buf.WriteString("\n")

	t.renderText(buf, c)

	if c.Collapsed && c.Hidden > 0 {
		cx, cy := c.X+c.W, c.Y+c.H/2
		fmt.Fprintf(buf, `    <g class="collapsed-badge"><circle cx="%.2f" cy="%.2f" r="11" fill="%s"/>`+
			`<text x="%.2f" y="%.2f" font-family="%s" font-size="10" fill="%s" text-anchor="middle" dominant-baseline="central">+%d</text></g>`+"\n",
			cx, cy, c.Color, cx, cy, t.FontFamily, t.Background, c.Hidden)
	}
	if c.Locked {
		lx, ly := c.X+c.W-14, c.Y+8
		fmt.Fprintf(buf, `    <g class="lock-badge"><rect x="%.2f" y="%.2f" width="8" height="6" rx="1" fill="%s"/>`+
			`<path d="M %.2f %.2f v -2 a 2.5 2.5 0 0 1 5 0 v 2" fill="none" stroke="%s" stroke-width="1.2"/></g>`+"\n",
			lx, ly+3, t.Muted, lx+1.5, ly+3, t.Muted)
	}
	buf.WriteString("  </g>\n")
}

// renderText writes the title, description and URL lines centered in the
// card.
func (t Theme) renderText(buf *bytes.Buffer, c Card) {
	lineH := func(size float64) float64 { return size * 1.35 }
	total := float64(len(c.Title))*lineH(c.TitleSize) + float64(len(c.Description))*lineH(c.BodySize)
	if c.URL != "" {
		total += lineH(c.BodySize)
	}
	cx := c.X + c.W/2
	y := c.Y + (c.H-total)/2

	buf.WriteString(`    <text class="card-text" text-anchor="middle">`)
	for _, line := range c.Title {
		y += lineH(c.TitleSize)
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" font-weight="600" fill="%s">%s</tspan>`,
			cx, y-c.TitleSize*0.3, t.FontFamily, c.TitleSize, t.Text, EscapeXML(line))
	}
	for _, line := range c.Description {
		y += lineH(c.BodySize)
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s">%s</tspan>`,
			cx, y-c.BodySize*0.3, t.FontFamily, c.BodySize, t.Muted, EscapeXML(line))
	}
	buf.WriteString("</text>\n")

	if c.URL != "" {
		y += lineH(c.BodySize)
		WrapURL(buf, c.URL, func() {
			fmt.Fprintf(buf, `<text class="card-url" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle" text-decoration="underline">%s</text>`,
				cx, y-c.BodySize*0.3, t.FontFamily, c.BodySize, c.Color, EscapeXML(Truncate(DisplayURL(c.URL), 36)))
		})
		buf.WriteString("\n")
	}
}
