package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// Measurer reports the rendered size of a node.
type Measurer interface {
	Measure(n *mindmap.Node) (w, h float64)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(n *mindmap.Node) (w, h float64)

// Measure calls f(n).
func (f MeasurerFunc) Measure(n *mindmap.Node) (w, h float64) { return f(n) }

// MeasureAll stores the size reported by m for each node into doc.
func MeasureAll(doc *mindmap.Document, nodes []*mindmap.Node, m Measurer) {
	for _, n := range nodes {
		w, h := m.Measure(n)
		doc.SetSize(n.ID, w, h)
	}
}

const (
	fontCharWidth  = 0.55
	fontLineHeight = 1.35
)

// TextMeasurer estimates node card sizes from text length using average
// glyph metrics. The renderer wraps text with the same rules via [TextMeasurer.Lines],
// so estimated and drawn sizes agree.
type TextMeasurer struct {
	TitleSize    float64 // font size of the title
	BodySize     float64 // font size of description and URL
	Padding      float64 // inner padding on every side
	MinWidth     float64
	MaxWidth     float64
	MaxDescLines int // description lines beyond this are elided
}

// DefaultTextMeasurer returns metrics matching the bundled SVG styles.
func DefaultTextMeasurer() TextMeasurer {
	return TextMeasurer{
		TitleSize:    16,
		BodySize:     13,
		Padding:      14,
		MinWidth:     160,
		MaxWidth:     280,
		MaxDescLines: 4,
	}
}

// TextBlock is the wrapped text content of a node card.
type TextBlock struct {
	Title       []string
	Description []string
	URL         string
}

// Lines wraps the node text to the measurer's maximum width.
func (m TextMeasurer) Lines(n *mindmap.Node) TextBlock {
	inner := m.MaxWidth - 2*m.Padding
	tb := TextBlock{
		Title:       Wrap(n.Title, charsFor(inner, m.TitleSize)),
		Description: Wrap(n.Description, charsFor(inner, m.BodySize)),
	}
	if m.MaxDescLines > 0 && len(tb.Description) > m.MaxDescLines {
		tb.Description = tb.Description[:m.MaxDescLines]
		last := tb.Description[m.MaxDescLines-1]
		tb.Description[m.MaxDescLines-1] = strings.TrimRight(last, " .") + "…"
	}
	if n.URL != "" {
		limit := charsFor(inner, m.BodySize)
		tb.URL = n.URL
		if r := []rune(tb.URL); len(r) > limit && limit > 1 {
			tb.URL = string(r[:limit-1]) + "…"
		}
	}
	return tb
}

// Measure implements Measurer.
func (m TextMeasurer) Measure(n *mindmap.Node) (w, h float64) {
	tb := m.Lines(n)

	widest := longest(tb.Title) * m.TitleSize * fontCharWidth
	widest = math.Max(widest, longest(tb.Description)*m.BodySize*fontCharWidth)
	widest = math.Max(widest, float64(len([]rune(tb.URL)))*m.BodySize*fontCharWidth)
	w = math.Min(m.MaxWidth, math.Max(m.MinWidth, widest+2*m.Padding))

	h = 2*m.Padding + float64(max(1, len(tb.Title)))*m.TitleSize*fontLineHeight
	if len(tb.Description) > 0 {
		h += m.BodySize*0.5 + float64(len(tb.Description))*m.BodySize*fontLineHeight
	}
	if tb.URL != "" {
		h += m.BodySize*0.5 + m.BodySize*fontLineHeight
	}
	return math.Round(w), math.Round(h)
}

func charsFor(width, size float64) int {
	return max(1, int(width/(size*fontCharWidth)))
}

func longest(lines []string) float64 {
	n := 0
	for _, l := range lines {
		n = max(n, len([]rune(l)))
	}
	return float64(n)
}

// Wrap breaks text into lines of at most limit runes, splitting on spaces
// and hard-breaking words longer than a line. Blank input yields no lines.
func Wrap(text string, limit int) []string {
	limit = max(1, limit)
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var cur []rune
		for _, word := range strings.Fields(para) {
			wr := []rune(word)
			for len(wr) > limit {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = nil
				}
				lines = append(lines, string(wr[:limit]))
				wr = wr[limit:]
			}
			switch {
			case len(cur) == 0:
				cur = wr
			case len(cur)+1+len(wr) <= limit:
				cur = append(append(cur, ' '), wr...)
			default:
				lines = append(lines, string(cur))
				cur = wr
			}
		}
		if len(cur) > 0 {
			lines = append(lines, string(cur))
		}
	}
	return lines
}
