package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/brainwave/pkg/mindmap"
)

const roundedRadius = 12.0

// WriteShape writes the outline element of a card with the given extra
// attributes (fill, stroke, class).
func WriteShape(buf *bytes.Buffer, shape mindmap.Shape, x, y, w, h float64, attrs string) {
	switch shape {
	case mindmap.ShapeRect:
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`, x, y, w, h, attrs)
	case mindmap.ShapePill:
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" %s/>`, x, y, w, h, h/2, attrs)
	case mindmap.ShapeEllipse:
		fmt.Fprintf(buf, `<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" %s/>`, x+w/2, y+h/2, w/2, h/2, attrs)
	case mindmap.ShapeDiamond:
		fmt.Fprintf(buf, `<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" %s/>`,
			x+w/2, y, x+w, y+h/2, x+w/2, y+h, x, y+h/2, attrs)
	default:
		r := min(roundedRadius, h/2, w/2)
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" %s/>`, x, y, w, h, r, attrs)
	}
}

// TextWidthFactor is the share of the card width usable for text. Ellipses
// and diamonds lose their corners.
func TextWidthFactor(shape mindmap.Shape) float64 {
	switch shape {
	case mindmap.ShapeEllipse:
		return 0.8
	case mindmap.ShapeDiamond:
		return 0.6
	default:
		return 1
	}
}
