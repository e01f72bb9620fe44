package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/brainwave/pkg/geom"
)

// Bezier is a cubic bezier segment.
type Bezier struct {
	Start geom.Point `json:"start"`
	C1    geom.Point `json:"c1"`
	C2    geom.Point `json:"c2"`
	End   geom.Point `json:"end"`
}

// Curve joins two anchors. Each control point sits offset units away from
// its anchor in the anchor side's outward direction.
func Curve(start, end Anchor, offset float64) Bezier {
	return Bezier{
		Start: start.Point,
		C1:    start.Point.Add(start.Side.Vector().Scale(offset)),
		C2:    end.Point.Add(end.Side.Vector().Scale(offset)),
		End:   end.Point,
	}
}

// Path formats the curve as an SVG path command with coordinates relative to
// origin: "M x y C c1x c1y, c2x c2y, x y".
func (b Bezier) Path(origin geom.Point) string {
	s, c1, c2, e := b.Start.Sub(origin), b.C1.Sub(origin), b.C2.Sub(origin), b.End.Sub(origin)
	var sb strings.Builder
	sb.WriteString("M ")
	writePair(&sb, s)
	sb.WriteString(" C ")
	writePair(&sb, c1)
	sb.WriteString(", ")
	writePair(&sb, c2)
	sb.WriteString(", ")
	writePair(&sb, e)
	return sb.String()
}

// At evaluates the curve at parameter t in [0, 1].
func (b Bezier) At(t float64) geom.Point {
	u := 1 - t
	w0, w1, w2, w3 := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Point{
		X: w0*b.Start.X + w1*b.C1.X + w2*b.C2.X + w3*b.End.X,
		Y: w0*b.Start.Y + w1*b.C1.Y + w2*b.C2.Y + w3*b.End.Y,
	}
}

// IsFinite reports whether every point of the curve is finite.
func (b Bezier) IsFinite() bool {
	return b.Start.IsFinite() && b.C1.IsFinite() && b.C2.IsFinite() && b.End.IsFinite()
}

func writePair(sb *strings.Builder, p geom.Point) {
	sb.WriteString(num(p.X))
	sb.WriteByte(' ')
	sb.WriteString(num(p.Y))
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
