package route

import (
	"math"

	"github.com/matzehuels/brainwave/pkg/geom"
)

// Side is the edge of a node box an anchor sits on.
type Side int

const (
	SideRight Side = iota
	SideLeft
	SideDown
	SideUp
)

var sideNames = [...]string{"right", "left", "down", "up"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return "unknown"
	}
	return sideNames[s]
}

// MarshalText encodes the side name.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Vector returns the outward unit direction of the side. Y grows downward.
func (s Side) Vector() geom.Point {
	switch s {
	case SideLeft:
		return geom.Point{X: -1}
	case SideDown:
		return geom.Point{Y: 1}
	case SideUp:
		return geom.Point{Y: -1}
	default:
		return geom.Point{X: 1}
	}
}

// Horizontal reports whether the side is left or right.
func (s Side) Horizontal() bool { return s == SideLeft || s == SideRight }

// Anchor is an attachment point on a node boundary.
type Anchor struct {
	Point geom.Point `json:"point"`
	Side  Side       `json:"side"`
}

// FreeAnchor picks the box edge facing target along the dominant axis. When
// |dx| >= |dy| the left or right edge is used, otherwise the top or bottom.
// The anchor is moved inward by inset, clamped to the box center.
func FreeAnchor(center geom.Point, halfW, halfH, inset float64, target geom.Point) Anchor {
	dx, dy := target.X-center.X, target.Y-center.Y
	if math.Abs(dx) >= math.Abs(dy) {
		return LateralAnchor(center, halfW, halfH, inset, target)
	}
	off := edgeOffset(halfH, inset)
	if dy > 0 {
		return Anchor{Point: geom.Point{X: center.X, Y: center.Y + off}, Side: SideDown}
	}
	return Anchor{Point: geom.Point{X: center.X, Y: center.Y - off}, Side: SideUp}
}

// LateralAnchor picks the left or right edge by the sign of dx to target,
// regardless of dy. A target straight above or below anchors on the right.
func LateralAnchor(center geom.Point, halfW, halfH, inset float64, target geom.Point) Anchor {
	off := edgeOffset(halfW, inset)
	if target.X-center.X < 0 {
		return Anchor{Point: geom.Point{X: center.X - off, Y: center.Y}, Side: SideLeft}
	}
	return Anchor{Point: geom.Point{X: center.X + off, Y: center.Y}, Side: SideRight}
}

// edgeOffset is the distance from the center to an anchor: the half size
// minus the inset, never negative.
func edgeOffset(half, inset float64) float64 {
	half = math.Max(0, half)
	inset = math.Min(math.Max(0, inset), half)
	return half - inset
}
