// Package viewport maps model coordinates to screen coordinates.
//
// A [Transform] applies screen = pan + model*scale. Zooming keeps the model
// point under a screen anchor fixed; scale changes that would leave
// [Config.MinScale]..[Config.MaxScale] are rejected rather than clamped, so a
// zero or negative scale is never reachable.
package viewport

import (
	"math"

	"github.com/matzehuels/brainwave/pkg/geom"
)

// Config bounds the zoom range.
type Config struct {
	MinScale         float64 `toml:"min_scale"`
	MaxScale         float64 `toml:"max_scale"`
	WheelSensitivity float64 `toml:"wheel_sensitivity"`
}

// DefaultConfig allows zooming between 0.2x and 3x.
func DefaultConfig() Config {
	return Config{MinScale: 0.2, MaxScale: 3.0, WheelSensitivity: 0.001}
}

// Transform is the pan/zoom state of a view.
type Transform struct {
	Scale float64    `json:"scale"`
	Pan   geom.Point `json:"pan"`
}

// Identity returns the unscaled, unpanned transform.
func Identity() Transform { return Transform{Scale: 1} }

// Reset is an alias of Identity used by reset-zoom actions.
func Reset() Transform { return Identity() }

// ToScreen maps a model point to screen space.
func (t Transform) ToScreen(p geom.Point) geom.Point { return t.Pan.Add(p.Scale(t.Scale)) }

// ToModel maps a screen point back to model space.
func (t Transform) ToModel(p geom.Point) geom.Point { return p.Sub(t.Pan).Scale(1 / t.Scale) }

// VisibleRect returns the model-space rectangle shown in a viewport of the
// given screen size.
func (t Transform) VisibleRect(w, h float64) geom.Rect {
	tl := t.ToModel(geom.Point{})
	br := t.ToModel(geom.Point{X: w, Y: h})
	return geom.Rect{MinX: tl.X, MinY: tl.Y, MaxX: br.X, MaxY: br.Y}
}

// Valid reports whether the transform has a usable scale and finite pan.
func (t Transform) Valid() bool {
	return t.Scale > 0 && !math.IsInf(t.Scale, 0) && t.Pan.IsFinite()
}

// ApplyZoom multiplies the scale by factor around a fixed screen anchor. It
// returns the unchanged transform and false when the resulting scale would
// leave the configured range or is not a positive finite number.
func ApplyZoom(t Transform, factor float64, anchor geom.Point, cfg Config) (Transform, bool) {
	return ZoomTo(t, t.Scale*factor, anchor, cfg)
}

// ZoomTo sets an absolute scale around a fixed screen anchor, with the same
// rejection rule as ApplyZoom.
func ZoomTo(t Transform, scale float64, anchor geom.Point, cfg Config) (Transform, bool) {
	if !t.Valid() || !anchor.IsFinite() || !inRange(scale, cfg) {
		return t, false
	}
	ratio := scale / t.Scale
	return Transform{
		Scale: scale,
		Pan:   anchor.Sub(anchor.Sub(t.Pan).Scale(ratio)),
	}, true
}

func inRange(scale float64, cfg Config) bool {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return false
	}
	return scale >= cfg.MinScale && scale <= cfg.MaxScale
}

// WheelFactor converts a wheel delta into a zoom factor. Scrolling down
// (positive delta) zooms out.
func WheelFactor(deltaY float64, cfg Config) float64 {
	return math.Exp(-deltaY * cfg.WheelSensitivity)
}

// CenterOn returns the pan that maps p to the center of rect at the given
// scale.
func CenterOn(p geom.Point, rect geom.Rect, scale float64) geom.Point {
	c := rect.Center()
	return geom.Point{X: c.X - p.X*scale, Y: c.Y - p.Y*scale}
}

// Pan translates the view by a screen-space delta.
func Pan(t Transform, dx, dy float64) Transform {
	t.Pan = t.Pan.Add(geom.Point{X: dx, Y: dy})
	return t
}

// FitScale returns the largest scale at which bounds fit into rect, clamped
// to the configured range. Degenerate input yields 1 clamped to the range.
func FitScale(bounds, rect geom.Rect, cfg Config) float64 {
	s := 1.0
	if bounds.Width() > 0 && bounds.Height() > 0 && rect.Width() > 0 && rect.Height() > 0 &&
		bounds.IsFinite() && rect.IsFinite() {
		s = math.Min(rect.Width()/bounds.Width(), rect.Height()/bounds.Height())
	}
	return math.Max(cfg.MinScale, math.Min(cfg.MaxScale, s))
}

// Fit returns a transform showing bounds centered in rect.
func Fit(bounds, rect geom.Rect, cfg Config) Transform {
	s := FitScale(bounds, rect, cfg)
	return Transform{Scale: s, Pan: CenterOn(bounds.Center(), rect, s)}
}
