package session

import (
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/route"
	"github.com/matzehuels/brainwave/pkg/viewport"
)

// AutoLayout measures the visible nodes, lays out the tree under the root
// and centers the view on the root within screen. An empty screen rectangle
// leaves the view alone.
func (s *Session) AutoLayout(screen geom.Rect) (layout.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res layout.Result
	err := s.mutate(func(d *mindmap.Document) error {
		if s.opts.Measurer != nil {
			layout.MeasureAll(d, mindmap.Visible(d), s.opts.Measurer)
		}
		var err error
		if res, err = layout.Tree(d, "", s.opts.Layout); err != nil {
			return err
		}
		if root := d.Node(res.RootID); root != nil && !screen.Empty() {
			s.view.Pan = viewport.CenterOn(root.Center(), screen, s.view.Scale)
		}
		return nil
	})
	return res, err
}

// Zoom scales the view by factor around a screen anchor. It reports false
// and leaves the view unchanged when the result would leave the zoom range.
func (s *Session) Zoom(factor float64, anchor geom.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setView(viewport.ApplyZoom(s.view, factor, anchor, s.opts.Viewport))
}

// ZoomTo sets an absolute scale around a screen anchor.
func (s *Session) ZoomTo(scale float64, anchor geom.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setView(viewport.ZoomTo(s.view, scale, anchor, s.opts.Viewport))
}

// Wheel zooms by a mouse wheel delta around the pointer position.
func (s *Session) Wheel(deltaY float64, anchor geom.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := viewport.WheelFactor(deltaY, s.opts.Viewport)
	return s.setView(viewport.ApplyZoom(s.view, f, anchor, s.opts.Viewport))
}

// PanBy moves the view by a screen-space delta.
func (s *Session) PanBy(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setView(viewport.Pan(s.view, dx, dy), true)
}

// CenterOn pans so node id sits in the middle of screen at the current scale.
func (s *Session) CenterOn(id string, screen geom.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.doc.Node(id)
	if n == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	t := s.view
	t.Pan = viewport.CenterOn(n.Center(), screen, t.Scale)
	s.setView(t, true)
	return nil
}

// ResetView returns to scale 1 with the root centered in screen.
func (s *Session) ResetView(screen geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := viewport.Reset()
	if root := s.doc.Root(); root != nil {
		t.Pan = viewport.CenterOn(root.Center(), screen, t.Scale)
	}
	s.setView(t, true)
}

// FitView scales and pans so every visible node fits into screen.
func (s *Session) FitView(screen geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds := route.Bounds(mindmap.Visible(s.doc), s.opts.Route)
	s.setView(viewport.Fit(bounds, screen, s.opts.Viewport), true)
}

// setView stores t if ok and the transform is usable. View changes are not
// undoable but are reported so the view persists.
func (s *Session) setView(t viewport.Transform, ok bool) bool {
	if !ok || !t.Valid() {
		return false
	}
	s.view = t
	s.notify()
	return true
}
