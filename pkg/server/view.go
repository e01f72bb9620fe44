package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/pipeline"
	"github.com/matzehuels/brainwave/pkg/render/sink"
)

// screenRequest carries the client viewport size. Zero values fall back to
// the configured screen.
type screenRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) screen(req screenRequest) geom.Rect {
	if req.Width > 0 && req.Height > 0 {
		return geom.Rect{MaxX: req.Width, MaxY: req.Height}
	}
	return s.opts.Screen
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req screenRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := sess.AutoLayout(s.screen(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rootId":  res.RootID,
		"placed":  res.Placed,
		"skipped": res.Skipped,
		"view":    toView(sess.View()),
	})
}

// zoomRequest zooms by Factor, to an absolute Scale, or by a wheel DeltaY,
// around the screen anchor (X, Y). Exactly one of the three must be set.
type zoomRequest struct {
	Factor float64 `json:"factor"`
	Scale  float64 `json:"scale"`
	DeltaY float64 `json:"deltaY"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req zoomRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	anchor := geom.Point{X: req.X, Y: req.Y}

	var changed bool
	switch {
	case req.Factor != 0:
		changed = sess.Zoom(req.Factor, anchor)
	case req.Scale != 0:
		changed = sess.ZoomTo(req.Scale, anchor)
	case req.DeltaY != 0:
		changed = sess.Wheel(req.DeltaY, anchor)
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidScale, "one of factor, scale or deltaY is required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed, "view": toView(sess.View())})
}

func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req pointRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.PanBy(req.DX, req.DY)
	writeJSON(w, http.StatusOK, map[string]any{"view": toView(sess.View())})
}

func (s *Server) handleCenterOn(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req screenRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.CenterOn(chi.URLParam(r, "nodeID"), s.screen(req)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"view": toView(sess.View())})
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req screenRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.FitView(s.screen(req))
	writeJSON(w, http.StatusOK, map[string]any{"view": toView(sess.View())})
}

func (s *Server) handleResetView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req screenRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.ResetView(s.screen(req))
	writeJSON(w, http.StatusOK, map[string]any{"view": toView(sess.View())})
}

// =============================================================================
// Scene and export
// =============================================================================

// renderOptions starts from the configured defaults and applies the query
// string: style, shadows, q (highlight term) and measure.
func (s *Server) renderOptions(r *http.Request, selected string) pipeline.Options {
	opts := s.opts.Render
	opts.Logger = s.logger
	opts.Selected = selected
	q := r.URL.Query()
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("q"); v != "" {
		opts.Highlight = v
	}
	opts.Shadows = queryBool(r, "shadows", opts.Shadows)
	opts.Measure = queryBool(r, "measure", opts.Measure)
	opts.Detailed = queryBool(r, "detailed", opts.Detailed)
	opts.HideLinks = queryBool(r, "hide_links", opts.HideLinks)
	opts.ExpandAll = queryBool(r, "expand_all", opts.ExpandAll)
	return opts
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	opts := s.renderOptions(r, sess.Selected())
	scene, err := s.opts.Runner.Scene(r.Context(), sess.Document(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(scene, sink.WithJSONStyle(opts.Style))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode scene"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatDOT:   "text/vnd.graphviz",
	pipeline.FormatGraph: "image/svg+xml",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.renderOptions(r, "")
	opts.Formats = []string{format}
	res, err := s.opts.Runner.Execute(r.Context(), sess.Document(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	if queryBool(r, "download", false) {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, sess.Name, format))
	}
	_, _ = w.Write(res.Artifacts[format])
}
