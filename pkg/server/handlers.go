package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/brainwave/pkg/buildinfo"
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/session"
	"github.com/matzehuels/brainwave/pkg/viewport"
)

// =============================================================================
// Response types
// =============================================================================

type viewResponse struct {
	Scale float64 `json:"scale"`
	PanX  float64 `json:"panX"`
	PanY  float64 `json:"panY"`
}

func toView(t viewport.Transform) viewResponse {
	return viewResponse{Scale: t.Scale, PanX: t.Pan.X, PanY: t.Pan.Y}
}

type sessionResponse struct {
	session.Info
	View     viewResponse `json:"view"`
	Selected string       `json:"selected,omitempty"`
	CanUndo  bool         `json:"canUndo"`
	CanRedo  bool         `json:"canRedo"`
}

func describe(sess *session.Session) sessionResponse {
	return sessionResponse{
		Info:     sess.Info(),
		View:     toView(sess.View()),
		Selected: sess.Selected(),
		CanUndo:  sess.CanUndo(),
		CanRedo:  sess.CanRedo(),
	}
}

// session resolves the {id} URL parameter, writing the error response when
// the session does not exist.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

// =============================================================================
// Health and session lifecycle
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"build":    buildinfo.Get(),
		"sessions": s.sessions.Len(),
		"time":     time.Now().UTC(),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.sessions.List()})
}

type createSessionRequest struct {
	Name     string        `json:"name"`
	Document *mindmap.Data `json:"document"`
}

// handleCreateSession opens a session. With a document it starts from that
// document; otherwise the named document is loaded from the store, or a
// fresh map is created.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name == "" {
		req.Name = "map-" + uuid.NewString()[:8]
	}

	var (
		sess *session.Session
		err  error
	)
	if req.Document != nil {
		sess, err = s.sessions.Create(req.Name, req.Document)
	} else {
		sess, err = s.sessions.Open(r.Context(), req.Name)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session opened", "id", sess.ID, "document", sess.Name, "nodes", sess.Len())
	writeJSON(w, http.StatusCreated, describe(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Document
// =============================================================================

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Data())
}

func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var data mindmap.Data
	if err := s.decode(w, r, &data); err != nil {
		s.writeError(w, r, err)
		return
	}
	if data.Nodes == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidDocument, "document has no nodes array"))
		return
	}
	if err := sess.Replace(data); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	matches := sess.Search(r.URL.Query().Get("q"))
	if matches == nil {
		matches = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// =============================================================================
// Nodes
// =============================================================================

type nodeRequest struct {
	ParentID    string         `json:"parentId"`
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	URL         *string        `json:"url"`
	Color       *mindmap.Color `json:"color"`
	Shape       *mindmap.Shape `json:"shape"`
	EdgeLabel   *string        `json:"edgeLabel"`
}

// apply overlays the fields present in the request onto f.
func (req nodeRequest) apply(f mindmap.Fields) mindmap.Fields {
	if req.Title != nil {
		f.Title = *req.Title
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.URL != nil {
		f.URL = *req.URL
	}
	if req.Color != nil {
		f.Color = *req.Color
	}
	if req.Shape != nil {
		f.Shape = *req.Shape
	}
	return f
}

func (req nodeRequest) hasFields() bool {
	return req.Title != nil || req.Description != nil || req.URL != nil || req.Color != nil || req.Shape != nil
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req nodeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	parent := req.ParentID
	if parent == "" {
		parent = sess.Selected()
	}
	if parent == "" {
		parent = mindmap.RootID
	}
	node, err := sess.AddChild(parent, req.apply(mindmap.Fields{}))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, node)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "nodeID")
	n := sess.Document().Node(id)
	if n == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "nodeID")
	var req nodeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var edit func(mindmap.Fields) mindmap.Fields
	if req.hasFields() {
		edit = req.apply
	}
	n, err := sess.UpdateNode(id, edit, req.EdgeLabel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	removed, err := sess.Delete(chi.URLParam(r, "nodeID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleToggleCollapsed(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	collapsed, err := sess.ToggleCollapsed(chi.URLParam(r, "nodeID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"collapsed": collapsed})
}

func (s *Server) handleToggleLocked(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	locked, err := sess.ToggleLocked(chi.URLParam(r, "nodeID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"locked": locked})
}

type pointRequest struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) handleMoveNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req pointRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "nodeID")
	if err := sess.Move(id, req.X, req.Y); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Document().Node(id))
}

// handleDragNode moves a node by a screen-space delta.
func (s *Server) handleDragNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req pointRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "nodeID")
	if err := sess.Drag(id, req.DX, req.DY); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Document().Node(id))
}

type reparentRequest struct {
	ParentID string `json:"parentId"`
}

func (s *Server) handleReparent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req reparentRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "nodeID")
	if err := sess.Reparent(id, req.ParentID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Document().Node(id))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Select(chi.URLParam(r, "nodeID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

// =============================================================================
// Links
// =============================================================================

type linkRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

func (s *Server) handleAddLink(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req linkRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.AddLink(req.From, req.To, req.Label); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"links": sess.Document().Links()})
}

func (s *Server) handleRemoveLink(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "link index must be an integer"))
		return
	}
	if err := sess.RemoveLink(i); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": sess.Document().Links()})
}

// =============================================================================
// History
// =============================================================================

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Undo(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Redo(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}
