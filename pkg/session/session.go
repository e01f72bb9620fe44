// Package session holds interactive editing state for mind maps.
//
// A [Session] owns one document together with its viewport, selection and
// undo history. Every edit goes through the session so that:
//   - a rejected action leaves the document and the history untouched
//   - an accepted action is undoable (up to [MaxHistory] steps)
//   - the change listener sees every accepted change
//
// The change listener is normally wired to a [store.Debouncer], which keeps
// persistence off the interaction path.
//
// A [Manager] keeps many sessions alive for the HTTP API, evicting the least
// recently used one when full and expiring idle sessions after a TTL.
//
// # Usage
//
//	sess := session.New("ideas", mindmap.NewDefault(), session.Options{
//	    OnChange: func(name string, data mindmap.Data) { deb.Schedule(name, data) },
//	})
//	child, err := sess.AddChild(mindmap.RootID, mindmap.Fields{Title: "Plan"})
//	if err != nil {
//	    return err
//	}
//	sess.Undo()
package session

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/route"
	"github.com/matzehuels/brainwave/pkg/viewport"
)

// MaxHistory is the number of undo steps kept per session.
const MaxHistory = 50

// Options configure a session.
type Options struct {
	Layout   layout.Config
	Route    route.Config
	Viewport viewport.Config

	// Measurer sizes nodes before auto layout. Nil leaves sizes unset, so
	// layout falls back to the default node height.
	Measurer layout.Measurer

	// OnChange is called after every accepted change with the session name
	// and a persistable snapshot. It runs with the session lock held and must
	// not call back into the session.
	OnChange func(name string, data mindmap.Data)
}

func (o Options) withDefaults() Options {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.Route == (route.Config{}) {
		o.Route = route.DefaultConfig()
	}
	if o.Viewport == (viewport.Config{}) {
		o.Viewport = viewport.DefaultConfig()
	}
	return o
}

// revision is one history entry. view is set only for changes that also
// replaced the view and selection, so undoing them brings those back too.
type revision struct {
	doc  *mindmap.Document
	view *viewState
}

type viewState struct {
	transform viewport.Transform
	selected  string
}

// Session is one open mind map.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	lastAccess atomic.Int64 // unix nanoseconds

	mu       sync.Mutex
	doc      *mindmap.Document
	view     viewport.Transform
	selected string
	undo     []revision
	redo     []revision
	opts     Options
}

// New creates a session editing doc. The session takes ownership of doc.
func New(name string, doc *mindmap.Document, opts Options) *Session {
	if doc == nil {
		doc = mindmap.NewDefault()
	}
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		doc:       doc,
		view:      viewport.Identity(),
		undo:      make([]revision, 0, MaxHistory),
		redo:      make([]revision, 0, MaxHistory),
		opts:      opts.withDefaults(),
	}
	s.touch(now)
	return s
}

// FromData creates a session from persisted data, restoring the saved view
// and selection when present.
func FromData(name string, data mindmap.Data, opts Options) *Session {
	s := New(name, mindmap.FromData(data), opts)
	s.restoreView(data)
	if s.doc.Node(s.selected) == nil {
		s.selected = ""
	}
	return s
}

// restoreView applies the saved view and selection of data. The selection
// is checked against s.doc by the caller.
func (s *Session) restoreView(data mindmap.Data) {
	if v := data.View; v != nil {
		t := viewport.Transform{Scale: v.Scale, Pan: geom.Point{X: v.PanX, Y: v.PanY}}
		if t.Valid() {
			s.view = t
		}
	}
	s.selected = data.SelectedID
}

// LastAccess returns when the session was last opened or fetched.
func (s *Session) LastAccess() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

func (s *Session) touch(t time.Time) {
	s.lastAccess.Store(t.UnixNano())
}

// Document returns a copy of the current document.
func (s *Session) Document() *mindmap.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Data returns a persistable snapshot including view and selection.
func (s *Session) Data() mindmap.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() mindmap.Data {
	data := s.doc.Data()
	data.View = &mindmap.View{Scale: s.view.Scale, PanX: s.view.Pan.X, PanY: s.view.Pan.Y}
	data.SelectedID = s.selected
	return data
}

// Len returns the number of nodes in the document.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Len()
}

// View returns the current viewport transform.
func (s *Session) View() viewport.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Selected returns the selected node id, or "".
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// CanUndo reports whether there is a change to undo.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether there is an undone change to reapply.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

func (s *Session) notify() {
	if s.opts.OnChange != nil {
		s.opts.OnChange(s.Name, s.snapshot())
	}
}

// mutate applies fn to a copy of the document. On success the copy replaces
// the document and the old version goes onto the undo stack; on failure
// nothing changes. Must be called with s.mu held.
func (s *Session) mutate(fn func(d *mindmap.Document) error) error {
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.commit(revision{doc: s.doc}, next)
	return nil
}

// commit records prev on the undo stack and installs next. Must be called
// with s.mu held.
func (s *Session) commit(prev revision, next *mindmap.Document) {
	s.pushUndo(prev)
	s.redo = s.redo[:0]
	s.doc = next
	if s.doc.Node(s.selected) == nil {
		s.selected = ""
	}
	s.notify()
}

func (s *Session) pushUndo(r revision) {
	s.undo = append(s.undo, r)
	if len(s.undo) > MaxHistory {
		s.undo = s.undo[1:]
	}
}

// restore installs r and returns the revision it displaced, carrying the
// current view when r carries one.
func (s *Session) restore(r revision) revision {
	cur := revision{doc: s.doc}
	if r.view != nil {
		cur.view = &viewState{transform: s.view, selected: s.selected}
		s.view = r.view.transform
		s.selected = r.view.selected
	}
	s.doc = r.doc
	if s.doc.Node(s.selected) == nil {
		s.selected = ""
	}
	return cur
}

// AddChild creates a child of parentID and selects it.
func (s *Session) AddChild(parentID string, f mindmap.Fields) (mindmap.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created mindmap.Node
	err := s.mutate(func(d *mindmap.Document) error {
		n, err := d.AddChild(parentID, f)
		if err != nil {
			return err
		}
		created = *n
		s.selected = n.ID
		return nil
	})
	return created, err
}

// Update replaces the editable fields of a node.
func (s *Session) Update(id string, f mindmap.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(d *mindmap.Document) error { return d.Update(id, f) })
}

// UpdateNode applies a partial edit as one undoable change. edit receives
// the node's current fields and returns the new ones; it is skipped when nil.
// A non-nil label replaces the edge label. When any part is rejected the
// document is left as it was.
func (s *Session) UpdateNode(id string, edit func(mindmap.Fields) mindmap.Fields, label *string) (mindmap.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated mindmap.Node
	err := s.mutate(func(d *mindmap.Document) error {
		n := d.Node(id)
		if n == nil {
			return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
		}
		if edit != nil {
			if err := d.Update(id, edit(mindmap.FieldsOf(n))); err != nil {
				return err
			}
		}
		if label != nil {
			if err := d.SetEdgeLabel(id, *label); err != nil {
				return err
			}
		}
		updated = *d.Node(id)
		return nil
	})
	return updated, err
}

// Delete removes a node and its subtree, returning the removed ids.
func (s *Session) Delete(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	err := s.mutate(func(d *mindmap.Document) error {
		var err error
		removed, err = d.Delete(id)
		return err
	})
	return removed, err
}

// Reparent moves a node under a new parent.
func (s *Session) Reparent(id, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(d *mindmap.Document) error { return d.Reparent(id, parentID) })
}

// Move places a node at a model position.
func (s *Session) Move(id string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(d *mindmap.Document) error { return d.Move(id, x, y) })
}

// Drag moves a node by a screen-space delta. The delta is divided by the
// current scale so the node follows the pointer at any zoom level.
func (s *Session) Drag(id string, dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scale := s.view.Scale
	return s.mutate(func(d *mindmap.Document) error { return d.MoveBy(id, dx/scale, dy/scale) })
}

// ToggleCollapsed flips the collapsed flag and returns the new value.
func (s *Session) ToggleCollapsed(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var collapsed bool
	err := s.mutate(func(d *mindmap.Document) error {
		var err error
		collapsed, err = d.ToggleCollapsed(id)
		return err
	})
	return collapsed, err
}

// ToggleLocked flips the locked flag and returns the new value.
func (s *Session) ToggleLocked(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var locked bool
	err := s.mutate(func(d *mindmap.Document) error {
		var err error
		locked, err = d.ToggleLocked(id)
		return err
	})
	return locked, err
}

// SetEdgeLabel sets the label drawn on the connector into id.
func (s *Session) SetEdgeLabel(id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(d *mindmap.Document) error { return d.SetEdgeLabel(id, label) })
}

// AddLink adds a cross link between two nodes.
func (s *Session) AddLink(from, to, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(d *mindmap.Document) error { return d.AddLink(from, to, label) })
}

// RemoveLink removes the cross link at index i.
func (s *Session) RemoveLink(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(d *mindmap.Document) error { return d.RemoveLink(i) })
}

// Replace swaps in imported data as one undoable change. A saved view and
// selection in data are restored, and undo puts the previous ones back.
func (s *Session) Replace(data mindmap.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := revision{doc: s.doc, view: &viewState{transform: s.view, selected: s.selected}}
	s.restoreView(data)
	s.commit(prev, mindmap.FromData(data))
	return nil
}

// Undo restores the document before the last accepted change.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to undo")
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.restore(prev))
	s.notify()
	return nil
}

// Redo reapplies the last undone change.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to redo")
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.pushUndo(s.restore(next))
	s.notify()
	return nil
}

// Select marks a node as selected. An empty id clears the selection.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.doc.Node(id) == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	s.selected = id
	return nil
}

// Search returns the ids of nodes whose title contains term, ignoring case.
func (s *Session) Search(term string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, n := range s.doc.Search(strings.TrimSpace(term)) {
		ids = append(ids, n.ID)
	}
	return ids
}
