package mindmap

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/brainwave/pkg/errors"
)

// Placement offsets for newly created children, relative to their parent.
const (
	ChildOffsetX   = 350.0
	ChildSpacingY  = 120.0
	childStackPull = 60.0
)

// Fields are the user-editable content of a node.
type Fields struct {
	Title       string
	Description string
	URL         string
	Color       Color
	Shape       Shape
}

// FieldsOf returns the editable fields of n.
func FieldsOf(n *Node) Fields {
	return Fields{
		Title:       n.Title,
		Description: n.Description,
		URL:         n.URL,
		Color:       n.Color,
		Shape:       n.Shape,
	}
}

// normalize trims text fields, applies the default color and validates.
func (f Fields) normalize() (Fields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.URL = strings.TrimSpace(f.URL)
	if err := errors.ValidateTitle(f.Title); err != nil {
		return f, err
	}
	if err := errors.ValidateOptionalURL(f.URL); err != nil {
		return f, err
	}
	if f.Color == 0 {
		f.Color = DefaultColor
	}
	if !f.Color.Valid() {
		return f, errors.New(errors.ErrCodeInvalidColor, "color %d out of range", int(f.Color))
	}
	if !f.Shape.Valid() {
		return f, errors.New(errors.ErrCodeInvalidShape, "unknown shape %q", string(f.Shape))
	}
	return f, nil
}

func (d *Document) mustNode(id string) (*Node, error) {
	n := d.index[id]
	if n == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	return n, nil
}

func (d *Document) mustUnlocked(id string) (*Node, error) {
	n, err := d.mustNode(id)
	if err != nil {
		return nil, err
	}
	if n.Locked {
		return nil, errors.New(errors.ErrCodeNodeLocked, "node %q is locked", id)
	}
	return n, nil
}

// AddChild creates a node under parentID and returns it. An unknown parent
// falls back to the root, which is created if the document has none.
//
// The new node gets the next sequential id and is placed to the right of its
// parent, staggered by the number of existing siblings.
func (d *Document) AddChild(parentID string, f Fields) (*Node, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}

	p := d.index[parentID]
	if p == nil {
		p = d.index[RootID]
	}
	if p == nil {
		d.insert(DefaultRoot())
		p = d.index[RootID]
	}

	for d.index[strconv.Itoa(d.nextID)] != nil {
		d.nextID++
	}
	id := strconv.Itoa(d.nextID)
	d.nextID++

	k := float64(len(d.children[p.ID]))
	yOffset := k * ChildSpacingY
	if k > 1 {
		yOffset -= k * childStackPull
	}

	n := &Node{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		URL:         f.URL,
		Color:       f.Color,
		Shape:       f.Shape,
		X:           p.X + ChildOffsetX,
		Y:           p.Y + yOffset,
		ParentID:    p.ID,
	}
	d.insert(n)
	return n, nil
}

// Update replaces the editable fields of a node.
func (d *Document) Update(id string, f Fields) error {
	n, err := d.mustUnlocked(id)
	if err != nil {
		return err
	}
	f, err = f.normalize()
	if err != nil {
		return err
	}
	n.Title = f.Title
	n.Description = f.Description
	n.URL = f.URL
	n.Color = f.Color
	n.Shape = f.Shape
	return nil
}

// Delete removes a node together with its whole subtree and every link that
// touches a removed node. It returns the removed ids, the node itself first.
func (d *Document) Delete(id string) ([]string, error) {
	n, err := d.mustNode(id)
	if err != nil {
		return nil, err
	}
	if id == RootID {
		return nil, errors.New(errors.ErrCodeRootProtected, "the root node cannot be deleted")
	}
	if n.Locked {
		return nil, errors.New(errors.ErrCodeNodeLocked, "node %q is locked", id)
	}

	removed := []string{id}
	for _, c := range d.Descendants(id) {
		removed = append(removed, c.ID)
	}
	gone := make(map[string]bool, len(removed))
	for _, r := range removed {
		gone[r] = true
	}

	d.nodes = slices.DeleteFunc(d.nodes, func(x *Node) bool { return gone[x.ID] })
	d.links = slices.DeleteFunc(d.links, func(l Link) bool { return gone[l.From] || gone[l.To] })
	d.reindex()
	return removed, nil
}

// Reparent moves id under newParentID. The root cannot be moved, and the new
// parent may be neither the node itself nor one of its descendants.
func (d *Document) Reparent(id, newParentID string) error {
	n, err := d.mustNode(id)
	if err != nil {
		return err
	}
	if id == RootID {
		return errors.New(errors.ErrCodeRootProtected, "the root node cannot be re-parented")
	}
	if _, err := d.mustNode(newParentID); err != nil {
		return err
	}
	if id == newParentID {
		return errors.New(errors.ErrCodeCycle, "node %q cannot be its own parent", id)
	}
	if d.IsAncestor(id, newParentID) {
		return errors.New(errors.ErrCodeCycle, "cannot move %q under its descendant %q", id, newParentID)
	}
	n.ParentID = newParentID
	d.reindex()
	return nil
}

// Move sets the position of an unlocked node.
func (d *Document) Move(id string, x, y float64) error {
	n, err := d.mustUnlocked(id)
	if err != nil {
		return err
	}
	n.X, n.Y = x, y
	return nil
}

// MoveBy translates an unlocked node by a model-space delta.
func (d *Document) MoveBy(id string, dx, dy float64) error {
	n, err := d.mustUnlocked(id)
	if err != nil {
		return err
	}
	n.X += dx
	n.Y += dy
	return nil
}

// SetCollapsed sets the collapse flag of a node.
func (d *Document) SetCollapsed(id string, collapsed bool) error {
	n, err := d.mustNode(id)
	if err != nil {
		return err
	}
	n.Collapsed = collapsed
	return nil
}

// ToggleCollapsed flips the collapse flag and returns the new value.
func (d *Document) ToggleCollapsed(id string) (bool, error) {
	n, err := d.mustNode(id)
	if err != nil {
		return false, err
	}
	n.Collapsed = !n.Collapsed
	return n.Collapsed, nil
}

// SetLocked sets the lock flag of a node.
func (d *Document) SetLocked(id string, locked bool) error {
	n, err := d.mustNode(id)
	if err != nil {
		return err
	}
	n.Locked = locked
	return nil
}

// ToggleLocked flips the lock flag and returns the new value.
func (d *Document) ToggleLocked(id string) (bool, error) {
	n, err := d.mustNode(id)
	if err != nil {
		return false, err
	}
	n.Locked = !n.Locked
	return n.Locked, nil
}

// SetEdgeLabel sets the label drawn on the edge from the node's parent.
// Like the other fields, the label of a locked node cannot change.
func (d *Document) SetEdgeLabel(id, label string) error {
	n, err := d.mustUnlocked(id)
	if err != nil {
		return err
	}
	label = strings.TrimSpace(label)
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	n.EdgeLabel = label
	return nil
}

// SetSize records the measured size of a node. Non-positive sizes clear the
// measurement.
func (d *Document) SetSize(id string, w, h float64) {
	n := d.index[id]
	if n == nil {
		return
	}
	if w <= 0 || h <= 0 {
		w, h = 0, 0
	}
	n.Width, n.Height = w, h
}

// AddLink adds an auxiliary link. Both endpoints must exist, self links are
// rejected and an identical link may only exist once.
func (d *Document) AddLink(from, to, label string) error {
	if _, err := d.mustNode(from); err != nil {
		return err
	}
	if _, err := d.mustNode(to); err != nil {
		return err
	}
	if from == to {
		return errors.New(errors.ErrCodeInvalidInput, "a link needs two different nodes")
	}
	label = strings.TrimSpace(label)
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	l := Link{From: from, To: to, Label: label}
	if slices.Contains(d.links, l) {
		return errors.New(errors.ErrCodeInvalidInput, "link %s -> %s already exists", from, to)
	}
	d.links = append(d.links, l)
	return nil
}

// RemoveLink removes the link at index i.
func (d *Document) RemoveLink(i int) error {
	if i < 0 || i >= len(d.links) {
		return errors.New(errors.ErrCodeNotFound, "link %d not found", i)
	}
	d.links = slices.Delete(d.links, i, i+1)
	return nil
}
