package layout

import (
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// Config holds the tree layout constants.
type Config struct {
	XGap          float64 `toml:"x_gap"`
	YGap          float64 `toml:"y_gap"`
	DefaultHeight float64 `toml:"default_height"`
	MaxDepth      int     `toml:"max_depth"`
}

// DefaultConfig returns the standard spacing: 350 units between levels, 30
// units between siblings and 100 units for unmeasured nodes.
func DefaultConfig() Config {
	return Config{
		XGap:          350,
		YGap:          30,
		DefaultHeight: 100,
		MaxDepth:      10000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.XGap == 0 {
		c.XGap = d.XGap
	}
	if c.YGap < 0 {
		c.YGap = 0
	}
	if c.DefaultHeight <= 0 {
		c.DefaultHeight = d.DefaultHeight
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	return c
}

// Result summarizes a layout run.
type Result struct {
	RootID  string
	Placed  int // nodes whose position was assigned
	Skipped int // locked nodes whose subtree was left untouched
}

// NodeHeight returns the height used for n: its measured height, or the
// configured default when unmeasured.
func NodeHeight(n *mindmap.Node, cfg Config) float64 {
	if n.Height > 0 {
		return n.Height
	}
	return cfg.withDefaults().DefaultHeight
}

// SubtreeHeight returns the vertical slice reserved for the subtree at id.
func SubtreeHeight(doc *mindmap.Document, id string, cfg Config) (float64, error) {
	if doc.Node(id) == nil {
		return 0, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	w := newWalker(doc, cfg)
	return w.height(id, 0)
}

// Tree lays out the subtree at rootID, keeping the root at its current
// position. An empty rootID selects doc.Root().
func Tree(doc *mindmap.Document, rootID string, cfg Config) (Result, error) {
	var root *mindmap.Node
	if rootID == "" {
		root = doc.Root()
	} else {
		root = doc.Node(rootID)
	}
	if root == nil {
		return Result{}, errors.New(errors.ErrCodeNotFound, "layout root %q not found", rootID)
	}

	w := newWalker(doc, cfg)
	res := Result{RootID: root.ID}
	if err := w.place(root, root.X, root.Y, 0, &res); err != nil {
		return Result{RootID: root.ID}, err
	}
	return res, nil
}

// walker carries per-run state: memoized subtree heights and the set of
// nodes on the current recursion path.
type walker struct {
	doc     *mindmap.Document
	cfg     Config
	heights map[string]float64
	active  map[string]bool
}

func newWalker(doc *mindmap.Document, cfg Config) *walker {
	return &walker{
		doc:     doc,
		cfg:     cfg.withDefaults(),
		heights: make(map[string]float64),
		active:  make(map[string]bool),
	}
}

func (w *walker) enter(id string, depth int) error {
	if depth > w.cfg.MaxDepth {
		return errors.New(errors.ErrCodeCycle, "tree deeper than %d levels at %q", w.cfg.MaxDepth, id)
	}
	if w.active[id] {
		return errors.New(errors.ErrCodeCycle, "parent cycle through %q", id)
	}
	w.active[id] = true
	return nil
}

func (w *walker) height(id string, depth int) (float64, error) {
	if h, ok := w.heights[id]; ok {
		return h, nil
	}
	if err := w.enter(id, depth); err != nil {
		return 0, err
	}
	defer delete(w.active, id)

	n := w.doc.Node(id)
	children := w.doc.Children(id)
	var h float64
	if n.Collapsed || len(children) == 0 {
		h = NodeHeight(n, w.cfg) + w.cfg.YGap
	} else {
		for _, c := range children {
			ch, err := w.height(c.ID, depth+1)
			if err != nil {
				return 0, err
			}
			h += ch
		}
	}
	w.heights[id] = h
	return h, nil
}

func (w *walker) place(n *mindmap.Node, x, y float64, depth int, res *Result) error {
	if n.Locked {
		res.Skipped++
		return nil
	}
	if err := w.enter(n.ID, depth); err != nil {
		return err
	}
	defer delete(w.active, n.ID)

	n.X, n.Y = x, y
	res.Placed++
	if n.Collapsed {
		return nil
	}

	children := w.doc.Children(n.ID)
	var total float64
	for _, c := range children {
		h, err := w.height(c.ID, depth+1)
		if err != nil {
			return err
		}
		total += h
	}

	cursor := y - total/2
	for _, c := range children {
		h := w.heights[c.ID]
		if err := w.place(c, x+w.cfg.XGap, cursor+h/2, depth+1, res); err != nil {
			return err
		}
		cursor += h
	}
	return nil
}
