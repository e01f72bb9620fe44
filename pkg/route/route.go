package route

import (
	"strconv"

	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// Config holds the routing constants.
type Config struct {
	RootID        string    `toml:"root_id"`
	Inset         float64   `toml:"inset"`
	ControlOffset float64   `toml:"control_offset"`
	Padding       float64   `toml:"padding"`
	DefaultWidth  float64   `toml:"default_width"`
	DefaultHeight float64   `toml:"default_height"`
	EmptyBounds   geom.Rect `toml:"-"`
}

// DefaultConfig returns the standard routing constants.
func DefaultConfig() Config {
	return Config{
		RootID:        mindmap.RootID,
		Inset:         2,
		ControlOffset: 80,
		Padding:       200,
		DefaultWidth:  240,
		DefaultHeight: 80,
		EmptyBounds:   geom.Rect{MinX: -500, MinY: -500, MaxX: 500, MaxY: 500},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RootID == "" {
		c.RootID = d.RootID
	}
	if c.DefaultWidth <= 0 {
		c.DefaultWidth = d.DefaultWidth
	}
	if c.DefaultHeight <= 0 {
		c.DefaultHeight = d.DefaultHeight
	}
	if c.EmptyBounds.Empty() || !c.EmptyBounds.IsFinite() {
		c.EmptyBounds = d.EmptyBounds
	}
	return c
}

// Kind distinguishes tree edges from auxiliary links.
type Kind string

const (
	KindTree Kind = "tree"
	KindLink Kind = "link"
)

// Connector is one routed edge. Start, End and LabelAt are model coordinates;
// Path is relative to the owning overlay's bounds.
type Connector struct {
	Kind         Kind       `json:"kind"`
	SourceEdgeID string     `json:"sourceEdgeId"`
	FromID       string     `json:"from"`
	ToID         string     `json:"to"`
	Start        Anchor     `json:"start"`
	End          Anchor     `json:"end"`
	Curve        Bezier     `json:"curve"`
	Path         string     `json:"path"`
	Label        string     `json:"label,omitempty"`
	LabelAt      geom.Point `json:"labelAt"`
}

// Overlay is the routed connector layer.
type Overlay struct {
	Bounds     geom.Rect   `json:"bounds"`
	Connectors []Connector `json:"connectors"`
}

// TreeEdgeID returns the SourceEdgeID of the tree edge into childID.
func TreeEdgeID(childID string) string { return "edge:" + childID }

// LinkEdgeID returns the SourceEdgeID of the link at index i.
func LinkEdgeID(i int) string { return "link:" + strconv.Itoa(i) }

// Box returns the bounding box of n, using the default size for unmeasured
// dimensions.
func Box(n *mindmap.Node, cfg Config) geom.Rect {
	cfg = cfg.withDefaults()
	w, h := n.Width, n.Height
	if w <= 0 {
		w = cfg.DefaultWidth
	}
	if h <= 0 {
		h = cfg.DefaultHeight
	}
	return geom.RectFromCenter(n.Center(), w, h)
}

// Bounds returns the padded union of the node boxes. No nodes, or a union
// with non-finite edges, yields the padded EmptyBounds.
func Bounds(nodes []*mindmap.Node, cfg Config) geom.Rect {
	cfg = cfg.withDefaults()
	var (
		r     geom.Rect
		first = true
	)
	for _, n := range nodes {
		b := Box(n, cfg)
		if !b.IsFinite() {
			continue
		}
		if first {
			r, first = b, false
			continue
		}
		r = r.Union(b)
	}
	if first {
		r = cfg.EmptyBounds
	}
	return r.Expand(cfg.Padding)
}

// Route computes the connector overlay for the visible nodes. Tree connectors
// come first in node order, followed by link connectors in link order.
func Route(nodes []*mindmap.Node, links []mindmap.Link, cfg Config) Overlay {
	cfg = cfg.withDefaults()
	ov := Overlay{Bounds: Bounds(nodes, cfg)}
	origin := ov.Bounds.Origin()

	byID := make(map[string]*mindmap.Node, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = n
		}
	}

	for _, n := range nodes {
		if n.ParentID == "" || n.ParentID == n.ID || byID[n.ID] != n {
			continue
		}
		p := byID[n.ParentID]
		if p == nil {
			continue
		}
		c, ok := connect(p, n, p.ID == cfg.RootID, false, cfg, origin)
		if !ok {
			continue
		}
		c.Kind = KindTree
		c.SourceEdgeID = TreeEdgeID(n.ID)
		c.Label = n.EdgeLabel
		ov.Connectors = append(ov.Connectors, c)
	}

	for i, l := range links {
		from, to := byID[l.From], byID[l.To]
		if from == nil || to == nil || from == to {
			continue
		}
		c, ok := connect(from, to, from.ID == cfg.RootID, to.ID == cfg.RootID, cfg, origin)
		if !ok {
			continue
		}
		c.Kind = KindLink
		c.SourceEdgeID = LinkEdgeID(i)
		c.Label = l.Label
		ov.Connectors = append(ov.Connectors, c)
	}
	return ov
}

// connect routes from a to b. An endpoint flagged free uses the four-way
// rule, otherwise the lateral one. It reports false when the geometry is not
// finite.
func connect(a, b *mindmap.Node, freeA, freeB bool, cfg Config, origin geom.Point) (Connector, bool) {
	start := anchorFor(a, b.Center(), freeA, cfg)
	end := anchorFor(b, a.Center(), freeB, cfg)
	curve := Curve(start, end, cfg.ControlOffset)
	if !curve.IsFinite() {
		return Connector{}, false
	}
	return Connector{
		FromID:  a.ID,
		ToID:    b.ID,
		Start:   start,
		End:     end,
		Curve:   curve,
		Path:    curve.Path(origin),
		LabelAt: start.Point.Mid(end.Point),
	}, true
}

func anchorFor(n *mindmap.Node, target geom.Point, free bool, cfg Config) Anchor {
	box := Box(n, cfg)
	halfW, halfH := box.Width()/2, box.Height()/2
	if free {
		return FreeAnchor(n.Center(), halfW, halfH, cfg.Inset, target)
	}
	return LateralAnchor(n.Center(), halfW, halfH, cfg.Inset, target)
}
