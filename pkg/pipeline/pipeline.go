// Package pipeline turns a mind map document into a drawable scene and
// rendered artifacts.
//
// The CLI, the HTTP API and the editor all go through this package so that
// measuring, layout and routing happen the same way everywhere.
//
// # Stages
//
//  1. Measure: size every node from its text (optional)
//  2. Visible: resolve the nodes shown under the current collapse state
//  3. Layout: reposition the tree from the layout root (optional)
//  4. Route: compute connector anchors, curves and bounds
//  5. Render: produce SVG, PNG, PDF, JSON or DOT output
//
// The input document is never modified; stages run on a clone.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    AutoLayout: true,
//	    Formats:    []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainwave/pkg/cache"
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/render"
	"github.com/matzehuels/brainwave/pkg/render/styles"
	"github.com/matzehuels/brainwave/pkg/route"
	"github.com/matzehuels/brainwave/pkg/viewport"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Editor
// =============================================================================

const (
	// DefaultViewportWidth is the screen width used to fit the scene.
	DefaultViewportWidth = 1600.0

	// DefaultViewportHeight is the screen height used to fit the scene.
	DefaultViewportHeight = 900.0

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 24 * time.Hour
)

// DefaultStyle is the default visual style.
var DefaultStyle = styles.Default.Name()

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatGraph is the DOT diagram laid out and drawn by Graphviz.
	FormatGraph = "dot.svg"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene options
	RootID     string `json:"root_id,omitempty"`     // layout root; empty selects the document root
	AutoLayout bool   `json:"auto_layout,omitempty"` // reposition the tree before routing
	Measure    bool   `json:"measure,omitempty"`     // size nodes from their text
	Highlight  string `json:"highlight,omitempty"`   // search term whose matches are highlighted
	Selected   string `json:"selected,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Shadows bool     `json:"shadows,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG scale factor

	// DOT options, used by the dot and dot.svg formats
	Detailed  bool `json:"detailed,omitempty"`   // labels include description and URL
	HideLinks bool `json:"hide_links,omitempty"` // draw the tree only
	ExpandAll bool `json:"expand_all,omitempty"` // ignore collapse state

	ViewportWidth  float64 `json:"viewport_width,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`

	// Runtime options (not serialized)
	Layout   layout.Config   `json:"-"`
	Route    route.Config    `json:"-"`
	Viewport viewport.Config `json:"-"`
	Logger   *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the processed copy: measured and laid out as requested.
	Document *mindmap.Document

	// DocHash is the content hash of the input document.
	DocHash string

	// Scene is the drawable scene.
	Scene *render.Scene

	// View fits the scene into the configured viewport.
	View viewport.Transform

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether rendering was served from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	VisibleCount   int
	LinkCount      int
	ConnectorCount int
	Placed         int
	Skipped        int
	LayoutTime     time.Duration
	RouteTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.ByName(style)
	return err
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetSceneDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidScale, "scale must be positive, got %v", o.Scale)
	}
	if o.RootID != "" {
		if err := errors.ValidateNodeID(o.RootID); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetSceneDefaults sets default values for scene computation.
func (o *Options) SetSceneDefaults() {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if o.Route == (route.Config{}) {
		o.Route = route.DefaultConfig()
	}
	if o.Viewport == (viewport.Config{}) {
		o.Viewport = viewport.DefaultConfig()
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	o.Style = strings.ToLower(o.Style)
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		RootID:     o.RootID,
		AutoLayout: o.AutoLayout,
		Measure:    o.Measure,
		Width:      o.ViewportWidth,
		Height:     o.ViewportHeight,
		Shadows:    o.Shadows,
		Highlight:  o.Highlight,
		Selected:   o.Selected,
		Detailed:   o.Detailed,
		HideLinks:  o.HideLinks,
		ExpandAll:  o.ExpandAll,
		Scale:      o.Scale,
		Geometry:   o.geometryHash(),
	}
}

// geometryHash identifies the layout, routing and viewport constants. They
// come from configuration rather than the document, so a config change must
// not serve artifacts rendered under the old constants.
func (o *Options) geometryHash() string {
	return cache.HashJSON(struct {
		Layout   layout.Config
		Route    route.Config
		Viewport viewport.Config
	}{o.Layout, o.Route, o.Viewport})
}
