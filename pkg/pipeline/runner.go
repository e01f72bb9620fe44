package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainwave/pkg/cache"
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/observability"
	"github.com/matzehuels/brainwave/pkg/render"
	"github.com/matzehuels/brainwave/pkg/route"
	"github.com/matzehuels/brainwave/pkg/viewport"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the API server and the editor share one Runner per process.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Measurer layout.TextMeasurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Measurer: layout.DefaultTextMeasurer(),
	}
}

// Execute runs the complete measure → layout → route → render pipeline.
// Artifacts are cached by document content and render options.
func (r *Runner) Execute(ctx context.Context, doc *mindmap.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.prepare(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scene computes the drawable scene for doc without rendering.
func (r *Runner) Scene(ctx context.Context, doc *mindmap.Document, opts Options) (*render.Scene, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.prepare(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	return result.Scene, nil
}

// prepare runs every stage up to and including routing on a clone of doc.
func (r *Runner) prepare(ctx context.Context, doc *mindmap.Document, opts Options) (*Result, error) {
	if doc == nil || doc.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no nodes")
	}

	work := doc.Clone()
	result := &Result{
		Document: work,
		DocHash:  documentHash(doc),
	}
	result.Stats.NodeCount = work.Len()
	result.Stats.LinkCount = len(work.Links())

	visible := mindmap.Visible(work)
	result.Stats.VisibleCount = len(visible)

	if opts.Measure {
		layout.MeasureAll(work, visible, r.measurer())
		opts.Logger.Debug("measured nodes", "count", len(visible))
	}

	if opts.AutoLayout {
		if err := r.layout(ctx, work, result, opts); err != nil {
			return nil, err
		}
	}

	routeStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRouteStart(ctx, len(visible), result.Stats.LinkCount)
	overlay := route.Route(visible, work.Links(), opts.Route)
	result.Stats.RouteTime = time.Since(routeStart)
	result.Stats.ConnectorCount = len(overlay.Connectors)
	hooks.OnRouteComplete(ctx, len(overlay.Connectors), result.Stats.RouteTime)

	opts.Logger.Debug("routed connectors",
		"visible", len(visible),
		"connectors", len(overlay.Connectors),
		"duration", result.Stats.RouteTime)

	scene := render.NewScene(work, visible, overlay, opts.Route)
	if opts.Highlight != "" {
		matches := work.Search(opts.Highlight)
		ids := make([]string, len(matches))
		for i, n := range matches {
			ids[i] = n.ID
		}
		scene.Highlight(ids...)
	}
	scene.Select(opts.Selected)
	result.Scene = scene

	screen := geom.Rect{MaxX: opts.ViewportWidth, MaxY: opts.ViewportHeight}
	result.View = viewport.Fit(scene.Bounds, screen, opts.Viewport)

	return result, nil
}

// documentHash hashes the persisted document together with any measured
// sizes, which Data leaves out but layout and routing read.
func documentHash(doc *mindmap.Document) string {
	type size struct {
		ID string  `json:"id"`
		W  float64 `json:"w"`
		H  float64 `json:"h"`
	}
	var sizes []size
	for _, n := range doc.Nodes() {
		if n.Width > 0 || n.Height > 0 {
			sizes = append(sizes, size{ID: n.ID, W: n.Width, H: n.Height})
		}
	}
	return cache.HashJSON(struct {
		Data  mindmap.Data `json:"data"`
		Sizes []size       `json:"sizes,omitempty"`
	}{doc.Data(), sizes})
}

func (r *Runner) layout(ctx context.Context, work *mindmap.Document, result *Result, opts Options) error {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.RootID, work.Len())

	start := time.Now()
	res, err := layout.Tree(work, opts.RootID, opts.Layout)
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, res.RootID, res.Placed, result.Stats.LayoutTime, err)
	if err != nil {
		return err
	}

	result.Stats.Placed = res.Placed
	result.Stats.Skipped = res.Skipped
	opts.Logger.Info("laid out tree",
		"root", res.RootID,
		"placed", res.Placed,
		"skipped", res.Skipped,
		"duration", result.Stats.LayoutTime)
	return nil
}

// RenderWithCacheInfo generates artifacts for a prepared result with caching
// and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.DocHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, result.Document, result.Scene, opts, r.measurer())
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(result.DocHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return rendered, false, nil
}

func (r *Runner) measurer() layout.TextMeasurer {
	if r.Measurer == (layout.TextMeasurer{}) {
		return layout.DefaultTextMeasurer()
	}
	return r.Measurer
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
