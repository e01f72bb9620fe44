package pipeline

import (
	"context"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/render"
	"github.com/matzehuels/brainwave/pkg/render/nodelink"
	"github.com/matzehuels/brainwave/pkg/render/sink"
	"github.com/matzehuels/brainwave/pkg/render/styles"
)

// Render generates output artifacts in the requested formats. doc is the
// processed document the scene was built from; only the DOT formats read it.
// m must be the measurer that sized the nodes so card text wraps the same way.
func Render(ctx context.Context, doc *mindmap.Document, scene *render.Scene, opts Options, m layout.TextMeasurer) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}

	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithMeasurer(m)}
	if opts.Shadows {
		svgOpts = append(svgOpts, sink.WithShadows())
	}

	dotOpts := nodelink.Options{
		Detailed:  opts.Detailed,
		HideLinks: opts.HideLinks,
		ExpandAll: opts.ExpandAll,
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(scene, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithJSONStyle(style.Name()))
		case FormatDOT:
			data = []byte(nodelink.ToDOT(doc, dotOpts))
		case FormatGraph:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(doc, dotOpts))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
