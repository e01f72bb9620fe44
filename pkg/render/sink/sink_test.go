package sink

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/render"
	"github.com/matzehuels/brainwave/pkg/render/styles"
	"github.com/matzehuels/brainwave/pkg/route"
)

func testScene(t *testing.T) *render.Scene {
	t.Helper()
	doc := mindmap.NewDefault()
	a, err := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "Plan & do", Color: mindmap.ColorRed})
	if err != nil {
		t.Fatal(err)
	}
	b, err := doc.AddChild(a.ID, mindmap.Fields{Title: "Step", URL: "https://example.com/x"})
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetEdgeLabel(a.ID, "first"); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddLink(mindmap.RootID, b.ID, "see also"); err != nil {
		t.Fatal(err)
	}
	cfg := route.DefaultConfig()
	vis := mindmap.Visible(doc)
	return render.NewScene(doc, vis, route.Route(vis, doc.Links(), cfg), cfg)
}

func TestRenderSVG(t *testing.T) {
	s := testScene(t)
	out := string(RenderSVG(s))

	wantView := fmt.Sprintf(`viewBox="0 0 %.1f %.1f"`, s.Bounds.Width(), s.Bounds.Height())
	for _, want := range []string{
		"<svg",
		wantView,
		"Plan &amp; do",
		`class="node"`,
		`marker-end="url(#link-arrow)"`,
		"first",
		"see also",
		"<script",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	if got := strings.Count(out, `<g id="node-`); got != len(s.Nodes) {
		t.Errorf("rendered %d nodes, want %d", got, len(s.Nodes))
	}
	if got := strings.Count(out, "<path id="); got != len(s.Overlay.Connectors) {
		t.Errorf("rendered %d connectors, want %d", got, len(s.Overlay.Connectors))
	}

	// Connectors are drawn below the node cards.
	if strings.Index(out, `class="connectors"`) > strings.Index(out, `class="nodes"`) {
		t.Error("connectors should be drawn before nodes")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	s := testScene(t)

	static := string(RenderSVG(s, WithStatic()))
	if strings.Contains(static, "<script") {
		t.Error("WithStatic should omit the interaction script")
	}

	light := string(RenderSVG(s, WithStyle(styles.Light)))
	dark := string(RenderSVG(s))
	if light == dark {
		t.Error("WithStyle(Light) should change the output")
	}

	plain := string(RenderSVG(s))
	lit := string(RenderSVG(s, WithHighlights(mindmap.RootID)))
	if plain == lit {
		t.Error("WithHighlights should change the output")
	}
}

func TestRenderJSON(t *testing.T) {
	s := testScene(t)
	data, err := RenderJSON(s, WithJSONStyle("light"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	type node struct {
		ID  string `json:"id"`
		Hex string `json:"hex"`
	}
	type connector struct {
		Kind string `json:"kind"`
		Path string `json:"path"`
	}
	var out struct {
		Width      float64     `json:"width"`
		Style      string      `json:"style"`
		RootID     string      `json:"rootId"`
		Nodes      []node      `json:"nodes"`
		Connectors []connector `json:"connectors"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Width != s.Bounds.Width() || out.Style != "light" || out.RootID != mindmap.RootID {
		t.Errorf("header = %+v", out)
	}
	if len(out.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(out.Nodes))
	}
	if out.Nodes[1].Hex != mindmap.ColorRed.Hex() {
		t.Errorf("hex = %q, want %q", out.Nodes[1].Hex, mindmap.ColorRed.Hex())
	}
	kinds := map[string]int{}
	for _, c := range out.Connectors {
		kinds[c.Kind]++
		if !strings.HasPrefix(c.Path, "M") {
			t.Errorf("path %q should start with M", c.Path)
		}
	}
	if kinds["tree"] != 2 || kinds["link"] != 1 {
		t.Errorf("connector kinds = %v", kinds)
	}
}

func TestRenderJSONEmptyConnectors(t *testing.T) {
	doc := mindmap.NewDefault()
	cfg := route.DefaultConfig()
	vis := mindmap.Visible(doc)
	s := render.NewScene(doc, vis, route.Route(vis, nil, cfg), cfg)

	data, err := RenderJSON(s, WithJSONIndent())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"connectors": []`) {
		t.Errorf("want empty connector array, got %s", data)
	}
}

func TestRenderPNGRequiresConverter(t *testing.T) {
	if render.ConverterAvailable() {
		t.Skip("rsvg-convert installed")
	}
	if _, err := RenderPNG(testScene(t)); err == nil {
		t.Error("RenderPNG without rsvg-convert should fail")
	}
	if _, err := RenderPDF(testScene(t)); err == nil {
		t.Error("RenderPDF without rsvg-convert should fail")
	}
}
