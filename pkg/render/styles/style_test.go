package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		code errors.Code
	}{
		{"", "dark", ""},
		{"dark", "dark", ""},
		{"LIGHT", "light", ""},
		{"handdrawn", "", errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.name)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("ByName(%q) error = %v, want %s", tt.name, err, tt.code)
				}
				return
			}
			if err != nil || s.Name() != tt.want {
				t.Errorf("ByName(%q) = %v, %v", tt.name, s, err)
			}
		})
	}
	if got := strings.Join(Names(), ","); got != "dark,light" {
		t.Errorf("Names() = %s", got)
	}
}

func TestWriteShape(t *testing.T) {
	tests := []struct {
		shape mindmap.Shape
		want  string
	}{
		{mindmap.ShapeDefault, `rx="12.00"`},
		{mindmap.ShapeRounded, `rx="12.00"`},
		{mindmap.ShapeRect, `<rect x="10.00" y="20.00" width="100.00" height="40.00" fill="x"/>`},
		{mindmap.ShapePill, `rx="20.00"`},
		{mindmap.ShapeEllipse, `<ellipse cx="60.00" cy="40.00" rx="50.00" ry="20.00"`},
		{mindmap.ShapeDiamond, `points="60.00,20.00 110.00,40.00 60.00,60.00 10.00,40.00"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			var buf bytes.Buffer
			WriteShape(&buf, tt.shape, 10, 20, 100, 40, `fill="x"`)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("WriteShape(%q) = %s, want substring %s", tt.shape, buf.String(), tt.want)
			}
		})
	}
}

func TestRenderNode(t *testing.T) {
	card := Card{
		ID:          "7<x>",
		Title:       []string{"Plan & do"},
		Description: []string{"first line"},
		URL:         "https://example.com/",
		Color:       "#ef4444",
		X:           0, Y: 0, W: 200, H: 100,
		TitleSize: 16, BodySize: 13,
		Collapsed: true, Hidden: 3,
		Locked: true,
	}
	var buf bytes.Buffer
	Dark.RenderNode(&buf, card)
	out := buf.String()

	for _, want := range []string{
		`id="node-7&lt;x&gt;"`,
		`stroke="#ef4444"`,
		`Plan &amp; do`,
		`first line`,
		`<a href="https://example.com/" target="_blank">`,
		`example.com</text>`,
		`+3</text>`,
		`class="lock-badge"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderNode() missing %q\nGot: %s", want, out)
		}
	}

	buf.Reset()
	card.Selected = true
	card.Collapsed = false
	Light.RenderNode(&buf, card)
	if !strings.Contains(buf.String(), `stroke="`+Light.Selection+`"`) {
		t.Errorf("selected card should use the selection stroke")
	}
	if strings.Contains(buf.String(), "collapsed-badge") {
		t.Errorf("expanded card should not have a badge")
	}
}

func TestRenderConnector(t *testing.T) {
	var buf bytes.Buffer
	Dark.RenderConnector(&buf, Wire{ID: "edge:1", FromID: "root", ToID: "1", Path: "M 0 0 C 1 1, 2 2, 3 3", Color: "#22c55e"})
	out := buf.String()
	if !strings.Contains(out, `d="M 0 0 C 1 1, 2 2, 3 3"`) || !strings.Contains(out, `stroke="#22c55e"`) {
		t.Errorf("tree connector = %s", out)
	}
	if strings.Contains(out, "stroke-dasharray") {
		t.Errorf("tree connector should be solid")
	}

	buf.Reset()
	Dark.RenderConnector(&buf, Wire{ID: "link:0", Link: true, Path: "M 0 0"})
	if !strings.Contains(buf.String(), `stroke-dasharray`) || !strings.Contains(buf.String(), `class="connector link"`) {
		t.Errorf("link connector = %s", buf.String())
	}

	buf.Reset()
	Dark.RenderLabel(&buf, Wire{ID: "edge:1", Label: "because <why>", LabelX: 50, LabelY: 10})
	if !strings.Contains(buf.String(), "because &lt;why&gt;") {
		t.Errorf("label = %s", buf.String())
	}
}

func TestRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Light.RenderDefs(&buf)
	if !strings.Contains(buf.String(), `id="card-shadow"`) || !strings.Contains(buf.String(), `id="link-arrow"`) {
		t.Errorf("defs = %s", buf.String())
	}
}
