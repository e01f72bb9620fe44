package mindmap

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/brainwave/pkg/errors"
)

func TestColorHex(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{ColorRed, "#ef4444"},
		{ColorIndigo, "#6366f1"},
		{ColorPink, "#ec4899"},
		{Color(0), "#6366f1"},
		{Color(13), "#6366f1"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Color(%d).Hex() = %q, want %q", tt.color, got, tt.want)
		}
	}
	if len(Colors()) != 12 {
		t.Errorf("Colors() has %d entries, want 12", len(Colors()))
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"1", ColorRed, false},
		{"12", ColorPink, false},
		{"teal", ColorTeal, false},
		{"0", 0, true},
		{"13", 0, true},
		{"mauve", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("code = %v, want INVALID_COLOR", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range append(Shapes(), ShapeDefault) {
		if _, err := ParseShape(string(s)); err != nil {
			t.Errorf("ParseShape(%q) error = %v", s, err)
		}
	}
	_, err := ParseShape("hexagon")
	if !errors.Is(err, errors.ErrCodeInvalidShape) {
		t.Errorf("ParseShape(hexagon) error = %v, want INVALID_SHAPE", err)
	}
}

func TestNodeJSON(t *testing.T) {
	t.Run("root writes null parent and no size", func(t *testing.T) {
		n := Node{ID: "root", Title: "R", Width: 200, Height: 90}
		b, err := json.Marshal(n)
		if err != nil {
			t.Fatal(err)
		}
		s := string(b)
		if !strings.Contains(s, `"parentId":null`) {
			t.Errorf("missing null parent: %s", s)
		}
		if strings.Contains(s, "width") || strings.Contains(s, "height") {
			t.Errorf("measured size leaked: %s", s)
		}
		if !strings.Contains(s, `"color":9`) {
			t.Errorf("zero color not normalized: %s", s)
		}
	})

	t.Run("numeric ids", func(t *testing.T) {
		var n Node
		if err := json.Unmarshal([]byte(`{"id":7,"title":"x","parentId":3}`), &n); err != nil {
			t.Fatal(err)
		}
		if n.ID != "7" || n.ParentID != "3" {
			t.Errorf("got id=%q parent=%q", n.ID, n.ParentID)
		}
		if n.Color != DefaultColor {
			t.Errorf("missing color = %v, want default", n.Color)
		}
	})

	t.Run("bad color rejected", func(t *testing.T) {
		var n Node
		err := json.Unmarshal([]byte(`{"id":"a","title":"x","color":42}`), &n)
		if !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("error = %v, want INVALID_COLOR", err)
		}
	})

	t.Run("bad shape rejected", func(t *testing.T) {
		var n Node
		err := json.Unmarshal([]byte(`{"id":"a","title":"x","shape":"star"}`), &n)
		if !errors.Is(err, errors.ErrCodeInvalidShape) {
			t.Errorf("error = %v, want INVALID_SHAPE", err)
		}
	})
}

func TestDataJSONRequiresNodes(t *testing.T) {
	var d Data
	err := json.Unmarshal([]byte(`{"nextId": 3}`), &d)
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("error = %v, want INVALID_DOCUMENT", err)
	}

	if err := json.Unmarshal([]byte(`{"nodes": [], "nextId": 3}`), &d); err != nil {
		t.Fatalf("empty nodes rejected: %v", err)
	}
	if d.NextID != 3 {
		t.Errorf("NextID = %d, want 3", d.NextID)
	}
}
