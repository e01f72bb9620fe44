package styles

import (
	"bytes"
	"testing"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a<b>", "a&lt;b&gt;"},
		{`"q" & 'a'`, "&#34;q&#34; &amp; &#39;a&#39;"},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"a long title here", 8, "a long…"},
		{"ünïcödé", 4, "ünï…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestWrapURL(t *testing.T) {
	var buf bytes.Buffer
	WrapURL(&buf, "", func() { buf.WriteString("x") })
	if buf.String() != "x" {
		t.Errorf("no URL: %q", buf.String())
	}
	buf.Reset()
	WrapURL(&buf, "https://a.b/?q=1&r=2", func() { buf.WriteString("x") })
	want := `  <a href="https://a.b/?q=1&amp;r=2" target="_blank">x</a>`
	if buf.String() != want {
		t.Errorf("WrapURL = %q, want %q", buf.String(), want)
	}
}

func TestDisplayURL(t *testing.T) {
	if got := DisplayURL("https://example.com/"); got != "example.com" {
		t.Errorf("DisplayURL = %q", got)
	}
	if got := DisplayURL("http://x.io/a"); got != "x.io/a" {
		t.Errorf("DisplayURL = %q", got)
	}
}
