package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicDocument(t *testing.T) {
	r := NewRenderer(Options{})

	out, err := r.RenderString("# Renewing a visa\n\nStart **early**.")
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if !strings.Contains(out, "<h1 id=\"renewing-a-visa\">Renewing a visa</h1>") {
		t.Fatalf("expected heading with auto id, got %q", out)
	}
	if !strings.Contains(out, "<strong>early</strong>") {
		t.Fatalf("expected bold text, got %q", out)
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer(Options{})

	out, err := r.RenderString("| Step | Fee |\n| --- | --- |\n| Apply | 50 |\n")
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected GFM table output, got %q", out)
	}
}

func TestRenderSafeModeStripsRawHTML(t *testing.T) {
	r := NewRenderer(Options{SafeMode: true})

	out, err := r.RenderString("before <script>alert(1)</script> after")
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw HTML must not pass through in safe mode, got %q", out)
	}
}

func TestCollectExtensionsIgnoresUnknownNames(t *testing.T) {
	exts := collectExtensions([]string{"table", "not-a-real-extension", "table"})
	if len(exts) != 1 {
		t.Fatalf("expected the one known extension once, got %d", len(exts))
	}
}
