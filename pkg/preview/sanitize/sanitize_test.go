package sanitize

import (
	"strings"
	"testing"
)

func TestSanitizeRemovesScripts(t *testing.T) {
	got := Default().Sanitize(`<p>hello</p><script>alert(1)</script>`)
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("expected script to be removed, got %q", got)
	}
	if !strings.Contains(got, "<p>hello</p>") {
		t.Fatalf("expected paragraph to remain, got %q", got)
	}
}

func TestSanitizeRemovesEventHandlersAndJavascriptURLs(t *testing.T) {
	got := Default().Sanitize(`<img src="x" onerror="alert(1)"><a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "onerror") || strings.Contains(got, "javascript:") {
		t.Fatalf("expected unsafe attributes to be removed, got %q", got)
	}
}

func TestSanitizeKeepsMathSpans(t *testing.T) {
	in := `<p><span class="math">@@x^2@@</span> <span class="evil">y</span></p>`
	got := Default().Sanitize(in)
	if !strings.Contains(got, `<span class="math">@@x^2@@</span>`) {
		t.Fatalf("expected math span to survive, got %q", got)
	}
	if strings.Contains(got, "evil") {
		t.Fatalf("expected arbitrary classes to be dropped, got %q", got)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := New().Sanitize("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
