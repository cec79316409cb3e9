package typeset_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpreview/pkg/typeset"
)

func TestAnnotatorTypesetAndClear(t *testing.T) {
	ctx := context.Background()
	a := typeset.NewAnnotator(typeset.DefaultConfig())

	doc := `<h1>Title <span class="math">@@x^2@@</span></h1><p>and @@a &lt; b@@</p><pre><code>@@skip@@</code></pre>`
	if err := a.Typeset(ctx, doc); err != nil {
		t.Fatalf("typeset: %v", err)
	}

	want := []typeset.Annotation{
		{Index: 0, Expr: "x^2", Source: "@@x^2@@"},
		{Index: 1, Expr: "a < b", Source: "@@a < b@@"},
	}
	if diff := cmp.Diff(want, a.Annotations()); diff != "" {
		t.Fatalf("annotations mismatch (-want +got):\n%s", diff)
	}
	if a.Passes() != 1 {
		t.Fatalf("expected one pass, got %d", a.Passes())
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := a.Annotations(); len(got) != 0 {
		t.Fatalf("expected annotations cleared, got %+v", got)
	}
}

func TestAnnotatorHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := typeset.NewAnnotator(typeset.Config{})
	if err := a.Typeset(ctx, "@@x@@"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestExtract(t *testing.T) {
	got := typeset.Extract("before @@a@@ mid @@b", "@@", "@@")
	want := []typeset.Annotation{{Expr: "a", Source: "@@a@@"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}

	if got := typeset.Extract("@@@@ x", "@@", "@@"); len(got) != 0 {
		t.Fatalf("expected empty span to be skipped, got %+v", got)
	}

	got = typeset.Extract(`\(x\) and \(y\)`, `\(`, `\)`)
	want = []typeset.Annotation{{Expr: "x", Source: `\(x\)`}, {Expr: "y", Source: `\(y\)`}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := typeset.Config{Open: "$$"}.Normalize()
	if cfg.Open != "@@" || cfg.Close != "@@" {
		t.Fatalf("expected default delimiters, got %+v", cfg)
	}
}
