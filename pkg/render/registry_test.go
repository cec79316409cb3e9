package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpreview/pkg/model"
	"github.com/goliatone/go-formpreview/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	if _, ok := reg.Fallback(); ok {
		t.Fatalf("empty registry should have no fallback")
	}
	if _, err := reg.Get("prompt"); !errors.Is(err, render.ErrUnknownRenderer) || !strings.Contains(err.Error(), "none registered") {
		t.Fatalf("unexpected error on empty registry: %v", err)
	}

	if err := reg.Register(namedRenderer("prompt")); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.MustRegister(namedRenderer("json"))

	if err := reg.Register(namedRenderer("prompt")); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected duplicate registration to fail, got %v", err)
	}
	if err := reg.Register(namedRenderer("  ")); err == nil {
		t.Fatalf("expected blank name to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	if diff := cmp.Diff([]string{"json", "prompt"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("json") || reg.Has("vanilla") {
		t.Fatalf("unexpected Has results")
	}
	_, err := reg.Get("vanilla")
	if !errors.Is(err, render.ErrUnknownRenderer) || !strings.Contains(err.Error(), "have json, prompt") {
		t.Fatalf("unexpected missing renderer error: %v", err)
	}
	if fallback, ok := reg.Fallback(); !ok || fallback.Name() != "prompt" {
		t.Fatalf("fallback should be the first registered renderer, got %v", fallback)
	}
}
