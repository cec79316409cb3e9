package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpreview/pkg/formspec"
	"github.com/goliatone/go-formpreview/pkg/model"
	"github.com/goliatone/go-formpreview/pkg/orchestrator"
	"github.com/goliatone/go-formpreview/pkg/render"
)

type recordingRenderer struct {
	name string
	form model.FormModel
	opts render.RenderOptions
	err  error
}

func (r *recordingRenderer) Name() string        { return r.name }
func (r *recordingRenderer) ContentType() string { return "text/plain" }
func (r *recordingRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.form = form
	r.opts = opts
	if r.err != nil {
		return nil, r.err
	}
	return []byte(form.ID), nil
}

func newOrchestrator(t *testing.T, renderers ...render.Renderer) *orchestrator.Orchestrator {
	t.Helper()
	reg := render.NewRegistry()
	for _, r := range renderers {
		reg.MustRegister(r)
	}
	return orchestrator.New(orchestrator.WithRegistry(reg), orchestrator.WithDefaultRenderer("rec"))
}

func TestGenerateResolvesEmbeddedForm(t *testing.T) {
	rec := &recordingRenderer{name: "rec"}
	orch := newOrchestrator(t, rec)

	opts := render.RenderOptions{Hidden: []render.HiddenField{render.CSRFToken("_csrf", "abc")}}
	out, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "login", RenderOptions: opts})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "login" {
		t.Fatalf("unexpected output %q", out)
	}
	if diff := cmp.Diff([]string{"username", "password"}, rec.form.FieldNames()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(opts, rec.opts); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(strings.Join(orch.Forms(), ","), "problem") {
		t.Fatalf("expected embedded forms, got %v", orch.Forms())
	}
}

func TestGenerateAppliesOverridesAndTransformers(t *testing.T) {
	rec := &recordingRenderer{name: "rec"}
	reg := render.NewRegistry()
	reg.MustRegister(rec)
	store, err := formspec.LoadFS(formspec.EmbeddedFS())
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}

	orch := orchestrator.New(
		orchestrator.WithStore(store),
		orchestrator.WithRegistry(reg),
		orchestrator.WithDefaultRenderer("rec"),
		orchestrator.WithEndpointOverride("login", orchestrator.EndpointOverride{Endpoint: "https://judge.test/login"}),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, form *model.FormModel) error {
			form.Fields[0].Label = "Handle"
			return nil
		})),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "login"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.form.Endpoint != "https://judge.test/login" || rec.form.Method != "POST" {
		t.Fatalf("override not applied: %s %s", rec.form.Method, rec.form.Endpoint)
	}
	if rec.form.Fields[0].Label != "Handle" {
		t.Fatalf("transformer not applied: %+v", rec.form.Fields[0])
	}

	stored, _ := store.Form("login")
	if stored.Fields[0].Label != "Username" {
		t.Fatalf("store mutated by transformer: %q", stored.Fields[0].Label)
	}
}

func TestGenerateErrors(t *testing.T) {
	failing := &recordingRenderer{name: "rec", err: errors.New("boom")}
	orch := newOrchestrator(t, failing)
	ctx := context.Background()

	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing form id error")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{FormID: "nope"}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected unknown form error, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{FormID: "login", Renderer: "html"}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{FormID: "login"}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected renderer error, got %v", err)
	}

	broken := orchestrator.New(orchestrator.WithFormsDir("testdata/missing"))
	if _, err := broken.Generate(ctx, orchestrator.Request{FormID: "login"}); err == nil {
		t.Fatalf("expected forms dir error")
	}
}

func TestSuggestAndDidYouMean(t *testing.T) {
	orch := newOrchestrator(t, &recordingRenderer{name: "rec"})

	if got := orch.Suggest("logn", 3); len(got) == 0 || got[0] != "login" {
		t.Fatalf("suggest = %v", got)
	}
	if got := orch.Suggest("", 0); len(got) != len(orch.Forms()) {
		t.Fatalf("empty input should list every form, got %v", got)
	}
	_, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "logn"})
	if err == nil || !strings.Contains(err.Error(), `did you mean "login"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestGenerateInlineFormAndDefaultRegistry(t *testing.T) {
	rec := &recordingRenderer{name: "only"}
	reg := render.NewRegistry()
	reg.MustRegister(rec)
	orch := orchestrator.New(orchestrator.WithRegistry(reg))

	form := &model.FormModel{ID: "inline", Fields: []model.Field{{Name: "x"}}}
	out, err := orch.Generate(context.Background(), orchestrator.Request{Form: form})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "inline" {
		t.Fatalf("expected fallback to the only registered renderer, got %q", out)
	}
}
