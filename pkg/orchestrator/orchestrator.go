package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/pkg/formspec"
	"github.com/goliatone/go-formpreview/pkg/model"
	"github.com/goliatone/go-formpreview/pkg/render"
	"github.com/goliatone/go-formpreview/pkg/renderers/prompt"
)

const defaultRendererName = "prompt"

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore supplies the form definitions to resolve ids against.
func WithStore(store *formspec.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithFormsDir overlays the forms found in dir on the embedded defaults.
func WithFormsDir(dir string) Option {
	return func(o *Orchestrator) {
		o.formsDir = dir
	}
}

// WithRegistry overrides the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer selects the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithTransformer registers a transformer applied to every resolved form.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithEndpointOverride replaces the submit target of the given form.
func WithEndpointOverride(formID string, override EndpointOverride) Option {
	return func(o *Orchestrator) {
		if o.overrides == nil {
			o.overrides = make(map[string]EndpointOverride)
		}
		o.overrides[formID] = override
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates form resolution and rendering. Missing
// dependencies fall back to the embedded forms and the prompt renderer.
type Orchestrator struct {
	store           *formspec.Store
	formsDir        string
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	overrides       map[string]EndpointOverride
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// FormID selects a form from the store. Ignored when Form is supplied.
	FormID string

	// Form bypasses the store.
	Form *model.FormModel

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// RenderOptions carries prefilled values, server-side errors and hidden
	// fields.
	RenderOptions render.RenderOptions
}

// Generate resolves the requested form and returns the renderer's output.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("rendering form",
		zap.String("form", form.ID),
		zap.String("renderer", renderer.Name()),
		zap.Int("fields", len(form.Fields)),
	)
	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Resolve returns the form a request targets with overrides and transformers
// applied.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (model.FormModel, error) {
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	var form model.FormModel
	switch {
	case req.Form != nil:
		form = *req.Form
		form.Fields = append([]model.Field(nil), req.Form.Fields...)
	case req.FormID == "":
		return model.FormModel{}, errors.New("orchestrator: form id is required")
	default:
		found, ok := o.store.Form(req.FormID)
		if !ok {
			if hint := o.Suggest(req.FormID, 1); len(hint) == 1 {
				return model.FormModel{}, fmt.Errorf("orchestrator: form %q not found, did you mean %q?", req.FormID, hint[0])
			}
			return model.FormModel{}, fmt.Errorf("orchestrator: form %q not found (known: %s)", req.FormID, strings.Join(o.store.IDs(), ", "))
		}
		form = found
		form.Fields = append([]model.Field(nil), found.Fields...)
	}

	if override, ok := o.overrides[form.ID]; ok {
		override.apply(&form)
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return form, nil
}

// Forms lists the ids of the available forms.
func (o *Orchestrator) Forms() []string {
	return o.store.IDs()
}

// Suggest fuzzy-matches input against the form ids, best match first. At
// most limit ids are returned; limit <= 0 means no limit.
func (o *Orchestrator) Suggest(input string, limit int) []string {
	if o.store == nil {
		return nil
	}
	ids := o.store.IDs()
	if input == "" {
		return ids
	}
	matches := fuzzy.Find(input, ids)
	if limit <= 0 || len(matches) < limit {
		limit = len(matches)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}

	renderer, ok := o.registry.Fallback()
	if !ok {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.store == nil {
		store, err := formspec.Load(o.formsDir)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load forms: %w", err)
			return
		}
		o.store = store
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(prompt.New(prompt.WithLogger(o.logger)))
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
