package orchestrator

import (
	"context"

	"github.com/goliatone/go-formpreview/pkg/model"
)

// Transformer mutates a FormModel before it reaches the renderer.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// EndpointOverride replaces the submit target of a form.
type EndpointOverride struct {
	Endpoint string
	Method   string
}

func (o EndpointOverride) apply(form *model.FormModel) {
	if o.Endpoint != "" {
		form.Endpoint = o.Endpoint
	}
	if o.Method != "" {
		form.Method = o.Method
	}
}
