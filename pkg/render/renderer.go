package render

import (
	"context"

	"github.com/goliatone/go-formpreview/pkg/model"
)

// Renderer turns a FormModel into a byte representation: a submission
// payload for interactive renderers, markup for document renderers.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
