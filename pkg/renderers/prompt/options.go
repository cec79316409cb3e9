package prompt

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/pkg/render"
	"github.com/goliatone/go-formpreview/pkg/validation"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat = render.SubmissionFormat

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON = render.SubmissionJSON
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded = render.SubmissionForm
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText = render.SubmissionPretty
)

// DefaultMaxAttempts bounds how often a single field is asked again after
// failing validation.
const DefaultMaxAttempts = 3

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]string) (map[string]string, error)

// Option configures the prompt renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts sets how many times an invalid field is asked before the
// renderer moves on and lets the submit gate decide.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithValidatorOptions forwards options to the per-render validator.
func WithValidatorOptions(opts ...validation.Option) Option {
	return func(r *Renderer) {
		r.validatorOpts = append(r.validatorOpts, opts...)
	}
}

// WithLogger sets the logger used for attempt and gate diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
