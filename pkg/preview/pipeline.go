package preview

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/pkg/preview/markdown"
	"github.com/goliatone/go-formpreview/pkg/preview/sanitize"
	"github.com/goliatone/go-formpreview/pkg/typeset"
)

// Converter turns buffer text into HTML.
type Converter interface {
	Convert(src string) (string, error)
}

// Sanitizer strips unsafe markup from HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(src string) (string, error)

func (f ConverterFunc) Convert(src string) (string, error) { return f(src) }

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(html string) string

func (f SanitizerFunc) Sanitize(html string) string { return f(html) }

// Result describes one completed render pass.
type Result struct {
	// Source is the buffer snapshot the pass rendered.
	Source     string
	HTML       string
	Generation uint64
	Duration   time.Duration
	Err        error
}

// Pipeline performs a single render pass. It holds no buffer state and may
// be shared by renderers that write to different sinks.
type Pipeline struct {
	converter  Converter
	sanitizer  Sanitizer
	typesetter typeset.Typesetter
	logger     *zap.Logger
}

// NewPipeline builds a pipeline from the converter, sanitizer and
// typesetter configured in opts. Missing collaborators fall back to the
// goldmark converter, the shared bluemonday policy and a no-op typesetter.
func NewPipeline(opts ...Option) *Pipeline {
	cfg := newConfig(opts)
	return cfg.pipeline()
}

// Render runs clear, convert, sanitize, replace and typeset against sink
// and returns the sanitized HTML written to it.
func (p *Pipeline) Render(ctx context.Context, sink Sink, text string) (string, error) {
	if sink == nil {
		return "", ErrSinkRequired
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := p.typesetter.Clear(ctx); err != nil {
		p.logger.Warn("typeset clear failed", zap.Error(err))
	}

	raw, err := p.converter.Convert(text)
	if err != nil {
		return "", fmt.Errorf("preview: convert: %w", err)
	}
	safe := p.sanitizer.Sanitize(raw)

	if err := sink.Replace(safe); err != nil {
		return "", fmt.Errorf("preview: replace output: %w", err)
	}

	if err := p.typesetter.Typeset(ctx, safe); err != nil {
		p.logger.Warn("typeset failed", zap.Error(err))
	}
	return safe, nil
}

// Option configures a Renderer or Pipeline.
type Option func(*config)

type config struct {
	converter  Converter
	sanitizer  Sanitizer
	typesetter typeset.Typesetter
	logger     *zap.Logger
	quiet      time.Duration
	onRender   func(Result)
}

const DefaultQuietInterval = time.Second

func newConfig(opts []Option) *config {
	cfg := &config{quiet: DefaultQuietInterval}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.typesetter == nil {
		cfg.typesetter = typeset.Nop{}
	}
	if cfg.converter == nil {
		cfg.converter = markdown.New()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = sanitize.Default()
	}
	if cfg.quiet <= 0 {
		cfg.quiet = DefaultQuietInterval
	}
	return cfg
}

func (cfg *config) pipeline() *Pipeline {
	return &Pipeline{
		converter:  cfg.converter,
		sanitizer:  cfg.sanitizer,
		typesetter: cfg.typesetter,
		logger:     cfg.logger,
	}
}

// WithConverter overrides the markdown converter.
func WithConverter(c Converter) Option {
	return func(cfg *config) {
		cfg.converter = c
	}
}

// WithSanitizer overrides the HTML sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(cfg *config) {
		cfg.sanitizer = s
	}
}

// WithTypesetter sets the math typesetter driven after each replace.
func WithTypesetter(t typeset.Typesetter) Option {
	return func(cfg *config) {
		cfg.typesetter = t
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithQuietInterval sets how long the buffer must stay unchanged before a
// scheduled render fires. Non-positive values keep the default of one second.
func WithQuietInterval(d time.Duration) Option {
	return func(cfg *config) {
		cfg.quiet = d
	}
}

// OnRender registers a callback invoked after every render pass, including
// failed ones.
func OnRender(fn func(Result)) Option {
	return func(cfg *config) {
		cfg.onRender = fn
	}
}
