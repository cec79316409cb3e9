// Package markdown converts the preview buffer to HTML with goldmark. Inline
// math between the configured delimiters is lifted out before emphasis and
// escaping rules can touch it and is emitted verbatim inside a
// <span class="math"> for the typesetting pass.
package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	DefaultOpen  = "@@"
	DefaultClose = "@@"
)

// Option configures a Converter.
type Option func(*config)

type config struct {
	open     string
	close    string
	gfm      bool
	rawHTML  bool
	hardWrap bool
}

// WithDelimiters overrides the inline math delimiters. Empty values are ignored.
func WithDelimiters(open, close string) Option {
	return func(cfg *config) {
		if open != "" && close != "" {
			cfg.open = open
			cfg.close = close
		}
	}
}

// WithGFM toggles GitHub flavoured extensions (tables, strikethrough,
// linkify, task lists). Enabled by default.
func WithGFM(enabled bool) Option {
	return func(cfg *config) {
		cfg.gfm = enabled
	}
}

// WithRawHTML controls whether raw HTML in the source is passed through.
// It is passed through by default; the sanitizer strips what is unsafe.
func WithRawHTML(enabled bool) Option {
	return func(cfg *config) {
		cfg.rawHTML = enabled
	}
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps(enabled bool) Option {
	return func(cfg *config) {
		cfg.hardWrap = enabled
	}
}

// Converter turns markdown text into an HTML fragment.
type Converter struct {
	md    goldmark.Markdown
	open  string
	close string
}

// New builds a converter.
func New(opts ...Option) *Converter {
	cfg := config{
		open:    DefaultOpen,
		close:   DefaultClose,
		gfm:     true,
		rawHTML: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	extensions := []goldmark.Extender{
		&mathExtension{open: []byte(cfg.open), close: []byte(cfg.close)},
	}
	if cfg.gfm {
		extensions = append(extensions, extension.GFM)
	}

	var rendererOpts []goldmark.Option
	var htmlOpts []renderer.Option
	if cfg.rawHTML {
		htmlOpts = append(htmlOpts, gmhtml.WithUnsafe())
	}
	if cfg.hardWrap {
		htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
	}
	if len(htmlOpts) > 0 {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(htmlOpts...))
	}

	md := goldmark.New(append(rendererOpts,
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)...)

	return &Converter{md: md, open: cfg.open, close: cfg.close}
}

// Delimiters returns the math delimiters in use.
func (c *Converter) Delimiters() (open, close string) {
	return c.open, c.close
}

// Convert renders src to HTML.
func (c *Converter) Convert(src string) (string, error) {
	if c == nil || c.md == nil {
		return "", errors.New("markdown: converter is nil")
	}
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}
