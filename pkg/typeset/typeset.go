// Package typeset defines the math typesetting collaborator invoked after the
// preview output is replaced. A Typesetter clears annotations left by the
// previous pass and then typesets the freshly inserted content.
package typeset

import "context"

// Config is the process-wide typesetting configuration. Build one at
// startup and hand it to every collaborator that needs it.
type Config struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
	// SkipTags lists elements whose text is never typeset.
	SkipTags []string `json:"skipTags,omitempty" yaml:"skipTags,omitempty"`
}

// DefaultConfig uses the @@ ... @@ AsciiMath delimiter pair.
func DefaultConfig() Config {
	return Config{
		Open:     "@@",
		Close:    "@@",
		SkipTags: []string{"script", "noscript", "style", "textarea", "pre", "code"},
	}
}

// Normalize fills blank delimiters from DefaultConfig.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Open == "" || c.Close == "" {
		c.Open, c.Close = def.Open, def.Close
	}
	if c.SkipTags == nil {
		c.SkipTags = def.SkipTags
	}
	return c
}

// Typesetter is the contract the preview renderer drives on each pass.
type Typesetter interface {
	Clear(ctx context.Context) error
	Typeset(ctx context.Context, html string) error
}

// Nop discards every call.
type Nop struct{}

func (Nop) Clear(context.Context) error           { return nil }
func (Nop) Typeset(context.Context, string) error { return nil }
