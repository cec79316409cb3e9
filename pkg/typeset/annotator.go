package typeset

import (
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Annotation records one math expression found in typeset output.
type Annotation struct {
	Index  int    `json:"index"`
	Expr   string `json:"expr"`
	Source string `json:"source"`
}

// Annotator is a Typesetter that locates delimited math in rendered HTML and
// keeps an annotation per expression until the next Clear.
type Annotator struct {
	cfg  Config
	skip map[string]struct{}

	mu          sync.RWMutex
	annotations []Annotation
	passes      int
}

// NewAnnotator builds an annotator for cfg.
func NewAnnotator(cfg Config) *Annotator {
	cfg = cfg.Normalize()
	skip := make(map[string]struct{}, len(cfg.SkipTags))
	for _, tag := range cfg.SkipTags {
		skip[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}
	return &Annotator{cfg: cfg, skip: skip}
}

// Clear drops the annotations of the previous pass.
func (a *Annotator) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	a.annotations = nil
	a.mu.Unlock()
	return nil
}

// Typeset scans the text content of doc for delimited math.
func (a *Annotator) Typeset(ctx context.Context, doc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	found, err := a.scan(doc)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, ann := range found {
		ann.Index = len(a.annotations)
		a.annotations = append(a.annotations, ann)
	}
	a.passes++
	return nil
}

// Annotations returns a copy of the current annotations.
func (a *Annotator) Annotations() []Annotation {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Annotation(nil), a.annotations...)
}

// Passes reports how many Typeset calls completed.
func (a *Annotator) Passes() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.passes
}

func (a *Annotator) scan(doc string) ([]Annotation, error) {
	var (
		out   []Annotation
		depth int
	)
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return out, nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if _, ok := a.skip[string(name)]; ok {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if _, ok := a.skip[string(name)]; ok && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth > 0 {
				continue
			}
			out = append(out, Extract(string(z.Text()), a.cfg.Open, a.cfg.Close)...)
		}
	}
}

// Extract returns every open...close expression in text, left to right.
// Unterminated and empty spans are ignored.
func Extract(text, open, close string) []Annotation {
	var out []Annotation
	for {
		start := strings.Index(text, open)
		if start < 0 {
			return out
		}
		rest := text[start+len(open):]
		end := strings.Index(rest, close)
		if end < 0 {
			return out
		}
		if end == 0 {
			text = rest
			continue
		}
		expr := rest[:end]
		out = append(out, Annotation{
			Expr:   expr,
			Source: open + expr + close,
		})
		text = rest[end+len(close):]
	}
}
