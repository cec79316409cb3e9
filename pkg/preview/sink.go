package preview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-formpreview/pkg/render/template"
	"github.com/goliatone/go-formpreview/pkg/render/template/pongo"
	"github.com/goliatone/go-formpreview/pkg/typeset"
)

// Sink is the output container. Replace swaps the whole content; rendered
// output is never merged or patched.
type Sink interface {
	Replace(html string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(html string) error

func (f SinkFunc) Replace(html string) error { return f(html) }

// MemorySink keeps the latest content in memory.
type MemorySink struct {
	mu       sync.RWMutex
	html     string
	replaced int
}

// Replace implements Sink.
func (s *MemorySink) Replace(html string) error {
	s.mu.Lock()
	s.html = html
	s.replaced++
	s.mu.Unlock()
	return nil
}

// HTML returns the current content.
func (s *MemorySink) HTML() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.html
}

// Replaced reports how many times the content was swapped.
func (s *MemorySink) Replaced() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.replaced
}

const (
	pageTemplate      = "page.html"
	DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/startup.js"
)

// PageSink writes each replacement as a standalone HTML page, configured to
// typeset math with the same delimiters, to Path. Writes go through a
// temporary file and a rename so readers never observe a partial page.
type PageSink struct {
	Path       string
	Title      string
	MathJaxURL string
	Typeset    typeset.Config

	once     sync.Once
	engine   template.TemplateRenderer
	setupErr error
}

// NewPageSink builds a page sink using the bundled template.
func NewPageSink(path, title string, cfg typeset.Config) *PageSink {
	return &PageSink{Path: path, Title: title, Typeset: cfg.Normalize()}
}

// WithEngine overrides the template engine. The engine must provide a
// "page.html" template.
func (s *PageSink) WithEngine(engine template.TemplateRenderer) *PageSink {
	s.engine = engine
	return s
}

// Replace implements Sink.
func (s *PageSink) Replace(html string) error {
	if strings.TrimSpace(s.Path) == "" {
		return errors.New("preview: page sink path is required")
	}
	s.once.Do(func() {
		if s.engine != nil {
			return
		}
		s.engine, s.setupErr = pongo.New(pongo.WithFS(TemplatesFS()))
	})
	if s.setupErr != nil {
		return fmt.Errorf("preview: page template: %w", s.setupErr)
	}

	cfg := s.Typeset.Normalize()
	url := s.MathJaxURL
	if url == "" {
		url = DefaultMathJaxURL
	}
	page, err := s.engine.RenderTemplate(pageTemplate, map[string]any{
		"title":       s.Title,
		"open":        cfg.Open,
		"close":       cfg.Close,
		"mathjax_url": url,
		"content":     html,
	})
	if err != nil {
		return err
	}
	return writeFileAtomic(s.Path, []byte(page))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
