// Package editor is a terminal markdown editor: a textarea on the left and a
// live preview on the right. Every edit goes through the debounced preview
// renderer, which also keeps an HTML page up to date when a sink is given.
package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/pkg/preview"
	"github.com/goliatone/go-formpreview/pkg/typeset"
)

// Config describes one editing session.
type Config struct {
	Path          string
	Initial       string
	Sink          preview.Sink
	Delimiters    typeset.Config
	QuietInterval time.Duration
	// Style is the glamour standard style name.
	Style  string
	Logger *zap.Logger
}

// Session owns the renderer and the model of one editor run.
type Session struct {
	model    Model
	renderer *preview.Renderer
	sink     *teeSink
}

// New wires a renderer to the model.
func New(cfg Config) (*Session, error) {
	if cfg.Path == "" {
		return nil, errors.New("editor: path is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Style == "" {
		cfg.Style = "dark"
	}
	delims := cfg.Delimiters.Normalize()

	results := make(chan preview.Result, 16)
	annotator := typeset.NewAnnotator(delims)
	sink := &teeSink{next: cfg.Sink}
	renderer, err := preview.New(sink,
		preview.WithTypesetter(annotator),
		preview.WithQuietInterval(cfg.QuietInterval),
		preview.WithLogger(cfg.Logger),
		preview.OnRender(func(res preview.Result) {
			select {
			case results <- res:
			default:
				cfg.Logger.Debug("editor dropped render notification", zap.Uint64("generation", res.Generation))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}

	m := newModel(cfg.Path, cfg.Initial, renderer, results, annotator)
	m.style = cfg.Style
	m.delims = delims
	return &Session{model: m, renderer: renderer, sink: sink}, nil
}

// Model returns the initial model, mainly for tests.
func (s *Session) Model() Model {
	return s.model
}

// Run renders the initial buffer and blocks until the user quits.
func (s *Session) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	if err := s.renderer.Start(ctx, s.model.textarea.Value()); err != nil {
		return fmt.Errorf("editor: initial render: %w", err)
	}
	defer s.renderer.Stop()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(s.model, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("editor: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// teeSink forwards to an optional downstream sink and remembers the last
// HTML so the status line can report its size.
type teeSink struct {
	next preview.Sink
	mem  preview.MemorySink
}

func (t *teeSink) Replace(html string) error {
	if err := t.mem.Replace(html); err != nil {
		return err
	}
	if t.next == nil {
		return nil
	}
	return t.next.Replace(html)
}
