package editor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formpreview/pkg/preview"
	"github.com/goliatone/go-formpreview/pkg/typeset"
)

type renderedMsg struct {
	result preview.Result
}

type savedMsg struct {
	path string
	err  error
}

type flushedMsg struct {
	err error
}

var (
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the bubbletea model of the editor.
type Model struct {
	path      string
	textarea  textarea.Model
	renderer  *preview.Renderer
	results   <-chan preview.Result
	annotator *typeset.Annotator
	style     string
	delims    typeset.Config

	width, height int
	pane          string
	rendered      string
	saved         string
	status        string
	err           error
}

func newModel(path, initial string, renderer *preview.Renderer, results <-chan preview.Result, annotator *typeset.Annotator) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetValue(initial)
	ta.Focus()
	return Model{
		path:      path,
		textarea:  ta,
		renderer:  renderer,
		results:   results,
		annotator: annotator,
		style:     "dark",
		delims:    typeset.DefaultConfig(),
		rendered:  initial,
		saved:     initial,
		status:    "ctrl+s save · ctrl+r render now · esc quit",
	}
}

func waitForRender(results <-chan preview.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return renderedMsg{result: res}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForRender(m.results))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.pane = renderMarkdown(m.rendered, m.paneWidth(), m.style, m.delims)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m, saveCmd(m.path, m.textarea.Value())
		case "ctrl+r":
			return m, m.flushCmd()
		}
		before := m.textarea.Value()
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		if after := m.textarea.Value(); after != before {
			m.renderer.Keystroke(after)
			m.status = "editing…"
		}
		return m, cmd

	case renderedMsg:
		res := msg.result
		if res.Err != nil {
			m.status = errorStyle.Render("render failed: " + res.Err.Error())
		} else {
			m.rendered = res.Source
			m.pane = renderMarkdown(res.Source, m.paneWidth(), m.style, m.delims)
			m.status = fmt.Sprintf("rendered #%d in %s · %d math · %d bytes",
				res.Generation, res.Duration.Round(time.Microsecond), len(m.annotator.Annotations()), len(res.HTML))
		}
		return m, waitForRender(m.results)

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = errorStyle.Render("save failed: " + msg.err.Error())
			return m, nil
		}
		m.err = nil
		m.saved = m.textarea.Value()
		m.status = "saved " + msg.path
		return m, nil

	case flushedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("render failed: " + msg.err.Error())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	title := m.path
	if m.Dirty() {
		title += " *"
	}
	left := paneStyle.Render(m.textarea.View())
	right := paneStyle.Width(m.paneWidth()).Render(m.pane)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, title, body, statusStyle.Render(m.status))
}

// Dirty reports whether the buffer differs from the saved file.
func (m Model) Dirty() bool {
	return m.textarea.Value() != m.saved
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

func (m *Model) resize() {
	half := m.width / 2
	if half < 20 {
		half = 20
	}
	m.textarea.SetWidth(half - 4)
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	m.textarea.SetHeight(h)
}

func (m Model) paneWidth() int {
	if m.width == 0 {
		return 60
	}
	w := m.width - m.width/2 - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) flushCmd() tea.Cmd {
	r := m.renderer
	return func() tea.Msg {
		return flushedMsg{err: r.Flush(context.Background())}
	}
}

func saveCmd(path, text string) tea.Cmd {
	return func() tea.Msg {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return savedMsg{path: path, err: os.WriteFile(path, []byte(text), 0o644)}
	}
}
