package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formpreview/pkg/preview"
	"github.com/goliatone/go-formpreview/pkg/typeset"
)

func typeRunes(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func TestEditsScheduleDebouncedRender(t *testing.T) {
	sink := &preview.MemorySink{}
	session, err := New(Config{
		Path:          filepath.Join(t.TempDir(), "p.md"),
		Initial:       "Area ",
		Sink:          sink,
		QuietInterval: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(session.renderer.Stop)

	m := session.Model()
	m = typeRunes(t, m, "@@pi r^2@@")
	require.Equal(t, preview.StatePendingRender, session.renderer.State())
	require.True(t, m.Dirty())
	require.Equal(t, "editing…", m.Status())

	var res preview.Result
	select {
	case res = <-m.results:
	case <-time.After(2 * time.Second):
		t.Fatal("render never fired")
	}
	require.NoError(t, res.Err)
	require.Equal(t, preview.StateIdle, session.renderer.State())
	require.Contains(t, sink.HTML(), `class="math"`)

	next, cmd := m.Update(renderedMsg{result: res})
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Contains(t, m.Status(), "1 math")
	require.Contains(t, m.View(), "pi r^2")
}

func TestPaneShowsRenderedSnapshot(t *testing.T) {
	session, err := New(Config{Path: filepath.Join(t.TempDir(), "p.md"), Initial: "start"})
	require.NoError(t, err)
	t.Cleanup(session.renderer.Stop)

	m := typeRunes(t, session.Model(), " unrendered")
	next, _ := m.Update(renderedMsg{result: preview.Result{Source: "snapshot", HTML: "<p>snapshot</p>", Generation: 1}})
	m = next.(Model)
	require.Contains(t, m.pane, "snapshot")
	require.NotContains(t, m.pane, "unrendered")

	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	require.Contains(t, m.pane, "snapshot")
	require.NotContains(t, m.pane, "unrendered")
}

func TestSaveClearsDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.md")
	session, err := New(Config{Path: path, Initial: "draft"})
	require.NoError(t, err)
	t.Cleanup(session.renderer.Stop)

	m := typeRunes(t, session.Model(), "!")
	require.True(t, m.Dirty())

	msg := saveCmd(path, m.textarea.Value())()
	next, _ := m.Update(msg)
	m = next.(Model)
	require.False(t, m.Dirty())
	require.Contains(t, m.Status(), "saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "draft!\n", string(data))

	next, _ = m.Update(savedMsg{path: path, err: os.ErrPermission})
	require.Error(t, next.(Model).err)
}

func TestQuitKeys(t *testing.T) {
	session, err := New(Config{Path: "x.md"})
	require.NoError(t, err)
	t.Cleanup(session.renderer.Stop)

	_, cmd := session.Model().Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)

	_, err = New(Config{})
	require.Error(t, err)
}

func TestProtectMath(t *testing.T) {
	got := protectMath("a @@x@@ and @@x@@ then @@y", typeset.DefaultConfig())
	require.Equal(t, "a `@@x@@` and `@@x@@` then @@y", got)

	out := renderMarkdown("# Title\n\nvalue @@a/b@@", 40, "notty", typeset.DefaultConfig())
	require.True(t, strings.Contains(out, "@@a/b@@"), out)
	require.Empty(t, renderMarkdown("   ", 40, "notty", typeset.DefaultConfig()))
}
