package editor

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-formpreview/pkg/typeset"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. A fixed style avoids the terminal
	// background query that WithAutoStyle performs.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md for the terminal preview pane. Math spans are
// shown verbatim as inline code so glamour leaves them intact.
func renderMarkdown(md string, width int, style string, delims typeset.Config) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	md = protectMath(md, delims)

	key := style + ":" + strconv.Itoa(width)
	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func protectMath(md string, delims typeset.Config) string {
	delims = delims.Normalize()
	seen := make(map[string]struct{})
	for _, ann := range typeset.Extract(md, delims.Open, delims.Close) {
		if _, ok := seen[ann.Source]; ok {
			continue
		}
		seen[ann.Source] = struct{}{}
		md = strings.ReplaceAll(md, ann.Source, "`"+ann.Source+"`")
	}
	return md
}
