package markdown

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MathClass is the class carried by spans wrapping inline math.
const MathClass = "math"

// KindMath identifies inline math nodes.
var KindMath = ast.NewNodeKind("Math")

// Math is an inline span of delimited math kept verbatim for the typesetter.
type Math struct {
	ast.BaseInline
	Expr []byte
}

// Kind implements ast.Node.
func (n *Math) Kind() ast.NodeKind {
	return KindMath
}

// Dump implements ast.Node.
func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Expr": string(n.Expr),
	}, nil)
}

type mathExtension struct {
	open  []byte
	close []byte
}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mathParser{open: e.open, close: e.close}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathRenderer{open: string(e.open), close: string(e.close)}, 500),
	))
}

type mathParser struct {
	open  []byte
	close []byte
}

func (p *mathParser) Trigger() []byte {
	return []byte{p.open[0]}
}

// Parse captures open...close on the current line. An unterminated or empty
// span returns nil so the delimiter falls through as literal text.
func (p *mathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, p.open) {
		return nil
	}
	rest := line[len(p.open):]
	end := bytes.Index(rest, p.close)
	if end <= 0 {
		return nil
	}
	node := &Math{Expr: append([]byte(nil), rest[:end]...)}
	block.Advance(len(p.open) + end + len(p.close))
	return node
}

type mathRenderer struct {
	open  string
	close string
}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, r.render)
}

func (r *mathRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Math)
	_, _ = w.WriteString(`<span class="` + MathClass + `">`)
	_, _ = w.WriteString(html.EscapeString(r.open + string(n.Expr) + r.close))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}
