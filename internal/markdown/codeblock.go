package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindPlainCodeBlock is the node kind of a fenced block left unhighlighted.
var KindPlainCodeBlock = ast.NewNodeKind("PlainCodeBlock")

// PlainCodeBlock replaces a fenced code block whose language is outside the
// highlight set. Lines are carried over unchanged.
type PlainCodeBlock struct {
	ast.BaseBlock
	Language string
}

func (n *PlainCodeBlock) Kind() ast.NodeKind { return KindPlainCodeBlock }
func (n *PlainCodeBlock) IsRaw() bool        { return true }

func (n *PlainCodeBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Language": n.Language}, nil)
}

// codeFilter routes fenced code blocks: registered languages stay as
// FencedCodeBlock for the chroma highlighter, everything else becomes a
// PlainCodeBlock.
type codeFilter struct {
	languages *LanguageSet
}

func (f *codeFilter) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fenced, ok := n.(*ast.FencedCodeBlock); ok {
			blocks = append(blocks, fenced)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, fenced := range blocks {
		lang := string(fenced.Language(source))
		if lang != "" && f.languages.Contains(lang) {
			continue
		}
		plain := &PlainCodeBlock{Language: lang}
		plain.SetLines(fenced.Lines())
		parent := fenced.Parent()
		if parent == nil {
			continue
		}
		parent.ReplaceChild(parent, fenced, plain)
	}
}

func (f *codeFilter) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindPlainCodeBlock, f.renderPlain)
}

func (f *codeFilter) renderPlain(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*PlainCodeBlock)
	_, _ = w.WriteString("<pre><code")
	if n.Language != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.Language)))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func (f *codeFilter) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(util.Prioritized(f, 100)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(f, 500)),
	)
}
