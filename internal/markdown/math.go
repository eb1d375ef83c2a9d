package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathBlock is the node kind of a $$ fenced display formula.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// KindInlineMath is the node kind of a $..$ or $$..$$ formula inside a paragraph.
var KindInlineMath = ast.NewNodeKind("InlineMath")

// MathBlock holds the raw TeX lines between $$ fences.
type MathBlock struct {
	ast.BaseBlock
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }
func (n *MathBlock) IsRaw() bool        { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// InlineMath holds the TeX between dollar delimiters.
type InlineMath struct {
	ast.BaseInline
	Display bool
	Value   []byte
}

func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

type mathBlockParser struct{}

var mathFence = []byte("$$")

func (b *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (b *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}
	rest := line[pos:]
	if !bytes.HasPrefix(rest, mathFence) {
		return nil, parser.NoChildren
	}
	// "$$x$$" on one line is left to the inline parser.
	if !util.IsBlank(rest[len(mathFence):]) {
		return nil, parser.NoChildren
	}
	return &MathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if bytes.Equal(bytes.TrimSpace(line), mathFence) {
		newline := 0
		if len(line) > 0 && line[len(line)-1] == '\n' {
			newline = 1
		}
		reader.Advance(segment.Len() - newline)
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}
func (b *mathBlockParser) CanInterruptParagraph() bool                                 { return true }
func (b *mathBlockParser) CanAcceptIndentedLine() bool                                 { return false }

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte { return []byte{'$'} }

func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	if opener == 0 || opener > 2 {
		return nil
	}

	rest := line[opener:]
	closeAt := -1
	for i := 0; i < len(rest); i++ {
		if rest[i] == '\\' {
			i++
			continue
		}
		if rest[i] != '$' {
			continue
		}
		j := i
		for j < len(rest) && rest[j] == '$' {
			j++
		}
		if j-i == opener {
			closeAt = i
			break
		}
		i = j - 1
	}
	if closeAt <= 0 {
		return nil
	}

	value := rest[:closeAt]
	if util.IsBlank(value) {
		return nil
	}
	block.Advance(opener + closeAt + opener)
	return &InlineMath{
		Display: opener == 2,
		Value:   append([]byte(nil), value...),
	}
}

// TeX is wrapped in the delimiters KaTeX auto-render scans for; the page
// layout loads KaTeX and renders every formula on load.
const (
	inlineOpen   = `\(`
	inlineClose  = `\)`
	displayOpen  = `\[`
	displayClose = `\]`
)

type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathBlock, r.renderBlock)
	reg.Register(KindInlineMath, r.renderInline)
}

func (r *mathRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="math math-display">` + displayOpen)
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	_, _ = w.WriteString(displayClose + "</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*InlineMath)
	class, open, closing := "math math-inline", inlineOpen, inlineClose
	if n.Display {
		class, open, closing = "math math-display", displayOpen, displayClose
	}
	_, _ = w.WriteString(`<span class="` + class + `">` + open)
	_, _ = w.Write(util.EscapeHTML(n.Value))
	_, _ = w.WriteString(closing + "</span>")
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

// Math parses $inline$ and $$display$$ formulas and renders them as
// delimited KaTeX auto-render targets with the TeX source escaped.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 650)),
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 550)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(&mathRenderer{}, 500)),
	)
}
