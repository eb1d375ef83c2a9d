// Package markdown turns post bodies into HTML: CommonMark with GFM, math,
// raw HTML pass-through and chroma highlighting for a configured set of
// fence languages.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used when Config.Style is blank.
const DefaultStyle = "dracula"

// Config drives pipeline construction.
type Config struct {
	// Languages is the set of fence languages highlighted with chroma.
	// Empty selects DefaultLanguages.
	Languages []string
	// Style is a chroma style name.
	Style string
	// CSSClasses emits chroma class names instead of inline styles; pair it
	// with WriteCSS.
	CSSClasses bool
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
}

// Pipeline renders markdown bodies. One value serves concurrent callers.
type Pipeline struct {
	languages *LanguageSet
	style     string
	classes   bool
	md        goldmark.Markdown
}

// NewPipeline validates cfg and returns a ready pipeline.
func NewPipeline(cfg Config) (*Pipeline, error) {
	languages, err := NewLanguageSet(cfg.Languages)
	if err != nil {
		return nil, err
	}
	style := strings.TrimSpace(cfg.Style)
	if style == "" {
		style = DefaultStyle
	}
	p := &Pipeline{
		languages: languages,
		style:     style,
		classes:   cfg.CSSClasses,
	}
	p.md = p.newEngine(cfg.HardWraps)
	return p, nil
}

// Languages exposes the highlight set.
func (p *Pipeline) Languages() *LanguageSet {
	return p.languages
}

// Render converts a markdown body into an HTML string.
func (p *Pipeline) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// CSSClasses reports whether highlighted code carries class names.
func (p *Pipeline) CSSClasses() bool {
	return p.classes
}

// WriteCSS writes the chroma stylesheet for the configured style. Only
// meaningful when CSSClasses is on.
func (p *Pipeline) WriteCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(2))
	return formatter.WriteCSS(w, styles.Get(p.style))
}

func (p *Pipeline) newEngine(hardWraps bool) goldmark.Markdown {
	rendererOptions := []renderer.Option{
		html.WithUnsafe(),
	}
	if hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			Math,
			&codeFilter{languages: p.languages},
			highlighting.NewHighlighting(
				highlighting.WithStyle(p.style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(p.classes),
					chromahtml.TabWidth(2),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}
