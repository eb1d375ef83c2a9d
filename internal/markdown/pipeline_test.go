package markdown

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	p, err := NewPipeline(cfg)
	require.NoError(t, err)
	return p
}

func TestRenderHighlightsRegisteredLanguage(t *testing.T) {
	p := newTestPipeline(t, Config{})

	out, err := p.Render([]byte("```js\nconst answer = 42\n```\n"))
	require.NoError(t, err)

	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "<span")
	assert.Contains(t, out, "const")
	assert.Contains(t, out, "answer")
	assert.Contains(t, out, "42")
}

func TestRenderUsesChromaClassesWhenConfigured(t *testing.T) {
	p := newTestPipeline(t, Config{CSSClasses: true})

	out, err := p.Render([]byte("```bash\necho hello\n```\n"))
	require.NoError(t, err)

	assert.Contains(t, out, `class="chroma"`)
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "hello")
}

func TestRenderLeavesUnregisteredLanguagePlain(t *testing.T) {
	p := newTestPipeline(t, Config{Languages: []string{"javascript"}})

	out, err := p.Render([]byte("```python\nif x < y:\n    print(x)\n```\n"))
	require.NoError(t, err)

	assert.Contains(t, out, `<pre><code class="language-python">`)
	assert.Contains(t, out, "if x &lt; y:\n    print(x)\n</code></pre>")
}

func TestRenderLeavesFenceWithoutLanguagePlain(t *testing.T) {
	p := newTestPipeline(t, Config{})

	out, err := p.Render([]byte("```\nplain <text>\n```\n"))
	require.NoError(t, err)

	assert.Contains(t, out, "<pre><code>plain &lt;text&gt;\n</code></pre>")
}

func TestRenderSupportsGFMTables(t *testing.T) {
	p := newTestPipeline(t, Config{})

	out, err := p.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>a</th>")
	assert.Contains(t, out, "<td>2</td>")
}

func TestRenderSupportsGFMInlineExtensions(t *testing.T) {
	p := newTestPipeline(t, Config{})

	out, err := p.Render([]byte("~~gone~~ and - [x] done\n\n- [ ] todo\n"))
	require.NoError(t, err)

	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestRenderPreservesRawHTML(t *testing.T) {
	p := newTestPipeline(t, Config{})

	out, err := p.Render([]byte("<div class=\"note\">\n\nhello\n\n</div>\n\nText with <kbd>Ctrl</kbd>.\n"))
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="note">`)
	assert.Contains(t, out, "</div>")
	assert.Contains(t, out, "<kbd>Ctrl</kbd>")
}

func TestRenderAddsHeadingIDs(t *testing.T) {
	p := newTestPipeline(t, Config{})

	out, err := p.Render([]byte("## Getting Started\n"))
	require.NoError(t, err)

	assert.Contains(t, out, `<h2 id="getting-started">Getting Started</h2>`)
}

func TestRenderHardWraps(t *testing.T) {
	soft := newTestPipeline(t, Config{})
	hard := newTestPipeline(t, Config{HardWraps: true})

	softOut, err := soft.Render([]byte("one\ntwo\n"))
	require.NoError(t, err)
	hardOut, err := hard.Render([]byte("one\ntwo\n"))
	require.NoError(t, err)

	assert.NotContains(t, softOut, "<br")
	assert.Contains(t, hardOut, "<br")
}

func TestNewPipelineRejectsBlankLanguage(t *testing.T) {
	_, err := NewPipeline(Config{Languages: []string{"go", " "}})
	require.Error(t, err)
}

func TestWriteCSS(t *testing.T) {
	p := newTestPipeline(t, Config{CSSClasses: true})

	var buf bytes.Buffer
	require.NoError(t, p.WriteCSS(&buf))
	assert.Contains(t, buf.String(), ".chroma")
}

func TestLanguageSetAliases(t *testing.T) {
	set, err := NewLanguageSet(nil)
	require.NoError(t, err)

	for _, lang := range []string{"js", "JavaScript", "ts", "sh", "shell", "md", "jsx", "json", "css"} {
		assert.True(t, set.Contains(lang), lang)
	}
	assert.False(t, set.Contains("python"))
	assert.Equal(t, []string{"bash", "css", "javascript", "json", "jsx", "markdown", "typescript"}, set.Names())
}

func TestLanguageSetIsPerPipeline(t *testing.T) {
	onlyGo := newTestPipeline(t, Config{Languages: []string{"go"}})
	defaults := newTestPipeline(t, Config{})

	assert.True(t, onlyGo.Languages().Contains("go"))
	assert.False(t, onlyGo.Languages().Contains("javascript"))
	assert.False(t, defaults.Languages().Contains("go"))
}

func TestRenderSharesEngineAcrossCallers(t *testing.T) {
	p := newTestPipeline(t, Config{})
	engine := p.md

	var wg sync.WaitGroup
	outputs := make([]string, 16)
	errs := make([]error, 16)
	for i := range outputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outputs[i], errs[i] = p.Render([]byte(fmt.Sprintf("## Part %d\n\n$x%d$ and `code`\n", i, i)))
		}()
	}
	wg.Wait()

	for i, out := range outputs {
		require.NoError(t, errs[i])
		assert.Contains(t, out, fmt.Sprintf(`<h2 id="part-%d">Part %d</h2>`, i, i))
		assert.Contains(t, out, fmt.Sprintf(`<span class="math math-inline">\(x%d\)</span>`, i))
	}
	assert.Same(t, engine, p.md)
}
