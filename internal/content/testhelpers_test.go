package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"develog/internal/markdown"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
}

func postSource(title, date, category, body string) string {
	src := "---\n"
	if title != "" {
		src += "title: " + title + "\n"
	}
	if date != "" {
		src += "date: \"" + date + "\"\n"
	}
	if category != "" {
		src += "category: " + category + "\n"
	}
	src += "description: test post\n---\n" + body
	return src
}

func newTestLoader(t *testing.T, root string, opts ...Option) *Loader {
	t.Helper()
	pipeline, err := markdown.NewPipeline(markdown.Config{})
	require.NoError(t, err)
	return NewLoader(root, pipeline, opts...)
}
