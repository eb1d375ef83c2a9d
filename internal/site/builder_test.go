package site

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"develog/internal/content"
)

type staticSource struct {
	posts []*content.Post
	err   error
}

func (s staticSource) AllPosts(context.Context) ([]*content.Post, error) {
	return s.posts, s.err
}

type fakeStylesheet struct{ classes bool }

func (f fakeStylesheet) CSSClasses() bool { return f.classes }

func (f fakeStylesheet) WriteCSS(w io.Writer) error {
	_, err := io.WriteString(w, ".chroma { color: red }")
	return err
}

func TestBuildWritesSite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	require.NoError(t, os.MkdirAll(filepath.Join(out, "stale"), 0o755))

	source := staticSource{posts: []*content.Post{
		samplePost("go/intro", "Intro", "2024-03-05", "go/basics"),
		samplePost("hello", "Hello", "2024-01-01", "misc"),
	}}
	builder := NewBuilder(source, newTestRenderer(t), WithStylesheet(fakeStylesheet{classes: true}))
	builder.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	report, err := builder.Build(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Posts)
	assert.Equal(t, 8, report.Files)

	for _, rel := range []string{
		"index.html", "posts/go/intro/index.html", "posts/hello/index.html",
		"404.html", "sitemap.xml", "tree.json", "posts.json", "chroma.css",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
	assert.NoDirExists(t, filepath.Join(out, "stale"))

	raw, err := os.ReadFile(filepath.Join(out, "tree.json"))
	require.NoError(t, err)
	var tree []*content.TreeNode
	require.NoError(t, json.Unmarshal(raw, &tree))
	require.Len(t, tree, 2)
	assert.Equal(t, "go", tree[0].Name)
}

func TestBuildSkipsCSSWithoutClasses(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	builder := NewBuilder(staticSource{}, newTestRenderer(t), WithStylesheet(fakeStylesheet{}))

	_, err := builder.Build(context.Background(), out)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(out, "chroma.css"))
	assert.FileExists(t, filepath.Join(out, "index.html"))
}

func TestBuildPropagatesSourceError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	builder := NewBuilder(staticSource{err: errors.New("walk failed")}, newTestRenderer(t))

	_, err := builder.Build(context.Background(), out)
	assert.EqualError(t, err, "walk failed")
}

func TestBuildRefusesDangerousOutDir(t *testing.T) {
	builder := NewBuilder(staticSource{}, newTestRenderer(t))
	for _, dir := range []string{"", ".", "/"} {
		_, err := builder.Build(context.Background(), dir)
		assert.Error(t, err, dir)
	}
}

type passthroughRenderer struct{}

func (passthroughRenderer) Render(body []byte) (string, error) { return string(body), nil }

func TestBuildRefusesOutDirHoldingContent(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "content")
	post := filepath.Join(root, "hello.mdx")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(post, []byte("---\ndate: \"2024-01-01\"\ncategory: misc\n---\nhi"), 0o644))

	builder := NewBuilder(content.NewLoader(root, passthroughRenderer{}), newTestRenderer(t))
	for _, dir := range []string{root, base, filepath.Join(root, ".")} {
		_, err := builder.Build(context.Background(), dir)
		assert.Error(t, err, dir)
		assert.FileExists(t, post)
	}

	sibling := filepath.Join(base, "public")
	report, err := builder.Build(context.Background(), sibling)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Posts)
	assert.FileExists(t, post)
}

func TestWithin(t *testing.T) {
	sep := string(filepath.Separator)
	assert.True(t, within(sep+"a"+sep+"b", sep+"a"))
	assert.True(t, within(sep+"a", sep+"a"))
	assert.False(t, within(sep+"a", sep+"a"+sep+"b"))
	assert.False(t, within(sep+"ab", sep+"a"))
	assert.True(t, within(sep+"a"+sep+"..b", sep+"a"))
}
