package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"develog/internal/logging/gologger"
)

func parse(t *testing.T, args ...string) (*kong.Context, *CLI) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("develog"))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx, &cli
}

func TestParseCommands(t *testing.T) {
	kctx, cli := parse(t, "build", "-o", "dist", "--watch")
	assert.Equal(t, "build", kctx.Command())
	assert.Equal(t, "dist", cli.Build.Output)
	assert.True(t, cli.Build.Watch)

	kctx, cli = parse(t, "--verbose", "--log-format", "json", "serve", "--addr", ":9000")
	assert.Equal(t, "serve", kctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, "json", cli.LogFormat)
	assert.Equal(t, ":9000", cli.Serve.Addr)

	kctx, _ = parse(t, "tree")
	assert.Equal(t, "tree", kctx.Command())
}

func TestBuildCommandWritesSite(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts")
	require.NoError(t, os.MkdirAll(filepath.Join(posts, "go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(posts, "go", "intro.mdx"),
		[]byte("---\ntitle: Intro\ndate: \"2024-01-01\"\ncategory: go\n---\n```js\nconst a = 1\n```\n"), 0o644))

	cfgPath := filepath.Join(dir, "develog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"content:\n  dir: "+posts+"\nmarkdown:\n  css_classes: true\nserver:\n  metrics: false\n"), 0o644))

	out := filepath.Join(dir, "public")
	cli := &CLI{Config: cfgPath, LogFormat: "json"}
	cmd := &BuildCmd{Output: out}
	require.NoError(t, cmd.Run(&Global{Ctx: context.Background()}, cli))

	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "posts", "go", "intro", "index.html"))
	assert.FileExists(t, filepath.Join(out, "chroma.css"))
	assert.FileExists(t, filepath.Join(out, "tree.json"))
}

func TestSetupRejectsBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "develog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  format: xml\n"), 0o644))

	cli := &CLI{Config: cfgPath}
	_, err := cli.setup(&Global{Ctx: context.Background()})
	assert.Error(t, err)
}

func TestSetupAppliesLoggingOptions(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "develog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"logging:\n  add_source: true\n  focus: [develog.content, \" develog.site \"]\nserver:\n  metrics: false\n"), 0o644))

	cli := &CLI{Config: cfgPath, Verbose: true}
	a, err := cli.setup(&Global{Ctx: context.Background()})
	require.NoError(t, err)

	assert.True(t, a.cfg.Logging.AddSource)
	provider, ok := a.provider.(*gologger.Provider)
	require.True(t, ok)
	assert.Equal(t, []string{"develog.content", "develog.site"}, provider.Focused())
}
