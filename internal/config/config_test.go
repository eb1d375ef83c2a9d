package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"develog/internal/markdown"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "develog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "content/posts", cfg.Content.Dir)
	assert.Equal(t, "public", cfg.Output.Dir)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, markdown.DefaultStyle, cfg.Markdown.Style)
	assert.Equal(t, markdown.DefaultLanguages, cfg.Markdown.Languages)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  title: My Notes
  base_url: https://example.com/
content:
  dir: posts
markdown:
  languages: [go, python]
  style: monokai
  css_classes: true
logging:
  level: DEBUG
  format: json
  add_source: true
  focus: [" develog.content ", "", develog.site]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "My Notes", cfg.Site.Title)
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, "posts", cfg.Content.Dir)
	assert.Equal(t, "public", cfg.Output.Dir)
	assert.Equal(t, []string{"go", "python"}, cfg.Markdown.Languages)
	assert.True(t, cfg.Markdown.CSSClasses)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.AddSource)
	assert.Equal(t, []string{"develog.content", "develog.site"}, cfg.Logging.Focus)

	pc := cfg.PipelineConfig()
	assert.Equal(t, "monokai", pc.Style)
	assert.True(t, pc.CSSClasses)
}

func TestLoadExpandsEnvInFile(t *testing.T) {
	t.Setenv("POSTS_ROOT", "/srv/posts")
	cfg, err := Load(writeConfig(t, "content:\n  dir: ${POSTS_ROOT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/posts", cfg.Content.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DEVELOG_ADDR", ":8080")
	t.Setenv("DEVELOG_LANGUAGES", "go, rust ,")
	t.Setenv("DEVELOG_CSS_CLASSES", "true")
	t.Setenv("DEVELOG_LOG_SOURCE", "1")
	t.Setenv("DEVELOG_LOG_FOCUS", "develog.server")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"go", "rust"}, cfg.Markdown.Languages)
	assert.True(t, cfg.Markdown.CSSClasses)
	assert.True(t, cfg.Logging.AddSource)
	assert.Equal(t, []string{"develog.server"}, cfg.Logging.Focus)
}

func TestLoadRejectsBadBoolEnv(t *testing.T) {
	t.Setenv("DEVELOG_CSS_CLASSES", "maybe")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("DEVELOG_CSS_CLASSES", "true")
	t.Setenv("DEVELOG_LOG_SOURCE", "sometimes")
	_, err = Load("")
	assert.ErrorContains(t, err, "DEVELOG_LOG_SOURCE")
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "logging:\n  format: xml\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")

	_, err = Load(writeConfig(t, "content:\n  dir: \"\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.dir")
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "site: [\n"))
	assert.Error(t, err)
}
