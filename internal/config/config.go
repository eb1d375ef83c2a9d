// Package config loads develog settings from a YAML file, the environment
// and a local .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"develog/internal/markdown"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEVELOG_"

// Config is the full develog configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Content  ContentConfig  `yaml:"content"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Author      string `yaml:"author"`
}

type ContentConfig struct {
	Dir string `yaml:"dir"`
}

type MarkdownConfig struct {
	Languages  []string `yaml:"languages"`
	Style      string   `yaml:"style"`
	CSSClasses bool     `yaml:"css_classes"`
	HardWraps  bool     `yaml:"hard_wraps"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
	// Focus limits output to the named loggers, e.g. "develog.content".
	Focus []string `yaml:"focus"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:       "Develog",
			Description: "Notes on development",
			BaseURL:     "http://localhost:3000",
			Author:      "Develog",
		},
		Content: ContentConfig{Dir: "content/posts"},
		Markdown: MarkdownConfig{
			Languages: append([]string(nil), markdown.DefaultLanguages...),
			Style:     markdown.DefaultStyle,
		},
		Output:  OutputConfig{Dir: "public"},
		Server:  ServerConfig{Addr: ":3000", Metrics: true},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. A missing file is not an error; an
// empty path skips the file entirely. Environment overrides are applied
// last and the result is validated.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return nil, fmt.Errorf("unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// loadEnvFiles loads .env and .env.local when present. Variables already
// set in the process win.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	str("SITE_TITLE", &cfg.Site.Title)
	str("BASE_URL", &cfg.Site.BaseURL)
	str("CONTENT_DIR", &cfg.Content.Dir)
	str("OUTPUT_DIR", &cfg.Output.Dir)
	str("ADDR", &cfg.Server.Addr)
	str("STYLE", &cfg.Markdown.Style)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)

	if v, ok := os.LookupEnv(EnvPrefix + "LANGUAGES"); ok {
		cfg.Markdown.Languages = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FOCUS"); ok {
		cfg.Logging.Focus = splitList(v)
	}
	if err := boolEnv("CSS_CLASSES", &cfg.Markdown.CSSClasses); err != nil {
		return err
	}
	return boolEnv("LOG_SOURCE", &cfg.Logging.AddSource)
}

func boolEnv(key string, dst *bool) error {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	return compact(strings.Split(v, ","))
}

// compact trims each entry and drops the blank ones.
func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *Config) normalize() {
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Focus = compact(c.Logging.Focus)
	if len(c.Markdown.Languages) == 0 {
		c.Markdown.Languages = append([]string(nil), markdown.DefaultLanguages...)
	}
}

// Validate checks the settings every command depends on.
func (c Config) Validate() error {
	return validation.Errors{
		"content.dir": validation.Validate(c.Content.Dir, validation.Required),
		"output.dir":  validation.Validate(c.Output.Dir, validation.Required),
		"server.addr": validation.Validate(c.Server.Addr, validation.Required),
		"logging.level": validation.Validate(c.Logging.Level,
			validation.In("trace", "debug", "info", "warn", "error", "fatal")),
		"logging.format": validation.Validate(c.Logging.Format,
			validation.In("console", "json", "pretty")),
	}.Filter()
}

// PipelineConfig maps the markdown section onto the pipeline's options.
func (c Config) PipelineConfig() markdown.Config {
	return markdown.Config{
		Languages:  c.Markdown.Languages,
		Style:      c.Markdown.Style,
		CSSClasses: c.Markdown.CSSClasses,
		HardWraps:  c.Markdown.HardWraps,
	}
}
