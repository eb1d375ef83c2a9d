package main

import (
	"context"
	"fmt"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"

	"develog/internal/config"
	"develog/internal/content"
	"develog/internal/logging"
	"develog/internal/logging/gologger"
	"develog/internal/markdown"
	"develog/internal/metrics"
	"develog/internal/site"
)

// Global is shared by every command.
type Global struct {
	Ctx    context.Context
	Logger logging.Logger
}

// CLI is the command tree and its global flags.
type CLI struct {
	Config    string `short:"c" help:"Configuration file path" default:"develog.yaml" type:"path"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `name:"log-format" help:"Log format (console|json|pretty); overrides config"`

	Build BuildCmd `cmd:"" help:"Render the site into a static output directory"`
	Serve ServeCmd `cmd:"" help:"Serve the site, reading posts on every request"`
	Posts PostsCmd `cmd:"" help:"Print all posts as JSON"`
	Tree  TreeCmd  `cmd:"" help:"Print the category tree as JSON"`
}

// app is the wired object graph for one command run.
type app struct {
	cfg      *config.Config
	provider logging.Provider
	pipeline *markdown.Pipeline
	loader   *content.Loader
	renderer *site.Renderer
	registry *prom.Registry
	recorder metrics.Recorder
}

func (c *CLI) setup(g *Global) (*app, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.Verbose {
		cfg.Logging.Level = "debug"
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = c.LogFormat
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Focus:     cfg.Logging.Focus,
	})
	if err != nil {
		return nil, err
	}
	g.Logger = logging.ModuleLogger(provider, "develog")
	if focus := provider.Focused(); len(focus) > 0 {
		g.Logger.Debug("log output focused", "loggers", strings.Join(focus, ","))
	}

	pipeline, err := markdown.NewPipeline(cfg.PipelineConfig())
	if err != nil {
		return nil, fmt.Errorf("markdown pipeline: %w", err)
	}
	if unresolved := pipeline.Languages().Unresolved(); len(unresolved) > 0 {
		logging.MarkdownLogger(provider).Warn("highlight languages without a chroma lexer",
			"languages", strings.Join(unresolved, ","))
	}

	a := &app{
		cfg:      cfg,
		provider: provider,
		pipeline: pipeline,
		recorder: metrics.NoopRecorder{},
	}
	if cfg.Server.Metrics {
		a.registry = prom.NewRegistry()
		a.recorder = metrics.NewPrometheusRecorder(a.registry)
	}

	a.loader = content.NewLoader(cfg.Content.Dir, pipeline,
		content.WithLogger(logging.ContentLogger(provider)),
		content.WithRecorder(a.recorder),
	)

	info := site.Info{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
		BaseURL:     cfg.Site.BaseURL,
	}
	if pipeline.CSSClasses() {
		info.Stylesheet = site.StylesheetPath
	}
	if a.renderer, err = site.NewRenderer(info); err != nil {
		return nil, err
	}
	return a, nil
}
