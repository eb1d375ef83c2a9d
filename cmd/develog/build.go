package main

import (
	"context"
	"fmt"

	"develog/internal/logging"
	"develog/internal/site"
	"develog/internal/watch"
)

// BuildCmd implements 'build'.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory; overrides config"`
	Watch  bool   `short:"w" help:"Rebuild when content changes"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	a, err := root.setup(g)
	if err != nil {
		return err
	}
	outDir := a.cfg.Output.Dir
	if b.Output != "" {
		outDir = b.Output
	}

	builder := site.NewBuilder(a.loader, a.renderer,
		site.WithBuilderLogger(logging.SiteLogger(a.provider)),
		site.WithBuilderRecorder(a.recorder),
		site.WithStylesheet(a.pipeline),
	)
	rebuild := func(ctx context.Context) error {
		_, err := builder.Build(ctx, outDir)
		return err
	}

	if err := rebuild(g.Ctx); err != nil {
		if !b.Watch {
			return fmt.Errorf("build: %w", err)
		}
		g.Logger.Error("initial build failed", logging.FieldError, err)
	}
	if !b.Watch {
		return nil
	}

	w := watch.New(a.cfg.Content.Dir, rebuild, watch.WithLogger(logging.WatchLogger(a.provider)))
	return w.Run(g.Ctx)
}
