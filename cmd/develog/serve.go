package main

import (
	"develog/internal/logging"
	"develog/internal/metrics"
	"develog/internal/server"
)

// ServeCmd implements 'serve'.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address; overrides config"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	a, err := root.setup(g)
	if err != nil {
		return err
	}
	addr := a.cfg.Server.Addr
	if s.Addr != "" {
		addr = s.Addr
	}

	opts := []server.Option{
		server.WithLogger(logging.ServerLogger(a.provider)),
		server.WithStylesheet(a.pipeline),
	}
	if a.registry != nil {
		opts = append(opts, server.WithMetricsHandler(metrics.HTTPHandler(a.registry)))
	}
	return server.New(addr, a.loader, a.renderer, opts...).Run(g.Ctx)
}
