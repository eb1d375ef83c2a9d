package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("develog"),
		kong.Description("Markdown blog builder and server."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global := &Global{Ctx: ctx}
	err := kctx.Run(global, &cli)
	if global.Logger != nil && err != nil {
		global.Logger.Error("command failed", "error", err)
	}
	kctx.FatalIfErrorf(err)
}
