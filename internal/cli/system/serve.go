package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/internal/constants"
	"rollcall/internal/server"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Address to listen on." default:"${default_serve_addr}"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	// The lock file lets CLI commands and the board find a local server
	// without configuration. Serving still works when the config dir is
	// unavailable, just without discovery.
	lockPath := ""
	if dir, err := config.Dir(); err == nil {
		lockPath = filepath.Join(dir, constants.ServeLockfileName)
	}

	srv := server.New(ctx.Store, server.Options{
		Addr:     c.Addr,
		Location: ctx.Location(),
		Version:  ctx.Version,
		LockPath: lockPath,
	})

	fmt.Printf("Serving attendance on %s (Ctrl+C to stop)\n", c.Addr)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(runCtx)
}
