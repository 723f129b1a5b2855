package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/server"
)

type ServeCmd struct {
	Host string `help:"Listen host; overrides server.host from the config file."`
	Port int    `help:"Listen port; overrides server.port from the config file."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg := *ctx.Cfg()
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash, err := ctx.LoadDashboard(sigCtx)
	if err != nil {
		return err
	}
	if dash.Demo() {
		ctx.Printf("⚠ Serving demo data: %v\n", dash.Err())
	} else {
		ctx.PerformAutomaticBackup()
	}

	srv, err := server.NewServer(server.Options{
		Dashboard:  dash,
		Dispatcher: ctx.Dispatcher,
		Config:     &cfg,
		Now:        ctx.Now,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx.Printf("Listening on http://%s\n", cfg.Server.Addr())
	return srv.Run(sigCtx)
}
