package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP and websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		cfg := server.Config{
			Addr:           d.cfg.Server.Addr,
			AllowedOrigins: d.cfg.Server.AllowedOrigins,
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		var gen server.Generator
		if d.generator != nil {
			gen = d.generator
		}
		srv := server.New(cfg, d.newSession(), gen, d.log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
