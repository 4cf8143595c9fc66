package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alovak/namecard/card"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the card HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			app := card.NewApp(logger, cfg)
			if err := app.Start(); err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			sig := <-stop
			logger.Info("received signal", slog.String("signal", sig.String()))

			app.Shutdown()
			return nil
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address (default localhost:8080)")
	return cmd
}
