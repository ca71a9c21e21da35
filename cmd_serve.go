package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"thumbforge/export"
	"thumbforge/icons"
	"thumbforge/logging"
	"thumbforge/thumbnail"
	"thumbforge/webui"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			gen, err := thumbnail.NewGenerator(cfg, icons.NewSearcher(cfg))
			if err != nil {
				return err
			}
			pipeline := &export.Pipeline{Generator: gen, Output: cfg.Output}

			server, err := webui.NewServer(cfg, pipeline)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigChan:
				logging.Info("Shutting down...")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}
}
