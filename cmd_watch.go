package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"thumbforge/export"
	"thumbforge/icons"
	"thumbforge/logging"
	"thumbforge/notify"
	"thumbforge/thumbnail"
	"thumbforge/watcher"
)

func newWatchCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop folder and thumbnail every image that lands in it",
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

			w, err := watcher.NewWatcher(cfg, pipeline)
			if err != nil {
				return err
			}
			w.SetNotifier(notify.NewNtfySender(cfg))

			if err := w.Start(); err != nil {
				return err
			}
			logging.Info("Watcher started. Press Ctrl+C to stop")

			go func() {
				for event := range w.Events() {
					logging.Debugf("Event: %v - %s", event.Type, event.SourcePath)
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			logging.Info("Shutting down...")
			return w.Stop()
		},
	}
}
