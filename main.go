package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"thumbforge/config"
	"thumbforge/logging"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:           "thumbforge",
		Short:         "Blog thumbnail generator",
		Long:          "Thumbforge composes blog thumbnails: a blurred background photo,\na centered shadowed title and a row of icons fetched from the web.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newGenerateCmd(&cfgPath),
		newServeCmd(&cfgPath),
		newWatchCmd(&cfgPath),
		newFaviconCmd(&cfgPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and initializes logging from it.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Init("thumbforge", cfg.LogLevel)
	return cfg, nil
}
