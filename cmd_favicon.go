package main

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"thumbforge/common"
	"thumbforge/export"
)

func newFaviconCmd(cfgPath *string) *cobra.Command {
	var sizes []int

	cmd := &cobra.Command{
		Use:   "favicon <image>",
		Short: "Build a multi-size ICO favicon from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}

			src, err := imaging.Open(args[0], imaging.AutoOrientation(true))
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}

			out, _ := cmd.Flags().GetString("out")
			out = common.NormalizeExtension(out, "ico")

			if len(sizes) == 0 {
				sizes = cfg.Output.FaviconSizes
			}
			if err := export.WriteFavicon(src, out, sizes); err != nil {
				return err
			}

			fmt.Printf("Favicon saved: %s (sizes %v)\n", out, sizes)
			return nil
		},
	}

	cmd.Flags().String("out", "favicon.ico", "output filename")
	cmd.Flags().IntSliceVar(&sizes, "sizes", nil, "icon sizes (default from config)")

	return cmd
}
